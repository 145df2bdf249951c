package config

import (
	"fmt"
	"time"
)

// LocalConfig holds per-checkout defaults stored in .metalinks/config.local.json
type LocalConfig struct {
	Network string `json:"network,omitempty"`
	Timeout string `json:"timeout,omitempty"`
}

// ConfigKey represents a configuration key
type ConfigKey string

const (
	ConfigKeyNetwork ConfigKey = "network"
	ConfigKeyTimeout ConfigKey = "timeout"
)

// ValidConfigKeys returns all valid configuration keys
func ValidConfigKeys() []ConfigKey {
	return []ConfigKey{
		ConfigKeyNetwork,
		ConfigKeyTimeout,
	}
}

// IsValidConfigKey checks if a key is valid
func IsValidConfigKey(key string) bool {
	for _, validKey := range ValidConfigKeys() {
		if string(validKey) == key {
			return true
		}
	}
	return false
}

// Get returns the value stored for key
func (c *LocalConfig) Get(key ConfigKey) string {
	switch key {
	case ConfigKeyNetwork:
		return c.Network
	case ConfigKeyTimeout:
		return c.Timeout
	}
	return ""
}

// Set validates and stores value under key
func (c *LocalConfig) Set(key ConfigKey, value string) error {
	switch key {
	case ConfigKeyNetwork:
		c.Network = value
	case ConfigKeyTimeout:
		if value != "" {
			if _, err := time.ParseDuration(value); err != nil {
				return fmt.Errorf("invalid timeout %q: %w", value, err)
			}
		}
		c.Timeout = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
