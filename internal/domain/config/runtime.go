package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	DataDir     string

	// Context settings
	NetworkName string
	Network     *Network // nil until resolved

	// Execution settings
	Debug          bool
	NonInteractive bool
	Timeout        time.Duration

	// Deployer key, already expanded from the environment
	PrivateKey string

	// Config source tracking
	ConfigSource string // "metalinks.toml" or "defaults"

	ProjectConfig *ProjectConfig
}

// Network represents network configuration
type Network struct {
	ChainID     uint64 `json:"chainId"`
	Name        string `json:"name"`
	RPCURL      string `json:"rpcUrl"`
	ExplorerURL string `json:"explorerUrl,omitempty"`
}
