package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/metalinks/metalinks-deployer/internal/domain/config"
	"github.com/samber/lo"
)

// ShowConfigResult contains the result of showing configuration
type ShowConfigResult struct {
	Config     *config.LocalConfig
	ConfigPath string
	Exists     bool
}

// ShowConfig is a use case for showing configuration
type ShowConfig struct {
	store LocalConfigRepository
}

// NewShowConfig creates a new ShowConfig use case
func NewShowConfig(store LocalConfigRepository) *ShowConfig {
	return &ShowConfig{store: store}
}

// Run executes the show config use case
func (uc *ShowConfig) Run(ctx context.Context) (*ShowConfigResult, error) {
	exists := uc.store.Exists()

	cfg, err := uc.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	return &ShowConfigResult{
		Config:     cfg,
		ConfigPath: uc.store.GetPath(),
		Exists:     exists,
	}, nil
}

// SetConfigParams contains parameters for setting configuration.
// An empty Value removes the key.
type SetConfigParams struct {
	Key   string
	Value string
}

// SetConfigResult contains the result of setting configuration
type SetConfigResult struct {
	UpdatedConfig *config.LocalConfig
	ConfigPath    string
	Key           config.ConfigKey
	Value         string
}

// SetConfig is a use case for setting or removing configuration values
type SetConfig struct {
	store LocalConfigRepository
}

// NewSetConfig creates a new SetConfig use case
func NewSetConfig(store LocalConfigRepository) *SetConfig {
	return &SetConfig{store: store}
}

// Run executes the set config use case
func (uc *SetConfig) Run(ctx context.Context, params SetConfigParams) (*SetConfigResult, error) {
	key := strings.ToLower(strings.TrimSpace(params.Key))
	if !config.IsValidConfigKey(key) {
		validKeys := lo.Map(config.ValidConfigKeys(), func(k config.ConfigKey, _ int) string { return string(k) })
		return nil, fmt.Errorf("unknown config key: %s\nAvailable keys: %s", params.Key, strings.Join(validKeys, ", "))
	}

	cfg, err := uc.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Set(config.ConfigKey(key), params.Value); err != nil {
		return nil, err
	}

	if err := uc.store.Save(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}

	return &SetConfigResult{
		UpdatedConfig: cfg,
		ConfigPath:    uc.store.GetPath(),
		Key:           config.ConfigKey(key),
		Value:         params.Value,
	}, nil
}
