package localconfig

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/metalinks/metalinks-deployer/internal/domain/config"
	"github.com/metalinks/metalinks-deployer/internal/usecase"
)

// FileName is read by viper as the "config.local" json config
const FileName = "config.local.json"

// Store implements LocalConfigRepository using the file system
type Store struct {
	configPath string
}

// NewStore creates a new Store
func NewStore(cfg *config.RuntimeConfig) *Store {
	return &Store{
		configPath: filepath.Join(cfg.DataDir, FileName),
	}
}

// Exists checks if the config file exists
func (s *Store) Exists() bool {
	_, err := os.Stat(s.configPath)
	return !os.IsNotExist(err)
}

// Load reads the configuration from the file
func (s *Store) Load(ctx context.Context) (*config.LocalConfig, error) {
	if !s.Exists() {
		return &config.LocalConfig{}, nil
	}

	data, err := os.ReadFile(s.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var localConfig config.LocalConfig
	if err := json.Unmarshal(data, &localConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &localConfig, nil
}

// Save writes the configuration to the file
func (s *Store) Save(ctx context.Context, cfg *config.LocalConfig) error {
	dir := filepath.Dir(s.configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(s.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetPath returns the path to the config file
func (s *Store) GetPath() string {
	return s.configPath
}

var _ usecase.LocalConfigRepository = (*Store)(nil)
