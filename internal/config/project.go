package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/metalinks/metalinks-deployer/internal/domain/config"
)

const (
	// ProjectFileName is the optional project configuration file
	ProjectFileName = "metalinks.toml"
	// DataDirName holds the registry and local overrides
	DataDirName = ".metalinks"
)

// LoadEnvFiles loads .env and .env.local from the project root.
// Variables already set in the process environment win.
func LoadEnvFiles(projectRoot string) error {
	for _, name := range []string{".env", ".env.local"} {
		envFile := filepath.Join(projectRoot, name)
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}
	return nil
}

// LoadProjectConfig reads metalinks.toml, expanding ${VAR} references.
// It returns built-in defaults when the file is absent.
func LoadProjectConfig(projectRoot string) (*config.ProjectConfig, string, error) {
	if err := LoadEnvFiles(projectRoot); err != nil {
		return nil, "", err
	}

	path := filepath.Join(projectRoot, ProjectFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config.DefaultProjectConfig(), "defaults", nil
	}

	var cfg config.ProjectConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse %s: %w", ProjectFileName, err)
	}

	expandProjectConfig(&cfg)

	if len(cfg.Artifacts) == 0 {
		cfg.Artifacts = config.DefaultArtifactDirs
	}
	if cfg.Networks == nil {
		cfg.Networks = make(map[string]config.NetworkConfig)
	}
	if _, ok := cfg.Networks[config.LocalNetworkName]; !ok {
		cfg.Networks[config.LocalNetworkName] = config.NetworkConfig{
			RPCURL:  config.LocalRPCURL,
			ChainID: config.LocalChainID,
		}
	}
	if cfg.DefaultNetwork == "" {
		cfg.DefaultNetwork = config.LocalNetworkName
	}

	return &cfg, ProjectFileName, nil
}

func expandProjectConfig(cfg *config.ProjectConfig) {
	cfg.DefaultNetwork = os.ExpandEnv(cfg.DefaultNetwork)
	cfg.ConfirmationsTimeout = os.ExpandEnv(cfg.ConfirmationsTimeout)
	cfg.Deployer.PrivateKey = os.ExpandEnv(cfg.Deployer.PrivateKey)

	for name, n := range cfg.Networks {
		n.RPCURL = os.ExpandEnv(n.RPCURL)
		n.Explorer = os.ExpandEnv(n.Explorer)
		cfg.Networks[name] = n
	}
}
