package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/metalinks/metalinks-deployer/internal/domain/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// projectMarkers identify a project root, in order of preference
var projectMarkers = []string{
	ProjectFileName,
	"hardhat.config.ts",
	"hardhat.config.js",
	"foundry.toml",
}

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		projectRoot, err = FindProjectRoot(wd)
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	projectConfig, source, err := LoadProjectConfig(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to load project config: %w", err)
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		DataDir:        filepath.Join(projectRoot, DataDirName),
		NetworkName:    v.GetString("network"),
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		Timeout:        v.GetDuration("timeout"),
		PrivateKey:     v.GetString("private_key"),
		ConfigSource:   source,
		ProjectConfig:  projectConfig,
	}

	if cfg.NetworkName == "" {
		cfg.NetworkName = projectConfig.DefaultNetwork
	}
	if cfg.NetworkName == "" {
		cfg.NetworkName = config.LocalNetworkName
	}

	// metalinks.toml only supplies the timeout when neither flag nor env did
	if !v.IsSet("timeout") && projectConfig.ConfirmationsTimeout != "" {
		d, err := time.ParseDuration(projectConfig.ConfirmationsTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid confirmations_timeout %q: %w", projectConfig.ConfirmationsTimeout, err)
		}
		cfg.Timeout = d
	}

	if cfg.PrivateKey == "" {
		cfg.PrivateKey = projectConfig.Deployer.PrivateKey
	}

	return cfg, nil
}

// FindProjectRoot walks up from dir to find a metalinks.toml or Hardhat/Foundry config
func FindProjectRoot(dir string) (string, error) {
	for {
		for _, marker := range projectMarkers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a MetaLinks project (none of %s found)", strings.Join(projectMarkers, ", "))
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	v.SetConfigName("config.local")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, DataDirName))

	v.SetEnvPrefix("METALINKS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("project_root", projectRoot)

	// Try to read config file (ignore error if not found)
	_ = v.ReadInConfig()

	if cmd != nil {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			if err := v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f); err != nil {
				panic(err)
			}
		})
	}

	return v
}
