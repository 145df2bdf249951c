//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/metalinks/metalinks-deployer/internal/adapters"
	"github.com/metalinks/metalinks-deployer/internal/config"
	"github.com/metalinks/metalinks-deployer/internal/logging"
	"github.com/metalinks/metalinks-deployer/internal/usecase"
	"github.com/spf13/viper"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewDeployContract,
		usecase.NewListDeployments,
		usecase.NewShowDeployment,
		usecase.NewListNetworks,
		usecase.NewListScripts,
		usecase.NewShowConfig,
		usecase.NewSetConfig,

		// App
		NewApp,
	)
	return nil, nil
}
