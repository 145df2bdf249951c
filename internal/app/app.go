package app

import (
	"log/slog"

	"github.com/metalinks/metalinks-deployer/internal/adapters/blockchain"
	"github.com/metalinks/metalinks-deployer/internal/domain/config"
	"github.com/metalinks/metalinks-deployer/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Use cases
	DeployContract  *usecase.DeployContract
	ListDeployments *usecase.ListDeployments
	ShowDeployment  *usecase.ShowDeployment
	ListNetworks    *usecase.ListNetworks
	ListScripts     *usecase.ListScripts
	ShowConfig      *usecase.ShowConfig
	SetConfig       *usecase.SetConfig

	framework *blockchain.EthFramework
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	framework *blockchain.EthFramework,
	deployContract *usecase.DeployContract,
	listDeployments *usecase.ListDeployments,
	showDeployment *usecase.ShowDeployment,
	listNetworks *usecase.ListNetworks,
	listScripts *usecase.ListScripts,
	showConfig *usecase.ShowConfig,
	setConfig *usecase.SetConfig,
) (*App, error) {
	return &App{
		Config:          cfg,
		Log:             log,
		DeployContract:  deployContract,
		ListDeployments: listDeployments,
		ShowDeployment:  showDeployment,
		ListNetworks:    listNetworks,
		ListScripts:     listScripts,
		ShowConfig:      showConfig,
		SetConfig:       setConfig,
		framework:       framework,
	}, nil
}

// Close releases RPC connections held by the app
func (a *App) Close() {
	if a.framework != nil {
		a.framework.Close()
	}
}
