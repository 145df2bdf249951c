package adapters

import (
	"github.com/google/wire"
	"github.com/metalinks/metalinks-deployer/internal/adapters/blockchain"
	"github.com/metalinks/metalinks-deployer/internal/adapters/interactive"
	"github.com/metalinks/metalinks-deployer/internal/adapters/progress"
	"github.com/metalinks/metalinks-deployer/internal/adapters/repository/contracts"
	"github.com/metalinks/metalinks-deployer/internal/adapters/repository/deployments"
	"github.com/metalinks/metalinks-deployer/internal/adapters/repository/localconfig"
	"github.com/metalinks/metalinks-deployer/internal/config"
	"github.com/metalinks/metalinks-deployer/internal/usecase"
)

// RepositorySet provides file-based repositories
var RepositorySet = wire.NewSet(
	deployments.ProvideFileRepository,
	wire.Bind(new(usecase.DeploymentRepository), new(*deployments.FileRepository)),

	contracts.ProvideRepository,
	wire.Bind(new(usecase.ContractRepository), new(*contracts.Repository)),

	localconfig.NewStore,
	wire.Bind(new(usecase.LocalConfigRepository), new(*localconfig.Store)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.DeploymentSelector), new(*interactive.SelectorAdapter)),
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	config.ProvideNetworkResolver,
	wire.Bind(new(usecase.NetworkResolver), new(*config.NetworkResolver)),
)

// BlockchainSet provides blockchain-based implementations
var BlockchainSet = wire.NewSet(
	blockchain.NewEthFramework,
	wire.Bind(new(usecase.ContractFramework), new(*blockchain.EthFramework)),

	blockchain.NewCheckerAdapter,
	wire.Bind(new(usecase.BlockchainChecker), new(*blockchain.CheckerAdapter)),
)

// ProgressSet provides the progress sink
var ProgressSet = wire.NewSet(
	progress.ProvideProgressSink,
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	RepositorySet,
	InteractiveSet,
	ConfigSet,
	BlockchainSet,
	ProgressSet,
)
