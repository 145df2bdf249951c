package usecase

import (
	"context"

	"github.com/metalinks/metalinks-deployer/internal/domain"
	"github.com/metalinks/metalinks-deployer/internal/domain/config"
	"github.com/metalinks/metalinks-deployer/internal/domain/models"
)

// Contract framework ports. These mirror the capabilities a deployment
// script needs: look up a factory by contract name, deploy, wait.

// ContractFramework hands out deployment factories for named contracts
type ContractFramework interface {
	GetContractFactory(ctx context.Context, name string) (ContractFactory, error)
}

// ContractFactory submits a deployment of one contract
type ContractFactory interface {
	Deploy(ctx context.Context, args ...any) (PendingContract, error)
}

// PendingContract is a submitted deployment awaiting confirmation
type PendingContract interface {
	Deployed(ctx context.Context) (*models.DeployedContract, error)
}

// DeploymentRepository handles persistence of deployments
type DeploymentRepository interface {
	GetDeployment(ctx context.Context, id string) (*models.Deployment, error)
	GetDeploymentsByAddress(ctx context.Context, address string) ([]*models.Deployment, error)
	ListDeployments(ctx context.Context, filter domain.DeploymentFilter) ([]*models.Deployment, error)
	SaveDeployment(ctx context.Context, deployment *models.Deployment) error
}

// ContractRepository provides access to compiled contracts
type ContractRepository interface {
	GetContract(ctx context.Context, key string) (*models.Contract, error)
	ListContracts(ctx context.Context) ([]*models.Contract, error)
}

// NetworkResolver handles network configuration resolution
type NetworkResolver interface {
	Networks() []string
	Resolve(ctx context.Context, networkName string) (*config.Network, error)
}

// BlockchainChecker checks on-chain state of contracts
type BlockchainChecker interface {
	Connect(ctx context.Context, rpcURL string, chainID uint64) error
	CheckDeploymentExists(ctx context.Context, address string) (exists bool, reason string, err error)
	Close()
}

// DeploymentSelector handles interactive selection of deployments
type DeploymentSelector interface {
	SelectDeployment(ctx context.Context, deployments []*models.Deployment, prompt string) (*models.Deployment, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage   string
	Message string
	Spinner bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}

// LocalConfigRepository persists per-checkout defaults
type LocalConfigRepository interface {
	Exists() bool
	Load(ctx context.Context) (*config.LocalConfig, error)
	Save(ctx context.Context, cfg *config.LocalConfig) error
	GetPath() string
}
