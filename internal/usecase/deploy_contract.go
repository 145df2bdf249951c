package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/metalinks/metalinks-deployer/internal/domain"
	"github.com/metalinks/metalinks-deployer/internal/domain/models"
)

// Deployment stages reported to the progress sink
const (
	StageFactory    = "factory"
	StageDeploying  = "deploying"
	StageConfirming = "confirming"
	StageCompleted  = "completed"
)

// DeployContractParams contains parameters for a deployment
type DeployContractParams struct {
	Script domain.DeployScript
}

// DeployContractResult is a confirmed deployment
type DeployContractResult struct {
	Script   domain.DeployScript
	Contract *models.DeployedContract
}

// DeployContract deploys a script's contract through the framework.
// It makes a single attempt: one factory lookup, one deploy, one wait.
type DeployContract struct {
	framework ContractFramework
	repo      DeploymentRepository
	sink      ProgressSink
	log       *slog.Logger
}

// NewDeployContract creates a new DeployContract use case
func NewDeployContract(framework ContractFramework, repo DeploymentRepository, sink ProgressSink, log *slog.Logger) *DeployContract {
	return &DeployContract{
		framework: framework,
		repo:      repo,
		sink:      sink,
		log:       log,
	}
}

// Run executes the deployment. Framework errors are returned as-is.
func (uc *DeployContract) Run(ctx context.Context, params DeployContractParams) (*DeployContractResult, error) {
	name := params.Script.ContractName
	uc.log.Debug("deploying contract", "script", params.Script.Name, "contract", name)

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   StageFactory,
		Message: fmt.Sprintf("Loading %s factory", name),
		Spinner: true,
	})
	factory, err := uc.framework.GetContractFactory(ctx, name)
	if err != nil {
		uc.sink.OnProgress(ctx, ProgressEvent{Stage: StageCompleted})
		return nil, err
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   StageDeploying,
		Message: fmt.Sprintf("Deploying %s", name),
		Spinner: true,
	})
	pending, err := factory.Deploy(ctx)
	if err != nil {
		uc.sink.OnProgress(ctx, ProgressEvent{Stage: StageCompleted})
		return nil, err
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   StageConfirming,
		Message: "Waiting for confirmation",
		Spinner: true,
	})
	deployed, err := pending.Deployed(ctx)
	uc.sink.OnProgress(ctx, ProgressEvent{Stage: StageCompleted})
	if err != nil {
		return nil, err
	}

	uc.log.Debug("deployment confirmed", "address", deployed.Address, "tx", deployed.TransactionHash)

	return &DeployContractResult{
		Script:   params.Script,
		Contract: deployed,
	}, nil
}

// Record stores a confirmed deployment in the registry. Failures are
// logged and returned but never undo the deployment.
func (uc *DeployContract) Record(ctx context.Context, result *DeployContractResult) (*models.Deployment, error) {
	c := result.Contract

	network := c.Network
	if network == "" {
		network = "unknown"
	}

	deployment := &models.Deployment{
		Script:          result.Script.Version,
		Network:         network,
		ChainID:         c.ChainID,
		ContractName:    result.Script.ContractName,
		Address:         c.Address,
		TransactionHash: c.TransactionHash,
		BlockNumber:     c.BlockNumber,
		Deployer:        c.Deployer,
		GasUsed:         c.GasUsed,
		Artifact:        c.Artifact,
		CreatedAt:       time.Now().UTC(),
	}
	deployment.ID = deployment.BaseID()

	if err := uc.repo.SaveDeployment(ctx, deployment); err != nil {
		uc.log.Warn("failed to record deployment", "address", c.Address, "error", err)
		return nil, fmt.Errorf("failed to record deployment: %w", err)
	}

	uc.log.Debug("deployment recorded", "id", deployment.ID)
	return deployment, nil
}
