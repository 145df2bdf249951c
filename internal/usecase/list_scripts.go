package usecase

import (
	"context"
	"sort"

	"github.com/metalinks/metalinks-deployer/internal/domain"
	"github.com/metalinks/metalinks-deployer/internal/domain/models"
)

// ScriptStatus describes one deploy script and what it last deployed
type ScriptStatus struct {
	Script domain.DeployScript
	// Artifact is the resolved "path:Name" of the contract, empty when it cannot be resolved
	Artifact      string
	ArtifactError error
	// Latest is the newest registry record made by this script, nil if none
	Latest *models.Deployment
	Count  int
}

// ListScriptsResult contains the known deploy scripts
type ListScriptsResult struct {
	Scripts []ScriptStatus
}

// ListScripts reports the deploy scripts with their artifacts and registry history
type ListScripts struct {
	repo      DeploymentRepository
	contracts ContractRepository
}

// NewListScripts creates a new ListScripts use case
func NewListScripts(repo DeploymentRepository, contracts ContractRepository) *ListScripts {
	return &ListScripts{
		repo:      repo,
		contracts: contracts,
	}
}

// Run executes the use case
func (uc *ListScripts) Run(ctx context.Context) (*ListScriptsResult, error) {
	scripts := domain.DeployScripts()
	result := &ListScriptsResult{Scripts: make([]ScriptStatus, 0, len(scripts))}

	for _, script := range scripts {
		status := ScriptStatus{Script: script}

		contract, err := uc.contracts.GetContract(ctx, script.ContractName)
		if err != nil {
			status.ArtifactError = err
		} else {
			status.Artifact = contract.Key()
		}

		deployments, err := uc.repo.ListDeployments(ctx, domain.DeploymentFilter{
			ContractName: script.ContractName,
			Script:       script.Version,
		})
		if err != nil {
			return nil, err
		}
		if len(deployments) > 0 {
			sort.Slice(deployments, func(i, j int) bool {
				return deployments[i].CreatedAt.After(deployments[j].CreatedAt)
			})
			status.Latest = deployments[0]
			status.Count = len(deployments)
		}

		result.Scripts = append(result.Scripts, status)
	}

	return result, nil
}
