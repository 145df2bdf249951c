package usecase

import (
	"context"
	"sort"

	"github.com/metalinks/metalinks-deployer/internal/domain"
	"github.com/metalinks/metalinks-deployer/internal/domain/models"
	"github.com/samber/lo"
)

// ListDeploymentsParams contains parameters for listing deployments
type ListDeploymentsParams struct {
	Network      string
	ContractName string
	Script       string
}

// DeploymentListResult contains the result of listing deployments
type DeploymentListResult struct {
	Deployments []*models.Deployment
	Summary     DeploymentSummary
}

// DeploymentSummary provides summary statistics
type DeploymentSummary struct {
	Total     int
	ByNetwork map[string]int
	ByScript  map[string]int
}

// ListDeployments is the use case for listing deployments
type ListDeployments struct {
	repo DeploymentRepository
	sink ProgressSink
}

// NewListDeployments creates a new ListDeployments use case
func NewListDeployments(repo DeploymentRepository, sink ProgressSink) *ListDeployments {
	return &ListDeployments{
		repo: repo,
		sink: sink,
	}
}

// Run executes the list deployments use case
func (uc *ListDeployments) Run(ctx context.Context, params ListDeploymentsParams) (*DeploymentListResult, error) {
	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "loading",
		Message: "Loading deployments from registry",
		Spinner: true,
	})

	deployments, err := uc.repo.ListDeployments(ctx, domain.DeploymentFilter{
		Network:      params.Network,
		ContractName: params.ContractName,
		Script:       params.Script,
	})
	if err != nil {
		return nil, err
	}

	sortDeployments(deployments)

	summary := DeploymentSummary{
		Total:     len(deployments),
		ByNetwork: lo.CountValuesBy(deployments, func(d *models.Deployment) string { return d.Network }),
		ByScript:  lo.CountValuesBy(deployments, func(d *models.Deployment) string { return d.Script }),
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "complete",
		Message: "Deployments loaded",
	})

	return &DeploymentListResult{
		Deployments: deployments,
		Summary:     summary,
	}, nil
}

// sortDeployments orders by network, chain, then newest first
func sortDeployments(deployments []*models.Deployment) {
	sort.SliceStable(deployments, func(i, j int) bool {
		a, b := deployments[i], deployments[j]
		if a.Network != b.Network {
			return a.Network < b.Network
		}
		if a.ChainID != b.ChainID {
			return a.ChainID < b.ChainID
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
}
