package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/metalinks/metalinks-deployer/internal/domain"
	"github.com/metalinks/metalinks-deployer/internal/domain/models"
	"github.com/samber/lo"
)

// ShowDeploymentParams contains parameters for showing a deployment
type ShowDeploymentParams struct {
	// Query is a deployment ID, an ID prefix, "Contract:script", or an address
	Query string
	// Check verifies that code exists at the address on the deployment's network
	Check bool
}

// OnChainStatus is the outcome of an on-chain check
type OnChainStatus struct {
	Exists bool
	Reason string
}

// ShowDeploymentResult contains a deployment and its optional on-chain status
type ShowDeploymentResult struct {
	Deployment *models.Deployment
	OnChain    *OnChainStatus
}

// ShowDeployment is the use case for showing deployment details
type ShowDeployment struct {
	repo     DeploymentRepository
	selector DeploymentSelector
	resolver NetworkResolver
	checker  BlockchainChecker
	sink     ProgressSink
}

// NewShowDeployment creates a new ShowDeployment use case
func NewShowDeployment(
	repo DeploymentRepository,
	selector DeploymentSelector,
	resolver NetworkResolver,
	checker BlockchainChecker,
	sink ProgressSink,
) *ShowDeployment {
	return &ShowDeployment{
		repo:     repo,
		selector: selector,
		resolver: resolver,
		checker:  checker,
		sink:     sink,
	}
}

// Run executes the show deployment use case
func (uc *ShowDeployment) Run(ctx context.Context, params ShowDeploymentParams) (*ShowDeploymentResult, error) {
	if params.Query == "" {
		return nil, fmt.Errorf("a deployment ID or address is required")
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "loading",
		Message: "Loading deployment details",
		Spinner: true,
	})

	matches, err := uc.find(ctx, params.Query)
	if err != nil {
		return nil, err
	}

	var deployment *models.Deployment
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("deployment %q: %w", params.Query, domain.ErrNotFound)
	case 1:
		deployment = matches[0]
	default:
		deployment, err = uc.selector.SelectDeployment(ctx, matches, fmt.Sprintf("Multiple deployments match %q", params.Query))
		if err != nil {
			return nil, err
		}
	}

	result := &ShowDeploymentResult{Deployment: deployment}

	if params.Check {
		uc.sink.OnProgress(ctx, ProgressEvent{
			Stage:   "checking",
			Message: "Checking contract code on-chain",
			Spinner: true,
		})
		status, err := uc.checkOnChain(ctx, deployment)
		if err != nil {
			return nil, err
		}
		result.OnChain = status
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "complete",
		Message: "Deployment loaded",
	})

	return result, nil
}

func (uc *ShowDeployment) find(ctx context.Context, query string) ([]*models.Deployment, error) {
	dep, err := uc.repo.GetDeployment(ctx, query)
	if err == nil {
		return []*models.Deployment{dep}, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	if common.IsHexAddress(query) {
		return uc.repo.GetDeploymentsByAddress(ctx, query)
	}

	all, err := uc.repo.ListDeployments(ctx, domain.DeploymentFilter{})
	if err != nil {
		return nil, err
	}
	matches := lo.Filter(all, func(d *models.Deployment, _ int) bool {
		return strings.HasPrefix(d.ID, query) || strings.EqualFold(d.GetShortID(), query)
	})
	sortDeployments(matches)
	return matches, nil
}

func (uc *ShowDeployment) checkOnChain(ctx context.Context, deployment *models.Deployment) (*OnChainStatus, error) {
	network, err := uc.resolver.Resolve(ctx, deployment.Network)
	if err != nil {
		return nil, err
	}

	if err := uc.checker.Connect(ctx, network.RPCURL, deployment.ChainID); err != nil {
		return nil, err
	}
	defer uc.checker.Close()

	exists, reason, err := uc.checker.CheckDeploymentExists(ctx, deployment.Address)
	if err != nil {
		return nil, err
	}
	return &OnChainStatus{Exists: exists, Reason: reason}, nil
}
