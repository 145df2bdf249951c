package usecase_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/metalinks/metalinks-deployer/internal/domain"
	"github.com/metalinks/metalinks-deployer/internal/domain/config"
	"github.com/metalinks/metalinks-deployer/internal/domain/models"
	"github.com/metalinks/metalinks-deployer/internal/usecase"
	"github.com/stretchr/testify/mock"
)

// MockFramework is a mock implementation of ContractFramework
type MockFramework struct {
	mock.Mock
}

func (m *MockFramework) GetContractFactory(ctx context.Context, name string) (usecase.ContractFactory, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(usecase.ContractFactory), args.Error(1)
}

// MockFactory is a mock implementation of ContractFactory
type MockFactory struct {
	mock.Mock
}

func (m *MockFactory) Deploy(ctx context.Context, params ...any) (usecase.PendingContract, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(usecase.PendingContract), args.Error(1)
}

// MockPending is a mock implementation of PendingContract
type MockPending struct {
	mock.Mock
}

func (m *MockPending) Deployed(ctx context.Context) (*models.DeployedContract, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DeployedContract), args.Error(1)
}

// MockDeploymentRepository is a mock implementation of DeploymentRepository
type MockDeploymentRepository struct {
	mock.Mock
}

func (m *MockDeploymentRepository) GetDeployment(ctx context.Context, id string) (*models.Deployment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Deployment), args.Error(1)
}

func (m *MockDeploymentRepository) GetDeploymentsByAddress(ctx context.Context, address string) ([]*models.Deployment, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Deployment), args.Error(1)
}

func (m *MockDeploymentRepository) ListDeployments(ctx context.Context, filter domain.DeploymentFilter) ([]*models.Deployment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Deployment), args.Error(1)
}

func (m *MockDeploymentRepository) SaveDeployment(ctx context.Context, deployment *models.Deployment) error {
	args := m.Called(ctx, deployment)
	return args.Error(0)
}

// MockSelector is a mock implementation of DeploymentSelector
type MockSelector struct {
	mock.Mock
}

func (m *MockSelector) SelectDeployment(ctx context.Context, deployments []*models.Deployment, prompt string) (*models.Deployment, error) {
	args := m.Called(ctx, deployments, prompt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Deployment), args.Error(1)
}

// MockResolver is a mock implementation of NetworkResolver
type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) Networks() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

func (m *MockResolver) Resolve(ctx context.Context, name string) (*config.Network, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*config.Network), args.Error(1)
}

// MockChecker is a mock implementation of BlockchainChecker
type MockChecker struct {
	mock.Mock
}

func (m *MockChecker) Connect(ctx context.Context, rpcURL string, chainID uint64) error {
	return m.Called(ctx, rpcURL, chainID).Error(0)
}

func (m *MockChecker) CheckDeploymentExists(ctx context.Context, address string) (bool, string, error) {
	args := m.Called(ctx, address)
	return args.Bool(0), args.String(1), args.Error(2)
}

func (m *MockChecker) Close() {
	m.Called()
}

// MockProgressSink records progress events
type MockProgressSink struct {
	events []usecase.ProgressEvent
}

func (m *MockProgressSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	m.events = append(m.events, event)
}

func (m *MockProgressSink) Info(string)  {}
func (m *MockProgressSink) Error(string) {}

func (m *MockProgressSink) stages() []string {
	stages := make([]string, len(m.events))
	for i, e := range m.events {
		stages[i] = e.Stage
	}
	return stages
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MockContractRepository is a mock implementation of ContractRepository
type MockContractRepository struct {
	mock.Mock
}

func (m *MockContractRepository) GetContract(ctx context.Context, key string) (*models.Contract, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contract), args.Error(1)
}

func (m *MockContractRepository) ListContracts(ctx context.Context) ([]*models.Contract, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Contract), args.Error(1)
}

// MockLocalConfigRepository is a mock implementation of LocalConfigRepository
type MockLocalConfigRepository struct {
	mock.Mock
}

func (m *MockLocalConfigRepository) Exists() bool {
	return m.Called().Bool(0)
}

func (m *MockLocalConfigRepository) Load(ctx context.Context) (*config.LocalConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*config.LocalConfig), args.Error(1)
}

func (m *MockLocalConfigRepository) Save(ctx context.Context, cfg *config.LocalConfig) error {
	return m.Called(ctx, cfg).Error(0)
}

func (m *MockLocalConfigRepository) GetPath() string {
	return m.Called().String(0)
}
