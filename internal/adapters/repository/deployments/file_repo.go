package deployments

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/metalinks/metalinks-deployer/internal/domain"
	"github.com/metalinks/metalinks-deployer/internal/domain/config"
	"github.com/metalinks/metalinks-deployer/internal/domain/models"
	"github.com/metalinks/metalinks-deployer/internal/usecase"
	"github.com/samber/lo"
)

const DeploymentsFile = "deployments.json"

// FileRepository stores the deployments in a json file under the data directory
type FileRepository struct {
	dataDir     string
	mu          sync.RWMutex
	deployments map[string]*models.Deployment
	byAddress   map[string][]string // lowercased address -> ids

	loadOnce sync.Once
	loadErr  error
}

// NewFileRepository creates a registry backed by dataDir. The file is read on
// first use, so a broken registry only fails the calls that touch it.
// A missing file is an empty registry.
func NewFileRepository(dataDir string) *FileRepository {
	return &FileRepository{
		dataDir:     dataDir,
		deployments: make(map[string]*models.Deployment),
		byAddress:   make(map[string][]string),
	}
}

// ProvideFileRepository creates a FileRepository for Wire dependency injection
func ProvideFileRepository(cfg *config.RuntimeConfig) *FileRepository {
	return NewFileRepository(cfg.DataDir)
}

// ensureLoaded reads the registry file once
func (r *FileRepository) ensureLoaded() error {
	r.loadOnce.Do(func() {
		if err := r.load(); err != nil {
			r.loadErr = fmt.Errorf("failed to load registry: %w", err)
		}
	})
	return r.loadErr
}

func (r *FileRepository) path() string {
	return filepath.Join(r.dataDir, DeploymentsFile)
}

// load reads the registry file
func (r *FileRepository) load() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path())
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, &r.deployments); err != nil {
		return fmt.Errorf("failed to parse %s: %w", r.path(), err)
	}
	if r.deployments == nil {
		r.deployments = make(map[string]*models.Deployment)
	}

	r.rebuildLookups()
	return nil
}

// save writes the registry atomically. Caller holds the write lock.
func (r *FileRepository) save() error {
	if err := os.MkdirAll(r.dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", r.dataDir, err)
	}

	data, err := json.MarshalIndent(r.deployments, "", "  ")
	if err != nil {
		return err
	}

	// Write to temp file first
	tmpPath := r.path() + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}

	// Atomic rename
	return os.Rename(tmpPath, r.path())
}

// rebuildLookups rebuilds the address index. Caller holds the write lock.
func (r *FileRepository) rebuildLookups() {
	r.byAddress = make(map[string][]string)
	for id, dep := range r.deployments {
		addr := strings.ToLower(dep.Address)
		r.byAddress[addr] = append(r.byAddress[addr], id)
	}
}

// GetDeployment retrieves a deployment by ID
func (r *FileRepository) GetDeployment(ctx context.Context, id string) (*models.Deployment, error) {
	if err := r.ensureLoaded(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	dep, ok := r.deployments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return dep, nil
}

// GetDeploymentsByAddress retrieves every deployment recorded at an address, on any chain
func (r *FileRepository) GetDeploymentsByAddress(ctx context.Context, address string) ([]*models.Deployment, error) {
	if err := r.ensureLoaded(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byAddress[strings.ToLower(address)]
	return lo.Map(ids, func(id string, _ int) *models.Deployment { return r.deployments[id] }), nil
}

// ListDeployments retrieves deployments matching the filter
func (r *FileRepository) ListDeployments(ctx context.Context, filter domain.DeploymentFilter) ([]*models.Deployment, error) {
	if err := r.ensureLoaded(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := lo.Filter(lo.Values(r.deployments), func(dep *models.Deployment, _ int) bool {
		if filter.Network != "" && dep.Network != filter.Network {
			return false
		}
		if filter.ChainID != 0 && dep.ChainID != filter.ChainID {
			return false
		}
		if filter.ContractName != "" && dep.ContractName != filter.ContractName {
			return false
		}
		if filter.Script != "" && dep.Script != filter.Script {
			return false
		}
		return true
	})

	return result, nil
}

// SaveDeployment stores a deployment. A new deployment whose ID is already
// taken by a different address gets a "#n" suffix so history is kept.
func (r *FileRepository) SaveDeployment(ctx context.Context, deployment *models.Deployment) error {
	if err := r.ensureLoaded(); err != nil {
		return err
	}

	if deployment.ID == "" {
		deployment.ID = deployment.BaseID()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	deployment.ID = r.uniqueID(deployment)
	r.deployments[deployment.ID] = deployment
	r.rebuildLookups()

	if err := r.save(); err != nil {
		delete(r.deployments, deployment.ID)
		r.rebuildLookups()
		return fmt.Errorf("failed to save deployments: %w", err)
	}
	return nil
}

// uniqueID returns the ID to store deployment under. Caller holds the write lock.
func (r *FileRepository) uniqueID(deployment *models.Deployment) string {
	base := deployment.ID
	for n := 1; ; n++ {
		id := base
		if n > 1 {
			id = fmt.Sprintf("%s#%d", base, n)
		}
		existing, taken := r.deployments[id]
		if !taken || strings.EqualFold(existing.Address, deployment.Address) {
			return id
		}
	}
}

// Ensure the adapter implements the interface
var _ usecase.DeploymentRepository = (*FileRepository)(nil)
