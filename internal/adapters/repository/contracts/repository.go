package contracts

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/metalinks/metalinks-deployer/internal/domain"
	"github.com/metalinks/metalinks-deployer/internal/domain/config"
	"github.com/metalinks/metalinks-deployer/internal/domain/models"
	"github.com/metalinks/metalinks-deployer/internal/usecase"
	"github.com/sahilm/fuzzy"
)

const maxSuggestions = 3

// Repository discovers and indexes compiled contract artifacts
type Repository struct {
	projectRoot   string
	artifactDirs  []string
	contracts     map[string]*models.Contract   // key: "path:contractName"
	contractNames map[string][]*models.Contract // key: contract name
	log           *slog.Logger
	mu            sync.RWMutex
	indexed       bool
}

// NewRepository creates a new contract repository over the given artifact directories
func NewRepository(projectRoot string, artifactDirs []string, log *slog.Logger) *Repository {
	return &Repository{
		projectRoot:   projectRoot,
		artifactDirs:  artifactDirs,
		log:           log,
		contracts:     make(map[string]*models.Contract),
		contractNames: make(map[string][]*models.Contract),
	}
}

// ProvideRepository creates a Repository for Wire dependency injection
func ProvideRepository(cfg *config.RuntimeConfig, log *slog.Logger) *Repository {
	dirs := config.DefaultArtifactDirs
	if cfg.ProjectConfig != nil && len(cfg.ProjectConfig.Artifacts) > 0 {
		dirs = cfg.ProjectConfig.Artifacts
	}
	return NewRepository(cfg.ProjectRoot, dirs, log)
}

// Index discovers all artifacts. Directories listed first win when the same
// source:contract pair appears in several of them.
func (r *Repository) Index() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexed {
		return nil
	}

	r.contracts = make(map[string]*models.Contract)
	r.contractNames = make(map[string][]*models.Contract)

	found := false
	for _, dir := range r.artifactDirs {
		root := dir
		if !filepath.IsAbs(root) {
			root = filepath.Join(r.projectRoot, dir)
		}
		if _, err := os.Stat(root); os.IsNotExist(err) {
			continue
		}
		found = true

		err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				if info.Name() == "build-info" {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) != ".json" || strings.HasSuffix(path, ".dbg.json") {
				return nil
			}
			return r.processArtifact(path)
		})
		if err != nil {
			return fmt.Errorf("failed to index %s: %w", dir, err)
		}
	}

	if !found {
		return fmt.Errorf("no artifact directories found (looked for %s); compile the contracts first", strings.Join(r.artifactDirs, ", "))
	}

	r.indexed = true
	return nil
}

// processArtifact processes a single artifact file
func (r *Repository) processArtifact(artifactPath string) error {
	data, err := os.ReadFile(artifactPath)
	if err != nil {
		return err
	}

	var artifact models.Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		// not an artifact
		return nil
	}

	sourceName, contractName := artifact.Target()
	if contractName == "" || sourceName == "" || len(artifact.ABI) == 0 {
		return nil
	}

	format := models.ArtifactFormatFoundry
	if strings.HasPrefix(artifact.Format, "hh-") {
		format = models.ArtifactFormatHardhat
	}

	relArtifactPath, _ := filepath.Rel(r.projectRoot, artifactPath)

	info := &models.Contract{
		Name:         contractName,
		Path:         sourceName,
		ArtifactPath: relArtifactPath,
		Format:       format,
		Artifact:     &artifact,
	}

	if _, exists := r.contracts[info.Key()]; exists {
		return nil
	}

	r.log.Debug("indexed artifact", "contract", info.Key(), "artifact", relArtifactPath, "format", format)

	r.contracts[info.Key()] = info
	r.contractNames[info.Name] = append(r.contractNames[info.Name], info)
	return nil
}

// GetContract retrieves a contract by name or "path:name"
func (r *Repository) GetContract(ctx context.Context, key string) (*models.Contract, error) {
	if err := r.Index(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if contract, exists := r.contracts[key]; exists {
		return contract, nil
	}

	if !strings.Contains(key, ":") {
		matches := r.contractNames[key]
		switch len(matches) {
		case 0:
		case 1:
			return matches[0], nil
		default:
			keys := make([]string, len(matches))
			for i, m := range matches {
				keys[i] = m.Key()
			}
			return nil, &domain.AmbiguousContractError{Name: key, Matches: keys}
		}
	}

	return nil, &domain.ContractNotFoundError{Name: key, Suggestions: r.suggest(key)}
}

// ListContracts returns every indexed contract sorted by key
func (r *Repository) ListContracts(ctx context.Context) ([]*models.Contract, error) {
	if err := r.Index(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Contract, 0, len(r.contracts))
	for _, c := range r.contracts {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Key() < result[j].Key() })
	return result, nil
}

// suggest returns the closest contract names to key. Caller holds the read lock.
func (r *Repository) suggest(key string) []string {
	if idx := strings.LastIndex(key, ":"); idx != -1 {
		key = key[idx+1:]
	}

	names := make([]string, 0, len(r.contractNames))
	for name := range r.contractNames {
		names = append(names, name)
	}
	sort.Strings(names)

	var suggestions []string
	for _, match := range fuzzy.Find(key, names) {
		suggestions = append(suggestions, match.Str)
		if len(suggestions) == maxSuggestions {
			break
		}
	}
	if len(suggestions) > 0 {
		return suggestions
	}

	// fuzzy.Find needs every rune of the pattern in order, so also try the reverse
	lower := strings.ToLower(key)
	for _, name := range names {
		if strings.Contains(lower, strings.ToLower(name)) {
			suggestions = append(suggestions, name)
			if len(suggestions) == maxSuggestions {
				break
			}
		}
	}
	return suggestions
}

// Ensure the adapter implements the interface
var _ usecase.ContractRepository = (*Repository)(nil)
