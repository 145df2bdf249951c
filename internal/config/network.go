package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/metalinks/metalinks-deployer/internal/domain/config"
)

// ChainIDFetcher asks an RPC endpoint for its chain ID
type ChainIDFetcher func(ctx context.Context, rpcURL string) (uint64, error)

// NetworkResolver resolves network names to configurations with caching
type NetworkResolver struct {
	projectRoot string
	networks    map[string]config.NetworkConfig
	cache       *NetworkCache
	fetch       ChainIDFetcher
	mu          sync.RWMutex
}

// NetworkCache caches chain ID lookups
type NetworkCache struct {
	Networks   map[string]uint64   `json:"networks"`   // name -> chainID
	RPCs       map[string]uint64   `json:"rpcs"`       // rpcURL -> chainID
	ChainNames map[uint64][]string `json:"chainNames"` // chainID -> names
	UpdatedAt  time.Time           `json:"updatedAt"`
}

// NewNetworkResolver creates a new network resolver
func NewNetworkResolver(projectRoot string, projectConfig *config.ProjectConfig) *NetworkResolver {
	r := &NetworkResolver{
		projectRoot: projectRoot,
		networks:    projectConfig.Networks,
		fetch:       FetchChainID,
	}
	r.loadCache()
	return r
}

// ProvideNetworkResolver creates a NetworkResolver for Wire dependency injection
func ProvideNetworkResolver(cfg *config.RuntimeConfig) *NetworkResolver {
	return NewNetworkResolver(cfg.ProjectRoot, cfg.ProjectConfig)
}

// WithFetcher replaces the chain ID lookup, mostly for tests
func (r *NetworkResolver) WithFetcher(fetch ChainIDFetcher) *NetworkResolver {
	r.fetch = fetch
	return r
}

// Networks returns the configured network names, sorted
func (r *NetworkResolver) Networks() []string {
	names := make([]string, 0, len(r.networks))
	for name := range r.networks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve resolves a network name to its configuration
func (r *NetworkResolver) Resolve(ctx context.Context, networkName string) (*config.Network, error) {
	nc, exists := r.networks[networkName]
	if !exists {
		return nil, fmt.Errorf("network '%s' not found in %s [networks]", networkName, ProjectFileName)
	}
	if nc.RPCURL == "" {
		return nil, fmt.Errorf("network '%s' has no rpc_url (is its environment variable set?)", networkName)
	}

	chainID := nc.ChainID
	if chainID == 0 {
		// keyed by rpc url so an edited rpc_url is looked up again
		r.mu.RLock()
		cached, ok := r.cache.RPCs[nc.RPCURL]
		r.mu.RUnlock()

		if ok {
			chainID = cached
		} else {
			fetched, err := r.fetch(ctx, nc.RPCURL)
			if err != nil {
				return nil, fmt.Errorf("failed to fetch chain ID for network %s: %w", networkName, err)
			}
			chainID = fetched
			r.updateCache(networkName, nc.RPCURL, chainID)
		}
	}

	explorer := nc.Explorer
	if explorer == "" {
		explorer = DefaultExplorerURL(chainID)
	}

	return &config.Network{
		Name:        networkName,
		RPCURL:      nc.RPCURL,
		ChainID:     chainID,
		ExplorerURL: explorer,
	}, nil
}

// FetchChainID dials rpcURL and returns eth_chainId
func FetchChainID(ctx context.Context, rpcURL string) (uint64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return 0, fmt.Errorf("failed to connect to RPC: %w", err)
	}
	defer client.Close()

	id, err := client.ChainID(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get chain ID: %w", err)
	}
	return id.Uint64(), nil
}

// DefaultExplorerURL returns a block explorer for well-known chains
func DefaultExplorerURL(chainID uint64) string {
	switch chainID {
	case 1:
		return "https://etherscan.io"
	case 11155111:
		return "https://sepolia.etherscan.io"
	case 17000:
		return "https://holesky.etherscan.io"
	case 10:
		return "https://optimistic.etherscan.io"
	case 137:
		return "https://polygonscan.com"
	case 80002:
		return "https://amoy.polygonscan.com"
	case 8453:
		return "https://basescan.org"
	case 84532:
		return "https://sepolia.basescan.org"
	case 42161:
		return "https://arbiscan.io"
	case 56:
		return "https://bscscan.com"
	default:
		return ""
	}
}

func (r *NetworkResolver) cachePath() string {
	return filepath.Join(r.projectRoot, "cache", "chainIds.json")
}

// loadCache loads the chain ID cache from disk
func (r *NetworkResolver) loadCache() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache = newNetworkCache()

	data, err := os.ReadFile(r.cachePath())
	if err != nil {
		return
	}

	if err := json.Unmarshal(data, r.cache); err != nil {
		r.cache = newNetworkCache()
	}
}

func newNetworkCache() *NetworkCache {
	return &NetworkCache{
		Networks:   make(map[string]uint64),
		RPCs:       make(map[string]uint64),
		ChainNames: make(map[uint64][]string),
		UpdatedAt:  time.Now(),
	}
}

// updateCache updates the cache with new chain ID information
func (r *NetworkResolver) updateCache(networkName, rpcURL string, chainID uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache.Networks[networkName] = chainID
	r.cache.RPCs[rpcURL] = chainID

	found := false
	for _, name := range r.cache.ChainNames[chainID] {
		if name == networkName {
			found = true
			break
		}
	}
	if !found {
		r.cache.ChainNames[chainID] = append(r.cache.ChainNames[chainID], networkName)
	}
	r.cache.UpdatedAt = time.Now()

	// cache is only an optimisation
	_ = r.saveCache()
}

// saveCache saves the cache to disk
func (r *NetworkResolver) saveCache() error {
	if err := os.MkdirAll(filepath.Dir(r.cachePath()), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(r.cache, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(r.cachePath(), data, 0644)
}
