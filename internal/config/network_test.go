package config

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/metalinks/metalinks-deployer/internal/domain/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetworkResolver(t *testing.T) {
	ctx := context.Background()

	projectConfig := &config.ProjectConfig{
		Networks: map[string]config.NetworkConfig{
			"localhost": {RPCURL: config.LocalRPCURL, ChainID: config.LocalChainID},
			"sepolia":   {RPCURL: "https://sepolia.example.org"},
			"custom":    {RPCURL: "https://custom.example.org", ChainID: 999, Explorer: "https://scan.example.org"},
			"broken":    {RPCURL: ""},
		},
	}

	t.Run("configured chain id skips rpc", func(t *testing.T) {
		r := NewNetworkResolver(t.TempDir(), projectConfig).WithFetcher(func(context.Context, string) (uint64, error) {
			t.Fatal("fetcher should not be called")
			return 0, nil
		})

		network, err := r.Resolve(ctx, "custom")
		require.NoError(t, err)
		assert.Equal(t, uint64(999), network.ChainID)
		assert.Equal(t, "https://scan.example.org", network.ExplorerURL)
	})

	t.Run("fetches and caches chain id", func(t *testing.T) {
		dir := t.TempDir()
		calls := 0
		fetch := func(_ context.Context, rpcURL string) (uint64, error) {
			calls++
			assert.Equal(t, "https://sepolia.example.org", rpcURL)
			return 11155111, nil
		}

		r := NewNetworkResolver(dir, projectConfig).WithFetcher(fetch)
		network, err := r.Resolve(ctx, "sepolia")
		require.NoError(t, err)
		assert.Equal(t, uint64(11155111), network.ChainID)
		assert.Equal(t, "https://sepolia.etherscan.io", network.ExplorerURL)

		_, err = r.Resolve(ctx, "sepolia")
		require.NoError(t, err)
		assert.Equal(t, 1, calls)

		assert.FileExists(t, filepath.Join(dir, "cache", "chainIds.json"))

		// a fresh resolver reads the cache from disk
		r2 := NewNetworkResolver(dir, projectConfig).WithFetcher(fetch)
		_, err = r2.Resolve(ctx, "sepolia")
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("changed rpc url is fetched again", func(t *testing.T) {
		dir := t.TempDir()
		served := map[string]uint64{
			"https://a.example": 11155111,
			"https://b.example": 17000,
		}
		var fetched []string
		fetch := func(_ context.Context, rpcURL string) (uint64, error) {
			fetched = append(fetched, rpcURL)
			return served[rpcURL], nil
		}

		before := &config.ProjectConfig{Networks: map[string]config.NetworkConfig{
			"testnet": {RPCURL: "https://a.example"},
		}}
		network, err := NewNetworkResolver(dir, before).WithFetcher(fetch).Resolve(ctx, "testnet")
		require.NoError(t, err)
		assert.Equal(t, uint64(11155111), network.ChainID)

		after := &config.ProjectConfig{Networks: map[string]config.NetworkConfig{
			"testnet": {RPCURL: "https://b.example"},
		}}
		network, err = NewNetworkResolver(dir, after).WithFetcher(fetch).Resolve(ctx, "testnet")
		require.NoError(t, err)
		assert.Equal(t, uint64(17000), network.ChainID)
		assert.Equal(t, "https://holesky.etherscan.io", network.ExplorerURL)

		assert.Equal(t, []string{"https://a.example", "https://b.example"}, fetched)
	})

	t.Run("fetch failure", func(t *testing.T) {
		r := NewNetworkResolver(t.TempDir(), projectConfig).WithFetcher(func(context.Context, string) (uint64, error) {
			return 0, errors.New("connection refused")
		})

		_, err := r.Resolve(ctx, "sepolia")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("unknown and empty networks", func(t *testing.T) {
		r := NewNetworkResolver(t.TempDir(), projectConfig)

		_, err := r.Resolve(ctx, "mainnet")
		assert.ErrorContains(t, err, "not found")

		_, err = r.Resolve(ctx, "broken")
		assert.ErrorContains(t, err, "no rpc_url")
	})

	t.Run("lists networks sorted", func(t *testing.T) {
		r := NewNetworkResolver(t.TempDir(), projectConfig)
		assert.Equal(t, []string{"broken", "custom", "localhost", "sepolia"}, r.Networks())
	})
}
