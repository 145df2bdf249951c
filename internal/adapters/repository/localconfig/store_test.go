package localconfig

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/metalinks/metalinks-deployer/internal/domain/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	dataDir := filepath.Join(t.TempDir(), ".metalinks")
	store := NewStore(&config.RuntimeConfig{DataDir: dataDir})

	assert.False(t, store.Exists())
	assert.Equal(t, filepath.Join(dataDir, "config.local.json"), store.GetPath())

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, &config.LocalConfig{}, loaded)

	require.NoError(t, store.Save(ctx, &config.LocalConfig{Network: "sepolia", Timeout: "2m"}))
	assert.True(t, store.Exists())

	loaded, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sepolia", loaded.Network)
	assert.Equal(t, "2m", loaded.Timeout)

	require.NoError(t, os.WriteFile(store.GetPath(), []byte("not json"), 0644))
	_, err = store.Load(ctx)
	assert.ErrorContains(t, err, "failed to parse config file")
}
