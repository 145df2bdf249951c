package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/metalinks/metalinks-deployer/internal/domain/config"
	"github.com/metalinks/metalinks-deployer/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const localConfigPath = "/project/.metalinks/config.local.json"

func TestShowConfig(t *testing.T) {
	ctx := context.Background()
	store := new(MockLocalConfigRepository)
	store.On("Exists").Return(true)
	store.On("Load", ctx).Return(&config.LocalConfig{Network: "sepolia"}, nil)
	store.On("GetPath").Return(localConfigPath)

	result, err := usecase.NewShowConfig(store).Run(ctx)
	require.NoError(t, err)

	assert.True(t, result.Exists)
	assert.Equal(t, "sepolia", result.Config.Network)
	assert.Equal(t, localConfigPath, result.ConfigPath)
}

func TestSetConfig(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		existing    *config.LocalConfig
		params      usecase.SetConfigParams
		expected    *config.LocalConfig
		expectedErr string
	}{
		{
			name:     "sets network",
			existing: &config.LocalConfig{},
			params:   usecase.SetConfigParams{Key: "network", Value: "sepolia"},
			expected: &config.LocalConfig{Network: "sepolia"},
		},
		{
			name:     "key is case insensitive",
			existing: &config.LocalConfig{Network: "localhost"},
			params:   usecase.SetConfigParams{Key: "Timeout", Value: "90s"},
			expected: &config.LocalConfig{Network: "localhost", Timeout: "90s"},
		},
		{
			name:     "empty value removes key",
			existing: &config.LocalConfig{Network: "sepolia", Timeout: "1m"},
			params:   usecase.SetConfigParams{Key: "network"},
			expected: &config.LocalConfig{Timeout: "1m"},
		},
		{
			name:        "unknown key",
			params:      usecase.SetConfigParams{Key: "namespace", Value: "prod"},
			expectedErr: "unknown config key: namespace\nAvailable keys: network, timeout",
		},
		{
			name:        "invalid timeout",
			existing:    &config.LocalConfig{},
			params:      usecase.SetConfigParams{Key: "timeout", Value: "soon"},
			expectedErr: `invalid timeout "soon"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockLocalConfigRepository)
			if tt.existing != nil {
				store.On("Load", ctx).Return(tt.existing, nil)
			}
			if tt.expected != nil {
				store.On("Save", ctx, tt.expected).Return(nil)
				store.On("GetPath").Return(localConfigPath)
			}

			result, err := usecase.NewSetConfig(store).Run(ctx, tt.params)
			if tt.expectedErr != "" {
				assert.ErrorContains(t, err, tt.expectedErr)
				store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, result.UpdatedConfig)
			assert.Equal(t, localConfigPath, result.ConfigPath)
			store.AssertExpectations(t)
		})
	}
}

func TestSetConfig_SaveError(t *testing.T) {
	ctx := context.Background()
	store := new(MockLocalConfigRepository)
	store.On("Load", ctx).Return(&config.LocalConfig{}, nil)
	store.On("Save", ctx, mock.Anything).Return(errors.New("read-only file system"))

	_, err := usecase.NewSetConfig(store).Run(ctx, usecase.SetConfigParams{Key: "network", Value: "sepolia"})
	assert.EqualError(t, err, "failed to save config: read-only file system")
}
