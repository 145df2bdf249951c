package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/metalinks/metalinks-deployer/internal/domain"
	"github.com/metalinks/metalinks-deployer/internal/domain/models"
	"github.com/metalinks/metalinks-deployer/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func init() {
	color.NoColor = true
}

func sampleDeployment() *models.Deployment {
	return &models.Deployment{
		ID:              "sepolia/11155111/MetaLinks:v3#2",
		Script:          "v3",
		Network:         "sepolia",
		ChainID:         11155111,
		ContractName:    "MetaLinks",
		Address:         "0xbd3fd4aF1E3f12c90118773A6e03054005B14FDE",
		TransactionHash: "0x9f2c1c4b1f7e7b7a7ad3b0f6d36a8a8b0c7f6f1d0c9b8a7f6e5d4c3b2a190807",
		BlockNumber:     4_812_345,
		Deployer:        "0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
		GasUsed:         1_234_567,
		Artifact: models.ArtifactInfo{
			Path:   "contracts/MetaLinks.sol:MetaLinks",
			Format: models.ArtifactFormatHardhat,
		},
		CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestDeployRenderer(t *testing.T) {
	var buf bytes.Buffer
	err := NewDeployRenderer(&buf).Render(&usecase.DeployContractResult{
		Script:   domain.MustDeployScript("v2"),
		Contract: &models.DeployedContract{Address: "0xABCDEF"},
	})
	require.NoError(t, err)
	assert.Equal(t, "MetaLinks deployed to: 0xABCDEF\n", buf.String())
}

func TestDeploymentRenderer(t *testing.T) {
	result := &usecase.ShowDeploymentResult{
		Deployment: sampleDeployment(),
		OnChain:    &usecase.OnChainStatus{Exists: false, Reason: "no code at address"},
	}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		r, err := NewDeploymentRenderer(&buf, FormatJSON)
		require.NoError(t, err)
		require.NoError(t, r.Render(result))

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, "sepolia/11155111/MetaLinks:v3#2", decoded["id"])
		assert.Equal(t, "0xbd3fd4aF1E3f12c90118773A6e03054005B14FDE", decoded["address"])
		assert.Equal(t, "2024-03-01T12:00:00Z", decoded["createdAt"])
		assert.Equal(t, map[string]any{"exists": false, "reason": "no code at address"}, decoded["onChain"])
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		r, err := NewDeploymentRenderer(&buf, FormatYAML)
		require.NoError(t, err)
		require.NoError(t, r.Render(result))

		var decoded map[string]any
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, "v3", decoded["script"])
		assert.Equal(t, 11155111, decoded["chainId"])
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		r, err := NewDeploymentRenderer(&buf, "")
		require.NoError(t, err)
		require.NoError(t, r.Render(result))

		out := buf.String()
		assert.Contains(t, out, "Deployment: sepolia/11155111/MetaLinks:v3#2")
		assert.Contains(t, out, "Network: Sepolia (chain 11155111)")
		assert.Contains(t, out, "Gas Used: 1234567")
		assert.Contains(t, out, "❌ No code at address")
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := NewDeploymentRenderer(&bytes.Buffer{}, "xml")
		assert.EqualError(t, err, `invalid format "xml" (valid: text, json, yaml)`)
	})
}

func TestDeploymentsRenderer(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewDeploymentsRenderer(&buf, false).Render(&usecase.DeploymentListResult{}))
		assert.Equal(t, "No deployments found\n", buf.String())
	})

	t.Run("grouped by network", func(t *testing.T) {
		local := &models.Deployment{
			ID: "localhost/31337/MetaLinks:v2", Script: "v2", Network: "localhost", ChainID: 31337,
			ContractName: "MetaLinks", Address: "0x5FbDB2315678afecb367f032d93F642f64180aa3",
		}
		deps := []*models.Deployment{sampleDeployment(), local}

		var buf bytes.Buffer
		err := NewDeploymentsRenderer(&buf, false).Render(&usecase.DeploymentListResult{
			Deployments: deps,
			Summary:     usecase.DeploymentSummary{Total: 2},
		})
		require.NoError(t, err)

		out := buf.String()
		assert.Contains(t, out, "Localhost (31337)")
		assert.Contains(t, out, "Sepolia (11155111)")
		assert.Contains(t, out, "MetaLinks:v3#2")
		assert.Contains(t, out, "MetaLinks:v2")
		assert.Contains(t, out, "0x9f2c1c…0807")
		assert.Less(t, bytes.Index(buf.Bytes(), []byte("Localhost")), bytes.Index(buf.Bytes(), []byte("Sepolia")))
		assert.Contains(t, out, "Total: 2 deployment(s)")
	})
}

func TestNetworksRenderer(t *testing.T) {
	var buf bytes.Buffer
	err := NewNetworksRenderer(&buf).Render(&usecase.ListNetworksResult{
		Current: "localhost",
		Networks: []usecase.NetworkStatus{
			{Name: "localhost", ChainID: 31337},
			{Name: "sepolia", Error: errors.New("network 'sepolia' has no rpc_url")},
		},
	})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "✅ localhost (current) - Chain ID: 31337")
	assert.Contains(t, buf.String(), "❌ sepolia - Error: network 'sepolia' has no rpc_url")
}

func TestScriptsRenderer(t *testing.T) {
	var buf bytes.Buffer
	err := NewScriptsRenderer(&buf).Render(&usecase.ListScriptsResult{
		Scripts: []usecase.ScriptStatus{
			{Script: domain.MustDeployScript("v2"), ArtifactError: domain.ErrContractNotFound},
			{
				Script:   domain.MustDeployScript("v3"),
				Artifact: "contracts/MetaLinks.sol:MetaLinks",
				Latest:   sampleDeployment(),
				Count:    2,
			},
		},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "deploy-v2")
	assert.Contains(t, out, "missing")
	assert.Contains(t, out, "0x16De3943bb2aD61cA1c79cAf672c995fa3Ee0cBC")
	assert.Contains(t, out, "0xbd3fd4aF1E3f12c90118773A6e03054005B14FDE on sepolia (+1 earlier)")
}

func TestNetworkTitle(t *testing.T) {
	assert.Equal(t, "Arbitrum Sepolia", networkTitle("arbitrum-sepolia"))
	assert.Equal(t, "Localhost", networkTitle("localhost"))
}
