package blockchain

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"io"
	"log/slog"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/metalinks/metalinks-deployer/internal/domain"
	"github.com/metalinks/metalinks-deployer/internal/domain/config"
	"github.com/metalinks/metalinks-deployer/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	simulatedChainID = 1337
	// creation code returning a single STOP byte as runtime code
	tinyInitCode = "0x6001600c60003960016000f300"
	// creation code that reverts
	revertingInitCode = "0x60006000fd"
	// creation code that leaves no runtime code
	emptyInitCode = "0x00"
)

type stubContracts struct {
	contract *models.Contract
	err      error
}

func (s *stubContracts) GetContract(ctx context.Context, key string) (*models.Contract, error) {
	return s.contract, s.err
}

func (s *stubContracts) ListContracts(ctx context.Context) ([]*models.Contract, error) {
	return []*models.Contract{s.contract}, s.err
}

type stubNetworks struct {
	network config.Network
}

func (s *stubNetworks) Networks() []string { return []string{s.network.Name} }

func (s *stubNetworks) Resolve(ctx context.Context, name string) (*config.Network, error) {
	n := s.network
	return &n, nil
}

func metaLinksContract(bytecode string) *models.Contract {
	return &models.Contract{
		Name:   domain.MetaLinksContract,
		Path:   "contracts/MetaLinks.sol",
		Format: models.ArtifactFormatHardhat,
		Artifact: &models.Artifact{
			ContractName: domain.MetaLinksContract,
			SourceName:   "contracts/MetaLinks.sol",
			ABI:          json.RawMessage(`[]`),
			Bytecode:     models.Bytecode{Object: bytecode},
		},
	}
}

type harness struct {
	sim      *simulated.Backend
	key      string
	deployer common.Address
	cfg      *config.RuntimeConfig
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	deployer := crypto.PubkeyToAddress(key.PublicKey)

	balance := new(big.Int).Mul(big.NewInt(100), big.NewInt(1e18))
	sim := simulated.NewBackend(types.GenesisAlloc{deployer: {Balance: balance}})
	t.Cleanup(func() { sim.Close() })

	return &harness{
		sim:      sim,
		key:      "0x" + hex.EncodeToString(crypto.FromECDSA(key)),
		deployer: deployer,
		cfg: &config.RuntimeConfig{
			NetworkName: "localhost",
			PrivateKey:  "0x" + hex.EncodeToString(crypto.FromECDSA(key)),
			Timeout:     10 * time.Second,
		},
	}
}

func (h *harness) dialer() Dialer {
	return func(ctx context.Context, rpcURL string) (Backend, func(), error) {
		return h.sim.Client(), func() {}, nil
	}
}

func (h *harness) framework(contract *models.Contract, chainID uint64) *EthFramework {
	networks := &stubNetworks{network: config.Network{
		Name:    "localhost",
		RPCURL:  "simulated",
		ChainID: chainID,
	}}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewEthFramework(&stubContracts{contract: contract}, networks, h.cfg, log).WithDialer(h.dialer())
}

func TestEthFramework_Deploy(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	fw := h.framework(metaLinksContract(tinyInitCode), simulatedChainID)
	defer fw.Close()

	factory, err := fw.GetContractFactory(ctx, domain.MetaLinksContract)
	require.NoError(t, err)

	pending, err := factory.Deploy(ctx)
	require.NoError(t, err)
	h.sim.Commit()

	deployed, err := pending.Deployed(ctx)
	require.NoError(t, err)

	expected := crypto.CreateAddress(h.deployer, 0)
	assert.Equal(t, expected.Hex(), deployed.Address)
	assert.Equal(t, h.deployer.Hex(), deployed.Deployer)
	assert.Equal(t, "localhost", deployed.Network)
	assert.Equal(t, uint64(simulatedChainID), deployed.ChainID)
	assert.Equal(t, uint64(1), deployed.BlockNumber)
	assert.NotZero(t, deployed.GasUsed)
	assert.NotEmpty(t, deployed.TransactionHash)
	assert.Equal(t, "contracts/MetaLinks.sol:MetaLinks", deployed.Artifact.Path)

	// checker sees the code
	checker := NewCheckerAdapter().WithDialer(h.dialer())
	require.NoError(t, checker.Connect(ctx, "simulated", simulatedChainID))
	defer checker.Close()

	exists, reason, err := checker.CheckDeploymentExists(ctx, deployed.Address)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Empty(t, reason)

	exists, reason, err = checker.CheckDeploymentExists(ctx, "0x000000000000000000000000000000000000dEaD")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Equal(t, "no code at address", reason)
}

func TestEthFramework_GetContractFactoryErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("chain mismatch", func(t *testing.T) {
		h := newHarness(t)
		fw := h.framework(metaLinksContract(tinyInitCode), 5)
		defer fw.Close()

		_, err := fw.GetContractFactory(ctx, domain.MetaLinksContract)
		assert.ErrorIs(t, err, domain.ErrNetworkMismatch)
	})

	t.Run("missing deployer key", func(t *testing.T) {
		h := newHarness(t)
		h.cfg.PrivateKey = ""
		fw := h.framework(metaLinksContract(tinyInitCode), simulatedChainID)

		_, err := fw.GetContractFactory(ctx, domain.MetaLinksContract)
		assert.ErrorIs(t, err, domain.ErrMissingDeployer)
	})

	t.Run("invalid deployer key", func(t *testing.T) {
		h := newHarness(t)
		h.cfg.PrivateKey = "0xnothex"
		fw := h.framework(metaLinksContract(tinyInitCode), simulatedChainID)

		_, err := fw.GetContractFactory(ctx, domain.MetaLinksContract)
		assert.ErrorContains(t, err, "invalid deployer private key")
	})

	t.Run("unlinked libraries", func(t *testing.T) {
		h := newHarness(t)
		fw := h.framework(metaLinksContract("0x73__$abcdef$__00"), simulatedChainID)

		_, err := fw.GetContractFactory(ctx, domain.MetaLinksContract)
		assert.ErrorIs(t, err, domain.ErrUnlinkedLibraries)
	})

	t.Run("empty bytecode", func(t *testing.T) {
		h := newHarness(t)
		fw := h.framework(metaLinksContract("0x"), simulatedChainID)

		_, err := fw.GetContractFactory(ctx, domain.MetaLinksContract)
		assert.ErrorContains(t, err, "no creation bytecode")
	})

	t.Run("contract lookup error is returned unchanged", func(t *testing.T) {
		h := newHarness(t)
		lookupErr := &domain.ContractNotFoundError{Name: domain.MetaLinksContract}
		networks := &stubNetworks{network: config.Network{Name: "localhost", ChainID: simulatedChainID}}
		fw := NewEthFramework(&stubContracts{err: lookupErr}, networks, h.cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

		_, err := fw.GetContractFactory(ctx, domain.MetaLinksContract)
		assert.Same(t, lookupErr, err)
	})
}

func TestEthFramework_DeployFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("reverting constructor", func(t *testing.T) {
		h := newHarness(t)
		fw := h.framework(metaLinksContract(revertingInitCode), simulatedChainID)
		defer fw.Close()

		factory, err := fw.GetContractFactory(ctx, domain.MetaLinksContract)
		require.NoError(t, err)

		_, err = factory.Deploy(ctx)
		assert.ErrorContains(t, err, "failed to deploy MetaLinks")
	})

	t.Run("no runtime code", func(t *testing.T) {
		h := newHarness(t)
		fw := h.framework(metaLinksContract(emptyInitCode), simulatedChainID)
		defer fw.Close()

		factory, err := fw.GetContractFactory(ctx, domain.MetaLinksContract)
		require.NoError(t, err)

		pending, err := factory.Deploy(ctx)
		require.NoError(t, err)
		h.sim.Commit()

		_, err = pending.Deployed(ctx)
		assert.ErrorIs(t, err, domain.ErrNotDeployed)
	})

	t.Run("confirmation timeout", func(t *testing.T) {
		h := newHarness(t)
		h.cfg.Timeout = 50 * time.Millisecond
		fw := h.framework(metaLinksContract(tinyInitCode), simulatedChainID)
		defer fw.Close()

		factory, err := fw.GetContractFactory(ctx, domain.MetaLinksContract)
		require.NoError(t, err)

		pending, err := factory.Deploy(ctx)
		require.NoError(t, err)

		// never committed
		_, err = pending.Deployed(ctx)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
