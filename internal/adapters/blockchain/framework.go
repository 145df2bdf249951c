package blockchain

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/metalinks/metalinks-deployer/internal/domain"
	"github.com/metalinks/metalinks-deployer/internal/domain/config"
	"github.com/metalinks/metalinks-deployer/internal/domain/models"
	"github.com/metalinks/metalinks-deployer/internal/usecase"
)

// Backend is the part of an RPC client needed to deploy and confirm contracts
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
}

// Dialer connects to an RPC endpoint. The returned func releases the connection.
type Dialer func(ctx context.Context, rpcURL string) (Backend, func(), error)

// DialEthclient is the default Dialer
func DialEthclient(ctx context.Context, rpcURL string) (Backend, func(), error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, nil, err
	}
	return client, client.Close, nil
}

// EthFramework deploys compiled artifacts with go-ethereum
type EthFramework struct {
	contracts usecase.ContractRepository
	networks  usecase.NetworkResolver
	cfg       *config.RuntimeConfig
	dial      Dialer
	log       *slog.Logger

	mu      sync.Mutex
	closers []func()
}

// NewEthFramework creates a new go-ethereum backed contract framework
func NewEthFramework(
	contracts usecase.ContractRepository,
	networks usecase.NetworkResolver,
	cfg *config.RuntimeConfig,
	log *slog.Logger,
) *EthFramework {
	return &EthFramework{
		contracts: contracts,
		networks:  networks,
		cfg:       cfg,
		dial:      DialEthclient,
		log:       log,
	}
}

// WithDialer replaces the RPC dialer
func (f *EthFramework) WithDialer(dial Dialer) *EthFramework {
	f.dial = dial
	return f
}

// Close releases every connection opened by the framework
func (f *EthFramework) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.closers {
		c()
	}
	f.closers = nil
}

// GetContractFactory resolves the named artifact and prepares a signer on the configured network
func (f *EthFramework) GetContractFactory(ctx context.Context, name string) (usecase.ContractFactory, error) {
	contract, err := f.contracts.GetContract(ctx, name)
	if err != nil {
		return nil, err
	}
	artifact := contract.Artifact

	if artifact.Bytecode.IsEmpty() {
		return nil, fmt.Errorf("%s has no creation bytecode (is it abstract or an interface?)", contract.Key())
	}
	if !artifact.Linked() {
		return nil, fmt.Errorf("%s: %w", contract.Key(), domain.ErrUnlinkedLibraries)
	}

	parsedABI, err := abi.JSON(bytes.NewReader(artifact.ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI for %s: %w", contract.Key(), err)
	}

	code, err := decodeBytecode(artifact.Bytecode.Object)
	if err != nil {
		return nil, fmt.Errorf("failed to decode bytecode for %s: %w", contract.Key(), err)
	}

	key, err := f.deployerKey()
	if err != nil {
		return nil, err
	}

	network, err := f.networks.Resolve(ctx, f.cfg.NetworkName)
	if err != nil {
		return nil, err
	}

	backend, err := f.connect(ctx, network)
	if err != nil {
		return nil, err
	}

	auth, err := bind.NewKeyedTransactorWithChainID(key, new(big.Int).SetUint64(network.ChainID))
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}

	f.log.Debug("contract factory ready",
		"contract", contract.Key(),
		"network", network.Name,
		"chainId", network.ChainID,
		"deployer", auth.From.Hex(),
	)

	return &ContractFactory{
		contract: contract,
		abi:      parsedABI,
		code:     code,
		auth:     auth,
		backend:  backend,
		network:  network,
		cfg:      f.cfg,
		log:      f.log,
	}, nil
}

func (f *EthFramework) deployerKey() (*ecdsa.PrivateKey, error) {
	raw := strings.TrimSpace(f.cfg.PrivateKey)
	if raw == "" {
		return nil, domain.ErrMissingDeployer
	}
	key, err := crypto.HexToECDSA(strings.TrimPrefix(raw, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid deployer private key: %w", err)
	}
	return key, nil
}

// connect dials the network and checks the endpoint serves the configured chain
func (f *EthFramework) connect(ctx context.Context, network *config.Network) (Backend, error) {
	backend, closer, err := f.dial(ctx, network.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", network.Name, err)
	}

	f.mu.Lock()
	f.closers = append(f.closers, closer)
	f.mu.Unlock()

	chainID, err := backend.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain ID from %s: %w", network.Name, err)
	}
	if network.ChainID != 0 && chainID.Uint64() != network.ChainID {
		return nil, fmt.Errorf("%w: %s is configured for chain %d but the RPC reports %d",
			domain.ErrNetworkMismatch, network.Name, network.ChainID, chainID.Uint64())
	}
	network.ChainID = chainID.Uint64()
	return backend, nil
}

func decodeBytecode(object string) ([]byte, error) {
	if !strings.HasPrefix(object, "0x") {
		object = "0x" + object
	}
	return hexutil.Decode(object)
}

// ContractFactory deploys one artifact from one signer
type ContractFactory struct {
	contract *models.Contract
	abi      abi.ABI
	code     []byte
	auth     *bind.TransactOpts
	backend  Backend
	network  *config.Network
	cfg      *config.RuntimeConfig
	log      *slog.Logger
}

// Deploy submits the creation transaction
func (c *ContractFactory) Deploy(ctx context.Context, args ...any) (usecase.PendingContract, error) {
	opts := *c.auth
	opts.Context = ctx

	address, tx, _, err := bind.DeployContract(&opts, c.abi, c.code, c.backend, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to deploy %s: %w", c.contract.Name, err)
	}

	c.log.Debug("deployment submitted", "contract", c.contract.Name, "address", address.Hex(), "tx", tx.Hash().Hex())

	return &PendingContract{factory: c, address: address, tx: tx}, nil
}

// PendingContract is a submitted creation transaction
type PendingContract struct {
	factory *ContractFactory
	address common.Address
	tx      *types.Transaction
}

// Address returns the address the contract will be created at
func (p *PendingContract) Address() common.Address {
	return p.address
}

// Deployed waits for the creation transaction to be mined and the code to exist
func (p *PendingContract) Deployed(ctx context.Context) (*models.DeployedContract, error) {
	if p.factory.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.factory.cfg.Timeout)
		defer cancel()
	}

	receipt, err := bind.WaitMined(ctx, p.factory.backend, p.tx)
	if err != nil {
		return nil, fmt.Errorf("failed waiting for transaction %s: %w", p.tx.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("deployment transaction %s reverted", p.tx.Hash().Hex())
	}

	code, err := p.factory.backend.CodeAt(ctx, p.address, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read code at %s: %w", p.address.Hex(), err)
	}
	if len(code) == 0 {
		return nil, fmt.Errorf("%w at %s", domain.ErrNotDeployed, p.address.Hex())
	}

	contract := p.factory.contract
	var blockNumber uint64
	if receipt.BlockNumber != nil {
		blockNumber = receipt.BlockNumber.Uint64()
	}

	return &models.DeployedContract{
		Address:         p.address.Hex(),
		TransactionHash: p.tx.Hash().Hex(),
		BlockNumber:     blockNumber,
		Deployer:        p.factory.auth.From.Hex(),
		GasUsed:         receipt.GasUsed,
		Network:         p.factory.network.Name,
		ChainID:         p.factory.network.ChainID,
		Artifact: models.ArtifactInfo{
			Path:            contract.Key(),
			Format:          contract.Format,
			CompilerVersion: contract.Artifact.Metadata.Compiler.Version,
		},
	}, nil
}

// Ensure the adapters implement the interfaces
var (
	_ usecase.ContractFramework = (*EthFramework)(nil)
	_ usecase.ContractFactory   = (*ContractFactory)(nil)
	_ usecase.PendingContract   = (*PendingContract)(nil)
)
