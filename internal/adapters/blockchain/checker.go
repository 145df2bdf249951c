package blockchain

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/metalinks/metalinks-deployer/internal/domain"
	"github.com/metalinks/metalinks-deployer/internal/usecase"
)

// CheckerAdapter implements the BlockchainChecker interface using ethclient
type CheckerAdapter struct {
	dial    Dialer
	backend Backend
	closer  func()
	chainID uint64
}

// NewCheckerAdapter creates a new blockchain checker adapter
func NewCheckerAdapter() *CheckerAdapter {
	return &CheckerAdapter{dial: DialEthclient}
}

// WithDialer replaces the RPC dialer
func (c *CheckerAdapter) WithDialer(dial Dialer) *CheckerAdapter {
	c.dial = dial
	return c
}

// Connect establishes connection to the blockchain
func (c *CheckerAdapter) Connect(ctx context.Context, rpcURL string, chainID uint64) error {
	backend, closer, err := c.dial(ctx, rpcURL)
	if err != nil {
		return fmt.Errorf("failed to connect to RPC: %w", err)
	}
	c.backend = backend
	c.closer = closer

	// Verify chain ID matches
	networkChainID, err := c.backend.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("failed to get chain ID: %w", err)
	}

	// If chainID was 0, use the network's chain ID
	if chainID == 0 {
		c.chainID = networkChainID.Uint64()
	} else if networkChainID.Uint64() != chainID {
		return fmt.Errorf("%w: expected chain %d, got %d", domain.ErrNetworkMismatch, chainID, networkChainID.Uint64())
	} else {
		c.chainID = chainID
	}

	return nil
}

// CheckDeploymentExists checks if a contract exists at the given address
func (c *CheckerAdapter) CheckDeploymentExists(ctx context.Context, address string) (exists bool, reason string, err error) {
	if c.backend == nil {
		return false, "", fmt.Errorf("not connected to blockchain")
	}
	if !common.IsHexAddress(address) {
		return false, "", fmt.Errorf("%w: %s", domain.ErrInvalidAddress, address)
	}

	addr := common.HexToAddress(address)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	code, err := c.backend.CodeAt(ctx, addr, nil)
	if err != nil {
		return false, fmt.Sprintf("failed to check code: %v", err), nil
	}

	// If no code at address, contract doesn't exist
	if len(code) == 0 {
		return false, "no code at address", nil
	}

	return true, "", nil
}

// Close releases the connection
func (c *CheckerAdapter) Close() {
	if c.closer != nil {
		c.closer()
		c.closer = nil
	}
	c.backend = nil
}

// Ensure the adapter implements the interface
var _ usecase.BlockchainChecker = (*CheckerAdapter)(nil)
