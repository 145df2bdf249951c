package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidAddress is returned when an Ethereum address is invalid
	ErrInvalidAddress = errors.New("invalid address")

	// ErrNetworkMismatch is returned when the RPC endpoint reports a different chain than configured
	ErrNetworkMismatch = errors.New("network mismatch")

	// ErrContractNotFound is returned when no artifact matches a contract name
	ErrContractNotFound = errors.New("contract not found")

	// ErrMissingDeployer is returned when no deployer key is configured
	ErrMissingDeployer = errors.New("no deployer private key configured")

	// ErrUnlinkedLibraries is returned when creation bytecode still contains library placeholders
	ErrUnlinkedLibraries = errors.New("bytecode has unlinked libraries")

	// ErrNotDeployed is returned when a confirmed deployment left no code at the address
	ErrNotDeployed = errors.New("no contract code after deployment")
)

// ContractNotFoundError carries the lookup key and close matches for a missing contract.
type ContractNotFoundError struct {
	Name        string
	Suggestions []string
}

func (e *ContractNotFoundError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("contract not found: %s", e.Name)
	}
	return fmt.Sprintf("contract not found: %s (did you mean %s?)", e.Name, strings.Join(e.Suggestions, ", "))
}

func (e *ContractNotFoundError) Unwrap() error {
	return ErrContractNotFound
}

// AmbiguousContractError is returned when a bare contract name matches several artifacts.
type AmbiguousContractError struct {
	Name    string
	Matches []string // "path:Name" keys
}

func (e *AmbiguousContractError) Error() string {
	matches := make([]string, len(e.Matches))
	copy(matches, e.Matches)
	sort.Strings(matches)

	var suggestions []string
	for _, m := range matches {
		suggestions = append(suggestions, "  - "+m)
	}

	return fmt.Sprintf("multiple contracts found matching %s - use full path:contract format to disambiguate:\n%s",
		e.Name, strings.Join(suggestions, "\n"))
}
