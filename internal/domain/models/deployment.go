package models

import (
	"fmt"
	"time"
)

// DeployedContract is the framework's view of a confirmed deployment
type DeployedContract struct {
	Address         string
	TransactionHash string
	BlockNumber     uint64
	Deployer        string
	GasUsed         uint64

	// Where it was deployed and from which artifact; zero when unknown
	Network  string
	ChainID  uint64
	Artifact ArtifactInfo
}

// Deployment represents a contract deployment record
type Deployment struct {
	ID              string       `json:"id"` // e.g. "sepolia/11155111/MetaLinks:v3"
	Script          string       `json:"script"`
	Network         string       `json:"network"`
	ChainID         uint64       `json:"chainId"`
	ContractName    string       `json:"contractName"`
	Address         string       `json:"address"`
	TransactionHash string       `json:"transactionHash,omitempty"`
	BlockNumber     uint64       `json:"blockNumber,omitempty"`
	Deployer        string       `json:"deployer,omitempty"`
	GasUsed         uint64       `json:"gasUsed,omitempty"`
	Artifact        ArtifactInfo `json:"artifact"`
	CreatedAt       time.Time    `json:"createdAt"`
}

// ArtifactInfo contains contract artifact information
type ArtifactInfo struct {
	Path            string         `json:"path"` // e.g. "contracts/MetaLinks.sol:MetaLinks"
	Format          ArtifactFormat `json:"format,omitempty"`
	CompilerVersion string         `json:"compilerVersion,omitempty"`
}

// BaseID returns the identifier before any redeployment suffix
func (d *Deployment) BaseID() string {
	return fmt.Sprintf("%s/%d/%s:%s", d.Network, d.ChainID, d.ContractName, d.Script)
}

// GetShortID returns contractName:script
func (d *Deployment) GetShortID() string {
	if d.Script != "" {
		return fmt.Sprintf("%s:%s", d.ContractName, d.Script)
	}
	return d.ContractName
}
