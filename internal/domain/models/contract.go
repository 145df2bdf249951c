package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ArtifactFormat identifies the toolchain that produced an artifact
type ArtifactFormat string

const (
	ArtifactFormatHardhat ArtifactFormat = "hardhat"
	ArtifactFormatFoundry ArtifactFormat = "foundry"
)

// Contract represents information about a discovered contract
type Contract struct {
	Name         string         `json:"name"`
	Path         string         `json:"path"` // source path, e.g. "contracts/MetaLinks.sol"
	ArtifactPath string         `json:"artifactPath,omitempty"`
	Format       ArtifactFormat `json:"format"`
	Artifact     *Artifact      `json:"artifact,omitempty"`
}

// Key returns the fully qualified "path:Name" identifier
func (c *Contract) Key() string {
	return fmt.Sprintf("%s:%s", c.Path, c.Name)
}

// Bytecode holds creation or runtime bytecode. Hardhat writes it as a hex
// string, Foundry as an object with an "object" field.
type Bytecode struct {
	Object         string         `json:"object"`
	LinkReferences map[string]any `json:"linkReferences,omitempty"`
}

func (b *Bytecode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		b.Object = s
		return nil
	}

	type plain Bytecode
	var obj plain
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("bytecode is neither a string nor an object: %w", err)
	}
	*b = Bytecode(obj)
	return nil
}

// IsEmpty reports whether there is no code to deploy (interfaces, abstract contracts)
func (b Bytecode) IsEmpty() bool {
	return b.Object == "" || b.Object == "0x"
}

// HasUnlinkedLibraries reports whether the code still carries "__$...$__" placeholders
func (b Bytecode) HasUnlinkedLibraries() bool {
	return strings.Contains(b.Object, "__")
}

// Artifact is the union of the Hardhat and Foundry artifact fields we need
type Artifact struct {
	// Hardhat only
	Format         string         `json:"_format,omitempty"`
	ContractName   string         `json:"contractName,omitempty"`
	SourceName     string         `json:"sourceName,omitempty"`
	LinkReferences map[string]any `json:"linkReferences,omitempty"`

	ABI              json.RawMessage  `json:"abi"`
	Bytecode         Bytecode         `json:"bytecode"`
	DeployedBytecode Bytecode         `json:"deployedBytecode"`
	Metadata         ArtifactMetadata `json:"metadata"`
}

// ArtifactMetadata represents the metadata section of a Foundry artifact
type ArtifactMetadata struct {
	Compiler struct {
		Version string `json:"version"`
	} `json:"compiler"`
	Settings struct {
		CompilationTarget map[string]string `json:"compilationTarget"`
	} `json:"settings"`
}

// UnmarshalJSON tolerates Hardhat's absent metadata and Foundry's metadata
// occasionally being emitted as a JSON string.
func (m *ArtifactMetadata) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" {
			return nil
		}
		data = []byte(s)
	}

	type plain ArtifactMetadata
	var meta plain
	if err := json.Unmarshal(data, &meta); err != nil {
		return err
	}
	*m = ArtifactMetadata(meta)
	return nil
}

// Target returns the (source, contract) pair this artifact was compiled for
func (a *Artifact) Target() (source string, name string) {
	if a.ContractName != "" && a.SourceName != "" {
		return a.SourceName, a.ContractName
	}
	for s, n := range a.Metadata.Settings.CompilationTarget {
		return s, n
	}
	return "", ""
}

// Linked reports whether the creation code can be deployed as-is
func (a *Artifact) Linked() bool {
	return len(a.LinkReferences) == 0 && len(a.Bytecode.LinkReferences) == 0 && !a.Bytecode.HasUnlinkedLibraries()
}
