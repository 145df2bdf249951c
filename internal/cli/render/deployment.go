package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/metalinks/metalinks-deployer/internal/usecase"
	"gopkg.in/yaml.v3"
)

// Output formats for a single deployment
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// DeploymentRenderer renders detailed information about a single deployment
type DeploymentRenderer struct {
	out    io.Writer
	format string
}

// NewDeploymentRenderer creates a new deployment renderer
func NewDeploymentRenderer(out io.Writer, format string) (*DeploymentRenderer, error) {
	switch format {
	case "", FormatText:
		format = FormatText
	case FormatJSON, FormatYAML:
	default:
		return nil, fmt.Errorf("invalid format %q (valid: text, json, yaml)", format)
	}
	return &DeploymentRenderer{out: out, format: format}, nil
}

// showOutput is the structured form of a show result
type showOutput struct {
	ID              string         `json:"id" yaml:"id"`
	Contract        string         `json:"contract" yaml:"contract"`
	Script          string         `json:"script" yaml:"script"`
	Network         string         `json:"network" yaml:"network"`
	ChainID         uint64         `json:"chainId" yaml:"chainId"`
	Address         string         `json:"address" yaml:"address"`
	TransactionHash string         `json:"transactionHash,omitempty" yaml:"transactionHash,omitempty"`
	BlockNumber     uint64         `json:"blockNumber,omitempty" yaml:"blockNumber,omitempty"`
	Deployer        string         `json:"deployer,omitempty" yaml:"deployer,omitempty"`
	GasUsed         uint64         `json:"gasUsed,omitempty" yaml:"gasUsed,omitempty"`
	Artifact        string         `json:"artifact" yaml:"artifact"`
	Format          string         `json:"artifactFormat,omitempty" yaml:"artifactFormat,omitempty"`
	Compiler        string         `json:"compiler,omitempty" yaml:"compiler,omitempty"`
	CreatedAt       string         `json:"createdAt" yaml:"createdAt"`
	OnChain         *onChainOutput `json:"onChain,omitempty" yaml:"onChain,omitempty"`
}

type onChainOutput struct {
	Exists bool   `json:"exists" yaml:"exists"`
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

func toShowOutput(result *usecase.ShowDeploymentResult) showOutput {
	d := result.Deployment
	out := showOutput{
		ID:              d.ID,
		Contract:        d.ContractName,
		Script:          d.Script,
		Network:         d.Network,
		ChainID:         d.ChainID,
		Address:         d.Address,
		TransactionHash: d.TransactionHash,
		BlockNumber:     d.BlockNumber,
		Deployer:        d.Deployer,
		GasUsed:         d.GasUsed,
		Artifact:        d.Artifact.Path,
		Format:          string(d.Artifact.Format),
		Compiler:        d.Artifact.CompilerVersion,
		CreatedAt:       d.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
	if result.OnChain != nil {
		out.OnChain = &onChainOutput{Exists: result.OnChain.Exists, Reason: result.OnChain.Reason}
	}
	return out
}

// Render renders the deployment in the configured format
func (r *DeploymentRenderer) Render(result *usecase.ShowDeploymentResult) error {
	switch r.format {
	case FormatJSON:
		data, err := json.MarshalIndent(toShowOutput(result), "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(r.out, string(data))
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(r.out)
		enc.SetIndent(2)
		if err := enc.Encode(toShowOutput(result)); err != nil {
			return err
		}
		return enc.Close()
	default:
		return r.renderText(result)
	}
}

func (r *DeploymentRenderer) renderText(result *usecase.ShowDeploymentResult) error {
	d := result.Deployment

	// Header
	color.New(color.FgCyan, color.Bold).Fprintf(r.out, "Deployment: %s\n", d.ID)
	fmt.Fprintln(r.out, strings.Repeat("=", 80))

	fmt.Fprintln(r.out, "\nBasic Information:")
	fmt.Fprintf(r.out, "  Contract: %s\n", color.New(color.FgYellow).Sprint(d.ContractName))
	fmt.Fprintf(r.out, "  Script: %s\n", color.New(color.FgMagenta).Sprint(d.Script))
	fmt.Fprintf(r.out, "  Address: %s\n", d.Address)
	fmt.Fprintf(r.out, "  Network: %s (chain %d)\n", networkTitle(d.Network), d.ChainID)

	fmt.Fprintln(r.out, "\nTransaction:")
	if d.TransactionHash != "" {
		fmt.Fprintf(r.out, "  Hash: %s\n", d.TransactionHash)
	}
	if d.BlockNumber > 0 {
		fmt.Fprintf(r.out, "  Block: %d\n", d.BlockNumber)
	}
	if d.Deployer != "" {
		fmt.Fprintf(r.out, "  Deployer: %s\n", d.Deployer)
	}
	if d.GasUsed > 0 {
		fmt.Fprintf(r.out, "  Gas Used: %d\n", d.GasUsed)
	}

	fmt.Fprintln(r.out, "\nArtifact:")
	fmt.Fprintf(r.out, "  Path: %s\n", d.Artifact.Path)
	if d.Artifact.Format != "" {
		fmt.Fprintf(r.out, "  Format: %s\n", d.Artifact.Format)
	}
	if d.Artifact.CompilerVersion != "" {
		fmt.Fprintf(r.out, "  Compiler: %s\n", d.Artifact.CompilerVersion)
	}

	if result.OnChain != nil {
		fmt.Fprintln(r.out, "\nOn-chain:")
		if result.OnChain.Exists {
			fmt.Fprintf(r.out, "  %s\n", FormatSuccess("Contract code found"))
		} else {
			fmt.Fprintf(r.out, "  %s\n", FormatError(result.OnChain.Reason))
		}
	}

	fmt.Fprintf(r.out, "\nCreated: %s\n", d.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	return nil
}

var _ Renderer[*usecase.ShowDeploymentResult] = (*DeploymentRenderer)(nil)
