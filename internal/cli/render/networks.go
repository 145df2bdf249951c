package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/metalinks/metalinks-deployer/internal/usecase"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out io.Writer
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer) *NetworksRenderer {
	return &NetworksRenderer{out: out}
}

// Render renders the list of networks
func (r *NetworksRenderer) Render(result *usecase.ListNetworksResult) error {
	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured in metalinks.toml [networks]")
		return nil
	}

	fmt.Fprintln(r.out, "🌐 Available Networks:")
	fmt.Fprintln(r.out)

	for _, network := range result.Networks {
		current := ""
		if network.Name == result.Current {
			current = color.New(color.FgCyan).Sprint(" (current)")
		}
		if network.Error != nil {
			fmt.Fprintf(r.out, "  ❌ %s%s - Error: %v\n", network.Name, current, network.Error)
			continue
		}
		fmt.Fprintf(r.out, "  ✅ %s%s - Chain ID: %d\n", network.Name, current, network.ChainID)
	}

	return nil
}

var _ Renderer[*usecase.ListNetworksResult] = (*NetworksRenderer)(nil)
