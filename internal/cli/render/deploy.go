package render

import (
	"fmt"
	"io"

	"github.com/metalinks/metalinks-deployer/internal/usecase"
)

// DeployRenderer prints the result line of a deploy script. It writes no
// decoration: scripts and CI parse this line.
type DeployRenderer struct {
	out io.Writer
}

// NewDeployRenderer creates a new deploy renderer
func NewDeployRenderer(out io.Writer) *DeployRenderer {
	return &DeployRenderer{out: out}
}

// Render writes "<Contract> deployed to: <address>"
func (r *DeployRenderer) Render(result *usecase.DeployContractResult) error {
	_, err := fmt.Fprintf(r.out, "%s deployed to: %s\n", result.Script.ContractName, result.Contract.Address)
	return err
}

var _ Renderer[*usecase.DeployContractResult] = (*DeployRenderer)(nil)
