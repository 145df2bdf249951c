package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/metalinks/metalinks-deployer/internal/usecase"
)

// ScriptsRenderer renders the known deploy scripts
type ScriptsRenderer struct {
	out io.Writer
}

// NewScriptsRenderer creates a new scripts renderer
func NewScriptsRenderer(out io.Writer) *ScriptsRenderer {
	return &ScriptsRenderer{out: out}
}

// Render renders the script table
func (r *ScriptsRenderer) Render(result *usecase.ListScriptsResult) error {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Script", "Contract", "Artifact", "Previous Address", "Latest Deployment"})

	for _, s := range result.Scripts {
		artifact := s.Artifact
		if s.ArtifactError != nil {
			artifact = color.New(color.FgRed).Sprint("missing")
		}

		latest := "-"
		if s.Latest != nil {
			latest = fmt.Sprintf("%s on %s", s.Latest.Address, s.Latest.Network)
			if s.Count > 1 {
				latest += fmt.Sprintf(" (+%d earlier)", s.Count-1)
			}
		}

		t.AppendRow(table.Row{
			color.New(color.Bold).Sprint(s.Script.Name),
			s.Script.ContractName,
			artifact,
			s.Script.PreviousAddress,
			latest,
		})
	}

	_, err := fmt.Fprintln(r.out, t.Render())
	return err
}

var _ Renderer[*usecase.ListScriptsResult] = (*ScriptsRenderer)(nil)
