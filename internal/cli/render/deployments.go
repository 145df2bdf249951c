package render

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/metalinks/metalinks-deployer/internal/domain/models"
	"github.com/metalinks/metalinks-deployer/internal/usecase"
	"github.com/samber/lo"
)

// Color styles for table format
var (
	networkHeader     = color.New(color.BgCyan, color.FgBlack)
	networkHeaderBold = color.New(color.BgCyan, color.FgBlack, color.Bold)
	contractStyle     = color.New(color.FgGreen, color.Bold)
	scriptStyle       = color.New(color.FgMagenta)
	addressStyle      = color.New(color.FgWhite)
	timestampStyle    = color.New(color.Faint)
)

// DeploymentsRenderer renders deployment lists grouped by network
type DeploymentsRenderer struct {
	out   io.Writer
	color bool
}

// NewDeploymentsRenderer creates a new deployments renderer
func NewDeploymentsRenderer(out io.Writer, color bool) *DeploymentsRenderer {
	return &DeploymentsRenderer{
		out:   out,
		color: color,
	}
}

// Render renders the deployment list
func (r *DeploymentsRenderer) Render(result *usecase.DeploymentListResult) error {
	if len(result.Deployments) == 0 {
		fmt.Fprintln(r.out, "No deployments found")
		return nil
	}

	groups := lo.GroupBy(result.Deployments, func(d *models.Deployment) string { return d.Network })
	networks := lo.Keys(groups)
	sort.Strings(networks)

	for i, network := range networks {
		deployments := groups[network]
		if i > 0 {
			fmt.Fprintln(r.out)
		}

		label := fmt.Sprintf("%-10s", "network:")
		value := fmt.Sprintf("%-30s", fmt.Sprintf("%s (%d)", networkTitle(network), deployments[0].ChainID))
		fmt.Fprintln(r.out, networkHeader.Sprintf(" ⛓ %s ", label)+networkHeaderBold.Sprint(value))
		fmt.Fprintln(r.out, r.table(deployments))
	}

	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "Total: %d deployment(s)\n", result.Summary.Total)
	return nil
}

func (r *DeploymentsRenderer) table(deployments []*models.Deployment) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.SeparateRows = false
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateHeader = false
	t.Style().Options.SeparateColumns = false
	t.Style().Box = table.BoxStyle{
		PaddingLeft:  "  ",
		PaddingRight: "  ",
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft},
		{Number: 3, Align: text.AlignLeft},
		{Number: 4, Align: text.AlignRight},
	})

	for _, dep := range deployments {
		created := ""
		if !dep.CreatedAt.IsZero() {
			created = dep.CreatedAt.Local().Format("2006-01-02 15:04:05")
		}
		t.AppendRow(table.Row{
			r.sprint(contractStyle, dep.ContractName) + r.sprint(scriptStyle, ":"+dep.Script+idSuffix(dep)),
			r.sprint(addressStyle, dep.Address),
			shortHash(dep.TransactionHash),
			r.sprint(timestampStyle, created),
		})
	}

	return t.Render()
}

func (r *DeploymentsRenderer) sprint(c *color.Color, s string) string {
	if !r.color {
		return s
	}
	return c.Sprint(s)
}

// idSuffix returns the "#n" redeployment suffix of an ID, if any
func idSuffix(dep *models.Deployment) string {
	base := dep.BaseID()
	if len(dep.ID) > len(base) && dep.ID[:len(base)] == base {
		return dep.ID[len(base):]
	}
	return ""
}

var _ Renderer[*usecase.DeploymentListResult] = (*DeploymentsRenderer)(nil)
