package cli

import (
	"fmt"

	"github.com/metalinks/metalinks-deployer/internal/cli/render"
	"github.com/metalinks/metalinks-deployer/internal/usecase"
	"github.com/spf13/cobra"
)

// NewShowCmd creates the show command
func NewShowCmd() *cobra.Command {
	var (
		check  bool
		format string
	)

	cmd := &cobra.Command{
		Use:   "show <deployment>",
		Short: "Show detailed deployment information from registry",
		Long: `Show detailed information about a specific deployment.

You can specify deployments using:
- Full deployment ID: "sepolia/11155111/MetaLinks:v3"
- ID prefix: "sepolia/11155111"
- Contract with script: "MetaLinks:v3"
- Contract address: "0xbd3f..."

When several deployments match, you are asked to pick one
(or given the list of IDs with --non-interactive).`,
		Example: `  metalinks show MetaLinks:v3
  metalinks show 0xbd3fd4aF1E3f12c90118773A6e03054005B14FDE --check
  metalinks show sepolia/11155111/MetaLinks:v2 --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			renderer, err := render.NewDeploymentRenderer(cmd.OutOrStdout(), format)
			if err != nil {
				return err
			}

			result, err := app.ShowDeployment.Run(cmd.Context(), usecase.ShowDeploymentParams{
				Query: args[0],
				Check: check,
			})
			if err != nil {
				return fmt.Errorf("failed to resolve deployment: %w", err)
			}

			return renderer.Render(result)
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Verify that contract code exists at the address")
	cmd.Flags().StringVarP(&format, "format", "f", render.FormatText, "Output format (text, json, yaml)")

	return cmd
}
