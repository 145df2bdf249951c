package cli

import (
	"github.com/fatih/color"
	"github.com/metalinks/metalinks-deployer/internal/cli/render"
	"github.com/metalinks/metalinks-deployer/internal/usecase"
	"github.com/spf13/cobra"
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	var (
		contractName string
		script       string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List deployments from registry",
		Long: `List all deployments from the registry.

The list can be filtered by network, deploy script, or contract name.`,
		Example: `  # List all deployments
  metalinks list

  # List deployments made by the v3 script on sepolia
  metalinks list --script v3 --network sepolia`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.ListDeploymentsParams{
				ContractName: contractName,
				Script:       script,
			}
			// Only filter by network when asked to
			if f := cmd.Flag("network"); f != nil && f.Changed {
				params.Network = app.Config.NetworkName
			}

			result, err := app.ListDeployments.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			renderer := render.NewDeploymentsRenderer(cmd.OutOrStdout(), !color.NoColor)
			return renderer.Render(result)
		},
	}

	cmd.Flags().StringVar(&contractName, "contract", "", "Filter by contract name")
	cmd.Flags().StringVar(&script, "script", "", "Filter by deploy script (v2, v3)")

	return cmd
}
