package cli

import (
	"github.com/metalinks/metalinks-deployer/internal/cli/render"
	"github.com/metalinks/metalinks-deployer/internal/usecase"
	"github.com/spf13/cobra"
)

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "networks",
		Short: "List available networks from metalinks.toml",
		Long: `List all networks configured in the [networks] section of metalinks.toml.

This command shows all available networks and attempts to fetch their chain IDs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListNetworks.Run(cmd.Context(), usecase.ListNetworksParams{})
			if err != nil {
				return err
			}

			return render.NewNetworksRenderer(cmd.OutOrStdout()).Render(result)
		},
	}

	return cmd
}

// NewScriptsCmd creates the scripts command
func NewScriptsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scripts",
		Short: "List deploy scripts and what they last deployed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListScripts.Run(cmd.Context())
			if err != nil {
				return err
			}

			return render.NewScriptsRenderer(cmd.OutOrStdout()).Render(result)
		},
	}
}
