package cli

import (
	"github.com/metalinks/metalinks-deployer/internal/cli/render"
	"github.com/metalinks/metalinks-deployer/internal/usecase"
	"github.com/spf13/cobra"
)

// NewConfigCmd creates the config command
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage metalinks local config",
		Long: `Manage metalinks local config stored in .metalinks/config.local.json

The config defines default values for network and timeout
that are used when these flags are not explicitly provided.

Available subcommands:
  config           Show current config
  config set       Set a config value
  config remove    Remove a config value`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ShowConfig.Run(cmd.Context())
			if err != nil {
				return err
			}

			return render.NewConfigRenderer(cmd.OutOrStdout()).Render(result)
		},
	}

	cmd.AddCommand(NewConfigSetCmd())
	cmd.AddCommand(NewConfigRemoveCmd())

	return cmd
}

// NewConfigSetCmd creates the config set subcommand
func NewConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config value",
		Long: `Set a config value.
Available keys: network, timeout

Examples:
  metalinks config set network sepolia
  metalinks config set timeout 10m`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfig(cmd, args[0], args[1])
		},
	}
}

// NewConfigRemoveCmd creates the config remove subcommand
func NewConfigRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <key>",
		Short: "Remove a config value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfig(cmd, args[0], "")
		},
	}
}

func setConfig(cmd *cobra.Command, key, value string) error {
	app, err := getApp(cmd)
	if err != nil {
		return err
	}

	result, err := app.SetConfig.Run(cmd.Context(), usecase.SetConfigParams{Key: key, Value: value})
	if err != nil {
		return err
	}

	return render.NewConfigRenderer(cmd.OutOrStdout()).RenderSet(result)
}
