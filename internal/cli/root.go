package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/metalinks/metalinks-deployer/internal/app"
	"github.com/metalinks/metalinks-deployer/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// NewRootCmd creates the root command for the metalinks CLI
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "metalinks",
		Short: "Deploy and track MetaLinks contract deployments",
		Long: `metalinks deploys the MetaLinks contract from compiled Hardhat or Foundry
artifacts and keeps a registry of where it has been deployed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}
			return initApp(cmd)
		},
	}

	addGlobalFlags(rootCmd.PersistentFlags())

	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	// Main commands
	deployCmd := NewDeployCmd()
	deployCmd.GroupID = "main"
	rootCmd.AddCommand(deployCmd)

	listCmd := NewListCmd()
	listCmd.GroupID = "main"
	rootCmd.AddCommand(listCmd)

	showCmd := NewShowCmd()
	showCmd.GroupID = "main"
	rootCmd.AddCommand(showCmd)

	// Management commands
	networksCmd := NewNetworksCmd()
	networksCmd.GroupID = "management"
	rootCmd.AddCommand(networksCmd)

	scriptsCmd := NewScriptsCmd()
	scriptsCmd.GroupID = "management"
	rootCmd.AddCommand(scriptsCmd)

	configCmd := NewConfigCmd()
	configCmd.GroupID = "management"
	rootCmd.AddCommand(configCmd)

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// addGlobalFlags registers the flags shared by every entry point
func addGlobalFlags(flags *pflag.FlagSet) {
	flags.StringP("network", "n", "", "Network to use (e.g., localhost, sepolia)")
	flags.Bool("debug", false, "Enable debug output")
	flags.Bool("non-interactive", false, "Disable interactive prompts and progress output")
	flags.Duration("timeout", defaultTimeout, "How long to wait for a deployment to be confirmed")
	flags.String("private-key", "", "Deployer private key (prefer METALINKS_PRIVATE_KEY or metalinks.toml)")
	flags.String("project-root", "", "Project root (defaults to the nearest directory with metalinks.toml or a Hardhat/Foundry config)")
}

// initApp builds the app from flags, environment and project files and stores it on the command context
func initApp(cmd *cobra.Command) error {
	projectRoot, _ := cmd.Flags().GetString("project-root")
	if projectRoot == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		projectRoot, err = config.FindProjectRoot(wd)
		if err != nil {
			return err
		}
	}

	// Set up viper
	v := config.SetupViper(projectRoot, cmd)

	// Initialize app with DI
	appInstance, err := app.InitApp(v)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, appKey, appInstance))
	return nil
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}
