package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/metalinks/metalinks-deployer/internal/cli/render"
	"github.com/metalinks/metalinks-deployer/internal/domain"
	"github.com/metalinks/metalinks-deployer/internal/usecase"
	"github.com/spf13/cobra"
)

const defaultTimeout = 5 * time.Minute

// ExitError reports a failure that has already been written to stderr
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// RunDeployScript deploys the script's contract and returns the process exit code.
// On success the only stdout output is "<Contract> deployed to: <address>".
// Any failure is written to stderr as-is and yields 1. The deployment is
// recorded in the registry after the address is printed; recording problems
// are logged and never change the exit code.
func RunDeployScript(ctx context.Context, script domain.DeployScript, deployer *usecase.DeployContract, stdout, stderr io.Writer) int {
	result, err := deployer.Run(ctx, usecase.DeployContractParams{Script: script})
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	if err := render.NewDeployRenderer(stdout).Render(result); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	// Record logs its own failures; the deployment already succeeded
	_, _ = deployer.Record(ctx, result)
	return 0
}

// NewScriptCmd creates the root command of a standalone deploy script binary
func NewScriptCmd(script domain.DeployScript) *cobra.Command {
	cmd := &cobra.Command{
		Use:           script.Name,
		Short:         fmt.Sprintf("Deploy %s (%s)", script.ContractName, script.Version),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(cmd, script)
		},
	}
	addGlobalFlags(cmd.Flags())
	return cmd
}

// ExecuteScript runs a deploy script binary and returns its exit code
func ExecuteScript(script domain.DeployScript) int {
	return executeScript(script, os.Args[1:], os.Stdout, os.Stderr)
}

func executeScript(script domain.DeployScript, args []string, stdout, stderr io.Writer) int {
	cmd := NewScriptCmd(script)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func runScript(cmd *cobra.Command, script domain.DeployScript) error {
	app, err := getApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	app.Log.Debug("running deploy script", "script", script.Name, "network", app.Config.NetworkName)

	if code := RunDeployScript(cmd.Context(), script, app.DeployContract, cmd.OutOrStdout(), cmd.ErrOrStderr()); code != 0 {
		return &ExitError{Code: code}
	}
	return nil
}

// NewDeployCmd creates the deploy command
func NewDeployCmd() *cobra.Command {
	var scriptKey string

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy MetaLinks with one of the deploy scripts",
		Long: `Deploy the MetaLinks contract to the selected network.

This runs exactly what the deploy-v2 and deploy-v3 binaries run: one factory
lookup, one deployment transaction, one wait for confirmation. On success it
prints "MetaLinks deployed to: <address>" and records the deployment.`,
		Example: `  # Deploy with the default script to the default network
  metalinks deploy

  # Deploy with the v2 script to sepolia
  metalinks deploy --script v2 --network sepolia`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := domain.LookupDeployScript(scriptKey)
			if err != nil {
				return err
			}
			return runScript(cmd, script)
		},
	}

	cmd.Flags().StringVar(&scriptKey, "script", domain.DefaultScriptVersion, fmt.Sprintf("Deploy script to run %v", domain.ScriptVersions()))

	return cmd
}
