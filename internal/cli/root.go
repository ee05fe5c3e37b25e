// Package cli wires configuration, logging and storage into the taskboard
// commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	verbose    bool
}

// NewRootCommand builds the command tree. Running it without a subcommand
// starts the terminal UI.
func NewRootCommand(version string) *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "taskboard",
		Short: "taskboard - a single-user task board for the terminal",
		Long: `taskboard keeps a list of tasks with categories and optional subtasks.

Run it without arguments for the terminal UI, or use the subcommands to manage
tasks from scripts, serve them over HTTP or expose them as MCP tools.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default ~/.taskboard/config.yaml)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newAddCommand(opts),
		newListCommand(opts),
		newShowCommand(opts),
		newSearchCommand(opts),
		newEditCommand(opts),
		newRemoveCommand(opts),
		newSummaryCommand(opts),
		newServeCommand(opts),
		newMCPCommand(opts),
		newConfigCommand(opts),
	)
	return root
}

// Execute runs the root command
func Execute(version string) error {
	if err := NewRootCommand(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
