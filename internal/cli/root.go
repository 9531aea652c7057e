// Package cli provides the command-line interface for todo.
package cli

import (
	"fmt"
	"os"

	"github.com/FelipeCJSEP/todo/internal/app"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// Command group IDs.
const (
	groupSetup = "setup"
	groupTask  = "task"
)

// launchMenuFunc is a function variable for launching the menu, allowing it to be mocked in tests.
var launchMenuFunc = launchMenu

// stdinIsTerminal reports whether the menu can be driven interactively.
var stdinIsTerminal = func() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// NewRootCommand creates the root command for todo.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	var opts struct {
		File    string
		Verbose bool
	}

	root := &cobra.Command{
		Use:   "todo",
		Short: "Local to-do list manager",
		Long: `todo keeps a personal to-do list in a JSON file.

Tasks start 'In Progress' and end as 'Completed' or 'Cancelled'.
Only open tasks can be edited. Every change is saved immediately.

Run without arguments in a terminal to open the interactive menu.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip if container is nil (e.g. in tests)
			if c == nil {
				return nil
			}

			c.Configure(opts.File, opts.Verbose, cmd.ErrOrStderr())
			for _, w := range c.AppConfig.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !stdinIsTerminal() {
				return cmd.Help()
			}
			return launchMenuFunc(c, cmd.OutOrStdout())
		},
	}

	root.PersistentFlags().StringVarP(&opts.File, "file", "f", "", "Tasks file (overrides config and TODO_FILE)")
	root.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Print debug logs to stderr")

	// Define command groups
	root.AddGroup(
		&cobra.Group{ID: groupTask, Title: "Task Management:"},
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
	)

	// Task management commands
	taskCmds := []*cobra.Command{
		newAddCommand(c),
		newListCommand(c),
		newShowCommand(c),
		newCompleteCommand(c),
		newCancelCommand(c),
		newEditCommand(c),
		newRmCommand(c),
		newMenuCommand(c),
	}
	for _, cmd := range taskCmds {
		cmd.GroupID = groupTask
	}

	// Setup commands
	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	root.AddCommand(taskCmds...)
	root.AddCommand(configCmd)

	return root
}

// newMenuCommand creates the menu command.
func newMenuCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Open the interactive menu",
		Long: `Open the numbered interactive menu (the same as running todo
without arguments in a terminal).

Keys:
  1-8 / enter   choose an option
  esc           back to the menu
  q / ctrl+c    quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return launchMenuFunc(c, cmd.OutOrStdout())
		},
	}
	return cmd
}
