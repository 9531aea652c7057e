package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/FelipeCJSEP/todo/internal/app"
	"github.com/FelipeCJSEP/todo/internal/domain"
	"github.com/FelipeCJSEP/todo/internal/taskstore"
	"github.com/FelipeCJSEP/todo/internal/tui"
	"github.com/spf13/cobra"
)

// newAddCommand creates the add command.
func newAddCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Title       string
		Description string
		Responsible string
		Priority    string
	}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new task",
		Long: `Add a new task to the list.

The task is created with status 'In Progress'. Priority is one of
Low, Medium or High (case-insensitive).

Examples:
  todo add --title "Buy milk" --priority low
  todo add --title "Release" --description "Tag and publish" --responsible Ana --priority High`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := c.Tasks()
			if err != nil {
				return err
			}

			task, err := store.Add(taskstore.AddInput{
				Title:       opts.Title,
				Description: opts.Description,
				Responsible: opts.Responsible,
				Priority:    opts.Priority,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Task '%s' added successfully. ID: %d\n", task.Title, task.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Title, "title", "t", "", "Task title")
	cmd.Flags().StringVarP(&opts.Description, "description", "d", "", "Task description")
	cmd.Flags().StringVarP(&opts.Responsible, "responsible", "r", "", "Responsible person")
	cmd.Flags().StringVarP(&opts.Priority, "priority", "p", "", "Priority: Low, Medium or High (required)")
	_ = cmd.MarkFlagRequired("priority")

	return cmd
}

// newListCommand creates the list command.
func newListCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Format   string
		Statuses []string
	}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Long: `Display every task in insertion order.

The default table wraps Title and Responsible at 20 characters and
Description at 40. Use --format json or --format yaml for scripting.

Examples:
  # Table of all tasks
  todo list

  # Only open tasks
  todo list --status "in progress"

  # Machine-readable output
  todo list --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := parseStatuses(opts.Statuses)
			if err != nil {
				return err
			}

			store, err := c.Tasks()
			if err != nil {
				return err
			}

			tasks := store.ListAll()
			if len(filter) > 0 {
				tasks = filterByStatus(tasks, filter)
			}

			return writeTasks(cmd.OutOrStdout(), tasks, opts.Format, c.AppConfig.Display)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "o", formatTable, "Output format: table, json or yaml")
	cmd.Flags().StringArrayVarP(&opts.Statuses, "status", "s", nil, "Show only tasks with this status (can specify multiple)")

	return cmd
}

// parseStatuses parses status filter flags.
func parseStatuses(values []string) (map[domain.Status]bool, error) {
	filter := make(map[domain.Status]bool, len(values))
	for _, v := range values {
		s, err := domain.ParseStatusInput(v)
		if err != nil {
			return nil, err
		}
		filter[s] = true
	}
	return filter, nil
}

func filterByStatus(tasks []*domain.Task, filter map[domain.Status]bool) []*domain.Task {
	out := make([]*domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if filter[t.Status] {
			out = append(out, t)
		}
	}
	return out
}

// newShowCommand creates the show command.
func newShowCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "show <id>",
		Aliases: []string{"search"},
		Short:   "Show a task by ID",
		Long: `Show every field of a single task.

Examples:
  todo show 3
  todo show "#3"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := domain.ParseTaskID(args[0])
			if err != nil {
				return err
			}

			store, err := c.Tasks()
			if err != nil {
				return err
			}

			task, err := store.FindByID(taskID)
			if err != nil {
				return err
			}

			tui.WriteTaskDetails(cmd.OutOrStdout(), task, c.AppConfig.Display.TimeFormat)
			return nil
		},
	}

	return cmd
}

// newCompleteCommand creates the complete command.
func newCompleteCommand(c *app.Container) *cobra.Command {
	return newCloseCommand(c, domain.StatusCompleted, "complete", "done")
}

// newCancelCommand creates the cancel command.
func newCancelCommand(c *app.Container) *cobra.Command {
	return newCloseCommand(c, domain.StatusCancelled, "cancel", "")
}

// newCloseCommand creates a command that closes a task with target status.
func newCloseCommand(c *app.Container, target domain.Status, use, alias string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " <id>",
		Short: fmt.Sprintf("Mark a task as %s", target.Verb()),
		Long: fmt.Sprintf(`Mark a task as %[1]s.

Only tasks that are 'In Progress' can be closed. The close time is
recorded and the task can no longer be edited.

Examples:
  todo %[2]s 1
  todo %[2]s "#1"`, target.Verb(), use),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := domain.ParseTaskID(args[0])
			if err != nil {
				return err
			}

			store, err := c.Tasks()
			if err != nil {
				return err
			}

			task, err := store.Close(taskID, target)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Task '%s' marked as %s.\n", task.Title, target.Verb())
			return nil
		},
	}
	if alias != "" {
		cmd.Aliases = []string{alias}
	}

	return cmd
}

// newEditCommand creates the edit command.
func newEditCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Title       string
		Description string
		Responsible string
		Priority    string
	}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a task",
		Long: `Edit the title, description, responsible person or priority of a task.

Only tasks that are 'In Progress' can be edited. Fields that are not
given, or given as blank, keep their current value.

Examples:
  todo edit 1 --title "New title"
  todo edit 1 --priority high --responsible Bruno`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := domain.ParseTaskID(args[0])
			if err != nil {
				return err
			}

			input := taskstore.EditInput{TaskID: taskID}
			if cmd.Flags().Changed("title") {
				input.Title = &opts.Title
			}
			if cmd.Flags().Changed("description") {
				input.Description = &opts.Description
			}
			if cmd.Flags().Changed("responsible") {
				input.Responsible = &opts.Responsible
			}
			if cmd.Flags().Changed("priority") {
				input.Priority = &opts.Priority
			}

			store, err := c.Tasks()
			if err != nil {
				return err
			}

			task, err := store.Edit(input)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Task '%s' updated successfully.\n", task.Title)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&opts.Description, "description", "d", "", "New description")
	cmd.Flags().StringVarP(&opts.Responsible, "responsible", "r", "", "New responsible person")
	cmd.Flags().StringVarP(&opts.Priority, "priority", "p", "", "New priority: Low, Medium or High")

	return cmd
}

// newRmCommand creates the rm command.
func newRmCommand(c *app.Container) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Remove a task",
		Long: `Remove a task from the list. Tasks in any status can be removed.

Asks for confirmation unless --yes is given.

Examples:
  todo rm 1
  todo rm "#1" --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := domain.ParseTaskID(args[0])
			if err != nil {
				return err
			}

			store, err := c.Tasks()
			if err != nil {
				return err
			}

			task, err := store.FindByID(taskID)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			confirmed := yes
			if !confirmed {
				_, _ = fmt.Fprintf(w, "Removing Task '%s' (ID: %d)\n", task.Title, task.ID)
				confirmed = confirm(cmd.InOrStdin(), w, "Do you want to proceed? (y/n): ")
			}

			out, err := store.Remove(taskID, confirmed)
			if err != nil {
				return err
			}
			if !out.Removed {
				_, _ = fmt.Fprintln(w, "Task removal cancelled.")
				return nil
			}

			_, _ = fmt.Fprintf(w, "Task '%s' removed successfully.\n", out.Task.Title)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Remove without asking for confirmation")

	return cmd
}

// confirm prints prompt and reports whether the answer is "y".
func confirm(r io.Reader, w io.Writer, prompt string) bool {
	_, _ = fmt.Fprint(w, prompt)
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false
	}
	return strings.ToLower(strings.TrimSpace(line)) == "y"
}
