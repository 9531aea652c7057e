package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/FelipeCJSEP/todo/internal/domain"
	"github.com/FelipeCJSEP/todo/internal/tui"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by "list --format".
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

// taskView is the machine-readable form of a task.
//
//nolint:govet // Key order preferred over padding
type taskView struct {
	ID          int     `json:"id" yaml:"id"`
	Title       string  `json:"title" yaml:"title"`
	Description string  `json:"description" yaml:"description"`
	Responsible string  `json:"responsible" yaml:"responsible"`
	Status      string  `json:"status" yaml:"status"`
	Priority    string  `json:"priority" yaml:"priority"`
	CreatedAt   string  `json:"created_at" yaml:"created_at"`
	UpdatedAt   string  `json:"updated_at" yaml:"updated_at"`
	ClosedAt    *string `json:"closed_at" yaml:"closed_at"`
}

func newTaskViews(tasks []*domain.Task) []taskView {
	views := make([]taskView, 0, len(tasks))
	for _, t := range tasks {
		v := taskView{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Responsible: t.Responsible,
			Status:      string(t.Status),
			Priority:    string(t.Priority),
			CreatedAt:   t.CreatedAt.Format(time.RFC3339),
			UpdatedAt:   t.UpdatedAt.Format(time.RFC3339),
		}
		if t.ClosedAt != nil {
			closed := t.ClosedAt.Format(time.RFC3339)
			v.ClosedAt = &closed
		}
		views = append(views, v)
	}
	return views
}

// writeTasks writes tasks in the requested format.
func writeTasks(w io.Writer, tasks []*domain.Task, format string, display domain.DisplayConfig) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(newTaskViews(tasks))
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(newTaskViews(tasks)); err != nil {
			return err
		}
		return enc.Close()
	case formatTable, "":
		if len(tasks) == 0 {
			_, _ = fmt.Fprintln(w, "No tasks available.")
			return nil
		}
		_, _ = fmt.Fprintln(w, tui.RenderTaskTable(tasks, display))
		_, _ = fmt.Fprintln(w, tui.FormatSummary(domain.NewTaskSummary(tasks)))
		return nil
	default:
		return fmt.Errorf("%w: unknown format %q (expected table, json or yaml)", domain.ErrInvalidArgument, format)
	}
}
