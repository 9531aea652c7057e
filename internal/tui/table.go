package tui

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/FelipeCJSEP/todo/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

// Column wrap widths for the task table.
const (
	titleWidth       = 20
	descriptionWidth = 40
	responsibleWidth = 20
)

// NotAvailable is shown for a missing close time.
const NotAvailable = "N/A"

// TableHeaders are the task table column titles.
var TableHeaders = []string{
	"ID", "Title", "Description", "Responsible", "Status", "Priority",
	"Created At", "Updated At", "Closed At",
}

const (
	colStatus   = 4
	colPriority = 5
)

var (
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	tableBorderStyle = lipgloss.NewStyle().Foreground(Colors.Muted)
)

// Fill wraps s at width, breaking words longer than width.
func Fill(s string, width int) string {
	return wrap.String(wordwrap.String(s, width), width)
}

func formatTime(t *time.Time, layout string) string {
	if t == nil {
		return NotAvailable
	}
	return t.Format(layout)
}

// RenderTaskTable renders tasks as a bordered grid.
// Colors are applied only when color is set.
func RenderTaskTable(tasks []*domain.Task, display domain.DisplayConfig) string {
	layout := display.TimeFormat
	if layout == "" {
		layout = domain.DefaultTimeFormat
	}

	rows := make([][]string, 0, len(tasks))
	for _, task := range tasks {
		rows = append(rows, []string{
			strconv.Itoa(task.ID),
			Fill(task.Title, titleWidth),
			Fill(task.Description, descriptionWidth),
			Fill(task.Responsible, responsibleWidth),
			string(task.Status),
			string(task.Priority),
			formatTime(&task.CreatedAt, layout),
			formatTime(&task.UpdatedAt, layout),
			formatTime(task.ClosedAt, layout),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderRow(true).
		Headers(TableHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			if !display.Color || row < 0 || row >= len(tasks) {
				return tableCellStyle
			}
			switch col {
			case colStatus:
				return tableCellStyle.Foreground(StatusColor(tasks[row].Status))
			case colPriority:
				return tableCellStyle.Foreground(PriorityColor(tasks[row].Priority))
			}
			return tableCellStyle
		})
	if display.Color {
		t = t.BorderStyle(tableBorderStyle)
	}
	return t.Render()
}

// FormatSummary renders per-status counts.
func FormatSummary(s domain.TaskSummary) string {
	noun := "tasks"
	if s.Total == 1 {
		noun = "task"
	}
	return fmt.Sprintf("%d %s: %d in progress, %d completed, %d cancelled",
		s.Total, noun, s.InProgress, s.Completed, s.Cancelled)
}

// WriteTaskDetails prints every field of a single task.
func WriteTaskDetails(w io.Writer, task *domain.Task, layout string) {
	if layout == "" {
		layout = domain.DefaultTimeFormat
	}
	_, _ = fmt.Fprintf(w, "Task Found (ID: %d):\n", task.ID)
	_, _ = fmt.Fprintf(w, "Title: %s\n", task.Title)
	_, _ = fmt.Fprintf(w, "Description: %s\n", task.Description)
	_, _ = fmt.Fprintf(w, "Responsible: %s\n", task.Responsible)
	_, _ = fmt.Fprintf(w, "Status: %s\n", task.Status)
	_, _ = fmt.Fprintf(w, "Priority: %s\n", task.Priority)
	_, _ = fmt.Fprintf(w, "Created At: %s\n", task.CreatedAt.Format(layout))
	_, _ = fmt.Fprintf(w, "Updated At: %s\n", task.UpdatedAt.Format(layout))
	if task.ClosedAt != nil {
		_, _ = fmt.Fprintf(w, "Closed At: %s\n", task.ClosedAt.Format(layout))
	}
}
