package tui

import (
	"github.com/FelipeCJSEP/todo/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Colors defines the color palette for the TUI.
var Colors = struct {
	// Base colors
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Muted      lipgloss.Color
	Error      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Background lipgloss.Color

	// Status colors
	InProgress lipgloss.Color
	Completed  lipgloss.Color
	Cancelled  lipgloss.Color

	// Priority colors
	Low    lipgloss.Color
	Medium lipgloss.Color
	High   lipgloss.Color
}{
	Primary:    lipgloss.Color("#6C5CE7"), // Purple
	Secondary:  lipgloss.Color("#A29BFE"), // Lavender
	Muted:      lipgloss.Color("#636E72"), // Gray
	Error:      lipgloss.Color("#D63031"), // Red
	Success:    lipgloss.Color("#00B894"), // Green
	Warning:    lipgloss.Color("#FDCB6E"), // Yellow
	Background: lipgloss.Color("#2D3436"), // Dark gray

	InProgress: lipgloss.Color("#FDCB6E"), // Yellow
	Completed:  lipgloss.Color("#00B894"), // Green
	Cancelled:  lipgloss.Color("#636E72"), // Gray

	Low:    lipgloss.Color("#74B9FF"), // Light blue
	Medium: lipgloss.Color("#FDCB6E"), // Yellow
	High:   lipgloss.Color("#D63031"), // Red
}

// StatusColor returns the color for a status.
func StatusColor(s domain.Status) lipgloss.Color {
	switch s {
	case domain.StatusInProgress:
		return Colors.InProgress
	case domain.StatusCompleted:
		return Colors.Completed
	case domain.StatusCancelled:
		return Colors.Cancelled
	}
	return Colors.Muted
}

// PriorityColor returns the color for a priority.
func PriorityColor(p domain.Priority) lipgloss.Color {
	switch p {
	case domain.PriorityLow:
		return Colors.Low
	case domain.PriorityMedium:
		return Colors.Medium
	case domain.PriorityHigh:
		return Colors.High
	}
	return Colors.Muted
}

// Styles contains the lipgloss styles for the menu.
type Styles struct {
	App lipgloss.Style

	// Header
	Title    lipgloss.Style
	Subtitle lipgloss.Style

	// Menu
	Item         lipgloss.Style
	ItemSelected lipgloss.Style
	ItemNumber   lipgloss.Style
	Cursor       lipgloss.Style

	// Input
	Prompt    lipgloss.Style
	Input     lipgloss.Style
	Answered  lipgloss.Style
	InputHint lipgloss.Style

	// Dialog
	Dialog      lipgloss.Style
	DialogTitle lipgloss.Style
	DialogText  lipgloss.Style
	DialogKey   lipgloss.Style

	// Messages
	Success lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style

	// Footer
	Footer    lipgloss.Style
	FooterKey lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return Styles{
		App: lipgloss.NewStyle().Padding(1, 2),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary),
		Subtitle: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		Item: lipgloss.NewStyle().
			PaddingLeft(1),
		ItemSelected: lipgloss.NewStyle().
			PaddingLeft(1).
			Bold(true).
			Foreground(Colors.Warning),
		ItemNumber: lipgloss.NewStyle().
			Foreground(Colors.Secondary),
		Cursor: lipgloss.NewStyle().
			Foreground(Colors.Primary).
			Bold(true),

		Prompt: lipgloss.NewStyle().
			Bold(true),
		Input: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(Colors.Secondary).
			Padding(0, 1),
		Answered: lipgloss.NewStyle().
			Foreground(Colors.Muted),
		InputHint: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Italic(true),

		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Error).
			Padding(1, 2),
		DialogTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Error),
		DialogText: lipgloss.NewStyle(),
		DialogKey: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary),

		Success: lipgloss.NewStyle().
			Foreground(Colors.Success),
		Error: lipgloss.NewStyle().
			Foreground(Colors.Error).
			Bold(true),
		Muted: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		Footer: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			MarginTop(1),
		FooterKey: lipgloss.NewStyle().
			Foreground(Colors.Secondary).
			Bold(true),
	}
}
