package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// GoodbyeMessage is printed when the user leaves the menu.
const GoodbyeMessage = "Exiting the To-Do List application. Goodbye!"

// View renders the model.
func (m *Model) View() string {
	if m.quitting {
		return GoodbyeMessage + "\n"
	}

	var content string
	switch m.mode {
	case ModeInput:
		content = m.viewInput()
	case ModeConfirm:
		content = m.viewConfirm()
	case ModeResult:
		content = m.viewResult()
	case ModeMenu:
		content = m.viewMenu()
	}
	return m.styles.App.Render(content)
}

func (m *Model) viewMenu() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("To-Do List Menu"))
	b.WriteString("\n")
	b.WriteString(m.styles.Subtitle.Render(FormatSummary(m.store.Summary())))
	b.WriteString("\n\n")

	for i, a := range Actions {
		cursor := "  "
		style := m.styles.Item
		if i == m.cursor {
			cursor = m.styles.Cursor.Render("▸ ")
			style = m.styles.ItemSelected
		}
		b.WriteString(cursor)
		b.WriteString(m.styles.ItemNumber.Render(fmt.Sprintf("%d.", i+1)))
		b.WriteString(style.Render(a.Label()))
		b.WriteString("\n")
	}

	b.WriteString(m.footer(
		"↑/↓", "move",
		"enter", "select",
		fmt.Sprintf("1-%d", len(Actions)), "choose",
		"q", "quit",
	))
	return b.String()
}

func (m *Model) viewInput() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render(m.action.Label()))
	b.WriteString("\n\n")

	for i, answer := range m.answers {
		b.WriteString(m.styles.Answered.Render(m.prompts[i].label + answer))
		b.WriteString("\n")
	}

	if len(m.answers) < len(m.prompts) {
		b.WriteString(m.styles.Prompt.Render(m.prompts[len(m.answers)].label))
		b.WriteString("\n")
		b.WriteString(m.styles.Input.Render(m.input.View()))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(m.styles.Error.Render(m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString(m.footer("enter", "submit", "esc", "back"))
	return b.String()
}

func (m *Model) viewConfirm() string {
	width := maxDialogWidth
	if m.width > 0 && m.width-4 < width {
		width = max(m.width-4, 20)
	}

	var b strings.Builder
	b.WriteString(m.styles.DialogTitle.Render("Remove Task"))
	b.WriteString("\n\n")
	b.WriteString(m.styles.DialogText.Render(
		fmt.Sprintf("Removing Task '%s' (ID: %d)", short(m.task.Title), m.task.ID)))
	b.WriteString("\n")
	b.WriteString(m.styles.DialogText.Render("Do you want to proceed?"))
	b.WriteString("\n\n")
	b.WriteString(m.styles.DialogKey.Render("[y]") + " Yes  " + m.styles.DialogKey.Render("[n]") + " No")

	return m.styles.Dialog.Width(width).Render(b.String())
}

func (m *Model) viewResult() string {
	style := m.styles.Success
	if m.resultFailed {
		style = m.styles.Error
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render(m.action.Label()),
		"",
		style.Render(m.result),
		m.styles.Footer.Render("Press Enter to continue..."),
	)
}

// footer renders key/description pairs.
func (m *Model) footer(pairs ...string) string {
	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, m.styles.FooterKey.Render(pairs[i])+" "+pairs[i+1])
	}
	return m.styles.Footer.Render(strings.Join(parts, "  "))
}
