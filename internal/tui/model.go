package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/FelipeCJSEP/todo/internal/domain"
	"github.com/FelipeCJSEP/todo/internal/taskstore"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
)

const (
	maxLabelWidth  = 40 // Longest task text quoted inside a prompt
	maxDialogWidth = 60
)

// Prompt validation errors shown under the input.
var (
	errPriorityInput = errors.New("Invalid priority. Please enter Low, Medium, or High.") //nolint:staticcheck // Shown verbatim to the user
	errTaskIDInput   = errors.New("Invalid task ID. Please enter a positive number.")   //nolint:staticcheck // Shown verbatim to the user
)

// prompt is one question of a multi-step input.
type prompt struct {
	validate func(string) error // nil accepts any answer
	label    string
}

// Model is the menu TUI model.
// Store operations run synchronously inside Update, so the store is only
// ever touched from the program's event loop.
// Fields are ordered to minimize memory padding.
type Model struct {
	// Dependencies
	store *taskstore.Store

	// State
	task    *domain.Task // Task picked for edit or remove
	err     error        // Validation error for the current prompt
	prompts []prompt
	answers []string
	result  string
	display domain.DisplayConfig

	// Components
	keys   KeyMap
	styles Styles
	input  textinput.Model

	// Numeric state
	cursor int
	width  int
	height int
	action Action
	mode   Mode

	// Boolean state
	resultFailed bool
	quitting     bool
}

// New creates a new menu model over store.
func New(store *taskstore.Store, display domain.DisplayConfig) *Model {
	ti := textinput.New()
	ti.CharLimit = 500

	return &Model{
		store:   store,
		display: display,
		keys:    DefaultKeyMap(),
		styles:  DefaultStyles(),
		input:   ti,
		mode:    ModeMenu,
	}
}

// Run starts the menu program and blocks until the user exits.
func Run(store *taskstore.Store, display domain.DisplayConfig) error {
	p := tea.NewProgram(New(store, display), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	// Cursor blink and other component messages
	if m.mode == ModeInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey handles key events.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}

	switch m.mode {
	case ModeInput:
		return m.handleInputMode(msg)
	case ModeConfirm:
		return m.handleConfirmMode(msg)
	case ModeResult:
		return m.handleResultMode(msg)
	case ModeMenu:
		return m.handleMenuMode(msg)
	}
	return m, nil
}

// handleMenuMode handles keys in the option list.
func (m *Model) handleMenuMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(Actions)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Select):
		return m.start(Actions[m.cursor])
	}

	// Number shortcuts 1-8
	if s := msg.String(); len(s) == 1 && s[0] >= '1' && int(s[0]-'1') < len(Actions) {
		m.cursor = int(s[0] - '1')
		return m.start(Actions[m.cursor])
	}
	return m, nil
}

// handleInputMode handles keys while answering a prompt.
func (m *Model) handleInputMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.input.Blur()
		m.mode = ModeMenu
		return m, nil

	case key.Matches(msg, m.keys.Select):
		return m.submit()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleConfirmMode handles keys in the removal dialog.
func (m *Model) handleConfirmMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		out, err := m.store.Remove(m.task.ID, true)
		if err != nil {
			return m.fail(err)
		}
		return m.succeed(fmt.Sprintf("Task '%s' removed successfully.", out.Task.Title))

	case key.Matches(msg, m.keys.Decline):
		if _, err := m.store.Remove(m.task.ID, false); err != nil {
			return m.fail(err)
		}
		return m.succeed("Task removal cancelled.")
	}
	return m, nil
}

// handleResultMode returns to the menu.
func (m *Model) handleResultMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Select) || key.Matches(msg, m.keys.Cancel) || key.Matches(msg, m.keys.Quit) {
		m.mode = ModeMenu
		m.result = ""
		m.resultFailed = false
	}
	return m, nil
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

// start begins the flow for action.
func (m *Model) start(a Action) (tea.Model, tea.Cmd) {
	m.action = a
	m.task = nil
	m.err = nil

	if a == ActionExit {
		return m.quit()
	}
	if a.needsTasks() && len(m.store.ListAll()) == 0 {
		return m.succeed("No tasks available.")
	}

	switch a { //nolint:exhaustive // ID-based actions handled in default
	case ActionAdd:
		return m.ask(
			prompt{label: "Enter task title: "},
			prompt{label: "Enter task description: "},
			prompt{label: "Enter responsible person: "},
			prompt{label: "Enter task priority (Low, Medium, High): ", validate: validatePriority},
		)
	case ActionList:
		return m.succeed(m.renderList())
	default:
		return m.ask(prompt{label: idPromptLabel(a), validate: validateTaskID})
	}
}

func idPromptLabel(a Action) string {
	switch a { //nolint:exhaustive // Only ID-based actions reach here
	case ActionSearch:
		return "Enter the ID of the task to search: "
	case ActionComplete:
		return "Enter the ID of the task to mark as completed: "
	case ActionCancel:
		return "Enter the ID of the task to mark as cancelled: "
	case ActionEdit:
		return "Enter the ID of the task to edit: "
	default:
		return "Enter the ID of the task to remove: "
	}
}

// ask switches to input mode with the given prompts.
func (m *Model) ask(prompts ...prompt) (tea.Model, tea.Cmd) {
	m.prompts = prompts
	m.answers = nil
	m.mode = ModeInput
	m.input.Reset()
	m.input.Focus()
	return m, textinput.Blink
}

// submit records the current answer and advances.
func (m *Model) submit() (tea.Model, tea.Cmd) {
	value := m.input.Value()
	p := m.prompts[len(m.answers)]
	if p.validate != nil {
		if err := p.validate(value); err != nil {
			m.err = err
			m.input.Reset()
			return m, nil
		}
	}
	m.err = nil
	m.answers = append(m.answers, value)
	m.input.Reset()

	if m.action == ActionEdit && len(m.answers) == 1 {
		return m.beginEdit()
	}
	if len(m.answers) < len(m.prompts) {
		return m, nil
	}
	m.input.Blur()
	return m.finish()
}

// beginEdit looks up the task and asks for the new values.
func (m *Model) beginEdit() (tea.Model, tea.Cmd) {
	id := answerID(m.answers[0])
	task, err := m.store.FindByID(id)
	if err != nil {
		return m.lookupFailed(id, err)
	}
	if task.Status != domain.StatusInProgress {
		return m.failText(fmt.Sprintf("Task '%s' (ID: %d) is not editable.\nOnly tasks that are 'In Progress' can be edited.", task.Title, task.ID))
	}

	m.task = task
	m.prompts = append(m.prompts,
		prompt{label: fmt.Sprintf("Enter new title (leave blank to keep '%s'): ", short(task.Title))},
		prompt{label: "Enter new description (leave blank to keep current): "},
		prompt{label: fmt.Sprintf("Enter new responsible person (leave blank to keep '%s'): ", short(task.Responsible))},
		prompt{
			label:    fmt.Sprintf("Enter new priority (Low, Medium, High) or leave blank to keep '%s': ", task.Priority),
			validate: validateOptionalPriority,
		},
	)
	return m, nil
}

// finish runs the store operation once every prompt is answered.
func (m *Model) finish() (tea.Model, tea.Cmd) {
	a := m.answers

	switch m.action { //nolint:exhaustive // List and Exit never prompt
	case ActionAdd:
		task, err := m.store.Add(taskstore.AddInput{
			Title:       a[0],
			Description: a[1],
			Responsible: a[2],
			Priority:    a[3],
		})
		if err != nil {
			return m.fail(err)
		}
		return m.succeed(fmt.Sprintf("Task '%s' added successfully. ID: %d", task.Title, task.ID))

	case ActionSearch:
		id := answerID(a[0])
		task, err := m.store.FindByID(id)
		if err != nil {
			return m.lookupFailed(id, err)
		}
		var b strings.Builder
		WriteTaskDetails(&b, task, m.display.TimeFormat)
		return m.succeed(strings.TrimRight(b.String(), "\n"))

	case ActionComplete, ActionCancel:
		target := domain.StatusCompleted
		if m.action == ActionCancel {
			target = domain.StatusCancelled
		}
		id := answerID(a[0])
		task, err := m.store.FindByID(id)
		if err != nil {
			return m.lookupFailed(id, err)
		}
		if _, err := m.store.Close(id, target); err != nil {
			if errors.Is(err, domain.ErrInvalidState) {
				return m.failText(fmt.Sprintf("Task '%s' (ID: %d) cannot be marked as %s.\nOnly tasks that are 'In Progress' can be closed.", task.Title, task.ID, target.Verb()))
			}
			return m.fail(err)
		}
		return m.succeed(fmt.Sprintf("Task '%s' marked as %s.", task.Title, target.Verb()))

	case ActionEdit:
		task, err := m.store.Edit(taskstore.EditInput{
			TaskID:      m.task.ID,
			Title:       &a[1],
			Description: &a[2],
			Responsible: &a[3],
			Priority:    &a[4],
		})
		if err != nil {
			return m.fail(err)
		}
		return m.succeed(fmt.Sprintf("Task '%s' updated successfully.", task.Title))

	case ActionRemove:
		id := answerID(a[0])
		task, err := m.store.FindByID(id)
		if err != nil {
			return m.lookupFailed(id, err)
		}
		m.task = task
		m.mode = ModeConfirm
		return m, nil
	}

	m.mode = ModeMenu
	return m, nil
}

// renderList renders the task table with its summary line.
func (m *Model) renderList() string {
	tasks := m.store.ListAll()
	return RenderTaskTable(tasks, m.display) + "\n" + FormatSummary(m.store.Summary())
}

func (m *Model) succeed(text string) (tea.Model, tea.Cmd) {
	m.result = text
	m.resultFailed = false
	m.mode = ModeResult
	return m, nil
}

func (m *Model) failText(text string) (tea.Model, tea.Cmd) {
	m.result = text
	m.resultFailed = true
	m.mode = ModeResult
	return m, nil
}

func (m *Model) fail(err error) (tea.Model, tea.Cmd) {
	return m.failText("Error: " + err.Error())
}

func (m *Model) lookupFailed(id int, err error) (tea.Model, tea.Cmd) {
	if errors.Is(err, domain.ErrTaskNotFound) {
		return m.failText(fmt.Sprintf("No task found with ID %d.", id))
	}
	return m.fail(err)
}

func validatePriority(s string) error {
	if _, err := domain.ParsePriorityInput(s); err != nil {
		return errPriorityInput
	}
	return nil
}

func validateOptionalPriority(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return validatePriority(s)
}

func validateTaskID(s string) error {
	if _, err := domain.ParseTaskID(s); err != nil {
		return errTaskIDInput
	}
	return nil
}

// answerID parses an answer already accepted by validateTaskID.
func answerID(s string) int {
	id, _ := domain.ParseTaskID(s)
	return id
}

// short truncates s to fit inside a prompt.
func short(s string) string {
	return runewidth.Truncate(s, maxLabelWidth, "…")
}

// Mode returns the current UI mode.
func (m *Model) Mode() Mode {
	return m.mode
}

// Result returns the text of the last action outcome.
func (m *Model) Result() string {
	return m.result
}
