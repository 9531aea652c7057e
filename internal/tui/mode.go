// Package tui provides the interactive menu for todo.
package tui

// Mode represents the current UI mode.
type Mode int

const (
	ModeMenu    Mode = iota // Numbered option list
	ModeInput               // Answering a prompt
	ModeConfirm             // Removal confirmation dialog
	ModeResult              // Showing the outcome of an action
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeMenu:
		return "menu"
	case ModeInput:
		return "input"
	case ModeConfirm:
		return "confirm"
	case ModeResult:
		return "result"
	default:
		return "unknown"
	}
}

// Action is a menu option.
type Action int

const (
	ActionAdd Action = iota
	ActionList
	ActionSearch
	ActionComplete
	ActionCancel
	ActionEdit
	ActionRemove
	ActionExit
)

// Actions lists the menu options in display order.
var Actions = []Action{
	ActionAdd,
	ActionList,
	ActionSearch,
	ActionComplete,
	ActionCancel,
	ActionEdit,
	ActionRemove,
	ActionExit,
}

// Label returns the menu text for the action.
func (a Action) Label() string {
	switch a {
	case ActionAdd:
		return "Add Task"
	case ActionList:
		return "List Tasks"
	case ActionSearch:
		return "Search Task by ID"
	case ActionComplete:
		return "Complete Task"
	case ActionCancel:
		return "Cancel Task"
	case ActionEdit:
		return "Edit Task"
	case ActionRemove:
		return "Remove Task"
	case ActionExit:
		return "Exit"
	default:
		return "Unknown"
	}
}

// needsTasks reports whether the action is pointless on an empty list.
func (a Action) needsTasks() bool {
	switch a {
	case ActionAdd, ActionExit:
		return false
	case ActionList, ActionSearch, ActionComplete, ActionCancel, ActionEdit, ActionRemove:
		return true
	}
	return false
}
