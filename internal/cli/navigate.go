package cli

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Navigation and notification messages used by views.
// The appModel handles these in its Update method.

// switchViewMsg replaces the active view. The study session engine has
// already been moved to the matching state by the sender; the message
// only swaps the widget.
type switchViewMsg struct {
	view View
}

// quitMsg requests an orderly shutdown.
type quitMsg struct{}

// toastLevel selects the styling of a transient notification.
type toastLevel int

const (
	toastInfo toastLevel = iota
	toastSuccess
	toastError
)

// toastMsg shows a transient notification in the status area.
type toastMsg struct {
	level toastLevel
	text  string
}

// toastClearMsg dismisses a toast once its timer fires. The seq guards
// against an old timer clearing a newer toast.
type toastClearMsg struct {
	seq int
}

// switchView returns a tea.Cmd that replaces the active view.
func switchView(v View) tea.Cmd {
	return func() tea.Msg { return switchViewMsg{view: v} }
}

// quit returns a tea.Cmd that requests shutdown.
func quit() tea.Cmd {
	return func() tea.Msg { return quitMsg{} }
}

// toast returns a tea.Cmd that shows a transient notification.
func toast(level toastLevel, text string) tea.Cmd {
	return func() tea.Msg { return toastMsg{level: level, text: text} }
}

// toastTTL is how long a toast stays visible.
const toastTTL = 4 * time.Second
