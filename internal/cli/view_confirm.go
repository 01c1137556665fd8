package cli

import (
	"github.com/alexanderramin/studymaster/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// confirmDeleteView wraps a huh confirm form guarding the delete-study
// action, which wipes all durable state and cannot be undone.
type confirmDeleteView struct {
	state   *SharedState
	form    *huh.Form
	confirm bool
}

func newConfirmDeleteView(state *SharedState) *confirmDeleteView {
	v := &confirmDeleteView{state: state}
	v.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Delete this study?").
				Description("This clears your plan, scores, and flashcards. It cannot be undone.").
				Affirmative("Delete").
				Negative("Keep").
				Value(&v.confirm),
		),
	)
	return v
}

func (v *confirmDeleteView) ID() ViewID    { return ViewConfirmDelete }
func (v *confirmDeleteView) Title() string { return "Delete Study" }

func (v *confirmDeleteView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (v *confirmDeleteView) Init() tea.Cmd {
	return v.form.Init()
}

func (v *confirmDeleteView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return v, switchView(newDashboardView(v.state))
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}

	if v.form.State == huh.StateCompleted {
		if !v.confirm {
			return v, switchView(newDashboardView(v.state))
		}
		v.state.App.Session.DeleteStudy()
		v.state.App.Deck.Clear()
		return v, tea.Batch(
			switchView(newUploadView(v.state)),
			toast(toastSuccess, "Study deleted successfully"),
		)
	}

	return v, cmd
}

func (v *confirmDeleteView) View() string {
	return "\n" + v.form.View() + "\n" + formatter.Dim("  esc: cancel")
}
