package cli

import (
	"strings"
	"time"

	"github.com/alexanderramin/studymaster/internal/cli/formatter"
	"github.com/alexanderramin/studymaster/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
)

// appModel is the root bubbletea Model for the TUI. The study session
// engine owns which screen is visible; appModel keeps the matching view
// widget active and renders the header, status bar, and toasts around it.
type appModel struct {
	state    *SharedState
	active   View
	quitting bool

	toast      string
	toastLevel toastLevel
	toastSeq   int
}

func newAppModel(app *App) appModel {
	state := &SharedState{App: app}
	m := appModel{state: state}
	m.active = viewFor(state, app.Session.View())
	return m
}

// viewFor builds the widget matching the engine's current view. Quiz is
// never restored mid-flight: a reload during a quiz resumes on the
// dashboard, where the day can be started again.
func viewFor(state *SharedState, v domain.View) View {
	switch v {
	case domain.ViewDashboard:
		return newDashboardView(state)
	case domain.ViewQuiz:
		state.App.Session.SetView(domain.ViewDashboard)
		return newDashboardView(state)
	case domain.ViewFlashcards:
		return newFlashcardsView(state)
	default:
		return newUploadView(state)
	}
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m appModel) Init() tea.Cmd {
	if m.active != nil {
		return m.active.Init()
	}
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		updated, cmd := m.active.Update(msg)
		m.active = updated.(View)
		return m, cmd

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}

	case switchViewMsg:
		m.active = msg.view
		return m, msg.view.Init()

	case quitMsg:
		m.quitting = true
		return m, tea.Quit

	case toastMsg:
		m.toast = msg.text
		m.toastLevel = msg.level
		m.toastSeq++
		seq := m.toastSeq
		return m, tea.Tick(toastTTL, func(time.Time) tea.Msg {
			return toastClearMsg{seq: seq}
		})

	case toastClearMsg:
		if msg.seq == m.toastSeq {
			m.toast = ""
		}
		return m, nil
	}

	updated, cmd := m.active.Update(msg)
	m.active = updated.(View)
	return m, cmd
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.renderHeader(),
		m.active.View(),
		m.renderStatusBar(),
	}
	result := strings.Join(sections, "\n")

	// Pad to terminal height to prevent stale line artifacts from
	// bubbletea's line-diff renderer in alt-screen mode.
	if m.state.Height > 0 {
		lines := strings.Count(result, "\n") + 1
		if lines < m.state.Height {
			result += strings.Repeat("\n", m.state.Height-lines)
		}
	}

	return result
}

// ── rendering helpers ────────────────────────────────────────────────────────

func (m *appModel) renderHeader() string {
	header := formatter.StylePurple.Render("studymaster")
	if t := m.active.Title(); t != "" {
		header += " " + formatter.Dim("›") + " " + formatter.Dim(t)
	}
	if name := m.state.App.Session.Progress().DocumentName; name != "" {
		header += "  " + formatter.Dim("[") + formatter.StyleGreen.Render(name) + formatter.Dim("]")
	}
	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return header + "\n" + sep
}

func (m *appModel) renderStatusBar() string {
	var hints []string
	for _, b := range m.active.ShortHelp() {
		hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
	}
	bar := strings.Join(hints, "  ")

	if m.toast != "" {
		style := formatter.StyleBlue
		switch m.toastLevel {
		case toastSuccess:
			style = formatter.StyleGreen
		case toastError:
			style = formatter.StyleRed
		}
		bar = style.Render(m.toast) + "  " + bar
	}

	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return sep + "\n" + bar
}
