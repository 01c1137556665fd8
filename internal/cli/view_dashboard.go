package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/studymaster/internal/cli/formatter"
	"github.com/alexanderramin/studymaster/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// dashboardView shows the 7-day plan: per-day status and score, the
// overall progress bar, and the flashcards entry point.
type dashboardView struct {
	state  *SharedState
	cursor int // 0-based index over plan days
}

func newDashboardView(state *SharedState) *dashboardView {
	return &dashboardView{state: state}
}

func (v *dashboardView) ID() ViewID    { return ViewDashboard }
func (v *dashboardView) Title() string { return "Dashboard" }

func (v *dashboardView) ShortHelp() []key.Binding {
	progress := v.state.App.Session.Progress()
	hints := []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "start/review")),
		key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "flashcards")),
	}
	if progress.AllCompleted() && !progress.StudyEnded {
		hints = append(hints, key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "end study")))
	}
	hints = append(hints,
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete study")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	)
	return hints
}

func (v *dashboardView) Init() tea.Cmd { return nil }

func (v *dashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	engine := v.state.App.Session
	progress := engine.Progress()

	switch keyMsg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < domain.PlanDays-1 {
			v.cursor++
		}
	case "enter":
		day := v.cursor + 1
		switch progress.DayStatus(day) {
		case domain.DayCompleted:
			engine.SetView(domain.ViewQuiz)
			return v, switchView(newQuizView(v.state, day, true))
		case domain.DayUpcoming:
			engine.SetView(domain.ViewQuiz)
			return v, switchView(newQuizView(v.state, day, false))
		default:
			return v, toast(toastInfo, fmt.Sprintf("Complete day %d first", day-1))
		}
	case "f":
		engine.SetView(domain.ViewFlashcards)
		return v, switchView(newFlashcardsView(v.state))
	case "e":
		if progress.AllCompleted() && !progress.StudyEnded {
			engine.EndStudy()
			return v, toast(toastSuccess, "Study ended! Flashcards now show equal distribution across all topics.")
		}
	case "x":
		return v, switchView(newConfirmDeleteView(v.state))
	case "q":
		return v, quit()
	}

	return v, nil
}

func (v *dashboardView) View() string {
	progress := v.state.App.Session.Progress()

	var b strings.Builder

	title := progress.DocumentName
	if title == "" {
		title = "Your Study Plan"
	}
	b.WriteString("\n  " + formatter.StyleBold.Render(title) + "\n")
	b.WriteString("  " + formatter.Dim("Your personalized 7-day adaptive learning journey") + "\n\n")

	pct := float64(progress.CompletedCount()) / float64(domain.PlanDays)
	b.WriteString(fmt.Sprintf("  %s  %s\n\n",
		formatter.RenderProgress(pct, 20),
		formatter.Dim(fmt.Sprintf("%d of %d tests completed", progress.CompletedCount(), domain.PlanDays)),
	))

	for day := 1; day <= domain.PlanDays; day++ {
		cursor := "  "
		rowStyle := formatter.StyleFg
		if day-1 == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			rowStyle = formatter.StyleBold
		}

		scoreCol := ""
		if score, ok := progress.Scores[day]; ok {
			scoreCol = formatter.ScoreStyle(score).Render(fmt.Sprintf("%3d%%", score))
		}

		b.WriteString(fmt.Sprintf("  %s%s  %-14s %s\n",
			cursor,
			rowStyle.Render(fmt.Sprintf("Day %d", day)),
			formatter.DayBadge(progress.DayStatus(day)),
			scoreCol,
		))
	}

	b.WriteString("\n  " + formatter.Header("Flashcards") + "\n")
	mode := "adaptive mode"
	if progress.StudyEnded {
		mode = "equal distribution"
	}
	b.WriteString("  " + formatter.Dim("Reinforce your learning ("+mode+") — press 'f'") + "\n")

	return b.String()
}
