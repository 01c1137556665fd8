package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/studymaster/internal/cli/formatter"
	"github.com/alexanderramin/studymaster/internal/domain"
	"github.com/alexanderramin/studymaster/internal/session"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ── messages ─────────────────────────────────────────────────────────────────

// quizLoadedMsg signals the day's question set arrived (or failed).
type quizLoadedMsg struct {
	quiz *session.Quiz
	err  error
}

// ── view ─────────────────────────────────────────────────────────────────────

// quizView drives one day's test. In review mode it replays the stored
// result read-only with per-question correctness.
type quizView struct {
	state  *SharedState
	day    int
	review bool

	quiz    *session.Quiz
	loading bool
	cursor  int // highlighted option
}

func newQuizView(state *SharedState, day int, review bool) *quizView {
	return &quizView{
		state:   state,
		day:     day,
		review:  review,
		loading: !review,
	}
}

func (v *quizView) ID() ViewID { return ViewQuiz }

func (v *quizView) Title() string {
	if v.review {
		return fmt.Sprintf("Day %d Review", v.day)
	}
	return fmt.Sprintf("Day %d Test", v.day)
}

func (v *quizView) ShortHelp() []key.Binding {
	if v.review {
		return []key.Binding{
			key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←→", "prev/next")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dashboard")),
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "option")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
		key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←→", "prev/next")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "abandon")),
	}
}

func (v *quizView) Init() tea.Cmd {
	if v.review {
		result, ok := v.state.App.Session.Progress().Results[v.day]
		if !ok || len(result.Questions) == 0 {
			// Completed day with no stored snapshot; nothing to replay.
			return v.backToDashboard(toast(toastError, "No stored result for this day"))
		}
		v.quiz = session.ReviewQuiz(v.day, result)
		return nil
	}

	client := v.state.App.Client
	day := v.day
	return func() tea.Msg {
		quiz, err := session.StartQuiz(context.Background(), client, day)
		return quizLoadedMsg{quiz: quiz, err: err}
	}
}

func (v *quizView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case quizLoadedMsg:
		v.loading = false
		if msg.err != nil {
			// A quiz cannot render without its questions; fall back to
			// the dashboard and surface the failure.
			return v, v.backToDashboard(toast(toastError, "Failed to fetch test: "+msg.err.Error()))
		}
		v.quiz = msg.quiz
		return v, nil

	case tea.KeyMsg:
		if v.loading || v.quiz == nil {
			if msg.Type == tea.KeyEsc {
				return v, v.backToDashboard(nil)
			}
			return v, nil
		}
		return v.handleKey(msg)
	}

	return v, nil
}

func (v *quizView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	q := v.quiz

	switch msg.String() {
	case "esc":
		// Back out of an in-progress quiz: no progress is recorded.
		return v, v.backToDashboard(nil)

	case "up", "k":
		if !v.review && v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if !v.review && v.cursor < len(q.Question().Options)-1 {
			v.cursor++
		}
	case "enter", " ":
		if !v.review {
			choice := v.cursor
			q.Select(&choice)
		}
	case "c":
		q.Select(nil)

	case "left", "h", "p":
		q.Retreat()
		v.syncCursor()

	case "right", "l", "n":
		done, score := q.Advance()
		if !done {
			v.syncCursor()
			return v, nil
		}
		if v.review {
			return v, v.backToDashboard(nil)
		}
		engine := v.state.App.Session
		engine.CompleteDay(v.day, score, q.Result())
		return v, v.backToDashboard(toast(toastSuccess, fmt.Sprintf("Test completed! Your score: %d%%", score)))

	default:
		// Digit keys select an option directly.
		if !v.review {
			if n, err := strconv.Atoi(msg.String()); err == nil && n >= 1 && n <= len(q.Question().Options) {
				choice := n - 1
				q.Select(&choice)
				v.cursor = choice
			}
		}
	}

	return v, nil
}

// syncCursor moves the highlight onto the restored answer after
// navigating, so backtracking shows what was previously chosen.
func (v *quizView) syncCursor() {
	if sel := v.quiz.Selected(); sel != nil {
		v.cursor = *sel
	} else {
		v.cursor = 0
	}
}

func (v *quizView) backToDashboard(extra tea.Cmd) tea.Cmd {
	v.state.App.Session.SetView(domain.ViewDashboard)
	return tea.Batch(switchView(newDashboardView(v.state)), extra)
}

// ── rendering ────────────────────────────────────────────────────────────────

func (v *quizView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading questions...")
	}
	if v.quiz == nil {
		return ""
	}

	q := v.quiz
	question := q.Question()

	var b strings.Builder

	pct := float64(q.Pos()+1) / float64(q.Len())
	b.WriteString(fmt.Sprintf("\n  %s  %s\n\n",
		formatter.RenderPosition(pct, 20),
		formatter.Dim(fmt.Sprintf("Question %d of %d", q.Pos()+1, q.Len())),
	))

	if v.review {
		verdict := formatter.StyleRed.Render("✗ Incorrect")
		if q.CorrectHere() {
			verdict = formatter.StyleGreen.Render("✓ Correct")
		}
		b.WriteString("  " + verdict + "\n\n")
	}

	b.WriteString("  " + formatter.StyleBold.Render(question.Text) + "\n\n")

	for i, option := range question.Options {
		b.WriteString("  " + v.renderOption(question, i, option) + "\n")
	}

	return b.String()
}

func (v *quizView) renderOption(question domain.Question, i int, option string) string {
	q := v.quiz
	selected := q.Selected() != nil && *q.Selected() == i
	label := fmt.Sprintf("%d. %s", i+1, option)

	if v.review {
		correct := i == question.CorrectAnswer-1
		switch {
		case correct:
			return formatter.StyleGreen.Render("✓ " + label)
		case selected:
			return formatter.StyleRed.Render("✗ " + label)
		default:
			return formatter.Dim("  " + label)
		}
	}

	marker := "( )"
	if selected {
		marker = formatter.StyleGreen.Render("(●)")
	}
	line := fmt.Sprintf("%s %s", marker, label)
	if i == v.cursor {
		return formatter.StyleBold.Render("▸ ") + line
	}
	return "  " + line
}
