package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/studymaster/internal/cli/formatter"
	"github.com/alexanderramin/studymaster/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// deckOpMsg signals a deck fetch finished.
type deckOpMsg struct {
	err error
}

// flashcardsView is the flashcard practice screen over the deck engine.
type flashcardsView struct {
	state *SharedState
	spin  spinner.Model
}

func newFlashcardsView(state *SharedState) *flashcardsView {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StylePurple
	return &flashcardsView{state: state, spin: sp}
}

func (v *flashcardsView) ID() ViewID    { return ViewFlashcards }
func (v *flashcardsView) Title() string { return "Flashcards" }

func (v *flashcardsView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "flip")),
		key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←→", "prev/next")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dashboard")),
	}
}

func (v *flashcardsView) Init() tea.Cmd {
	deck := v.state.App.Deck
	deck.Restore()
	if deck.Len() > 0 {
		return nil
	}
	// Empty deck: seed it with the first card.
	return tea.Batch(v.spin.Tick, v.appendCard())
}

func (v *flashcardsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	deck := v.state.App.Deck

	switch msg := msg.(type) {
	case deckOpMsg:
		if msg.err != nil {
			return v, toast(toastError, "Failed to fetch flashcard: "+msg.err.Error())
		}
		return v, nil

	case spinner.TickMsg:
		if deck.Fetching() {
			var cmd tea.Cmd
			v.spin, cmd = v.spin.Update(msg)
			return v, cmd
		}
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			v.state.App.Session.SetView(domain.ViewDashboard)
			return v, switchView(newDashboardView(v.state))
		case "enter", " ", "f":
			deck.Flip()
		case "left", "h", "p":
			deck.Previous()
		case "right", "l", "n":
			if deck.Fetching() {
				return v, nil
			}
			return v, tea.Batch(v.spin.Tick, v.nextCard())
		}
	}

	return v, nil
}

// appendCard fetches the first card off the UI loop.
func (v *flashcardsView) appendCard() tea.Cmd {
	deck := v.state.App.Deck
	return func() tea.Msg {
		return deckOpMsg{err: deck.Append(context.Background())}
	}
}

// nextCard advances, fetching lazily only at the tail of the deck.
func (v *flashcardsView) nextCard() tea.Cmd {
	deck := v.state.App.Deck
	return func() tea.Msg {
		return deckOpMsg{err: deck.Next(context.Background())}
	}
}

func (v *flashcardsView) View() string {
	deck := v.state.App.Deck
	progress := v.state.App.Session.Progress()

	var b strings.Builder

	mode := "Adaptive mode - focusing on your weak areas"
	if progress.StudyEnded {
		mode = "Practice mode - equal distribution"
	}
	b.WriteString("\n  " + formatter.StyleBold.Render("Flashcards") + "\n")
	b.WriteString("  " + formatter.Dim(mode) + "\n\n")

	card, ok := deck.Card()
	switch {
	case deck.Fetching():
		b.WriteString("  " + v.spin.View() + " Fetching card...\n")
	case !ok:
		b.WriteString("  " + formatter.Dim("No cards yet.") + "\n")
	case deck.Flipped():
		b.WriteString("  " + formatter.StyleGreen.Render("Answer") + "\n\n")
		b.WriteString("  " + card.Answer + "\n\n")
		b.WriteString("  " + formatter.Dim("Press enter to flip back") + "\n")
	default:
		b.WriteString("  " + formatter.StyleBlue.Render("Question") + "\n\n")
		b.WriteString("  " + formatter.StyleBold.Render(card.Question) + "\n\n")
		b.WriteString("  " + formatter.Dim("Press enter to reveal the answer") + "\n")
	}

	if deck.Len() > 0 {
		b.WriteString("\n  " + formatter.Dim(fmt.Sprintf("%d / %d", deck.Index()+1, deck.Len())) + "\n")
	}

	return b.String()
}
