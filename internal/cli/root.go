package cli

import (
	"fmt"

	"github.com/alexanderramin/studymaster/internal/api"
	"github.com/alexanderramin/studymaster/internal/session"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// App holds the wired engines the TUI runs on.
type App struct {
	Session *session.Engine
	Deck    *session.Deck
	Client  *api.Client

	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "studymaster" command. Running it
// starts the full-screen TUI.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "studymaster",
		Short: "7-day study planner with quizzes and flashcards",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return fmt.Errorf("studymaster is interactive and needs a terminal")
			}
			p := tea.NewProgram(newAppModel(app), tea.WithAltScreen())
			_, err := p.Run()
			return err
		},
	}
	return root
}
