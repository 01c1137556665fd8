package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/studymaster/internal/api"
	"github.com/alexanderramin/studymaster/internal/cli"
	"github.com/alexanderramin/studymaster/internal/session"
	"github.com/alexanderramin/studymaster/internal/store"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine store path: env var or default ~/.studymaster/studymaster.db
	storePath := os.Getenv("STUDYMASTER_DB")
	if storePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		storePath = filepath.Join(home, ".studymaster", "studymaster.db")
	}

	// Open the durable store; the session scope lives and dies with
	// this process, which is what makes a fresh start detectable.
	durable, err := store.Open(storePath)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer durable.Close()
	sessionScope := store.NewMemoryScope()

	// Wire the backend client
	apiCfg := api.LoadConfig()
	var observer api.Observer = api.NoopObserver{}
	if apiCfg.LogCalls {
		observer = api.NewLogObserver(os.Stderr)
	}
	resolver := api.NewResolver(apiCfg, durable, observer)
	client := api.NewClient(apiCfg, resolver, observer)

	// Wire the engines
	engine := session.NewEngine(durable, sessionScope)
	engine.Restore()
	deck := session.NewDeck(durable, client)

	app := &cli.App{
		Session: engine,
		Deck:    deck,
		Client:  client,
	}

	// The TUI needs an interactive terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
