package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/simz/internal/app"
	"github.com/abhisek/simz/internal/coach"
	"github.com/abhisek/simz/internal/config"
	"github.com/abhisek/simz/internal/events"
	"github.com/abhisek/simz/internal/screens/home"
	"github.com/abhisek/simz/internal/store"
)

// runApp loads configuration, opens the event store, wires the optional
// coach and launches the TUI. A non-empty startLab skips the picker.
func runApp(cmd *cobra.Command, startLab string) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath, err = resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	deps := home.Deps{
		Tuning:   cfg,
		StartLab: startLab,
		Sink: func(sessionID, labID string) events.Sink {
			return st.Sink(sessionID, labID)
		},
	}

	// Coaching is optional — the labs run fully without it.
	provider, err := coach.NewProviderFromEnv(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Coach not configured:", err)
		fmt.Fprintln(os.Stderr, "Generated insights will be unavailable.")
	} else {
		deps.Coach = coach.New(provider)
	}

	return app.Run(deps)
}
