package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/anvu/studyglass/internal/app"
	"github.com/anvu/studyglass/internal/assist"
	"github.com/anvu/studyglass/internal/examprep"
	"github.com/anvu/studyglass/internal/lessons"
	"github.com/anvu/studyglass/internal/llm"
	"github.com/anvu/studyglass/internal/state"
	"github.com/anvu/studyglass/internal/store"
	"github.com/spf13/cobra"
)

// runApp opens the store, hydrates state, builds dependencies, and
// launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	repo := st.StateRepo()
	appStore := state.NewStore(repo)

	// Hydrate before the first frame so the UI never renders defaults
	// over existing data.
	raw, found, err := repo.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "warning: could not load saved state:", err)
	} else if found {
		appStore.Hydrate(raw)
	}

	appStore.TouchLogin(time.Now())

	svc := app.Services{Store: appStore}

	provider, err := llm.NewProviderFromEnv(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "AI features will be unavailable.")
	} else {
		svc.Lessons = lessons.NewService(provider, lessons.DefaultConfig())
		svc.Assist = assist.NewService(provider)
		svc.ExamPrep = examprep.NewService(provider)
	}

	return app.Run(svc)
}
