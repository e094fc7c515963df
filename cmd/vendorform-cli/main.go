package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	vendorform "github.com/goliatone/go-vendorform"
	"github.com/goliatone/go-vendorform/pkg/draft"
	"github.com/goliatone/go-vendorform/pkg/forms"
	"github.com/goliatone/go-vendorform/pkg/submit"
	"github.com/goliatone/go-vendorform/pkg/tui"
	"github.com/goliatone/go-vendorform/pkg/wizard"
)

func main() {
	endpoint := flag.String("endpoint", "", "intake endpoint URL (dry run if empty)")
	draftPath := flag.String("draft", defaultDraftPath(), "SQLite draft file path")
	autosave := flag.Duration("autosave", wizard.DefaultAutosaveDelay, "draft auto-save debounce")
	reset := flag.Bool("reset", false, "discard any saved draft before starting")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	if err := run(*endpoint, *draftPath, *autosave, *reset, *verbose); err != nil {
		if errors.Is(err, tui.ErrAborted) || errors.Is(err, tui.ErrDeclined) {
			fmt.Fprintln(os.Stderr, "Exited without submitting; your draft is saved.")
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "vendorform: %v\n", err)
		os.Exit(1)
	}
}

func run(endpoint, draftPath string, autosave time.Duration, reset, verbose bool) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if dir := filepath.Dir(draftPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create draft directory: %w", err)
		}
	}
	durable, err := draft.NewSQLiteStore(draftPath)
	if err != nil {
		return fmt.Errorf("open draft store: %w", err)
	}
	defer durable.Close()

	drafts := vendorform.NewDrafts(draft.WithDurable(durable))
	if reset {
		if err := drafts.Clear(ctx); err != nil {
			logger.Warn("draft reset failed", "error", err)
		}
	}

	var submitter wizard.Submitter
	if endpoint != "" {
		client, err := submit.NewClient(ctx, endpoint)
		if err != nil {
			return fmt.Errorf("configure intake client: %w", err)
		}
		submitter = client
	} else {
		logger.Info("no endpoint configured, submissions are simulated")
		submitter = dryRunSubmitter{logger: logger}
	}

	controller := vendorform.NewController(
		wizard.WithDrafts(drafts),
		wizard.WithSubmitter(submitter),
		wizard.WithAutosaveDelay(autosave),
		wizard.WithValidationContext(forms.Context{Options: vendorform.Options()}),
		wizard.WithObserver(func(state vendorform.State) {
			logger.Debug("wizard state",
				"status", state.Status,
				"step", state.CurrentStep,
				"documents", len(state.Documents),
				"images", len(state.ProductImages))
		}),
	)
	defer controller.Close()

	return vendorform.Run(ctx, controller)
}

// dryRunSubmitter logs the payload instead of calling an intake service.
type dryRunSubmitter struct {
	logger *slog.Logger
}

func (d dryRunSubmitter) Submit(_ context.Context, payload map[string]any) error {
	d.logger.Info("dry-run submission accepted", "sessionId", payload["sessionId"])
	return nil
}

func defaultDraftPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "vendorform-draft.db"
	}
	return filepath.Join(dir, "vendorform", "draft.db")
}
