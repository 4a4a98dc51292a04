package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/remindd/internal/app"
	"github.com/sandeepkv93/remindd/internal/config"
	"github.com/sandeepkv93/remindd/internal/permission"
	"github.com/sandeepkv93/remindd/internal/scheduler"
	"github.com/sandeepkv93/remindd/internal/update"
)

// runTUI shows the settings screen. It logs to a file since the terminal
// belongs to the UI.
func runTUI(ctx context.Context, cfg config.Config) error {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	logFile, err := os.OpenFile(cfg.LogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logFile.Close()
	logger := app.NewLogger(logFile, cfg.Level())

	prompter := permission.NewChanPrompter()
	a, err := app.Build(cfg, app.WithLogger(logger), app.WithPrompter(prompter))
	if err != nil {
		return err
	}
	defer a.Close()
	a.Start()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fired := make(chan scheduler.Wake, 1)
	go a.Alarm.Run(ctx, func(ctx context.Context, w scheduler.Wake) {
		a.Deliver(ctx, w)
		select {
		case fired <- w:
		default:
		}
	})

	if err := a.Foreground(ctx); err != nil {
		logger.Warn("foreground reconcile failed", "err", err)
	}

	m := update.NewModel(update.Options{
		Context:    ctx,
		Controller: a.Controller,
		Runner:     a.Executor(ctx),
		Prompts:    prompter.Requests(),
		Fired:      fired,
	})
	defer m.Close()

	if _, err := tea.NewProgram(m, tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("remindd ui: %w", err)
	}
	return nil
}
