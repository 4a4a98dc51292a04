// Package app wires the store, permission gateway, alarm scheduler,
// notifier and controller from a Config.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/sandeepkv93/remindd/internal/config"
	"github.com/sandeepkv93/remindd/internal/controller"
	"github.com/sandeepkv93/remindd/internal/model"
	"github.com/sandeepkv93/remindd/internal/notify"
	"github.com/sandeepkv93/remindd/internal/permission"
	"github.com/sandeepkv93/remindd/internal/scheduler"
	"github.com/sandeepkv93/remindd/internal/storage"
)

type App struct {
	Config     config.Config
	Logger     *slog.Logger
	Store      *storage.ReminderStore
	Gateway    *permission.FileGateway
	Engine     *scheduler.Engine
	Alarm      *scheduler.Alarm
	Notifier   notify.Notifier
	Controller *controller.Controller
}

type options struct {
	logger   *slog.Logger
	prompter permission.Prompter
	opener   permission.Opener
	notifier notify.Notifier
	clock    model.Clock
}

type Option func(*options)

func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithPrompter sets who answers undecided permission requests. Without one,
// an undecided notification permission reads as denied.
func WithPrompter(p permission.Prompter) Option {
	return func(o *options) { o.prompter = p }
}

func WithOpener(op permission.Opener) Option {
	return func(o *options) { o.opener = op }
}

func WithNotifier(n notify.Notifier) Option {
	return func(o *options) { o.notifier = n }
}

func WithClock(c model.Clock) Option {
	return func(o *options) { o.clock = c }
}

// NewLogger builds the text logger used by every command.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func Build(cfg config.Config, opts ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := options{logger: slog.Default(), clock: model.SystemClock{}}
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger

	repo, err := storage.Open(cfg.StoreBackend, cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	store := storage.NewReminderStore(repo)

	notifier := o.notifier
	if notifier == nil {
		notifier = notify.New(cfg.DesktopNotifications)
		if cfg.Sound {
			notifier = notify.ChimeNotifier{Notifier: notifier, Chime: notify.DefaultChime()}
		}
	}

	gwOpts := []permission.Option{
		permission.WithExactAlarmsRequired(cfg.ExactAlarmsRequired),
		permission.WithLogger(logger.With("component", "permission")),
	}
	if cfg.DesktopNotifications {
		gwOpts = append(gwOpts, permission.WithAvailability(notifier.Available))
	}
	if o.prompter != nil {
		gwOpts = append(gwOpts, permission.WithPrompter(o.prompter))
	}
	if o.opener != nil {
		gwOpts = append(gwOpts, permission.WithOpener(o.opener))
	}
	gateway := permission.NewFileGateway(cfg.GrantsPath(), gwOpts...)

	engine := scheduler.NewEngine(cfg.SchedulerBuffer)
	engine.SetInexactWindow(cfg.InexactWindow)
	alarm := scheduler.NewAlarm(engine,
		scheduler.WithClock(o.clock),
		scheduler.WithExactPermission(gateway),
		scheduler.WithLogger(logger.With("component", "scheduler")),
	)

	ctrl := controller.New(store, alarm,
		controller.WithLogger(logger.With("component", "controller")),
		controller.WithBuffers(0, cfg.EffectBuffer),
	)

	return &App{
		Config:     cfg,
		Logger:     logger,
		Store:      store,
		Gateway:    gateway,
		Engine:     engine,
		Alarm:      alarm,
		Notifier:   notifier,
		Controller: ctrl,
	}, nil
}

// Start launches the scheduler loop. Close stops it.
func (a *App) Start() {
	a.Engine.Start()
}

func (a *App) Close() error {
	a.Engine.Stop()
	return a.Store.Close()
}

// Foreground reconciles the stored setting against fresh permissions.
func (a *App) Foreground(ctx context.Context) error {
	return a.Controller.Handle(ctx, controller.Foreground{
		Permissions: permission.Query(ctx, a.Gateway),
	})
}

// Deliver posts the reminder for a fired wake. Delivery is skipped while the
// notification permission is missing.
func (a *App) Deliver(ctx context.Context, w scheduler.Wake) {
	if !a.Gateway.HasNotificationPermission(ctx) {
		a.Logger.Warn("reminder not delivered; notification permission missing", "wake_id", w.ID)
		return
	}
	if err := a.Notifier.Send(notify.Reminder(w.At)); err != nil {
		a.Logger.Error("reminder delivery failed", "wake_id", w.ID, "err", err)
		return
	}
	a.Logger.Info("reminder delivered", "wake_id", w.ID, "at", w.At.Format(time.RFC3339))
}

// Daemon reconciles on start and every ReconcileInterval, delivering fired
// reminders until ctx is done.
func (a *App) Daemon(ctx context.Context) error {
	a.Start()
	done := make(chan struct{})
	go func() {
		defer close(done)
		a.Alarm.Run(ctx, a.Deliver)
	}()

	if err := a.Foreground(ctx); err != nil {
		a.Logger.Error("initial reconcile failed", "err", err)
	}

	ticker := time.NewTicker(a.Config.ReconcileInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			<-done
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case <-ticker.C:
			if err := a.Foreground(ctx); err != nil {
				a.Logger.Error("reconcile failed", "err", err)
			}
		}
	}
}
