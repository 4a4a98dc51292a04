package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/sandeepkv93/remindd/internal/model"
)

// ExactPermission reports whether exact wakes are currently allowed. It is
// queried on every arm.
type ExactPermission interface {
	HasExactAlarmPermission(ctx context.Context) bool
}

type alwaysExact struct{}

func (alwaysExact) HasExactAlarmPermission(context.Context) bool { return true }

// Alarm arms the engine's single slot for "daily at HH:MM".
type Alarm struct {
	engine *Engine
	clock  model.Clock
	perm   ExactPermission
	logger *slog.Logger
}

type AlarmOption func(*Alarm)

func WithClock(c model.Clock) AlarmOption {
	return func(a *Alarm) {
		if c != nil {
			a.clock = c
		}
	}
}

func WithExactPermission(p ExactPermission) AlarmOption {
	return func(a *Alarm) {
		if p != nil {
			a.perm = p
		}
	}
}

func WithLogger(l *slog.Logger) AlarmOption {
	return func(a *Alarm) {
		if l != nil {
			a.logger = l
		}
	}
}

func NewAlarm(engine *Engine, opts ...AlarmOption) *Alarm {
	a := &Alarm{
		engine: engine,
		clock:  model.SystemClock{},
		perm:   alwaysExact{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Alarm) Arm(ctx context.Context, hour, minute int) error {
	if err := model.ValidateClock(hour, minute); err != nil {
		return err
	}
	now := a.clock.Now()
	w := Wake{
		ID:     uuid.NewString(),
		At:     model.NextDailyTrigger(now, hour, minute),
		Exact:  a.CanScheduleExact(ctx),
		Hour:   hour,
		Minute: minute,
	}
	if err := a.engine.Arm(w); err != nil {
		return fmt.Errorf("arm reminder at %s: %w", model.FormatClock(hour, minute), err)
	}
	a.logger.Info("reminder armed",
		"wake_id", w.ID,
		"at", w.At.Format("2006-01-02T15:04:05Z07:00"),
		"epoch_ms", w.At.UnixMilli(),
		"exact", w.Exact,
	)
	return nil
}

func (a *Alarm) Cancel(ctx context.Context) error {
	if pending, ok := a.engine.Pending(); ok {
		a.logger.Info("reminder cancelled", "wake_id", pending.ID)
	}
	a.engine.Cancel()
	return nil
}

func (a *Alarm) CanScheduleExact(ctx context.Context) bool {
	return a.perm.HasExactAlarmPermission(ctx)
}

func (a *Alarm) Pending() (Wake, bool) {
	return a.engine.Pending()
}

// Run delivers fired wakes and re-arms the slot for the following day, unless
// the alarm was armed or cancelled after the wake fired. The next instant is
// recomputed from the clock each time. Run returns when ctx is
// done or the engine is stopped.
func (a *Alarm) Run(ctx context.Context, deliver func(context.Context, Wake)) {
	for {
		select {
		case <-ctx.Done():
			return
		case w, ok := <-a.engine.C():
			if !ok {
				return
			}
			a.logger.Info("reminder fired", "wake_id", w.ID, "exact", w.Exact)
			if deliver != nil {
				deliver(ctx, w)
			}
			if a.engine.ChangedSince(w) {
				a.logger.Debug("re-arm skipped", "wake_id", w.ID)
				continue
			}
			if err := a.Arm(ctx, w.Hour, w.Minute); err != nil {
				a.logger.Error("reminder re-arm failed", "err", err)
			}
		}
	}
}
