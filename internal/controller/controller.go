// Package controller turns a "save reminder" intent into permission checks,
// escalation dialogs, a persisted setting and an armed or cancelled alarm.
package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/sandeepkv93/remindd/internal/model"
	"github.com/sandeepkv93/remindd/internal/scheduler"
)

var ErrClosed = errors.New("controller: closed")

type SettingsStore interface {
	GetReminder(ctx context.Context) (model.ReminderSetting, error)
	SetReminder(ctx context.Context, in model.ReminderSetting) error
}

type AlarmScheduler interface {
	Arm(ctx context.Context, hour, minute int) error
	Cancel(ctx context.Context) error
	CanScheduleExact(ctx context.Context) bool
}

// PendingReporter is implemented by schedulers that can report the armed
// wake. Reconciliation uses it to avoid re-arming an identical alarm.
type PendingReporter interface {
	Pending() (scheduler.Wake, bool)
}

type Controller struct {
	store  SettingsStore
	alarms AlarmScheduler
	logger *slog.Logger

	// handleMu serializes event handling; it is the single-writer lock.
	handleMu sync.Mutex

	stateMu sync.RWMutex
	state   State

	subsMu sync.Mutex
	subs   map[int]chan State
	nextID int

	events    chan Event
	effects   chan Effect
	dropped   uint64
	done      chan struct{}
	closeOnce sync.Once
}

type Option func(*Controller)

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithBuffers sizes the event queue and the effect channel.
func WithBuffers(events, effects int) Option {
	return func(c *Controller) {
		if events > 0 {
			c.events = make(chan Event, events)
		}
		if effects > 0 {
			c.effects = make(chan Effect, effects)
		}
	}
}

func New(store SettingsStore, alarms AlarmScheduler, opts ...Option) *Controller {
	c := &Controller{
		store:   store,
		alarms:  alarms,
		logger:  slog.Default(),
		state:   initialState(),
		subs:    make(map[int]chan State),
		events:  make(chan Event, 32),
		effects: make(chan Effect, 16),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) State() State {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.state
}

// Subscribe delivers the current state immediately and every later change.
// A slow subscriber only ever sees the latest state. The channel is closed
// by the returned unsubscribe func.
func (c *Controller) Subscribe() (<-chan State, func()) {
	ch := make(chan State, 1)
	c.subsMu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = ch
	ch <- c.State()
	c.subsMu.Unlock()

	return ch, func() {
		c.subsMu.Lock()
		defer c.subsMu.Unlock()
		if _, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(ch)
		}
	}
}

// Effects is a single-consumer stream; effects are not replayed.
func (c *Controller) Effects() <-chan Effect {
	return c.effects
}

func (c *Controller) DroppedEffects() uint64 {
	return atomic.LoadUint64(&c.dropped)
}

// Dispatch queues ev for Run. It blocks while the queue is full and fails once
// Run has returned.
func (c *Controller) Dispatch(ev Event) error {
	select {
	case <-c.done:
		return ErrClosed
	default:
	}
	select {
	case c.events <- ev:
		return nil
	case <-c.done:
		return ErrClosed
	}
}

// Run handles queued events one at a time until ctx is done.
func (c *Controller) Run(ctx context.Context) error {
	defer c.closeOnce.Do(func() { close(c.done) })
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-c.events:
			if err := c.Handle(ctx, ev); err != nil {
				c.logger.Warn("event failed", "event", fmt.Sprintf("%T", ev), "err", err)
			}
		}
	}
}

// Handle applies one event synchronously. Errors are also reflected in
// State.Err; an ignored event returns nil.
func (c *Controller) Handle(ctx context.Context, ev Event) error {
	c.handleMu.Lock()
	defer c.handleMu.Unlock()

	switch e := ev.(type) {
	case Load:
		return c.load(ctx)
	case ToggleReminder:
		c.abandon("reminder toggled")
		c.update(func(s *State) { s.Reminder.Enabled = e.Enabled })
	case OpenTimePicker:
		c.openTimePicker()
	case ConfirmTime:
		return c.confirmTime(e)
	case DismissTimePicker:
		if !c.requireDialog(ev, DialogTimePicker) {
			return nil
		}
		c.update(func(s *State) { s.Dialog = DialogNone })
	case Save:
		return c.save(ctx)
	case NotificationPermissionResult:
		c.notificationResult(e.Granted)
	case ExactAlarmPermissionResult:
		return c.exactAlarmResult(ctx, e.Granted)
	case PermissionDialogConfirmed:
		c.permissionDialogConfirmed()
	case PermissionDialogDismissed:
		c.permissionDialogDismissed()
	case Back:
		c.abandon("navigated back")
		c.emit(EffectNavigateBack)
	case OpenLicenses:
		c.emit(EffectOpenOssLicenses)
	case Foreground:
		return c.reconcile(ctx, e.Permissions)
	default:
		c.logger.Error("unhandled event", "event", fmt.Sprintf("%T", ev))
	}
	return nil
}

func (c *Controller) load(ctx context.Context) error {
	stored, err := c.store.GetReminder(ctx)
	if err != nil {
		c.logger.Error("load reminder", "err", err)
		c.update(func(s *State) { s.Err = err })
		return err
	}
	c.update(func(s *State) { s.Reminder = stored })
	return nil
}

func (c *Controller) openTimePicker() {
	c.abandon("time picker opened")
	c.update(func(s *State) { s.Dialog = DialogTimePicker })
}

func (c *Controller) confirmTime(e ConfirmTime) error {
	if !c.requireDialog(e, DialogTimePicker) {
		return nil
	}
	if err := model.ValidateClock(e.Hour, e.Minute); err != nil {
		c.update(func(s *State) { s.Err = err })
		return err
	}
	c.update(func(s *State) {
		s.Reminder.Hour = e.Hour
		s.Reminder.Minute = e.Minute
		s.Dialog = DialogNone
	})
	return nil
}

func (c *Controller) requireDialog(ev Event, want Dialog) bool {
	if got := c.State().Dialog; got != want {
		c.logger.Debug("event ignored", "event", fmt.Sprintf("%T", ev), "dialog", got.String(), "want", want.String())
		return false
	}
	return true
}

func (c *Controller) update(mut func(*State)) {
	c.stateMu.Lock()
	mut(&c.state)
	snapshot := c.state
	c.stateMu.Unlock()
	c.publish(snapshot)
}

func (c *Controller) publish(st State) {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	for _, ch := range c.subs {
		select {
		case <-ch:
		default:
		}
		ch <- st
	}
}

func (c *Controller) emit(eff Effect) {
	select {
	case c.effects <- eff:
		c.logger.Debug("effect emitted", "effect", string(eff))
	default:
		atomic.AddUint64(&c.dropped, 1)
		c.logger.Warn("effect dropped", "effect", string(eff))
	}
}
