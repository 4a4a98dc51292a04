package controller

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// save starts the negotiation for an enabled reminder. A disabled reminder
// needs no permission: it is persisted and the alarm cancelled together.
func (c *Controller) save(ctx context.Context) error {
	st := c.State()
	if st.Dialog != DialogNone || st.Negotiating() {
		c.logger.Debug("save ignored", "dialog", st.Dialog.String(), "phase", st.Phase.String())
		return nil
	}
	c.update(func(s *State) { s.Err = nil })

	if !st.Reminder.Enabled {
		if err := c.store.SetReminder(ctx, st.Reminder); err != nil {
			return c.fail("persist disabled reminder", err)
		}
		if err := c.alarms.Cancel(ctx); err != nil {
			c.fail("cancel alarm", err)
		}
		c.logger.Info("reminder disabled", "clock", st.Reminder.Clock())
		c.emit(EffectNavigateBack)
		return nil
	}

	id := uuid.NewString()
	c.update(func(s *State) {
		s.Phase = PhaseAwaitNotification
		s.Negotiation = id
	})
	c.logger.Info("negotiation started", "negotiation", id, "clock", st.Reminder.Clock())
	c.emit(EffectRequestNotificationPermission)
	return nil
}

func (c *Controller) notificationResult(granted bool) {
	st := c.State()
	if st.Phase != PhaseAwaitNotification {
		c.logger.Debug("stale notification result ignored", "phase", st.Phase.String())
		return
	}
	c.logger.Info("notification permission result", "negotiation", st.Negotiation, "granted", granted)
	if granted {
		c.update(func(s *State) { s.Phase = PhaseAwaitExactAlarm })
		c.emit(EffectRequestExactAlarmPermission)
		return
	}
	c.update(func(s *State) {
		s.Phase = PhaseIdle
		s.Dialog = DialogNotificationRequired
	})
}

// exactAlarmResult completes the negotiation. Only here, with both
// permissions confirmed, is the enabled setting persisted and armed.
func (c *Controller) exactAlarmResult(ctx context.Context, granted bool) error {
	st := c.State()
	if st.Phase != PhaseAwaitExactAlarm {
		c.logger.Debug("stale exact alarm result ignored", "phase", st.Phase.String())
		return nil
	}
	c.logger.Info("exact alarm permission result", "negotiation", st.Negotiation, "granted", granted)
	c.update(func(s *State) {
		s.Phase = PhaseIdle
		s.Negotiation = ""
	})
	if !granted {
		c.update(func(s *State) { s.Dialog = DialogExactAlarmRequired })
		return nil
	}

	if err := c.store.SetReminder(ctx, st.Reminder); err != nil {
		return c.fail("persist reminder", err)
	}
	if err := c.alarms.Arm(ctx, st.Reminder.Hour, st.Reminder.Minute); err != nil {
		// The setting stays enabled; the next Foreground re-arms.
		c.fail("arm alarm", err)
	}
	c.emit(EffectNavigateBack)
	return nil
}

func (c *Controller) permissionDialogConfirmed() {
	st := c.State()
	if !st.Dialog.isPermission() {
		c.logger.Debug("dialog confirm ignored", "dialog", st.Dialog.String())
		return
	}
	eff := EffectOpenNotificationSettings
	if st.Dialog == DialogExactAlarmRequired {
		eff = EffectOpenExactAlarmSettings
	}
	c.update(func(s *State) {
		s.Dialog = DialogNone
		s.Negotiation = ""
	})
	c.emit(eff)
}

func (c *Controller) permissionDialogDismissed() {
	st := c.State()
	if !st.Dialog.isPermission() {
		c.logger.Debug("dialog dismiss ignored", "dialog", st.Dialog.String())
		return
	}
	c.logger.Info("negotiation abandoned", "negotiation", st.Negotiation, "reason", "dialog dismissed")
	c.update(func(s *State) {
		s.Dialog = DialogNone
		s.Negotiation = ""
	})
}

// abandon drops an in-flight negotiation. Nothing has been persisted or
// armed on that path, so there is nothing to undo.
func (c *Controller) abandon(reason string) {
	st := c.State()
	if !st.Negotiating() && !st.Dialog.isPermission() {
		return
	}
	c.logger.Info("negotiation abandoned", "negotiation", st.Negotiation, "reason", reason)
	c.update(func(s *State) {
		s.Phase = PhaseIdle
		s.Negotiation = ""
		if s.Dialog.isPermission() {
			s.Dialog = DialogNone
		}
	})
}

func (c *Controller) fail(op string, err error) error {
	wrapped := fmt.Errorf("%s: %w", op, err)
	c.logger.Error("reminder operation failed", "op", op, "err", err)
	c.update(func(s *State) { s.Err = wrapped })
	return wrapped
}
