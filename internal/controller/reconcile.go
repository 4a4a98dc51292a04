package controller

import (
	"context"

	"github.com/sandeepkv93/remindd/internal/permission"
)

// reconcile brings the live alarm in line with the stored setting.
//
//   - disabled: cancel (idempotent)
//   - enabled, a permission revoked: persist disabled, cancel
//   - enabled, both granted: arm unless the same wall clock is already armed
//
// In-memory edits are left alone; a Load refreshes them.
func (c *Controller) reconcile(ctx context.Context, perms permission.Snapshot) error {
	stored, err := c.store.GetReminder(ctx)
	if err != nil {
		return c.fail("load reminder", err)
	}

	if !stored.Enabled {
		if err := c.alarms.Cancel(ctx); err != nil {
			return c.fail("cancel alarm", err)
		}
		return nil
	}

	if !perms.All() {
		c.logger.Warn("reminder permission revoked; disabling",
			"notifications", perms.Notifications,
			"exact_alarms", perms.ExactAlarms,
		)
		stored.Enabled = false
		if err := c.store.SetReminder(ctx, stored); err != nil {
			return c.fail("persist disabled reminder", err)
		}
		if err := c.alarms.Cancel(ctx); err != nil {
			return c.fail("cancel alarm", err)
		}
		return nil
	}

	if reporter, ok := c.alarms.(PendingReporter); ok {
		if w, armed := reporter.Pending(); armed && w.Hour == stored.Hour && w.Minute == stored.Minute {
			return nil
		}
	}
	if err := c.alarms.Arm(ctx, stored.Hour, stored.Minute); err != nil {
		return c.fail("arm alarm", err)
	}
	c.logger.Info("reminder reconciled", "clock", stored.Clock())
	return nil
}
