// Package permission queries and requests the two runtime permissions a
// reminder needs: posting notifications and scheduling exact alarms.
package permission

import (
	"context"
	"errors"
)

type Status string

const (
	StatusGranted       Status = "granted"
	StatusDenied        Status = "denied"
	StatusNotDetermined Status = "not_determined"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusGranted, StatusDenied, StatusNotDetermined:
		return true
	default:
		return false
	}
}

type Kind string

const (
	KindNotifications Kind = "notifications"
	KindExactAlarms   Kind = "exact_alarms"
)

var (
	ErrCanceled      = errors.New("permission: request canceled")
	ErrInvalidStatus = errors.New("permission: invalid status")
)

// Gateway is never cached by callers: every Has* call reflects the user's
// current choice, which may change outside the app at any time.
type Gateway interface {
	HasNotificationPermission(ctx context.Context) bool
	// RequestNotificationPermission blocks until the user answers or ctx is done.
	RequestNotificationPermission(ctx context.Context) (bool, error)
	HasExactAlarmPermission(ctx context.Context) bool
	// OpenExactAlarmPermissionSettings is the only way to grant exact alarms;
	// there is no direct request.
	OpenExactAlarmPermissionSettings(ctx context.Context) error
	OpenNotificationSettings(ctx context.Context) error
}

// Snapshot is a point-in-time reading of both permissions.
type Snapshot struct {
	Notifications bool
	ExactAlarms   bool
}

func (s Snapshot) All() bool {
	return s.Notifications && s.ExactAlarms
}

func Query(ctx context.Context, g Gateway) Snapshot {
	return Snapshot{
		Notifications: g.HasNotificationPermission(ctx),
		ExactAlarms:   g.HasExactAlarmPermission(ctx),
	}
}
