package controller

import "github.com/sandeepkv93/remindd/internal/model"

type Dialog int

const (
	DialogNone Dialog = iota
	DialogTimePicker
	DialogNotificationRequired
	DialogExactAlarmRequired
)

func (d Dialog) String() string {
	switch d {
	case DialogNone:
		return "none"
	case DialogTimePicker:
		return "time_picker"
	case DialogNotificationRequired:
		return "notification_permission_required"
	case DialogExactAlarmRequired:
		return "exact_alarm_permission_required"
	default:
		return "unknown"
	}
}

func (d Dialog) isPermission() bool {
	return d == DialogNotificationRequired || d == DialogExactAlarmRequired
}

// Phase tracks which permission result the controller is waiting for.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAwaitNotification
	PhaseAwaitExactAlarm
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAwaitNotification:
		return "await_notification"
	case PhaseAwaitExactAlarm:
		return "await_exact_alarm"
	default:
		return "unknown"
	}
}

type State struct {
	Reminder    model.ReminderSetting
	Dialog      Dialog
	Phase       Phase
	Negotiation string
	// Err is the last persistence or scheduling failure, cleared on the next Save.
	Err error
}

func initialState() State {
	return State{
		Reminder: model.DefaultReminderSetting(),
		Dialog:   DialogNone,
		Phase:    PhaseIdle,
	}
}

func (s State) Negotiating() bool {
	return s.Phase != PhaseIdle
}
