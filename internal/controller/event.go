package controller

import "github.com/sandeepkv93/remindd/internal/permission"

// Event is the closed set of inputs the controller accepts. The unexported
// marker keeps other packages from adding variants.
type Event interface {
	event()
}

type Load struct{}

type ToggleReminder struct {
	Enabled bool
}

type OpenTimePicker struct{}

type ConfirmTime struct {
	Hour   int
	Minute int
}

type DismissTimePicker struct{}

type Save struct{}

type NotificationPermissionResult struct {
	Granted bool
}

type ExactAlarmPermissionResult struct {
	Granted bool
}

type PermissionDialogConfirmed struct{}

type PermissionDialogDismissed struct{}

type Back struct{}

type OpenLicenses struct{}

// Foreground is sent when the app comes to the front, with a fresh reading
// of both permissions. It reconciles the stored setting with the live alarm.
type Foreground struct {
	Permissions permission.Snapshot
}

func (Load) event()                         {}
func (ToggleReminder) event()               {}
func (OpenTimePicker) event()               {}
func (ConfirmTime) event()                  {}
func (DismissTimePicker) event()            {}
func (Save) event()                         {}
func (NotificationPermissionResult) event() {}
func (ExactAlarmPermissionResult) event()   {}
func (PermissionDialogConfirmed) event()    {}
func (PermissionDialogDismissed) event()    {}
func (Back) event()                         {}
func (OpenLicenses) event()                 {}
func (Foreground) event()                   {}

// Effect is a one-shot instruction for the presentation layer.
type Effect string

const (
	EffectNavigateBack                  Effect = "navigate_back"
	EffectOpenOssLicenses               Effect = "open_oss_licenses"
	EffectOpenNotificationSettings      Effect = "open_notification_settings"
	EffectOpenExactAlarmSettings        Effect = "open_exact_alarm_settings"
	EffectRequestNotificationPermission Effect = "request_notification_permission"
	EffectRequestExactAlarmPermission   Effect = "request_exact_alarm_permission"
)
