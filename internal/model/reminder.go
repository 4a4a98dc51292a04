package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidClock = errors.New("model: invalid reminder clock")

const (
	DefaultReminderHour   = 9
	DefaultReminderMinute = 0
)

// ReminderSetting is the single daily reminder preference. Hour and Minute are
// kept when the reminder is disabled so the picker reopens on the last value.
type ReminderSetting struct {
	Enabled bool `json:"enabled"`
	Hour    int  `json:"hour"`
	Minute  int  `json:"minute"`
}

func DefaultReminderSetting() ReminderSetting {
	return ReminderSetting{
		Enabled: false,
		Hour:    DefaultReminderHour,
		Minute:  DefaultReminderMinute,
	}
}

func (r ReminderSetting) Validate() error {
	return ValidateClock(r.Hour, r.Minute)
}

func (r ReminderSetting) Clock() string {
	return FormatClock(r.Hour, r.Minute)
}

func (r ReminderSetting) String() string {
	state := "off"
	if r.Enabled {
		state = "on"
	}
	return fmt.Sprintf("%s (%s)", r.Clock(), state)
}

// NextTrigger is NextDailyTrigger for the setting's wall clock.
func (r ReminderSetting) NextTrigger(now time.Time) time.Time {
	return NextDailyTrigger(now, r.Hour, r.Minute)
}

func ValidateClock(hour, minute int) error {
	if hour < 0 || hour > 23 {
		return fmt.Errorf("%w: hour %d", ErrInvalidClock, hour)
	}
	if minute < 0 || minute > 59 {
		return fmt.Errorf("%w: minute %d", ErrInvalidClock, minute)
	}
	return nil
}

func FormatClock(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// ParseClock accepts "H:MM" or "HH:MM" in 24-hour form.
func ParseClock(raw string) (int, int, error) {
	text := strings.TrimSpace(raw)
	hh, mm, ok := strings.Cut(text, ":")
	if !ok || hh == "" || len(mm) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidClock, raw)
	}
	hour, err := strconv.Atoi(hh)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidClock, raw)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidClock, raw)
	}
	if err := ValidateClock(hour, minute); err != nil {
		return 0, 0, err
	}
	return hour, minute, nil
}
