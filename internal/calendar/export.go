// Package calendar exports the daily reminder as an iCalendar feed so it can
// be mirrored in any calendar client.
package calendar

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"

	"github.com/sandeepkv93/remindd/internal/model"
)

const productID = "-//remindd//daily reminder//EN"

// floatingFormat has no zone suffix: a daily reminder follows local wall
// time, including across DST changes.
const floatingFormat = "20060102T150405"

var ErrReminderDisabled = errors.New("calendar: reminder is disabled")

// uidNamespace keeps event UIDs stable across exports of the same setting.
var uidNamespace = uuid.MustParse("5b0c3d0e-5f7c-4d8c-9f3a-6a1f2c7e9b41")

// Calendar builds the VCALENDAR for setting. DTSTART is the next trigger
// after now.
func Calendar(setting model.ReminderSetting, now time.Time) (*ical.Calendar, error) {
	if err := setting.Validate(); err != nil {
		return nil, err
	}
	if !setting.Enabled {
		return nil, ErrReminderDisabled
	}

	start := setting.NextTrigger(now)

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, uuid.NewSHA1(uidNamespace, []byte(setting.Clock())).String())
	event.Props.SetDateTime(ical.PropDateTimeStamp, now.UTC())
	event.Props.Set(rawProp(ical.PropDateTimeStart, start.Format(floatingFormat)))
	event.Props.Set(rawProp(ical.PropDuration, "PT5M"))
	event.Props.Set(rawProp(ical.PropRecurrenceRule, "FREQ=DAILY"))
	event.Props.SetText(ical.PropSummary, "Daily reminder")
	event.Props.SetText(ical.PropDescription, fmt.Sprintf("Reminder at %s every day", setting.Clock()))

	alarm := ical.NewComponent(ical.CompAlarm)
	alarm.Props.SetText(ical.PropAction, "DISPLAY")
	alarm.Props.Set(rawProp(ical.PropTrigger, "PT0S"))
	alarm.Props.SetText(ical.PropDescription, "Daily reminder")
	event.Children = append(event.Children, alarm)

	cal.Children = append(cal.Children, event.Component)
	return cal, nil
}

// ExportICS writes the calendar for setting to w.
func ExportICS(w io.Writer, setting model.ReminderSetting, now time.Time) error {
	cal, err := Calendar(setting, now)
	if err != nil {
		return err
	}
	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("calendar: encode: %w", err)
	}
	return nil
}

func rawProp(name, value string) *ical.Prop {
	p := ical.NewProp(name)
	p.Value = value
	return p
}
