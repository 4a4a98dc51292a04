package model

import "time"

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time { return c.At }

// NextDailyTrigger returns the next instant at hour:minute:00 on or after now,
// in now's location. A candidate equal to now is not advanced. When today's
// slot has already passed the candidate moves one calendar day, keeping the
// wall clock, so a DST shift is absorbed on the next computation.
func NextDailyTrigger(now time.Time, hour, minute int) time.Time {
	y, m, d := now.Date()
	candidate := time.Date(y, m, d, hour, minute, 0, 0, now.Location())
	if candidate.Before(now) {
		candidate = time.Date(y, m, d+1, hour, minute, 0, 0, now.Location())
	}
	return candidate
}

// PreviewTriggers lists the next count daily instants starting from now.
func PreviewTriggers(now time.Time, hour, minute, count int) []time.Time {
	if count <= 0 {
		return []time.Time{}
	}
	out := make([]time.Time, 0, count)
	cursor := now
	for i := 0; i < count; i++ {
		next := NextDailyTrigger(cursor, hour, minute)
		out = append(out, next)
		cursor = next.Add(time.Nanosecond)
	}
	return out
}
