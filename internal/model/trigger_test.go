package model

import (
	"testing"
	"time"
)

func TestNextDailyTriggerRollsToTomorrowWhenPassed(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	next := NextDailyTrigger(now, 9, 0)
	want := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Fatalf("expected %s, got %s", want, next)
	}
}

func TestNextDailyTriggerStaysTodayWhenAhead(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	next := NextDailyTrigger(now, 12, 0)
	want := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Fatalf("expected %s, got %s", want, next)
	}
}

func TestNextDailyTriggerTieFiresToday(t *testing.T) {
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	next := NextDailyTrigger(now, 9, 0)
	if !next.Equal(now) {
		t.Fatalf("expected tie to stay at %s, got %s", now, next)
	}
}

func TestNextDailyTriggerSecondsPastTargetRolls(t *testing.T) {
	now := time.Date(2024, 1, 1, 9, 0, 1, 0, time.UTC)
	next := NextDailyTrigger(now, 9, 0)
	want := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Fatalf("expected %s, got %s", want, next)
	}
}

func TestNextDailyTriggerCrossesMonthAndYear(t *testing.T) {
	now := time.Date(2023, 12, 31, 23, 30, 0, 0, time.UTC)
	next := NextDailyTrigger(now, 6, 15)
	want := time.Date(2024, 1, 1, 6, 15, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Fatalf("expected %s, got %s", want, next)
	}
}

func TestNextDailyTriggerProperties(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	base := time.Date(2024, 3, 15, 0, 0, 0, 0, loc)
	for step := 0; step < 24*60; step += 37 {
		now := base.Add(time.Duration(step)*time.Minute + 17*time.Second)
		for _, target := range [][2]int{{0, 0}, {9, 0}, {12, 30}, {23, 59}} {
			next := NextDailyTrigger(now, target[0], target[1])
			if next.Before(now) {
				t.Fatalf("next %s before now %s", next, now)
			}
			if next.Hour() != target[0] || next.Minute() != target[1] || next.Second() != 0 {
				t.Fatalf("unexpected wall clock %s for target %v", next, target)
			}
			ny, nm, nd := now.Date()
			today := time.Date(ny, nm, nd, 0, 0, 0, 0, loc)
			day := time.Date(next.Year(), next.Month(), next.Day(), 0, 0, 0, 0, loc)
			if !day.Equal(today) && !day.Equal(today.AddDate(0, 0, 1)) {
				t.Fatalf("next %s is neither today nor tomorrow of %s", next, now)
			}
			if again := NextDailyTrigger(now, target[0], target[1]); !again.Equal(next) {
				t.Fatalf("expected idempotent result, got %s then %s", next, again)
			}
		}
	}
}

func TestNextDailyTriggerKeepsLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, loc)
	next := NextDailyTrigger(now, 8, 30)
	if next.Location() != loc {
		t.Fatalf("expected location preserved, got %v", next.Location())
	}
	if next.UnixMilli() != now.Add(30*time.Minute).UnixMilli() {
		t.Fatalf("unexpected epoch millis: %d", next.UnixMilli())
	}
}

func TestPreviewTriggers(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	got := PreviewTriggers(now, 9, 0, 3)
	if len(got) != 3 {
		t.Fatalf("expected 3 triggers, got %d", len(got))
	}
	for i, want := range []string{"2024-01-02 09:00", "2024-01-03 09:00", "2024-01-04 09:00"} {
		if got[i].Format("2006-01-02 15:04") != want {
			t.Fatalf("preview[%d]: expected %s, got %s", i, want, got[i])
		}
	}
	if len(PreviewTriggers(now, 9, 0, 0)) != 0 {
		t.Fatal("expected empty preview for zero count")
	}
}

func TestFixedClock(t *testing.T) {
	at := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	if !(FixedClock{At: at}).Now().Equal(at) {
		t.Fatal("fixed clock drifted")
	}
}
