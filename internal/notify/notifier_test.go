package notify

import (
	"encoding/binary"
	"strings"
	"testing"
	"time"
)

func TestNewDisabledIsNoop(t *testing.T) {
	n := New(false)
	if _, ok := n.(NoopNotifier); !ok {
		t.Fatalf("expected NoopNotifier, got %T", n)
	}
	if n.Available() {
		t.Fatal("noop notifier must not report availability")
	}
	if err := n.Send(Notification{Title: "x"}); err != nil {
		t.Fatalf("noop send: %v", err)
	}
}

func TestReminderNotificationMentionsTime(t *testing.T) {
	n := Reminder(time.Date(2024, 1, 2, 9, 5, 0, 0, time.UTC))
	if n.Title == "" || !strings.Contains(n.Body, "09:05") {
		t.Fatalf("unexpected notification: %+v", n)
	}
}

func TestEscapeAppleScript(t *testing.T) {
	if got := escapeAppleScript(`say "hi"`); got != `say \"hi\"` {
		t.Fatalf("unexpected escape: %s", got)
	}
}

func TestChimePCMLengthAndFade(t *testing.T) {
	c := Chime{Tones: []float64{440}, Duration: 10 * time.Millisecond}
	pcm := c.pcm()
	wantSamples := int(float64(chimeSampleRate) * 0.01)
	if len(pcm) != wantSamples*2 {
		t.Fatalf("expected %d bytes, got %d", wantSamples*2, len(pcm))
	}
	last := int16(binary.LittleEndian.Uint16(pcm[len(pcm)-2:]))
	if last > 200 || last < -200 {
		t.Fatalf("expected faded tail sample, got %d", last)
	}
}
