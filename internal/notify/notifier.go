// Package notify delivers a fired reminder to the desktop.
package notify

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

type Notification struct {
	Title string
	Body  string
	At    time.Time
}

type Notifier interface {
	Send(Notification) error
	// Available reports whether notifications can reach the user at all.
	Available() bool
}

type NoopNotifier struct{}

func (NoopNotifier) Send(Notification) error { return nil }
func (NoopNotifier) Available() bool         { return false }

type ExecNotifier struct{}

func (ExecNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

func (ExecNotifier) Available() bool {
	var bin string
	switch runtime.GOOS {
	case "linux":
		bin = "notify-send"
	case "darwin":
		bin = "osascript"
	default:
		return false
	}
	_, err := exec.LookPath(bin)
	return err == nil
}

func New(enabled bool) Notifier {
	if !enabled {
		return NoopNotifier{}
	}
	return ExecNotifier{}
}

func Reminder(at time.Time) Notification {
	return Notification{
		Title: "Daily reminder",
		Body:  fmt.Sprintf("It's %s. Time for your daily check-in.", at.Format("15:04")),
		At:    at,
	}
}

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}
