package views

import (
	"regexp"
	"strings"
	"testing"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func plain(s string) string { return ansi.ReplaceAllString(s, "") }

func TestRenderSettingsShowsToggleAndClock(t *testing.T) {
	out := plain(RenderSettings(SettingsData{Enabled: true, Clock: "07:30"}))
	if !strings.Contains(out, "on") || !strings.Contains(out, "07:30") {
		t.Fatalf("unexpected settings view: %q", out)
	}
	out = plain(RenderSettings(SettingsData{Enabled: false, Clock: "09:00", Negotiating: true, Phase: "await_notification"}))
	if !strings.Contains(out, "off") || !strings.Contains(out, "await_notification") {
		t.Fatalf("unexpected settings view: %q", out)
	}
}

func TestRenderTimePickerPadsFields(t *testing.T) {
	out := plain(RenderTimePicker(TimePickerData{Hour: 7, Minute: 5, EditingHours: true}))
	if !strings.Contains(out, "07") || !strings.Contains(out, "05") {
		t.Fatalf("expected zero-padded fields: %q", out)
	}
}

func TestRenderPromptNamesPermission(t *testing.T) {
	if out := plain(RenderPrompt(PromptData{Kind: "exact_alarms"})); !strings.Contains(out, "exact alarms") {
		t.Fatalf("unexpected prompt: %q", out)
	}
	if out := plain(RenderPrompt(PromptData{Kind: "notifications"})); !strings.Contains(out, "notifications") {
		t.Fatalf("unexpected prompt: %q", out)
	}
}

func TestRenderAppIncludesSections(t *testing.T) {
	out := plain(RenderApp(AppData{Header: "remindd", Body: "body", Overlay: "overlay", StatusLine: "saving", Footer: "keys"}))
	for _, want := range []string{"remindd", "body", "overlay", "saving", "keys"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}

func TestRenderMarkdownEmpty(t *testing.T) {
	if RenderMarkdown("  ") != "" {
		t.Fatal("expected empty output for blank markdown")
	}
}

func TestRenderLicensesListsModules(t *testing.T) {
	if out := plain(RenderLicenses("")); !strings.Contains(out, "esc to close") {
		t.Fatal("expected bundled license list")
	}
}
