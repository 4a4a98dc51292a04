package views

import (
	"fmt"
	"strings"
)

type SettingsData struct {
	Enabled     bool
	Clock       string
	Negotiating bool
	Phase       string
	LastFired   string
}

type TimePickerData struct {
	Hour         int
	Minute       int
	EditingHours bool
}

type PermissionDialogData struct {
	Title string
	Body  string
}

type PromptData struct {
	Kind string
}

type HelpPanelData struct {
	Context  string
	Bindings []string
	HelpView string
}

func RenderSettings(data SettingsData) string {
	toggle := offStyle.Render("[ ] off")
	if data.Enabled {
		toggle = onStyle.Render("[x] on")
	}
	lines := []string{
		"Daily reminder  " + toggle,
		"Time            " + data.Clock,
	}
	if data.Negotiating {
		lines = append(lines, "Permissions     checking ("+data.Phase+")")
	}
	if data.LastFired != "" {
		lines = append(lines, "Last reminder   "+data.LastFired)
	}
	return strings.Join(lines, "\n")
}

func RenderTimePicker(data TimePickerData) string {
	hour := fmt.Sprintf("%02d", data.Hour)
	minute := fmt.Sprintf("%02d", data.Minute)
	if data.EditingHours {
		hour = focusStyle.Render(hour)
	} else {
		minute = focusStyle.Render(minute)
	}
	body := strings.Join([]string{
		"Reminder time",
		"",
		"    " + hour + " : " + minute,
		"",
		"↑/↓ adjust  tab switch  enter ok  esc cancel",
	}, "\n")
	return dialogStyle.Render(body)
}

func RenderPermissionDialog(data PermissionDialogData) string {
	body := strings.Join([]string{
		headerStyle.Render(data.Title),
		"",
		data.Body,
		"",
		"enter open settings  esc not now",
	}, "\n")
	return dialogStyle.Width(48).Render(body)
}

func RenderPrompt(data PromptData) string {
	what := "send notifications"
	if data.Kind == "exact_alarms" {
		what = "schedule exact alarms"
	}
	body := strings.Join([]string{
		fmt.Sprintf("Allow remindd to %s?", what),
		"",
		"y allow  n deny",
	}, "\n")
	return dialogStyle.Render(body)
}

func RenderPalette(inputView string) string {
	return panelStyle.Width(48).Render(inputView)
}

func RenderHelpPanel(data HelpPanelData) string {
	lines := []string{"Help: " + data.Context}
	lines = append(lines, data.Bindings...)
	if data.HelpView != "" {
		lines = append(lines, "", data.HelpView)
	}
	return panelStyle.Width(48).Render(strings.Join(lines, "\n"))
}
