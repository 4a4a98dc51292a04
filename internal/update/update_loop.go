package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/remindd/internal/controller"
	"github.com/sandeepkv93/remindd/internal/views"
)

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.dispatch(controller.Load{}),
		waitForStateCmd(m.states),
		m.waitForEffect(),
		waitForPromptCmd(m.prompts),
		waitForFiredCmd(m.fired),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(typed, m.Keys.Quit) {
			m.Quitting = true
			return m, tea.Quit
		}
		if m.Prompt != nil {
			return m.handlePromptKey(typed)
		}
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}
		if key.Matches(typed, m.Keys.Help) {
			m.HelpVisible = !m.HelpVisible
			return m, nil
		}
		if m.LicensesOpen {
			switch typed.String() {
			case "esc", "q", "l":
				m.LicensesOpen = false
			}
			return m, nil
		}
		switch m.State.Dialog {
		case controller.DialogTimePicker:
			return m.handlePickerKey(typed)
		case controller.DialogNotificationRequired, controller.DialogExactAlarmRequired:
			return m.handlePermissionDialogKey(typed)
		}
		return m.handleSettingsKey(typed)
	case StateMsg:
		m.State = typed.State
		if typed.State.Err != nil {
			m.LastError = typed.State.Err
			m.Status = StatusBar{Text: typed.State.Err.Error(), IsError: true}
		}
		return m, waitForStateCmd(m.states)
	case EffectMsg:
		return m.onEffect(typed.Effect)
	case EffectDoneMsg:
		m.Busy = false
		if typed.Err != nil {
			m.LastError = typed.Err
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	case HandledMsg:
		if typed.Err != nil {
			m.LastError = typed.Err
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	case PromptMsg:
		req := typed.Request
		m.Prompt = &req
		return m, nil
	case ReminderFiredMsg:
		w := typed.Wake
		m.LastFired = &w
		m.Status = StatusBar{Text: fmt.Sprintf("reminder fired at %s", w.At.Format("15:04"))}
		return m, waitForFiredCmd(m.fired)
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case spinner.TickMsg:
		if m.Busy {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(typed)
			return m, cmd
		}
	}
	return m, nil
}

func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Toggle):
		return m, m.dispatch(controller.ToggleReminder{Enabled: !m.State.Reminder.Enabled})
	case key.Matches(msg, m.Keys.Time):
		m.Picker = TimePickerState{Hour: m.State.Reminder.Hour, Minute: m.State.Reminder.Minute}
		return m, m.dispatch(controller.OpenTimePicker{})
	case key.Matches(msg, m.Keys.Save):
		m.Status = StatusBar{Text: "saving"}
		return m, m.dispatch(controller.Save{})
	case key.Matches(msg, m.Keys.Licenses):
		return m, m.dispatch(controller.OpenLicenses{})
	case key.Matches(msg, m.Keys.Palette):
		return m.openPalette(), nil
	case key.Matches(msg, m.Keys.Back):
		return m, m.dispatch(controller.Back{})
	}
	return m, nil
}

func (m Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Confirm):
		return m, m.dispatch(controller.ConfirmTime{Hour: m.Picker.Hour, Minute: m.Picker.Minute})
	case key.Matches(msg, m.Keys.Cancel):
		return m, m.dispatch(controller.DismissTimePicker{})
	case key.Matches(msg, m.Keys.Up):
		m.Picker = m.Picker.step(1)
	case key.Matches(msg, m.Keys.Down):
		m.Picker = m.Picker.step(-1)
	case key.Matches(msg, m.Keys.Switch):
		if m.Picker.Field == PickerHour {
			m.Picker.Field = PickerMinute
		} else {
			m.Picker.Field = PickerHour
		}
	}
	return m, nil
}

func (p TimePickerState) step(delta int) TimePickerState {
	if p.Field == PickerHour {
		p.Hour = (p.Hour + delta + 24) % 24
	} else {
		p.Minute = (p.Minute + delta + 60) % 60
	}
	return p
}

func (m Model) handlePermissionDialogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "y":
		return m, m.dispatch(controller.PermissionDialogConfirmed{})
	case "esc", "n", "q":
		return m, m.dispatch(controller.PermissionDialogDismissed{})
	}
	return m, nil
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Yes):
		m.Prompt.Answer(true)
	case key.Matches(msg, m.Keys.No):
		m.Prompt.Answer(false)
	default:
		return m, nil
	}
	m.Prompt = nil
	return m, waitForPromptCmd(m.prompts)
}

func (m Model) onEffect(eff controller.Effect) (tea.Model, tea.Cmd) {
	next := m.waitForEffect()
	switch eff {
	case controller.EffectNavigateBack:
		m.Quitting = true
		return m, tea.Quit
	case controller.EffectOpenOssLicenses:
		m.LicensesOpen = true
		return m, next
	case controller.EffectRequestNotificationPermission,
		controller.EffectRequestExactAlarmPermission,
		controller.EffectOpenNotificationSettings,
		controller.EffectOpenExactAlarmSettings:
		if m.runner == nil {
			m.Status = StatusBar{Text: fmt.Sprintf("no handler for %s", eff), IsError: true}
			return m, next
		}
		m.Busy = true
		return m, tea.Batch(next, m.spinner.Tick, m.execute(eff))
	}
	return m, next
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	status := m.Status.Text
	if m.Status.IsError {
		status = "error: " + status
	}
	if m.Busy {
		status = m.spinner.View() + " waiting for permission " + status
	}

	overlay := ""
	switch {
	case m.Prompt != nil:
		overlay = views.RenderPrompt(views.PromptData{Kind: string(m.Prompt.Kind)})
	case m.LicensesOpen:
		overlay = views.RenderLicenses(m.licensesMarkdown)
	case m.Palette.Active:
		overlay = views.RenderPalette(m.commandInput.View())
	default:
		overlay = m.renderDialog()
	}

	lastFired := ""
	if m.LastFired != nil {
		lastFired = m.LastFired.At.Format("Mon 15:04")
	}
	return views.RenderApp(views.AppData{
		Header: "remindd | daily reminder",
		Body: views.RenderSettings(views.SettingsData{
			Enabled:     m.State.Reminder.Enabled,
			Clock:       m.State.Reminder.Clock(),
			Negotiating: m.State.Negotiating(),
			Phase:       m.State.Phase.String(),
			LastFired:   lastFired,
		}),
		Overlay:    overlay + m.renderHelpIfVisible(),
		StatusLine: status,
		Footer:     "keys: space toggle | t time | s save | l licenses | / cmd | ? help | q back",
	})
}

func (m Model) renderDialog() string {
	switch m.State.Dialog {
	case controller.DialogTimePicker:
		return views.RenderTimePicker(views.TimePickerData{
			Hour:         m.Picker.Hour,
			Minute:       m.Picker.Minute,
			EditingHours: m.Picker.Field == PickerHour,
		})
	case controller.DialogNotificationRequired:
		return views.RenderPermissionDialog(views.PermissionDialogData{
			Title: "Notifications are off",
			Body:  "Reminders need notification permission. Open settings to allow it.",
		})
	case controller.DialogExactAlarmRequired:
		return views.RenderPermissionDialog(views.PermissionDialogData{
			Title: "Exact alarms are off",
			Body:  "Reminders need permission to schedule exact alarms. Open settings to allow it.",
		})
	}
	return ""
}
