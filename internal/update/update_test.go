package update

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/remindd/internal/controller"
	"github.com/sandeepkv93/remindd/internal/model"
	"github.com/sandeepkv93/remindd/internal/permission"
	"github.com/sandeepkv93/remindd/internal/scheduler"
)

type memStore struct {
	stored model.ReminderSetting
}

func (s *memStore) GetReminder(context.Context) (model.ReminderSetting, error) {
	return s.stored, nil
}

func (s *memStore) SetReminder(_ context.Context, in model.ReminderSetting) error {
	s.stored = in
	return nil
}

type memAlarms struct {
	armed bool
}

func (a *memAlarms) Arm(context.Context, int, int) error {
	a.armed = true
	return nil
}

func (a *memAlarms) Cancel(context.Context) error {
	a.armed = false
	return nil
}

func (a *memAlarms) CanScheduleExact(context.Context) bool { return true }

type recordingRunner struct {
	effects []controller.Effect
}

func (r *recordingRunner) Execute(_ context.Context, eff controller.Effect) error {
	r.effects = append(r.effects, eff)
	return nil
}

func newTestModel(t *testing.T) (Model, *controller.Controller) {
	t.Helper()
	ctrl := controller.New(&memStore{stored: model.DefaultReminderSetting()}, &memAlarms{})
	m := NewModel(Options{Context: t.Context(), Controller: ctrl, Runner: &recordingRunner{}})
	t.Cleanup(m.Close)
	return m, ctrl
}

func press(t *testing.T, m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// settle runs a dispatch command and feeds the resulting state back.
func settle(t *testing.T, m Model, ctrl *controller.Controller, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg := cmd()
	if handled, ok := msg.(HandledMsg); ok && handled.Err != nil {
		t.Fatalf("handle %T: %v", handled.Event, handled.Err)
	}
	updated, _ := m.Update(msg)
	updated, _ = updated.(Model).Update(StateMsg{State: ctrl.State()})
	return updated.(Model)
}

func TestNewModelDefaults(t *testing.T) {
	m, _ := newTestModel(t)
	if m.State.Reminder != model.DefaultReminderSetting() {
		t.Fatalf("expected default reminder, got %+v", m.State.Reminder)
	}
	if m.Keys.Save.Help().Key != "s" {
		t.Fatalf("expected save key s, got %q", m.Keys.Save.Help().Key)
	}
}

func TestSpaceTogglesReminder(t *testing.T) {
	m, ctrl := newTestModel(t)
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = settle(t, m, ctrl, cmd)
	if !m.State.Reminder.Enabled {
		t.Fatal("expected reminder enabled after toggle")
	}
	if !strings.Contains(m.View(), "on") {
		t.Fatalf("expected view to show on: %q", m.View())
	}
}

func TestTimePickerAdjustAndConfirm(t *testing.T) {
	m, ctrl := newTestModel(t)
	m, cmd := press(t, m, runes("t"))
	m = settle(t, m, ctrl, cmd)
	if m.State.Dialog != controller.DialogTimePicker {
		t.Fatalf("expected time picker, got %s", m.State.Dialog)
	}
	if m.Picker.Hour != 9 || m.Picker.Minute != 0 {
		t.Fatalf("picker should start at stored time, got %+v", m.Picker)
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.Picker.Hour != 10 || m.Picker.Minute != 59 {
		t.Fatalf("unexpected picker after adjust: %+v", m.Picker)
	}

	m, cmd = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = settle(t, m, ctrl, cmd)
	if m.State.Dialog != controller.DialogNone || m.State.Reminder.Clock() != "10:59" {
		t.Fatalf("unexpected state after confirm: %+v", m.State)
	}
}

func TestTimePickerEscDismisses(t *testing.T) {
	m, ctrl := newTestModel(t)
	m, cmd := press(t, m, runes("t"))
	m = settle(t, m, ctrl, cmd)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, cmd = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m = settle(t, m, ctrl, cmd)
	if m.State.Dialog != controller.DialogNone || m.State.Reminder.Hour != 9 {
		t.Fatalf("dismiss must keep the old time: %+v", m.State)
	}
}

func TestPickerWrapsAround(t *testing.T) {
	p := TimePickerState{Hour: 23, Minute: 0}
	p = p.step(1)
	if p.Hour != 0 {
		t.Fatalf("expected hour wrap to 0, got %d", p.Hour)
	}
	p.Field = PickerMinute
	p = p.step(-1)
	if p.Minute != 59 {
		t.Fatalf("expected minute wrap to 59, got %d", p.Minute)
	}
}

func TestNavigateBackQuits(t *testing.T) {
	m, _ := newTestModel(t)
	updated, cmd := m.Update(EffectMsg{Effect: controller.EffectNavigateBack})
	next := updated.(Model)
	if !next.Quitting || cmd == nil {
		t.Fatal("expected quit on navigate back")
	}
	if next.View() != "" {
		t.Fatal("expected empty view after quit")
	}
}

func TestLicensesOpenAndClose(t *testing.T) {
	m, _ := newTestModel(t)
	updated, _ := m.Update(EffectMsg{Effect: controller.EffectOpenOssLicenses})
	next := updated.(Model)
	if !next.LicensesOpen {
		t.Fatal("expected licenses shown")
	}
	next, _ = press(t, next, tea.KeyMsg{Type: tea.KeyEsc})
	if next.LicensesOpen {
		t.Fatal("expected licenses closed")
	}
}

func TestPermissionEffectRunsBusy(t *testing.T) {
	m, _ := newTestModel(t)
	updated, cmd := m.Update(EffectMsg{Effect: controller.EffectRequestNotificationPermission})
	next := updated.(Model)
	if !next.Busy || cmd == nil {
		t.Fatal("expected busy state while the request runs")
	}
	updated, _ = next.Update(EffectDoneMsg{Effect: controller.EffectRequestNotificationPermission})
	if updated.(Model).Busy {
		t.Fatal("expected busy cleared after the request")
	}
}

func TestExecuteRunsEffectOnRunner(t *testing.T) {
	runner := &recordingRunner{}
	ctrl := controller.New(&memStore{}, &memAlarms{})
	m := NewModel(Options{Context: t.Context(), Controller: ctrl, Runner: runner})
	defer m.Close()

	msg := m.execute(controller.EffectOpenExactAlarmSettings)()
	if done, ok := msg.(EffectDoneMsg); !ok || done.Err != nil {
		t.Fatalf("unexpected message: %#v", msg)
	}
	if len(runner.effects) != 1 || runner.effects[0] != controller.EffectOpenExactAlarmSettings {
		t.Fatalf("unexpected runner effects: %v", runner.effects)
	}
}

func TestPromptAnswerReachesPrompter(t *testing.T) {
	m, _ := newTestModel(t)
	prompter := permission.NewChanPrompter()
	answer := make(chan bool, 1)
	go func() {
		granted, _ := prompter.Prompt(t.Context(), permission.KindNotifications)
		answer <- granted
	}()
	req := <-prompter.Requests()

	updated, _ := m.Update(PromptMsg{Request: req})
	next := updated.(Model)
	if next.Prompt == nil || !strings.Contains(next.View(), "notifications") {
		t.Fatal("expected prompt overlay")
	}
	next, _ = press(t, next, runes("y"))
	if next.Prompt != nil {
		t.Fatal("expected prompt cleared")
	}
	if !<-answer {
		t.Fatal("expected granted answer")
	}
}

func TestPermissionDialogConfirmOpensSettings(t *testing.T) {
	m, ctrl := newTestModel(t)
	for _, ev := range []controller.Event{
		controller.ToggleReminder{Enabled: true},
		controller.Save{},
		controller.NotificationPermissionResult{Granted: false},
	} {
		_ = ctrl.Handle(t.Context(), ev)
	}
	<-ctrl.Effects()
	updated, _ := m.Update(StateMsg{State: ctrl.State()})
	m = updated.(Model)
	if !strings.Contains(m.View(), "Notifications are off") {
		t.Fatalf("expected permission dialog in view: %q", m.View())
	}

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = settle(t, m, ctrl, cmd)
	if m.State.Dialog != controller.DialogNone {
		t.Fatal("expected dialog closed")
	}
	if eff := <-ctrl.Effects(); eff != controller.EffectOpenNotificationSettings {
		t.Fatalf("unexpected effect: %s", eff)
	}
}

func TestPaletteSetsTime(t *testing.T) {
	m, ctrl := newTestModel(t)
	m, _ = press(t, m, runes("/"))
	if !m.Palette.Active {
		t.Fatal("expected palette active")
	}
	m, _ = press(t, m, runes("at 06:40"))
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Palette.Active {
		t.Fatal("expected palette closed after enter")
	}
	msg := cmd()
	status, ok := msg.(SetStatusMsg)
	if !ok || status.IsError || status.Text != "reminder time set to 06:40" {
		t.Fatalf("unexpected palette result: %#v", msg)
	}
	if got := ctrl.State().Reminder.Clock(); got != "06:40" {
		t.Fatalf("expected controller time 06:40, got %s", got)
	}
}

func TestPaletteRejectsUnknownCommand(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = press(t, m, runes("/"))
	m, _ = press(t, m, runes("snooze"))
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil || !m.Status.IsError {
		t.Fatalf("expected error status, got %+v", m.Status)
	}
}

func TestReminderFiredUpdatesStatus(t *testing.T) {
	m, _ := newTestModel(t)
	updated, _ := m.Update(ReminderFiredMsg{Wake: scheduler.Wake{ID: "w1", Hour: 9}})
	next := updated.(Model)
	if next.LastFired == nil || !strings.Contains(next.Status.Text, "reminder fired") {
		t.Fatalf("unexpected status: %+v", next.Status)
	}
}

func TestCtrlCQuits(t *testing.T) {
	m, _ := newTestModel(t)
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if !m.Quitting || cmd == nil {
		t.Fatal("expected quit")
	}
}
