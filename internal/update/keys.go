package update

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/remindd/internal/controller"
	"github.com/sandeepkv93/remindd/internal/views"
)

type KeyMap struct {
	Toggle   key.Binding
	Time     key.Binding
	Save     key.Binding
	Back     key.Binding
	Licenses key.Binding
	Palette  key.Binding
	Help     key.Binding
	Quit     key.Binding

	Up      key.Binding
	Down    key.Binding
	Switch  key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Yes     key.Binding
	No      key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle:   key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "toggle reminder")),
		Time:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "pick time")),
		Save:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
		Back:     key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q/esc", "back")),
		Licenses: key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "licenses")),
		Palette:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "command palette")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),

		Up:      key.NewBinding(key.WithKeys("up", "k", "+"), key.WithHelp("↑/k", "increase")),
		Down:    key.NewBinding(key.WithKeys("down", "j", "-"), key.WithHelp("↓/j", "decrease")),
		Switch:  key.NewBinding(key.WithKeys("left", "right", "h", "l", "tab"), key.WithHelp("tab", "hour/minute")),
		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Yes:     key.NewBinding(key.WithKeys("y", "enter"), key.WithHelp("y", "allow")),
		No:      key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "deny")),
	}
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

// contextBindings are the keys that do something right now.
func (m Model) contextBindings() []key.Binding {
	switch {
	case m.Prompt != nil:
		return []key.Binding{m.Keys.Yes, m.Keys.No}
	case m.LicensesOpen:
		return []key.Binding{key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc/q/l", "close"))}
	case m.Palette.Active:
		return []key.Binding{m.Keys.Confirm, m.Keys.Cancel}
	}
	switch m.State.Dialog {
	case controller.DialogTimePicker:
		return []key.Binding{m.Keys.Up, m.Keys.Down, m.Keys.Switch, m.Keys.Confirm, m.Keys.Cancel}
	case controller.DialogNotificationRequired, controller.DialogExactAlarmRequired:
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open settings")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "not now")),
		}
	}
	return []key.Binding{m.Keys.Toggle, m.Keys.Time, m.Keys.Save, m.Keys.Back, m.Keys.Licenses, m.Keys.Palette}
}

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	bindings := append(m.contextBindings(), m.Keys.Help, m.Keys.Quit)
	var plain []string
	for _, b := range bindings {
		h := b.Help()
		plain = append(plain, "- "+h.Key+": "+h.Desc)
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		Context:  m.helpContext(),
		Bindings: plain,
		HelpView: m.helpModel.View(helpKeyMap{short: bindings, full: [][]key.Binding{bindings}}),
	})
}

func (m Model) helpContext() string {
	switch {
	case m.Prompt != nil:
		return "permission prompt"
	case m.LicensesOpen:
		return "licenses"
	case m.Palette.Active:
		return "command palette"
	}
	return m.State.Dialog.String()
}
