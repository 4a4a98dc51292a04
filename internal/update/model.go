package update

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sandeepkv93/remindd/internal/controller"
	"github.com/sandeepkv93/remindd/internal/permission"
	"github.com/sandeepkv93/remindd/internal/scheduler"
)

// EffectRunner executes the effects that need the permission gateway.
type EffectRunner interface {
	Execute(ctx context.Context, eff controller.Effect) error
}

type StatusBar struct {
	Text    string
	IsError bool
}

type PickerField int

const (
	PickerHour PickerField = iota
	PickerMinute
)

// TimePickerState is the local edit buffer behind the time picker dialog.
// Nothing reaches the controller until the user confirms.
type TimePickerState struct {
	Hour   int
	Minute int
	Field  PickerField
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Options struct {
	Context    context.Context
	Controller *controller.Controller
	Runner     EffectRunner
	Prompts    <-chan permission.PromptRequest
	Fired      <-chan scheduler.Wake
	// LicensesMarkdown overrides the bundled license list.
	LicensesMarkdown string
}

type Model struct {
	ctx     context.Context
	ctrl    *controller.Controller
	runner  EffectRunner
	states  <-chan controller.State
	unsub   func()
	prompts <-chan permission.PromptRequest
	fired   <-chan scheduler.Wake

	State        controller.State
	Picker       TimePickerState
	Palette      CommandPaletteState
	Prompt       *permission.PromptRequest
	LicensesOpen bool
	HelpVisible  bool
	Busy         bool
	LastFired    *scheduler.Wake
	Status       StatusBar
	Keys         KeyMap
	Quitting     bool
	LastError    error

	licensesMarkdown string
	spinner          spinner.Model
	helpModel        help.Model
	commandInput     textinput.Model
}

func NewModel(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	input := textinput.New()
	input.Prompt = "/ "
	input.Placeholder = "at 07:30 | on | off | save | back | licenses"
	input.CharLimit = 32

	m := Model{
		ctx:              ctx,
		ctrl:             opts.Controller,
		runner:           opts.Runner,
		prompts:          opts.Prompts,
		fired:            opts.Fired,
		Keys:             DefaultKeyMap(),
		licensesMarkdown: opts.LicensesMarkdown,
		spinner:          sp,
		helpModel:        help.New(),
		commandInput:     input,
	}
	if m.ctrl != nil {
		m.State = m.ctrl.State()
		m.states, m.unsub = m.ctrl.Subscribe()
	}
	return m
}

// Close drops the state subscription.
func (m Model) Close() {
	if m.unsub != nil {
		m.unsub()
	}
}
