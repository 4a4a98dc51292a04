package update

import (
	"github.com/sandeepkv93/remindd/internal/controller"
	"github.com/sandeepkv93/remindd/internal/permission"
	"github.com/sandeepkv93/remindd/internal/scheduler"
)

// StateMsg carries a controller state published to the subscription.
type StateMsg struct {
	State controller.State
}

type EffectMsg struct {
	Effect controller.Effect
}

// EffectDoneMsg reports that a gateway effect finished executing.
type EffectDoneMsg struct {
	Effect controller.Effect
	Err    error
}

// HandledMsg reports the result of handing an event to the controller.
type HandledMsg struct {
	Event controller.Event
	Err   error
}

type PromptMsg struct {
	Request permission.PromptRequest
}

type ReminderFiredMsg struct {
	Wake scheduler.Wake
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}
