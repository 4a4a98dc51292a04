package commands

import (
	"fmt"

	"github.com/sandeepkv93/remindd/internal/controller"
)

type Result struct {
	Message string
}

// Dispatcher accepts controller events; Controller.Dispatch and
// Controller.Handle both fit once the context is bound.
type Dispatcher func(controller.Event) error

// Events maps a parsed command to the controller events it stands for.
// Setting a time goes through the picker so the dialog rules still apply.
func Events(cmd Command) ([]controller.Event, error) {
	switch cmd.Type {
	case TypeAt:
		if cmd.At == nil {
			return nil, &CommandError{Code: ErrCodeInvalidArgument, Message: "at requires a time"}
		}
		return []controller.Event{
			controller.OpenTimePicker{},
			controller.ConfirmTime{Hour: cmd.At.Hour, Minute: cmd.At.Minute},
		}, nil
	case TypeOn:
		return []controller.Event{controller.ToggleReminder{Enabled: true}}, nil
	case TypeOff:
		return []controller.Event{controller.ToggleReminder{Enabled: false}}, nil
	case TypeSave:
		return []controller.Event{controller.Save{}}, nil
	case TypeBack:
		return []controller.Event{controller.Back{}}, nil
	case TypeLicenses:
		return []controller.Event{controller.OpenLicenses{}}, nil
	default:
		return nil, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func Execute(cmd Command, dispatch Dispatcher) (Result, error) {
	events, err := Events(cmd)
	if err != nil {
		return Result{}, err
	}
	for _, ev := range events {
		if err := dispatch(ev); err != nil {
			return Result{}, &CommandError{Code: ErrCodeDispatchFailed, Message: err.Error()}
		}
	}
	return Result{Message: describe(cmd)}, nil
}

func describe(cmd Command) string {
	switch cmd.Type {
	case TypeAt:
		return fmt.Sprintf("reminder time set to %02d:%02d", cmd.At.Hour, cmd.At.Minute)
	case TypeOn:
		return "reminder enabled (save to apply)"
	case TypeOff:
		return "reminder disabled (save to apply)"
	case TypeSave:
		return "saving reminder"
	case TypeBack:
		return "leaving settings"
	default:
		return "opening licenses"
	}
}
