package commands

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/remindd/internal/model"
)

type Type string

const (
	TypeAt       Type = "at"
	TypeOn       Type = "on"
	TypeOff      Type = "off"
	TypeSave     Type = "save"
	TypeBack     Type = "back"
	TypeLicenses Type = "licenses"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeDispatchFailed  ErrorCode = "dispatch_failed"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AtArgs struct {
	Hour   int
	Minute int
}

type Command struct {
	Type Type
	Raw  string
	At   *AtArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAt:
		return parseAt(input, args)
	case TypeOn, TypeOff, TypeSave, TypeBack, TypeLicenses:
		if len(args) > 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s takes no arguments", head)}
		}
		return Command{Type: Type(head), Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAt(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "at requires a time as HH:MM"}
	}
	hour, minute, err := model.ParseClock(args[0])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid time %q, want HH:MM", args[0])}
	}
	return Command{Type: TypeAt, Raw: raw, At: &AtArgs{Hour: hour, Minute: minute}}, nil
}

// Names lists the command heads in the order shown by palette help.
func Names() []string {
	return []string{"at HH:MM", string(TypeOn), string(TypeOff), string(TypeSave), string(TypeBack), string(TypeLicenses)}
}
