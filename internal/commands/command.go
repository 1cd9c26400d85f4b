package commands

import (
	"fmt"
	"strings"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeTake   Type = "take"
	TypeMiss   Type = "miss"
	TypeRemove Type = "remove"
	TypeOpen   Type = "open"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	MedicineName string
	Time         string
}

// TargetArgs names one reminder by 1-based row number or by id.
type TargetArgs struct {
	Target string
}

type OpenArgs struct {
	Screen string
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Target *TargetArgs
	Open   *OpenArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
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
	case TypeAdd:
		return parseAdd(input, args)
	case TypeTake, TypeMiss, TypeRemove:
		return parseTarget(input, Type(head), args)
	case TypeOpen:
		return parseOpen(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

// parseAdd splits on the last standalone "at", so names containing "at"
// still work: "add cat food at 9am".
func parseAdd(raw string, args []string) (Command, error) {
	sep := -1
	for i := len(args) - 1; i >= 0; i-- {
		if strings.EqualFold(args[i], "at") {
			sep = i
			break
		}
	}
	if sep <= 0 || sep == len(args)-1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "usage: add <medicine> at <time>"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{
		MedicineName: strings.Join(args[:sep], " "),
		Time:         strings.Join(args[sep+1:], " "),
	}}, nil
}

func parseTarget(raw string, typ Type, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires a row number or id", typ)}
	}
	return Command{Type: typ, Raw: raw, Target: &TargetArgs{Target: args[0]}}, nil
}

func parseOpen(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "open requires a screen: home or settings"}
	}
	screen := strings.ToLower(args[0])
	switch screen {
	case "home", "settings":
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown screen: %s", screen)}
	}
	return Command{Type: TypeOpen, Raw: raw, Open: &OpenArgs{Screen: screen}}, nil
}
