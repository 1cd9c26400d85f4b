package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add    func(AddArgs) (Result, error)
	Take   func(TargetArgs) (Result, error)
	Miss   func(TargetArgs) (Result, error)
	Remove func(TargetArgs) (Result, error)
	Open   func(OpenArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "add handler not configured"}
		}
		return handlers.Add(*cmd.Add)
	case TypeTake:
		if handlers.Take == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "take handler not configured"}
		}
		return handlers.Take(*cmd.Target)
	case TypeMiss:
		if handlers.Miss == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "miss handler not configured"}
		}
		return handlers.Miss(*cmd.Target)
	case TypeRemove:
		if handlers.Remove == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "remove handler not configured"}
		}
		return handlers.Remove(*cmd.Target)
	case TypeOpen:
		if handlers.Open == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "open handler not configured"}
		}
		return handlers.Open(*cmd.Open)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
