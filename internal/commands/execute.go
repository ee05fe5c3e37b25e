package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	New    func(NewArgs) (Result, error)
	Search func(SearchArgs) (Result, error)
	Filter func(FilterArgs) (Result, error)
	Show   func(TargetArgs) (Result, error)
	Edit   func(TargetArgs) (Result, error)
	Remove func(TargetArgs) (Result, error)
	All    func() (Result, error)
	Home   func() (Result, error)
	Menu   func() (Result, error)
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeNew:
		if handlers.New == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.New(*cmd.New)
	case TypeSearch:
		if handlers.Search == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Search(*cmd.Search)
	case TypeFilter:
		if handlers.Filter == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Filter(*cmd.Filter)
	case TypeShow:
		if handlers.Show == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Show(*cmd.Target)
	case TypeEdit:
		if handlers.Edit == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Edit(*cmd.Target)
	case TypeRemove:
		if handlers.Remove == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Remove(*cmd.Target)
	case TypeAll:
		if handlers.All == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.All()
	case TypeHome:
		if handlers.Home == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Home()
	case TypeMenu:
		if handlers.Menu == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Menu()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
