package commands

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/taskboard/internal/model"
)

type Type string

const (
	TypeNew    Type = "new"
	TypeSearch Type = "search"
	TypeFilter Type = "filter"
	TypeShow   Type = "show"
	TypeEdit   Type = "edit"
	TypeRemove Type = "rm"
	TypeAll    Type = "all"
	TypeHome   Type = "home"
	TypeMenu   Type = "menu"
)

var aliases = map[string]Type{
	"add":       TypeNew,
	"create":    TypeNew,
	"find":      TypeSearch,
	"cat":       TypeFilter,
	"category":  TypeFilter,
	"open":      TypeShow,
	"delete":    TypeRemove,
	"del":       TypeRemove,
	"list":      TypeAll,
	"tasks":     TypeAll,
	"dashboard": TypeHome,
	"nav":       TypeMenu,
}

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

// NewArgs prefills the creation form.
type NewArgs struct {
	Title string
}

type SearchArgs struct {
	Query string
}

// FilterArgs carries an empty Category for "filter all".
type FilterArgs struct {
	Category model.Category
}

// TargetArgs names a task either by id or by its 1-based row ("#3").
type TargetArgs struct {
	Ref string
}

type Command struct {
	Type   Type
	Raw    string
	New    *NewArgs
	Search *SearchArgs
	Filter *FilterArgs
	Target *TargetArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]
	typ := Type(head)
	if alias, ok := aliases[head]; ok {
		typ = alias
	}

	switch typ {
	case TypeNew:
		return Command{Type: TypeNew, Raw: input, New: &NewArgs{Title: strings.Join(args, " ")}}, nil
	case TypeSearch:
		return parseSearch(input, args)
	case TypeFilter:
		return parseFilter(input, args)
	case TypeShow, TypeEdit, TypeRemove:
		return parseTarget(input, typ, args)
	case TypeAll, TypeHome, TypeMenu:
		return Command{Type: typ, Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseSearch(raw string, args []string) (Command, error) {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "search requires a query"}
	}
	return Command{Type: TypeSearch, Raw: raw, Search: &SearchArgs{Query: query}}, nil
}

func parseFilter(raw string, args []string) (Command, error) {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "filter requires a category"}
	}
	if strings.EqualFold(name, "all") {
		return Command{Type: TypeFilter, Raw: raw, Filter: &FilterArgs{}}, nil
	}
	c, ok := model.ParseCategory(name)
	if !ok {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown category: %s", name)}
	}
	return Command{Type: TypeFilter, Raw: raw, Filter: &FilterArgs{Category: c}}, nil
}

func parseTarget(raw string, typ Type, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires one task id or #row", typ)}
	}
	return Command{Type: typ, Raw: raw, Target: &TargetArgs{Ref: args[0]}}, nil
}
