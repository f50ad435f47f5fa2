package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeToggle Type = "toggle"
	TypeDelete Type = "delete"
	TypeClear  Type = "clear"
	TypeExport Type = "export"
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

type ClearScope string

const (
	ClearCompleted ClearScope = "completed"
	ClearAll       ClearScope = "all"
)

type AddArgs struct {
	Text string
}

// RowArgs addresses a task by its 1-based position in the rendered list.
type RowArgs struct {
	Row int
}

type ClearArgs struct {
	Scope ClearScope
}

type ExportArgs struct {
	Format string
	Path   string
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Toggle *RowArgs
	Delete *RowArgs
	Clear  *ClearArgs
	Export *ExportArgs
}

var aliases = map[string]Type{
	"a":    TypeAdd,
	"new":  TypeAdd,
	"t":    TypeToggle,
	"done": TypeToggle,
	"d":    TypeDelete,
	"rm":   TypeDelete,
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
	typ := Type(head)
	if alias, ok := aliases[head]; ok {
		typ = alias
	}

	switch typ {
	case TypeAdd:
		return parseAdd(input, raw, args)
	case TypeToggle:
		row, err := parseRow(typ, args)
		if err != nil {
			return Command{}, err
		}
		return Command{Type: TypeToggle, Raw: input, Toggle: &row}, nil
	case TypeDelete:
		row, err := parseRow(typ, args)
		if err != nil {
			return Command{}, err
		}
		return Command{Type: TypeDelete, Raw: input, Delete: &row}, nil
	case TypeClear:
		return parseClear(input, args)
	case TypeExport:
		return parseExport(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

// parseAdd keeps the text verbatim after the verb so inner spacing survives.
func parseAdd(input, raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires task text"}
	}
	text := strings.TrimSpace(raw[len(strings.Fields(raw)[0]):])
	return Command{Type: TypeAdd, Raw: input, Add: &AddArgs{Text: text}}, nil
}

func parseRow(typ Type, args []string) (RowArgs, error) {
	if len(args) != 1 {
		return RowArgs{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires a row number", typ)}
	}
	n, err := strconv.Atoi(strings.TrimPrefix(args[0], "#"))
	if err != nil || n < 1 {
		return RowArgs{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid row number: %s", args[0])}
	}
	return RowArgs{Row: n}, nil
}

func parseClear(input string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "clear requires scope: completed|all"}
	}
	switch scope := ClearScope(strings.ToLower(args[0])); scope {
	case ClearCompleted, ClearAll:
		return Command{Type: TypeClear, Raw: input, Clear: &ClearArgs{Scope: scope}}, nil
	case "done":
		return Command{Type: TypeClear, Raw: input, Clear: &ClearArgs{Scope: ClearCompleted}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown clear scope: %s", args[0])}
	}
}

func parseExport(input string, args []string) (Command, error) {
	if len(args) != 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "export requires format and path"}
	}
	return Command{Type: TypeExport, Raw: input, Export: &ExportArgs{Format: strings.ToLower(args[0]), Path: args[1]}}, nil
}
