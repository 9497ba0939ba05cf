// Package parser splits raw command lines into a keyword and the
// marker-delimited fields that follow it.
package parser

import (
	"errors"
	"strconv"
	"strings"

	"github.com/amirbrooks/sai/internal/task"
)

const (
	CommandTodo     = "todo"
	CommandDeadline = "deadline"
	CommandEvent    = "event"
)

// Markers delimit fields inside a command line. They are matched
// case-sensitively against the original input.
const (
	MarkerBy   = "/by "
	MarkerFrom = "/from "
	MarkerTo   = "/to "
)

var ErrFormat = errors.New("invalid command format")

// FormatError carries a reason suitable for showing to the user.
// It satisfies errors.Is(err, ErrFormat).
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	if e == nil || strings.TrimSpace(e.Reason) == "" {
		return ErrFormat.Error()
	}
	return e.Reason
}

func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

func formatErr(reason string) error {
	return &FormatError{Reason: reason}
}

// Phrases is the result of Extract. Fields holds the description followed by
// any date tokens: [desc] for todo, [desc, by] for deadline and
// [desc, from, to] for event.
type Phrases struct {
	Command string
	Fields  []string
}

// SplitCommand splits trimmed input at the first space. The keyword comes back
// lowercased; rest keeps its original case and is not trimmed further.
func SplitCommand(raw string) (keyword, rest string) {
	s := strings.TrimSpace(raw)
	head, tail, _ := strings.Cut(s, " ")
	return strings.ToLower(head), tail
}

// Extract parses a todo, deadline or event command.
func Extract(raw string) (Phrases, error) {
	input := strings.TrimSpace(raw)
	keyword, rest := SplitCommand(input)
	if keyword == "" {
		return Phrases{}, formatErr("Unaccepted Input")
	}

	switch keyword {
	case CommandTodo:
		return extractTodo(rest)
	case CommandDeadline:
		return extractDeadline(input, rest)
	case CommandEvent:
		return extractEvent(input, rest)
	default:
		return Phrases{}, formatErr("Inputted task does not fall under todo, deadline or event")
	}
}

func extractTodo(rest string) (Phrases, error) {
	desc := strings.TrimSpace(rest)
	if desc == "" {
		return Phrases{}, formatErr("Todo Task cannot be empty")
	}
	return Phrases{Command: CommandTodo, Fields: []string{desc}}, nil
}

func extractDeadline(input, rest string) (Phrases, error) {
	if strings.TrimSpace(rest) == "" {
		return Phrases{}, formatErr("Deadline Task cannot be empty")
	}
	by := strings.Index(input, MarkerBy)
	if by == -1 {
		return Phrases{}, formatErr("Deadline Task needs a /by statement")
	}
	start := len(CommandDeadline)
	desc := strings.TrimSpace(input[start:by])
	due := strings.TrimSpace(input[by+len(MarkerBy):])
	return Phrases{Command: CommandDeadline, Fields: []string{desc, due}}, nil
}

func extractEvent(input, rest string) (Phrases, error) {
	if strings.TrimSpace(rest) == "" {
		return Phrases{}, formatErr("Event Task cannot be empty")
	}
	from := strings.Index(input, MarkerFrom)
	if from == -1 {
		return Phrases{}, formatErr("Event Task needs a /from statement")
	}
	to := strings.Index(input, MarkerTo)
	if to == -1 || from > to {
		return Phrases{}, formatErr("Event Task needs a /to statement that comes after /from")
	}
	start := len(CommandEvent)
	desc := strings.TrimSpace(input[start:from])
	fromTok := strings.TrimSpace(input[from+len(MarkerFrom) : to])
	toTok := strings.TrimSpace(input[to+len(MarkerTo):])
	return Phrases{Command: CommandEvent, Fields: []string{desc, fromTok, toTok}}, nil
}

// ParseIndex reads the single task number argument of mark, unmark and
// delete. A missing or extra argument is a FormatError; an argument that is
// not an int is a *task.IndexError. Range checking is left to the task list.
func ParseIndex(command, rest string) (int, error) {
	fields := strings.Fields(rest)
	if len(fields) != 1 {
		return 0, usageErr(command)
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, &task.IndexError{Input: fields[0]}
	}
	return n, nil
}

func usageErr(command string) error {
	return formatErr(`Please format your message as "` + command + ` [task number]"`)
}
