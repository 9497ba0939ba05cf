package task

import (
	"strings"
	"time"
)

// Kind tags the variant a Task holds.
type Kind int

const (
	KindTodo Kind = iota
	KindDeadline
	KindEvent
)

func (k Kind) String() string {
	switch k {
	case KindTodo:
		return "todo"
	case KindDeadline:
		return "deadline"
	case KindEvent:
		return "event"
	default:
		return "unknown"
	}
}

// Tag is the single-letter code used in the data file and in listings.
func (k Kind) Tag() string {
	switch k {
	case KindTodo:
		return "T"
	case KindDeadline:
		return "D"
	case KindEvent:
		return "E"
	default:
		return "?"
	}
}

// Task is a todo, deadline or event. By is set only for deadlines, From and
// To only for events.
type Task struct {
	Kind        Kind
	Description string
	Done        bool

	By   time.Time
	From time.Time
	To   time.Time
}

func NewTodo(description string) (*Task, error) {
	desc, err := checkDescription(description)
	if err != nil {
		return nil, err
	}
	return &Task{Kind: KindTodo, Description: desc}, nil
}

// NewDeadline builds a deadline due at the parsed by token.
func NewDeadline(description, by string) (*Task, error) {
	desc, err := checkDescription(description)
	if err != nil {
		return nil, err
	}
	due, err := parseField(by)
	if err != nil {
		return nil, err
	}
	return &Task{Kind: KindDeadline, Description: desc, By: due}, nil
}

// NewEvent builds an event spanning from..to. The two ends are not ordered
// against each other; an event may end before it starts.
func NewEvent(description, from, to string) (*Task, error) {
	desc, err := checkDescription(description)
	if err != nil {
		return nil, err
	}
	start, err := parseField(from)
	if err != nil {
		return nil, err
	}
	end, err := parseField(to)
	if err != nil {
		return nil, err
	}
	return &Task{Kind: KindEvent, Description: desc, From: start, To: end}, nil
}

func checkDescription(description string) (string, error) {
	if strings.TrimSpace(description) == "" {
		return "", &FormatError{Reason: "Task description must not be empty"}
	}
	// Each task is stored as a single line.
	if strings.ContainsAny(description, "\r\n") {
		return "", &FormatError{Reason: "Task description must fit on one line"}
	}
	return description, nil
}

func parseField(token string) (time.Time, error) {
	t, err := ParseDateTime(token)
	if err != nil {
		return time.Time{}, &FormatError{Reason: err.Error(), Err: err}
	}
	return t, nil
}

// Mark sets the task done. Marking a done task is a no-op.
func (t *Task) Mark() { t.Done = true }

// Unmark sets the task not done. Unmarking an open task is a no-op.
func (t *Task) Unmark() { t.Done = false }

// StatusIcon is "X" for done tasks and a blank otherwise.
func (t *Task) StatusIcon() string {
	if t.Done {
		return "X"
	}
	return " "
}

// Equal reports whether two tasks hold the same variant and values.
func (t *Task) Equal(o *Task) bool {
	if t == nil || o == nil {
		return t == o
	}
	return t.Kind == o.Kind &&
		t.Description == o.Description &&
		t.Done == o.Done &&
		t.By.Equal(o.By) &&
		t.From.Equal(o.From) &&
		t.To.Equal(o.To)
}

// String renders the task the way listings show it, e.g.
// "[D][ ] return book (by: Dec 2 2019, 6:00PM)".
func (t *Task) String() string {
	var b strings.Builder
	b.WriteString("[" + t.Kind.Tag() + "][" + t.StatusIcon() + "] " + t.Description)
	switch t.Kind {
	case KindDeadline:
		b.WriteString(" (by: " + FormatDisplay(t.By) + ")")
	case KindEvent:
		b.WriteString(" (from: " + FormatDisplay(t.From) + " to: " + FormatDisplay(t.To) + ")")
	}
	return b.String()
}
