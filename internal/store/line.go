package store

import (
	"fmt"
	"strings"

	"github.com/amirbrooks/sai/internal/task"
)

// Separator joins the fields of a stored line. It is not escaped, so a
// description containing it will not decode on the next load.
const Separator = " | "

// EncodeLine renders t as one data-file line:
//
//	T | 0 | description
//	D | 1 | description | 2019-12-02 1800
//	E | 0 | description | 2019-12-02 1000 | 2019-12-02 1200
func EncodeLine(t *task.Task) string {
	fields := []string{t.Kind.Tag(), doneFlag(t.Done), t.Description}
	switch t.Kind {
	case task.KindDeadline:
		fields = append(fields, task.FormatStorage(t.By))
	case task.KindEvent:
		fields = append(fields, task.FormatStorage(t.From), task.FormatStorage(t.To))
	}
	return strings.Join(fields, Separator)
}

// DecodeLine parses a line written by EncodeLine.
func DecodeLine(line string) (*task.Task, error) {
	parts := strings.Split(line, Separator)
	if len(parts) < 3 {
		return nil, fmt.Errorf("expected at least 3 fields, got %d", len(parts))
	}
	done, err := parseDoneFlag(parts[1])
	if err != nil {
		return nil, err
	}
	desc := parts[2]

	var t *task.Task
	switch parts[0] {
	case "T":
		if err := wantFields(parts, 3); err != nil {
			return nil, err
		}
		t, err = task.NewTodo(desc)
	case "D":
		if err := wantFields(parts, 4); err != nil {
			return nil, err
		}
		t, err = task.NewDeadline(desc, parts[3])
	case "E":
		if err := wantFields(parts, 5); err != nil {
			return nil, err
		}
		t, err = task.NewEvent(desc, parts[3], parts[4])
	default:
		return nil, fmt.Errorf("invalid task type: %q", parts[0])
	}
	if err != nil {
		return nil, err
	}
	if done {
		t.Mark()
	}
	return t, nil
}

func wantFields(parts []string, n int) error {
	if len(parts) != n {
		return fmt.Errorf("%s line: expected %d fields, got %d", parts[0], n, len(parts))
	}
	return nil
}

func doneFlag(done bool) string {
	if done {
		return "1"
	}
	return "0"
}

func parseDoneFlag(s string) (bool, error) {
	switch s {
	case "1":
		return true, nil
	case "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid done flag: %q", s)
	}
}
