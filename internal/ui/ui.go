// Package ui turns session results and errors into the text shown to users.
package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/amirbrooks/sai/internal/session"
	"github.com/amirbrooks/sai/internal/store"
	"github.com/amirbrooks/sai/internal/task"
)

const separator = "-------------------------------------------------"

var (
	subtleColor  = lipgloss.Color("#666666")
	successColor = lipgloss.Color("#87AF87")
	errorColor   = lipgloss.Color("#AF5F5F")
	warnColor    = lipgloss.Color("#D7AF5F")
)

type Renderer struct {
	frame lipgloss.Style
	done  lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
}

// New returns a Renderer. With color off every style is a no-op.
func New(color bool) *Renderer {
	if !color {
		plain := lipgloss.NewStyle()
		return &Renderer{frame: plain, done: plain, err: plain, warn: plain}
	}
	return &Renderer{
		frame: lipgloss.NewStyle().Foreground(subtleColor),
		done:  lipgloss.NewStyle().Foreground(successColor),
		err:   lipgloss.NewStyle().Bold(true).Foreground(errorColor),
		warn:  lipgloss.NewStyle().Foreground(warnColor),
	}
}

func (r *Renderer) wrap(message string) string {
	line := r.frame.Render(separator)
	return line + "\n" + message + "\n" + line
}

func (r *Renderer) Welcome() string {
	return r.wrap("Hello! I'm S.AI\nWhat can I do for you?")
}

func (r *Renderer) Goodbye() string {
	return r.wrap("Bye. Hope to see you again soon!")
}

func (r *Renderer) task(t *task.Task) string {
	if t.Done {
		return r.done.Render(t.String())
	}
	return t.String()
}

// Result renders res. ResultNone renders as the empty string.
func (r *Renderer) Result(res session.Result) string {
	switch res.Kind {
	case session.ResultList:
		return r.wrap(r.list(res.Tasks))
	case session.ResultAdded:
		return r.wrap("Got it. I've added this task:\n" + r.task(res.Task) + "\n" + countLine(res.Count))
	case session.ResultDeleted:
		return r.wrap("Noted. I have removed this task:\n" + r.task(res.Task) + "\n" + countLine(res.Count))
	case session.ResultMarked:
		return r.wrap("Nice! I've marked this task as done:\n" + r.task(res.Task))
	case session.ResultUnmarked:
		return r.wrap("OK, I've marked this task as not done yet:\n" + r.task(res.Task))
	case session.ResultFound:
		return r.wrap(r.matches(res.Matches))
	case session.ResultBye:
		return r.Goodbye()
	default:
		return ""
	}
}

func (r *Renderer) list(tasks []*task.Task) string {
	if len(tasks) == 0 {
		return "No tasks in your list."
	}
	lines := make([]string, len(tasks))
	for i, t := range tasks {
		lines[i] = fmt.Sprintf("%d. %s", i+1, r.task(t))
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) matches(ms []task.Match) string {
	if len(ms) == 0 {
		return "No matching tasks found."
	}
	lines := []string{"Here are the matching tasks in your list:"}
	for _, m := range ms {
		lines = append(lines, fmt.Sprintf("%d. %s", m.Number, r.task(m.Task)))
	}
	return strings.Join(lines, "\n")
}

func countLine(n int) string {
	return fmt.Sprintf("Now you have %d tasks in the list.", n)
}

// Error renders err for the user. Date errors carry the accepted layouts.
func (r *Renderer) Error(err error) string {
	msg := err.Error()
	var dfe *task.DateFormatError
	if errors.As(err, &dfe) {
		msg = dfe.Error() + "\n" + dfe.Hint()
	}
	return r.wrap(r.err.Render("Error: " + msg))
}

// Warnings renders the lines skipped while loading the data file.
func (r *Renderer) Warnings(ws []store.ReadWarning) string {
	if len(ws) == 0 {
		return ""
	}
	lines := make([]string, len(ws))
	for i, w := range ws {
		lines[i] = r.warn.Render("Warning: This line cannot be read: " + w.Text)
	}
	return r.wrap(strings.Join(lines, "\n"))
}
