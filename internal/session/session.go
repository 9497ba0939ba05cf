// Package session executes one command line at a time against a task list
// and persists the list after every change.
package session

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/amirbrooks/sai/internal/parser"
	"github.com/amirbrooks/sai/internal/task"
)

const (
	CommandList   = "list"
	CommandMark   = "mark"
	CommandUnmark = "unmark"
	CommandDelete = "delete"
	CommandFind   = "find"
	CommandBye    = "bye"
)

var ErrUnknownCommand = errors.New("unknown command")

// UnknownCommandError reports a keyword no command answers to.
// It satisfies errors.Is(err, ErrUnknownCommand).
type UnknownCommandError struct {
	Command string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("Sorry, I don't know what %q means", e.Command)
}

func (e *UnknownCommandError) Is(target error) bool {
	return target == ErrUnknownCommand
}

type ResultKind int

const (
	ResultNone ResultKind = iota
	ResultList
	ResultAdded
	ResultMarked
	ResultUnmarked
	ResultDeleted
	ResultFound
	ResultBye
)

// Result is the plain data a command produces. Task is the added, marked,
// unmarked or deleted task; Count is the list size after the command.
type Result struct {
	Kind    ResultKind
	Task    *task.Task
	Tasks   []*task.Task
	Matches []task.Match
	Count   int
}

// Mutated reports whether the command changed the list.
func (r Result) Mutated() bool {
	switch r.Kind {
	case ResultAdded, ResultMarked, ResultUnmarked, ResultDeleted:
		return true
	}
	return false
}

// Saver persists the whole list.
type Saver interface {
	Save(*task.List) error
}

type Session struct {
	list   *task.List
	saver  Saver
	logger *log.Logger
}

func New(list *task.List, saver Saver, logger *log.Logger) *Session {
	if list == nil {
		list = task.NewList()
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Session{list: list, saver: saver, logger: logger}
}

func (s *Session) List() *task.List { return s.list }

// Execute runs one command line. When the list changed but saving failed,
// the Result is returned together with the save error and the change is
// kept in memory.
func (s *Session) Execute(line string) (Result, error) {
	keyword, rest := parser.SplitCommand(line)
	switch keyword {
	case "":
		return Result{Kind: ResultNone, Count: s.list.Len()}, nil
	case CommandList:
		return Result{Kind: ResultList, Tasks: s.list.Tasks(), Count: s.list.Len()}, nil
	case CommandBye:
		return Result{Kind: ResultBye, Count: s.list.Len()}, nil
	case CommandFind:
		return s.find(rest)
	case CommandMark, CommandUnmark, CommandDelete:
		return s.byNumber(keyword, rest)
	case parser.CommandTodo, parser.CommandDeadline, parser.CommandEvent:
		return s.add(line)
	default:
		return Result{}, &UnknownCommandError{Command: keyword}
	}
}

func (s *Session) add(line string) (Result, error) {
	p, err := parser.Extract(line)
	if err != nil {
		return Result{}, err
	}
	t, err := build(p)
	if err != nil {
		return Result{}, err
	}
	s.list.Add(t)
	return s.commit(Result{Kind: ResultAdded, Task: t, Count: s.list.Len()})
}

func build(p parser.Phrases) (*task.Task, error) {
	switch p.Command {
	case parser.CommandTodo:
		return task.NewTodo(p.Fields[0])
	case parser.CommandDeadline:
		return task.NewDeadline(p.Fields[0], p.Fields[1])
	case parser.CommandEvent:
		return task.NewEvent(p.Fields[0], p.Fields[1], p.Fields[2])
	default:
		return nil, &parser.FormatError{Reason: "Inputted task does not fall under todo, deadline or event"}
	}
}

func (s *Session) byNumber(command, rest string) (Result, error) {
	n, err := parser.ParseIndex(command, rest)
	if err != nil {
		return Result{}, err
	}
	var (
		t    *task.Task
		kind ResultKind
	)
	switch command {
	case CommandMark:
		t, err = s.list.Mark(n)
		kind = ResultMarked
	case CommandUnmark:
		t, err = s.list.Unmark(n)
		kind = ResultUnmarked
	default:
		t, err = s.list.Remove(n)
		kind = ResultDeleted
	}
	if err != nil {
		return Result{}, err
	}
	return s.commit(Result{Kind: kind, Task: t, Count: s.list.Len()})
}

func (s *Session) find(rest string) (Result, error) {
	keyword := strings.TrimSpace(rest)
	if keyword == "" {
		return Result{}, &parser.FormatError{Reason: `Please format your message as "find [keyword]"`}
	}
	return Result{Kind: ResultFound, Matches: s.list.Find(keyword), Count: s.list.Len()}, nil
}

func (s *Session) commit(res Result) (Result, error) {
	if s.saver == nil {
		return res, nil
	}
	if err := s.saver.Save(s.list); err != nil {
		s.logger.Printf("save failed: %v", err)
		return res, err
	}
	return res, nil
}
