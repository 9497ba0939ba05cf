package task

import "strings"

// List is the ordered task collection. Numbers passed in and out are
// 1-based; the list stores tasks in insertion order.
type List struct {
	tasks []*Task
}

// Match is a task returned by Find together with its current number.
type Match struct {
	Number int
	Task   *Task
}

func NewList(tasks ...*Task) *List {
	l := &List{tasks: make([]*Task, 0, len(tasks))}
	for _, t := range tasks {
		if t != nil {
			l.tasks = append(l.tasks, t)
		}
	}
	return l
}

func (l *List) Len() int { return len(l.tasks) }

// Tasks returns a snapshot of the list order. The tasks themselves are shared.
func (l *List) Tasks() []*Task {
	out := make([]*Task, len(l.tasks))
	copy(out, l.tasks)
	return out
}

func (l *List) Add(t *Task) {
	if t == nil {
		return
	}
	l.tasks = append(l.tasks, t)
}

func (l *List) Get(n int) (*Task, error) {
	if err := l.check(n); err != nil {
		return nil, err
	}
	return l.tasks[n-1], nil
}

// Remove deletes and returns task n.
func (l *List) Remove(n int) (*Task, error) {
	if err := l.check(n); err != nil {
		return nil, err
	}
	t := l.tasks[n-1]
	l.tasks = append(l.tasks[:n-1], l.tasks[n:]...)
	return t, nil
}

func (l *List) Mark(n int) (*Task, error) {
	t, err := l.Get(n)
	if err != nil {
		return nil, err
	}
	t.Mark()
	return t, nil
}

func (l *List) Unmark(n int) (*Task, error) {
	t, err := l.Get(n)
	if err != nil {
		return nil, err
	}
	t.Unmark()
	return t, nil
}

// Find returns every task whose description contains keyword, in list order.
// Matching is case-sensitive.
func (l *List) Find(keyword string) []Match {
	var out []Match
	for i, t := range l.tasks {
		if strings.Contains(t.Description, keyword) {
			out = append(out, Match{Number: i + 1, Task: t})
		}
	}
	return out
}

func (l *List) check(n int) error {
	if n < 1 || n > len(l.tasks) {
		return &IndexError{Number: n, Size: len(l.tasks)}
	}
	return nil
}
