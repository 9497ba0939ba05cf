package task

import (
	"errors"
	"testing"
	"time"
)

func TestNewTodo(t *testing.T) {
	tk, err := NewTodo("Read a book")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tk.Kind != KindTodo || tk.Description != "Read a book" {
		t.Fatalf("unexpected task: %+v", tk)
	}
	if tk.Done {
		t.Error("new tasks should not be done")
	}
	if got := tk.String(); got != "[T][ ] Read a book" {
		t.Errorf("String() = %q", got)
	}
}

func TestNewRejectsBlankDescription(t *testing.T) {
	for _, desc := range []string{"", "   ", "\t"} {
		if _, err := NewTodo(desc); !errors.Is(err, ErrFormat) {
			t.Errorf("NewTodo(%q) error = %v, want ErrFormat", desc, err)
		}
		if _, err := NewDeadline(desc, "2019-12-02"); !errors.Is(err, ErrFormat) {
			t.Errorf("NewDeadline(%q) error = %v, want ErrFormat", desc, err)
		}
		if _, err := NewEvent(desc, "2019-12-02", "2019-12-03"); !errors.Is(err, ErrFormat) {
			t.Errorf("NewEvent(%q) error = %v, want ErrFormat", desc, err)
		}
	}
}

func TestNewRejectsMultiLineDescription(t *testing.T) {
	for _, desc := range []string{"a\nb", "a\r\nb", "trailing\r"} {
		_, err := NewTodo(desc)
		if !errors.Is(err, ErrFormat) {
			t.Errorf("NewTodo(%q) error = %v, want ErrFormat", desc, err)
			continue
		}
		if err.Error() != "Task description must fit on one line" {
			t.Errorf("NewTodo(%q) reason = %q", desc, err.Error())
		}
		if _, err := NewDeadline(desc, "2019-12-02"); !errors.Is(err, ErrFormat) {
			t.Errorf("NewDeadline(%q) error = %v, want ErrFormat", desc, err)
		}
	}
}

func TestNewDeadline(t *testing.T) {
	tk, err := NewDeadline("return book", "2/12/2019 1800")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2019, 12, 2, 18, 0, 0, 0, time.UTC)
	if tk.Kind != KindDeadline || !tk.By.Equal(want) {
		t.Fatalf("unexpected task: %+v", tk)
	}
	if got := tk.String(); got != "[D][ ] return book (by: Dec 2 2019, 6:00PM)" {
		t.Errorf("String() = %q", got)
	}
}

func TestNewDeadlineBadDateIsFormatError(t *testing.T) {
	tk, err := NewDeadline("return book", "sometime")
	if tk != nil {
		t.Fatalf("expected no task, got %+v", tk)
	}
	if !errors.Is(err, ErrFormat) {
		t.Fatalf("expected ErrFormat, got %v", err)
	}
	if !errors.Is(err, ErrDateFormat) {
		t.Fatalf("expected wrapped ErrDateFormat, got %v", err)
	}
}

func TestNewEvent(t *testing.T) {
	tk, err := NewEvent("project meeting", "2019-12-02 1000", "2019-12-02 1200")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tk.From.Equal(time.Date(2019, 12, 2, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("From = %v", tk.From)
	}
	if !tk.To.Equal(time.Date(2019, 12, 2, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("To = %v", tk.To)
	}
	want := "[E][ ] project meeting (from: Dec 2 2019, 10:00AM to: Dec 2 2019, 12:00PM)"
	if got := tk.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestNewEventAllowsEndBeforeStart(t *testing.T) {
	tk, err := NewEvent("backwards", "2019-12-03", "2019-12-01")
	if err != nil {
		t.Fatalf("end before start should be accepted, got %v", err)
	}
	if !tk.To.Before(tk.From) {
		t.Errorf("expected To before From, got %v .. %v", tk.From, tk.To)
	}
}

func TestNewEventBadEndDate(t *testing.T) {
	if _, err := NewEvent("meeting", "2019-12-02", "10:00"); !errors.Is(err, ErrDateFormat) {
		t.Fatalf("expected ErrDateFormat, got %v", err)
	}
}

func TestMarkUnmark(t *testing.T) {
	tk, _ := NewTodo("Cook dinner")

	tk.Mark()
	if !tk.Done || tk.String() != "[T][X] Cook dinner" {
		t.Fatalf("after Mark: %+v %q", tk, tk.String())
	}
	tk.Mark()
	if !tk.Done {
		t.Fatal("second Mark should keep task done")
	}

	tk.Unmark()
	if tk.Done || tk.String() != "[T][ ] Cook dinner" {
		t.Fatalf("after Unmark: %+v %q", tk, tk.String())
	}
	tk.Unmark()
	if tk.Done {
		t.Fatal("second Unmark should keep task open")
	}
}

func TestEqual(t *testing.T) {
	a, _ := NewDeadline("x", "2019-12-02")
	b, _ := NewDeadline("x", "2019-12-02")
	if !a.Equal(b) {
		t.Fatal("expected equal deadlines")
	}
	b.Mark()
	if a.Equal(b) {
		t.Fatal("done flag should break equality")
	}
	c, _ := NewTodo("x")
	if a.Equal(c) {
		t.Fatal("different kinds should not be equal")
	}
	var nilTask *Task
	if a.Equal(nilTask) || !nilTask.Equal(nil) {
		t.Fatal("nil handling")
	}
}
