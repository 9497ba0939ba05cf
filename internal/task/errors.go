package task

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrFormat     = errors.New("invalid task format")
	ErrDateFormat = errors.New("unrecognised date format")
	ErrIndex      = errors.New("invalid task number")
)

// FormatError reports a task that could not be constructed.
// It satisfies errors.Is(err, ErrFormat) and unwraps to the underlying cause, if any.
type FormatError struct {
	Reason string
	Err    error
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

func (e *FormatError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// DateFormatError is returned when a token matches none of the accepted layouts.
type DateFormatError struct {
	Input string
}

func (e *DateFormatError) Error() string {
	return "Unrecognised date format: " + e.Input
}

func (e *DateFormatError) Is(target error) bool {
	return target == ErrDateFormat
}

// Hint lists the layouts a user may type.
func (e *DateFormatError) Hint() string {
	return "I only recognise yyyy-MM-dd HHmm OR yyyy-MM-dd OR d/M/yyyy HHmm OR d/M/yyyy"
}

// IndexError reports a 1-based task number outside [1, Size], or an
// argument that is not a number at all. Input is set only in the latter case.
type IndexError struct {
	Number int
	Size   int
	Input  string
}

func (e *IndexError) Error() string {
	if e.Input != "" {
		return fmt.Sprintf("%q is not a valid task number", e.Input)
	}
	return fmt.Sprintf("Task number %d does not exist", e.Number)
}

func (e *IndexError) Is(target error) bool {
	return target == ErrIndex
}
