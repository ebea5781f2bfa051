package recurrence

import (
	"errors"
	"fmt"
)

// ErrorType classifies recurrence errors.
type ErrorType string

const (
	ErrInvalidInterval    ErrorType = "invalid_interval"
	ErrUnknownRepeatType  ErrorType = "unknown_repeat_type"
	ErrEndBeforeStart     ErrorType = "end_before_start"
	ErrTooManyOccurrences ErrorType = "too_many_occurrences"
	ErrNotExpressible     ErrorType = "not_expressible"
	ErrInvalidBaseDate    ErrorType = "invalid_base_date"
)

// Error is returned for rules the engine refuses to expand. Expansion halts
// before producing any instance.
type Error struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error of the same Type, so callers can write
// errors.Is(err, &recurrence.Error{Type: recurrence.ErrInvalidInterval}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Type == e.Type
}

// IsType reports whether err is a recurrence *Error of the given type.
func IsType(err error, typ ErrorType) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Type == typ
	}
	return false
}
