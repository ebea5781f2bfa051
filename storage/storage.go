// Package storage defines the persistence contract the planner writes events
// through.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/nogy21/libplanner/event"
)

// Error types
type ErrorType string

const (
	ErrNotFound      ErrorType = "not_found"
	ErrAlreadyExists ErrorType = "already_exists"
	ErrInvalidInput  ErrorType = "invalid_input"
)

// Error represents a storage-related error
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

// IsNotFound reports whether err is a storage error of type ErrNotFound.
func IsNotFound(err error) bool {
	var se *Error
	return errors.As(err, &se) && se.Type == ErrNotFound
}

// NotFound builds an ErrNotFound error for the given event id.
func NotFound(id string) error {
	return &Error{Type: ErrNotFound, Message: fmt.Sprintf("event %q not found", id)}
}

// Storage connects the planner with an event backend. Implementations should
// return *Error values so callers can tell missing events from failures.
type Storage interface {
	// ListEvents returns every stored event ordered by date, then start time.
	ListEvents(ctx context.Context) ([]event.Event, error)
	// GetEvent finds one event by id.
	GetEvent(ctx context.Context, id string) (event.Event, error)
	// CreateEvent stores a new event and returns it with its assigned id.
	CreateEvent(ctx context.Context, ev event.Event) (event.Event, error)
	// CreateEvents stores a batch of new events, typically the instances of
	// an expanded series, assigning each a fresh id.
	CreateEvents(ctx context.Context, evs []event.Event) ([]event.Event, error)
	// UpdateEvent replaces the event with the same id.
	UpdateEvent(ctx context.Context, ev event.Event) (event.Event, error)
	// UpdateEvents replaces a batch of events. Either all are replaced or none.
	UpdateEvents(ctx context.Context, evs []event.Event) ([]event.Event, error)
	// DeleteEvent removes an event by id.
	DeleteEvent(ctx context.Context, id string) error
}
