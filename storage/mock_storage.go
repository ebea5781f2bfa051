package storage

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/nogy21/libplanner/calendar"
	"github.com/nogy21/libplanner/event"
)

// MockStorage implements the Storage interface for testing
type MockStorage struct {
	mock.Mock
}

// ListEvents implements the Storage interface
func (m *MockStorage) ListEvents(ctx context.Context) ([]event.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]event.Event), args.Error(1)
}

// GetEvent implements the Storage interface
func (m *MockStorage) GetEvent(ctx context.Context, id string) (event.Event, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(event.Event), args.Error(1)
}

// CreateEvent implements the Storage interface
func (m *MockStorage) CreateEvent(ctx context.Context, ev event.Event) (event.Event, error) {
	args := m.Called(ctx, ev)
	return args.Get(0).(event.Event), args.Error(1)
}

// CreateEvents implements the Storage interface
func (m *MockStorage) CreateEvents(ctx context.Context, evs []event.Event) ([]event.Event, error) {
	args := m.Called(ctx, evs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]event.Event), args.Error(1)
}

func (m *MockStorage) UpdateEvent(ctx context.Context, ev event.Event) (event.Event, error) {
	args := m.Called(ctx, ev)
	return args.Get(0).(event.Event), args.Error(1)
}

func (m *MockStorage) UpdateEvents(ctx context.Context, evs []event.Event) ([]event.Event, error) {
	args := m.Called(ctx, evs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]event.Event), args.Error(1)
}

func (m *MockStorage) DeleteEvent(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- Helper methods for creating test data ---

// NewMockEvent creates a one-hour, non-repeating test event
func NewMockEvent(id, title, date string) event.Event {
	return event.Event{
		ID:        id,
		Title:     title,
		Date:      calendar.MustParseDate(date),
		StartTime: "09:00",
		EndTime:   "10:00",
		Repeat:    event.NoRepeat,
	}
}
