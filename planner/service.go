// Package planner implements the event save workflow: validating form input,
// expanding repeating events into instances and writing them to a store.
package planner

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/nogy21/libplanner/calendar"
	"github.com/nogy21/libplanner/event"
	"github.com/nogy21/libplanner/storage"
)

// Expander turns a repeating event into its dated instances.
// *recurrence.Engine implements it.
type Expander interface {
	Expand(ev event.Event) ([]event.Event, error)
}

// Service coordinates the recurrence engine and the event store.
type Service struct {
	store    storage.Storage
	expander Expander
	logger   *slog.Logger
}

// Option configures a Service
type Option func(*Service)

// WithLogger sets the logger for the service
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService creates a planner service writing through store.
func NewService(store storage.Storage, expander Expander, opts ...Option) *Service {
	s := &Service{
		store:    store,
		expander: expander,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save stores a new event. A repeating event is expanded and its instances
// are created in one batch; the base event itself is not stored separately.
// If the series has no instances before the horizon, the base event is
// stored on its own.
func (s *Service) Save(ctx context.Context, ev event.Event) ([]event.Event, error) {
	if err := ev.Validate(); err != nil {
		return nil, err
	}

	if !ev.IsRepeating() {
		created, err := s.store.CreateEvent(ctx, ev)
		if err != nil {
			return nil, fmt.Errorf("failed to create event: %w", err)
		}
		s.logger.Info("event created", "id", created.ID, "date", created.Date.String())
		return []event.Event{created}, nil
	}

	instances, err := s.expander.Expand(ev)
	if err != nil {
		return nil, err
	}
	if len(instances) == 0 {
		s.logger.Warn("repeating event has no instances before the horizon, storing base event",
			"title", ev.Title, "date", ev.Date.String())
		instances = []event.Event{ev}
	}

	created, err := s.store.CreateEvents(ctx, instances)
	if err != nil {
		return nil, fmt.Errorf("failed to create %d event instances: %w", len(instances), err)
	}
	s.logger.Info("repeating event created",
		"title", ev.Title,
		"type", string(ev.Repeat.Type),
		"interval", ev.Repeat.Interval,
		"instances", len(created))
	return created, nil
}

// Update replaces a single stored event.
func (s *Service) Update(ctx context.Context, ev event.Event) (event.Event, error) {
	if ev.ID == "" {
		return event.Event{}, &storage.Error{Type: storage.ErrInvalidInput, Message: "event id is required"}
	}
	if err := ev.Validate(); err != nil {
		return event.Event{}, err
	}

	updated, err := s.store.UpdateEvent(ctx, ev)
	if err != nil {
		return event.Event{}, fmt.Errorf("failed to update event %s: %w", ev.ID, err)
	}
	s.logger.Info("event updated", "id", updated.ID)
	return updated, nil
}

// UpdateSeries replaces a batch of stored instances. Each instance is detached
// from its series: the repeat rule is reset to a single event.
func (s *Service) UpdateSeries(ctx context.Context, evs []event.Event) ([]event.Event, error) {
	detached := make([]event.Event, len(evs))
	for i, ev := range evs {
		if ev.ID == "" {
			return nil, &storage.Error{Type: storage.ErrInvalidInput, Message: "event id is required"}
		}
		ev.Repeat = event.RepeatRule{Type: calendar.FrequencyNone, Interval: 0}
		if err := ev.Validate(); err != nil {
			return nil, fmt.Errorf("event %s: %w", ev.ID, err)
		}
		detached[i] = ev
	}

	updated, err := s.store.UpdateEvents(ctx, detached)
	if err != nil {
		return nil, fmt.Errorf("failed to update %d events: %w", len(detached), err)
	}
	s.logger.Info("event series updated", "count", len(updated))
	return updated, nil
}

// Delete removes an event by id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteEvent(ctx, id); err != nil {
		return fmt.Errorf("failed to delete event %s: %w", id, err)
	}
	s.logger.Info("event deleted", "id", id)
	return nil
}

// Events lists all stored events.
func (s *Service) Events(ctx context.Context) ([]event.Event, error) {
	evs, err := s.store.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return evs, nil
}

// EventsBetween lists the stored events dated within [start, end].
func (s *Service) EventsBetween(ctx context.Context, start, end calendar.Date) ([]event.Event, error) {
	evs, err := s.Events(ctx)
	if err != nil {
		return nil, err
	}
	return event.InRange(evs, start, end), nil
}
