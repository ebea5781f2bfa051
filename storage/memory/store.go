// memory based implementation for testing and the command line
package memory

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/nogy21/libplanner/event"
	"github.com/nogy21/libplanner/storage"
)

// Store implements storage.Storage using an in-memory map keyed by event id
type Store struct {
	mu     sync.RWMutex
	events map[string]event.Event
	newID  func() string
	logger *slog.Logger
	seed   []event.Event
}

var _ storage.Storage = (*Store)(nil)

// Option configures a Store
type Option func(*Store)

// WithLogger sets the logger used by the store
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithIDGenerator replaces the uuid based id generator
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithEvents seeds the store. Events without an id get one from the id
// generator in effect once every option has been applied.
func WithEvents(evs ...event.Event) Option {
	return func(s *Store) {
		s.seed = append(s.seed, evs...)
	}
}

// New creates a new in-memory storage
func New(opts ...Option) *Store {
	s := &Store{
		events: make(map[string]event.Event),
		newID:  uuid.NewString,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, ev := range s.seed {
		if ev.ID == "" {
			ev.ID = s.newID()
		}
		s.events[ev.ID] = ev
	}
	s.seed = nil
	return s
}

func (s *Store) ListEvents(_ context.Context) ([]event.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]event.Event, 0, len(s.events))
	for _, ev := range s.events {
		out = append(out, ev)
	}
	event.SortByDate(out)
	return out, nil
}

func (s *Store) GetEvent(_ context.Context, id string) (event.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ev, ok := s.events[id]
	if !ok {
		return event.Event{}, storage.NotFound(id)
	}
	return ev, nil
}

func (s *Store) CreateEvent(ctx context.Context, ev event.Event) (event.Event, error) {
	created, err := s.CreateEvents(ctx, []event.Event{ev})
	if err != nil {
		return event.Event{}, err
	}
	return created[0], nil
}

func (s *Store) CreateEvents(_ context.Context, evs []event.Event) ([]event.Event, error) {
	if len(evs) == 0 {
		return nil, &storage.Error{Type: storage.ErrInvalidInput, Message: "no events to create"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]event.Event, 0, len(evs))
	batch := make(map[string]struct{}, len(evs))
	for _, ev := range evs {
		ev.ID = s.newID()
		_, stored := s.events[ev.ID]
		_, dup := batch[ev.ID]
		if stored || dup {
			return nil, &storage.Error{Type: storage.ErrAlreadyExists, Message: "generated id " + ev.ID + " already in use"}
		}
		batch[ev.ID] = struct{}{}
		out = append(out, ev)
	}
	for _, ev := range out {
		s.events[ev.ID] = ev
	}

	s.logger.Debug("events created", "count", len(out))
	return out, nil
}

func (s *Store) UpdateEvent(ctx context.Context, ev event.Event) (event.Event, error) {
	updated, err := s.UpdateEvents(ctx, []event.Event{ev})
	if err != nil {
		return event.Event{}, err
	}
	return updated[0], nil
}

func (s *Store) UpdateEvents(_ context.Context, evs []event.Event) ([]event.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ev := range evs {
		if ev.ID == "" {
			return nil, &storage.Error{Type: storage.ErrInvalidInput, Message: "event id is required"}
		}
		if _, ok := s.events[ev.ID]; !ok {
			return nil, storage.NotFound(ev.ID)
		}
	}

	out := make([]event.Event, len(evs))
	for i, ev := range evs {
		s.events[ev.ID] = ev
		out[i] = ev
	}

	s.logger.Debug("events updated", "count", len(out))
	return out, nil
}

func (s *Store) DeleteEvent(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[id]; !ok {
		return storage.NotFound(id)
	}
	delete(s.events, id)

	s.logger.Debug("event deleted", "id", id)
	return nil
}
