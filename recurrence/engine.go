package recurrence

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/nogy21/libplanner/calendar"
	"github.com/nogy21/libplanner/event"
)

// Engine expands recurring events into dated instances, bounded by a
// configured ceiling. It is safe for concurrent use.
type Engine struct {
	config EngineConfig
	logger *slog.Logger
	cache  *Cache
}

// Option represents a configuration option for the Engine
type Option func(*Engine)

// WithLogger sets the logger for the engine
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithCache reuses expansion results held in cache
func WithCache(cache *Cache) Option {
	return func(e *Engine) {
		e.cache = cache
	}
}

// NewEngine creates a new recurrence engine using DefaultEngineConfig
func NewEngine(opts ...Option) *Engine {
	return NewEngineWithConfig(DefaultEngineConfig, opts...)
}

// NewEngineWithConfig creates a new recurrence engine with custom configuration
func NewEngineWithConfig(config EngineConfig, opts ...Option) *Engine {
	e := &Engine{
		config: config.normalize(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the effective engine configuration.
func (e *Engine) Config() EngineConfig {
	return e.config
}

// Ceiling returns the configured horizon.
func (e *Engine) Ceiling() calendar.Date {
	return e.config.Ceiling
}

// Expand expands ev up to the configured ceiling.
func (e *Engine) Expand(ev event.Event) ([]event.Event, error) {
	return e.ExpandUntil(ev, e.config.Ceiling)
}

// ExpandUntil expands ev up to ceiling instead of the configured one.
func (e *Engine) ExpandUntil(ev event.Event, ceiling calendar.Date) ([]event.Event, error) {
	var key string
	cacheable := false
	if e.cache != nil {
		key, cacheable = cacheKey(ev, ceiling, e.config.MaxOccurrences)
		if cacheable {
			if instances, ok := e.cache.Get(key); ok {
				e.logger.Debug("recurrence cache hit", "title", ev.Title, "instances", len(instances))
				return instances, nil
			}
		}
	}

	instances, err := expand(ev, ceiling, e.config.MaxOccurrences)
	if err != nil {
		e.logger.Warn("recurrence expansion rejected",
			"title", ev.Title,
			"date", ev.Date.String(),
			"type", string(ev.Repeat.Type),
			"interval", ev.Repeat.Interval,
			"error", err)
		return nil, err
	}

	e.logger.Debug("recurrence expanded",
		"title", ev.Title,
		"type", string(ev.Repeat.Type),
		"interval", ev.Repeat.Interval,
		"bound", ev.Repeat.EffectiveEnd(ceiling).String(),
		"instances", len(instances))
	if cacheable {
		e.cache.Set(key, instances)
	}
	return instances, nil
}

// Expand returns the instances of a recurring event in ascending date order.
// The base occurrence is followed by up to Interval repetitions, each one
// recurrence period after the last, and expansion stops early at the earlier
// of the end date and ceiling. Each instance is a copy of ev with only Date
// replaced; ids are left to the store.
//
// Events that do not repeat yield an empty slice: callers persist the single
// event themselves.
func Expand(ev event.Event, ceiling calendar.Date) ([]event.Event, error) {
	return expand(ev, ceiling, 0)
}

// ValidateRule checks a recurrence rule anchored at base.
func ValidateRule(base calendar.Date, rule event.RepeatRule) error {
	if !rule.Type.Valid() {
		return &Error{
			Type:    ErrUnknownRepeatType,
			Message: fmt.Sprintf("repeat type %q", rule.Type),
			Err:     calendar.ErrUnknownFrequency,
		}
	}
	if !rule.Type.Recurs() {
		return nil
	}
	if rule.Interval <= 0 {
		return &Error{
			Type:    ErrInvalidInterval,
			Message: fmt.Sprintf("interval must be at least 1, got %d", rule.Interval),
		}
	}
	if !base.Valid() {
		return &Error{
			Type:    ErrInvalidBaseDate,
			Message: fmt.Sprintf("base date %s", base),
			Err:     calendar.ErrInvalidDate,
		}
	}
	if end, ok := rule.EndDate.Get(); ok && end.Before(base) {
		return &Error{
			Type:    ErrEndBeforeStart,
			Message: fmt.Sprintf("end date %s is before base date %s", end, base),
		}
	}
	return nil
}

func expand(ev event.Event, ceiling calendar.Date, limit int) ([]event.Event, error) {
	rule := ev.Repeat
	if rule.Type == "" || rule.Type == calendar.FrequencyNone {
		return []event.Event{}, nil
	}
	if err := ValidateRule(ev.Date, rule); err != nil {
		return nil, err
	}

	bound := rule.EffectiveEnd(ceiling)
	instances := make([]event.Event, 0)
	for k := 0; k <= rule.Interval; k++ {
		date, err := calendar.NextOccurrence(ev.Date, rule.Type, k)
		if errors.Is(err, calendar.ErrOutOfRange) {
			break
		}
		if err != nil {
			return nil, wrapCalendarError(err)
		}
		if date.After(bound) {
			break
		}
		if limit > 0 && len(instances) >= limit {
			return nil, &Error{
				Type:    ErrTooManyOccurrences,
				Message: fmt.Sprintf("more than %d occurrences before %s", limit, bound),
			}
		}
		instances = append(instances, ev.WithDate(date))
	}
	return instances, nil
}

func wrapCalendarError(err error) error {
	switch {
	case errors.Is(err, calendar.ErrUnknownFrequency), errors.Is(err, calendar.ErrNotRecurring):
		return &Error{Type: ErrUnknownRepeatType, Message: "cannot step recurrence", Err: err}
	case errors.Is(err, calendar.ErrInvalidDate):
		return &Error{Type: ErrInvalidBaseDate, Message: "cannot step recurrence", Err: err}
	default:
		return &Error{Type: ErrInvalidInterval, Message: "cannot step recurrence", Err: err}
	}
}
