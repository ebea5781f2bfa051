// Package event defines the planner's event record and its recurrence rule.
package event

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/samber/mo"

	"github.com/nogy21/libplanner/calendar"
)

// TimeLayout is the local time-of-day layout of StartTime and EndTime.
const TimeLayout = "15:04"

// ErrInvalidEvent is returned by Validate for malformed event records.
var ErrInvalidEvent = errors.New("invalid event")

// Event is a single calendar entry. It is treated as a value: copies share
// nothing mutable, so callers and the expansion engine can derive instances
// with WithDate without touching the original.
type Event struct {
	ID          string        `json:"id,omitempty"`
	Title       string        `json:"title"`
	Date        calendar.Date `json:"date"`
	StartTime   string        `json:"startTime"`
	EndTime     string        `json:"endTime"`
	Description string        `json:"description"`
	Location    string        `json:"location"`
	Category    string        `json:"category"`
	// NotificationTime is the reminder lead time in minutes before StartTime.
	NotificationTime int        `json:"notificationTime"`
	Repeat           RepeatRule `json:"repeat"`
}

// RepeatRule describes how an event recurs.
type RepeatRule struct {
	Type calendar.Frequency
	// Interval is the number of repetitions that follow the base occurrence.
	Interval int
	// EndDate is the inclusive last date of the series, if any.
	EndDate mo.Option[calendar.Date]
}

// NoRepeat is the rule of a single, non-recurring event.
var NoRepeat = RepeatRule{Type: calendar.FrequencyNone}

// repeatRuleJSON is the wire form used by the web client.
type repeatRuleJSON struct {
	Type     calendar.Frequency `json:"type"`
	Interval int                `json:"interval"`
	EndDate  string             `json:"endDate,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (r RepeatRule) MarshalJSON() ([]byte, error) {
	wire := repeatRuleJSON{
		Type:     r.Type,
		Interval: r.Interval,
	}
	if wire.Type == "" {
		wire.Type = calendar.FrequencyNone
	}
	if end, ok := r.EndDate.Get(); ok {
		wire.EndDate = end.String()
	}
	return json.Marshal(wire)
}

// UnmarshalJSON implements json.Unmarshaler. A missing, null or empty endDate
// leaves EndDate absent.
func (r *RepeatRule) UnmarshalJSON(data []byte) error {
	var wire struct {
		Type     string  `json:"type"`
		Interval int     `json:"interval"`
		EndDate  *string `json:"endDate"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	rule := RepeatRule{
		Type:     calendar.Frequency(strings.ToLower(strings.TrimSpace(wire.Type))),
		Interval: wire.Interval,
		EndDate:  mo.None[calendar.Date](),
	}
	if rule.Type == "" {
		rule.Type = calendar.FrequencyNone
	}
	if wire.EndDate != nil && strings.TrimSpace(*wire.EndDate) != "" {
		end, err := calendar.ParseDate(*wire.EndDate)
		if err != nil {
			return fmt.Errorf("repeat.endDate: %w", err)
		}
		rule.EndDate = mo.Some(end)
	}

	*r = rule
	return nil
}

// IsZero reports whether r carries no recurrence information at all.
func (r RepeatRule) IsZero() bool {
	return r.Type == "" && r.Interval == 0 && r.EndDate.IsAbsent()
}

// EffectiveEnd returns the earlier of the rule's end date and ceiling.
func (r RepeatRule) EffectiveEnd(ceiling calendar.Date) calendar.Date {
	if end, ok := r.EndDate.Get(); ok {
		return calendar.MinDate(end, ceiling)
	}
	return ceiling
}

// IsRepeating reports whether the event recurs.
func (e Event) IsRepeating() bool {
	return e.Repeat.Type.Recurs()
}

// WithDate returns a copy of the event moved to d.
func (e Event) WithDate(d calendar.Date) Event {
	e.Date = d
	return e
}

// Validate checks the form-level fields of an event. The recurrence rule is
// validated by the recurrence engine.
func (e Event) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidEvent)
	}
	if !e.Date.Valid() {
		return fmt.Errorf("%w: date %q is not a calendar day", ErrInvalidEvent, e.Date)
	}
	start, err := time.Parse(TimeLayout, e.StartTime)
	if err != nil {
		return fmt.Errorf("%w: startTime %q is not HH:MM", ErrInvalidEvent, e.StartTime)
	}
	end, err := time.Parse(TimeLayout, e.EndTime)
	if err != nil {
		return fmt.Errorf("%w: endTime %q is not HH:MM", ErrInvalidEvent, e.EndTime)
	}
	if !start.Before(end) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidEvent)
	}
	if e.NotificationTime < 0 {
		return fmt.Errorf("%w: notificationTime must not be negative", ErrInvalidEvent)
	}
	return nil
}

// OnDay returns the events falling on the given day of month. Callers pass
// events already restricted to one month.
func OnDay(events []Event, day int) []Event {
	out := make([]Event, 0)
	for _, ev := range events {
		if ev.Date.Day == day {
			out = append(out, ev)
		}
	}
	return out
}

// InRange returns the events dated within [start, end], inclusive.
func InRange(events []Event, start, end calendar.Date) []Event {
	out := make([]Event, 0)
	for _, ev := range events {
		if calendar.IsDateInRange(ev.Date, start, end) {
			out = append(out, ev)
		}
	}
	return out
}

// SortByDate orders events by date, then start time. The sort is stable.
func SortByDate(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		if c := events[i].Date.Compare(events[j].Date); c != 0 {
			return c < 0
		}
		return events[i].StartTime < events[j].StartTime
	})
}
