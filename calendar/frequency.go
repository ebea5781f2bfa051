package calendar

import (
	"errors"
	"strings"
)

// Frequency is the recurrence type of an event.
type Frequency string

const (
	FrequencyNone    Frequency = "none"
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

var (
	// ErrUnknownFrequency is returned for a recurrence type outside the five recognized values
	ErrUnknownFrequency = errors.New("unrecognized recurrence type")
	// ErrNegativeStep is returned when a negative step count is requested
	ErrNegativeStep = errors.New("step count must not be negative")
	// ErrNotRecurring is returned when a non-recurring frequency is asked to advance
	ErrNotRecurring = errors.New("frequency none does not recur")
)

// ParseFrequency parses a case-insensitive recurrence type. The empty string
// is treated as none.
func ParseFrequency(s string) (Frequency, error) {
	f := Frequency(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return FrequencyNone, nil
	}
	if !f.Valid() {
		return "", ErrUnknownFrequency
	}
	return f, nil
}

// Valid reports whether f is one of the recognized frequencies.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyNone, FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

// Recurs reports whether f produces more than one occurrence. The empty
// Frequency does not recur.
func (f Frequency) Recurs() bool {
	return f != "" && f != FrequencyNone
}
