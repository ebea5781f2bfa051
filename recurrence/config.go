package recurrence

import (
	"github.com/nogy21/libplanner/calendar"
)

// EngineConfig holds configuration options for the recurrence engine
type EngineConfig struct {
	// Ceiling is the hard horizon; no instance is ever generated after it,
	// whatever the rule's end date says.
	Ceiling calendar.Date

	// MaxOccurrences caps the number of instances of a single expansion.
	// Expansions that would exceed it fail with ErrTooManyOccurrences. 0 means
	// no cap beyond Ceiling.
	MaxOccurrences int
}

// DefaultCeiling is the horizon the web client has always used.
var DefaultCeiling = calendar.Date{Year: 2025, Month: 6, Day: 30}

// DefaultEngineConfig provides the defaults used by NewEngine
var DefaultEngineConfig = EngineConfig{
	Ceiling:        DefaultCeiling,
	MaxOccurrences: 0,
}

// BoundedEngineConfig additionally caps a single expansion, for callers that
// accept rules from untrusted input with a far ceiling.
var BoundedEngineConfig = EngineConfig{
	Ceiling:        DefaultCeiling,
	MaxOccurrences: 5000,
}

// normalize fills zero values from DefaultEngineConfig.
func (c EngineConfig) normalize() EngineConfig {
	if c.Ceiling.IsZero() {
		c.Ceiling = DefaultEngineConfig.Ceiling
	}
	if c.MaxOccurrences < 0 {
		c.MaxOccurrences = 0
	}
	return c
}
