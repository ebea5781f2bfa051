package recurrence

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nogy21/libplanner/calendar"
	"github.com/nogy21/libplanner/event"
)

// Expressible rules must expand identically through rrule-go.
func TestRRuleFor_MatchesExpand(t *testing.T) {
	ceiling := calendar.MustParseDate("2030-12-31")

	tests := []struct {
		name string
		date string
		rule event.RepeatRule
	}{
		{"Daily", "2024-01-01", event.RepeatRule{Type: calendar.FrequencyDaily, Interval: 40, EndDate: until("2024-01-20")}},
		{"Daily clipped by ceiling", "2030-12-01", event.RepeatRule{Type: calendar.FrequencyDaily, Interval: 100}},
		{"Weekly", "2024-01-03", event.RepeatRule{Type: calendar.FrequencyWeekly, Interval: 5}},
		{"Monthly mid-month", "2024-11-15", event.RepeatRule{Type: calendar.FrequencyMonthly, Interval: 5}},
		{"Monthly month-end", "2024-01-31", event.RepeatRule{Type: calendar.FrequencyMonthly, Interval: 7}},
		{"Monthly 30th", "2024-01-30", event.RepeatRule{Type: calendar.FrequencyMonthly, Interval: 13}},
		{"Monthly 29th", "2023-01-29", event.RepeatRule{Type: calendar.FrequencyMonthly, Interval: 14}},
		{"Yearly", "2024-07-04", event.RepeatRule{Type: calendar.FrequencyYearly, Interval: 2}},
		{"Yearly leap day", "2024-02-29", event.RepeatRule{Type: calendar.FrequencyYearly, Interval: 3}},
		{"Yearly leap day clipped by ceiling", "2024-02-29", event.RepeatRule{Type: calendar.FrequencyYearly, Interval: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := baseEvent(tt.date, tt.rule)

			expanded, err := Expand(ev, ceiling)
			require.NoError(t, err)

			r, err := RRuleFor(ev, ceiling)
			require.NoError(t, err)

			var fromRRule []string
			for _, occ := range r.All() {
				fromRRule = append(fromRRule, calendar.DateOf(occ).String())
			}
			assert.Equal(t, dates(expanded), fromRRule)
		})
	}
}

func TestRRuleFor_NotExpressible(t *testing.T) {
	tests := []struct {
		name string
		date string
		rule event.RepeatRule
	}{
		{"Not repeating", "2024-01-01", event.NoRepeat},
		{"Base after ceiling", "2025-07-01", event.RepeatRule{Type: calendar.FrequencyDaily, Interval: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RRuleFor(baseEvent(tt.date, tt.rule), testCeiling)
			assert.True(t, IsType(err, ErrNotExpressible), "got %v", err)
		})
	}
}

func TestRRuleFor_InvalidRule(t *testing.T) {
	_, err := RRuleFor(baseEvent("2024-01-01", event.RepeatRule{Type: calendar.FrequencyDaily}), testCeiling)
	assert.True(t, IsType(err, ErrInvalidInterval))

	_, err = RRuleFor(baseEvent("2024-01-01", event.RepeatRule{Type: "hourly", Interval: 1}), testCeiling)
	assert.True(t, IsType(err, ErrUnknownRepeatType))
}

// The rule is bounded by COUNT, so no UTC UNTIL sits beside the floating
// DTSTART written by EncodeSeries.
func TestRRuleString(t *testing.T) {
	rule, err := RRuleString(baseEvent("2024-01-31", event.RepeatRule{Type: calendar.FrequencyMonthly, Interval: 7}), testCeiling)
	require.NoError(t, err)

	assert.Contains(t, rule, "FREQ=MONTHLY")
	assert.Contains(t, rule, "BYMONTHDAY=31")
	assert.Contains(t, rule, "COUNT=8")
	assert.NotContains(t, rule, "UNTIL=")
	assert.False(t, strings.HasPrefix(rule, "DTSTART"))
}
