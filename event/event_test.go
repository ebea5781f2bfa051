package event

import (
	"encoding/json"
	"testing"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nogy21/libplanner/calendar"
)

func sampleEvent() Event {
	return Event{
		ID:               "1",
		Title:            "test",
		Date:             calendar.MustParseDate("2024-01-01"),
		StartTime:        "10:00",
		EndTime:          "11:00",
		Description:      "test",
		Location:         "test",
		Category:         "test",
		NotificationTime: 10,
		Repeat: RepeatRule{
			Type:     calendar.FrequencyDaily,
			Interval: 1,
		},
	}
}

func TestEventJSON_ClientPayload(t *testing.T) {
	payload := `{
		"id": "1",
		"title": "test",
		"date": "2024-01-01",
		"startTime": "10:00",
		"endTime": "11:00",
		"description": "test",
		"location": "test",
		"category": "test",
		"repeat": {"type": "daily", "interval": 2, "endDate": "2024-01-02"},
		"notificationTime": 10
	}`

	var ev Event
	require.NoError(t, json.Unmarshal([]byte(payload), &ev))

	assert.Equal(t, "2024-01-01", ev.Date.String())
	assert.Equal(t, calendar.FrequencyDaily, ev.Repeat.Type)
	assert.Equal(t, 2, ev.Repeat.Interval)
	end, ok := ev.Repeat.EndDate.Get()
	require.True(t, ok)
	assert.Equal(t, "2024-01-02", end.String())
	assert.True(t, ev.IsRepeating())
}

func TestRepeatRuleJSON_EndDateAbsent(t *testing.T) {
	for _, raw := range []string{
		`{"type":"weekly","interval":1}`,
		`{"type":"weekly","interval":1,"endDate":null}`,
		`{"type":"weekly","interval":1,"endDate":""}`,
	} {
		var rule RepeatRule
		require.NoError(t, json.Unmarshal([]byte(raw), &rule), raw)
		assert.True(t, rule.EndDate.IsAbsent(), raw)
	}

	var rule RepeatRule
	assert.Error(t, json.Unmarshal([]byte(`{"type":"weekly","interval":1,"endDate":"soon"}`), &rule))
}

func TestRepeatRuleJSON_Marshal(t *testing.T) {
	data, err := json.Marshal(RepeatRule{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"none","interval":0}`, string(data))

	data, err = json.Marshal(RepeatRule{
		Type:     calendar.FrequencyMonthly,
		Interval: 3,
		EndDate:  mo.Some(calendar.MustParseDate("2024-12-31")),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"monthly","interval":3,"endDate":"2024-12-31"}`, string(data))
}

func TestRepeatRule_EffectiveEnd(t *testing.T) {
	ceiling := calendar.MustParseDate("2025-06-30")

	rule := RepeatRule{Type: calendar.FrequencyDaily, Interval: 1}
	assert.Equal(t, ceiling, rule.EffectiveEnd(ceiling))

	rule.EndDate = mo.Some(calendar.MustParseDate("2024-03-01"))
	assert.Equal(t, "2024-03-01", rule.EffectiveEnd(ceiling).String())

	rule.EndDate = mo.Some(calendar.MustParseDate("2030-01-01"))
	assert.Equal(t, ceiling, rule.EffectiveEnd(ceiling))
}

func TestEvent_WithDateCopies(t *testing.T) {
	ev := sampleEvent()
	moved := ev.WithDate(calendar.MustParseDate("2024-02-02"))

	assert.Equal(t, "2024-01-01", ev.Date.String())
	assert.Equal(t, "2024-02-02", moved.Date.String())
	assert.Equal(t, ev.Title, moved.Title)
	assert.Equal(t, ev.Repeat, moved.Repeat)
}

func TestEvent_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Event)
		wantErr bool
	}{
		{"Valid event", func(*Event) {}, false},
		{"Missing title", func(e *Event) { e.Title = " " }, true},
		{"Invalid date", func(e *Event) { e.Date = calendar.Date{Year: 2023, Month: 2, Day: 29} }, true},
		{"Bad start time", func(e *Event) { e.StartTime = "10am" }, true},
		{"End before start", func(e *Event) { e.StartTime, e.EndTime = "12:00", "11:00" }, true},
		{"Equal times", func(e *Event) { e.EndTime = e.StartTime }, true},
		{"Negative notification", func(e *Event) { e.NotificationTime = -5 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := sampleEvent()
			tt.mutate(&ev)
			err := ev.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidEvent)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFilters(t *testing.T) {
	base := sampleEvent()
	events := []Event{
		base.WithDate(calendar.MustParseDate("2024-01-15")),
		base.WithDate(calendar.MustParseDate("2024-01-01")),
		base.WithDate(calendar.MustParseDate("2024-01-10")),
	}

	assert.Len(t, OnDay(events, 15), 1)
	assert.Empty(t, OnDay(events, 2))

	inRange := InRange(events, calendar.MustParseDate("2024-01-01"), calendar.MustParseDate("2024-01-10"))
	assert.Len(t, inRange, 2)

	SortByDate(events)
	assert.Equal(t, "2024-01-01", events[0].Date.String())
	assert.Equal(t, "2024-01-15", events[2].Date.String())
}
