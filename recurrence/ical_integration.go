package recurrence

import (
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"

	"github.com/nogy21/libplanner/calendar"
	"github.com/nogy21/libplanner/event"
)

const (
	defaultProductID = "-//libplanner//NONSGML v1.0//EN"

	icalDateFormat     = "20060102"
	icalDateTimeFormat = "20060102T150405"
)

type exportConfig struct {
	now       func() time.Time
	productID string
}

// ExportOption configures iCalendar export
type ExportOption func(*exportConfig)

// WithClock sets the clock used for DTSTAMP
func WithClock(now func() time.Time) ExportOption {
	return func(c *exportConfig) {
		if now != nil {
			c.now = now
		}
	}
}

// WithProductID overrides the PRODID of exported calendars
func WithProductID(id string) ExportOption {
	return func(c *exportConfig) {
		if id != "" {
			c.productID = id
		}
	}
}

func newExportConfig(opts []ExportOption) *exportConfig {
	c := &exportConfig{now: time.Now, productID: defaultProductID}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// EncodeInstances writes instances as a VCALENDAR with one VEVENT each.
func EncodeInstances(w io.Writer, instances []event.Event, opts ...ExportOption) error {
	cfg := newExportConfig(opts)
	cal := newCalendar(cfg)
	for _, ev := range instances {
		cal.Children = append(cal.Children, ComponentFromEvent(ev, cfg.now()))
	}
	return ical.NewEncoder(w).Encode(cal)
}

// EncodeSeries writes ev as a single VEVENT carrying an RRULE bounded by
// ceiling. Events without an occurrence to describe, including events that do
// not repeat, are written as one plain VEVENT.
func EncodeSeries(w io.Writer, ev event.Event, ceiling calendar.Date, opts ...ExportOption) error {
	return encodeSeries(w, ev, ceiling, Expand, opts)
}

// EncodeSeries is the package EncodeSeries expanded through the engine, so
// the configured occurrence cap and cache apply.
func (e *Engine) EncodeSeries(w io.Writer, ev event.Event, ceiling calendar.Date, opts ...ExportOption) error {
	return encodeSeries(w, ev, ceiling, e.ExpandUntil, opts)
}

func encodeSeries(w io.Writer, ev event.Event, ceiling calendar.Date, expand expandFunc, opts []ExportOption) error {
	r, err := rruleFor(ev, ceiling, expand)
	if IsType(err, ErrNotExpressible) {
		return EncodeInstances(w, []event.Event{ev}, opts...)
	}
	if err != nil {
		return err
	}

	cfg := newExportConfig(opts)
	cal := newCalendar(cfg)
	comp := ComponentFromEvent(ev, cfg.now())
	setValue(comp, ical.PropRecurrenceRule, r.OrigOptions.RRuleString(), "")
	cal.Children = append(cal.Children, comp)
	return ical.NewEncoder(w).Encode(cal)
}

func newCalendar(cfg *exportConfig) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropProductID, cfg.productID)
	cal.Props.SetText(ical.PropVersion, "2.0")
	return cal
}

// ComponentFromEvent builds a VEVENT for a single event. Timed events use
// floating local date-times; events without parseable times become all-day.
func ComponentFromEvent(ev event.Event, stamp time.Time) *ical.Component {
	comp := ical.NewComponent(ical.CompEvent)

	uid := ev.ID
	if uid == "" {
		uid = uuid.New().String()
	}
	comp.Props.SetText(ical.PropUID, uid)
	comp.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())

	start, startErr := time.Parse(event.TimeLayout, ev.StartTime)
	end, endErr := time.Parse(event.TimeLayout, ev.EndTime)
	if startErr == nil && endErr == nil {
		day := ev.Date.Time()
		setValue(comp, ical.PropDateTimeStart, day.Add(clock(start)).Format(icalDateTimeFormat), "")
		setValue(comp, ical.PropDateTimeEnd, day.Add(clock(end)).Format(icalDateTimeFormat), "")
	} else {
		setValue(comp, ical.PropDateTimeStart, ev.Date.Time().Format(icalDateFormat), "DATE")
		setValue(comp, ical.PropDateTimeEnd, ev.Date.AddDays(1).Time().Format(icalDateFormat), "DATE")
	}

	comp.Props.SetText(ical.PropSummary, ev.Title)
	if ev.Description != "" {
		comp.Props.SetText(ical.PropDescription, ev.Description)
	}
	if ev.Location != "" {
		comp.Props.SetText(ical.PropLocation, ev.Location)
	}
	if ev.Category != "" {
		comp.Props.SetText(ical.PropCategories, ev.Category)
	}

	if ev.NotificationTime > 0 {
		alarm := ical.NewComponent(ical.CompAlarm)
		alarm.Props.SetText(ical.PropAction, "DISPLAY")
		alarm.Props.SetText(ical.PropDescription, ev.Title)
		setValue(alarm, ical.PropTrigger, fmt.Sprintf("-PT%dM", ev.NotificationTime), "")
		comp.Children = append(comp.Children, alarm)
	}

	return comp
}

// setValue stores a raw (unescaped) property value, optionally typed with a
// VALUE parameter.
func setValue(comp *ical.Component, name, value, valueType string) {
	prop := ical.NewProp(name)
	prop.Value = value
	if valueType != "" {
		prop.Params.Set(ical.ParamValue, valueType)
	}
	comp.Props.Set(prop)
}

// clock returns the time-of-day of t as an offset from midnight.
func clock(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute
}
