package recurrence

import (
	"fmt"

	"github.com/teambition/rrule-go"

	"github.com/nogy21/libplanner/calendar"
	"github.com/nogy21/libplanner/event"
)

// expandFunc produces the instances a series is exported from.
type expandFunc func(ev event.Event, ceiling calendar.Date) ([]event.Event, error)

// RRuleFor converts the event's recurrence into an RFC 5545 rule with DTSTART
// at the base date. The rule steps one period at a time and carries a COUNT
// equal to the number of instances Expand produces, so it needs no UNTIL.
// Month-end anchors become BYMONTHDAY and leap-day anchors BYMONTH=2 with
// BYMONTHDAY=29, which skip invalid dates the same way Expand does.
//
// Events that do not repeat, or have no occurrence on or before ceiling, are
// not expressible.
func RRuleFor(ev event.Event, ceiling calendar.Date) (*rrule.RRule, error) {
	return rruleFor(ev, ceiling, Expand)
}

func rruleFor(ev event.Event, ceiling calendar.Date, expand expandFunc) (*rrule.RRule, error) {
	instances, err := expand(ev, ceiling)
	if err != nil {
		return nil, err
	}
	if len(instances) == 0 {
		if !ev.Repeat.Type.Recurs() {
			return nil, &Error{Type: ErrNotExpressible, Message: "event does not repeat"}
		}
		return nil, &Error{
			Type:    ErrNotExpressible,
			Message: fmt.Sprintf("no occurrence of %s on or before %s", ev.Date, ceiling),
		}
	}

	opt := rrule.ROption{
		Dtstart: ev.Date.Time(),
		Count:   len(instances),
	}

	switch ev.Repeat.Type {
	case calendar.FrequencyDaily:
		opt.Freq = rrule.DAILY
	case calendar.FrequencyWeekly:
		opt.Freq = rrule.WEEKLY
	case calendar.FrequencyMonthly:
		opt.Freq = rrule.MONTHLY
		opt.Bymonthday = []int{ev.Date.Day}
	case calendar.FrequencyYearly:
		opt.Freq = rrule.YEARLY
		opt.Bymonth = []int{int(ev.Date.Month)}
		opt.Bymonthday = []int{ev.Date.Day}
	}

	r, err := rrule.NewRRule(opt)
	if err != nil {
		return nil, fmt.Errorf("failed to build RRULE: %w", err)
	}
	return r, nil
}

// RRuleString is RRuleFor rendered as an RRULE property value, without the
// DTSTART line.
func RRuleString(ev event.Event, ceiling calendar.Date) (string, error) {
	r, err := RRuleFor(ev, ceiling)
	if err != nil {
		return "", err
	}
	return r.OrigOptions.RRuleString(), nil
}
