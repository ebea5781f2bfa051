/*
Package recurrence expands recurring planner events into concrete dated
instances.

The engine takes a single base event and its repeat rule and produces the base
occurrence plus Interval repetitions, one recurrence period apart. Repetitions
after the effective end bound are dropped; the bound is the earlier of the
rule's end date and a ceiling date supplied by configuration:

	engine := recurrence.NewEngineWithConfig(recurrence.EngineConfig{
		Ceiling: calendar.MustParseDate("2025-06-30"),
	})
	instances, err := engine.Expand(ev)

Month-end and leap-day anchors follow calendar.NextOccurrence: a series on the
31st only visits months that have a 31st, and a Feb 29 series only visits leap
years.

Engines built with WithCache reuse results for identical events and ceilings.

Expanded series can be exported as iCalendar data with EncodeInstances, or as
a single VEVENT carrying a COUNT-bounded RRULE with EncodeSeries.
*/
package recurrence
