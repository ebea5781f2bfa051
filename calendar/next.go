package calendar

import (
	"errors"
	"time"
)

// MaxYear is the last year NextOccurrence will step into. Later dates no
// longer fit the YYYY-MM-DD form.
const MaxYear = 9999

var (
	// ErrInvalidDate is returned when a Date does not name a real calendar day.
	ErrInvalidDate = errors.New("invalid calendar date")
	// ErrOutOfRange is returned when a step lands after MaxYear.
	ErrOutOfRange = errors.New("occurrence is past the last supported year")
)

// A Gregorian calendar repeats every 400 years. These count the months that
// hold a given day, and the leap years, in one such cycle.
const (
	cycleYears       = 400
	monthsWith29th   = 4497
	monthsWith30th   = 4400
	monthsWith31st   = 2800
	leapYearsInCycle = 97
)

// Valid reports whether d names an existing calendar day.
func (d Date) Valid() bool {
	if d.Month < time.January || d.Month > time.December || d.Day < 1 {
		return false
	}
	return d.Day <= DaysInMonth(d.Year, d.Month)
}

// NextOccurrence returns the date that lies step recurrence periods after base.
// A step of 0 returns base unchanged.
//
// Monthly recurrence only lands on months that contain base's day of month: a
// series anchored on the 31st skips February, April, June, September and
// November, and step counts those valid months only. Yearly recurrence of a
// Feb 29 base only lands on leap years, and step counts leap years.
//
// Steps that land after MaxYear return ErrOutOfRange.
func NextOccurrence(base Date, freq Frequency, step int) (Date, error) {
	if freq != "" && !freq.Valid() {
		return Date{}, ErrUnknownFrequency
	}
	if step < 0 {
		return Date{}, ErrNegativeStep
	}
	if !base.Valid() {
		return Date{}, ErrInvalidDate
	}
	if step == 0 {
		return base, nil
	}

	var next Date
	switch freq {
	case FrequencyDaily, FrequencyWeekly:
		perStep := 1
		if freq == FrequencyWeekly {
			perStep = 7
		}
		if step > daysUntilMax(base)/perStep {
			return Date{}, ErrOutOfRange
		}
		return base.AddDays(perStep * step), nil
	case FrequencyMonthly:
		if step > (MaxYear-base.Year+1)*12 {
			return Date{}, ErrOutOfRange
		}
		next = addMonths(base, step)
	case FrequencyYearly:
		if step > MaxYear-base.Year {
			return Date{}, ErrOutOfRange
		}
		next = addYears(base, step)
	default:
		return Date{}, ErrNotRecurring
	}

	if next.Year > MaxYear {
		return Date{}, ErrOutOfRange
	}
	return next, nil
}

func daysUntilMax(base Date) int {
	last := Date{Year: MaxYear, Month: time.December, Day: 31}
	return int((last.Time().Unix() - base.Time().Unix()) / 86400)
}

func addMonths(base Date, step int) Date {
	if base.Day <= 28 {
		// every month has the day; plain month arithmetic with year carry
		total := int(base.Month) - 1 + step
		return Date{Year: base.Year + total/12, Month: time.Month(total%12 + 1), Day: base.Day}
	}

	perCycle := monthsWith29th
	switch base.Day {
	case 30:
		perCycle = monthsWith30th
	case 31:
		perCycle = monthsWith31st
	}

	year, month := base.Year, base.Month
	if step > perCycle {
		cycles := (step - 1) / perCycle
		year += cycles * cycleYears
		step -= cycles * perCycle
	}
	for found := 0; found < step; {
		month++
		if month > time.December {
			month = time.January
			year++
		}
		if DaysInMonth(year, month) >= base.Day {
			found++
		}
	}
	return Date{Year: year, Month: month, Day: base.Day}
}

func addYears(base Date, step int) Date {
	if base.Month != time.February || base.Day != 29 {
		return Date{Year: base.Year + step, Month: base.Month, Day: base.Day}
	}

	year := base.Year
	if step > leapYearsInCycle {
		cycles := (step - 1) / leapYearsInCycle
		year += cycles * cycleYears
		step -= cycles * leapYearsInCycle
	}
	for found := 0; found < step; {
		year++
		if IsLeapYear(year) {
			found++
		}
	}
	return Date{Year: year, Month: time.February, Day: 29}
}
