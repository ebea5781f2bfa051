package calendar

import (
	"fmt"
	"time"
)

// IsLeapYear reports whether year is a Gregorian leap year.
func IsLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// DaysInMonth returns the number of days in the given month of year.
func DaysInMonth(year int, month time.Month) int {
	switch month {
	case time.February:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

// WeekDates returns the seven dates of the Sunday-first week containing d.
func WeekDates(d Date) []Date {
	sunday := d.AddDays(-int(d.Weekday()))
	dates := make([]Date, 7)
	for i := range dates {
		dates[i] = sunday.AddDays(i)
	}
	return dates
}

// WeeksAtMonth partitions a month into Sunday-first weeks. Each cell holds the
// day of month, or 0 for cells outside the month.
func WeeksAtMonth(year int, month time.Month) [][7]int {
	daysInMonth := DaysInMonth(year, month)
	firstWeekday := int(Date{Year: year, Month: month, Day: 1}.Weekday())

	weeks := make([][7]int, 0, 6)
	var week [7]int
	for day := 1; day <= daysInMonth; day++ {
		idx := (firstWeekday + day - 1) % 7
		week[idx] = day
		if idx == 6 || day == daysInMonth {
			weeks = append(weeks, week)
			week = [7]int{}
		}
	}
	return weeks
}

// WeekOfMonth returns the week number of d within its month. A week belongs to
// the month containing its Thursday, so early January dates may report the
// last week of December.
func WeekOfMonth(d Date) (year int, month time.Month, week int) {
	thursday := d.AddDays(4 - int(d.Weekday()))
	first := Date{Year: thursday.Year, Month: thursday.Month, Day: 1}
	firstThursday := 1 + (4-int(first.Weekday())+7)%7
	return thursday.Year, thursday.Month, (thursday.Day-firstThursday)/7 + 1
}

// FormatWeek renders the week of d as "YYYY년 M월 N주".
func FormatWeek(d Date) string {
	y, m, w := WeekOfMonth(d)
	return fmt.Sprintf("%d년 %d월 %d주", y, int(m), w)
}

// FormatMonth renders the month of d as "YYYY년 M월".
func FormatMonth(d Date) string {
	return fmt.Sprintf("%d년 %d월", d.Year, int(d.Month))
}
