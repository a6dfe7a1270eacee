// Package schedule interprets the bitmask fields of schedule settings and
// schedule logs. The store treats them as opaque integers; this package gives
// them their per-weekday and per-day-of-month meaning.
package schedule

import "time"

// DefaultWorkdayMinutes is the workday length recorded when schedule
// settings are first created.
const DefaultWorkdayMinutes = 8 * 60

// WeekSchedule is a weekly workday bitmask. Bit 0 is Monday through bit 6
// for Sunday; bit 7 marks the schedule as flexible.
type WeekSchedule uint8

const flexibleFlag WeekSchedule = 1 << 7

// NewWeekSchedule builds a schedule from a set of workdays.
func NewWeekSchedule(weekdays []time.Weekday, flexible bool) WeekSchedule {
	var s WeekSchedule
	for _, day := range weekdays {
		s |= 1 << daysFromMonday(day)
	}
	if flexible {
		s |= flexibleFlag
	}
	return s
}

// Flexible reports whether the schedule allows shifting workdays around.
func (s WeekSchedule) Flexible() bool {
	return s&flexibleFlag != 0
}

// On reports whether the given weekday is a workday.
func (s WeekSchedule) On(day time.Weekday) bool {
	return s&(1<<daysFromMonday(day)) != 0
}

// Weekdays returns the workdays in Monday-first order.
func (s WeekSchedule) Weekdays() []time.Weekday {
	var days []time.Weekday
	for i := 0; i < 7; i++ {
		if s&(1<<i) != 0 {
			days = append(days, time.Weekday((i+1)%7))
		}
	}
	return days
}

// MonthLog is a per-day workday bitmask for one calendar month. Bit n marks
// day n+1 as a workday; bit 31 carries the flexible flag.
type MonthLog uint32

const monthFlexibleFlag MonthLog = 1 << 31

// MonthLogFor projects a weekly schedule onto the month containing date.
func MonthLogFor(s WeekSchedule, date time.Time) MonthLog {
	first := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
	firstWeekday := daysFromMonday(first.Weekday())

	var log MonthLog
	for i := 0; i < daysIn(date.Year(), date.Month()); i++ {
		weekday := (i + firstWeekday) % 7
		if s&(1<<weekday) != 0 {
			log |= 1 << i
		}
	}
	if s.Flexible() {
		log |= monthFlexibleFlag
	}
	return log
}

// Workday reports whether the given day of the month (1-based) is a workday.
func (l MonthLog) Workday(day int) bool {
	return l&(1<<(day-1)) != 0
}

// Flexible reports whether the underlying schedule was flexible.
func (l MonthLog) Flexible() bool {
	return l&monthFlexibleFlag != 0
}

// MonthIndex encodes a date's calendar month as a single integer,
// year*12 + month. This is the schedule log key encoding.
func MonthIndex(date time.Time) int {
	return date.Year()*12 + int(date.Month())
}

func daysFromMonday(day time.Weekday) int {
	return (int(day) + 6) % 7
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
