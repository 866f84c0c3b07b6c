package services

import (
	"strings"
	"time"
)

const isoDateLayout = "2006-01-02"

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

func DayRange(value time.Time, location *time.Location) (time.Time, time.Time) {
	start := DateAtLocation(value, location)
	return start, start.AddDate(0, 0, 1)
}

// CalendarDate keeps the wall-clock date of value and drops everything else.
// Calendar dates are stored and compared as UTC midnight.
func CalendarDate(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func LocalCalendarDate(value time.Time, location *time.Location) time.Time {
	return CalendarDate(DateAtLocation(value, location))
}

// StorageDayRange returns the half-open [day, day+1) range of value's calendar date.
func StorageDayRange(value time.Time) (time.Time, time.Time) {
	start := CalendarDate(value)
	return start, start.AddDate(0, 0, 1)
}

// DaysBetween counts whole calendar days from from to to. The result is
// negative when to precedes from.
func DaysBetween(from time.Time, to time.Time) int {
	return int(CalendarDate(to).Sub(CalendarDate(from)) / (24 * time.Hour))
}

func ParseISODate(raw string) (time.Time, error) {
	parsed, err := time.ParseInLocation(isoDateLayout, strings.TrimSpace(raw), time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return parsed, nil
}

func FormatISODate(value time.Time) string {
	return value.Format(isoDateLayout)
}

func addDays(value time.Time, days int) time.Time {
	return CalendarDate(value).AddDate(0, 0, days)
}

func datePtr(value time.Time) *time.Time {
	return &value
}

func intPtr(value int) *int {
	return &value
}
