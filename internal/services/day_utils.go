package services

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// DateAtLocation returns the calendar day of value as observed in location,
// expressed as midnight in that location.
func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// CalendarDay converts any instant to the civil date the engine works with:
// the same year/month/day at midnight UTC.
func CalendarDay(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// TodayAt returns the civil date of now as seen in location.
func TodayAt(now time.Time, location *time.Location) time.Time {
	return CalendarDay(DateAtLocation(now, location))
}

func FormatDate(day time.Time) string {
	if day.IsZero() {
		return ""
	}
	return day.Format(dateLayout)
}

// ParseCalendarDate parses a YYYY-MM-DD string and checks the supported year range.
func ParseCalendarDate(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, ErrDateInvalid
	}
	parsed, err := time.ParseInLocation(dateLayout, trimmed, time.UTC)
	if err != nil {
		return time.Time{}, ErrDateInvalid
	}
	if err := ValidateSupportedYear(parsed); err != nil {
		return time.Time{}, err
	}
	return parsed, nil
}

func ValidateSupportedYear(day time.Time) error {
	return ValidateSupportedYearValue(day.Year())
}

func ValidateSupportedYearValue(year int) error {
	if year < MinSupportedYear || year > MaxSupportedYear {
		return ErrDateOutOfRange
	}
	return nil
}

func addDays(day time.Time, days int) time.Time {
	return day.AddDate(0, 0, days)
}

// DaysBetween counts whole calendar days from a to b.
func DaysBetween(a time.Time, b time.Time) int {
	return int(CalendarDay(b).Sub(CalendarDay(a)).Hours() / 24)
}

func sameCalendarDay(a time.Time, b time.Time) bool {
	return a.Format(dateLayout) == b.Format(dateLayout)
}

func betweenCalendarDaysInclusive(day time.Time, start time.Time, end time.Time) bool {
	if start.IsZero() || end.IsZero() {
		return false
	}
	return !day.Before(start) && !day.After(end)
}

func floorDiv(value int, divisor int) int {
	quotient := value / divisor
	if value%divisor != 0 && (value < 0) != (divisor < 0) {
		quotient--
	}
	return quotient
}

func floorMod(value int, divisor int) int {
	return value - floorDiv(value, divisor)*divisor
}
