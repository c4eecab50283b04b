// Package dateutil handles calendar-day strings without timezone drift.
// Days are parsed and formatted using local date components only; treating
// YYYY-MM-DD as a UTC instant shifts the day near midnight in non-UTC zones.
package dateutil

import (
	"fmt"
	"strings"
	"time"
)

// ParseCalendarDay parses a strict YYYY-MM-DD string into local midnight.
// Returns ok=false on malformed input; callers treat that as "unknown".
func ParseCalendarDay(s string) (time.Time, bool) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 || len(parts[0]) != 4 || len(parts[1]) != 2 || len(parts[2]) != 2 {
		return time.Time{}, false
	}

	year, ok := parseDigits(parts[0])
	if !ok {
		return time.Time{}, false
	}
	month, ok := parseDigits(parts[1])
	if !ok {
		return time.Time{}, false
	}
	day, ok := parseDigits(parts[2])
	if !ok {
		return time.Time{}, false
	}

	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)

	// time.Date normalizes overflow (e.g. Feb 30 -> Mar 2); reject such input
	if date.Day() != day || date.Month() != time.Month(month) {
		return time.Time{}, false
	}

	return date, true
}

// parseDigits parses a decimal string of digits only. Unlike strconv.Atoi it
// rejects signs, so "+1" never passes for a month.
func parseDigits(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}

// FormatCalendarDay formats a date as YYYY-MM-DD from its local components
func FormatCalendarDay(date time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", date.Year(), int(date.Month()), date.Day())
}

// IsSameDay reports whether two times fall on the same local calendar day
func IsSameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// StartOfDay truncates a time to local midnight
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

// NextDay returns the calendar day after the given day
func NextDay(day time.Time) time.Time {
	return StartOfDay(day).AddDate(0, 0, 1)
}

// Nights counts the nights between check-in and check-out.
// AddDate arithmetic keeps the count correct across DST transitions.
func Nights(checkin, checkout time.Time) int {
	start := StartOfDay(checkin)
	end := StartOfDay(checkout)

	nights := 0
	for current := start; current.Before(end); current = current.AddDate(0, 0, 1) {
		nights++
	}
	return nights
}
