// internal/calendar/calendar.go
package calendar

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// Clock interface for testing time-dependent behavior.
type Clock interface {
	Now() time.Time
}

// realClock implements Clock using the system time.
type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock {
	return realClock{}
}

func IsLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// DayOfYear returns the 1-based day of year of t's wall-clock date in its
// own location. The civil date is rebuilt at midnight UTC so daylight
// saving shifts inside the year cannot move the result.
func DayOfYear(t time.Time) int {
	y, m, d := t.Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	start := time.Date(y, time.January, 0, 0, 0, 0, 0, time.UTC)
	return int(date.Sub(start) / (24 * time.Hour))
}

func Clamp(day, totalDays int) int {
	if day < 1 {
		return 1
	}
	if day > totalDays {
		return totalDays
	}
	return day
}

// ResolveDay turns an optional day override into a day of now's year.
// The leading integer of raw is used, so "12.5" and "12abc" both mean 12.
// Input without leading digits falls back to DayOfYear(now); numeric
// input is clamped to the year's range.
func ResolveDay(raw string, now time.Time) int {
	total := DaysInYear(now.Year())
	day, ok := parseDay(raw)
	if !ok {
		return DayOfYear(now)
	}
	return Clamp(day, total)
}

// parseDay reads an optional sign followed by digits from the start of
// raw and ignores the rest.
func parseDay(raw string) (int, bool) {
	value := strings.TrimSpace(raw)
	end := 0
	if end < len(value) && (value[end] == '+' || value[end] == '-') {
		end++
	}
	digits := end
	for end < len(value) && value[end] >= '0' && value[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	day, err := strconv.Atoi(value[:end])
	if err != nil {
		// Atoi reports the saturated value alongside ErrRange.
		if errors.Is(err, strconv.ErrRange) {
			return day, true
		}
		return 0, false
	}
	return day, true
}
