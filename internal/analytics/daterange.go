package analytics

import (
	"errors"
	"math"
	"time"
)

var (
	ErrUnknownPreset = errors.New("unknown range preset")
	ErrMissingBounds = errors.New("missing date parameters")
	ErrInvalidDate   = errors.New("invalid date")
)

// Range is an inclusive [Start, End] pair of instants against which
// transactions are filtered by date. The zero Range means "unbounded".
type Range struct {
	Start time.Time
	End   time.Time
}

func (r Range) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// Contains reports whether t falls inside the range, inclusive on both ends.
func (r Range) Contains(t time.Time) bool {
	if r.IsZero() {
		return true
	}
	return !t.Before(r.Start) && !t.After(r.End)
}

// MonthBounds returns the full calendar month: first instant of the month
// through 23:59:59 of its last day. Day 0 of the following month gives the
// last calendar day regardless of month length or leap years.
func MonthBounds(year, month int) Range {
	return Range{
		Start: time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(year, time.Month(month)+1, 0, 23, 59, 59, 0, time.UTC),
	}
}

// YearBounds returns Jan 1 00:00:00 through Dec 31 23:59:59 of the year.
func YearBounds(year int) Range {
	return Range{
		Start: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC),
	}
}

// DayBounds returns the full calendar day containing t.
func DayBounds(t time.Time) Range {
	return Range{
		Start: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC),
		End:   time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, time.UTC),
	}
}

// ResolvePreset resolves a named range relative to now. Presets are anchored
// to month boundaries and exclude the current partial month (end = day 0 of
// the current month), except thisyear which covers the whole current year.
func ResolvePreset(preset string, now time.Time) (Range, error) {
	year, month := now.Year(), int(now.Month())

	switch preset {
	case "3months":
		return Range{
			Start: time.Date(year, time.Month(month)-3, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(year, time.Month(month), 0, 23, 59, 59, 0, time.UTC),
		}, nil
	case "6months":
		return Range{
			Start: time.Date(year, time.Month(month)-6, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(year, time.Month(month), 0, 23, 59, 59, 0, time.UTC),
		}, nil
	case "year":
		return Range{
			Start: time.Date(year-1, time.Month(month), 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(year, time.Month(month), 0, 23, 59, 59, 0, time.UTC),
		}, nil
	case "thisyear":
		return YearBounds(year), nil
	default:
		return Range{}, ErrUnknownPreset
	}
}

// CustomRange parses explicit start/end calendar dates. The end is forced to
// the last instant of its calendar day regardless of any time-of-day supplied.
func CustomRange(startStr, endStr string) (Range, error) {
	start, err := parseDate(startStr)
	if err != nil {
		return Range{}, err
	}

	end, err := parseDate(endStr)
	if err != nil {
		return Range{}, err
	}

	end = time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 999000000, time.UTC)

	return Range{Start: start, End: end}, nil
}

// ResolveRange picks a range from a preset or explicit bounds. Exactly one of
// the two forms must be supplied.
func ResolveRange(preset, startStr, endStr string, now time.Time) (Range, error) {
	if preset != "" {
		return ResolvePreset(preset, now)
	}
	if startStr != "" && endStr != "" {
		return CustomRange(startStr, endStr)
	}
	return Range{}, ErrMissingBounds
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// MonthsInRange approximates the number of months covered by r as
// max(1, ceil(days/30)). Deliberately calendar-inexact: monthly averages
// derived from it must keep this rounding for compatibility.
func MonthsInRange(r Range) int {
	days := r.End.Sub(r.Start).Hours() / 24
	months := int(math.Ceil(days / 30))
	if months < 1 {
		return 1
	}
	return months
}

// DayRanges expands r into one full-day range per calendar day, in
// chronological order, inclusive of both endpoint days.
func DayRanges(r Range) []Range {
	var days []Range
	current := time.Date(r.Start.Year(), r.Start.Month(), r.Start.Day(), 0, 0, 0, 0, time.UTC)
	for !current.After(r.End) {
		days = append(days, DayBounds(current))
		current = current.AddDate(0, 0, 1)
	}
	return days
}

// MonthRanges expands r into one full-month range per calendar month whose
// first day falls within [start of r.Start's month, r.End], chronologically.
func MonthRanges(r Range) []Range {
	var months []Range
	current := time.Date(r.Start.Year(), r.Start.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !current.After(r.End) {
		months = append(months, MonthBounds(current.Year(), int(current.Month())))
		current = current.AddDate(0, 1, 0)
	}
	return months
}

// TrailingMonthRanges returns exactly n full-month ranges ending with the
// given anchor month, oldest first.
func TrailingMonthRanges(year, month, n int) []Range {
	months := make([]Range, 0, n)
	for i := n - 1; i >= 0; i-- {
		anchor := time.Date(year, time.Month(month)-time.Month(i), 1, 0, 0, 0, 0, time.UTC)
		months = append(months, MonthBounds(anchor.Year(), int(anchor.Month())))
	}
	return months
}

// MonthLabel formats a month bucket label, e.g. "Jan 2024".
func MonthLabel(r Range) string {
	return r.Start.Format("Jan 2006")
}

// DayLabel formats a day bucket label as an ISO date.
func DayLabel(r Range) string {
	return r.Start.Format("2006-01-02")
}
