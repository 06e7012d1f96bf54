// Package eligibility computes the window during which the childcare-hours
// benefit may be used for a child.
//
// Two statutory cutoffs exist and the later one governs:
//   - the day before the child's 9th birthday;
//   - the last day of February of the year birthYear+8, i.e. the day before
//     the March 1 school-year start used for the 3rd-grade rule.
//
// All dates are civil dates. Time-of-day and location are discarded before
// any comparison, so the cutoff day itself is still usable.
package eligibility

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Rule constants.
const (
	ageLimitYears   = 9
	gradeLimitYears = 8
	dateLayout      = "2006-01-02"
)

// ErrInvalidDate is returned when a birth date cannot be parsed.
var ErrInvalidDate = errors.New("invalid date")

// Verdict describes the eligibility window of one child at a given day.
type Verdict struct {
	Eligible       bool
	LastUsableDate time.Time
	AgeCutoff      time.Time
	GradeCutoff    time.Time
}

// IsLeapYear reports whether year is a Gregorian leap year.
func IsLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// Civil truncates t to midnight UTC of its calendar date.
func Civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AgeCutoff returns the day before the 9th birthday. time.Date normalises
// day 0 to the last day of the previous month, which covers children born
// on the first of a month.
func AgeCutoff(birthDate time.Time) time.Time {
	y, m, d := birthDate.Date()
	return time.Date(y+ageLimitYears, m, d-1, 0, 0, 0, 0, time.UTC)
}

// GradeCutoff returns Feb 28 of birthYear+8, or Feb 29 when that year is a
// leap year.
func GradeCutoff(birthDate time.Time) time.Time {
	year := birthDate.Year() + gradeLimitYears
	day := 28
	if IsLeapYear(year) {
		day = 29
	}
	return time.Date(year, time.February, day, 0, 0, 0, 0, time.UTC)
}

// LastUsableDate returns the later of AgeCutoff and GradeCutoff.
func LastUsableDate(birthDate time.Time) time.Time {
	age, grade := AgeCutoff(birthDate), GradeCutoff(birthDate)
	if grade.After(age) {
		return grade
	}
	return age
}

// IsEligible reports whether today is on or before the last usable date.
func IsEligible(birthDate, today time.Time) bool {
	return !Civil(today).After(LastUsableDate(birthDate))
}

// Evaluate returns the full verdict for birthDate as seen on today.
func Evaluate(birthDate, today time.Time) Verdict {
	return Verdict{
		Eligible:       IsEligible(birthDate, today),
		LastUsableDate: LastUsableDate(birthDate),
		AgeCutoff:      AgeCutoff(birthDate),
		GradeCutoff:    GradeCutoff(birthDate),
	}
}

// ParseDate parses a YYYY-MM-DD date or an RFC 3339 timestamp. Only the
// calendar date of a timestamp is kept, in the timestamp's own offset.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrInvalidDate)
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Civil(t), nil
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}
