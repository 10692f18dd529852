/*
Package calendar provides the date arithmetic underneath the guard rotation.

PURPOSE:
  Pure calendar geometry: enumerate the days of a month, classify them as
  weekday/weekend/holiday, and format dates to the canonical YYYY-MM-DD key
  that every lookup in the system (ledger, replacements, holidays) uses.

KEY CONCEPTS:
  - Date: a day-granularity date value. No hours, no timezone surprises.
    A Date built from local wall-clock components always formats back to
    the same key, regardless of the host timezone.
  - Canonical key: the YYYY-MM-DD string. It sorts chronologically, which
    the ledger and replacement ranges rely on.

DESIGN PRINCIPLES:
  1. Stateless: every function is a pure function of its inputs.
  2. Stable keys: Key() derives from calendar components, never from UTC
     conversion of an instant.
  3. Ordered enumeration: DaysInMonth and WorkDays return ascending days;
     the rotation engine's slot math depends on that order.

SEE ALSO:
  - holidays.go: the holiday table and work-day filtering
  - rotation package: consumes WorkDays ordering for slot computation
*/
package calendar

import (
	"fmt"
	"time"
)

// KeyLayout is the canonical date key format shared by every store in the
// system.
const KeyLayout = "2006-01-02"

// =============================================================================
// DATE - Day-granularity date value
// =============================================================================

// Date is a calendar date with day granularity. The zero value is the zero
// date (IsZero reports true).
type Date struct {
	t time.Time
}

// NewDate builds a Date from calendar components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar date of an instant, read in the instant's
// location. This is the local calendar date, not the UTC-shifted one.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// Today returns the current local calendar date.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses a canonical YYYY-MM-DD key.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(KeyLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// MustParseDate is ParseDate for static inputs; it panics on error.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Key returns the canonical YYYY-MM-DD representation.
func (d Date) Key() string { return d.t.Format(KeyLayout) }

func (d Date) String() string { return d.Key() }

// Properties
func (d Date) Year() int             { return d.t.Year() }
func (d Date) Month() time.Month     { return d.t.Month() }
func (d Date) Day() int              { return d.t.Day() }
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }
func (d Date) IsZero() bool          { return d.t.IsZero() }

// IsWeekend reports whether the date falls on Saturday or Sunday.
func (d Date) IsWeekend() bool {
	wd := d.t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsWeekday reports whether the date is Monday through Friday.
func (d Date) IsWeekday() bool { return !d.IsWeekend() }

// Comparison
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }
func (d Date) After(other Date) bool  { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool  { return d.t.Equal(other.t) }

func (d Date) BeforeOrEqual(other Date) bool { return !d.After(other) }
func (d Date) AfterOrEqual(other Date) bool  { return !d.Before(other) }

// Arithmetic
func (d Date) AddDays(n int) Date   { return Date{t: d.t.AddDate(0, 0, n)} }
func (d Date) AddMonths(n int) Date { return Date{t: d.t.AddDate(0, n, 0)} }

// =============================================================================
// MONTH ENUMERATION
// =============================================================================

// DaysInMonth returns every calendar day of the month, ascending.
func DaysInMonth(year int, month time.Month) []Date {
	last := NewDate(year, month+1, 1).AddDays(-1)
	days := make([]Date, 0, last.Day())
	for day := 1; day <= last.Day(); day++ {
		days = append(days, NewDate(year, month, day))
	}
	return days
}

// FirstWeekdayOffset returns how many leading cells a Sunday-first month
// grid needs before day 1 (0-6). Rendering support for month views.
func FirstWeekdayOffset(year int, month time.Month) int {
	return int(NewDate(year, month, 1).Weekday())
}
