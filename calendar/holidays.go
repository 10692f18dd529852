/*
holidays.go - Holiday table and work-day filtering

PURPOSE:
  Loads the static holiday table from its JSON source, validates its shape,
  and answers holiday/work-day questions in O(1) per date. A date present in
  the table is excluded from work-day enumeration and never receives a guard
  assignment.

VALIDATION:
  The JSON source is an external read-only input. It is validated at load
  time (parseable dates, unique dates, known types) and rejected loudly on
  shape mismatch rather than trusted as-is.

SEE ALSO:
  - calendar.go: Date and month enumeration
  - roster package: the other JSON-backed read models
*/
package calendar

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// HolidayType classifies a holiday entry.
type HolidayType string

const (
	HolidayPublic   HolidayType = "public"
	HolidayOptional HolidayType = "optional"
)

// Holiday is one entry of the static holiday table.
type Holiday struct {
	Date string      `json:"date"` // canonical YYYY-MM-DD
	Name string      `json:"name"`
	Type HolidayType `json:"type"`
	Icon string      `json:"icon,omitempty"`
}

// holidaysFile is the JSON shape of the holiday data source.
type holidaysFile struct {
	Holidays []Holiday `json:"holidays"`
}

// =============================================================================
// CALENDAR - Holiday-aware work-day geometry
// =============================================================================

// Calendar answers holiday and work-day questions for a fixed holiday table.
type Calendar struct {
	holidays []Holiday
	byKey    map[string]Holiday
}

// NewCalendar validates the holiday table and builds the lookup set.
func NewCalendar(holidays []Holiday) (*Calendar, error) {
	byKey := make(map[string]Holiday, len(holidays))
	for i, h := range holidays {
		if _, err := ParseDate(h.Date); err != nil {
			return nil, fmt.Errorf("holiday %d: %w", i, err)
		}
		if h.Name == "" {
			return nil, fmt.Errorf("holiday %d (%s): missing name", i, h.Date)
		}
		if h.Type != HolidayPublic && h.Type != HolidayOptional {
			return nil, fmt.Errorf("holiday %d (%s): unknown type %q", i, h.Date, h.Type)
		}
		if _, dup := byKey[h.Date]; dup {
			return nil, fmt.Errorf("holiday %d: duplicate date %s", i, h.Date)
		}
		byKey[h.Date] = h
	}
	return &Calendar{holidays: holidays, byKey: byKey}, nil
}

// EmptyCalendar returns a calendar with no holidays.
func EmptyCalendar() *Calendar {
	c, _ := NewCalendar(nil)
	return c
}

// LoadCalendar reads and validates the holiday JSON data source.
func LoadCalendar(path string) (*Calendar, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read holidays: %w", err)
	}
	var file holidaysFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse holidays: %w", err)
	}
	return NewCalendar(file.Holidays)
}

// IsHoliday reports whether the date appears in the holiday table.
func (c *Calendar) IsHoliday(d Date) bool {
	_, ok := c.byKey[d.Key()]
	return ok
}

// Holiday returns the holiday entry for a date, if any.
func (c *Calendar) Holiday(d Date) (Holiday, bool) {
	h, ok := c.byKey[d.Key()]
	return h, ok
}

// Holidays returns the full table in source order.
func (c *Calendar) Holidays() []Holiday { return c.holidays }

// InMonth returns the holidays falling in the given month.
func (c *Calendar) InMonth(year int, month time.Month) []Holiday {
	prefix := fmt.Sprintf("%04d-%02d", year, month)
	var out []Holiday
	for _, h := range c.holidays {
		if strings.HasPrefix(h.Date, prefix) {
			out = append(out, h)
		}
	}
	return out
}

// InYear returns the holidays falling in the given year.
func (c *Calendar) InYear(year int) []Holiday {
	prefix := fmt.Sprintf("%04d-", year)
	var out []Holiday
	for _, h := range c.holidays {
		if strings.HasPrefix(h.Date, prefix) {
			out = append(out, h)
		}
	}
	return out
}

// IsWorkDay reports whether the date is a weekday and not a holiday.
func (c *Calendar) IsWorkDay(d Date) bool {
	return d.IsWeekday() && !c.IsHoliday(d)
}

// WorkDays returns the work days of a month, ascending. This ordering is the
// contract the rotation engine's slot math relies on.
func (c *Calendar) WorkDays(year int, month time.Month) []Date {
	var out []Date
	for _, d := range DaysInMonth(year, month) {
		if c.IsWorkDay(d) {
			out = append(out, d)
		}
	}
	return out
}

// CountWorkDays counts work days in [from, to] inclusive.
func (c *Calendar) CountWorkDays(from, to Date) int {
	count := 0
	for d := from; d.BeforeOrEqual(to); d = d.AddDays(1) {
		if c.IsWorkDay(d) {
			count++
		}
	}
	return count
}
