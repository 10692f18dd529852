/*
replacement.go - Time-bounded substitution records

PURPOSE:
  A Replacement substitutes one team member for another over an inclusive
  calendar-date range. Only records with status "active" participate in
  schedule generation; the range is defined over calendar dates, not
  work-day-filtered at definition time.
*/
package roster

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/smartcloud/guard-engine/calendar"
)

// ReplacementStatus gates whether a record participates in generation.
type ReplacementStatus string

const (
	ReplacementActive   ReplacementStatus = "active"
	ReplacementInactive ReplacementStatus = "inactive"
)

// Replacement is a time-bounded substitution of OriginalPersonID by
// ReplacementPersonID over [StartDate, EndDate], inclusive.
type Replacement struct {
	ID                  string            `json:"id"`
	OriginalPersonID    string            `json:"originalPersonId"`
	ReplacementPersonID string            `json:"replacementPersonId"`
	StartDate           string            `json:"startDate"` // canonical YYYY-MM-DD
	EndDate             string            `json:"endDate"`   // canonical YYYY-MM-DD
	Reason              string            `json:"reason"`
	Status              ReplacementStatus `json:"status"`
}

// Contains reports whether a canonical date key falls within the record's
// inclusive range. Canonical keys sort chronologically, so string comparison
// is exact.
func (r Replacement) Contains(dateKey string) bool {
	return dateKey >= r.StartDate && dateKey <= r.EndDate
}

// replacementsFile is the JSON shape of the replacement data source.
type replacementsFile struct {
	Replacements []Replacement `json:"replacements"`
}

// ValidateReplacement checks a single record's shape.
func ValidateReplacement(r Replacement) error {
	if r.ID == "" {
		return fmt.Errorf("missing id")
	}
	if r.OriginalPersonID == "" || r.ReplacementPersonID == "" {
		return fmt.Errorf("replacement %s: missing person id", r.ID)
	}
	if r.OriginalPersonID == r.ReplacementPersonID {
		return fmt.Errorf("replacement %s: original and replacement are the same person", r.ID)
	}
	if _, err := calendar.ParseDate(r.StartDate); err != nil {
		return fmt.Errorf("replacement %s: startDate: %w", r.ID, err)
	}
	if _, err := calendar.ParseDate(r.EndDate); err != nil {
		return fmt.Errorf("replacement %s: endDate: %w", r.ID, err)
	}
	if r.StartDate > r.EndDate {
		return fmt.Errorf("replacement %s: startDate after endDate", r.ID)
	}
	if r.Status != ReplacementActive && r.Status != ReplacementInactive {
		return fmt.Errorf("replacement %s: unknown status %q", r.ID, r.Status)
	}
	return nil
}

// LoadReplacements reads and validates the replacement JSON data source.
func LoadReplacements(path string) ([]Replacement, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read replacements: %w", err)
	}
	var file replacementsFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse replacements: %w", err)
	}
	for _, r := range file.Replacements {
		if err := ValidateReplacement(r); err != nil {
			return nil, err
		}
	}
	return file.Replacements, nil
}

// ActiveReplacements filters to records with status "active".
func ActiveReplacements(rs []Replacement) []Replacement {
	var out []Replacement
	for _, r := range rs {
		if r.Status == ReplacementActive {
			out = append(out, r)
		}
	}
	return out
}
