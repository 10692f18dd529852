/*
assignment.go - The guard assignment record

PURPOSE:
  An Assignment binds one work day to one team member and one shift slot.
  It is the unit the ledger persists, the overlay rewrites, and the API
  serves. The JSON shape matches the persisted read model byte-for-byte so
  ledgers written by earlier deployments stay readable.
*/
package rotation

import "fmt"

// DayType identifies which shift-day of a person's consecutive block an
// assignment covers. Values are "day1", "day2", ... up to the configured
// shift length. DayComplete is an engine-internal slot marker meaning "a new
// cycle starts here"; the generator converts it to Day1 before an Assignment
// is built.
type DayType string

const (
	Day1        DayType = "day1"
	Day2        DayType = "day2"
	DayComplete DayType = "complete"
)

// DayN returns the DayType for the n-th shift-day of a block (1-based).
func DayN(n int) DayType {
	return DayType(fmt.Sprintf("day%d", n))
}

// AssignmentType classifies an assignment. Work-day enumeration already
// excludes weekends and holidays, so every generated baseline entry is
// AssignmentRegular; the other values exist for upstream reclassification.
type AssignmentType string

const (
	AssignmentRegular AssignmentType = "regular"
	AssignmentSpecial AssignmentType = "special"
	AssignmentHoliday AssignmentType = "holiday"
)

// Assignment is one day of guard duty.
//
// Invariant: if IsReplacement is true, OriginalPersonID is set and differs
// from PersonID.
type Assignment struct {
	Date              string         `json:"date"` // canonical YYYY-MM-DD, unique within a month
	PersonID          string         `json:"personId"`
	DayType           DayType        `json:"dayType"`
	Type              AssignmentType `json:"type"`
	IsReplacement     bool           `json:"isReplacement"`
	OriginalPersonID  string         `json:"originalPersonId,omitempty"`
	ReplacementReason string         `json:"replacementReason,omitempty"`
}
