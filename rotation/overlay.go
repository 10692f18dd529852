/*
overlay.go - Replacement substitution over a generated schedule

PURPOSE:
  Builds an O(1) lookup from active replacement records and rewrites
  qualifying assignments: the replaced person keeps authorship as
  OriginalPersonID, the replacing person takes over PersonID. Assignments
  with no matching replacement pass through untouched.

COMPLEXITY:
  BuildLookup is O(replacements x work days); ApplyReplacements is O(1) per
  assignment. Team and month sizes keep both trivial.
*/
package rotation

import (
	"github.com/smartcloud/guard-engine/calendar"
	"github.com/smartcloud/guard-engine/roster"
)

type overlayKey struct {
	personID string
	dateKey  string
}

// ReplacementLookup maps (original person, date) to the replacement covering
// that day.
type ReplacementLookup map[overlayKey]roster.Replacement

// BuildLookup registers every active replacement against each work day its
// inclusive range covers. When two active replacements cover the same person
// and date, the later record in the input wins; the precedence is insertion
// order, documented here so callers can order inputs deliberately.
func BuildLookup(replacements []roster.Replacement, workDays []calendar.Date) ReplacementLookup {
	lookup := make(ReplacementLookup)

	for _, rep := range roster.ActiveReplacements(replacements) {
		for _, day := range workDays {
			key := day.Key()
			if rep.Contains(key) {
				lookup[overlayKey{personID: rep.OriginalPersonID, dateKey: key}] = rep
			}
		}
	}
	return lookup
}

// ApplyReplacements returns a new assignment list with the lookup applied.
// The input is not mutated.
func ApplyReplacements(assignments []Assignment, lookup ReplacementLookup) []Assignment {
	out := make([]Assignment, len(assignments))
	for i, a := range assignments {
		if a.PersonID == "" {
			out[i] = a
			continue
		}

		rep, ok := lookup[overlayKey{personID: a.PersonID, dateKey: a.Date}]
		if !ok {
			out[i] = a
			continue
		}

		replaced := a
		replaced.OriginalPersonID = a.PersonID
		replaced.PersonID = rep.ReplacementPersonID
		replaced.IsReplacement = true
		replaced.ReplacementReason = rep.Reason
		out[i] = replaced
	}
	return out
}
