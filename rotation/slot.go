/*
slot.go - Pure rotation slot computation

PURPOSE:
  Maps a target date to a rotation slot (person index + shift-day), assuming
  the rotation ran uninterrupted since the configured epoch. No side effects
  and no dependency on the ledger: identical inputs always yield the
  identical slot, which is what lets recomputation reproduce ledgered
  history when the configuration is unchanged.

ALGORITHM:
  workdays  = work days strictly after start and strictly before target
  cycles    = workdays / daysPerGuard
  remainder = workdays % daysPerGuard
  person    = cycles % len(rotationOrder)
  remainder 0 starts a new cycle (DayComplete, rendered as day1);
  remainder r in 1..daysPerGuard-1 is day r+1 of the current block.
*/
package rotation

import "github.com/smartcloud/guard-engine/calendar"

// Slot identifies whose turn it is and which shift-day within that person's
// consecutive block.
type Slot struct {
	PersonIndex int
	DayType     DayType
}

// WorkdaysSinceStart counts work days strictly after start and strictly
// before target. If target is on or before start, the count is 0: the
// rotation begins on the first work day after its epoch.
func WorkdaysSinceStart(cal *calendar.Calendar, start, target calendar.Date) int {
	if target.BeforeOrEqual(start) {
		return 0
	}
	count := 0
	for d := start.AddDays(1); d.Before(target); d = d.AddDays(1) {
		if cal.IsWorkDay(d) {
			count++
		}
	}
	return count
}

// ComputeSlot returns the rotation slot active on target, as if the rotation
// had run uninterrupted since start.
func ComputeSlot(cal *calendar.Calendar, start, target calendar.Date, rotationLen, daysPerGuard int) Slot {
	workdays := WorkdaysSinceStart(cal, start, target)

	cycles := workdays / daysPerGuard
	remainder := workdays % daysPerGuard

	slot := Slot{PersonIndex: cycles % rotationLen}
	if remainder == 0 {
		slot.DayType = DayComplete
	} else {
		slot.DayType = DayN(remainder + 1)
	}
	return slot
}
