/*
generator.go - Month schedule orchestration

PURPOSE:
  Produces the final ordered assignment list for one (year, month): walks
  the month's work days, resolves each day from the ledger (past days with
  history) or the pure slot computation (everything else), persists newly
  elapsed days back into the ledger, and applies the replacement overlay.

STATE MACHINE (per date):
  NoData -> Historical   ledger hit on a past date
  NoData -> Computed     ledger miss, or date >= today
  either -> Replaced     an active replacement covers person and date

  Whatever state a date ends the call in is what Generate returns for it.

CONTRACT:
  - Validation failures abort immediately with *ValidationError; no partial
    result, no silent defaults.
  - A month with zero work days returns an empty list, not an error.
  - The ledger upsert is idempotent, so rapid repeated generation of the
    same month is safe.
*/
package rotation

import (
	"context"
	"fmt"
	"time"

	"github.com/smartcloud/guard-engine/calendar"
	"github.com/smartcloud/guard-engine/roster"
)

// Validated bounds for schedule generation.
const (
	MinYear = 1900
	MaxYear = 2100
)

// Generator orchestrates calendar geometry, the slot engine, the ledger and
// the replacement overlay. It owns no persisted state itself.
type Generator struct {
	Roster       *roster.Roster
	Calendar     *calendar.Calendar
	Ledger       *Ledger
	Replacements []roster.Replacement

	// Now supplies the wall clock for the past/future boundary. Nil means
	// time.Now. Keep it aligned with the ledger's clock.
	Now func() time.Time
}

// NewGenerator wires a generator to its collaborators.
func NewGenerator(ros *roster.Roster, cal *calendar.Calendar, ledger *Ledger, replacements []roster.Replacement) *Generator {
	return &Generator{Roster: ros, Calendar: cal, Ledger: ledger, Replacements: replacements}
}

// ValidateMonthYear checks the generation bounds shared by Generate and the
// API layer.
func ValidateMonthYear(year int, month time.Month) error {
	if year < MinYear || year > MaxYear {
		return &ValidationError{
			Arg:    "year",
			Reason: fmt.Sprintf("%d is outside [%d, %d]", year, MinYear, MaxYear),
			Err:    ErrInvalidYear,
		}
	}
	if month < time.January || month > time.December {
		return &ValidationError{
			Arg:    "month",
			Reason: fmt.Sprintf("%d is outside [1, 12]", int(month)),
			Err:    ErrInvalidMonth,
		}
	}
	return nil
}

// Generate returns the finished, ordered assignment list for a month.
func (g *Generator) Generate(ctx context.Context, year int, month time.Month) ([]Assignment, error) {
	if err := ValidateMonthYear(year, month); err != nil {
		return nil, err
	}
	order := g.Roster.RotationOrder()
	if len(order) == 0 {
		return nil, &ValidationError{
			Arg:    "rotationOrder",
			Reason: "rotation needs at least one member",
			Err:    ErrEmptyRotationOrder,
		}
	}

	workDays := g.Calendar.WorkDays(year, month)
	if len(workDays) == 0 {
		return []Assignment{}, nil
	}

	assignments := g.resolveDays(ctx, workDays, order)

	// Side effect on every invocation; the ledger filters to past dates and
	// first-write-wins makes re-runs no-ops.
	g.Ledger.UpsertBatch(ctx, assignments)

	if len(g.Replacements) == 0 {
		return assignments, nil
	}

	lookup := BuildLookup(g.Replacements, workDays)
	return ApplyReplacements(assignments, lookup), nil
}

// Sync ledgers the current month's elapsed days without producing a view:
// the server-side analog of the original client persisting history on every
// render. Returns how many days were newly ledgered.
func (g *Generator) Sync(ctx context.Context) (int, error) {
	order := g.Roster.RotationOrder()
	if len(order) == 0 {
		return 0, &ValidationError{
			Arg:    "rotationOrder",
			Reason: "rotation needs at least one member",
			Err:    ErrEmptyRotationOrder,
		}
	}

	now := nowOf(g.Now)
	workDays := g.Calendar.WorkDays(now.Year(), now.Month())
	if len(workDays) == 0 {
		return 0, nil
	}

	assignments := g.resolveDays(ctx, workDays, order)
	return g.Ledger.UpsertBatch(ctx, assignments), nil
}

func (g *Generator) resolveDays(ctx context.Context, workDays []calendar.Date, order []string) []Assignment {
	today := calendar.DateOf(nowOf(g.Now))
	cfg := g.Roster.Config()
	start := g.Roster.StartDate()

	assignments := make([]Assignment, 0, len(workDays))
	for _, day := range workDays {
		// Elapsed days with history are immutable ground truth.
		if day.Before(today) {
			if historical, ok := g.Ledger.Lookup(ctx, day.Key()); ok {
				assignments = append(assignments, historical)
				continue
			}
		}

		slot := ComputeSlot(g.Calendar, start, day, len(order), cfg.DaysPerGuard)

		dayType := slot.DayType
		if dayType == DayComplete {
			// A completed cycle means this day starts the next block.
			dayType = Day1
		}

		assignments = append(assignments, Assignment{
			Date:     day.Key(),
			PersonID: order[slot.PersonIndex],
			DayType:  dayType,
			Type:     AssignmentRegular,
		})
	}
	return assignments
}
