/*
Package roster provides the team directory and rotation configuration.

PURPOSE:
  Read-only lookup of team members, the configured cyclic rotation order,
  and the shift-length parameters. Loaded once from the team JSON source,
  validated at load time, and immutable for the process lifetime.

VALIDATION:
  The JSON sources are duck-typed external inputs in the original system.
  Here they are explicit schemas rejected loudly on shape mismatch: every
  rotation-order id must name a team member, ids must be cycle-unique, the
  shift length must be positive, and the rotation epoch must parse.

SEE ALSO:
  - replacement.go: the time-bounded substitution records
  - rotation package: consumes Config for slot computation
*/
package roster

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/smartcloud/guard-engine/calendar"
)

// TeamMember is one member of the fixed on-call team. Identified by a stable
// short code.
type TeamMember struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Initials string `json:"initials"`
	Color    string `json:"color"`
}

// Config holds the rotation parameters. StartDate is the fixed epoch the
// slot math derives from; changing it re-derives future assignments but
// never touches ledgered history.
type Config struct {
	DaysPerGuard int    `json:"daysPerGuard"`
	WorkDaysOnly bool   `json:"workDaysOnly"`
	StartDate    string `json:"startDate"` // canonical YYYY-MM-DD
}

// teamFile is the JSON shape of the team data source.
type teamFile struct {
	Team          []TeamMember `json:"team"`
	RotationOrder []string     `json:"rotationOrder"`
	Config        Config       `json:"config"`
}

// =============================================================================
// ROSTER
// =============================================================================

// Roster is the validated, immutable team directory.
type Roster struct {
	team  []TeamMember
	order []string
	cfg   Config
	byID  map[string]TeamMember
	start calendar.Date
}

// New validates the team table and rotation configuration.
func New(team []TeamMember, rotationOrder []string, cfg Config) (*Roster, error) {
	if len(team) == 0 {
		return nil, fmt.Errorf("team table is empty")
	}
	byID := make(map[string]TeamMember, len(team))
	for i, m := range team {
		if m.ID == "" {
			return nil, fmt.Errorf("team member %d: missing id", i)
		}
		if m.Name == "" {
			return nil, fmt.Errorf("team member %q: missing name", m.ID)
		}
		if _, dup := byID[m.ID]; dup {
			return nil, fmt.Errorf("team member %q: duplicate id", m.ID)
		}
		byID[m.ID] = m
	}

	seen := make(map[string]bool, len(rotationOrder))
	for i, id := range rotationOrder {
		if _, ok := byID[id]; !ok {
			return nil, fmt.Errorf("rotationOrder[%d]: unknown member %q", i, id)
		}
		if seen[id] {
			return nil, fmt.Errorf("rotationOrder[%d]: member %q appears twice in cycle", i, id)
		}
		seen[id] = true
	}

	if cfg.DaysPerGuard < 1 {
		return nil, fmt.Errorf("daysPerGuard must be positive, got %d", cfg.DaysPerGuard)
	}
	start, err := calendar.ParseDate(cfg.StartDate)
	if err != nil {
		return nil, fmt.Errorf("startDate: %w", err)
	}

	return &Roster{team: team, order: rotationOrder, cfg: cfg, byID: byID, start: start}, nil
}

// Load reads and validates the team JSON data source.
func Load(path string) (*Roster, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read team data: %w", err)
	}
	var file teamFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse team data: %w", err)
	}
	return New(file.Team, file.RotationOrder, file.Config)
}

// Members returns the full team table in source order.
func (r *Roster) Members() []TeamMember { return r.team }

// Member looks up a team member by id.
func (r *Roster) Member(id string) (TeamMember, bool) {
	m, ok := r.byID[id]
	return m, ok
}

// RotationOrder returns the cyclic sequence of member ids.
func (r *Roster) RotationOrder() []string { return r.order }

// Config returns the rotation parameters.
func (r *Roster) Config() Config { return r.cfg }

// StartDate returns the parsed rotation epoch.
func (r *Roster) StartDate() calendar.Date { return r.start }

// Next returns the member after the given one in the rotation cycle.
func (r *Roster) Next(id string) (string, bool) {
	i := r.indexOf(id)
	if i < 0 {
		return "", false
	}
	return r.order[(i+1)%len(r.order)], true
}

// Previous returns the member before the given one in the rotation cycle.
func (r *Roster) Previous(id string) (string, bool) {
	i := r.indexOf(id)
	if i < 0 {
		return "", false
	}
	return r.order[(i-1+len(r.order))%len(r.order)], true
}

func (r *Roster) indexOf(id string) int {
	for i, v := range r.order {
		if v == id {
			return i
		}
	}
	return -1
}
