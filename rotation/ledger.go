/*
ledger.go - Persisted, append-only record of elapsed assignments

PURPOSE:
  The Ledger is the immutable ground truth for rotation history. Once a date
  strictly before "today" has an entry, that entry never changes, even if
  the rotation configuration changes later. Future dates are never ledgered;
  they are recomputed from the epoch on every generation.

CRITICAL INVARIANTS:
  1. PAST-ONLY: entries are written only for dates strictly before the
     wall-clock date at write time.
  2. FIRST-WRITE-WINS: an existing entry is never overwritten.
  3. IDEMPOTENT: upserting the same batch twice changes nothing after the
     first call; a batch contributing zero new past entries writes nothing.

FAILURE SEMANTICS:
  Any storage read/write/parse failure is logged and treated as "no
  historical data" / silent no-op. The system stays usable with storage
  disabled or corrupted - everything is recomputed fresh from the epoch.

STORAGE CONTRACT:
  Two fixed keys in a device-scoped key-value store: one holds the
  JSON-serialized State, the other just the configuration fingerprint for
  fast change detection without deserializing the full ledger.

SEE ALSO:
  - fingerprint.go: the change-detection hash
  - store/memory.go, store/sqlite: StateStore implementations
*/
package rotation

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/smartcloud/guard-engine/calendar"
)

// Fixed storage keys. StateKey holds the serialized State, FingerprintKey
// the last-written configuration fingerprint.
const (
	StateKey       = "guard-rotation-state"
	FingerprintKey = "guard-rotation-config-hash"
)

// StateStore is the key-value contract the ledger persists through.
type StateStore interface {
	// Get returns the value for key, and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Put writes the value for key, creating or replacing it.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// State is the persisted ledger document.
type State struct {
	ConfigFingerprint     string                `json:"configFingerprint"`
	LastSync              time.Time             `json:"lastSyncTimestamp"`
	HistoricalAssignments map[string]Assignment `json:"historicalAssignments"`
	TotalHistoricalDays   int                   `json:"totalHistoricalDays"`
}

// emptyState is the sentinel for "never initialized or unreadable".
func emptyState() State {
	return State{HistoricalAssignments: make(map[string]Assignment)}
}

// Stats summarizes the ledger without exposing its entries.
type Stats struct {
	HasHistorical bool
	TotalDays     int
	LastSync      time.Time // zero means never synced
	ConfigChanged bool
}

// =============================================================================
// LEDGER
// =============================================================================

// Ledger owns the persisted assignment history.
type Ledger struct {
	store       StateStore
	fingerprint func() string

	// Now supplies the wall clock for the past/future boundary. Nil means
	// time.Now. Tests pin it.
	Now func() time.Time
}

// NewLedger wires a ledger to its store and configuration fingerprint.
func NewLedger(store StateStore, fingerprint func() string) *Ledger {
	return &Ledger{store: store, fingerprint: fingerprint}
}

func (l *Ledger) today() calendar.Date {
	now := time.Now
	if l.Now != nil {
		now = l.Now
	}
	return calendar.DateOf(now())
}

// Load returns the persisted state, or the empty state if never initialized
// or unreadable. Corrupt storage is logged, never fatal.
func (l *Ledger) Load(ctx context.Context) State {
	raw, ok, err := l.store.Get(ctx, StateKey)
	if err != nil {
		log.Printf("rotation: ledger read failed, treating as empty: %v", err)
		return emptyState()
	}
	if !ok {
		return emptyState()
	}

	var state State
	if err := json.Unmarshal(raw, &state); err != nil {
		log.Printf("rotation: ledger corrupt, treating as empty: %v", err)
		return emptyState()
	}
	if state.HistoricalAssignments == nil {
		state.HistoricalAssignments = make(map[string]Assignment)
	}
	return state
}

// Lookup returns the historical assignment for a canonical date key.
func (l *Ledger) Lookup(ctx context.Context, dateKey string) (Assignment, bool) {
	state := l.Load(ctx)
	a, ok := state.HistoricalAssignments[dateKey]
	return a, ok
}

// UpsertBatch inserts every assignment dated strictly before today that the
// ledger does not already hold. Existing entries are never overwritten.
// Returns the number of newly ledgered days; zero means nothing was written.
func (l *Ledger) UpsertBatch(ctx context.Context, assignments []Assignment) int {
	todayKey := l.today().Key()
	state := l.Load(ctx)

	added := 0
	for _, a := range assignments {
		// Canonical keys sort chronologically.
		if a.Date >= todayKey {
			continue
		}
		if _, exists := state.HistoricalAssignments[a.Date]; exists {
			continue
		}
		state.HistoricalAssignments[a.Date] = a
		added++
	}

	if added == 0 {
		return 0
	}

	state.TotalHistoricalDays = len(state.HistoricalAssignments)
	state.LastSync = nowOf(l.Now)
	state.ConfigFingerprint = l.fingerprint()
	l.persist(ctx, state)
	return added
}

func (l *Ledger) persist(ctx context.Context, state State) {
	raw, err := json.Marshal(state)
	if err != nil {
		log.Printf("rotation: ledger marshal failed, skipping write: %v", err)
		return
	}
	if err := l.store.Put(ctx, StateKey, raw); err != nil {
		log.Printf("rotation: ledger write failed, skipping: %v", err)
		return
	}
	if err := l.store.Put(ctx, FingerprintKey, []byte(state.ConfigFingerprint)); err != nil {
		log.Printf("rotation: fingerprint write failed: %v", err)
	}
}

// Clear deletes the entire ledger and its fingerprint record, forgetting all
// history. The next generation recomputes everything from the epoch.
func (l *Ledger) Clear(ctx context.Context) error {
	if err := l.store.Delete(ctx, StateKey); err != nil {
		return err
	}
	return l.store.Delete(ctx, FingerprintKey)
}

// ConfigChanged compares the stored fingerprint against the current one. A
// mismatch signals stale history without invalidating it.
func (l *Ledger) ConfigChanged(ctx context.Context) bool {
	raw, ok, err := l.store.Get(ctx, FingerprintKey)
	if err != nil || !ok {
		return false
	}
	return string(raw) != l.fingerprint()
}

// LedgerStats summarizes the persisted history.
func (l *Ledger) LedgerStats(ctx context.Context) Stats {
	state := l.Load(ctx)
	total := len(state.HistoricalAssignments)
	if total == 0 {
		return Stats{}
	}
	return Stats{
		HasHistorical: true,
		TotalDays:     total,
		LastSync:      state.LastSync,
		ConfigChanged: l.ConfigChanged(ctx),
	}
}

func nowOf(now func() time.Time) time.Time {
	if now != nil {
		return now()
	}
	return time.Now()
}
