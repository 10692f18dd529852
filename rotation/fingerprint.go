/*
fingerprint.go - Configuration change detection

PURPOSE:
  Computes a deterministic fingerprint over everything the schedule depends
  on: the rotation epoch, shift length, work-day flag, rotation order, team
  table, replacement table, and holiday table. The ledger stores the
  fingerprint at write time; a mismatch on read signals that stored history
  was produced under a different configuration, without invalidating it.
*/
package rotation

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/smartcloud/guard-engine/calendar"
	"github.com/smartcloud/guard-engine/roster"
)

// Fingerprint returns a stable hash of the full schedule configuration.
// Sensitive to every input; insensitive to nothing.
func Fingerprint(ros *roster.Roster, replacements []roster.Replacement, holidays []calendar.Holiday) string {
	cfg := ros.Config()

	teamJSON, _ := json.Marshal(ros.Members())
	replacementsJSON, _ := json.Marshal(replacements)
	holidaysJSON, _ := json.Marshal(holidays)

	parts := []string{
		cfg.StartDate,
		strconv.Itoa(cfg.DaysPerGuard),
		strconv.FormatBool(cfg.WorkDaysOnly),
		strings.Join(ros.RotationOrder(), ","),
		string(teamJSON),
		string(replacementsJSON),
		string(holidaysJSON),
	}

	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}

// FingerprintFunc adapts Fingerprint to the closure shape the ledger takes,
// binding the loaded data sources once at startup.
func FingerprintFunc(ros *roster.Roster, replacements []roster.Replacement, cal *calendar.Calendar) func() string {
	return func() string {
		return Fingerprint(ros, replacements, cal.Holidays())
	}
}
