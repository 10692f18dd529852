package rotation_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/smartcloud/guard-engine/rotation"
	"github.com/stretchr/testify/assert"
)

// =============================================================================
// COUNTING TESTS
// =============================================================================

func TestCountByPerson(t *testing.T) {
	assignments := []rotation.Assignment{
		assignment("2025-03-03", "a", rotation.Day1),
		assignment("2025-03-04", "a", rotation.Day2),
		assignment("2025-03-05", "b", rotation.Day1),
		assignment("2025-03-06", "b", rotation.Day2),
		assignment("2025-03-07", "a", rotation.Day1),
	}

	counts := rotation.CountByPerson(assignments)
	assert.Len(t, counts, 2)
	assert.Equal(t, rotation.PersonCount{Day1: 2, Day2: 1, Total: 3}, counts["a"])
	assert.Equal(t, rotation.PersonCount{Day1: 1, Day2: 1, Total: 2}, counts["b"])
}

func TestCountByPerson_SkipsUnassignedDays(t *testing.T) {
	assignments := []rotation.Assignment{
		assignment("2025-03-03", "a", rotation.Day1),
		assignment("2025-03-04", "", rotation.Day1),
	}

	counts := rotation.CountByPerson(assignments)
	assert.Len(t, counts, 1)
}

// =============================================================================
// FAIRNESS TESTS
// =============================================================================

func TestFairlyDistributed(t *testing.T) {
	within := []rotation.Assignment{
		assignment("2025-03-03", "a", rotation.Day1),
		assignment("2025-03-04", "a", rotation.Day2),
		assignment("2025-03-05", "a", rotation.Day1),
		assignment("2025-03-06", "b", rotation.Day1),
	}
	assert.True(t, rotation.FairlyDistributed(within), "spread of 2 is within tolerance")

	beyond := append(within, assignment("2025-03-07", "a", rotation.Day2))
	assert.False(t, rotation.FairlyDistributed(beyond), "spread of 3 exceeds tolerance")
}

func TestFairlyDistributed_EmptyMonth(t *testing.T) {
	assert.True(t, rotation.FairlyDistributed(nil))
}

// =============================================================================
// MONTH SUMMARY TESTS
// =============================================================================

func TestComputeMonthStats(t *testing.T) {
	assignments := []rotation.Assignment{
		assignment("2025-03-03", "a", rotation.Day1),
		assignment("2025-03-04", "a", rotation.Day2),
		assignment("2025-03-05", "b", rotation.Day1),
		assignment("2025-03-06", "b", rotation.Day2),
	}

	stats := rotation.ComputeMonthStats(assignments)
	assert.Equal(t, 4, stats.TotalAssignments)
	assert.True(t, stats.Fair)

	// Each member covered exactly half the month.
	fifty := decimal.NewFromInt(50)
	assert.True(t, stats.Shares["a"].Equal(fifty), "got %s", stats.Shares["a"])
	assert.True(t, stats.Shares["b"].Equal(fifty), "got %s", stats.Shares["b"])
}

func TestComputeMonthStats_SharesRounding(t *testing.T) {
	assignments := []rotation.Assignment{
		assignment("2025-03-03", "a", rotation.Day1),
		assignment("2025-03-04", "b", rotation.Day1),
		assignment("2025-03-05", "c", rotation.Day1),
	}

	stats := rotation.ComputeMonthStats(assignments)
	third := decimal.RequireFromString("33.33")
	for id, share := range stats.Shares {
		assert.True(t, share.Equal(third), "member %s got %s", id, share)
	}
}

func TestComputeMonthStats_Empty(t *testing.T) {
	stats := rotation.ComputeMonthStats(nil)
	assert.Zero(t, stats.TotalAssignments)
	assert.Empty(t, stats.Shares)
	assert.True(t, stats.Fair)
}
