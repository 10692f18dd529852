/*
stats.go - Month distribution statistics

PURPOSE:
  Per-person counts over a generated month and the fairness check on them.
  Shares are exact decimals, not floats, so reported percentages always sum
  cleanly.
*/
package rotation

import "github.com/shopspring/decimal"

// FairnessTolerance is the largest allowed spread between the most and least
// assigned member for a distribution to count as fair.
const FairnessTolerance = 2

var hundred = decimal.NewFromInt(100)

// PersonCount tallies one member's assignments within a month.
type PersonCount struct {
	Day1  int `json:"day1"`
	Day2  int `json:"day2"`
	Total int `json:"total"`
}

// MonthStats summarizes how a month's duty was distributed.
type MonthStats struct {
	Counts           map[string]PersonCount     `json:"counts"`
	Shares           map[string]decimal.Decimal `json:"shares"` // percent of the month's days
	TotalAssignments int                        `json:"totalAssignments"`
	Fair             bool                       `json:"fair"`
}

// CountByPerson tallies day1/day2/total per assigned member.
func CountByPerson(assignments []Assignment) map[string]PersonCount {
	counts := make(map[string]PersonCount)
	for _, a := range assignments {
		if a.PersonID == "" {
			continue
		}
		c := counts[a.PersonID]
		if a.DayType == Day1 {
			c.Day1++
		} else {
			c.Day2++
		}
		c.Total++
		counts[a.PersonID] = c
	}
	return counts
}

// FairlyDistributed reports whether the spread between the most and least
// assigned member is within FairnessTolerance. An empty month is fair.
func FairlyDistributed(assignments []Assignment) bool {
	counts := CountByPerson(assignments)
	if len(counts) == 0 {
		return true
	}

	first := true
	var min, max int
	for _, c := range counts {
		if first {
			min, max = c.Total, c.Total
			first = false
			continue
		}
		if c.Total < min {
			min = c.Total
		}
		if c.Total > max {
			max = c.Total
		}
	}
	return max-min <= FairnessTolerance
}

// ComputeMonthStats builds the full distribution summary for a month.
func ComputeMonthStats(assignments []Assignment) MonthStats {
	counts := CountByPerson(assignments)

	total := 0
	for _, c := range counts {
		total += c.Total
	}

	shares := make(map[string]decimal.Decimal, len(counts))
	if total > 0 {
		totalDec := decimal.NewFromInt(int64(total))
		for id, c := range counts {
			shares[id] = decimal.NewFromInt(int64(c.Total)).Mul(hundred).DivRound(totalDec, 2)
		}
	}

	return MonthStats{
		Counts:           counts,
		Shares:           shares,
		TotalAssignments: total,
		Fair:             FairlyDistributed(assignments),
	}
}
