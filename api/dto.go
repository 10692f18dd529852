/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for API communication, decoupling the internal domain
  model from the external contract. DTOs are pure data carriers; validation
  happens in handlers.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Response: Complex response wrappers

SEE ALSO:
  - handlers.go: builds these from domain values
*/
package api

import (
	"github.com/smartcloud/guard-engine/calendar"
	"github.com/smartcloud/guard-engine/roster"
	"github.com/smartcloud/guard-engine/rotation"
)

// AssignmentDTO is one day of guard duty, enriched with the member's display
// name for rendering.
type AssignmentDTO struct {
	Date              string `json:"date"`
	PersonID          string `json:"personId"`
	PersonName        string `json:"personName,omitempty"`
	DayType           string `json:"dayType"`
	Type              string `json:"type"`
	IsReplacement     bool   `json:"isReplacement"`
	OriginalPersonID  string `json:"originalPersonId,omitempty"`
	ReplacementReason string `json:"replacementReason,omitempty"`
}

// DayCellDTO is one cell of the month grid: every calendar day, not just
// work days, so the rendering layer can draw weekends and holidays.
type DayCellDTO struct {
	Date        string         `json:"date"`
	Weekday     string         `json:"weekday"`
	IsWeekend   bool           `json:"isWeekend"`
	IsHoliday   bool           `json:"isHoliday"`
	HolidayName string         `json:"holidayName,omitempty"`
	HolidayIcon string         `json:"holidayIcon,omitempty"`
	IsToday     bool           `json:"isToday"`
	IsWorkDay   bool           `json:"isWorkDay"`
	Assignment  *AssignmentDTO `json:"assignment,omitempty"`
}

// ScheduleResponse is the month view: the grid plus the flat assignment
// list.
type ScheduleResponse struct {
	Year        int             `json:"year"`
	Month       int             `json:"month"`
	LeadingGap  int             `json:"leadingGap"` // empty cells before day 1 in a Sunday-first grid
	Days        []DayCellDTO    `json:"days"`
	Assignments []AssignmentDTO `json:"assignments"`
}

// TeamResponse mirrors the team data source.
type TeamResponse struct {
	Team          []roster.TeamMember `json:"team"`
	RotationOrder []string            `json:"rotationOrder"`
	Config        roster.Config       `json:"config"`
}

// HolidaysResponse wraps the holiday table.
type HolidaysResponse struct {
	Holidays []calendar.Holiday `json:"holidays"`
}

// ReplacementsResponse wraps the replacement records.
type ReplacementsResponse struct {
	Replacements []roster.Replacement `json:"replacements"`
}

// RotationStatsDTO reports the ledger status.
type RotationStatsDTO struct {
	HasHistorical bool    `json:"hasHistorical"`
	TotalDays     int     `json:"totalDays"`
	LastSync      *string `json:"lastSync"` // RFC3339, null when never synced
	ConfigChanged bool    `json:"configChanged"`
}

// MonthStatsDTO reports the month's duty distribution. Shares are decimal
// percentages rendered as strings.
type MonthStatsDTO struct {
	Counts           map[string]rotation.PersonCount `json:"counts"`
	Shares           map[string]string               `json:"shares"`
	TotalAssignments int                             `json:"totalAssignments"`
	Fair             bool                            `json:"fair"`
}

// SyncResponse reports the outcome of a manual ledger sync.
type SyncResponse struct {
	LedgeredDays int `json:"ledgeredDays"`
}

// ErrorDTO is the uniform error body.
type ErrorDTO struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}
