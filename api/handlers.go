/*
handlers.go - HTTP API handlers for the guard rotation service

PURPOSE:
  Exposes the rotation engine via REST. Handles HTTP request/response, JSON
  serialization, and delegates to the domain packages.

ENDPOINTS:
  Schedule:
    GET    /api/schedule/{year}/{month}        Month schedule (grid + assignments)
    GET    /api/schedule/{year}/{month}/stats  Duty distribution for the month

  Data sources (read-only):
    GET    /api/team                           Team, rotation order, config
    GET    /api/holidays                       Holiday table (?year=&month=)
    GET    /api/replacements                   Replacement records

  Rotation control:
    GET    /api/rotation/stats                 Ledger status
    POST   /api/rotation/sync                  Ledger the current month now
    POST   /api/rotation/reset                 Clear the ledger

ERROR HANDLING:
  - 400: validation errors (bad year/month, empty rotation)
  - 500: internal errors
  Storage failures never surface here; the engine degrades to fresh
  computation and still answers 200.

SEE ALSO:
  - dto.go: response shapes
  - server.go: router and middleware
*/
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/smartcloud/guard-engine/calendar"
	"github.com/smartcloud/guard-engine/roster"
	"github.com/smartcloud/guard-engine/rotation"
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Roster       *roster.Roster
	Calendar     *calendar.Calendar
	Generator    *rotation.Generator
	Control      *rotation.Control
	Replacements []roster.Replacement

	// Now supplies the wall clock for "today" markers. Nil means time.Now.
	Now func() time.Time
}

// NewHandler creates a handler over the wired engine.
func NewHandler(ros *roster.Roster, cal *calendar.Calendar, gen *rotation.Generator, ctrl *rotation.Control, replacements []roster.Replacement) *Handler {
	return &Handler{
		Roster:       ros,
		Calendar:     cal,
		Generator:    gen,
		Control:      ctrl,
		Replacements: replacements,
	}
}

func (h *Handler) today() calendar.Date {
	if h.Now != nil {
		return calendar.DateOf(h.Now())
	}
	return calendar.Today()
}

// =============================================================================
// SCHEDULE HANDLERS
// =============================================================================

// GetSchedule returns the month view: full day grid plus assignments.
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	year, month, ok := h.monthParams(w, r)
	if !ok {
		return
	}

	assignments, err := h.Generator.Generate(r.Context(), year, month)
	if err != nil {
		writeGenerateError(w, err)
		return
	}

	byDate := make(map[string]rotation.Assignment, len(assignments))
	for _, a := range assignments {
		byDate[a.Date] = a
	}

	today := h.today()
	days := calendar.DaysInMonth(year, month)
	cells := make([]DayCellDTO, 0, len(days))
	for _, d := range days {
		cell := DayCellDTO{
			Date:      d.Key(),
			Weekday:   d.Weekday().String(),
			IsWeekend: d.IsWeekend(),
			IsToday:   d.Equal(today),
			IsWorkDay: h.Calendar.IsWorkDay(d),
		}
		if hol, ok := h.Calendar.Holiday(d); ok {
			cell.IsHoliday = true
			cell.HolidayName = hol.Name
			cell.HolidayIcon = hol.Icon
		}
		if a, ok := byDate[d.Key()]; ok {
			dto := h.assignmentDTO(a)
			cell.Assignment = &dto
		}
		cells = append(cells, cell)
	}

	dtos := make([]AssignmentDTO, len(assignments))
	for i, a := range assignments {
		dtos[i] = h.assignmentDTO(a)
	}

	writeJSON(w, http.StatusOK, ScheduleResponse{
		Year:        year,
		Month:       int(month),
		LeadingGap:  calendar.FirstWeekdayOffset(year, month),
		Days:        cells,
		Assignments: dtos,
	})
}

// GetScheduleStats returns the month's duty distribution.
func (h *Handler) GetScheduleStats(w http.ResponseWriter, r *http.Request) {
	year, month, ok := h.monthParams(w, r)
	if !ok {
		return
	}

	assignments, err := h.Generator.Generate(r.Context(), year, month)
	if err != nil {
		writeGenerateError(w, err)
		return
	}

	stats := rotation.ComputeMonthStats(assignments)
	shares := make(map[string]string, len(stats.Shares))
	for id, share := range stats.Shares {
		shares[id] = share.StringFixed(2)
	}

	writeJSON(w, http.StatusOK, MonthStatsDTO{
		Counts:           stats.Counts,
		Shares:           shares,
		TotalAssignments: stats.TotalAssignments,
		Fair:             stats.Fair,
	})
}

// =============================================================================
// DATA SOURCE HANDLERS
// =============================================================================

// GetTeam returns the team directory and rotation configuration.
func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, TeamResponse{
		Team:          h.Roster.Members(),
		RotationOrder: h.Roster.RotationOrder(),
		Config:        h.Roster.Config(),
	})
}

// ListHolidays returns the holiday table, optionally filtered by year and
// month query parameters.
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	holidays := h.Calendar.Holidays()

	if y := r.URL.Query().Get("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid year", err)
			return
		}
		if m := r.URL.Query().Get("month"); m != "" {
			month, err := strconv.Atoi(m)
			if err != nil || month < 1 || month > 12 {
				writeError(w, http.StatusBadRequest, "invalid month", err)
				return
			}
			holidays = h.Calendar.InMonth(year, time.Month(month))
		} else {
			holidays = h.Calendar.InYear(year)
		}
	}

	writeJSON(w, http.StatusOK, HolidaysResponse{Holidays: holidays})
}

// ListReplacements returns the replacement records.
func (h *Handler) ListReplacements(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ReplacementsResponse{Replacements: h.Replacements})
}

// =============================================================================
// ROTATION CONTROL HANDLERS
// =============================================================================

// GetRotationStats returns the ledger status.
func (h *Handler) GetRotationStats(w http.ResponseWriter, r *http.Request) {
	stats := h.Control.Stats(r.Context())

	dto := RotationStatsDTO{
		HasHistorical: stats.HasHistorical,
		TotalDays:     stats.TotalDays,
		ConfigChanged: stats.ConfigChanged,
	}
	if !stats.LastSync.IsZero() {
		s := stats.LastSync.Format(time.RFC3339)
		dto.LastSync = &s
	}
	writeJSON(w, http.StatusOK, dto)
}

// SyncNow ledgers the current month's elapsed days on demand.
func (h *Handler) SyncNow(w http.ResponseWriter, r *http.Request) {
	added, err := h.Generator.Sync(r.Context())
	if err != nil {
		writeGenerateError(w, err)
		return
	}
	if added > 0 {
		h.Control.Invalidate()
	}
	writeJSON(w, http.StatusOK, SyncResponse{LedgeredDays: added})
}

// ResetRotation clears the ledger; subscribers are notified synchronously.
func (h *Handler) ResetRotation(w http.ResponseWriter, r *http.Request) {
	if err := h.Control.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to clear rotation state", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"cleared": true})
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) monthParams(w http.ResponseWriter, r *http.Request) (int, time.Month, bool) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid year", err)
		return 0, 0, false
	}
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid month", err)
		return 0, 0, false
	}
	return year, time.Month(month), true
}

func (h *Handler) assignmentDTO(a rotation.Assignment) AssignmentDTO {
	dto := AssignmentDTO{
		Date:              a.Date,
		PersonID:          a.PersonID,
		DayType:           string(a.DayType),
		Type:              string(a.Type),
		IsReplacement:     a.IsReplacement,
		OriginalPersonID:  a.OriginalPersonID,
		ReplacementReason: a.ReplacementReason,
	}
	if m, ok := h.Roster.Member(a.PersonID); ok {
		dto.PersonName = m.Name
	}
	return dto
}

func writeGenerateError(w http.ResponseWriter, err error) {
	if rotation.IsValidationError(err) {
		writeError(w, http.StatusBadRequest, "invalid schedule request", err)
		return
	}
	writeError(w, http.StatusInternalServerError, "schedule generation failed", err)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string, err error) {
	body := ErrorDTO{Error: msg}
	if err != nil {
		body.Detail = err.Error()
	}
	writeJSON(w, status, body)
}
