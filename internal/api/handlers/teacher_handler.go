package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nextlogicai/nextlogic-be/internal/ledger"
	"github.com/nextlogicai/nextlogic-be/internal/services"
	"github.com/nextlogicai/nextlogic-be/internal/store"
	"github.com/rs/zerolog/log"
)

// historyLimit bounds the per-student history view.
const historyLimit = 50

// TeacherHandler serves the teacher monitoring endpoints. Role gating
// happens in the router; every request here is already an admin.
type TeacherHandler struct {
	monitor  services.MonitorServiceProvider
	users    services.UserServiceProvider
	usageLog *ledger.Ledger
}

// NewTeacherHandler creates a new TeacherHandler.
func NewTeacherHandler(monitor services.MonitorServiceProvider, users services.UserServiceProvider, usageLog *ledger.Ledger) *TeacherHandler {
	return &TeacherHandler{monitor: monitor, users: users, usageLog: usageLog}
}

// Activity returns per-student summaries plus class-wide totals, computed
// fresh on every request.
func (h *TeacherHandler) Activity(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.monitor.Snapshot()
	if err != nil {
		log.Error().Err(err).Msg("Failed to compute activity snapshot")
		writeError(w, http.StatusInternalServerError, "Failed to retrieve activity")
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

// Students returns the per-student summaries.
func (h *TeacherHandler) Students(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.monitor.StudentSummaries()
	if err != nil {
		log.Error().Err(err).Msg("Failed to compute student summaries")
		writeError(w, http.StatusInternalServerError, "Failed to retrieve students")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"students": summaries})
}

// historyEntry is the teacher-facing view of one usage log entry.
type historyEntry struct {
	RemixType      string    `json:"remixType"`
	Timestamp      time.Time `json:"timestamp"`
	ContentPreview string    `json:"contentPreview"`
}

// StudentHistory returns the recent remix history for one student.
func (h *TeacherHandler) StudentHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	student, err := h.users.GetUserByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Student not found")
			return
		}
		log.Error().Err(err).Str("student_id", id).Msg("Failed to load student")
		writeError(w, http.StatusInternalServerError, "Failed to retrieve history")
		return
	}

	entries := h.usageLog.EntriesForUser(id, historyLimit)
	history := make([]historyEntry, 0, len(entries))
	for _, entry := range entries {
		history = append(history, historyEntry{
			RemixType:      entry.RemixType,
			Timestamp:      entry.Timestamp,
			ContentPreview: entry.ContentPreview,
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"studentName": student.Name,
		"history":     history,
	})
}
