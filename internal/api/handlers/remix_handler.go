package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nextlogicai/nextlogic-be/internal/ai"
	"github.com/nextlogicai/nextlogic-be/internal/auth"
	"github.com/nextlogicai/nextlogic-be/internal/services"
	"github.com/rs/zerolog/log"
)

// RemixHandler handles AI content-transformation requests.
type RemixHandler struct {
	service services.RemixServiceProvider
}

// NewRemixHandler creates a new RemixHandler.
func NewRemixHandler(service services.RemixServiceProvider) *RemixHandler {
	return &RemixHandler{service: service}
}

// RemixPayload defines the structure for remix requests.
type RemixPayload struct {
	Content      string `json:"content"`
	RemixType    string `json:"remixType"`
	AssignmentID string `json:"assignmentId"`
}

// Remix brokers a transformation request to the upstream AI provider.
func (h *RemixHandler) Remix(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var payload RemixPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.Remix(r.Context(), user, payload.Content, payload.RemixType, payload.AssignmentID)
	if err != nil {
		h.writeRemixError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// writeRemixError maps orchestration failures onto the response contract.
// Upstream detail never reaches the client; it is already logged.
func (h *RemixHandler) writeRemixError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrEmptyContent):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrAIPolicyBlocked):
		writeJSON(w, http.StatusForbidden, map[string]interface{}{
			"error":     err.Error(),
			"aiBlocked": true,
		})
	case errors.Is(err, services.ErrAINotConfigured):
		writeError(w, http.StatusInternalServerError, err.Error())
	case errors.Is(err, ai.ErrTimeout):
		writeError(w, http.StatusGatewayTimeout, "The AI request timed out. Shorten your content and retry.")
	case errors.Is(err, ai.ErrNoCandidates):
		writeError(w, http.StatusInternalServerError, "The AI service returned no response")
	default:
		log.Error().Err(err).Msg("Remix request failed")
		writeError(w, http.StatusInternalServerError, "Failed to generate content")
	}
}
