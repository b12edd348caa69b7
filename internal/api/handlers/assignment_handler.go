package handlers

import (
	"net/http"

	"github.com/nextlogicai/nextlogic-be/internal/auth"
	"github.com/nextlogicai/nextlogic-be/internal/services"
)

// AssignmentHandler serves the static assignment list.
type AssignmentHandler struct {
	service services.AssignmentServiceProvider
}

// NewAssignmentHandler creates a new AssignmentHandler.
func NewAssignmentHandler(service services.AssignmentServiceProvider) *AssignmentHandler {
	return &AssignmentHandler{service: service}
}

// List returns the assignments visible to the authenticated user. Admins
// get an empty list.
func (h *AssignmentHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"assignments": h.service.ListForRole(user.Role),
	})
}
