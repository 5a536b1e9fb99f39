package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"clementus360/focus-agents/agents"
	"clementus360/focus-agents/config"
	"clementus360/focus-agents/middleware"
	"clementus360/focus-agents/types"
)

const internalError = "Internal server error"

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		config.Logger.Errorf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, message, detail string, status int) {
	writeJSON(w, status, types.ErrorResponse{
		Message:   message,
		Error:     detail,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// fail maps err onto a status code. Validation errors carry their own
// message; anything else only exposes its text when exposeErrors is set.
func (h *AgentHandler) fail(w http.ResponseWriter, message string, err error) {
	if errors.Is(err, agents.ErrInvalidRequest) {
		config.Logger.Warnf("%s: %v", message, err)
		writeError(w, err.Error(), "Bad Request", http.StatusBadRequest)
		return
	}

	config.Logger.Errorf("%s: %v", message, err)
	detail := internalError
	if h.exposeErrors {
		detail = err.Error()
	}
	writeError(w, message, detail, http.StatusInternalServerError)
}

func decodeBody(r *http.Request, v any) error {
	if r.Body == nil {
		return fmt.Errorf("%w: request body is required", agents.ErrInvalidRequest)
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid request body: %v", agents.ErrInvalidRequest, err)
	}
	return nil
}

// authorizeUser rejects requests whose authenticated user differs from the
// user they act on. Without auth in front of the handler every user is
// allowed.
func authorizeUser(w http.ResponseWriter, r *http.Request, userID string) bool {
	authUser, ok := middleware.UserIDFromContext(r.Context())
	if !ok || authUser == userID {
		return true
	}
	config.Logger.WithField("user_id", authUser).Warnf("Rejected request for user %s", userID)
	writeError(w, "Forbidden", "token subject does not match userId", http.StatusForbidden)
	return false
}
