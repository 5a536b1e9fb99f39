package routes

import (
	"net/http"

	"clementus360/focus-agents/handlers"
)

// RegisterInsightRoutes registers the observer and its per-user endpoints
func RegisterInsightRoutes(mux *http.ServeMux, h *handlers.AgentHandler) {
	mux.HandleFunc("POST /api/agents/observer", h.Observer)

	mux.HandleFunc("GET /api/agents/{userId}/patterns", h.Patterns)
	mux.HandleFunc("GET /api/agents/{userId}/recommendations", h.Recommendations)

	// Feedback
	mux.HandleFunc("POST /api/agents/{userId}/feedback", h.Feedback)
	mux.HandleFunc("POST /api/agents/{userId}/session-feedback", h.SessionFeedback)
}
