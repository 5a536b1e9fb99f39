package routes

import (
	"net/http"

	"clementus360/focus-agents/handlers"
)

// RegisterAgentRoutes registers the motivator, planner and blocker agents
func RegisterAgentRoutes(mux *http.ServeMux, h *handlers.AgentHandler) {
	mux.HandleFunc("POST /api/agents/motivator", h.Motivator)
	mux.HandleFunc("POST /api/agents/planner", h.Planner)

	// Blocker configuration and activation
	mux.HandleFunc("POST /api/agents/blocker", h.Blocker)
	mux.HandleFunc("POST /api/agents/blocker/activate", h.ActivateBlocking)

	mux.HandleFunc("POST /api/agents/health", h.Health)
}
