package routes

import (
	"net/http"

	"clementus360/focus-agents/handlers"
)

// RegisterAllRoutes registers all application routes
func RegisterAllRoutes(mux *http.ServeMux, h *handlers.AgentHandler) {
	RegisterAgentRoutes(mux, h)
	RegisterInsightRoutes(mux, h)
}
