package handlers

import (
	"context"
	"net/http"
	"strconv"

	"clementus360/focus-agents/config"
	"clementus360/focus-agents/types"

	"github.com/sirupsen/logrus"
)

// AgentService is what the HTTP layer needs from agents.Service.
type AgentService interface {
	GetMotivation(ctx context.Context, req types.MotivationRequest) (types.MotivationResponse, error)
	GetPlan(ctx context.Context, req types.PlanRequest) (types.PlanResponse, error)
	ActivateBlocker(ctx context.Context, req types.BlockerRequest) (types.BlockerConfig, error)
	ActivateBlocking(ctx context.Context, cfg types.BlockerConfig) types.ActivationResult
	GetInsights(ctx context.Context, req types.InsightRequest, refresh bool) (types.Insight, error)
	GetPatterns(ctx context.Context, userID string) (types.UserPatterns, error)
	GetRecommendations(ctx context.Context, userID string) (types.RecommendationReport, error)
	SubmitFeedback(ctx context.Context, req types.FeedbackRequest) (types.InsightFeedback, error)
	RecordSessionFeedback(ctx context.Context, req types.SessionFeedbackRequest) (types.SessionFeedback, error)
	Health() types.HealthStatus
}

type AgentHandler struct {
	svc          AgentService
	exposeErrors bool
}

// NewAgentHandler serves svc over HTTP. exposeErrors puts the underlying
// error text into 500 responses; meant for development.
func NewAgentHandler(svc AgentService, exposeErrors bool) *AgentHandler {
	return &AgentHandler{svc: svc, exposeErrors: exposeErrors}
}

func (h *AgentHandler) Motivator(w http.ResponseWriter, r *http.Request) {
	var req types.MotivationRequest
	if err := decodeBody(r, &req); err != nil {
		h.fail(w, "Failed to generate motivation", err)
		return
	}
	if !authorizeUser(w, r, req.UserID) {
		return
	}

	config.Logger.WithFields(logrus.Fields{"user_id": req.UserID, "task": req.Task}).Info("Generating motivation")
	resp, err := h.svc.GetMotivation(r.Context(), req)
	if err != nil {
		h.fail(w, "Failed to generate motivation", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AgentHandler) Planner(w http.ResponseWriter, r *http.Request) {
	var req types.PlanRequest
	if err := decodeBody(r, &req); err != nil {
		h.fail(w, "Failed to generate plan", err)
		return
	}
	if !authorizeUser(w, r, req.UserID) {
		return
	}

	config.Logger.WithFields(logrus.Fields{
		"user_id":        req.UserID,
		"goals":          len(req.Goals),
		"available_time": req.AvailableTime,
		"energy":         req.Energy,
	}).Info("Generating plan")
	plan, err := h.svc.GetPlan(r.Context(), req)
	if err != nil {
		h.fail(w, "Failed to generate plan", err)
		return
	}
	config.Logger.Infof("Plan generated successfully with %d tasks", len(plan.Tasks))
	writeJSON(w, http.StatusOK, plan)
}

func (h *AgentHandler) Blocker(w http.ResponseWriter, r *http.Request) {
	var req types.BlockerRequest
	if err := decodeBody(r, &req); err != nil {
		h.fail(w, "Failed to activate blocker", err)
		return
	}
	if !authorizeUser(w, r, req.UserID) {
		return
	}

	cfg, err := h.svc.ActivateBlocker(r.Context(), req)
	if err != nil {
		h.fail(w, "Failed to activate blocker", err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

// ActivateBlocking always answers 200 once authorized; the result carries
// success. The body is a blocker configuration plus the owning userId.
func (h *AgentHandler) ActivateBlocking(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserID string `json:"userId"`
		types.BlockerConfig
	}
	if err := decodeBody(r, &body); err != nil {
		h.fail(w, "Failed to activate blocker", err)
		return
	}
	if !authorizeUser(w, r, body.UserID) {
		return
	}
	writeJSON(w, http.StatusOK, h.svc.ActivateBlocking(r.Context(), body.BlockerConfig))
}

func (h *AgentHandler) Observer(w http.ResponseWriter, r *http.Request) {
	var req types.InsightRequest
	if err := decodeBody(r, &req); err != nil {
		h.fail(w, "Failed to generate insights", err)
		return
	}
	if !authorizeUser(w, r, req.UserID) {
		return
	}

	refresh, _ := strconv.ParseBool(r.URL.Query().Get("refresh"))
	insight, err := h.svc.GetInsights(r.Context(), req, refresh)
	if err != nil {
		h.fail(w, "Failed to generate insights", err)
		return
	}
	writeJSON(w, http.StatusOK, insight)
}

func (h *AgentHandler) Patterns(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if !authorizeUser(w, r, userID) {
		return
	}

	patterns, err := h.svc.GetPatterns(r.Context(), userID)
	if err != nil {
		h.fail(w, "Failed to analyze patterns", err)
		return
	}
	writeJSON(w, http.StatusOK, patterns)
}

func (h *AgentHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if !authorizeUser(w, r, userID) {
		return
	}

	report, err := h.svc.GetRecommendations(r.Context(), userID)
	if err != nil {
		h.fail(w, "Failed to generate recommendations", err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *AgentHandler) Feedback(w http.ResponseWriter, r *http.Request) {
	var req types.FeedbackRequest
	if err := decodeBody(r, &req); err != nil {
		h.fail(w, "Failed to submit feedback", err)
		return
	}
	req.UserID = r.PathValue("userId")
	if !authorizeUser(w, r, req.UserID) {
		return
	}

	saved, err := h.svc.SubmitFeedback(r.Context(), req)
	if err != nil {
		h.fail(w, "Failed to submit feedback", err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (h *AgentHandler) SessionFeedback(w http.ResponseWriter, r *http.Request) {
	var req types.SessionFeedbackRequest
	if err := decodeBody(r, &req); err != nil {
		h.fail(w, "Failed to record session feedback", err)
		return
	}
	req.UserID = r.PathValue("userId")
	if !authorizeUser(w, r, req.UserID) {
		return
	}

	saved, err := h.svc.RecordSessionFeedback(r.Context(), req)
	if err != nil {
		h.fail(w, "Failed to record session feedback", err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (h *AgentHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Health())
}
