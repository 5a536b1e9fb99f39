package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"clementus360/focus-agents/agents"
	"clementus360/focus-agents/llm"
	"clementus360/focus-agents/middleware"
	"clementus360/focus-agents/types"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	planErr      error
	lastInsight  types.InsightRequest
	lastRefresh  bool
	lastFeedback types.FeedbackRequest
}

func (s *stubService) GetMotivation(ctx context.Context, req types.MotivationRequest) (types.MotivationResponse, error) {
	if err := agents.ValidateMotivation(req); err != nil {
		return types.MotivationResponse{}, err
	}
	return types.MotivationResponse{Message: "Keep going", ActionableAdvice: []string{"Start now"}}, nil
}

func (s *stubService) GetPlan(ctx context.Context, req types.PlanRequest) (types.PlanResponse, error) {
	if s.planErr != nil {
		return types.PlanResponse{}, s.planErr
	}
	return types.PlanResponse{Tasks: []types.PlannedTask{{ID: "task_1"}}}, nil
}

func (s *stubService) ActivateBlocker(ctx context.Context, req types.BlockerRequest) (types.BlockerConfig, error) {
	return agents.DefaultBlockerConfig(req, "session_1"), nil
}

func (s *stubService) ActivateBlocking(ctx context.Context, cfg types.BlockerConfig) types.ActivationResult {
	return types.ActivationResult{Success: cfg.SessionID != ""}
}

func (s *stubService) GetInsights(ctx context.Context, req types.InsightRequest, refresh bool) (types.Insight, error) {
	s.lastInsight = req
	s.lastRefresh = refresh
	return types.Insight{ID: "insight-1", UserID: req.UserID}, nil
}

func (s *stubService) GetPatterns(ctx context.Context, userID string) (types.UserPatterns, error) {
	return types.UserPatterns{TotalDataPoints: 3, FocusTrend: types.TrendInsufficientData}, nil
}

func (s *stubService) GetRecommendations(ctx context.Context, userID string) (types.RecommendationReport, error) {
	return types.RecommendationReport{Recommendations: []types.Recommendation{}}, nil
}

func (s *stubService) SubmitFeedback(ctx context.Context, req types.FeedbackRequest) (types.InsightFeedback, error) {
	s.lastFeedback = req
	return types.InsightFeedback{ID: "fb-1", UserID: req.UserID, InsightID: req.InsightID}, nil
}

func (s *stubService) RecordSessionFeedback(ctx context.Context, req types.SessionFeedbackRequest) (types.SessionFeedback, error) {
	return types.SessionFeedback{ID: "sf-1", UserID: req.UserID}, nil
}

func (s *stubService) Health() types.HealthStatus {
	return types.HealthStatus{Status: "healthy"}
}

// newMux mirrors the production route table without importing routes.
func newMux(h *AgentHandler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/agents/motivator", h.Motivator)
	mux.HandleFunc("POST /api/agents/planner", h.Planner)
	mux.HandleFunc("POST /api/agents/blocker", h.Blocker)
	mux.HandleFunc("POST /api/agents/blocker/activate", h.ActivateBlocking)
	mux.HandleFunc("POST /api/agents/observer", h.Observer)
	mux.HandleFunc("GET /api/agents/{userId}/patterns", h.Patterns)
	mux.HandleFunc("POST /api/agents/{userId}/feedback", h.Feedback)
	mux.HandleFunc("POST /api/agents/health", h.Health)
	return mux
}

func do(t *testing.T, handler http.Handler, method, path, body string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) types.ErrorResponse {
	t.Helper()
	var body types.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestMotivator(t *testing.T) {
	mux := newMux(NewAgentHandler(&stubService{}, false))

	rec := do(t, mux, http.MethodPost, "/api/agents/motivator", `{"task":"Write","energy":3,"progress":0.2,"userId":"u1"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var resp types.MotivationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Keep going", resp.Message)

	rec = do(t, mux, http.MethodPost, "/api/agents/motivator", `{"task":"Write","energy":7,"userId":"u1"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Message, "energy")

	rec = do(t, mux, http.MethodPost, "/api/agents/motivator", `{not json`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPlanner_GenerationFailure(t *testing.T) {
	genErr := fmt.Errorf("failed to generate plan: %w", &llm.GenerationError{Provider: "ollama", StatusCode: 503, Err: errors.New("unavailable")})

	rec := do(t, newMux(NewAgentHandler(&stubService{planErr: genErr}, false)), http.MethodPost, "/api/agents/planner", `{"goals":[{"title":"g"}],"availableTime":60,"energy":3,"userId":"u1"}`, nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "Failed to generate plan", body.Message)
	assert.Equal(t, internalError, body.Error)
	_, err := time.Parse(time.RFC3339, body.Timestamp)
	assert.NoError(t, err)

	rec = do(t, newMux(NewAgentHandler(&stubService{planErr: genErr}, true)), http.MethodPost, "/api/agents/planner", `{"goals":[{"title":"g"}],"availableTime":60,"energy":3,"userId":"u1"}`, nil)
	assert.Contains(t, decodeError(t, rec).Error, "generation failed")
}

func TestObserver_RefreshQuery(t *testing.T) {
	svc := &stubService{}
	mux := newMux(NewAgentHandler(svc, false))

	rec := do(t, mux, http.MethodPost, "/api/agents/observer?refresh=true", `{"userId":"u1","timeframe":"day","metrics":["focus"]}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, svc.lastRefresh)
	assert.Equal(t, []string{"focus"}, svc.lastInsight.Metrics)

	do(t, mux, http.MethodPost, "/api/agents/observer", `{"userId":"u1"}`, nil)
	assert.False(t, svc.lastRefresh)
}

func TestFeedback_UsesPathUser(t *testing.T) {
	svc := &stubService{}
	rec := do(t, newMux(NewAgentHandler(svc, false)), http.MethodPost, "/api/agents/u42/feedback", `{"userId":"someone-else","insightId":"i1","helpful":true}`, nil)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "u42", svc.lastFeedback.UserID)
	assert.True(t, svc.lastFeedback.Helpful)
}

func TestBlockerEndpoints(t *testing.T) {
	mux := newMux(NewAgentHandler(&stubService{}, false))

	rec := do(t, mux, http.MethodPost, "/api/agents/blocker", `{"userId":"u1","taskType":"coding","sessionDuration":1800,"distractionLevel":"high"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var cfg types.BlockerConfig
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cfg))
	assert.Equal(t, 1800, cfg.BlockDuration)

	rec = do(t, mux, http.MethodPost, "/api/agents/blocker/activate", `{"sessionId":""}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var result types.ActivationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.False(t, result.Success)
}

func TestAuth_SubjectMustMatchUser(t *testing.T) {
	const secret = "test-secret"
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u1"})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	bearer := http.Header{"Authorization": []string{"Bearer " + signed}}

	handler := middleware.AuthMiddleware(secret)(newMux(NewAgentHandler(&stubService{}, false)))

	rec := do(t, handler, http.MethodGet, "/api/agents/u1/patterns", "", bearer)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, handler, http.MethodGet, "/api/agents/u2/patterns", "", bearer)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, handler, http.MethodGet, "/api/agents/u1/patterns", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, handler, http.MethodPost, "/api/agents/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, handler, http.MethodPost, "/api/agents/blocker/activate", `{"userId":"u1","sessionId":"session_1","blockDuration":60}`, bearer)
	require.Equal(t, http.StatusOK, rec.Code)
	var result types.ActivationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.Success)

	rec = do(t, handler, http.MethodPost, "/api/agents/blocker/activate", `{"userId":"u2","sessionId":"session_1","blockDuration":60}`, bearer)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
