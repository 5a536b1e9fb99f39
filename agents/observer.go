package agents

import (
	"context"
	"fmt"
	"strings"
	"time"

	"clementus360/focus-agents/config"
	"clementus360/focus-agents/insights"
	"clementus360/focus-agents/llm"
	"clementus360/focus-agents/types"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const unavailableSummary = "Unable to generate AI insights at this time."

var (
	findingKeywords = []string{"finding", "insight", "pattern"}
	actionKeywords  = []string{"recommend", "try", "consider", "action"}
)

type Observer struct {
	analyzer Analyzer
	cache    InsightCache
	insights InsightStore
	feedback FeedbackStore
	llm      llm.Completer
	now      func() time.Time
	newID    func() string

	// in-flight recomputations per user|timeframe
	group singleflight.Group
}

func NewObserver(analyzer Analyzer, cache InsightCache, store InsightStore, feedback FeedbackStore, completer llm.Completer, now func() time.Time, newID func() string) *Observer {
	return &Observer{
		analyzer: analyzer,
		cache:    cache,
		insights: store,
		feedback: feedback,
		llm:      completer,
		now:      now,
		newID:    newID,
	}
}

// GenerateInsights returns the cached insight for (user, timeframe) while it
// is valid, otherwise recomputes, persists and caches a new one. Concurrent
// recomputations for the same key share one result.
func (o *Observer) GenerateInsights(ctx context.Context, req types.InsightRequest, refresh bool) (types.Insight, error) {
	log := config.Logger.WithFields(logrus.Fields{
		"agent":     "observer",
		"user_id":   req.UserID,
		"timeframe": req.Timeframe,
	})

	if !refresh {
		if cached, ok := o.lookup(ctx, req.UserID, req.Timeframe); ok {
			log.Debug("Serving cached insight")
			return withRecommendations(cached, req.IncludeRecommendations), nil
		}
	}

	// The computation outlives any single caller; a caller that goes away
	// stops waiting but the result is still cached for the others.
	key := req.UserID + "|" + req.Timeframe
	ch := o.group.DoChan(key, func() (interface{}, error) {
		return o.compute(context.WithoutCancel(ctx), req)
	})

	select {
	case <-ctx.Done():
		log.Debug("Caller left before insight computation finished")
		return types.Insight{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return types.Insight{}, res.Err
		}
		if res.Shared {
			log.Debug("Joined in-flight insight computation")
		}
		return withRecommendations(res.Val.(types.Insight), req.IncludeRecommendations), nil
	}
}

// lookup checks the in-process cache, then the newest stored insight.
func (o *Observer) lookup(ctx context.Context, userID, timeframe string) (types.Insight, bool) {
	if cached, ok := o.cache.Get(userID, timeframe); ok {
		return cached, true
	}

	stored, err := o.insights.Latest(ctx, userID, timeframe)
	if err != nil {
		config.Logger.WithField("user_id", userID).Warnf("Failed to read stored insights: %v", err)
		return types.Insight{}, false
	}
	if stored == nil || !o.cache.IsValid(stored.CreatedAt, timeframe) {
		return types.Insight{}, false
	}

	o.cache.Put(*stored)
	return *stored, true
}

func (o *Observer) compute(ctx context.Context, req types.InsightRequest) (types.Insight, error) {
	var (
		sessionStats types.SessionStats
		taskStats    types.TaskStats
		patterns     types.UserPatterns
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sessionStats = o.analyzer.SessionStats(gctx, req.UserID, req.Timeframe)
		return gctx.Err()
	})
	g.Go(func() error {
		taskStats = o.analyzer.TaskStats(gctx, req.UserID, req.Timeframe)
		return gctx.Err()
	})
	g.Go(func() error {
		patterns = o.analyzer.Patterns(gctx, req.UserID)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return types.Insight{}, fmt.Errorf("failed to gather insight data: %w", err)
	}

	ai := o.generateAIInsights(ctx, insightData{
		timeframe: req.Timeframe,
		metrics:   req.Metrics,
		sessions:  sessionStats,
		tasks:     taskStats,
		patterns:  patterns,
	})

	insight := types.Insight{
		ID:              o.newID(),
		UserID:          req.UserID,
		Timeframe:       req.Timeframe,
		SessionStats:    sessionStats,
		TaskStats:       taskStats,
		Patterns:        patterns,
		AIInsights:      ai,
		Recommendations: insights.Recommend(patterns),
		CreatedAt:       o.now(),
	}

	if err := o.insights.Save(ctx, insight); err != nil {
		config.Logger.WithField("user_id", req.UserID).Warnf("Failed to store insight: %v", err)
	}
	o.cache.Put(insight)
	return insight, nil
}

// generateAIInsights never fails; a generation error yields a fixed summary.
func (o *Observer) generateAIInsights(ctx context.Context, data insightData) types.AIInsights {
	text, err := o.llm.Complete(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: observerSystemPrompt},
		{Role: llm.RoleUser, Content: observerUserPrompt(data)},
	})
	if err != nil {
		config.Logger.Warnf("AI insight generation failed: %v", err)
		return types.AIInsights{
			Summary:     unavailableSummary,
			KeyFindings: []string{},
			ActionItems: []string{},
		}
	}

	parsed := asMap(llm.ParseStructured(text))
	ai := types.AIInsights{
		Summary:     stringOr(parsed["summary"], text),
		KeyFindings: extractLines(text, findingKeywords),
		ActionItems: extractLines(text, actionKeywords),
	}
	if findings, ok := stringList(parsed["keyFindings"]); ok && len(findings) > 0 {
		ai.KeyFindings = capLines(findings)
	}
	if actions, ok := stringList(parsed["actionItems"]); ok && len(actions) > 0 {
		ai.ActionItems = capLines(actions)
	}
	return ai
}

func (o *Observer) Patterns(ctx context.Context, userID string) types.UserPatterns {
	return o.analyzer.Patterns(ctx, userID)
}

func (o *Observer) Recommendations(ctx context.Context, userID string) types.RecommendationReport {
	return o.analyzer.Recommendations(ctx, userID)
}

func (o *Observer) SubmitFeedback(ctx context.Context, req types.FeedbackRequest) (types.InsightFeedback, error) {
	saved, err := o.feedback.SaveInsightFeedback(ctx, types.InsightFeedback{
		ID:          o.newID(),
		UserID:      req.UserID,
		InsightID:   req.InsightID,
		Helpful:     req.Helpful,
		Comment:     req.Comment,
		SubmittedAt: o.now(),
	})
	if err != nil {
		return types.InsightFeedback{}, fmt.Errorf("failed to submit feedback: %w", err)
	}
	return saved, nil
}

func (o *Observer) RecordSessionFeedback(ctx context.Context, req types.SessionFeedbackRequest) (types.SessionFeedback, error) {
	saved, err := o.feedback.SaveFeedback(ctx, types.SessionFeedback{
		ID:                      o.newID(),
		UserID:                  req.UserID,
		SessionID:               req.SessionID,
		Completed:               req.Completed,
		FocusScore:              req.FocusScore,
		Distractions:            req.Distractions,
		MotivationStyle:         req.MotivationStyle,
		MotivationEffectiveness: req.MotivationEffectiveness,
		TaskComplexity:          req.TaskComplexity,
		EnergyAfter:             req.EnergyAfter,
		CreatedAt:               o.now(),
	})
	if err != nil {
		return types.SessionFeedback{}, fmt.Errorf("failed to record session feedback: %w", err)
	}
	return saved, nil
}

// extractLines keeps up to three trimmed lines containing any keyword.
func extractLines(text string, keywords []string) []string {
	out := []string{}
	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				out = append(out, strings.TrimSpace(line))
				break
			}
		}
		if len(out) == config.InsightLineScanLimit {
			break
		}
	}
	return out
}

func capLines(lines []string) []string {
	if len(lines) > config.InsightLineScanLimit {
		return lines[:config.InsightLineScanLimit]
	}
	return lines
}

func withRecommendations(insight types.Insight, include bool) types.Insight {
	if !include {
		insight.Recommendations = nil
		return insight
	}
	if insight.Recommendations == nil {
		insight.Recommendations = insights.Recommend(insight.Patterns)
	}
	return insight
}
