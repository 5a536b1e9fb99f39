package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clementus360/focus-agents/agents"
	"clementus360/focus-agents/config"
	"clementus360/focus-agents/handlers"
	"clementus360/focus-agents/insights"
	"clementus360/focus-agents/llm"
	"clementus360/focus-agents/middleware"
	"clementus360/focus-agents/profile"
	"clementus360/focus-agents/routes"
	"clementus360/focus-agents/store"
	"clementus360/focus-agents/supabase"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "focus-agents",
	Short: "focus-agents - context-aware productivity agents",
	RunE:  runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

var patternsCmd = &cobra.Command{
	Use:   "patterns <userId>",
	Short: "Print a user's behavior patterns and recommendations",
	Args:  cobra.ExactArgs(1),
	RunE:  runPatterns,
}

func init() {
	rootCmd.AddCommand(serveCmd, patternsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadSettings() config.Settings {
	config.LoadEnv()
	settings := config.LoadSettings()
	config.InitLogger(settings.LogLevel)
	return settings
}

func openStore(settings config.Settings) (store.RecordStore, error) {
	switch settings.StoreBackend {
	case "supabase":
		return supabase.NewStore(settings.SupabaseURL, settings.SupabaseKey)
	case "", "memory":
		config.Logger.Warn("Using in-memory store, data will not survive a restart")
		return store.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", settings.StoreBackend)
	}
}

func newService(settings config.Settings, db store.RecordStore) (*agents.Service, error) {
	backend, err := llm.NewBackend(settings)
	if err != nil {
		return nil, err
	}

	loc := settings.Location()
	sessions := store.NewSessions(db)
	history := store.NewHistory(db)

	return agents.NewService(agents.Deps{
		Profiles:  profile.NewBuilder(sessions, history, loc),
		Completer: llm.NewClient(backend, settings.LLMTimeout),
		Analyzer:  insights.NewAnalyzer(sessions, history, loc, time.Now),
		Cache:     insights.NewCache(time.Now),
		Insights:  store.NewInsights(db),
		Feedback:  history,
		Enforcer:  agents.LogEnforcer{},
	}), nil
}

func runServe(cmd *cobra.Command, args []string) error {
	settings := loadSettings()

	db, err := openStore(settings)
	if err != nil {
		return err
	}
	svc, err := newService(settings, db)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	routes.RegisterAllRoutes(mux, handlers.NewAgentHandler(svc, settings.LogLevel == "debug"))

	limiter := middleware.NewRateLimiter(settings.RateLimitRPS, settings.RateLimitBurst)
	handler := middleware.Chain(
		middleware.LoggingMiddleware,
		middleware.CORSMiddleware,
		limiter.Middleware,
		middleware.AuthMiddleware(settings.SupabaseJWTSecret),
	)(mux)

	if settings.SupabaseJWTSecret == "" {
		config.Logger.Warn("SUPABASE_JWT_SECRET not set, requests are not authenticated")
	}

	server := &http.Server{
		Addr:              ":" + settings.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		config.Logger.Infof("Server is running on port %s", settings.Port)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	config.Logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func runPatterns(cmd *cobra.Command, args []string) error {
	settings := loadSettings()

	db, err := openStore(settings)
	if err != nil {
		return err
	}
	svc, err := newService(settings, db)
	if err != nil {
		return err
	}

	report, err := svc.GetRecommendations(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
