package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/vaidya/internal/config"
	"github.com/kailas-cloud/vaidya/internal/db"
	dbRedis "github.com/kailas-cloud/vaidya/internal/db/redis"
	logpkg "github.com/kailas-cloud/vaidya/internal/logger"
	"github.com/kailas-cloud/vaidya/internal/metrics"
	budgetrepo "github.com/kailas-cloud/vaidya/internal/repository/budget"
	corpusrepo "github.com/kailas-cloud/vaidya/internal/repository/corpus"
	profilerepo "github.com/kailas-cloud/vaidya/internal/repository/profile"
	chiTransport "github.com/kailas-cloud/vaidya/internal/transport/chi"
	openaiAsst "github.com/kailas-cloud/vaidya/internal/transport/openai"
	"github.com/kailas-cloud/vaidya/internal/usecase/budget"
	"github.com/kailas-cloud/vaidya/internal/usecase/consultation"
	healthuc "github.com/kailas-cloud/vaidya/internal/usecase/health"
	searchuc "github.com/kailas-cloud/vaidya/internal/usecase/search"
	sessionuc "github.com/kailas-cloud/vaidya/internal/usecase/session"
	"github.com/kailas-cloud/vaidya/internal/usecase/synthesis"
	usageuc "github.com/kailas-cloud/vaidya/internal/usecase/usage"
	"github.com/kailas-cloud/vaidya/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting vaidya API server",
		zap.String("build", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("profile_driver", cfg.Profile.Driver),
		zap.Bool("assistant_configured", cfg.Assistant.APIKey != ""),
	)

	// Register metrics explicitly (no init())
	metrics.RegisterConsultationMetrics()
	metrics.RegisterHTTPMetrics()

	corpus, err := loadCorpus(cfg.Corpus)
	if err != nil {
		logger.Fatal("Failed to load corpus", zap.Error(err))
	}
	counts := corpus.Counts()
	logger.Info("Corpus loaded",
		zap.String("dir", cfg.Corpus.Dir),
		zap.Int("articles", counts["articles"]),
		zap.Int("remedies", counts["remedies"]),
		zap.Int("text_excerpts", counts["text_excerpts"]),
		zap.Int("dosha_guides", counts["dosha_guides"]),
	)

	weights, err := searchuc.DecodeWeights(&cfg.Search.Weights)
	if err != nil {
		logger.Fatal("Invalid search weights", zap.Error(err))
	}
	searchSvc := searchuc.New(corpus, logger).WithWeights(weights).WithTopK(cfg.Search.TopK)

	assistant := openaiAsst.NewAssistant(&openaiAsst.Config{
		APIKey:       cfg.Assistant.APIKey,
		BaseURL:      cfg.Assistant.BaseURL,
		Model:        cfg.Assistant.Model,
		MaxTokens:    cfg.Assistant.MaxTokens,
		Temperature:  cfg.Assistant.Temperature,
		SystemPrompt: cfg.Assistant.SystemPrompt,
		Provider:     cfg.Assistant.Provider,
		Logger:       logger,
	})
	if !assistant.IsConfigured() {
		logger.Warn("Assistant API key not set, answers will use the local corpus only")
	}

	ctx := context.Background()

	// Profile store is optional. Pass nil interfaces, not typed nil pointers.
	var (
		store         db.Store
		profileReader sessionuc.ProfileReader
		profileAPI    chiTransport.Profiles
		storePinger   healthuc.StorePinger
	)
	if cfg.Profile.Enabled() {
		store, err = openStore(ctx, cfg.Profile)
		if err != nil {
			logger.Fatal("Profile store not ready", zap.Error(err))
		}
		defer store.Close()
		logger.Info("Connected to profile store", zap.Strings("addrs", cfg.Profile.Addrs))

		profiles := profilerepo.New(store, time.Duration(cfg.Profile.TTLHours)*time.Hour)
		profileReader, profileAPI, storePinger = profiles, profiles, store
	}

	// Token budget: in-memory, persisted to the profile store when one is configured.
	bc := cfg.Assistant.Budget
	tracker := budget.NewTracker(cfg.Assistant.Provider,
		bc.DailyTokenLimit, bc.MonthlyTokenLimit, budget.Action(bc.Action), logger)
	if store != nil {
		tracker.WithStore(ctx, budgetrepo.New(store, budgetrepo.DefaultDailyTTL, budgetrepo.DefaultMonthlyTTL))
	}
	if bc.Enabled() {
		logger.Info("Assistant token budget enabled",
			zap.Int64("daily_limit", bc.DailyTokenLimit),
			zap.Int64("monthly_limit", bc.MonthlyTokenLimit),
			zap.String("action", bc.Action),
		)
	}
	metered := budget.NewAssistant(assistant, tracker, cfg.Assistant.Provider, logger)

	orchestrator := consultation.New(searchSvc, synthesis.New(), metered, logger,
		consultation.WithHistoryLimit(cfg.Assistant.HistoryLimit),
	)

	var assistantChecker healthuc.AssistantChecker
	if assistant.IsConfigured() {
		assistantChecker = assistant
	}

	sessionSvc := sessionuc.New(orchestrator, profileReader, cfg.Session.Greeting, logger)
	healthSvc := healthuc.New(storePinger, assistantChecker)
	usageSvc := usageuc.New(tracker)

	server := chiTransport.NewServer(searchSvc, sessionSvc, profileAPI, healthSvc, usageSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Mount(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

func loadCorpus(cfg config.CorpusConfig) (*corpusrepo.Repo, error) {
	if cfg.Dir != "" {
		return corpusrepo.LoadDir(cfg.Dir)
	}
	return corpusrepo.LoadEmbedded()
}

// openStore connects to Redis or Valkey. Both drivers share the rueidis client.
func openStore(ctx context.Context, cfg config.ProfileConfig) (db.Store, error) {
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Addrs,
		Password: cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s store: %w", cfg.Driver, err)
	}

	if err := store.WaitForReady(ctx, time.Duration(cfg.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		return nil, fmt.Errorf("wait for %s: %w", cfg.Driver, err)
	}
	return store, nil
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.String("path", r.URL.Path),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(chiTransport.ErrorResponse{
						Code:    chiTransport.ErrorCodeInternalError,
						Message: "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger; the session service adds session_id on top of it
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}

			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("route", route),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
