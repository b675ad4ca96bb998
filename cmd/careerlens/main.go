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

	"github.com/careerlens/careerlens/internal/config"
	"github.com/careerlens/careerlens/internal/dataset"
	dbRedis "github.com/careerlens/careerlens/internal/db/redis"
	"github.com/careerlens/careerlens/internal/domain"
	logpkg "github.com/careerlens/careerlens/internal/logger"
	"github.com/careerlens/careerlens/internal/metrics"
	"github.com/careerlens/careerlens/internal/repository/embcache"
	indexrepo "github.com/careerlens/careerlens/internal/repository/index"
	profilerepo "github.com/careerlens/careerlens/internal/repository/profile"
	"github.com/careerlens/careerlens/internal/transport/canned"
	chiTransport "github.com/careerlens/careerlens/internal/transport/chi"
	openaiTransport "github.com/careerlens/careerlens/internal/transport/openai"
	analyticsuc "github.com/careerlens/careerlens/internal/usecase/analytics"
	healthuc "github.com/careerlens/careerlens/internal/usecase/health"
	indexeruc "github.com/careerlens/careerlens/internal/usecase/indexer"
	insightuc "github.com/careerlens/careerlens/internal/usecase/insight"
	retrieveruc "github.com/careerlens/careerlens/internal/usecase/retriever"
	"github.com/careerlens/careerlens/internal/version"
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

	logger.Info("Starting careerlens API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.String("generation_mode", cfg.Generation.Mode),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		DB:       cfg.Database.DB,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register metrics explicitly (no init())
	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterGenerationMetrics()

	// Build embedder chain — composition root
	vecCfg, ok := cfg.Embedding.Vectorizers[cfg.Embedding.Default]
	if !ok {
		logger.Fatal("Default vectorizer not configured", zap.String("vectorizer", cfg.Embedding.Default))
	}
	provCfg := cfg.Embedding.Providers[vecCfg.Provider]

	baseEmbedder := openaiTransport.NewEmbedder(&openaiTransport.Config{
		APIKey:     provCfg.APIKey,
		BaseURL:    provCfg.BaseURL,
		Model:      vecCfg.Model,
		Dimensions: vecCfg.Dimensions,
		Provider:   vecCfg.Provider,
		Logger:     logger,
	})
	embedder := embcache.New(baseEmbedder, store, metrics.EmbeddingCacheTotal, logger)
	logger.Info("Embedder created",
		zap.String("provider", vecCfg.Provider),
		zap.String("model", vecCfg.Model),
		zap.Int("dimensions", vecCfg.Dimensions),
	)

	// Generation strategy is fixed at startup: live needs an API key, canned
	// answers offline.
	var generator domain.Generator
	switch cfg.Generation.Mode {
	case "live":
		generator = openaiTransport.NewGenerator(&openaiTransport.GeneratorConfig{
			APIKey:  cfg.Generation.APIKey,
			BaseURL: cfg.Generation.BaseURL,
			Model:   cfg.Generation.Model,
			Logger:  logger,
		})
	default:
		generator = canned.New()
	}
	logger.Info("Generator created", zap.String("mode", cfg.Generation.Mode))

	// Load postings and build the vector collection
	sources := make([]dataset.Source, len(cfg.Dataset.Sources))
	for i, src := range cfg.Dataset.Sources {
		sources[i] = dataset.Source{Path: src.Path, Format: src.Format}
	}
	loader := dataset.NewLoader(sources, logger)

	postings, err := loader.Load(ctx)
	if err != nil {
		logger.Fatal("Failed to load postings dataset", zap.Error(err))
	}
	logger.Info("Postings loaded", zap.Int("count", len(postings)))

	indexRepo := indexrepo.New(store, indexrepo.Options{
		KeyPrefix:  cfg.Storage.KeyPrefix,
		Collection: cfg.Index.Collection,
		Model:      vecCfg.Model,
		Dimensions: vecCfg.Dimensions,
		HNSWM:      cfg.Index.HNSWM,
		HNSWEF:     cfg.Index.HNSWEFConstruct,
	}, logger)

	indexer := indexeruc.New(indexRepo, embedder, cfg.Index.Collection, cfg.Index.BatchSize, logger)
	rebuild := os.Getenv("REBUILD_INDEX") == "true"
	if err := indexer.Build(ctx, postings, rebuild); err != nil {
		logger.Fatal("Failed to build postings collection", zap.Error(err))
	}

	// Repositories and use case services
	profileRepo := profilerepo.New(store, time.Duration(cfg.Index.ProfileTTLSec)*time.Second, logger)

	retriever := retrieveruc.New(indexRepo, embedder, logger)
	insights := insightuc.New(retriever, generator, profileRepo, cfg.Index.RetrieveK, logger)
	analytics := analyticsuc.New(postings)
	health := healthuc.New(store, newEmbeddingHealthChecker(baseEmbedder), indexRepo)

	// Create chi server
	server := chiTransport.NewServer(insights, retriever, analytics, health, logger).
		WithSearchLimit(cfg.Index.TopN)

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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// embeddingHealthChecker wraps domain.Embedder to implement health.EmbeddingChecker.
type embeddingHealthChecker struct {
	embedder domain.Embedder
}

func newEmbeddingHealthChecker(embedder domain.Embedder) *embeddingHealthChecker {
	return &embeddingHealthChecker{embedder: embedder}
}

func (h *embeddingHealthChecker) HealthCheck(ctx context.Context) error {
	if hc, ok := h.embedder.(domain.HealthChecker); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			return fmt.Errorf("embedding health check: %w", err)
		}
	}
	return nil
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
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

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
