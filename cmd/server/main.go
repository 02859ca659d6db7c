package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/delimatsuo/headhunter/common/id"
	"github.com/delimatsuo/headhunter/common/llm"
	"github.com/delimatsuo/headhunter/common/logger"
	"github.com/delimatsuo/headhunter/common/otel"
	"github.com/delimatsuo/headhunter/core/config"
	"github.com/delimatsuo/headhunter/core/db"
	"github.com/delimatsuo/headhunter/internal/embedding"
	"github.com/delimatsuo/headhunter/internal/http/handler"
	"github.com/delimatsuo/headhunter/internal/http/middleware"
	httprouter "github.com/delimatsuo/headhunter/internal/http/router"
	"github.com/delimatsuo/headhunter/internal/retrieval"
	"github.com/delimatsuo/headhunter/internal/scoring"
	"github.com/delimatsuo/headhunter/internal/search"
	"github.com/delimatsuo/headhunter/internal/skillgraph"
	"github.com/delimatsuo/headhunter/internal/store"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		// Can't use slog yet; OTel failed before logger setup
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "headhunter starting", "env", cfg.Env, "service", cfg.OTel.ServiceName)
	if err := id.Init(cfg.NodeID); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.InfoContext(ctx, "database connected")

	// Taxonomy violations are config bugs: fail startup, do not degrade.
	graph, err := skillgraph.LoadTaxonomy(cfg.SkillGraph.TaxonomyPath)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load skill taxonomy", "error", err)
		os.Exit(1)
	}
	expander := skillgraph.NewExpander(
		graph,
		skillgraph.NewLRUCache(cfg.SkillGraph.CacheCapacity, cfg.SkillGraph.CacheTTL),
		cfg.SkillGraph.MaxDepth,
		cfg.SkillGraph.MaxResults,
	)
	slog.InfoContext(ctx, "skill graph loaded", "skills", graph.Len())

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisOpts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			slog.ErrorContext(ctx, "failed to parse redis url", "error", err)
			os.Exit(1)
		}
		redisClient = redis.NewClient(redisOpts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			slog.ErrorContext(ctx, "failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		slog.InfoContext(ctx, "redis connected")
	} else {
		slog.InfoContext(ctx, "redis disabled, embedding cache off")
	}

	llmClient, err := llm.New(llm.Config{
		APIKey:         cfg.OpenAI.APIKey,
		BaseURL:        cfg.OpenAI.BaseURL,
		Model:          cfg.OpenAI.Model,
		EmbeddingModel: cfg.OpenAI.EmbeddingModel,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to create llm client", "error", err)
		os.Exit(1)
	}

	searcher := retrieval.NewTypesenseSearcher(retrieval.TypesenseConfig{
		URL:        cfg.Typesense.URL,
		APIKey:     cfg.Typesense.APIKey,
		Collection: cfg.Typesense.Collection,
		Timeout:    cfg.Typesense.Timeout,
	})
	engine := retrieval.NewEngine(searcher, cfg.Search.PerMethodLimit, cfg.Search.RRFConstant)

	embedder := embedding.NewService(llmClient, redisClient, cfg.Redis.EmbedCacheTTL)
	presearch := search.NewPreSearchExecutor(embedder, search.KeywordClassifier{})

	var reranker *search.Reranker
	if cfg.Rerank.Enabled {
		reranker = search.NewReranker(llmClient, cfg.Rerank.Timeout)
	}
	rationale := search.NewRationaleGenerator(llmClient, cfg.Rerank.Timeout, cfg.Search.RationaleTopN)

	pipeline := search.NewPipeline(
		presearch,
		engine,
		store.NewCandidateStore(database.Pool()),
		scoring.NewScorer(expander),
		reranker,
		rationale,
		search.Config{
			RetrievalLimit: cfg.Search.RetrievalLimit,
			ScoringLimit:   cfg.Search.ScoringLimit,
			RerankLimit:    cfg.Search.RerankLimit,
			RerankEnabled:  cfg.Rerank.Enabled,
			RerankTimeout:  cfg.Rerank.Timeout,
			StageLogging:   cfg.Search.StageLogging,
		},
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, pipeline, database)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

func setupRouter(cfg config.Config, pipeline *search.Pipeline, database *db.DB) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span → Recovery catches panics → Logger logs with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())

	httprouter.SetupRoutes(router,
		handler.NewSearchHandler(pipeline),
		handler.NewHealthHandler(database),
		httprouter.RouterConfig{IsProduction: cfg.IsProduction()},
	)

	return router
}
