package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/kailas-cloud/resumatch/internal/config"
	dbRedis "github.com/kailas-cloud/resumatch/internal/db/redis"
	"github.com/kailas-cloud/resumatch/internal/domain"
	domana "github.com/kailas-cloud/resumatch/internal/domain/analysis"
	"github.com/kailas-cloud/resumatch/internal/domain/skill"
	logpkg "github.com/kailas-cloud/resumatch/internal/logger"
	"github.com/kailas-cloud/resumatch/internal/metrics"
	analysisrepo "github.com/kailas-cloud/resumatch/internal/repository/analysis"
	"github.com/kailas-cloud/resumatch/internal/repository/embcache"
	chiTransport "github.com/kailas-cloud/resumatch/internal/transport/chi"
	geminiLLM "github.com/kailas-cloud/resumatch/internal/transport/gemini"
	openaiTransport "github.com/kailas-cloud/resumatch/internal/transport/openai"
	analysisuc "github.com/kailas-cloud/resumatch/internal/usecase/analysis"
	embeddinguc "github.com/kailas-cloud/resumatch/internal/usecase/embedding"
	"github.com/kailas-cloud/resumatch/internal/usecase/extract"
	healthuc "github.com/kailas-cloud/resumatch/internal/usecase/health"
	hosteduc "github.com/kailas-cloud/resumatch/internal/usecase/hosted"
	"github.com/kailas-cloud/resumatch/internal/usecase/match"
	"github.com/kailas-cloud/resumatch/internal/usecase/score"
	"github.com/kailas-cloud/resumatch/internal/version"
)

func main() {
	// .env is optional; real deployments inject the environment directly.
	_ = godotenv.Load()

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

	logger.Info("Starting resumatch API server",
		zap.String("version", version.String()),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Bool("database", cfg.Database.Enabled()),
		zap.String("embedding_provider", cfg.Embedding.Provider),
		zap.String("llm_provider", cfg.LLM.Provider),
		zap.String("default_backend", cfg.Analysis.DefaultBackend),
	)

	metrics.Register()
	ctx := context.Background()

	store := openStore(ctx, cfg.Database, logger)
	if store != nil {
		defer store.Close()
	}

	lex := skill.Default()
	if cfg.Analysis.LexiconFile != "" {
		overrides, err := config.LoadLexiconOverrides(cfg.Analysis.LexiconFile)
		if err != nil {
			logger.Fatal("Failed to load lexicon overrides", zap.Error(err))
		}
		lex = lex.Extend(overrides)
		logger.Info("Lexicon extended", zap.String("file", cfg.Analysis.LexiconFile))
	}

	// Embedding provider. Without one, matching runs in exact-match mode.
	var (
		matchEmbedder match.Embedder
		scoreEmbedder score.Embedder
		embChecker    healthuc.Checker
	)
	if cfg.Embedding.Enabled() {
		loadTimeout := time.Duration(cfg.Embedding.TimeoutSec) * time.Second
		provider := embeddinguc.NewProvider(
			embeddingLoader(cfg.Embedding, store, cfg.Database, logger),
			logger,
			embeddinguc.WithCacheSize(cfg.Analysis.CacheSize),
			embeddinguc.WithLoadTimeout(loadTimeout),
			embeddinguc.WithObserver(metrics.EmbeddingObserver{}),
		)
		initCtx, cancel := context.WithTimeout(ctx, loadTimeout)
		err := provider.Init(initCtx)
		cancel()
		if err != nil {
			// Not fatal: analyses degrade and the next call retries the load.
			logger.Warn("Embedding model not loaded", zap.Error(err))
		}
		matchEmbedder, scoreEmbedder, embChecker = provider, provider, provider
	} else {
		logger.Warn("No embedding provider configured, skill matching uses exact comparison")
	}

	localSvc := analysisuc.New(
		extract.New(lex),
		match.New(matchEmbedder, lex, logger, match.WithThreshold(cfg.Analysis.Threshold)),
		score.New(scoreEmbedder, lex, logger),
		metrics.AnalysisObserver{},
		logger,
	)

	var (
		hostedAnalyzer chiTransport.Analyzer
		llmChecker     healthuc.Checker
	)
	if cfg.LLM.Enabled() {
		gen, err := buildGenerator(ctx, cfg.LLM, logger)
		if err != nil {
			logger.Fatal("Failed to create hosted model client", zap.Error(err))
		}
		hostedAnalyzer = hosteduc.New(gen, hostedObserver{}, logger,
			hosteduc.WithTimeout(time.Duration(cfg.LLM.TimeoutSec)*time.Second))
		if hc, ok := gen.(healthuc.Checker); ok {
			llmChecker = hc
		}
		logger.Info("Hosted model configured",
			zap.String("provider", gen.Provider()),
			zap.String("model", gen.Model()),
		)
	}

	// Interfaces stay nil rather than wrapping nil pointers.
	var (
		records  chiTransport.RecordStore
		dbPinger healthuc.DBPinger
	)
	if store != nil {
		records = analysisrepo.New(store)
		dbPinger = store
	}

	server := chiTransport.NewServer(chiTransport.Deps{
		Local:          localSvc,
		Hosted:         hostedAnalyzer,
		Records:        records,
		Health:         healthuc.New(dbPinger, embChecker, llmChecker),
		DefaultBackend: domana.Backend(cfg.Analysis.DefaultBackend),
		Logger:         logger,
	})
	router := chiTransport.NewRouter(server, chiTransport.RouterOptions{
		APIKeys:      cfg.Auth.APIKeys,
		MaxBodyBytes: int64(cfg.HTTP.MaxBodyKB) << 10,
		Logger:       logger,
	})

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		ReadHeaderTimeout: time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout:      time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

// openStore connects to Redis when configured. A nil store disables persistence.
func openStore(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) *dbRedis.Store {
	if !cfg.Enabled() {
		logger.Info("No database configured, results are not persisted")
		return nil
	}
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Addrs,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	if err := store.WaitForReady(ctx, time.Duration(cfg.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database", zap.Strings("addrs", cfg.Addrs))
	return store
}

// embeddingLoader assembles the model chain: OpenAI -> Redis cache -> Instrumented.
// The loader probes the endpoint so an unreachable model counts as not loaded.
func embeddingLoader(
	cfg config.EmbeddingConfig, store *dbRedis.Store, dbCfg config.DatabaseConfig, logger *zap.Logger,
) embeddinguc.Loader {
	return func(ctx context.Context) (domain.Embedder, error) {
		base := openaiTransport.NewEmbedder(&openaiTransport.Config{
			APIKey:   cfg.APIKey,
			BaseURL:  cfg.BaseURL,
			Model:    cfg.Model,
			Provider: cfg.Provider,
			Logger:   logger,
		})
		probeCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.TimeoutSec)*time.Second)
		defer cancel()
		if err := base.HealthCheck(probeCtx); err != nil {
			return nil, fmt.Errorf("probe %s: %w", cfg.Model, err)
		}

		var embedder domain.Embedder = base
		if store != nil {
			embedder = embcache.New(base, store, metrics.EmbeddingStoreCacheTotal, logger,
				embcache.WithModel(cfg.Model),
				embcache.WithTTL(time.Duration(dbCfg.EmbeddingTTLHrs)*time.Hour),
			)
		}

		return embeddinguc.NewInstrumentedEmbedder(
			embedder, cfg.Provider, cfg.Model, time.Duration(cfg.TimeoutSec)*time.Second, logger,
		), nil
	}
}

func buildGenerator(ctx context.Context, cfg config.LLMConfig, logger *zap.Logger) (hosteduc.Generator, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		g, err := geminiLLM.NewGenerator(ctx, &geminiLLM.Config{
			APIKey:          cfg.APIKey,
			BaseURL:         cfg.BaseURL,
			Model:           cfg.Model,
			Temperature:     cfg.Temperature,
			TopK:            cfg.TopK,
			TopP:            cfg.TopP,
			MaxOutputTokens: int32(cfg.MaxTokens), //nolint:gosec // bounded by config
			Logger:          logger,
		})
		if err != nil {
			return nil, fmt.Errorf("gemini client: %w", err)
		}
		return g, nil
	case config.ProviderOpenAI:
		return openaiTransport.NewGenerator(&openaiTransport.GeneratorConfig{
			Config: openaiTransport.Config{
				APIKey:   cfg.APIKey,
				BaseURL:  cfg.BaseURL,
				Model:    cfg.Model,
				Provider: cfg.Provider,
				Logger:   logger,
			},
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
			JSONMode:    true,
		}), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

// hostedObserver feeds both hosted-model and analysis metrics.
type hostedObserver struct {
	metrics.LLMObserver
	metrics.AnalysisObserver
}
