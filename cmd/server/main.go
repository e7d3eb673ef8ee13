// Package main runs the wallet forensics HTTP service.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"solana-wallet-forensics/internal/alert"
	"solana-wallet-forensics/internal/api"
	"solana-wallet-forensics/internal/bootstrap"
	"solana-wallet-forensics/internal/cache"
	"solana-wallet-forensics/internal/config"
	"solana-wallet-forensics/internal/fetcher"
	"solana-wallet-forensics/internal/forensics"
	"solana-wallet-forensics/internal/graphstore"
	"solana-wallet-forensics/internal/logger"
	"solana-wallet-forensics/internal/registry"
	"solana-wallet-forensics/internal/risk"
	"solana-wallet-forensics/internal/solana"
	"solana-wallet-forensics/internal/storage"
	"solana-wallet-forensics/internal/storage/memory"
	"solana-wallet-forensics/internal/storage/migrations"
	pgstore "solana-wallet-forensics/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_FILE"), "Path to config file (default: search ., ./config, /etc/wallet-forensics)")
	flag.Parse()

	loadEnvFile()

	// Load configuration
	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.LoadFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Create logger
	log, err := logger.NewLogger(cfg.App.LogLevel, cfg.App.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	app := fx.New(
		fx.Supply(cfg),
		fx.Supply(log),
		fx.Provide(func() *zap.Logger { return log.Logger }),

		// Infrastructure providers
		fx.Provide(
			registry.Default,
			newRPCClient,
			newCache,
			newFetcher,
			newAuditStore,
			newHub,
			newPublisher,
			newExporter,
		),

		// Engine and transport
		fx.Provide(
			newEngine,
			newRouter,
		),

		// Lifecycle hooks
		fx.Invoke(startHub),
		fx.Invoke(startHTTPServer),

		fx.WithLogger(func() fxevent.Logger {
			return fxevent.NopLogger
		}),
	)

	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStart()
	if err := app.Start(startCtx); err != nil {
		log.Error("Failed to start application", zap.Error(err))
		os.Exit(1)
	}

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Shutting down", zap.String("signal", sig.String()))

	stopCtx, cancel := context.WithTimeout(context.Background(), cfg.API.ShutdownTimeout+5*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Error("Failed to stop application gracefully", zap.Error(err))
		os.Exit(1)
	}

	log.Info("Shutdown complete")
}

func newRPCClient(cfg *config.Config, log *zap.Logger) solana.RPCClient {
	return bootstrap.NewRPCClient(cfg.Solana, log.With(zap.String("component", "rpc")))
}

// newCache returns a nil cache when caching is disabled.
func newCache(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (cache.Cache, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c, closeFn, err := bootstrap.NewCache(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create cache: %w", err)
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			closeFn()
			return nil
		},
	})
	log.Info("Fetch cache ready", zap.String("backend", cfg.Cache.Backend), zap.Duration("ttl", cfg.Cache.TTL))
	return c, nil
}

type fetcherParams struct {
	fx.In
	RPC      solana.RPCClient
	Registry *registry.Registry
	Cache    cache.Cache
	Config   *config.Config
	Logger   *zap.Logger
}

func newFetcher(p fetcherParams) fetcher.Fetcher {
	return bootstrap.NewFetcher(p.RPC, p.Registry, p.Cache, p.Config, p.Logger)
}

// newAuditStore connects to Postgres when a DSN is configured and falls back
// to the in-memory store otherwise.
func newAuditStore(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (storage.AnalysisStore, error) {
	if cfg.Postgres.DSN == "" {
		log.Info("Audit trail kept in memory")
		return memory.NewAnalysisStore(), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgstore.NewPool(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
	if err != nil {
		return nil, err
	}
	if cfg.Postgres.Migrate {
		applied, err := migrations.RunPostgresMigrations(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		if len(applied) > 0 {
			log.Info("Applied audit migrations", zap.Strings("versions", applied))
		}
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			pool.Close()
			return nil
		},
	})

	log.Info("Audit trail stored in Postgres")
	return pgstore.NewAnalysisStore(pool), nil
}

func newHub(log *zap.Logger) *api.Hub {
	return api.NewHub(log.With(zap.String("component", "stream")))
}

// newPublisher streams every scored analysis to websocket subscribers and
// forwards HIGH-risk events to NATS when enabled.
func newPublisher(lc fx.Lifecycle, cfg *config.Config, hub *api.Hub, log *zap.Logger) (alert.Publisher, error) {
	publishers := alert.Multi{hub}

	if cfg.NATS.Enabled {
		pub, err := alert.ConnectNATS(alert.NATSConfig{
			URL:               cfg.NATS.URL,
			SubjectPrefix:     cfg.NATS.SubjectPrefix,
			ConnectTimeout:    cfg.NATS.ConnectTimeout,
			ReconnectDelay:    cfg.NATS.ReconnectDelay,
			ReconnectAttempts: cfg.NATS.ReconnectAttempts,
		}, log.With(zap.String("component", "nats")))
		if err != nil {
			return nil, fmt.Errorf("connect nats: %w", err)
		}
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				return pub.Close()
			},
		})
		publishers = append(publishers, alert.HighRiskOnly(pub))
	}

	return publishers, nil
}

// newExporter returns a nil exporter when Neo4j export is disabled.
func newExporter(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (graphstore.Exporter, error) {
	if !cfg.Neo4j.Enabled {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	exp, err := graphstore.Connect(ctx, graphstore.Config{
		URI:                          cfg.Neo4j.URI,
		Username:                     cfg.Neo4j.Username,
		Password:                     cfg.Neo4j.Password,
		Database:                     cfg.Neo4j.Database,
		MaxConnectionPoolSize:        cfg.Neo4j.MaxConnectionPoolSize,
		ConnectionAcquisitionTimeout: cfg.Neo4j.ConnectionAcquisitionTimeout,
	}, log.With(zap.String("component", "neo4j")))
	if err != nil {
		return nil, fmt.Errorf("connect neo4j: %w", err)
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return exp.Close(ctx)
		},
	})
	return exp, nil
}

type engineParams struct {
	fx.In
	Fetcher   fetcher.Fetcher
	Registry  *registry.Registry
	Audit     storage.AnalysisStore
	Publisher alert.Publisher
	Exporter  graphstore.Exporter
	Config    *config.Config
	Logger    *zap.Logger
}

func newEngine(p engineParams) *forensics.Engine {
	return forensics.New(forensics.Deps{
		Fetcher:   p.Fetcher,
		Registry:  p.Registry,
		Scorer:    risk.NewScorer(),
		Audit:     p.Audit,
		Publisher: p.Publisher,
		Exporter:  p.Exporter,
		Logger:    p.Logger.With(zap.String("component", "engine")),
	}, bootstrap.EngineConfig(p.Config.Fetch))
}

func newRouter(engine *forensics.Engine, hub *api.Hub, cfg *config.Config, log *zap.Logger) http.Handler {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	return api.SetupRouter(engine, api.Options{
		Limiter:        api.NewRateLimiter(cfg.API.RateLimit, cfg.API.RateBurst),
		Hub:            hub,
		MaxUploadBytes: cfg.API.MaxUploadBytes,
		Logger:         log.With(zap.String("component", "api")),
	})
}

// startHub runs websocket delivery for the application lifetime.
func startHub(lc fx.Lifecycle, hub *api.Hub) {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go hub.Run(ctx)
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}

// startHTTPServer serves the API until the application stops.
func startHTTPServer(lc fx.Lifecycle, handler http.Handler, cfg *config.Config, log *zap.Logger) {
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.API.Port),
		Handler:      handler,
		ReadTimeout:  cfg.API.ReadTimeout,
		WriteTimeout: cfg.API.WriteTimeout,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting HTTP server", zap.String("addr", server.Addr))
			go func() {
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("HTTP server error", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Stopping HTTP server")
			shutdownCtx, cancel := context.WithTimeout(ctx, cfg.API.ShutdownTimeout)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

// loadEnvFile loads environment variables from .env file if it exists.
func loadEnvFile() {
	data, err := os.ReadFile(".env")
	if err != nil {
		return // File doesn't exist, use system env vars
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Don't override existing env vars
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
}
