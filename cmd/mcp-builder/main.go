package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mcpbuilder/mcp-builder/internal/api"
	"github.com/mcpbuilder/mcp-builder/internal/api/router"
	"github.com/mcpbuilder/mcp-builder/internal/config"
	"github.com/mcpbuilder/mcp-builder/internal/database"
	"github.com/mcpbuilder/mcp-builder/internal/logging"
	"github.com/mcpbuilder/mcp-builder/internal/persistence"
	"github.com/mcpbuilder/mcp-builder/internal/proxy"
	"github.com/mcpbuilder/mcp-builder/internal/service"
	"github.com/mcpbuilder/mcp-builder/internal/store"
	"github.com/mcpbuilder/mcp-builder/internal/telemetry"
)

const (
	connectTimeout  = 10 * time.Second
	importTimeout   = 5 * time.Minute
	shutdownTimeout = 10 * time.Second

	mongoCollection = "integrations"
	redisKeyPrefix  = "mcp-builder:"
)

func main() {
	// Parse command line flags
	showVersion := flag.Bool("version", false, "Display version information")
	flag.Parse()

	// Show version information if requested
	if *showVersion {
		fmt.Printf("MCP Builder v%s\n", Version)
		fmt.Printf("Git commit: %s\n", GitCommit)
		fmt.Printf("Build time: %s\n", BuildTime)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.PrettyLogs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting MCP Builder",
		zap.String("version", Version),
		zap.String("commit", GitCommit),
		zap.String("database", string(cfg.DatabaseType)),
		zap.String("storage", string(cfg.StorageType)))

	if err := run(cfg, logger); err != nil {
		logger.Error("MCP Builder stopped with error", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := openDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("error closing database", zap.Error(err))
		} else {
			logger.Info("database connection closed")
		}
	}()

	// Import seed data if seed source is provided
	if cfg.SeedFrom != "" {
		logger.Info("importing seed data", zap.String("source", cfg.SeedFrom))
		importCtx, cancel := context.WithTimeout(ctx, importTimeout)
		err := database.ImportSeed(importCtx, db, cfg.SeedFrom, logger)
		cancel()
		if err != nil {
			logger.Error("failed to import seed data", zap.Error(err))
		} else {
			logger.Info("seed import completed")
		}
	}

	opts := []service.Option{service.WithLogger(logger)}
	if !cfg.SimulateLatency {
		opts = append(opts, service.WithLatency(service.NoLatency()))
	}
	integrations := service.NewIntegrationService(db, opts...)

	storage, closeStorage, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStorage()

	sessions := store.NewSessions()
	drafts := persistence.NewLocalStore(storage, logger)

	shutdownTelemetry, metrics, err := telemetry.InitMetrics(cfg.Version)
	if err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}
	defer func() {
		if err := shutdownTelemetry(context.Background()); err != nil {
			logger.Error("failed to shutdown telemetry", zap.Error(err))
		}
	}()
	metrics.Up.Record(ctx, 1)

	var autosaver *persistence.Autosaver
	if drafts.Enabled() {
		autosaver = persistence.NewAutosaver(drafts, sessions, cfg.AutosaveSchedule, logger)
		autosaver.OnSaved(func(ctx context.Context, saved int) {
			metrics.DraftsSaved.Add(ctx, int64(saved))
		})
		if err := autosaver.Start(ctx); err != nil {
			return err
		}
	}

	var proxyHandler *proxy.Handler
	if cfg.ProxyTarget != "" {
		proxyHandler, err = proxy.New(cfg.ProxyTarget, logger)
		if err != nil {
			return err
		}
		logger.Info("proxy enabled", zap.String("prefix", proxy.Prefix), zap.String("target", proxyHandler.Target()))
	}

	server := api.NewServer(cfg, router.Services{
		Integrations: integrations,
		Sessions:     sessions,
		Drafts:       drafts,
		Proxy:        proxyHandler,
		Logger:       logger,
	}, metrics)

	// Start server in a goroutine so it doesn't block signal handling
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
	case <-ctx.Done():
	}
	logger.Info("shutting down server")

	sctx, scancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer scancel()

	if err := server.Shutdown(sctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	if autosaver != nil {
		autosaver.Stop()
		saved := autosaver.RunNow(sctx)
		logger.Info("final autosave completed", zap.Int("saved", saved))
	}

	logger.Info("server exiting")
	return nil
}

//nolint:ireturn
func openDatabase(ctx context.Context, cfg *config.Config, logger *zap.Logger) (database.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	switch cfg.DatabaseType {
	case config.DatabaseTypeMemory:
		if cfg.SeedFrom != "" {
			return database.NewMemoryDB(), nil
		}
		return database.NewSeededMemoryDB(time.Now().UTC()), nil
	case config.DatabaseTypePostgreSQL:
		db, err := database.NewPostgreSQL(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, err
		}
		return db, nil
	case config.DatabaseTypeMongoDB:
		db, err := database.NewMongoDB(ctx, cfg.DatabaseURL, cfg.DatabaseName, mongoCollection, logger)
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("invalid database type: %s; supported types: %s, %s, %s",
			cfg.DatabaseType, config.DatabaseTypeMemory, config.DatabaseTypePostgreSQL, config.DatabaseTypeMongoDB)
	}
}

// openStorage returns the draft storage backend and a function releasing it. A nil
// Storage disables drafts.
//
//nolint:ireturn
func openStorage(ctx context.Context, cfg *config.Config) (persistence.Storage, func(), error) {
	noop := func() {}

	switch cfg.StorageType {
	case config.StorageTypeNone:
		return nil, noop, nil
	case config.StorageTypeMemory:
		return persistence.NewMemoryStorage(cfg.StorageQuotaBytes), noop, nil
	case config.StorageTypeFile:
		return persistence.NewFileStorage(cfg.StoragePath), noop, nil
	case config.StorageTypeRedis:
		rdb, err := persistence.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, noop, err
		}
		return persistence.NewRedisStorage(rdb, redisKeyPrefix), func() { _ = rdb.Close() }, nil
	default:
		return nil, noop, fmt.Errorf("invalid storage type: %s", cfg.StorageType)
	}
}
