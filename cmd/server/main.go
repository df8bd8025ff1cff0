package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/sifan077/linkstore/config"
	appmodel "github.com/sifan077/linkstore/internal/app/model"
	apprepository "github.com/sifan077/linkstore/internal/app/repository"
	appserver "github.com/sifan077/linkstore/internal/app/server"
	appservice "github.com/sifan077/linkstore/internal/app/service"
	"github.com/sifan077/linkstore/internal/infra/logger"
	infraNATS "github.com/sifan077/linkstore/internal/infra/nats"
	infraPostgres "github.com/sifan077/linkstore/internal/infra/postgres"
	infraPrometheus "github.com/sifan077/linkstore/internal/infra/prometheus"
	infraRedis "github.com/sifan077/linkstore/internal/infra/redis"
	infraSQLite "github.com/sifan077/linkstore/internal/infra/sqlite"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.MustInit(logger.ConfigFromEnv())
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config", zap.Error(err))
	}

	log.Info("Configuration loaded successfully",
		zap.String("addr", cfg.Server.Addr()),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Bool("nats_enabled", cfg.NATS.Enabled),
		zap.Bool("prometheus_enabled", cfg.Prometheus.Enabled),
	)

	links, closeStore, err := openLinkRepository(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to open link store", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}
	defer closeStore()
	log.Info("Link store ready", zap.String("driver", cfg.Database.Driver))

	var publisher appservice.LinkEventPublisher
	if cfg.NATS.Enabled {
		natsConn, js, err := infraNATS.Connect(cfg.NATS)
		if err != nil {
			log.Fatal("Failed to connect to NATS", zap.Error(err))
		}
		defer natsConn.Drain()

		linkPublisher := appservice.NewLinkPublisher(js)
		if err := linkPublisher.EnsureStream(); err != nil {
			log.Fatal("Failed to prepare link stream", zap.Error(err))
		}
		publisher = linkPublisher
		log.Info("Connected to NATS successfully", zap.String("url", infraNATS.URL(cfg.NATS)))
	}

	metrics := infraPrometheus.NewMetrics(promclient.DefaultRegisterer)
	if cfg.Prometheus.Enabled {
		promServer := infraPrometheus.NewServer(cfg.Prometheus, promclient.DefaultGatherer)
		go func() {
			log.Info("Starting Prometheus metrics server", zap.String("addr", promServer.Addr))
			if err := promServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("Prometheus metrics server stopped unexpectedly", zap.Error(err))
			}
		}()
		defer func() {
			if err := promServer.Close(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Warn("Failed to close Prometheus server", zap.Error(err))
			}
		}()
	}

	linkService := appservice.NewLinkService(appservice.LinkServiceDeps{
		Logger:    log,
		Links:     links,
		Publisher: publisher,
	})

	server, err := appserver.New(appserver.Dependencies{
		Logger:  log,
		Links:   linkService,
		Metrics: metrics,
	})
	if err != nil {
		log.Fatal("Failed to build HTTP server", zap.Error(err))
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Warn("Graceful shutdown failed", zap.Error(err))
		}
	}()

	log.Info("Listening", zap.String("addr", cfg.Server.Addr()))
	if err := server.Listen(cfg.Server.Addr()); err != nil {
		log.Error("Fiber server exited", zap.Error(err))
	}
	log.Info("Server stopped")
}

// openLinkRepository connects the configured backend and ensures its schema.
// The returned func releases every handle that was opened.
func openLinkRepository(ctx context.Context, cfg *config.Config) (apprepository.LinkRepository, func(), error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		gormDB, err := infraPostgres.NewGorm(cfg.Postgres)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := gormDB.DB()
		if err != nil {
			return nil, nil, err
		}
		defer sqlDB.Close()

		if err := infraPostgres.AutoMigrate(ctx, gormDB, &appmodel.Link{}); err != nil {
			return nil, nil, err
		}

		pool, err := infraPostgres.NewPool(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, err
		}
		return apprepository.NewPgxLinkRepository(pool), pool.Close, nil

	case config.DriverRedis:
		client, err := infraRedis.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return apprepository.NewRedisLinkRepository(client, cfg.Redis.KeyPrefix), func() { _ = client.Close() }, nil

	default:
		gormDB, err := infraSQLite.NewGorm(cfg.SQLite)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := gormDB.DB()
		if err != nil {
			return nil, nil, err
		}
		if err := infraSQLite.AutoMigrate(ctx, gormDB, &appmodel.Link{}); err != nil {
			_ = sqlDB.Close()
			return nil, nil, err
		}
		return apprepository.NewLinkRepository(gormDB), func() { _ = sqlDB.Close() }, nil
	}
}
