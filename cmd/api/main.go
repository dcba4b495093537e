package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	httptransport "github.com/spec-kit/ticket-intake/internal/api/http"
	"github.com/spec-kit/ticket-intake/internal/config"
	"github.com/spec-kit/ticket-intake/internal/events"
	"github.com/spec-kit/ticket-intake/internal/observability"
	"github.com/spec-kit/ticket-intake/internal/persistence"
	"github.com/spec-kit/ticket-intake/internal/repository"
	"github.com/spec-kit/ticket-intake/internal/service"
	"github.com/spec-kit/ticket-intake/internal/worker"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore, err := openTicketRepository(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open ticket store", zap.String("backend", cfg.Store.Backend), zap.Error(err))
	}
	defer closeStore()

	dispatcher := events.NewInMemoryDispatcher()
	notifications := service.NewNotificationService(logger, cfg.Notification)
	notificationWorker := worker.NewNotificationWorker(notifications, logger, cfg.Notification.QueueSize)
	notificationWorker.Start(ctx, dispatcher)

	tickets := service.NewTicketService(service.TicketDependencies{
		TicketRepo: store,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	app := httptransport.NewServer(httptransport.ServerDependencies{
		App:          cfg.App,
		StoreBackend: cfg.Store.Backend,
		Logger:       logger,
		Metrics:      observability.NewMetrics(),
		Tickets:      tickets,
		Store:        store,
	})

	go func() {
		logger.Info("server listening",
			zap.String("addr", cfg.App.Addr()),
			zap.String("store", cfg.Store.Backend),
		)
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()
	logger.Info("ready to receive tickets")

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	cancel()
	notificationWorker.Wait()
}

// openTicketRepository builds the configured store and returns a func that
// releases its connections.
func openTicketRepository(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.TicketRepository, func(), error) {
	switch cfg.Store.Backend {
	case config.StoreBackendMemory:
		return repository.NewMemoryTicketRepository(), func() {}, nil

	case config.StoreBackendPostgres:
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, nil, err
		}
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
				pg.Close()
				return nil, nil, fmt.Errorf("run migrations: %w", err)
			}
		}
		return repository.NewPostgresTicketRepository(pg.PoolHandle()), pg.Close, nil

	case config.StoreBackendRedis:
		rdb, err := persistence.NewRedis(ctx, cfg.Redis, logger)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewRedisTicketRepository(rdb.Client, cfg.Redis.KeyPrefix), rdb.Close, nil

	case config.StoreBackendMongo:
		mg, err := persistence.NewMongo(ctx, cfg.Mongo, logger)
		if err != nil {
			return nil, nil, err
		}
		closer := func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			mg.Close(closeCtx)
		}
		return repository.NewMongoTicketRepository(mg.Database()), closer, nil
	}
	return nil, nil, fmt.Errorf("unsupported store backend %q", cfg.Store.Backend)
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
