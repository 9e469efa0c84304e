package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/otabek-m/masterbook/internal/app"
	"github.com/otabek-m/masterbook/internal/config"
	"github.com/otabek-m/masterbook/internal/controller"
	"github.com/otabek-m/masterbook/internal/notify"
	"github.com/otabek-m/masterbook/internal/service"
	"github.com/otabek-m/masterbook/internal/storage"
	"github.com/otabek-m/masterbook/internal/telegram"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting booking API",
		zap.String("environment", cfg.Environment),
		zap.String("storage", cfg.Storage),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := newStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to init storage", zap.Error(err))
	}
	defer store.Close()

	if err := storage.EnsureSeeded(ctx, store, time.Now(), logger); err != nil {
		logger.Fatal("Failed to seed document", zap.Error(err))
	}

	verifier, err := telegram.NewVerifier(cfg.TelegramToken, cfg.InitDataCache)
	if err != nil {
		logger.Fatal("Failed to init initdata verifier", zap.Error(err))
	}

	var notifier service.Notifier
	tgNotifier, err := notify.NewTelegramNotifier(cfg.TelegramToken, cfg.AdminChatID, logger)
	if err != nil {
		logger.Fatal("Failed to init telegram notifier", zap.Error(err))
	}
	if tgNotifier != nil {
		notifier = tgNotifier
	}

	catalogService := service.NewCatalogService(store, logger)
	slotService := service.NewSlotService(store, logger)
	bookingService := service.NewBookingService(store, notifier, logger)

	api := controller.NewAPIController(catalogService, slotService, bookingService, verifier, logger)
	server := app.NewServer(cfg, api, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Run()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Shutdown failed", zap.Error(err))
		}
	}
}

// newStore выбирает бэкенд документа: JSON-файл (дефолт) или postgres
func newStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (storage.Store, error) {
	switch cfg.Storage {
	case config.StoragePostgres:
		pool, err := pgxpool.New(ctx, cfg.DBDSN)
		if err != nil {
			return nil, err
		}

		migrator, err := app.NewMigrator(pool, "migrations", logger)
		if err != nil {
			pool.Close()
			return nil, err
		}
		defer migrator.Close()

		if err := migrator.Run(ctx); err != nil {
			pool.Close()
			return nil, err
		}

		return storage.NewPostgresStore(pool, logger), nil
	default:
		return storage.NewFileStore(cfg.DBFile, logger)
	}
}
