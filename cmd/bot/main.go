package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Freeeeeet/condo_bot/internal/app"
	"github.com/Freeeeeet/condo_bot/internal/availability"
	"github.com/Freeeeeet/condo_bot/internal/cache"
	"github.com/Freeeeeet/condo_bot/internal/config"
	"github.com/Freeeeeet/condo_bot/internal/controller"
	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/condo_bot/internal/repository"
	"github.com/Freeeeeet/condo_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const noticeExpiryInterval = time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := app.NewLogger(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	logger.Sugar().Infow("Starting condominium bot",
		"environment", cfg.Environment,
		"token_length", len(cfg.TelegramToken),
		"slots", len(cfg.TimeSlots),
		"timezone", cfg.Location.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("Bot stopped with error", zap.Error(err))
	}
	logger.Info("Bot stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	// База данных
	pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
	if err != nil {
		return fmt.Errorf("create db pool: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping db: %w", err)
	}
	logger.Info("Connected to PostgreSQL")

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	if err := migrator.Run(ctx); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	if err := migrator.Close(); err != nil {
		logger.Warn("Failed to close migrator", zap.Error(err))
	}

	// Кэш снимков месяцев
	monthCache, closeCache := cache.Connect(ctx, cache.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		TTL:      cfg.CacheTTL,
	}, logger)
	defer func() {
		if err := closeCache(); err != nil {
			logger.Warn("Failed to close cache", zap.Error(err))
		}
	}()

	mode, err := availability.ParsePolicyMode(cfg.SlotPolicy)
	if err != nil {
		return fmt.Errorf("parse slot policy: %w", err)
	}

	// Репозитории
	userRepo := repository.NewUserRepository(pool)
	reservationRepo := repository.NewReservationRepository(pool)
	noticeRepo := repository.NewNoticeRepository(pool)
	documentRepo := repository.NewDocumentRepository(pool)
	settingsRepo := repository.NewSettingsRepository(pool)

	// Сервисы
	settingsService := service.NewSettingsService(settingsRepo, logger)
	userService := service.NewUserService(userRepo, cfg.AdminTelegramIDs, logger)
	reservationService := service.NewReservationService(reservationRepo, settingsService, monthCache, service.SlotCatalog{
		Labels: cfg.TimeSlots,
		Policy: availability.SlotPolicy{
			Mode:         mode,
			FullDayLabel: cfg.FullDaySlot,
		},
		FirstWeekday: cfg.FirstWeekday,
		Location:     cfg.Location,
	}, logger)
	noticeService := service.NewNoticeService(noticeRepo, logger)
	documentService := service.NewDocumentService(documentRepo, logger)

	services := callbacktypes.Services{
		Users:        userService,
		Reservations: reservationService,
		Notices:      noticeService,
		Documents:    documentService,
		Settings:     settingsService,
		Export:       service.NewExportService(reservationService, logger),
		Dashboard:    service.NewDashboardService(reservationService, userService, noticeService, documentService),
	}

	// Telegram
	b, err := bot.New(cfg.TelegramToken)
	if err != nil {
		return fmt.Errorf("create telegram bot: %w", err)
	}

	botController := controller.NewBotController(b, services, logger)
	if err := botController.RegisterHandlers(ctx); err != nil {
		return fmt.Errorf("register handlers: %w", err)
	}

	scheduler := app.NewScheduler(noticeService, noticeExpiryInterval, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	if err := botController.Start(ctx); err != nil {
		return fmt.Errorf("run bot: %w", err)
	}
	return nil
}
