package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AngelinAnto/OneAdmit/internal/api"
	"github.com/AngelinAnto/OneAdmit/internal/app"
	"github.com/AngelinAnto/OneAdmit/internal/cache"
	"github.com/AngelinAnto/OneAdmit/internal/config"
	"github.com/AngelinAnto/OneAdmit/internal/controller"
	"github.com/AngelinAnto/OneAdmit/internal/controller/handlers"
	"github.com/AngelinAnto/OneAdmit/internal/repository"
	"github.com/AngelinAnto/OneAdmit/internal/repository/base"
	"github.com/AngelinAnto/OneAdmit/internal/service"
	"github.com/AngelinAnto/OneAdmit/internal/storage"
	"github.com/AngelinAnto/OneAdmit/migrations"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("OnlyAdmit stopped with error", zap.Error(err))
	}
	logger.Info("👋 OnlyAdmit stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	logger.Info("Starting OnlyAdmit",
		zap.String("environment", cfg.Environment),
		zap.String("http_addr", cfg.HTTPAddr),
		zap.Bool("telegram_enabled", cfg.TelegramToken != ""),
	)

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("create pool: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	logger.Info("✅ Connected to PostgreSQL")

	if cfg.MigrationsEnabled {
		migrator, err := app.NewMigrator(pool, migrations.FS, logger)
		if err != nil {
			return fmt.Errorf("create migrator: %w", err)
		}
		err = migrator.Run(ctx)
		migrator.Close()
		if err != nil {
			return err
		}
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		// reads go straight to PostgreSQL while Redis is unreachable
		logger.Warn("Redis is unreachable, query cache degraded", zap.Error(err))
	}
	queryCache := cache.New(redisClient, cfg.CacheTTL, cfg.QueryRetry, logger.Named("cache"))

	files, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		return fmt.Errorf("create storage: %w", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(pool)
	profileRepo := repository.NewStudentProfileRepository(pool)
	collegeRepo := repository.NewCollegeRepository(pool)
	appRepo := repository.NewApplicationRepository(pool)
	slotRepo := repository.NewExamSlotRepository(pool)
	announcementRepo := repository.NewAnnouncementRepository(pool)
	tx := base.NewTransactor(pool)

	// Services
	userService := service.NewUserService(userRepo, logger)
	profileService := service.NewProfileService(profileRepo, files, logger)
	collegeService := service.NewCollegeService(collegeRepo, userRepo, tx, files, queryCache, logger)
	applicationService := service.NewApplicationService(appRepo, collegeRepo, profileRepo, slotRepo, tx, queryCache, logger)
	examSlotService := service.NewExamSlotService(slotRepo, appRepo, collegeRepo, tx, queryCache, cfg.ExamSlotDeleteGuard, logger)
	announcementService := service.NewAnnouncementService(announcementRepo, collegeRepo, applicationService, queryCache, logger)

	if !cfg.ExamSlotDeleteGuard {
		logger.Warn("Exam slots with booked seats can be deleted, set EXAM_SLOT_DELETE_GUARD=true to refuse")
	}

	scheduler := app.NewScheduler(collegeService, cfg.CacheWarmInterval, logger.Named("scheduler"))
	scheduler.Start(ctx)
	defer scheduler.Stop()

	// Public HTTP API
	router := api.NewRouter(api.NewHandler(collegeService, examSlotService, logger), logger, cfg.IsProduction())
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 2)
	go func() {
		logger.Info("🌐 HTTP API listening", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	if cfg.TelegramToken != "" {
		b, err := bot.New(cfg.TelegramToken, bot.WithErrorsHandler(func(err error) {
			logger.Error("Telegram error", zap.Error(err))
		}))
		if err != nil {
			return fmt.Errorf("create bot: %w", err)
		}

		botController := controller.NewBotController(b, handlers.Services{
			Users:         userService,
			Profiles:      profileService,
			Colleges:      collegeService,
			Applications:  applicationService,
			ExamSlots:     examSlotService,
			Announcements: announcementService,
		}, logger)

		if err := botController.RegisterHandlers(ctx); err != nil {
			// the menu is cosmetic, commands still work without it
			logger.Warn("Bot commands menu not set", zap.Error(err))
		}

		go func() {
			if err := botController.Start(ctx); err != nil {
				errCh <- err
			}
		}()
	} else {
		logger.Warn("TELEGRAM_TOKEN is not set, running the HTTP API only")
	}

	select {
	case <-ctx.Done():
		logger.Info("Shutting down...")
	case err := <-errCh:
		logger.Error("Component failed, shutting down", zap.Error(err))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}

	return nil
}
