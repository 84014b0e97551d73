package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agriportal_backend/internal/adapters/storage"
	"agriportal_backend/internal/advisory"
	advisoryservice "agriportal_backend/internal/advisory/service"
	"agriportal_backend/internal/chat"
	"agriportal_backend/internal/events"
	"agriportal_backend/internal/farms"
	apphttp "agriportal_backend/internal/http"
	"agriportal_backend/internal/http/router"
	"agriportal_backend/internal/notification"
	"agriportal_backend/internal/suppliers"
	suppliersvc "agriportal_backend/internal/suppliers/service"
	"agriportal_backend/internal/weather"
	"agriportal_backend/platform/ai/gemini"
	"agriportal_backend/platform/config"
	"agriportal_backend/platform/db"
	"agriportal_backend/platform/logger"
	"agriportal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Shared validator instance for dependency injection
	val := validator.New()

	// Gemini powers supplier synthesis, pincode refinement, advisory and chat.
	// Without an API key those modules run on their fallbacks.
	var geminiClient *gemini.Client
	if cfg.IsGeminiEnabled() {
		geminiClient, err = gemini.NewClient(ctx, cfg.GetGeminiAPIKey(), cfg.GetGeminiModel())
		if err != nil {
			log.Error("failed to initialize gemini client", "error", err)
			panic("failed to initialize gemini client: " + err.Error())
		}
		log.Info("gemini client initialized", "model", cfg.GetGeminiModel())
	} else {
		log.Warn("GEMINI_API_KEY not configured; AI features run on fallbacks")
	}

	redisClient := initRedis(cfg, log)
	if redisClient != nil {
		defer func() {
			_ = redisClient.Close()
		}()
	}

	// Crop image archive (MinIO), optional
	var archive advisoryservice.ImageArchive
	if cfg.IsMinIOEnabled() {
		a, err := storage.NewArchive(ctx, cfg)
		if err != nil {
			log.Error("failed to initialize crop image archive", "error", err)
			panic("failed to initialize crop image archive: " + err.Error())
		}
		archive = a
		log.Info("crop image archive initialized", "bucket", cfg.GetMinioBucketCropImages())
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Notification module subscribes to domain events (not HTTP-facing)
	var emailSender notification.FarmEmailSender
	if cfg.IsEmailEnabled() {
		emailSender = notification.NewSMTPSender(cfg)
		log.Info("smtp sender initialized", "host", cfg.GetSMTPHost())
	} else {
		log.Warn("SMTP not configured; registration emails disabled")
	}
	_ = notification.NewModule(eventBus, emailSender, log)

	var completer suppliersvc.Completer
	if geminiClient != nil {
		completer = geminiClient
	}
	suppliersModule := suppliers.NewModule(completer, redisClient, eventBus, cfg.GetAITimeout(), log)
	farmsModule := farms.NewModule(pool, eventBus, val, log)
	weatherModule := weather.NewModule(cfg, log)

	modules := []apphttp.Module{
		suppliersModule,
		farmsModule,
		weatherModule,
	}

	if geminiClient != nil {
		advisoryModule := advisory.NewModule(geminiClient, archive, cfg.GetAITimeout(), val, log)
		modules = append(modules, advisoryModule)

		chatModule, err := chat.NewModule(gemini.NewModel(geminiClient), log)
		if err != nil {
			log.Error("failed to initialize chat module", "error", err)
			panic("failed to initialize chat module: " + err.Error())
		}
		modules = append(modules, chatModule)
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules:  modules,
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = shutdownCtx
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func initRedis(cfg config.RedisConfig, log *logger.Logger) *redis.Client {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; pincode cache disabled")
		return nil
	}

	opts, err := redis.ParseURL(cfg.GetRedisURL())
	if err != nil {
		log.Error("invalid REDIS_URL; pincode cache disabled", "error", err)
		return nil
	}

	return redis.NewClient(opts)
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return fmt.Errorf("%s: %w", name, lastErr)
}
