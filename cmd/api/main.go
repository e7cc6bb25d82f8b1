package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/recipegen/backend/config"
	"github.com/pageza/recipegen/backend/internal/api"
	"github.com/pageza/recipegen/backend/internal/database"
	"github.com/pageza/recipegen/backend/internal/logger"
	"github.com/pageza/recipegen/backend/internal/middleware"
	"github.com/pageza/recipegen/backend/internal/router"
	"github.com/pageza/recipegen/backend/internal/server"
	"github.com/pageza/recipegen/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		// The logger level comes from config, so fall back to defaults here.
		logger.New("info", false).Fatal("failed to load configuration", zap.Error(err))
	}

	log := logger.New(cfg.LogLevel, cfg.Env == config.Production)
	defer log.Sync() //nolint:errcheck
	zap.ReplaceGlobals(log)
	gin.SetMode(cfg.Env.GinMode())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	db, err := database.Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	if err := database.RunMigrations(db, log); err != nil {
		return err
	}

	// Redis backs drafts and rate limiting; both are optional.
	var (
		drafts  service.DraftStore
		limiter *middleware.RateLimiter
	)
	redisClient, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Warn("redis unavailable, drafts and rate limiting disabled", zap.Error(err))
	} else {
		defer redisClient.Close()
		drafts = service.NewRedisDraftStore(redisClient)
		if cfg.GenerateRateLimit > 0 {
			limiter = middleware.NewGenerationRateLimiter(redisClient, cfg.GenerateRateLimit, log)
		}
	}

	llm, err := service.NewLLMService(cfg.LLM, log)
	if err != nil {
		return err
	}
	recipes := service.NewRecipeService(db)
	generator := service.NewGenerationService(llm, drafts, service.NewImageService(cfg.ImageCheckTimeout), recipes, log)

	s3Config, err := config.NewS3Config(ctx, cfg)
	if err != nil {
		return err
	}
	avatars := service.NewAvatarService(service.NewS3Store(s3Config, cfg.AvatarURLTTL), log)

	handlers := router.Handlers{
		Health:   api.NewHealthHandler(db, redisClient),
		LLM:      api.NewLLMHandler(generator),
		Recipe:   api.NewRecipeHandler(recipes),
		Feedback: api.NewFeedbackHandler(service.NewFeedbackService(db, log)),
		Avatar:   api.NewAvatarHandler(avatars),
	}
	engine := router.SetupRouter(handlers, router.Options{
		CORSOrigins:     cfg.CORSOrigins,
		Tokens:          service.NewTokenService(cfg.JWTSecret),
		GenerateLimiter: limiter,
		Log:             log,
	})

	return server.New(cfg.Addr(), engine, log).Start(ctx)
}
