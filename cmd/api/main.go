package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"clinic-content-api/internal/cache"
	"clinic-content-api/internal/config"
	"clinic-content-api/internal/db"
	"clinic-content-api/internal/httpserver"
	"clinic-content-api/internal/logging"
	"clinic-content-api/internal/media"
	adminrepo "clinic-content-api/internal/repository/admin"
	blogrepo "clinic-content-api/internal/repository/blog"
	herorepo "clinic-content-api/internal/repository/hero"
	testimonialrepo "clinic-content-api/internal/repository/testimonial"
	authsvc "clinic-content-api/internal/service/auth"
	blogsvc "clinic-content-api/internal/service/blog"
	"clinic-content-api/internal/service/chat"
	herosvc "clinic-content-api/internal/service/hero"
	testimonialsvc "clinic-content-api/internal/service/testimonial"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New("api", cfg.LogLevel, cfg.IsDevelopment())
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}

	os.Exit(logging.Finish(logger, "api stopped", run(cfg, logger)))
}

func run(cfg *config.Config, logger *zap.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString, logger.Named("db"))
	if err != nil {
		return fmt.Errorf("connect to db: %w", err)
	}
	defer dbpool.Close()

	contentCache, closeCache, err := cache.Open(ctx, cfg.RedisURL, cfg.CachePrefix, logger.Named("cache"))
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer func() { _ = closeCache() }()
	logger.Info("content cache ready", zap.Bool("redis", cfg.UseRedisCache()), zap.Duration("ttl", cfg.CacheTTL))

	var uploader media.Uploader = media.Disabled{}
	if cfg.MediaEnabled() {
		uploader, err = media.NewCloudinary(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryFolder, logger.Named("media"))
		if err != nil {
			return err
		}
	} else {
		logger.Warn("cloudinary credentials missing, image uploads disabled")
	}

	providers, err := chatProviders(ctx, cfg, logger)
	if err != nil {
		return err
	}

	adminRepo := adminrepo.NewPostgres(dbpool, logger)
	blogRepo := blogrepo.NewPostgres(dbpool, logger)
	heroRepo := herorepo.NewPostgres(dbpool, logger)
	testimonialRepo := testimonialrepo.NewPostgres(dbpool, logger)

	srv := httpserver.New(cfg.HTTPAddr(), logger.Named("http"), httpserver.Deps{
		Auth:         authsvc.New(adminRepo, cfg.JWTSecret, cfg.JWTTTL, logger.Named("auth")),
		Blogs:        blogsvc.New(blogRepo, uploader, contentCache, cfg.CacheTTL, logger.Named("blog")),
		Heroes:       herosvc.New(heroRepo, uploader, contentCache, cfg.CacheTTL, logger.Named("hero")),
		Testimonials: testimonialsvc.New(testimonialRepo, uploader, contentCache, cfg.CacheTTL, logger.Named("testimonial")),
		Chat:         chat.New(providers, cfg.LLMTimeout, logger.Named("chat")),
		DB:           dbpool,
	}, httpserver.Options{
		AllowedOrigins:     cfg.AllowedOrigins,
		LoginRatePerMinute: cfg.LoginRatePerMinute,
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// chatProviders builds the provider chain in fixed order: OpenAI, then Gemini.
func chatProviders(ctx context.Context, cfg *config.Config, logger *zap.Logger) ([]chat.Provider, error) {
	var providers []chat.Provider
	if cfg.OpenAIAPIKey != "" {
		providers = append(providers, chat.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.LLMTimeout))
	}
	if cfg.GeminiAPIKey != "" {
		g, err := chat.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		providers = append(providers, g)
	}
	if len(providers) == 0 {
		logger.Info("no LLM provider configured, chat answers from canned rules only")
	}
	return providers, nil
}
