package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rehabflow/rehabflow/internal/config"
	"github.com/rehabflow/rehabflow/internal/domain/analysis"
	"github.com/rehabflow/rehabflow/internal/domain/assessment"
	"github.com/rehabflow/rehabflow/internal/domain/profile"
	"github.com/rehabflow/rehabflow/internal/domain/progress"
	"github.com/rehabflow/rehabflow/internal/domain/video"
	"github.com/rehabflow/rehabflow/internal/platform/auth"
	"github.com/rehabflow/rehabflow/internal/platform/cache"
	"github.com/rehabflow/rehabflow/internal/platform/db"
	"github.com/rehabflow/rehabflow/internal/platform/inference"
	"github.com/rehabflow/rehabflow/internal/platform/middleware"
	"github.com/rehabflow/rehabflow/internal/platform/storage"
	"github.com/rehabflow/rehabflow/internal/platform/translate"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rehab-server",
		Short: "RehabFlow API Server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the RehabFlow API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			for _, s := range statuses {
				applied := "-"
				if s.AppliedAt != nil {
					applied = s.AppliedAt.Format(time.RFC3339)
				}
				status := "pending"
				if s.Applied {
					status = "applied"
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, applied)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Cache
	var store cache.Cache = cache.NewNoop()
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable, caching disabled")
		} else {
			store = redisCache
			defer redisCache.Close()
			logger.Info().Msg("connected to redis")
		}
	}

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))
	e.Use(middleware.BodyLimit("1M", "25M"))
	e.Use(middleware.RequestTimeout(30 * time.Second))

	// Auth middleware. Health and video search stay public.
	if cfg.IsDev() && cfg.AuthIssuer == "" && cfg.AuthJWKSURL == "" {
		logger.Warn().Msg("running with development auth, all requests share one user")
		e.Use(auth.SkipPublic(auth.DevAuthMiddleware()))
	} else {
		e.Use(auth.SkipPublic(auth.JWTMiddleware(auth.JWTConfig{
			Issuer:   cfg.AuthIssuer,
			Audience: cfg.AuthAudience,
			JWKSURL:  cfg.AuthJWKSURL,
		})))
	}

	// API group
	apiV1 := e.Group("/api/v1")

	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	apiV1.Use(middleware.RateLimit(rateLimitCfg))

	// External service clients
	inferenceClient := inference.NewClient(cfg.AnalyzeEndpoint)
	translateClient := translate.NewClient(cfg.TranslateEndpoint)
	storageClient := storage.NewClient(cfg.StorageURL, cfg.StorageServiceKey)

	// Domain services
	profileSvc := profile.NewService(profile.NewProfileRepoPG(pool))
	assessmentSvc := assessment.NewService(assessment.NewAssessmentRepoPG(pool))
	progressSvc := progress.NewService(progress.NewProgressRepoPG(pool), assessmentSvc, profileSvc)
	analysisSvc := analysis.NewService(analysis.NewAnalysisRepoPG(pool),
		assessmentSvc, profileSvc, progressSvc, storageClient, inferenceClient, translateClient)

	var searchAPI video.SearchAPI
	if cfg.YouTubeAPIKey != "" {
		searchAPI, err = video.NewYouTubeAPI(ctx, cfg.YouTubeAPIKey)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to create youtube client")
		}
	} else {
		logger.Warn().Msg("no youtube api key configured, video search disabled")
	}
	videoSvc := video.NewService(searchAPI, store)

	// Routes
	profile.NewHandler(profileSvc).RegisterRoutes(apiV1)
	assessment.NewHandler(assessmentSvc).RegisterRoutes(apiV1)
	progress.NewHandler(progressSvc).RegisterRoutes(apiV1)
	analysis.NewHandler(analysisSvc).RegisterRoutes(apiV1)
	video.NewHandler(videoSvc).RegisterRoutes(apiV1)

	// Health checks
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})
	e.GET("/health/db", db.HealthHandler(pool))

	// Start server
	addr := ":" + cfg.Port
	go func() {
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
