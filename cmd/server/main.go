// @title           Creative Evaluator API
// @version         1.0.0
// @description     Backend API for scoring ad creatives against a Brand Interpretation Profile with a vision model, rendering results, emailing feedback reports and tracking approvals.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token returned by /api/v1/auth/otp.

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os/signal"
	"syscall"
	"time"

	"creative-evaluator-backend/docs"
	"creative-evaluator-backend/internal/auth"
	"creative-evaluator-backend/internal/config"
	"creative-evaluator-backend/internal/handlers"
	"creative-evaluator-backend/internal/logging"
	"creative-evaluator-backend/internal/mailer"
	"creative-evaluator-backend/internal/middleware"
	"creative-evaluator-backend/internal/report"
	"creative-evaluator-backend/internal/scoring"
	"creative-evaluator-backend/internal/services"
	"creative-evaluator-backend/internal/store"
	"creative-evaluator-backend/internal/supabase"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logging.Init("info", false)
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(cfg.LogLevel, cfg.IsProduction())

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Update Swagger docs with dynamic base URL
	if cfg.BaseURL != "" {
		if baseURL, err := url.Parse(cfg.BaseURL); err == nil {
			docs.SwaggerInfo.Host = baseURL.Host
			if baseURL.Scheme == "https" {
				docs.SwaggerInfo.Schemes = []string{"https", "http"}
			} else {
				docs.SwaggerInfo.Schemes = []string{"http", "https"}
			}
		}
	}

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("Server exited")
	}
	log.Info().Msg("Server stopped")
}

// run owns every resource that needs closing so deferred cleanup still
// happens when startup fails.
func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.StoreDriver, err)
	}
	defer st.Close()

	evaluator, err := scoring.NewEvaluator(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize AI provider %s: %w", cfg.AIProvider, err)
	}

	m, err := mailer.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize mailer %s: %w", cfg.EmailProvider, err)
	}

	renderer, err := report.NewRenderer(cfg.FeedbackSubject, cfg.OTPSubject, cfg.EmailFromName)
	if err != nil {
		return fmt.Errorf("failed to parse email templates: %w", err)
	}

	var limiter auth.Limiter = auth.NewMemoryLimiter()
	if cfg.RedisURL != "" {
		redisLimiter, err := auth.NewRedisLimiterFromURL(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("failed to initialize OTP limiter: %w", err)
		}
		defer redisLimiter.Close()
		limiter = redisLimiter
		log.Info().Msg("OTP limiter backed by Redis")
	} else {
		log.Warn().Msg("REDIS_URL not set; OTP limits are per instance")
	}

	// Storage is optional; archiving reports a configuration error without it
	var uploader services.CSVUploader
	if cfg.SupabaseURL != "" && cfg.SupabaseServiceKey != "" {
		storageClient, err := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, cfg.SupabaseStorageBucket)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to initialize storage client; CSV archiving disabled")
		} else {
			uploader = storageClient
		}
	}

	sessions := auth.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL)
	otpService := auth.NewService(st, m, renderer, limiter, sessions, auth.Options{
		CodeTTL:     cfg.OTPTTL,
		MaxAttempts: cfg.OTPMaxAttempts,
		MaxSends:    cfg.OTPMaxSends,
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(otpService)
	profilesHandler := handlers.NewProfilesHandler(cfg.MaxUploadBytes)
	uploadHandler := handlers.NewUploadHandler(cfg.MaxUploadBytes)
	processHandler := handlers.NewProcessHandler(scoring.NewPipeline(evaluator))
	filesHandler := handlers.NewFilesHandler(services.NewStorageService(uploader))
	feedbackHandler := handlers.NewFeedbackHandler(mailer.NewNotifier(m, renderer))
	approvalsHandler := handlers.NewApprovalsHandler(services.NewApprovalService(st))

	// Setup router
	router := gin.New()
	router.MaxMultipartMemory = 32 << 20

	// Middleware
	router.Use(logging.RequestLogger())
	router.Use(gin.Recovery())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check (no auth)
	router.GET("/health", handlers.HealthHandler)

	// Sign-in (no auth)
	router.POST("/api/v1/auth/otp", authHandler.OTP)

	// API routes
	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(sessions))

	// Profile and creative staging
	api.POST("/profiles", profilesHandler.CreateProfile)
	api.POST("/creatives/stage", uploadHandler.StageCreatives)

	// Scoring and results
	api.POST("/score", processHandler.Score)
	api.POST("/results/comparison", handlers.RenderComparison)

	// Exports
	api.POST("/exports/csv", filesHandler.DownloadCSV)
	api.POST("/exports/csv/archive", filesHandler.ArchiveCSV)

	// Feedback email
	api.POST("/feedback", feedbackHandler.SendFeedback)
	api.POST("/feedback/bulk", feedbackHandler.SendBulkFeedback)

	// Approvals
	api.PUT("/approvals", approvalsHandler.SetApproval)
	api.POST("/approvals/query", approvalsHandler.QueryApprovals)

	handler := cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	})(router)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Server shutdown failed")
		}
	}()

	log.Info().Str("port", cfg.Port).Str("environment", cfg.Environment).Msg("Server starting")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
