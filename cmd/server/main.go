package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/babygenie/service-planner/internal/application"
	"github.com/babygenie/service-planner/internal/config"
	recipeDomain "github.com/babygenie/service-planner/internal/domain/recipe"
	plannerEvents "github.com/babygenie/service-planner/internal/events"
	"github.com/babygenie/service-planner/internal/handler"
	"github.com/babygenie/service-planner/internal/llm"
	"github.com/babygenie/service-planner/internal/platform/cache"
	"github.com/babygenie/service-planner/internal/platform/database"
	"github.com/babygenie/service-planner/internal/platform/kafka"
	"github.com/babygenie/service-planner/internal/platform/logger"
	"github.com/babygenie/service-planner/internal/platform/middleware"
	"github.com/babygenie/service-planner/internal/repository"
	"github.com/babygenie/service-planner/internal/venues"
)

const serviceName = "service-planner"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting "+serviceName,
		zap.String("port", cfg.Port),
		zap.String("env", cfg.AppEnv),
	)

	// Connect to database
	db, err := database.Connect(cfg.DBConfig, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.IsDevelopment() {
		if err := db.AutoMigrate(&repository.PlanLogModel{}, &repository.ProfileModel{}, &repository.MilestoneModel{}); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	} else {
		if err := database.RunMigrations(cfg.DBConfig.DatabaseURL(), cfg.MigrationsDir, log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	// Connect to redis
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	redisClient, err := cache.Connect(ctx, cfg.RedisConfig, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer func() { _ = redisClient.Close() }()

	// Initialize Kafka producer
	kafkaProducer := kafka.NewProducer(cfg.KafkaConfig.Brokers, log)
	defer func() { _ = kafkaProducer.Close() }()

	// Initialize venue sources
	catalog, err := venues.NewStaticSource()
	if err != nil {
		log.Fatal("failed to load venue catalog", zap.Error(err))
	}
	log.Info("venue catalog loaded", zap.Int("venues", catalog.Len()))
	candidates := venues.NewCachedSource(catalog, redisClient, cfg.PlannerConfig.CacheTTL, log)

	// Initialize repositories
	planLogRepo := repository.NewGormPlanLogRepository(db)
	profileRepo := repository.NewGormProfileRepository(db)
	milestoneRepo := repository.NewGormMilestoneRepository(db)

	// Initialize recipe generator; recipes answer 502 without one
	var generator recipeDomain.TextGenerator
	if g, err := llm.NewOpenAIGenerator(cfg.LLMConfig, log); err != nil {
		log.Warn("recipe generator disabled", zap.Error(err))
	} else {
		generator = g
	}

	// Initialize application services
	plannerService := application.NewPlannerService(
		candidates,
		venues.NewStaticWeather(""),
		planLogRepo,
		kafkaProducer,
		cfg.PlannerConfig.SourceTimeout,
		log,
	)
	profileService := application.NewProfileService(profileRepo, log)
	milestoneService := application.NewMilestoneService(milestoneRepo, log)
	recipeService := application.NewRecipeService(generator, log)

	// Initialize and start venue event consumer in a goroutine
	venueConsumer := plannerEvents.NewVenueEventConsumer(
		cfg.KafkaConfig.Brokers,
		plannerEvents.ConsumerGroup(cfg.KafkaConfig.GroupPrefix),
		candidates,
		log,
	)
	defer func() { _ = venueConsumer.Close() }()

	go func() {
		log.Info("starting venue event consumer")
		if err := venueConsumer.Start(ctx); err != nil && err != context.Canceled {
			log.Error("venue event consumer error", zap.Error(err))
		}
	}()

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("failed to get sql.DB from gorm", zap.Error(err))
	}
	healthHandler := handler.NewHealthHandler(serviceName, map[string]handler.CheckFunc{
		"postgres": sqlDB.PingContext,
		"redis":    func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
	})
	healthHandler.RegisterRoutes(router)

	// Planning and recipe generation are rate limited per client IP
	limiter := middleware.NewRateLimiter(cfg.PlannerConfig.RateLimitRPS, cfg.PlannerConfig.RateLimitBurst, 10*time.Minute)

	// Register routes
	handler.NewPlannerHandler(plannerService, profileService).RegisterRoutes(&router.RouterGroup, limiter.Middleware())
	handler.NewProfileHandler(profileService).RegisterRoutes(&router.RouterGroup)
	handler.NewMilestoneHandler(milestoneService).RegisterRoutes(&router.RouterGroup)
	handler.NewRecipeHandler(recipeService).RegisterRoutes(&router.RouterGroup, limiter.Middleware())

	// Register admin handler routes
	if cfg.AdminToken == "" {
		log.Warn("admin token not set; admin routes will reject every request")
	}
	handler.NewAdminPlanHandler(plannerService).RegisterRoutes(&router.RouterGroup, cfg.AdminToken)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down " + serviceName + "...")

	// Cancel the consumer context
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info(serviceName + " stopped")
}
