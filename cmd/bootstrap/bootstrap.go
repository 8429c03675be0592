package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dental-clinic-api/config"
	deliveryHttp "dental-clinic-api/internal/delivery/http"
	"dental-clinic-api/internal/delivery/http/handler"
	"dental-clinic-api/internal/delivery/http/middleware"
	"dental-clinic-api/internal/infrastructure/cache"
	"dental-clinic-api/internal/infrastructure/database"
	"dental-clinic-api/internal/repository"
	"dental-clinic-api/internal/scheduler"
	"dental-clinic-api/internal/service"
	"dental-clinic-api/internal/usecase"
	"dental-clinic-api/pkg/jwt"
	"dental-clinic-api/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
	Scheduler   *scheduler.Runner
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Apply schema migrations
	if err := database.RunMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	app.Server, app.Scheduler = initialize(cfg, db, redisClient)

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initialize wires repositories, usecases, handlers, the router and the
// scheduled job runner.
func initialize(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*http.Server, *scheduler.Runner) {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	roleRepo := repository.NewRoleRepository()
	dentistProfileRepo := repository.NewDentistProfileRepository()
	patientProfileRepo := repository.NewPatientProfileRepository()
	scheduleRepo := repository.NewDentistScheduleRepository()
	treatmentRepo := repository.NewTreatmentRepository()
	slotRepo := repository.NewSlotRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	historyRepo := repository.NewTreatmentHistoryRepository()
	notificationRepo := repository.NewNotificationRepository()
	resetRepo := repository.NewPasswordResetRepository()

	// Initialize services
	mailer := service.NewSMTPMailer(cfg.SMTP, cfg.App.BaseURL, log)
	bookingLimiter := service.NewRedisRateLimiter(redisClient, "booking_rate:", cfg.RateLimit.BookingWindow, cfg.RateLimit.BookingMax)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, roleRepo, dentistProfileRepo, patientProfileRepo, jwtService, redisClient)
	notificationUsecase := usecase.NewNotificationUsecase(db, log, notificationRepo, patientProfileRepo, dentistProfileRepo)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, cfg.Clinic, appointmentRepo, slotRepo, treatmentRepo, historyRepo, patientProfileRepo, dentistProfileRepo, notificationUsecase, bookingLimiter)
	slotUsecase := usecase.NewSlotUsecase(db, log, cfg.Clinic, slotRepo, scheduleRepo, appointmentRepo)
	treatmentUsecase := usecase.NewTreatmentUsecase(db, log, treatmentRepo)
	dentistUsecase := usecase.NewDentistUsecase(db, log, dentistProfileRepo, scheduleRepo)
	resetUsecase := usecase.NewPasswordResetUsecase(db, log, cfg.Clinic.ResetExpiry, userRepo, resetRepo, mailer)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator, jwtService)
	passwordResetHandler := handler.NewPasswordResetHandler(resetUsecase, customValidator)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	slotHandler := handler.NewSlotHandler(slotUsecase, customValidator)
	notificationHandler := handler.NewNotificationHandler(notificationUsecase)
	treatmentHandler := handler.NewTreatmentHandler(treatmentUsecase, customValidator)
	dentistHandler := handler.NewDentistHandler(dentistUsecase, customValidator)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler,
		passwordResetHandler,
		appointmentHandler,
		slotHandler,
		notificationHandler,
		treatmentHandler,
		dentistHandler,
		authMiddleware,
		corsMiddleware,
	)
	httpRouter := router.Setup()

	// Initialize scheduled jobs
	var runner *scheduler.Runner
	if cfg.Scheduler.Enabled {
		loc, err := time.LoadLocation(cfg.Clinic.Timezone)
		if err != nil {
			logrus.Warnf("Unknown clinic timezone %q, falling back to UTC", cfg.Clinic.Timezone)
			loc = time.UTC
		}
		runner = scheduler.NewRunner(log)
		jobs := scheduler.NewClinicJobs(db, log, loc, appointmentRepo, notificationRepo, appointmentUsecase, slotUsecase, resetUsecase, notificationUsecase)
		jobs.RegisterAll(runner)
	}

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}

	return server, runner
}

// Run starts the HTTP server plus the job runner and handles graceful shutdown
func (app *App) Run() {
	if app.Scheduler != nil {
		app.Scheduler.Start()
	}

	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Stop scheduled jobs first so no new writes start mid-shutdown
	if app.Scheduler != nil {
		app.Scheduler.Stop()
	}

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
