package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"keephy.backend/internal/config"
	"keephy.backend/internal/domain/gateways"
	"keephy.backend/internal/infrastructure/billing"
	"keephy.backend/internal/infrastructure/datasources/postgres"
	"keephy.backend/internal/infrastructure/geocoding"
	"keephy.backend/internal/infrastructure/jobs"
	"keephy.backend/internal/infrastructure/models"
	"keephy.backend/internal/infrastructure/notification"
	"keephy.backend/internal/infrastructure/oauth"
	"keephy.backend/internal/infrastructure/repositories"
	"keephy.backend/internal/infrastructure/storage"
	"keephy.backend/internal/interfaces/http/handlers"
	"keephy.backend/internal/interfaces/http/middleware"
	"keephy.backend/internal/usecases"
	"keephy.backend/pkg/jwt"
	"keephy.backend/pkg/logger"
	"keephy.backend/pkg/redis"
	"keephy.backend/pkg/shortcode"
)

const shutdownTimeout = 10 * time.Second

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(cfg config.DatabaseConfig) (*gorm.DB, error) {
		sqlDB, err := postgres.NewConnection(cfg)
		if err != nil {
			return nil, err
		}
		return gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	newNotifier = func(ctx context.Context, cfg config.MailConfig) (gateways.Notifier, error) {
		if cfg.Sender == "" {
			return notification.NewLogNotifier(), nil
		}
		return notification.NewSESNotifier(ctx, cfg.Region, cfg.Sender, cfg.SendTimeout)
	}
	runServer       = func(srv *http.Server) error { return srv.ListenAndServe() }
	getStdDB        = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
	waitForShutdown = func(ctx context.Context) {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)
		select {
		case <-quit:
		case <-ctx.Done():
		}
	}
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	ctx := context.Background()
	logger.Info(ctx, "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
		logger.Error(ctx, "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	defer func() { _ = redis.Close() }()
	logger.Info(ctx, "Redis initialized")

	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()
	logger.Info(ctx, "Connected to PostgreSQL")

	if cfg.Database.AutoMigrate {
		if err := models.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	handlerSet, background, err := buildApp(ctx, cfg, db)
	if err != nil {
		return err
	}

	jobCtx, cancelJobs := context.WithCancel(ctx)
	defer cancelJobs()
	go background.otpCleanup.Start(jobCtx)
	stopLimiter := make(chan struct{})
	go background.limiter.Run(stopLimiter)
	defer close(stopLimiter)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r, cfg.CORS.AllowedOrigins)
	registerHealthRoute(r, cfg.Server.Version)
	registerOperationalRoutes(r, cfg.Upload.LogoDir)
	registerAPIV1Routes(r, handlerSet)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() { serveErr <- runServer(srv) }()
	logger.Info(ctx, "Keephy backend started",
		zap.String("port", cfg.Server.Port),
		zap.String("version", cfg.Server.Version),
		zap.Int("routes", len(r.Routes())),
	)

	shutdownCtx, stopWaiting := context.WithCancel(ctx)
	defer stopWaiting()
	go func() {
		waitForShutdown(shutdownCtx)
		logger.Info(ctx, "Shutting down server")
		background.otpCleanup.Stop()
		timeout, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(timeout); err != nil {
			logger.Error(ctx, "Graceful shutdown failed", zap.Error(err))
		}
	}()

	if err := <-serveErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

type backgroundWorkers struct {
	otpCleanup *jobs.OTPCleanupJob
	limiter    *middleware.RateLimiter
}

// buildApp wires repositories, gateways, usecases and handlers
func buildApp(ctx context.Context, cfg *config.Config, db *gorm.DB) (routeDeps, backgroundWorkers, error) {
	handlers.RegisterValidators()

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry)

	userRepo := repositories.NewUserRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	businessRepo := repositories.NewBusinessRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)
	franchiseRepo := repositories.NewFranchiseRepository(db)
	formRepo := repositories.NewFormRepository(db)
	attachmentRepo := repositories.NewAttachmentRepository(db)
	submissionRepo := repositories.NewSubmissionRepository(db)
	planRepo := repositories.NewPlanRepository(db)
	subscriptionRepo := repositories.NewSubscriptionRepository(db)
	uow := repositories.NewUnitOfWork(db)

	var billingGateway gateways.BillingGateway
	if cfg.Stripe.SecretKey != "" {
		billingGateway = billing.NewStripeGateway(cfg.Stripe.SecretKey, cfg.Stripe.Currency, nil)
	} else {
		logger.Warn(ctx, "STRIPE_SECRET_KEY not set, using sandbox billing")
		billingGateway = billing.NewSandboxGateway()
	}

	notifier, err := newNotifier(ctx, cfg.Mail)
	if err != nil {
		return routeDeps{}, backgroundWorkers{}, fmt.Errorf("failed to initialize mailer: %w", err)
	}

	var geocoder gateways.Geocoder = geocoding.StaticGeocoder{}
	if cfg.Google.MapsAPIKey != "" {
		g, err := geocoding.NewGoogleGeocoder(cfg.Google.MapsAPIKey, "")
		if err != nil {
			return routeDeps{}, backgroundWorkers{}, fmt.Errorf("failed to initialize geocoder: %w", err)
		}
		geocoder = g
	}

	logos, err := storage.NewLocalLogoStore(cfg.Upload.LogoDir, int64(cfg.Upload.MaxLogoSize))
	if err != nil {
		return routeDeps{}, backgroundWorkers{}, fmt.Errorf("failed to initialize logo storage: %w", err)
	}

	identity := oauth.NewGoogleProvider(cfg.Google.ClientID, cfg.Google.ClientSecret, cfg.Google.RedirectURL)
	codes := shortcode.New()

	userUsecase := usecases.NewUserUsecase(userRepo, notifier, identity, billingGateway, jwtService, cfg.OTP.TTL)
	categoryUsecase := usecases.NewCategoryUsecase(categoryRepo, uow)
	businessUsecase := usecases.NewBusinessUsecase(businessRepo, categoryRepo, reviewRepo, formRepo, attachmentRepo, logos, uow, codes)
	franchiseUsecase := usecases.NewFranchiseUsecase(franchiseRepo, businessRepo, formRepo, attachmentRepo, geocoder, uow, codes)
	formUsecase := usecases.NewFormUsecase(formRepo, attachmentRepo, submissionRepo, businessRepo, franchiseRepo, userRepo, notifier, cfg.Mail.SendTimeout)
	planUsecase := usecases.NewPlanUsecase(planRepo, billingGateway)
	subscriptionUsecase := usecases.NewSubscriptionUsecase(userRepo, planRepo, subscriptionRepo, billingGateway, uow)

	limiter := middleware.NewRateLimiter(float64(cfg.RateLimit.RPS), cfg.RateLimit.Burst)

	deps := routeDeps{
		userHandler: handlers.NewUserHandler(userUsecase, handlers.SessionCookie{
			Name:   cfg.JWT.CookieName,
			MaxAge: jwtService.Expiry(),
			Secure: cfg.Server.IsProduction(),
		}),
		categoryHandler:     handlers.NewCategoryHandler(categoryUsecase),
		businessHandler:     handlers.NewBusinessHandler(businessUsecase),
		franchiseHandler:    handlers.NewFranchiseHandler(franchiseUsecase),
		formHandler:         handlers.NewFormHandler(formUsecase),
		planHandler:         handlers.NewPlanHandler(planUsecase),
		subscriptionHandler: handlers.NewSubscriptionHandler(subscriptionUsecase),

		authMiddleware:        middleware.AuthMiddleware(jwtService, cfg.JWT.CookieName),
		adminMiddleware:       middleware.RequireAdmin(),
		rateLimitMiddleware:   limiter.Middleware(),
		idempotencyMiddleware: middleware.IdempotencyMiddleware(),
	}
	workers := backgroundWorkers{
		otpCleanup: jobs.NewOTPCleanupJob(userRepo, cfg.Jobs.OTPCleanupInterval),
		limiter:    limiter,
	}
	return deps, workers, nil
}
