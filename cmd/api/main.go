package main

import (
	"context"
	"net/http"
	"os"

	"github.com/greencycle/ewaste-backend/api/controllers"
	"github.com/greencycle/ewaste-backend/api/routes"
	"github.com/greencycle/ewaste-backend/internal/admin"
	"github.com/greencycle/ewaste-backend/internal/auth"
	"github.com/greencycle/ewaste-backend/internal/certificates"
	"github.com/greencycle/ewaste-backend/internal/pickuppersons"
	"github.com/greencycle/ewaste-backend/internal/requests"
	"github.com/greencycle/ewaste-backend/internal/stats"
	"github.com/greencycle/ewaste-backend/internal/users"
	"github.com/greencycle/ewaste-backend/pkg/auth/session"
	"github.com/greencycle/ewaste-backend/pkg/config"
	"github.com/greencycle/ewaste-backend/pkg/db"
	"github.com/greencycle/ewaste-backend/pkg/logger"
	"github.com/greencycle/ewaste-backend/pkg/mail"
	"github.com/greencycle/ewaste-backend/pkg/metrics"
	"github.com/greencycle/ewaste-backend/pkg/migrate"
	"github.com/greencycle/ewaste-backend/pkg/redis"
	"github.com/greencycle/ewaste-backend/pkg/storage/gcs"
	"github.com/joho/godotenv"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	gcsClient, err := gcs.NewClient(context.Background(), cfg.GCS, cfg.GCP, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap cloud storage", err)
		os.Exit(1)
	}
	bucket := gcsClient.BucketHandle(cfg.GCS.BucketName)

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	userRepo := users.NewRepository(dbClient.DB())
	personRepo := pickuppersons.NewRepository(dbClient.DB())
	requestRepo := requests.NewRepository(dbClient.DB())
	statsRepo := stats.NewRepository(dbClient.DB())

	var mailer requests.ApprovalMailer
	if cfg.SMTP.Enabled() {
		m, err := mail.NewMailer(cfg.SMTP)
		if err != nil {
			logg.Error(context.Background(), "failed to create mailer", err)
			os.Exit(1)
		}
		mailer = m
	} else {
		logg.Warn(context.Background(), "smtp not configured, approval emails disabled")
	}

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	requestsService, err := requests.NewService(requestRepo, userRepo, personRepo, bucket, mailer, dbClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create requests service", err)
		os.Exit(1)
	}

	statsService, err := stats.NewService(statsRepo, userRepo, personRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create stats service", err)
		os.Exit(1)
	}

	adminService, err := admin.NewService(userRepo, personRepo, dbClient, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create admin service", err)
		os.Exit(1)
	}

	certificateService, err := certificates.NewService(userRepo, requestRepo, int64(cfg.Certificate.CompletedThreshold))
	if err != nil {
		logg.Error(context.Background(), "failed to create certificate service", err)
		os.Exit(1)
	}

	router := routes.NewRouter(routes.Deps{
		Config:         cfg,
		Logger:         logg,
		Redis:          redisClient,
		SessionChecker: sessionManager,
		Metrics:        metrics.NewHTTPMetrics(),
		ReadyChecks: map[string]controllers.Pinger{
			"database": dbClient,
			"redis":    redisClient,
			"storage":  gcsClient,
		},
		AuthService:        authService,
		RequestsService:    requestsService,
		StatsService:       statsService,
		AdminService:       adminService,
		CertificateService: certificateService,
		PickupPersons:      personRepo,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
