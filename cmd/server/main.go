package main

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"eventboard/config"
	_ "eventboard/docs"
	"eventboard/internal/adapters/auth"
	"eventboard/internal/adapters/email"
	"eventboard/internal/adapters/stats"
	deliveryhttp "eventboard/internal/delivery/http"
	"eventboard/internal/delivery/http/controllers"
	"eventboard/internal/delivery/http/middleware"
	"eventboard/internal/domain"
	"eventboard/internal/repository/postgres"
	"eventboard/internal/services"
)

// @title Eventboard API
// @version 1.0
// @description Event publishing and participation admission backend.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Environment)

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("opening database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("pinging database", "error", err)
		os.Exit(1)
	}

	eventRepo := postgres.NewEventRepository(db)
	requestRepo := postgres.NewRequestRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	userRepo := postgres.NewUserRepository(db)
	admissionStore := postgres.NewAdmissionStore(db)

	var statsClient domain.StatsClient = stats.Noop{}
	if cfg.StatsURL != "" {
		statsClient = stats.NewHTTPClient(cfg.StatsURL, cfg.AppName, &http.Client{Timeout: 5 * time.Second})
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretAccessKey,
		},
	})
	if err != nil {
		logger.Error("creating mailer", "error", err)
		os.Exit(1)
	}
	notifier := email.NewNotifier(mailer)

	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	issuer, verifier := auth.NewJWT(cfg.JWTSecret)

	admissionSvc := services.NewAdmissionService(admissionStore, requestRepo, eventRepo, userRepo)
	publicationSvc := services.NewPublicationService(eventRepo, categoryRepo, userRepo, notifier, logger)
	querySvc := services.NewQueryService(eventRepo, userRepo, statsClient, logger)
	categorySvc := services.NewCategoryService(categoryRepo, eventRepo)
	userSvc := services.NewUserService(userRepo, hasher)
	authSvc := services.NewAuthService(userRepo, hasher, issuer)

	mux := deliveryhttp.NewRouter(deliveryhttp.Controllers{
		Auth:         controllers.NewAuthController(logger, authSvc),
		PublicEvents: controllers.NewPublicEventController(logger, querySvc),
		OwnerEvents:  controllers.NewPrivateEventController(logger, publicationSvc, admissionSvc, querySvc),
		AdminEvents:  controllers.NewAdminEventController(logger, publicationSvc, querySvc),
		Requests:     controllers.NewRequestController(logger, admissionSvc),
		Categories:   controllers.NewCategoryController(logger, categorySvc),
		Users:        controllers.NewUserAdminController(logger, userSvc),
	}, verifier)

	handler := middleware.CORS(cfg.AllowedOrigins, middleware.Logging(logger, mux))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("server listening", "port", cfg.Port, "environment", cfg.Environment)
	if err := server.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
