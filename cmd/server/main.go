package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portfolio-backend/auth"
	"portfolio-backend/config"
	"portfolio-backend/db"
	"portfolio-backend/db/mongo"
	"portfolio-backend/db/postgres"
	"portfolio-backend/handlers"
	"portfolio-backend/logger"
	"portfolio-backend/repository"
	"portfolio-backend/routes"
	"portfolio-backend/utils"
)

func main() {
	// Load config from .env or environment
	cfg := config.LoadConfig()
	logger.InitLogger(logger.ParseLevel(cfg.LogLevel), cfg.LogDir)
	defer logger.CloseLogger()

	if err := cfg.Validate(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}

	var (
		conn            db.DB
		userRepo        repository.UserRepository
		portfolioRepo   repository.PortfolioRepository
		certificateRepo repository.CertificateRepository
		contactRepo     repository.ContactRepository
	)

	dbType, _ := db.ParseDBType(cfg.DBType)
	switch dbType {
	case db.Postgres:
		pg := postgres.NewPostgresDB(cfg.PostgresURL, cfg.PostgresConns)
		if err := pg.Connect(); err != nil {
			logger.Errorf("could not connect to postgres: %v", err)
			os.Exit(1)
		}
		if err := db.RunMigrations(pg.Conn, cfg.MigrationsPath); err != nil {
			logger.Error(err)
			os.Exit(1)
		}
		conn = pg

		userRepo = repository.NewPostgresUserRepo(pg.Conn)
		portfolioRepo = repository.NewPostgresPortfolioRepo(pg.Conn)
		certificateRepo = repository.NewPostgresCertificateRepo(pg.Conn)
		contactRepo = repository.NewPostgresContactRepo(pg.Conn)

	case db.Mongo:
		mg := mongo.NewMongoDB(cfg.MongoURL, cfg.MongoDB)
		if err := mg.Connect(); err != nil {
			logger.Errorf("could not connect to mongo: %v", err)
			os.Exit(1)
		}
		if err := repository.EnsureMongoIndexes(mg.GetContext(), mg.Client, mg.Name); err != nil {
			logger.Errorf("could not create indexes: %v", err)
			os.Exit(1)
		}
		conn = mg

		userRepo = repository.NewMongoUserRepo(mg.Client, mg.Name)
		portfolioRepo = repository.NewMongoPortfolioRepo(mg.Client, mg.Name)
		certificateRepo = repository.NewMongoCertificateRepo(mg.Client, mg.Name)
		contactRepo = repository.NewMongoContactRepo(mg.Client, mg.Name)
	}
	defer conn.Disconnect()

	tokens := auth.NewTokenService(cfg.JWTSecret)

	var captcha handlers.CaptchaVerifier
	if cfg.RecaptchaSecret != "" {
		captcha = utils.NewRecaptchaVerifier(cfg.RecaptchaSecret, cfg.RecaptchaVerifyURL)
	}

	uploads := &handlers.Uploader{Dir: cfg.UploadDir, MaxBytes: cfg.MaxUploadMB << 20}
	if cfg.R2.Enabled() {
		mirror, err := utils.NewR2Mirror(context.Background(), cfg.R2)
		if err != nil {
			logger.Warningf("R2 mirror disabled: %v", err)
		} else {
			uploads.Mirror = mirror
		}
	}

	var pdf handlers.PDFRenderer
	if cfg.PDFEnabled {
		pdf = utils.NewPDFGenerator()
	}

	router := routes.SetupRoutes(routes.Handlers{
		Auth: &handlers.AuthHandler{
			Repo:    userRepo,
			Tokens:  tokens,
			Captcha: captcha,
			Policy:  handlers.PasswordPolicy{MinLength: cfg.PasswordMinLength, Alphanumeric: cfg.PasswordAlphanumeric},
		},
		Portfolio: &handlers.PortfolioHandler{Repo: portfolioRepo, Users: userRepo, Uploads: uploads},
		Certificate: &handlers.CertificateHandler{
			Repo:    certificateRepo,
			Users:   userRepo,
			Uploads: uploads,
			PDF:     pdf,
		},
		Contact: &handlers.ContactHandler{Repo: contactRepo, Users: userRepo, Captcha: captcha},
	}, tokens)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("Listening at http://%s:%s", cfg.Host, cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("server stopped: %v", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warningf("graceful shutdown failed: %v", err)
	}
	logger.Info("server stopped")
}
