package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"signup-service/internal/cleanup"
	"signup-service/internal/config"
	"signup-service/internal/crypto"
	apphttp "signup-service/internal/http"
	"signup-service/internal/mail"
	"signup-service/internal/repository/sqlite"
	"signup-service/internal/service"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	if err := sqlite.PingWithRetry(ctx, db, cfg.Database.PingAttempts); err != nil {
		logger.Fatalf("database unreachable: %v", err)
	}

	userRepo := sqlite.NewUserRepository(db)
	tempUserRepo := sqlite.NewTempUserRepository(db)

	if err := userRepo.Init(ctx); err != nil {
		logger.Fatalf("init user repository: %v", err)
	}
	if err := tempUserRepo.Init(ctx); err != nil {
		logger.Fatalf("init temp user repository: %v", err)
	}

	notifier, err := mail.NewSMTPNotifier(mail.SMTPConfig{
		Host:          cfg.Mail.Host,
		Port:          cfg.Mail.Port,
		Username:      cfg.Mail.Username,
		Password:      cfg.Mail.Password,
		From:          cfg.Mail.From,
		Authenticated: cfg.Mail.Authenticated,
	})
	if err != nil {
		logger.Fatalf("setup mailer: %v", err)
	}

	renderer, err := mail.NewEmailRenderer()
	if err != nil {
		logger.Fatalf("load email templates: %v", err)
	}

	registrationService := service.NewRegistrationService(
		service.RegistrationDeps{
			Users:     userRepo,
			TempUsers: tempUserRepo,
			Hasher:    &crypto.BcryptHasher{},
			Tokens:    &crypto.RandomTokenGenerator{Length: cfg.Verification.TokenLength},
			Notifier:  notifier,
			Renderer:  renderer,
			Logger:    logger,
		},
		service.RegistrationConfig{
			VerificationBaseURL: cfg.Verification.BaseURL,
			TokenTTL:            cfg.Verification.TokenTTL,
			MailFrom:            cfg.Mail.From,
		},
	)
	verificationService := service.NewVerificationService(
		service.VerificationDeps{
			Users:     userRepo,
			TempUsers: tempUserRepo,
			Notifier:  notifier,
			Renderer:  renderer,
			Logger:    logger,
		},
		cfg.Mail.From,
	)

	go cleanup.Run(ctx, tempUserRepo, cfg.Database.CleanupInterval, logger)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(apphttp.RequestLogger(logger))
	handler := apphttp.NewHandler(registrationService, verificationService)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}
