package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Sreemathipalanisamy/gst-service-register/config"
	"github.com/Sreemathipalanisamy/gst-service-register/internal/app/controller"
	"github.com/Sreemathipalanisamy/gst-service-register/internal/app/repository"
	"github.com/Sreemathipalanisamy/gst-service-register/internal/app/service"
	"github.com/Sreemathipalanisamy/gst-service-register/internal/db"
	"github.com/Sreemathipalanisamy/gst-service-register/internal/middleware"
	"github.com/Sreemathipalanisamy/gst-service-register/internal/router"
	"github.com/Sreemathipalanisamy/gst-service-register/internal/scheduler"
	"github.com/Sreemathipalanisamy/gst-service-register/pkg/emailcheck"
	"github.com/Sreemathipalanisamy/gst-service-register/pkg/logger"
	"github.com/Sreemathipalanisamy/gst-service-register/pkg/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting GST registration server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Redis is optional: without it token revocation is skipped
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, token revocation disabled", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		defer func() {
			if err := redis.Close(); err != nil {
				logger.Error("Failed to close Redis connection", err)
			}
		}()
	}

	emailClient, err := emailcheck.NewClient(emailcheck.Config{
		BaseURL:      cfg.EmailCheck.BaseURL,
		APIKey:       cfg.EmailCheck.APIKey,
		ClientSecret: cfg.EmailCheck.ClientSecret,
	}, cfg.EmailCheck.Timeout)
	if err != nil {
		logger.Fatal("Failed to create email verification client", err)
	}
	if emailClient.DevMode() {
		logger.Warn("Email verification running in dev mode: all addresses auto-approve")
	}

	// Repositories
	registrationRepo := repository.NewRegistrationRepository(db.GetDB())
	invoiceRepo := repository.NewInvoiceRepository(db.GetDB())

	// Services
	authService := service.NewAuthService(
		registrationRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	registrationService := service.NewRegistrationService(registrationRepo, emailClient)
	invoiceService := service.NewInvoiceService(invoiceRepo, registrationRepo)

	// Controllers
	authController := controller.NewAuthController(authService)
	registrationController := controller.NewRegistrationController(registrationService)
	invoiceController := controller.NewInvoiceController(invoiceService)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	r := router.NewRouter(
		authController,
		registrationController,
		invoiceController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	overdueScheduler := scheduler.NewOverdueScheduler(
		invoiceService,
		cfg.Scheduler.OverdueCron,
		cfg.Scheduler.OverdueGrace,
	)
	if err := overdueScheduler.Start(); err != nil {
		logger.Fatal("Failed to start overdue scheduler", err)
	}
	defer overdueScheduler.Stop()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
