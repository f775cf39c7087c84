// Package main initializes and starts the fingerbridge HTTP server, setting
// up configuration, logging, the database connection, repositories, protocol
// services, and handlers.
package main

import (
	"cmp"
	"fmt"

	nethttp "net/http"

	"github.com/adipras/fingerbridge/internal/config"
	"github.com/adipras/fingerbridge/internal/db"
	"github.com/adipras/fingerbridge/internal/device"
	"github.com/adipras/fingerbridge/internal/integrity"
	"github.com/adipras/fingerbridge/internal/logger"
	"github.com/adipras/fingerbridge/internal/models"
	"github.com/adipras/fingerbridge/internal/repository"
	"github.com/adipras/fingerbridge/internal/server/handler/http"
	"github.com/adipras/fingerbridge/internal/service"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Initialize PostgreSQL connection and the idempotent schema.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}
	zapLogger.Info("connected to database")

	// The device identity is loaded once and immutable for the process
	// lifetime. Missing fields surface as not-found at first use.
	registry := device.NewRegistry(models.DeviceIdentity{
		Account:      options.Account,
		SerialNumber: options.SerialNumber,
		VendorCode:   options.VendorCode,
		VendorKey:    options.VendorKey,
	})

	codec := integrity.Default()
	params := service.ChallengeParams{
		Secret:    options.Secret,
		TimeLimit: options.TimeLimit,
		BaseURL:   options.BaseURL,
	}

	// Initialize repositories for users and templates.
	userRepo := repository.NewPostgresUserRepository(postgresDB)
	templateRepo := repository.NewPostgresTemplateRepository(postgresDB)

	// Initialize protocol services.
	userService := service.NewUserService(userRepo)
	enrollmentService := service.NewEnrollmentService(templateRepo, registry, codec, params)
	verificationService := service.NewVerificationService(templateRepo, registry, codec, params)

	// Create HTTP handlers for the callback surface.
	deviceHandler := &http.DeviceHandler{Registry: registry}
	userHandler := &http.UserHandler{UserService: userService}
	enrollmentHandler := &http.EnrollmentHandler{EnrollmentService: enrollmentService}
	verificationHandler := &http.VerificationHandler{VerificationService: verificationService}

	// Build the router with middleware and routes.
	router := http.NewRouter(deviceHandler, userHandler, enrollmentHandler, verificationHandler, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Port,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server",
		zap.String("addr", options.Port),
		zap.String("base_url", options.BaseURL),
	)
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
