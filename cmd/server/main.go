// Package main initializes and starts the brocante marketplace server,
// setting up configuration, logging, database connections, the image
// store, repositories, services, handlers and routing.
package main

import (
	"context"
	"fmt"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/jdavril/brocante/internal/config"
	"github.com/jdavril/brocante/internal/db"
	"github.com/jdavril/brocante/internal/imagestore"
	"github.com/jdavril/brocante/internal/logger"
	"github.com/jdavril/brocante/internal/repository"
	"github.com/jdavril/brocante/internal/server/handler/http"
	"github.com/jdavril/brocante/internal/service"
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
	addr := options.Port

	// Print build metadata (or "N/A" if unset).
	// cmp.Or needs Go 1.22+; inlined equivalently for the Go 1.21 toolchain.
	printVersion, printDate := version, buildDate
	if printVersion == "" {
		printVersion = "N/A"
	}
	if printDate == "" {
		printDate = "N/A"
	}
	fmt.Printf("Build version: %s\n", printVersion)
	fmt.Printf("Build date: %s\n", printDate)

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Initialize PostgreSQL connection and schema.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Initialize the external image store.
	images, err := imagestore.New(context.Background(), imagestore.Config{
		Endpoint:  options.ImageEndpoint,
		Region:    options.ImageRegion,
		Bucket:    options.ImageBucket,
		AccessKey: options.ImageAccessKey,
		SecretKey: options.ImageSecretKey,
	})
	if err != nil {
		zapLogger.Fatal("cannot init image store", zap.Error(err))
	}

	// Initialize repositories for users and offers.
	userRepo := repository.NewPostgresUserRepository(postgresDB)
	offerRepo := repository.NewPostgresOfferRepository(postgresDB)

	// Initialize business-logic services.
	userService := service.NewUserService(userRepo)
	offerService := service.NewOfferService(offerRepo, images, zapLogger)

	// Create HTTP handlers for account and offer endpoints.
	userHandler := &http.UserHandler{UserService: userService}
	offerHandler := &http.OfferHandler{OfferService: offerService}

	// Build the router with middleware and routes. The user repository
	// doubles as the bearer-token resolver for the auth middleware.
	router := http.NewRouter(userHandler, offerHandler, userRepo, zapLogger)

	server := &nethttp.Server{
		Addr:    addr,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
