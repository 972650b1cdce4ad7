package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/staffdesk/admin-api/internal/api"
	"github.com/staffdesk/admin-api/internal/core/ports"
	"github.com/staffdesk/admin-api/internal/core/service"
	"github.com/staffdesk/admin-api/internal/identity"
	"github.com/staffdesk/admin-api/internal/infrastructure/config"
	mongodb "github.com/staffdesk/admin-api/internal/infrastructure/db/mongo"
	redisdb "github.com/staffdesk/admin-api/internal/infrastructure/db/redis"
	"github.com/staffdesk/admin-api/internal/infrastructure/queue"
	"github.com/staffdesk/admin-api/internal/infrastructure/storage"
	"github.com/staffdesk/admin-api/pkg/logger"
)

// @title           StaffDesk Admin API
// @version         1.0
// @description     Administration API for user accounts and employee records.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- Dependencies ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	userRepo := mongodb.NewUserRepository(db)
	employeeRepo := mongodb.NewEmployeeRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}
	if err := employeeRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("employee index creation failed")
	}

	store := storage.NewGridFSStore(db)
	tokens := redisdb.NewRevocationStore(rdb)

	// --- Background workers ---
	workerCtx, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()

	dispatcher := queue.NewDispatcher(cfg.Notify.Workers, queue.NewLogSink(log), log)
	dispatcher.Start(workerCtx)

	sessionEvents := make(chan ports.SessionEvent, 16)
	provider := identity.NewProvider(userRepo, sessionEvents, log)
	provider.Start()
	defer provider.Close()

	// --- Services ---
	userService := service.NewUserService(userRepo, dispatcher, log)
	employeeService := service.NewEmployeeService(employeeRepo, store, cfg.Storage.Bucket, dispatcher, log)
	authService := service.NewAuthService(userRepo, tokens, sessionEvents, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, log)

	e := api.NewRouter(api.Dependencies{
		Logger:    log,
		DB:        db,
		Redis:     rdb,
		JWTSecret: cfg.Auth.JWTSecret,
		Users:     userService,
		Employees: employeeService,
		Auth:      authService,
		Store:     store,
		Tokens:    tokens,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// --- Graceful shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info().Msg("server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	} else {
		log.Info().Msg("shutdown complete")
	}
}
