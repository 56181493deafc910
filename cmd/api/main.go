package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"investmate/internal/config"
	"investmate/internal/database"
	"investmate/internal/handlers"
	"investmate/internal/identity"
	"investmate/internal/logger"
	"investmate/internal/quote"
	"investmate/internal/services"
	"investmate/internal/session"
	"investmate/internal/validator"
)

// @title           InvestMate API
// @version         1.0
// @description     InvestMate tracks personal investments and values them with live quotes.

// @host      localhost:4000
// @BasePath  /

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.Init(appConfig.Env, appConfig.LogLevel)
	defer logger.Sync()
	log := logger.Get()

	if appConfig.SessionSecret == "secret" && appConfig.Env == "production" {
		return errors.New("SESSION_SECRET must be set in production")
	}
	if appConfig.FinnhubAPIKey == "" {
		log.Warn("FINNHUB_API_KEY not set, serving random demo prices")
	}

	// Database
	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("database close error: %v", err)
		}
	}()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Sessions
	rdb := redis.NewClient(&redis.Options{
		Addr:     appConfig.RedisAddr,
		Password: appConfig.RedisPassword,
		DB:       appConfig.RedisDB,
	})
	defer rdb.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("failed to reach redis at %s: %w", appConfig.RedisAddr, err)
	}

	// Services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	investmentService := services.NewInvestmentService(db)
	auditService := services.NewAuditService(db)

	quotes := quote.NewFinnhubClient(&http.Client{Timeout: appConfig.QuoteTimeout}, appConfig.FinnhubAPIKey, logger.Named("quote"))
	enricher := services.NewPriceEnricher(quotes)

	sessions := session.NewRedisStore(rdb, appConfig.SessionTTL)
	provider := identity.NewGoogleProvider(appConfig.GoogleClientID, appConfig.GoogleClientSecret, appConfig.GoogleCallbackURL)

	// Handlers
	validator.Register()
	authHandler := handlers.NewAuthHandler(userService, provider, sessions, handlers.AuthConfig{
		StateSecret:   appConfig.SessionSecret,
		ClientOrigin:  appConfig.ClientOrigin,
		SessionTTL:    appConfig.SessionTTL,
		SecureCookies: appConfig.Env == "production",
	})
	investmentHandler := handlers.NewInvestmentHandler(investmentService, enricher, auditService)

	router := newRouter(routerDeps{
		clientOrigin:      appConfig.ClientOrigin,
		sessions:          sessions,
		authHandler:       authHandler,
		investmentHandler: investmentHandler,
		ready:             dbManager.Ping,
	})

	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Infof("Starting InvestMate API on port %s", appConfig.Port)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case sig := <-stop:
		log.Infof("Received %s, shutting down", sig)
	}

	ctx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	log.Info("Shutdown complete")
	return nil
}
