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

	"golang.org/x/sync/errgroup"

	"social-dashboard/infrastructure/cache"
	"social-dashboard/infrastructure/configuration"
	"social-dashboard/infrastructure/logger"
	"social-dashboard/infrastructure/parser"
	"social-dashboard/infrastructure/persistence"
	httpHandler "social-dashboard/interfaces/http"
	"social-dashboard/server"
	"social-dashboard/usecase"
)

var httpServer *http.Server

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

func main() {
	defer recoverPanic()
	ctx := context.Background()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	g, ctx := errgroup.WithContext(ctx)

	// Load env from files (non-destructive; OS env still has precedence)
	configuration.LoadEnvFromFile("config.env", ".env")

	app := configuration.C.App

	psqlDb, err := persistence.NewPostgreSQLDB()
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Database initialization failed")
		os.Exit(1)
	}
	if err := persistence.EnsureSchema(psqlDb); err != nil {
		logger.GetLogger().WithField("error", err).Error("failed ensuring schema")
		os.Exit(1)
	}
	logger.GetLogger().Info("Database connected.")

	redisClient, _ := cache.NewCache(
		ctx,
		fmt.Sprintf("%s:%s", configuration.C.RedisClient.Host, configuration.C.RedisClient.Port),
		configuration.C.RedisClient.Username,
		configuration.C.RedisClient.Password,
	)
	metricsCache := cache.NewMetricsCache(redisClient, 15*time.Minute)

	// Platform extractors. Missing credentials disable a platform, never the app.
	registry := parser.BuildRegistry(ctx, configuration.C.Parsers)
	logger.GetLogger().WithField("platforms", registry.Available()).Info("Extractors initialized")

	userRepository := persistence.NewUserRepository(psqlDb)
	linkRepository := persistence.NewLinkRepository(psqlDb)
	companyRepository := persistence.NewCompanyRepository(psqlDb)
	mondayRepository := persistence.NewMondayConnectionRepository(psqlDb)

	userUsecase := usecase.NewUserUsecase(userRepository)
	mondayUsecase := usecase.NewMondayUsecase(mondayRepository, linkRepository)
	linkUsecase := usecase.NewLinkUsecase(linkRepository, registry, metricsCache, mondayUsecase)
	companyUsecase := usecase.NewCompanyUsecase(companyRepository)
	statsUsecase := usecase.NewStatsUsecase(linkRepository, companyRepository)

	userHandler := httpHandler.NewUserHandler(userUsecase)
	linkHandler := httpHandler.NewLinkHandler(linkUsecase, configuration.C.Refresh.Concurrency)
	companyHandler := httpHandler.NewCompanyHandler(companyUsecase)
	statsHandler := httpHandler.NewStatsHandler(statsUsecase)
	mondayHandler := httpHandler.NewMondayHandler(mondayUsecase)
	healthHandler := httpHandler.NewHealthHandler(psqlDb, registry)

	router := server.InitiateRouter(userHandler, linkHandler, companyHandler, statsHandler, mondayHandler, healthHandler, userRepository)

	// Background metrics refresher (simple ticker loop)
	interval := time.Duration(configuration.C.Refresh.IntervalMinutes) * time.Minute
	g.Go(func() error {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				res := linkUsecase.RefreshAll(ctx, configuration.C.Refresh.Concurrency)
				logger.GetLogger().
					WithField("refreshed", res.Refreshed).
					WithField("failed", res.Failed).
					Info("Background refresh completed")
			}
		}
	})

	port := app.Port
	logger.GetLogger().WithField("port", port).Info("Starting application")
	g.Go(func() error {
		httpServer = &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
		}
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	select {
	case <-interrupt:
		logger.GetLogger().Info("Application shutdown requested")
	case <-ctx.Done():
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if httpServer != nil {
		_ = httpServer.Shutdown(shutdownCtx)
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
		os.Exit(2)
	}
}
