package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"coursecart/config"
	"coursecart/cron"
	"coursecart/database"
	cartRepoPkg "coursecart/database/repository/cart"
	catalogRepoPkg "coursecart/database/repository/catalog"
	enrollmentRepoPkg "coursecart/database/repository/enrollment"
	packageRepoPkg "coursecart/database/repository/packages"
	"coursecart/handlers"
	"coursecart/middleware"
	"coursecart/routes"
	"coursecart/services/enrollment"
	"coursecart/services/selection"
	"coursecart/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitEpisodeCache()
	utils.InitEnrollmentCache()
	utils.InitSnapshotCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	catalog := catalogRepoPkg.NewMongoSessionCatalog()
	packages := packageRepoPkg.NewMongoPackageRepo()
	enrollments := enrollmentRepoPkg.NewMongoEnrollmentRepo()
	cart := cartRepoPkg.NewMongoCartRepo()

	// services.
	snapshots := cron.NewSnapshotStore(
		utils.GetSnapshotCacheClient(),
		time.Duration(config.AppConfig.SnapshotTTLMinutes)*time.Minute,
	)
	facts := enrollment.NewCachedFacts(
		enrollments,
		utils.GetEnrollmentCacheClient(),
		5*time.Minute,
	)
	store := selection.NewRedisStore(
		utils.GetEpisodeCacheClient(),
		time.Duration(config.AppConfig.EpisodeTTLMinutes)*time.Minute,
	)

	selectionService := &selection.DefaultSelectionService{
		Catalog:     catalog,
		Packages:    packages,
		Enrollments: facts,
		Cart:        cart,
		Store:       store,
		Warmer:      cron.NewWarmer(),
		Snapshots:   snapshots,
		WindowDays:  config.AppConfig.GatherWindowDays,
	}

	cron.InitCatalogWarmWorker(catalog, snapshots)

	selectionHandler := handlers.NewSelectionHandler(selectionService, logger)
	catalogHandler := handlers.NewCatalogHandler(catalog, packages, logger)

	routes.RegisterRoutes(router, selectionHandler, catalogHandler)

	utils.StartHealthMonitor(
		utils.GetEpisodeCacheClient(),
		utils.GetEnrollmentCacheClient(),
		utils.GetSnapshotCacheClient(),
		database.MongoClient,
	)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
