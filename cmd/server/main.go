package main

import (
	"alcyxob/workout-tracker/internal/api"
	"alcyxob/workout-tracker/internal/config"
	"alcyxob/workout-tracker/internal/logging"
	"alcyxob/workout-tracker/internal/repository/mongo"
	"alcyxob/workout-tracker/internal/service"
	"alcyxob/workout-tracker/internal/storage"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func main() {
	// --- Configuration & Logging ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	logging.Setup(cfg.Logging)
	log.Info("starting workout tracker server")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Info("disconnecting MongoDB")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.WithError(err).Error("failed to disconnect MongoDB")
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.WithField("database", cfg.Database.Name).Info("database connection established")

	// --- Ensure Indexes ---
	go func() { // Run index creation concurrently/in background
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureExerciseIndexes(ctx, appDB.Collection("exercises"))
		mongo.EnsureTemplateIndexes(ctx, appDB.Collection("workout_templates"))
		mongo.EnsureEventIndexes(ctx, appDB.Collection("workout_events"))
		mongo.EnsureLinkIndexes(ctx, appDB.Collection("workout_links"))
		mongo.EnsureTargetSetIndexes(ctx, appDB.Collection("target_sets"))
		mongo.EnsureSetRecordIndexes(ctx, appDB.Collection("set_records"))
		log.Info("index creation process completed")
	}()

	// --- Initialize Storage ---
	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.Fatalf("failed to initialize S3 storage: %v", err)
	}

	// --- Initialize Repositories ---
	exerciseRepo := mongo.NewMongoExerciseRepository(appDB)
	templateRepo := mongo.NewMongoTemplateRepository(appDB)
	eventRepo := mongo.NewMongoEventRepository(appDB)
	linkRepo := mongo.NewMongoLinkRepository(appDB)
	targetSetRepo := mongo.NewMongoTargetSetRepository(appDB)
	setRecordRepo := mongo.NewMongoSetRecordRepository(appDB)
	appStateRepo := mongo.NewMongoAppStateRepository(appDB)
	txRunner := mongo.NewMongoTxRunner(dbClient)

	// --- Initialize Services ---
	catalogService := service.NewCatalogService(exerciseRepo, linkRepo, fileStorage, cfg.S3.PresignExpiry)
	seedService := service.NewSeedService(exerciseRepo, appStateRepo, txRunner)
	templateService := service.NewTemplateService(templateRepo, linkRepo, targetSetRepo, setRecordRepo, txRunner)
	eventService := service.NewEventService(eventRepo, templateRepo, linkRepo, targetSetRepo, setRecordRepo, txRunner)
	linkService := service.NewLinkService(linkRepo, exerciseRepo, templateRepo, eventRepo, targetSetRepo, setRecordRepo, txRunner)

	// --- Seed Catalog ---
	// A failed seed never stops startup: the flag stays unset and the next
	// launch retries.
	seedCtx, seedCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := seedService.SeedIfEmpty(seedCtx); err != nil {
		log.WithError(err).Error("catalog seeding failed; will retry next start")
	}
	seedCancel()

	// --- Initialize Gin Engine ---
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(api.RequestLogger(), api.Recovery())

	api.SetupRoutes(router, catalogService, templateService, eventService, linkService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	log.WithField("address", cfg.Server.Address).Info("server starting")

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen and serve error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Info("server exited")
}
