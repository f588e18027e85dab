package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"immoxperts/server/config"
	"immoxperts/server/internal/api"
	"immoxperts/server/internal/database"
	"immoxperts/server/internal/geocoding"
	"immoxperts/server/internal/interaction"
	"immoxperts/server/internal/mapdata"
	"immoxperts/server/internal/processor"
	"immoxperts/server/internal/queue"
	"immoxperts/server/internal/scheduler"
	"immoxperts/server/internal/search"
	"immoxperts/server/internal/stats"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	// Get the current working directory
	currentDir, err := os.Getwd()
	if err != nil {
		logger.WithError(err).Fatal("Failed to get current directory")
	}

	dbPath := filepath.Join(currentDir, cfg.Database.Path)
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		logger.WithError(err).Fatal("Failed to create database directory")
	}
	logger.Infof("Using address index at: %s", dbPath)

	db, err := database.NewDatabase(dbPath, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	logger.Info("Running database migrations...")
	if err := db.RunMigrations(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	// Address index import pipeline
	importQueue := queue.NewAddressQueue(100, logger)
	importQueue.Start()
	batchProcessor := processor.NewBatchProcessor(db, importQueue, processor.Options{}, logger)
	batchProcessor.Start()

	// Rendered dataset and synchronizer
	store := mapdata.NewStore()
	mapClient := mapdata.NewClient(logger, cfg.Upstream.MutationsURL, cfg.Upstream.ParcelsURL)
	syncer := mapdata.NewSynchronizer(mapClient, store, mapdata.Options{
		DebounceWindow: time.Duration(cfg.Viewport.DebounceMs) * time.Millisecond,
		FeatureLimit:   cfg.Viewport.FeatureLimit,
		SettlePolicy: scheduler.RetryPolicy{
			MaxAttempts: cfg.Viewport.SettleMaxAttempts,
			Delay:       time.Duration(cfg.Viewport.SettleDelayMs) * time.Millisecond,
		},
	}, logger)
	defer syncer.Close()

	// Statistics
	geocoder := geocoding.NewReverseGeocoder(logger, cfg.Upstream.GeocodeURL, 30*time.Minute)
	statsClient := stats.NewCommuneClient(logger, cfg.Upstream.StatsURL)
	statsCtrl := stats.NewController(store, syncer, statsClient, geocoder,
		time.Duration(cfg.Stats.RescanDelayMs)*time.Millisecond, logger)
	defer statsCtrl.Close()

	// Suggestion search
	searcher := search.NewSearcher(
		search.NewLocalSource(cfg.Search.MaxResults),
		search.NewBackendSource(db),
		search.NewExternalSource(logger, cfg.Upstream.GeocodeURL, 10),
		search.Options{
			DebounceWindow: time.Duration(cfg.Search.DebounceMs) * time.Millisecond,
			MaxResults:     cfg.Search.MaxResults,
			CacheTTL:       time.Duration(cfg.Search.CacheTTLMinutes) * time.Minute,
			CacheEntries:   cfg.Search.CacheMaxEntries,
		}, logger)
	defer searcher.Close()

	// Per-client interaction sessions
	sessions := interaction.NewSessions(logger)
	defer sessions.CloseAll()

	handler := api.NewHandler(api.Deps{
		Store:       store,
		Syncer:      syncer,
		MapClient:   mapClient,
		StatsCtrl:   statsCtrl,
		StatsClient: statsClient,
		Searcher:    searcher,
		Geocoder:    geocoder,
		ImportQueue: importQueue,
		Sessions:    sessions,
	}, logger)

	router := gin.Default()
	api.SetupRoutes(router, handler)

	logger.Infof("Starting server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}
