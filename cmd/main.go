package main

import (
	"context"
	"emogo-service/internal/api"
	"emogo-service/internal/config"
	"emogo-service/internal/handlers"
	"emogo-service/internal/metrics"
	"emogo-service/internal/repository"
	service "emogo-service/internal/services"
	"emogo-service/internal/storage"
	utils "emogo-service/internal/utils"
	"emogo-service/internal/views"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	// load config
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		panic(err)
	}

	// logger
	logger, err := utils.NewLogger(cfg.Development(), cfg.Log.Level)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	metrics.Init()

	// record store
	var (
		store *repository.Store
		mc    *mongo.Client
	)
	switch cfg.Store.Driver {
	case "memory":
		logger.Warn("using in-memory record store, data is lost on restart")
		store = repository.NewMemoryStore()
	default:
		mc, err = repository.NewMongoClient(context.Background(), cfg, logger)
		if err != nil {
			logger.Fatalf("mongo connect: %v", err)
		}
		store = repository.NewMongoStore(mc.Database(cfg.Mongo.Database))
	}

	// file storage
	files, err := storage.New(context.Background(), cfg)
	if err != nil {
		logger.Fatalf("storage init: %v", err)
	}

	renderer, err := views.NewRenderer(cfg.Templates.Path)
	if err != nil {
		logger.Fatalf("template init: %v", err)
	}

	svc := service.NewRecordService(store, files, logger)
	h := handlers.NewHandler(cfg.App.Name, svc, renderer)
	app := api.NewServer(api.Options{
		BodyLimit:    cfg.BodyLimit,
		ReadTimeout:  5 * time.Minute,
		WriteTimeout: 5 * time.Minute,
	}, h, logger)

	// start server
	go func() {
		logger.Infof("starting %s on %s", cfg.App.Name, cfg.Addr())
		if err := app.Listen(cfg.Addr()); err != nil {
			logger.Fatalf("listen failed: %v", err)
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown requested")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Errorf("http shutdown: %v", err)
	}
	if mc != nil {
		_ = mc.Disconnect(ctx)
	}
	logger.Info("shutdown completed")
}
