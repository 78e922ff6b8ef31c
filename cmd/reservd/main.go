package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"room-reservation-backend/config"
	"room-reservation-backend/internal/api"
	"room-reservation-backend/internal/db"
	"room-reservation-backend/internal/logging"
	"room-reservation-backend/internal/model"
	"room-reservation-backend/internal/notification"
	"room-reservation-backend/internal/parse"
	"room-reservation-backend/internal/reminder"
	"room-reservation-backend/internal/store"
)

func main() {
	// A missing .env is fine; the variables may come from the environment.
	_ = godotenv.Load()

	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}

	// Initialize logger
	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()
	logger.Info("configuration loaded", zap.String("path", configPath), zap.Int("rooms", len(cfg.Rooms)))

	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize VAPID options for web push
	webpushOptions := notification.NewWebPushOptions(&cfg.Push)

	// Initialize database
	gormDB, err := db.Init(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	logger.Info("database initialized")

	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create the store layer
	appStore := store.NewGormStore(gormDB)

	// Seed rooms from configuration
	rooms, err := roomsFromConfig(cfg.Rooms)
	if err != nil {
		logger.Fatal("invalid room configuration", zap.Error(err))
	}
	if err := appStore.UpsertRooms(ctx, rooms); err != nil {
		logger.Fatal("failed to store rooms", zap.Error(err))
	}

	// Start the reminder service in the background
	reminderSvc := reminder.NewService(cfg, appStore, webpushOptions, logger)
	go reminderSvc.Run(ctx)

	// Initialize router and HTTP server
	router := api.NewRouter(appStore, cfg, webpushOptions, logger)
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start the server in a goroutine so that it doesn't block.
	go func() {
		logger.Info("HTTP server starting", zap.Int("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server ListenAndServe", zap.Error(err))
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Block until a signal is received.
	<-stop
	logger.Info("shutdown signal received, stopping services")
	cancel()

	// Create a deadline to wait for.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("HTTP server Shutdown", zap.Error(err))
	}

	logger.Info("server gracefully stopped")
}

func roomsFromConfig(rcs []config.RoomConfig) ([]model.Room, error) {
	rooms := make([]model.Room, 0, len(rcs))
	for _, rc := range rcs {
		parsed, err := parse.ParseRoomID(rc.ID)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, model.Room{
			ID:       parsed.ID(),
			Building: parsed.Building,
			Name:     parsed.Name,
			Label:    rc.Label,
		})
	}
	return rooms, nil
}
