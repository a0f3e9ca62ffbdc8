package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"chatrelay-backend/internal/api"
	"chatrelay-backend/internal/config"
	"chatrelay-backend/internal/handlers"
	"chatrelay-backend/internal/inference"
	"chatrelay-backend/internal/services"
	"chatrelay-backend/internal/store/sqlite"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	logger.Info("Starting ChatRelay Backend...")

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// 2. Open SQLite Store and Initialize Schema
	st, err := sqlite.Open(cfg.DatabasePath, logger)
	if err != nil {
		logger.Fatal("Failed to open database", zap.String("path", cfg.DatabasePath), zap.Error(err))
	}
	defer st.Close()

	initCtx, initCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer initCancel()
	if err := st.Ping(initCtx); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}
	if err := st.InitSchema(initCtx); err != nil {
		logger.Fatal("Failed to initialize schema", zap.Error(err))
	}
	logger.Info("Database ready", zap.String("path", cfg.DatabasePath))

	// 3. Initialize Dependencies (Clients, Services, Handlers)
	inferenceClient := inference.NewClient(cfg.InferenceURL, cfg.InferenceTimeout, logger)
	logger.Info("Inference client initialized",
		zap.String("url", cfg.InferenceURL),
		zap.Duration("timeout", cfg.InferenceTimeout),
	)

	userService := services.NewUserService(st, logger)
	chatService := services.NewChatService(st, inferenceClient, logger)

	userHandler := handlers.NewUserHandler(userService, logger)
	chatHandler := handlers.NewChatHandler(chatService, logger)

	// 4. Setup Router & Inject Dependencies
	router := api.NewRouter(api.RouterDependencies{
		UserHandler: userHandler,
		ChatHandler: chatHandler,
		Config:      cfg,
		Logger:      logger,
	})
	logger.Info("HTTP router configured")

	// 5. Configure and Start HTTP Server
	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 2 * cfg.InferenceTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Channel to listen for OS signals for graceful shutdown
	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("Server listening", zap.String("port", cfg.HTTPPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-stopChan
	logger.Info("Shutdown signal received, initiating graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server graceful shutdown failed", zap.Error(err))
	}

	logger.Info("Server shutdown complete")
}
