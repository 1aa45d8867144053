package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/streamnest/streamnest/backend/internal/config"
	"github.com/streamnest/streamnest/backend/internal/logger"
)

// @title           StreamNest API
// @version         1.0
// @description     Video sharing platform API

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	ctx := context.Background()

	// Bootstrap logger until the configured one takes over inside NewApp
	loggerService, err := logger.NewService(&logger.Config{Level: "debug"})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	configService := config.NewConfigService(loggerService)
	cfg, err := configService.Load(".")
	if err != nil {
		loggerService.LogFatal(err, "Failed to load configuration")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		loggerService.LogInfo("Received shutdown signal", nil)
		cancel()
	}()

	app, err := NewApp(ctx, cfg)
	if err != nil {
		loggerService.LogFatal(err, "Failed to initialize application")
	}

	go func() {
		if err := app.Run(); err != nil {
			loggerService.LogFatal(err, "Application error")
		}
	}()

	<-ctx.Done()

	if err := app.Shutdown(); err != nil {
		loggerService.LogFatal(err, "Error during shutdown")
	}
}
