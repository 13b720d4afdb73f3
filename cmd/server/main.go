package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hotseat-games/millionaire/internal/api"
	"github.com/hotseat-games/millionaire/internal/config"
	"github.com/hotseat-games/millionaire/internal/factory"
	"github.com/hotseat-games/millionaire/internal/services/generator"
	"github.com/hotseat-games/millionaire/internal/services/voice"
	redisstorage "github.com/hotseat-games/millionaire/internal/storage/redis"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Parse()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	generatorCfg := generator.DefaultConfig()
	if cfg.GeneratorURL != "" {
		generatorCfg.ChatURL = cfg.GeneratorURL
	}
	if cfg.GeneratorModel != "" {
		generatorCfg.Model = cfg.GeneratorModel
	}
	generatorCfg.APIKey = cfg.GeneratorAPIKey

	voiceCfg := voice.DefaultConfig()
	voiceCfg.ApplicationID = cfg.ApplicationID
	voiceCfg.Secret = cfg.VoiceSecret

	messengerCfg := voice.DefaultMessengerConfig()
	if cfg.MessagesURL != "" {
		messengerCfg.MessagesURL = cfg.MessagesURL
	}
	messengerCfg.APIKey = cfg.APIKey
	messengerCfg.APISecret = cfg.APISecret
	messengerCfg.FromNumber = cfg.FromNumber

	// Build factory config from environment
	factoryCfg := factory.Config{
		Logger:          logger,
		StorageType:     cfg.StorageType,
		GeneratorConfig: generatorCfg,
		VoiceConfig:     voiceCfg,
		MessengerConfig: messengerCfg,
	}

	// Configure Redis if storage type is redis
	if factoryCfg.StorageType == factory.StorageTypeRedis {
		if cfg.RedisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		factoryCfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:           logger,
		GameController:   app.GameController,
		ScoringService:   app.ScoringService,
		AudienceService:  app.AudienceService,
		DirectoryService: app.DirectoryService,
		VoiceFromNumber:  cfg.FromNumber,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = cfg.Host
	serverConfig.Port = cfg.Port
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
}
