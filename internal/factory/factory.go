package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/hotseat-games/millionaire/internal/dependencies/clock"
	"github.com/hotseat-games/millionaire/internal/dependencies/random"
	"github.com/hotseat-games/millionaire/internal/services/audience"
	"github.com/hotseat-games/millionaire/internal/services/directory"
	"github.com/hotseat-games/millionaire/internal/services/game"
	"github.com/hotseat-games/millionaire/internal/services/generator"
	"github.com/hotseat-games/millionaire/internal/services/scoring"
	"github.com/hotseat-games/millionaire/internal/services/voice"
	"github.com/hotseat-games/millionaire/internal/storage"
	"github.com/hotseat-games/millionaire/internal/storage/memory"
	redisstorage "github.com/hotseat-games/millionaire/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	ScoringService   *scoring.Service
	DirectoryService *directory.Service
	VoiceService     *voice.Service
	AudienceService  *audience.Service
	GameController   *game.Controller
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// GeneratorConfig holds settings for the question generator client
	GeneratorConfig generator.Config
	// VoiceConfig holds voice credential settings
	VoiceConfig voice.Config
	// MessengerConfig holds outbound messaging settings (optional)
	// If the API key is empty, outbound replies are dropped
	MessengerConfig voice.MessengerConfig
	// PointScale overrides the prize ladder (optional)
	PointScale []int
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	gen, err := generator.NewOpenAIClient(cfg.GeneratorConfig)
	if err != nil {
		return nil, err
	}

	voiceService, err := voice.New(cfg.VoiceConfig, clk)
	if err != nil {
		return nil, err
	}

	var messenger voice.Messenger
	if cfg.MessengerConfig.APIKey == "" {
		logger.Warn("no messaging credentials configured, outbound replies disabled")
		messenger = voice.NopMessenger{}
	} else {
		messenger, err = voice.NewHTTPMessenger(cfg.MessengerConfig)
		if err != nil {
			return nil, err
		}
	}

	pointScale := cfg.PointScale
	if pointScale == nil {
		pointScale = scoring.DefaultPointScale
	}

	return newWithDependencies(store, clk, rnd, gen, voiceService, messenger, pointScale, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	gen generator.Generator,
	voiceService *voice.Service,
	messenger voice.Messenger,
	pointScale []int,
	logger *slog.Logger,
) *App {
	// Create services
	scoringService := scoring.New(pointScale)
	directoryService := directory.New(store, logger)
	audienceService := audience.New(store, messenger, logger)
	gameController := game.NewController(
		store,
		gen,
		scoringService,
		directoryService,
		voiceService,
		audienceService,
		clk,
		rnd,
		logger,
	)

	return &App{
		Storage:          store,
		Clock:            clk,
		Random:           rnd,
		ScoringService:   scoringService,
		DirectoryService: directoryService,
		VoiceService:     voiceService,
		AudienceService:  audienceService,
		GameController:   gameController,
	}
}
