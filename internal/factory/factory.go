package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/jfraser/whosaid/internal/dependencies/clock"
	"github.com/jfraser/whosaid/internal/dependencies/random"
	"github.com/jfraser/whosaid/internal/notify/sse"
	"github.com/jfraser/whosaid/internal/services/identity"
	"github.com/jfraser/whosaid/internal/services/prompts"
	"github.com/jfraser/whosaid/internal/services/scoring"
	"github.com/jfraser/whosaid/internal/services/session"
	"github.com/jfraser/whosaid/internal/storage"
	"github.com/jfraser/whosaid/internal/storage/memory"
	redisstorage "github.com/jfraser/whosaid/internal/storage/redis"
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
	IdentityService   *identity.Service
	PromptService     *prompts.Service
	ScoringService    *scoring.Service
	SessionController *session.Controller
	HubManager        *sse.HubManager
}

// Config holds configuration for the application factory
type Config struct {
	// PromptsPath is the path to a prompts file (optional)
	// If empty, the built-in prompt pool is used
	PromptsPath string
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New(clk)
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

	app := newWithDependencies(store, clk, rnd, logger)

	if cfg.PromptsPath != "" {
		if err := app.PromptService.LoadFromFile(cfg.PromptsPath); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, logger *slog.Logger) *App {
	identityService := identity.New(rnd)
	promptService := prompts.New(rnd)
	scoringService := scoring.New(rnd)
	sessionController := session.NewController(store, identityService, promptService, scoringService, clk, logger)
	hubManager := sse.NewHubManager(logger)

	return &App{
		Storage:           store,
		Clock:             clk,
		Random:            rnd,
		IdentityService:   identityService,
		PromptService:     promptService,
		ScoringService:    scoringService,
		SessionController: sessionController,
		HubManager:        hubManager,
	}
}
