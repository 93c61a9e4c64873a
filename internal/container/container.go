package container

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"

	database "github.com/FACorreiaa/go-itinerary-planner/app/db"
	"github.com/FACorreiaa/go-itinerary-planner/config"
	generativeAI "github.com/FACorreiaa/go-itinerary-planner/internal/api/generative_ai"
	"github.com/FACorreiaa/go-itinerary-planner/internal/api/itinerary"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

// Container holds all application dependencies
type Container struct {
	Config           *config.Config
	Logger           *slog.Logger
	Pool             *pgxpool.Pool
	Mongo            *mongo.Client
	Memo             *itinerary.CacheMemo
	ItineraryService *itinerary.ServiceImpl
	ItineraryHandler *itinerary.HandlerImpl
}

// NewContainer connects the configured store and wires the itinerary stack.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}

	repo, err := c.newRepository(ctx)
	if err != nil {
		c.Close()
		return nil, err
	}

	var ai itinerary.TextGenerator = generativeAI.Unavailable{}
	client, err := generativeAI.NewAIClient(ctx, generativeAI.Options{
		APIKey:          cfg.GenAI.APIKey,
		Model:           cfg.GenAI.Model,
		Temperature:     cfg.GenAI.Temperature,
		BreakerFailures: cfg.GenAI.BreakerFailures,
		BreakerTimeout:  cfg.GenAI.BreakerTimeout,
	}, logger)
	switch {
	case errors.Is(err, generativeAI.ErrNoAPIKey):
		logger.Warn("No Gemini API key configured, every generation will use the fallback itinerary")
	case err != nil:
		c.Close()
		return nil, err
	default:
		ai = client
	}

	policy := itinerary.DefaultRetryPolicy()
	if cfg.Generation.MaxAttempts > 0 {
		policy.MaxAttempts = cfg.Generation.MaxAttempts
	}
	if cfg.Generation.InitialBackoff > 0 {
		policy.InitialBackoff = cfg.Generation.InitialBackoff
	}

	c.Memo = itinerary.NewCacheMemo()
	generator := itinerary.NewGenerator(ai, c.Memo, policy, logger)
	c.ItineraryService = itinerary.NewServiceImpl(repo, generator, logger)
	c.ItineraryHandler = itinerary.NewHandlerImpl(c.ItineraryService, logger)
	return c, nil
}

func (c *Container) newRepository(ctx context.Context) (itinerary.Repository, error) {
	cfg, logger := c.Config, c.Logger
	switch cfg.Repositories.Driver {
	case DriverPostgres:
		dbConfig, err := database.NewDatabaseConfig(cfg, logger)
		if err != nil {
			return nil, err
		}
		if err := database.RunMigrations(dbConfig.ConnectionURL, logger); err != nil {
			return nil, err
		}
		wait := time.Duration(cfg.Repositories.Postgres.MAXCONWAITINGTIME) * time.Second
		pool, err := database.Init(ctx, dbConfig.ConnectionURL, wait, logger)
		if err != nil {
			return nil, err
		}
		c.Pool = pool
		if !database.WaitForDB(ctx, pool, logger) {
			return nil, errors.New("database not ready after waiting")
		}
		return itinerary.NewPostgresRepository(pool, logger), nil

	case DriverMongo:
		client, collection, err := database.InitMongo(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		c.Mongo = client
		return itinerary.NewMongoRepository(collection, logger), nil

	case DriverMemory, "":
		logger.Warn("Using in-memory itinerary store, documents are lost on restart")
		return itinerary.NewMemoryRepository(), nil

	default:
		return nil, fmt.Errorf("unknown repository driver %q", cfg.Repositories.Driver)
	}
}

// Close releases all resources held by the container
func (c *Container) Close() {
	if c.Pool != nil {
		c.Pool.Close()
	}
	if c.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.Mongo.Disconnect(ctx); err != nil {
			c.Logger.Warn("Failed to disconnect from MongoDB", slog.Any("error", err))
		}
	}
}
