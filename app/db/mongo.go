package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/FACorreiaa/go-itinerary-planner/config"
)

// InitMongo connects to MongoDB, pings the primary and ensures the itinerary
// collection has its owner/recency index.
func InitMongo(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*mongo.Client, *mongo.Collection, error) {
	mcfg := cfg.Repositories.Mongo
	if mcfg.URI == "" || mcfg.Database == "" || mcfg.Collection == "" {
		errMsg := "Mongo configuration is missing or invalid"
		logger.Error(errMsg)
		return nil, nil, errors.New(errMsg)
	}
	timeout := mcfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	logger.Info("Connecting to MongoDB...", slog.String("database", mcfg.Database), slog.String("collection", mcfg.Collection))
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mcfg.URI).SetConnectTimeout(timeout))
	if err != nil {
		logger.Error("Failed to connect to MongoDB", slog.Any("error", err))
		return nil, nil, fmt.Errorf("failed connecting to mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		logger.Error("MongoDB ping failed", slog.Any("error", err))
		return nil, nil, fmt.Errorf("failed pinging mongo: %w", err)
	}

	collection := client.Database(mcfg.Database).Collection(mcfg.Collection)
	_, err = collection.Indexes().CreateOne(pingCtx, mongo.IndexModel{
		Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("owner_created"),
	})
	if err != nil {
		logger.Warn("Could not ensure itinerary index", slog.Any("error", err))
	}

	logger.Info("MongoDB connection initialized")
	return client, collection, nil
}
