package container

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-itinerary-planner/config"
	"github.com/FACorreiaa/go-itinerary-planner/internal/types"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewContainer_MemoryWithoutAPIKey(t *testing.T) {
	var cfg config.Config
	cfg.Repositories.Driver = DriverMemory
	cfg.Generation.MaxAttempts = 1
	cfg.Generation.InitialBackoff = time.Millisecond

	c, err := NewContainer(context.Background(), &cfg, discardLogger())
	require.NoError(t, err)
	defer c.Close()

	assert.Nil(t, c.Pool)
	assert.Nil(t, c.Mongo)
	require.NotNil(t, c.ItineraryHandler)

	it, err := c.ItineraryService.Generate(context.Background(), types.GenerateItineraryRequest{
		Source: "Islamabad", Destination: "Karachi", NumberOfDays: 1,
	})
	require.NoError(t, err)
	assert.True(t, it.FallbackUsed)
	assert.Zero(t, c.Memo.Len(), "fallbacks are never memoized")
}

func TestNewContainer_DefaultDriverIsMemory(t *testing.T) {
	c, err := NewContainer(context.Background(), &config.Config{}, discardLogger())
	require.NoError(t, err)
	defer c.Close()

	saved, err := c.ItineraryService.Create(context.Background(), "owner", types.Document{
		"tripName": "T", "source": "S", "destination": "D", "numberOfDays": 1,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
}

func TestNewContainer_UnknownDriver(t *testing.T) {
	var cfg config.Config
	cfg.Repositories.Driver = "cassandra"

	_, err := NewContainer(context.Background(), &cfg, discardLogger())
	assert.ErrorContains(t, err, `unknown repository driver "cassandra"`)
}
