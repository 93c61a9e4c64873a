package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitConfig_Defaults(t *testing.T) {
	cfg, err := InitConfig()
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Repositories.Driver)
	assert.Equal(t, 3, cfg.Generation.MaxAttempts)
	assert.Equal(t, 2*time.Second, cfg.Generation.InitialBackoff)
	assert.Equal(t, "gemini-2.0-flash", cfg.GenAI.Model)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, "itineraries", cfg.Repositories.Mongo.Collection)
	assert.NotEmpty(t, cfg.Server.AllowedOrigins)
}

func TestInitConfig_EnvOverrides(t *testing.T) {
	t.Setenv("APP_REPOSITORIES_DRIVER", "mongo")
	t.Setenv("APP_GENAI_APIKEY", "from-env")
	t.Setenv("APP_GENERATION_INITIALBACKOFF", "500ms")

	cfg, err := InitConfig()
	require.NoError(t, err)

	assert.Equal(t, "mongo", cfg.Repositories.Driver)
	assert.Equal(t, "from-env", cfg.GenAI.APIKey)
	assert.Equal(t, 500*time.Millisecond, cfg.Generation.InitialBackoff)
}
