package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

type JWTConfig struct {
	SecretKey string `mapstructure:"secretKey"`
	Issuer    string `mapstructure:"issuer"`
	Audience  string `mapstructure:"audience"`
}

type Config struct {
	Mode     string `mapstructure:"mode"`
	Dotenv   string `mapstructure:"dotenv"`
	Handlers struct {
		Prometheus struct {
			Port      string `mapstructure:"port"`
			CertFile  string `mapstructure:"certFile"`
			KeyFile   string `mapstructure:"keyFile"`
			EnableTLS bool   `mapstructure:"enableTLS"`
		} `mapstructure:"prometheus"`
	} `mapstructure:"handlers"`
	Repositories struct {
		// Driver selects the itinerary store: postgres, mongo or memory.
		Driver   string `mapstructure:"driver"`
		Postgres struct {
			Host              string `mapstructure:"host"`
			Password          string `mapstructure:"password"`
			Port              string `mapstructure:"port"`
			Username          string `mapstructure:"username"`
			DB                string `mapstructure:"db"`
			SSLMODE           string `mapstructure:"SSLMODE"`
			MAXCONWAITINGTIME int    `mapstructure:"MAXCONWAITINGTIME"`
		} `mapstructure:"postgres"`
		Mongo struct {
			URI        string        `mapstructure:"uri"`
			Database   string        `mapstructure:"database"`
			Collection string        `mapstructure:"collection"`
			Timeout    time.Duration `mapstructure:"timeout"`
		} `mapstructure:"mongo"`
	} `mapstructure:"repositories"`
	Server struct {
		HTTPPort       string        `mapstructure:"HTTPPort"`
		Timeout        time.Duration `mapstructure:"HTTPTimeout"`
		AllowedOrigins []string      `mapstructure:"allowedOrigins"`
	} `mapstructure:"server"`
	GenAI struct {
		APIKey          string        `mapstructure:"apiKey"`
		Model           string        `mapstructure:"model"`
		Temperature     float32       `mapstructure:"temperature"`
		BreakerFailures uint32        `mapstructure:"breakerFailures"`
		BreakerTimeout  time.Duration `mapstructure:"breakerTimeout"`
	} `mapstructure:"genai"`
	Generation struct {
		MaxAttempts    int           `mapstructure:"maxAttempts"`
		InitialBackoff time.Duration `mapstructure:"initialBackoff"`
	} `mapstructure:"generation"`
	JWT       JWTConfig `mapstructure:"jwt"`
	RateLimit struct {
		GenerateRequests int           `mapstructure:"generateRequests"`
		Window           time.Duration `mapstructure:"window"`
	} `mapstructure:"rateLimit"`
}

// InitConfig loads config.yml from the usual locations, falling back to the
// embedded copy. Every key can be overridden from the environment with the
// APP_ prefix, e.g. APP_GENAI_APIKEY or APP_REPOSITORIES_DRIVER.
func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")
	v.AddConfigPath("/usr/local/bin")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return config, nil
}
