package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// TMDB upstream
	TMDBBaseURL string
	TMDBBearer  string // server-side credential, used by the relay
	TMDBAPIKey  string // client-side credential; presence enables direct mode
	RelayBase   string // base URL of the relay, used when no client credential is set

	// Search behavior
	DebounceMillis         int // quiet period before a typed query is committed (default: 500)
	TrendingLimit          int // leaderboard size (default: 5)
	TrendingRefreshMinutes int // scheduler interval for leaderboard refresh (default: 10)

	// Server
	ServerPort string

	// Paths
	StoplistFile string // $CONFIG_DIR/stoplist.txt
	DatabaseFile string // $CONFIG_DIR/flickpulse.db

	// Logging
	LogLevel string
}

// DirectMode reports whether the metadata client should call TMDB
// directly with the client-side credential instead of going through
// the relay.
func (c *Config) DirectMode() bool {
	return c.TMDBAPIKey != ""
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Load .env file if it exists (ignore if not found)
	_ = viper.ReadInConfig()

	viper.SetDefault("TMDB_BASE_URL", "https://api.themoviedb.org/3")
	viper.SetDefault("RELAY_BASE_URL", "/api/tmdb")
	viper.SetDefault("DEBOUNCE_MS", 500)
	viper.SetDefault("TRENDING_LIMIT", 5)
	viper.SetDefault("TRENDING_REFRESH_MINUTES", 10)
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")

	configDir := viper.GetString("CONFIG_DIR")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config", "flickpulse")
	} else {
		absPath, err := filepath.Abs(configDir)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path for CONFIG_DIR: %w", err)
		}
		configDir = absPath
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	config := &Config{
		TMDBBaseURL: viper.GetString("TMDB_BASE_URL"),
		TMDBBearer:  viper.GetString("TMDB_BEARER"),
		TMDBAPIKey:  viper.GetString("TMDB_API_KEY"),
		RelayBase:   viper.GetString("RELAY_BASE_URL"),

		DebounceMillis:         viper.GetInt("DEBOUNCE_MS"),
		TrendingLimit:          viper.GetInt("TRENDING_LIMIT"),
		TrendingRefreshMinutes: viper.GetInt("TRENDING_REFRESH_MINUTES"),

		ServerPort: viper.GetString("SERVER_PORT"),

		StoplistFile: filepath.Join(configDir, "stoplist.txt"),
		DatabaseFile: filepath.Join(configDir, "flickpulse.db"),

		LogLevel: viper.GetString("LOG_LEVEL"),
	}

	// The relay needs a server-side credential; without one and without
	// a client-side key there is no way to reach the upstream at all.
	if config.TMDBBearer == "" && config.TMDBAPIKey == "" {
		return nil, fmt.Errorf("TMDB_BEARER or TMDB_API_KEY is required")
	}

	return config, nil
}
