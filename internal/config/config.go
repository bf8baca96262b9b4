package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr              string
	DBPath            string
	LogLevel          string
	LeaderboardLimit  int
	LeaderboardMax    int
	HistoryPageSize   int
	SessionTTLMinutes int
	ImportWorkerCount int
	ImportQueueSize   int
	ImportBatchSize   int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:              envOr("ADDR", ":8080"),
		DBPath:            envOr("DB_PATH", "file:typetrack.db"),
		LogLevel:          envOr("LOG_LEVEL", "INFO"),
		LeaderboardLimit:  envIntOr("LEADERBOARD_LIMIT", 50),
		LeaderboardMax:    envIntOr("LEADERBOARD_MAX", 100),
		HistoryPageSize:   envIntOr("HISTORY_PAGE_SIZE", 20),
		SessionTTLMinutes: envIntOr("SESSION_TTL_MINUTES", 30),
		ImportWorkerCount: envIntOr("IMPORT_WORKER_COUNT", 2),
		ImportQueueSize:   envIntOr("IMPORT_QUEUE_SIZE", 32),
		ImportBatchSize:   envIntOr("IMPORT_BATCH_SIZE", 200),
	}
}

// Validate checks the configuration for values the server cannot start with.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("ADDR cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if c.LeaderboardLimit <= 0 {
		return fmt.Errorf("LEADERBOARD_LIMIT must be positive")
	}
	if c.LeaderboardMax < c.LeaderboardLimit {
		return fmt.Errorf("LEADERBOARD_MAX must be >= LEADERBOARD_LIMIT")
	}
	if c.HistoryPageSize <= 0 {
		return fmt.Errorf("HISTORY_PAGE_SIZE must be positive")
	}
	if c.SessionTTLMinutes <= 0 {
		return fmt.Errorf("SESSION_TTL_MINUTES must be positive")
	}
	if c.ImportWorkerCount <= 0 {
		return fmt.Errorf("IMPORT_WORKER_COUNT must be positive")
	}
	if c.ImportQueueSize <= 0 {
		return fmt.Errorf("IMPORT_QUEUE_SIZE must be positive")
	}
	if c.ImportBatchSize <= 0 {
		return fmt.Errorf("IMPORT_BATCH_SIZE must be positive")
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
