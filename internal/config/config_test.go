package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmello/typetrack/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:              ":8080",
		DBPath:            "test.db",
		LogLevel:          "INFO",
		LeaderboardLimit:  50,
		LeaderboardMax:    100,
		HistoryPageSize:   20,
		SessionTTLMinutes: 30,
		ImportWorkerCount: 2,
		ImportQueueSize:   32,
		ImportBatchSize:   200,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_EmptyDBPath(t *testing.T) {
	cfg := validConfig()
	cfg.DBPath = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
}

func TestValidate_LeaderboardMaxBelowLimit(t *testing.T) {
	cfg := validConfig()
	cfg.LeaderboardMax = 10

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "LEADERBOARD_MAX")
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ADDR", "DB_PATH", "LOG_LEVEL", "LEADERBOARD_LIMIT", "HISTORY_PAGE_SIZE"} {
		require.NoError(t, os.Unsetenv(key))
	}

	cfg := config.Load()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, 50, cfg.LeaderboardLimit)
	assert.Equal(t, 20, cfg.HistoryPageSize)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("LEADERBOARD_LIMIT", "25")

	cfg := config.Load()
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 25, cfg.LeaderboardLimit)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("LEADERBOARD_LIMIT", "not-a-number")

	cfg := config.Load()
	assert.Equal(t, 50, cfg.LeaderboardLimit)
}
