package api

import (
	"github.com/dmello/typetrack/internal/config"
	"github.com/dmello/typetrack/internal/db"
	"github.com/dmello/typetrack/internal/services"
)

// Server holds the HTTP handler dependencies.
type Server struct {
	DB                 *db.DB
	UserService        services.UserService
	TestService        services.TestService
	AnalyticsService   services.AnalyticsService
	LeaderboardService services.LeaderboardService
	ImportService      services.ImportService
	Config             *config.Config
}
