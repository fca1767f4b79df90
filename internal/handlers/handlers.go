package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/omarshaarawi/ffhistory/internal/aggregate"
	"github.com/omarshaarawi/ffhistory/internal/models"
)

// StatsService is the league statistics the API exposes.
type StatsService interface {
	Seasons(ctx context.Context) ([]int, error)
	WeekOptimization(ctx context.Context, season, week int, team string) ([]models.TeamOptimization, error)
	SeasonEfficiency(ctx context.Context, season int) ([]models.TeamEfficiency, error)
	AllPro(ctx context.Context, season int) (models.AllProSelection, error)
	NotableGames(ctx context.Context, season int) (models.NotableGames, error)
	Standings(ctx context.Context, season int) ([]models.StandingsRow, error)
	HeadToHead(ctx context.Context, team, opponent string) (models.RivalrySummary, error)
	Rivalries(ctx context.Context, team string) ([]models.RivalrySummary, error)
	SearchGames(ctx context.Context, q aggregate.GameQuery) ([]models.Matchup, error)
	FindPlayers(ctx context.Context, query string, season int) ([]models.PlayerMatch, error)
}

type Config struct {
	Stats          StatsService
	Logger         *zap.Logger
	AllowedOrigins []string
	// MCP is mounted at /mcp when set.
	MCP http.Handler
}

type Handler struct {
	stats          StatsService
	logger         *zap.SugaredLogger
	allowedOrigins []string
	mcp            http.Handler
}

func New(cfg Config) *Handler {
	return &Handler{
		stats:          cfg.Stats,
		logger:         cfg.Logger.Sugar(),
		allowedOrigins: cfg.AllowedOrigins,
		mcp:            cfg.MCP,
	}
}
