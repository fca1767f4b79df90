// Package mcptools exposes the league statistics as MCP tools over the
// streamable HTTP transport.
package mcptools

import (
	"context"
	"fmt"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/omarshaarawi/ffhistory/internal/aggregate"
	"github.com/omarshaarawi/ffhistory/internal/models"
)

type Stats interface {
	LatestSeason(ctx context.Context) (int, error)
	CurrentWeek(ctx context.Context, season int) (int, error)
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

// ToolInfo is a registered tool's name and description.
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Server struct {
	server *mcp.Server
	tools  *toolset
	list   []ToolInfo
}

func NewServer(stats Stats, logger *zap.Logger, version string) *Server {
	s := &Server{
		server: mcp.NewServer(&mcp.Implementation{
			Name:    "ffhistory",
			Version: version,
		}, nil),
		tools: &toolset{stats: stats, logger: logger.Sugar()},
	}
	s.register()
	return s
}

// Handler serves the MCP streamable HTTP transport with plain JSON responses.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})
}

func (s *Server) Tools() []ToolInfo {
	return s.list
}

func addTool[T any](s *Server, tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, T) (*mcp.CallToolResult, any, error)) {
	s.list = append(s.list, ToolInfo{Name: tool.Name, Description: tool.Description})
	mcp.AddTool(s.server, tool, handler)
}

func (s *Server) register() {
	addTool(s, &mcp.Tool{
		Name:        "optimize_lineup",
		Description: "Optimal lineup, points left on bench and accepted swaps for one week",
	}, s.tools.optimizeLineup)

	addTool(s, &mcp.Tool{
		Name:        "season_efficiency",
		Description: "Lineup efficiency of every team across a season",
	}, s.tools.seasonEfficiency)

	addTool(s, &mcp.Tool{
		Name:        "all_pro",
		Description: "First, second and third All-Pro teams for a season or all time",
	}, s.tools.allPro)

	addTool(s, &mcp.Tool{
		Name:        "notable_games",
		Description: "Highest, lowest, blowout and closest games",
	}, s.tools.notableGames)

	addTool(s, &mcp.Tool{
		Name:        "standings",
		Description: "Regular season standings for a season or all time",
	}, s.tools.standings)

	addTool(s, &mcp.Tool{
		Name:        "head_to_head",
		Description: "All-time rivalry record between two teams",
	}, s.tools.headToHead)

	addTool(s, &mcp.Tool{
		Name:        "rivalries",
		Description: "Every opponent a team has played, most frequent first",
	}, s.tools.rivalries)

	addTool(s, &mcp.Tool{
		Name:        "search_games",
		Description: "Games filtered by season, week, team and period",
	}, s.tools.searchGames)

	addTool(s, &mcp.Tool{
		Name:        "find_players",
		Description: "Fuzzy player search across a season's rosters",
	}, s.tools.findPlayers)
}

func toolJSON(v any, err error) (*mcp.CallToolResult, any, error) {
	if err != nil {
		return toolError(err), nil, nil
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError(err), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(b)},
		},
	}, nil, nil
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}
