package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/omarshaarawi/ffhistory/internal/aggregate"
)

type OptimizeArgs struct {
	Season int    `json:"season" jsonschema:"Season year (0 = latest)"`
	Week   int    `json:"week" jsonschema:"Week number (0 = latest played week)"`
	Team   string `json:"team,omitempty" jsonschema:"Team name or owner (empty = every team)"`
}

type SeasonArgs struct {
	Season int `json:"season" jsonschema:"Season year (0 = all seasons)"`
}

type EfficiencyArgs struct {
	Season int `json:"season" jsonschema:"Season year (0 = latest)"`
}

type HeadToHeadArgs struct {
	Team     string `json:"team" jsonschema:"Team name (required)"`
	Opponent string `json:"opponent" jsonschema:"Opponent team name (required)"`
}

type TeamArgs struct {
	Team string `json:"team" jsonschema:"Team name (required)"`
}

type SearchGamesArgs struct {
	Season          int    `json:"season,omitempty" jsonschema:"Season year (0 = any)"`
	Week            int    `json:"week,omitempty" jsonschema:"Week number (0 = any)"`
	Team            string `json:"team,omitempty" jsonschema:"Team name"`
	Period          string `json:"period,omitempty" jsonschema:"Season period, e.g. Regular or Playoffs"`
	IncludeUnplayed bool   `json:"include_unplayed,omitempty" jsonschema:"Include games with no score yet"`
}

type FindPlayersArgs struct {
	Query  string `json:"query" jsonschema:"Player name (required)"`
	Season int    `json:"season,omitempty" jsonschema:"Season year (0 = latest)"`
}

type toolset struct {
	stats  Stats
	logger *zap.SugaredLogger
}

func (t *toolset) season(ctx context.Context, season int) (int, error) {
	if season > 0 {
		return season, nil
	}
	return t.stats.LatestSeason(ctx)
}

func (t *toolset) optimizeLineup(ctx context.Context, req *mcp.CallToolRequest, args OptimizeArgs) (*mcp.CallToolResult, any, error) {
	season, err := t.season(ctx, args.Season)
	if err != nil {
		return toolError(err), nil, nil
	}
	week := args.Week
	if week <= 0 {
		if week, err = t.stats.CurrentWeek(ctx, season); err != nil {
			return toolError(err), nil, nil
		}
		if week == 0 {
			return toolError(fmt.Errorf("no played weeks in %d", season)), nil, nil
		}
	}
	t.logger.Debugw("MCP optimize_lineup", "season", season, "week", week, "team", args.Team)
	return toolJSON(t.stats.WeekOptimization(ctx, season, week, strings.TrimSpace(args.Team)))
}

func (t *toolset) seasonEfficiency(ctx context.Context, req *mcp.CallToolRequest, args EfficiencyArgs) (*mcp.CallToolResult, any, error) {
	season, err := t.season(ctx, args.Season)
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolJSON(t.stats.SeasonEfficiency(ctx, season))
}

func (t *toolset) allPro(ctx context.Context, req *mcp.CallToolRequest, args SeasonArgs) (*mcp.CallToolResult, any, error) {
	if args.Season < 0 {
		return toolError(fmt.Errorf("invalid season %d", args.Season)), nil, nil
	}
	return toolJSON(t.stats.AllPro(ctx, args.Season))
}

func (t *toolset) notableGames(ctx context.Context, req *mcp.CallToolRequest, args SeasonArgs) (*mcp.CallToolResult, any, error) {
	if args.Season < 0 {
		return toolError(fmt.Errorf("invalid season %d", args.Season)), nil, nil
	}
	return toolJSON(t.stats.NotableGames(ctx, args.Season))
}

func (t *toolset) standings(ctx context.Context, req *mcp.CallToolRequest, args SeasonArgs) (*mcp.CallToolResult, any, error) {
	if args.Season < 0 {
		return toolError(fmt.Errorf("invalid season %d", args.Season)), nil, nil
	}
	return toolJSON(t.stats.Standings(ctx, args.Season))
}

func (t *toolset) headToHead(ctx context.Context, req *mcp.CallToolRequest, args HeadToHeadArgs) (*mcp.CallToolResult, any, error) {
	team, opponent := strings.TrimSpace(args.Team), strings.TrimSpace(args.Opponent)
	if team == "" || opponent == "" {
		return toolError(fmt.Errorf("team and opponent are required")), nil, nil
	}
	return toolJSON(t.stats.HeadToHead(ctx, team, opponent))
}

func (t *toolset) rivalries(ctx context.Context, req *mcp.CallToolRequest, args TeamArgs) (*mcp.CallToolResult, any, error) {
	team := strings.TrimSpace(args.Team)
	if team == "" {
		return toolError(fmt.Errorf("team is required")), nil, nil
	}
	return toolJSON(t.stats.Rivalries(ctx, team))
}

func (t *toolset) searchGames(ctx context.Context, req *mcp.CallToolRequest, args SearchGamesArgs) (*mcp.CallToolResult, any, error) {
	return toolJSON(t.stats.SearchGames(ctx, aggregate.GameQuery{
		Season:          args.Season,
		Week:            args.Week,
		Team:            strings.TrimSpace(args.Team),
		Period:          strings.TrimSpace(args.Period),
		IncludeUnplayed: args.IncludeUnplayed,
	}))
}

func (t *toolset) findPlayers(ctx context.Context, req *mcp.CallToolRequest, args FindPlayersArgs) (*mcp.CallToolResult, any, error) {
	query := strings.TrimSpace(args.Query)
	if query == "" {
		return toolError(fmt.Errorf("query is required")), nil, nil
	}
	return toolJSON(t.stats.FindPlayers(ctx, query, args.Season))
}
