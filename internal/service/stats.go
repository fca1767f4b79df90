package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/omarshaarawi/ffhistory/internal/aggregate"
	"github.com/omarshaarawi/ffhistory/internal/api/static"
	"github.com/omarshaarawi/ffhistory/internal/lineup"
	"github.com/omarshaarawi/ffhistory/internal/models"
	"github.com/omarshaarawi/ffhistory/internal/repository/memory"
	"github.com/omarshaarawi/ffhistory/internal/search"
)

var (
	ErrTeamNotFound = errors.New("team not found")
	ErrNoSeasons    = errors.New("no seasons in league scores")
)

// LeagueAPI loads normalized league data.
type LeagueAPI interface {
	GetRosterRules(ctx context.Context) ([]models.RosterRules, error)
	GetLeagueScores(ctx context.Context) ([]models.SeasonGameRecord, error)
	GetSeasonRosters(ctx context.Context, season int, weeks []int) ([]models.TeamWeek, error)
}

// StatsService answers every league question the HTTP API, MCP tools and bot
// ask. Season 0 means all seasons wherever a season is accepted.
type StatsService struct {
	api    LeagueAPI
	repo   *memory.Repository
	logger *zap.SugaredLogger
}

func NewStatsService(api LeagueAPI, repo *memory.Repository, logger *zap.Logger) *StatsService {
	return &StatsService{api: api, repo: repo, logger: logger.Sugar()}
}

func (s *StatsService) scores(ctx context.Context) ([]models.SeasonGameRecord, error) {
	if scores, ok := s.repo.GetScores(); ok {
		return scores, nil
	}

	scores, err := s.api.GetLeagueScores(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading league scores: %w", err)
	}
	s.repo.SaveScores(scores)
	s.logger.Infow("Loaded league scores", "rows", len(scores))
	return scores, nil
}

// ruleBook treats a missing rules file as an empty table so every season
// falls back to the default layout.
func (s *StatsService) ruleBook(ctx context.Context) (lineup.RuleBook, error) {
	if rules, ok := s.repo.GetRules(); ok {
		return lineup.NewRuleBook(rules), nil
	}

	rules, err := s.api.GetRosterRules(ctx)
	switch {
	case errors.Is(err, static.ErrNotFound):
		s.logger.Warnw("No roster rules file, using default lineup")
		rules = []models.RosterRules{}
	case err != nil:
		return lineup.RuleBook{}, fmt.Errorf("error loading roster rules: %w", err)
	}
	s.repo.SaveRules(rules)
	return lineup.NewRuleBook(rules), nil
}

func (s *StatsService) seasonRosters(ctx context.Context, season int) ([]models.TeamWeek, error) {
	if weeks, ok := s.repo.GetSeasonRosters(season); ok {
		return weeks, nil
	}

	scores, err := s.scores(ctx)
	if err != nil {
		return nil, err
	}

	weeks, err := s.api.GetSeasonRosters(ctx, season, aggregate.SeasonWeeks(scores, season))
	if err != nil {
		return nil, fmt.Errorf("error loading %d rosters: %w", season, err)
	}
	s.repo.SaveSeasonRosters(season, weeks)
	s.logger.Infow("Loaded season rosters", "season", season, "team_weeks", len(weeks))
	return weeks, nil
}

func (s *StatsService) allRosters(ctx context.Context) ([]models.TeamWeek, error) {
	seasons, err := s.Seasons(ctx)
	if err != nil {
		return nil, err
	}

	var all []models.TeamWeek
	for _, season := range seasons {
		weeks, err := s.seasonRosters(ctx, season)
		if err != nil {
			return nil, err
		}
		all = append(all, weeks...)
	}
	return all, nil
}

func (s *StatsService) Seasons(ctx context.Context) ([]int, error) {
	scores, err := s.scores(ctx)
	if err != nil {
		return nil, err
	}
	return aggregate.Seasons(scores), nil
}

func (s *StatsService) LatestSeason(ctx context.Context) (int, error) {
	seasons, err := s.Seasons(ctx)
	if err != nil {
		return 0, err
	}
	if len(seasons) == 0 {
		return 0, ErrNoSeasons
	}
	return seasons[len(seasons)-1], nil
}

// CurrentWeek is the last week of season with a scored game.
func (s *StatsService) CurrentWeek(ctx context.Context, season int) (int, error) {
	scores, err := s.scores(ctx)
	if err != nil {
		return 0, err
	}
	return aggregate.LatestPlayedWeek(scores, season), nil
}

// ResolveTeam maps a loosely typed team name onto the name used in the score
// table.
func (s *StatsService) ResolveTeam(ctx context.Context, name string) (string, error) {
	scores, err := s.scores(ctx)
	if err != nil {
		return "", err
	}
	team, ok := search.ResolveTeam(aggregate.TeamNames(scores), name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrTeamNotFound, name)
	}
	return team, nil
}

// WeekOptimization optimizes every lineup of one week. A non-empty team
// narrows the result to the matching team name or owner.
func (s *StatsService) WeekOptimization(ctx context.Context, season, week int, team string) ([]models.TeamOptimization, error) {
	book, err := s.ruleBook(ctx)
	if err != nil {
		return nil, err
	}
	rosters, err := s.seasonRosters(ctx, season)
	if err != nil {
		return nil, err
	}

	var teams []models.TeamWeek
	for _, tw := range rosters {
		if tw.Week == week {
			teams = append(teams, tw)
		}
	}
	results := lineup.OptimizeWeek(teams, book)
	if team == "" {
		return results, nil
	}

	labels := make([]string, 0, len(results)*2)
	for _, r := range results {
		labels = append(labels, r.TeamName, r.Owner)
	}
	match, ok := search.ResolveTeam(labels, team)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTeamNotFound, team)
	}
	filtered := make([]models.TeamOptimization, 0, 1)
	for _, r := range results {
		if strings.EqualFold(r.TeamName, match) || strings.EqualFold(r.Owner, match) {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

func (s *StatsService) SeasonEfficiency(ctx context.Context, season int) ([]models.TeamEfficiency, error) {
	book, err := s.ruleBook(ctx)
	if err != nil {
		return nil, err
	}
	rosters, err := s.seasonRosters(ctx, season)
	if err != nil {
		return nil, err
	}
	return lineup.SeasonEfficiency(rosters, book), nil
}

// AllPro selects the All-Pro teams for season. All-time selections use the
// most recent season's roster layout.
func (s *StatsService) AllPro(ctx context.Context, season int) (models.AllProSelection, error) {
	book, err := s.ruleBook(ctx)
	if err != nil {
		return models.AllProSelection{}, err
	}

	if season == 0 {
		rosters, err := s.allRosters(ctx)
		if err != nil {
			return models.AllProSelection{}, err
		}
		return aggregate.SelectAllPro(rosters, book.Latest()), nil
	}

	rosters, err := s.seasonRosters(ctx, season)
	if err != nil {
		return models.AllProSelection{}, err
	}
	return aggregate.SelectAllPro(rosters, book.For(season)), nil
}

func (s *StatsService) NotableGames(ctx context.Context, season int) (models.NotableGames, error) {
	scores, err := s.scores(ctx)
	if err != nil {
		return models.NotableGames{}, err
	}
	return aggregate.ClassifyGames(filterSeason(scores, season)), nil
}

func (s *StatsService) Standings(ctx context.Context, season int) ([]models.StandingsRow, error) {
	scores, err := s.scores(ctx)
	if err != nil {
		return nil, err
	}
	return aggregate.Standings(scores, season), nil
}

func (s *StatsService) HeadToHead(ctx context.Context, team, opponent string) (models.RivalrySummary, error) {
	scores, err := s.scores(ctx)
	if err != nil {
		return models.RivalrySummary{}, err
	}

	names := aggregate.TeamNames(scores)
	resolvedTeam, ok := search.ResolveTeam(names, team)
	if !ok {
		return models.RivalrySummary{}, fmt.Errorf("%w: %s", ErrTeamNotFound, team)
	}
	resolvedOpponent, ok := search.ResolveTeam(names, opponent)
	if !ok {
		return models.RivalrySummary{}, fmt.Errorf("%w: %s", ErrTeamNotFound, opponent)
	}
	return aggregate.HeadToHead(scores, resolvedTeam, resolvedOpponent), nil
}

func (s *StatsService) Rivalries(ctx context.Context, team string) ([]models.RivalrySummary, error) {
	resolved, err := s.ResolveTeam(ctx, team)
	if err != nil {
		return nil, err
	}
	scores, err := s.scores(ctx)
	if err != nil {
		return nil, err
	}
	return aggregate.Rivalries(scores, resolved), nil
}

func (s *StatsService) SearchGames(ctx context.Context, q aggregate.GameQuery) ([]models.Matchup, error) {
	if q.Team != "" {
		resolved, err := s.ResolveTeam(ctx, q.Team)
		if err != nil {
			return nil, err
		}
		q.Team = resolved
	}

	scores, err := s.scores(ctx)
	if err != nil {
		return nil, err
	}
	return aggregate.SearchGames(scores, q), nil
}

// FindPlayers searches the rosters of season, or the latest season when
// season is 0.
func (s *StatsService) FindPlayers(ctx context.Context, query string, season int) ([]models.PlayerMatch, error) {
	if season == 0 {
		latest, err := s.LatestSeason(ctx)
		if err != nil {
			return nil, err
		}
		season = latest
	}

	rosters, err := s.seasonRosters(ctx, season)
	if err != nil {
		return nil, err
	}
	return search.FindPlayers(rosters, query), nil
}

// Refresh drops cached tables and reloads the score and rules files.
func (s *StatsService) Refresh(ctx context.Context) error {
	s.repo.Clear()
	if _, err := s.scores(ctx); err != nil {
		return err
	}
	if _, err := s.ruleBook(ctx); err != nil {
		return err
	}
	return nil
}

func filterSeason(scores []models.SeasonGameRecord, season int) []models.SeasonGameRecord {
	if season == 0 {
		return scores
	}
	out := make([]models.SeasonGameRecord, 0, len(scores))
	for _, r := range scores {
		if r.Season == season {
			out = append(out, r)
		}
	}
	return out
}
