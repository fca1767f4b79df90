package static

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/omarshaarawi/ffhistory/internal/config"
	"github.com/omarshaarawi/ffhistory/internal/models"
)

const (
	RosterRulesPath  = "roster_rules.json"
	LeagueScoresPath = "league_scores.json"
)

// WeekPath is the roster file for one week of one season.
func WeekPath(season, week int) string {
	return fmt.Sprintf("rosters/%d/week_%d.json", season, week)
}

// WeekFile is a decoded weekly roster file.
type WeekFile struct {
	Season int
	Week   int
	File   models.RosterFile
}

type API struct {
	client      *Client
	maxWeeks    int
	concurrency int
	logger      *zap.SugaredLogger
}

func NewAPI(client *Client, cfg config.Data, logger *zap.Logger) *API {
	return &API{
		client:      client,
		maxWeeks:    cfg.MaxWeeks,
		concurrency: cfg.FetchConcurrency,
		logger:      logger.Sugar(),
	}
}

func (a *API) GetRosterRules(ctx context.Context) ([]models.RosterRuleRow, error) {
	var rows []models.RosterRuleRow
	if err := a.client.Get(ctx, RosterRulesPath, &rows); err != nil {
		return nil, fmt.Errorf("fetching roster rules: %w", err)
	}
	return rows, nil
}

func (a *API) GetLeagueScores(ctx context.Context) ([]models.ScoreRow, error) {
	var rows []models.ScoreRow
	if err := a.client.Get(ctx, LeagueScoresPath, &rows); err != nil {
		return nil, fmt.Errorf("fetching league scores: %w", err)
	}
	return rows, nil
}

// GetWeek returns ErrNotFound when the week has no roster file.
func (a *API) GetWeek(ctx context.Context, season, week int) (*models.RosterFile, error) {
	var file models.RosterFile
	if err := a.client.Get(ctx, WeekPath(season, week), &file); err != nil {
		return nil, fmt.Errorf("fetching week %d of %d: %w", week, season, err)
	}
	return &file, nil
}

// GetSeasonRosters fetches the given weeks of season in parallel. A nil weeks
// slice means every week up to MAX_WEEKS. Weeks that are missing or fail to
// load are skipped; only cancellation is returned as an error. The result is
// ordered by week.
func (a *API) GetSeasonRosters(ctx context.Context, season int, weeks []int) ([]WeekFile, error) {
	if weeks == nil {
		weeks = make([]int, a.maxWeeks)
		for i := range weeks {
			weeks[i] = i + 1
		}
	}

	var (
		mu    sync.Mutex
		files []WeekFile
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	for _, week := range weeks {
		g.Go(func() error {
			file, err := a.GetWeek(gctx, season, week)
			switch {
			case errors.Is(err, ErrNotFound):
				a.logger.Debugw("No roster file", "season", season, "week", week)
				return nil
			case err != nil:
				if gctx.Err() != nil {
					return gctx.Err()
				}
				a.logger.Warnw("Skipping roster file", "season", season, "week", week, "error", err)
				return nil
			}

			mu.Lock()
			files = append(files, WeekFile{Season: season, Week: week, File: *file})
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetching %d rosters: %w", season, err)
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Week < files[j].Week
	})
	return files, nil
}
