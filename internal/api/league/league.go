// Package league turns the raw static files into validated, normalized
// records. Rows that can't be used are dropped here with a warning so the
// calculation packages only ever see clean data.
package league

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/omarshaarawi/ffhistory/internal/api/static"
	"github.com/omarshaarawi/ffhistory/internal/models"
)

// Source is the raw file access the normalizer needs.
type Source interface {
	GetRosterRules(ctx context.Context) ([]models.RosterRuleRow, error)
	GetLeagueScores(ctx context.Context) ([]models.ScoreRow, error)
	GetSeasonRosters(ctx context.Context, season int, weeks []int) ([]static.WeekFile, error)
}

type API struct {
	source   Source
	validate *validator.Validate
	logger   *zap.SugaredLogger
}

func NewAPI(source Source, logger *zap.Logger) *API {
	return &API{
		source:   source,
		validate: validator.New(),
		logger:   logger.Sugar(),
	}
}

func (a *API) GetRosterRules(ctx context.Context) ([]models.RosterRules, error) {
	rows, err := a.source.GetRosterRules(ctx)
	if err != nil {
		return nil, err
	}
	return a.NormalizeRules(rows), nil
}

func (a *API) GetLeagueScores(ctx context.Context) ([]models.SeasonGameRecord, error) {
	rows, err := a.source.GetLeagueScores(ctx)
	if err != nil {
		return nil, err
	}
	return a.NormalizeScores(rows), nil
}

// GetSeasonRosters returns every team week of season found in the given weeks
// (all weeks when nil), ordered by week.
func (a *API) GetSeasonRosters(ctx context.Context, season int, weeks []int) ([]models.TeamWeek, error) {
	files, err := a.source.GetSeasonRosters(ctx, season, weeks)
	if err != nil {
		return nil, err
	}

	var out []models.TeamWeek
	for _, f := range files {
		out = append(out, a.NormalizeWeek(f.Season, f.Week, f.File)...)
	}
	return out, nil
}

// NormalizeRules converts the rules table. Season "default" marks the table's
// own fallback entry.
func (a *API) NormalizeRules(rows []models.RosterRuleRow) []models.RosterRules {
	out := make([]models.RosterRules, 0, len(rows))
	for i, row := range rows {
		rules := models.RosterRules{Slots: make(map[string]int)}

		season := row.Season.String()
		if strings.EqualFold(season, "default") {
			rules.IsDefault = true
		} else {
			n, err := strconv.Atoi(season)
			if err != nil || n <= 0 {
				a.logger.Warnw("Skipping roster rules row with bad season", "row", i, "season", season)
				continue
			}
			rules.Season = n
		}

		for key, raw := range row.Slots {
			value := raw.String()
			if strings.EqualFold(strings.TrimSpace(key), models.FlexEligibleKey) {
				rules.FlexEligible = models.ParsePositions(value)
				continue
			}

			n, err := strconv.ParseFloat(value, 64)
			if err != nil {
				a.logger.Warnw("Ignoring roster slot with bad count", "season", season, "slot", key, "value", value)
				continue
			}
			pos := models.NormalizeSlot(key)
			if int(n) > rules.Slots[pos] {
				rules.Slots[pos] = int(n)
			}
		}

		if err := a.validate.Struct(rules); err != nil {
			a.logger.Warnw("Skipping invalid roster rules", "season", season, "error", err)
			continue
		}
		out = append(out, rules)
	}
	return out
}

// NormalizeScores converts league score rows. Missing scores count as 0 and a
// missing Score Diff is recomputed. Rows without a season and both team names
// are export artifacts and are dropped quietly.
func (a *API) NormalizeScores(rows []models.ScoreRow) []models.SeasonGameRecord {
	out := make([]models.SeasonGameRecord, 0, len(rows))
	for i, row := range rows {
		rec := models.SeasonGameRecord{
			GameID:        row.GameID.String(),
			Season:        row.Season.Value,
			Week:          row.Week.Value,
			LeagueWeek:    row.LeagueWeek.Value,
			SeasonPeriod:  row.SeasonPeriod.String(),
			Team:          row.Team.String(),
			Opponent:      row.Opponent.String(),
			TeamScore:     row.TeamScore.Or(0),
			OpponentScore: row.OpponentScore.Or(0),
			WeekRank:      row.WeekRank.Value,
		}
		rec.ScoreDiff = row.ScoreDiff.Or(rec.TeamScore - rec.OpponentScore)
		if !row.LeagueWeek.Valid {
			rec.LeagueWeek = rec.Week
		}

		if rec.Season == 0 && rec.Team == "" && rec.Opponent == "" {
			a.logger.Debugw("Dropping empty score row", "row", i)
			continue
		}
		if err := a.validate.Struct(rec); err != nil {
			a.logger.Warnw("Skipping invalid score row", "row", i, "game_id", rec.GameID, "error", err)
			continue
		}
		out = append(out, rec)
	}
	return out
}

// NormalizeWeek converts one weekly roster file into team weeks.
func (a *API) NormalizeWeek(season, week int, file models.RosterFile) []models.TeamWeek {
	out := make([]models.TeamWeek, 0, len(file.Teams))
	for _, team := range file.Teams {
		tw := models.TeamWeek{
			Season:   season,
			Week:     week,
			TeamID:   team.TeamID.String(),
			TeamName: team.TeamName.String(),
			Owner:    team.Owner.String(),
			Roster:   make([]models.PlayerWeekEntry, 0, len(team.Roster)),
		}
		if tw.TeamID == "" && tw.Label() == "" {
			a.logger.Warnw("Skipping unnamed team", "season", season, "week", week)
			continue
		}

		for _, p := range team.Roster {
			entry := models.PlayerWeekEntry{
				PlayerID:        p.PlayerID.String(),
				Name:            p.Name.String(),
				Position:        models.NormalizePosition(p.Position.String()),
				ProTeam:         p.ProTeam.String(),
				SlotPosition:    models.NormalizeSlot(p.SlotPosition.String()),
				ProjectedPoints: p.ProjectedPoints.Ptr(),
				ActualPoints:    p.ActualPoints.Ptr(),
			}
			if err := a.validate.Struct(entry); err != nil {
				a.logger.Warnw("Skipping invalid roster entry",
					"season", season, "week", week, "team", tw.Label(), "player_id", entry.PlayerID, "error", err)
				continue
			}
			tw.Roster = append(tw.Roster, entry)
		}
		out = append(out, tw)
	}
	return out
}
