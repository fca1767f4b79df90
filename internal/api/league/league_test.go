package league

import (
	"context"
	"errors"
	"testing"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/omarshaarawi/ffhistory/internal/api/static"
	"github.com/omarshaarawi/ffhistory/internal/lineup"
	"github.com/omarshaarawi/ffhistory/internal/models"
)

type mockSource struct {
	GetRosterRulesFunc   func(ctx context.Context) ([]models.RosterRuleRow, error)
	GetLeagueScoresFunc  func(ctx context.Context) ([]models.ScoreRow, error)
	GetSeasonRostersFunc func(ctx context.Context, season int, weeks []int) ([]static.WeekFile, error)
}

func (m *mockSource) GetRosterRules(ctx context.Context) ([]models.RosterRuleRow, error) {
	return m.GetRosterRulesFunc(ctx)
}

func (m *mockSource) GetLeagueScores(ctx context.Context) ([]models.ScoreRow, error) {
	return m.GetLeagueScoresFunc(ctx)
}

func (m *mockSource) GetSeasonRosters(ctx context.Context, season int, weeks []int) ([]static.WeekFile, error) {
	return m.GetSeasonRostersFunc(ctx, season, weeks)
}

func decode[T any](t *testing.T, raw string) T {
	t.Helper()
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		t.Fatalf("decoding fixture: %v", err)
	}
	return v
}

func TestNormalizeRules(t *testing.T) {
	rows := decode[[]models.RosterRuleRow](t, `[
		{"Season": 2019, "Slots": {"QB": 1, "RB": "2", "DEF": "1", "Bench": 6, "FLEX Eligible": "RB, WR,TE"}},
		{"Season": "default", "Slots": {"QB": "1", "K": 1}},
		{"Season": "someday", "Slots": {"QB": 1}},
		{"Season": 2020, "Slots": {"QB": -1}},
		{"Season": "2021", "Slots": {"QB": "two", "WR": 3}}
	]`)

	got := NewAPI(nil, zap.NewNop()).NormalizeRules(rows)

	if len(got) != 3 {
		t.Fatalf("len = %d, want 3 valid rule sets", len(got))
	}

	r2019 := got[0]
	if r2019.Season != 2019 || r2019.Slots["RB"] != 2 || r2019.Slots[models.PositionDST] != 1 || r2019.Slots[models.SlotBench] != 6 {
		t.Errorf("2019 = %+v", r2019)
	}
	if len(r2019.FlexEligible) != 3 || r2019.FlexEligible[1] != "WR" {
		t.Errorf("FlexEligible = %v, want [RB WR TE]", r2019.FlexEligible)
	}
	if _, ok := r2019.Slots[models.FlexEligibleKey]; ok {
		t.Error("FLEX Eligible leaked into slot counts")
	}

	if !got[1].IsDefault || got[1].Slots["K"] != 1 {
		t.Errorf("default = %+v", got[1])
	}
	if got[2].Season != 2021 || got[2].Slots["WR"] != 3 {
		t.Errorf("2021 = %+v", got[2])
	}
	if _, ok := got[2].Slots["QB"]; ok {
		t.Error("unparseable QB count should be ignored")
	}
}

func TestNormalizeScores(t *testing.T) {
	rows := decode[[]models.ScoreRow](t, `[
		{"Game ID": 101, "Season": "2023", "Week": "3", "Season Period": "Regular",
		 "Team": "Alpha", "Opponent": "Beta", "Team Score": "110.5", "Opponent Score": 98, "Score Diff": null},
		{"Game ID": "", "Season": 2023, "Week": 4, "Team": "Alpha", "Opponent": "Bye", "Team Score": 90, "Opponent Score": ""},
		{"Score Diff": 12.5},
		{"Game ID": 7, "Season": 2023, "Week": 0, "Team": "Alpha", "Opponent": "Beta"},
		{"Game ID": 8, "Season": 2023, "Week": 5, "Team": "", "Opponent": "Beta"}
	]`)

	got := NewAPI(nil, zap.NewNop()).NormalizeScores(rows)

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	first := got[0]
	if first.GameID != "101" || first.Season != 2023 || first.Week != 3 || first.LeagueWeek != 3 {
		t.Errorf("identity = %+v", first)
	}
	if first.TeamScore != 110.5 || first.OpponentScore != 98 || first.ScoreDiff != 12.5 {
		t.Errorf("scores = %v/%v diff %v", first.TeamScore, first.OpponentScore, first.ScoreDiff)
	}
	if !got[1].IsBye() || got[1].OpponentScore != 0 {
		t.Errorf("bye row = %+v", got[1])
	}
}

func TestNormalizeWeek(t *testing.T) {
	file := decode[models.RosterFile](t, `{"teams": [
		{"team_id": 4, "team_name": "Alpha", "owner": "Sam", "roster": [
			{"playerId": 15847, "name": "Travis Kelce", "position": "TE", "proTeam": "KC", "slotPosition": "TE",
			 "projectedPoints": "11.2", "actualPoints": "14.6"},
			{"playerId": "-16002", "name": "Bears D/ST", "position": "DEF", "slotPosition": "Bench",
			 "projectedPoints": null, "actualPoints": ""},
			{"playerId": 99, "name": "", "position": "WR", "slotPosition": "WR", "actualPoints": 3}
		]},
		{"team_id": null, "team_name": "", "owner": "", "roster": []}
	]}`)

	got := NewAPI(nil, zap.NewNop()).NormalizeWeek(2023, 6, file)

	if len(got) != 1 {
		t.Fatalf("len = %d, want 1 team", len(got))
	}
	tw := got[0]
	if tw.TeamID != "4" || tw.Season != 2023 || tw.Week != 6 || tw.Owner != "Sam" {
		t.Errorf("team = %+v", tw)
	}
	if len(tw.Roster) != 2 {
		t.Fatalf("roster = %d entries, want 2", len(tw.Roster))
	}
	kelce := tw.Roster[0]
	if kelce.PlayerID != "15847" || kelce.ActualPoints == nil || *kelce.ActualPoints != 14.6 {
		t.Errorf("kelce = %+v", kelce)
	}
	dst := tw.Roster[1]
	if dst.Position != models.PositionDST || dst.SlotPosition != models.SlotBench || dst.ActualPoints != nil {
		t.Errorf("defense = %+v", dst)
	}
}

func TestNormalizeWeek_NonFinitePointsAreMissing(t *testing.T) {
	file := decode[models.RosterFile](t, `{"teams": [
		{"team_id": 1, "team_name": "Alpha", "owner": "Sam", "roster": [
			{"playerId": 1, "name": "Starter", "position": "QB", "slotPosition": "QB", "actualPoints": "NaN"},
			{"playerId": 2, "name": "Backup", "position": "QB", "slotPosition": "BE", "actualPoints": "12"},
			{"playerId": 3, "name": "Kicker", "position": "K", "slotPosition": "K", "actualPoints": "Infinity"}
		]}
	]}`)

	got := NewAPI(nil, zap.NewNop()).NormalizeWeek(2023, 1, file)
	if len(got) != 1 || len(got[0].Roster) != 3 {
		t.Fatalf("teams = %+v", got)
	}
	for _, p := range []models.PlayerWeekEntry{got[0].Roster[0], got[0].Roster[2]} {
		if p.ActualPoints != nil {
			t.Errorf("%s actualPoints = %v, want nil", p.Name, *p.ActualPoints)
		}
	}

	result := lineup.Optimize(got[0].Roster, lineup.DefaultRules)
	if result.ActualPoints != 0 || result.OptimalPoints != 12 {
		t.Errorf("actual = %v optimal = %v, want 0 and 12", result.ActualPoints, result.OptimalPoints)
	}
	if result.OptimizationScore != 0 {
		t.Errorf("score = %d, want 0", result.OptimizationScore)
	}
	if len(result.AcceptedImprovements) != 1 || result.AcceptedImprovements[0].Kind != models.ImprovementSwap {
		t.Errorf("improvements = %+v, want one swap", result.AcceptedImprovements)
	}
}

func TestGetSeasonRosters(t *testing.T) {
	src := &mockSource{
		GetSeasonRostersFunc: func(_ context.Context, season int, weeks []int) ([]static.WeekFile, error) {
			if weeks != nil {
				t.Errorf("weeks = %v, want nil", weeks)
			}
			team := models.RosterFileTeam{TeamID: "1", TeamName: "Alpha"}
			return []static.WeekFile{
				{Season: season, Week: 1, File: models.RosterFile{Teams: []models.RosterFileTeam{team}}},
				{Season: season, Week: 2, File: models.RosterFile{Teams: []models.RosterFileTeam{team}}},
			}, nil
		},
	}

	got, err := NewAPI(src, zap.NewNop()).GetSeasonRosters(context.Background(), 2022, nil)
	if err != nil {
		t.Fatalf("GetSeasonRosters() error = %v", err)
	}
	if len(got) != 2 || got[1].Week != 2 || got[1].Season != 2022 {
		t.Errorf("team weeks = %+v", got)
	}
}

func TestGetLeagueScores_PropagatesFailure(t *testing.T) {
	boom := errors.New("unreachable")
	src := &mockSource{
		GetLeagueScoresFunc: func(context.Context) ([]models.ScoreRow, error) { return nil, boom },
	}

	if _, err := NewAPI(src, zap.NewNop()).GetLeagueScores(context.Background()); !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
}
