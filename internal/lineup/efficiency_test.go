package lineup

import (
	"testing"

	"github.com/omarshaarawi/ffhistory/internal/models"
)

func teamWeek(id string, week int, roster ...models.PlayerWeekEntry) models.TeamWeek {
	return models.TeamWeek{Season: 2023, Week: week, TeamID: id, TeamName: "Team " + id, Owner: "Owner " + id, Roster: roster}
}

func TestSeasonEfficiency(t *testing.T) {
	weeks := []models.TeamWeek{
		teamWeek("1", 1,
			player("qb", "QB", "QB", pts(20)),
			player("bqb", "QB", "BE", pts(30)),
		),
		teamWeek("2", 1, player("qb2", "QB", "QB", pts(18))),
		teamWeek("1", 2, player("qb", "QB", "QB", pts(40))),
	}

	got := SeasonEfficiency(weeks, NewRuleBook(nil))

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].TeamID != "2" || got[0].SeasonScore != 100 {
		t.Errorf("first = %+v, want team 2 at 100", got[0])
	}

	one := got[1]
	if one.Weeks != 2 {
		t.Errorf("Weeks = %d, want 2", one.Weeks)
	}
	if one.ActualPoints != 60 || one.OptimalPoints != 70 {
		t.Errorf("points = %v/%v, want 60/70", one.ActualPoints, one.OptimalPoints)
	}
	if one.PointsLeftOnBench != 10 {
		t.Errorf("PointsLeftOnBench = %v, want 10", one.PointsLeftOnBench)
	}
	if one.WorstWeek != 1 || one.WorstScore != 67 {
		t.Errorf("worst = week %d score %d, want week 1 score 67", one.WorstWeek, one.WorstScore)
	}
	if one.BestWeek != 2 || one.BestScore != 100 {
		t.Errorf("best = week %d score %d, want week 2 score 100", one.BestWeek, one.BestScore)
	}
	if one.SeasonScore != 86 {
		t.Errorf("SeasonScore = %d, want 86", one.SeasonScore)
	}
}

func TestOptimizeWeek_SortedByScore(t *testing.T) {
	teams := []models.TeamWeek{
		teamWeek("1", 3,
			player("qb", "QB", "QB", pts(10)),
			player("bqb", "QB", "BE", pts(20)),
		),
		teamWeek("2", 3, player("qb", "QB", "QB", pts(15))),
	}

	got := OptimizeWeek(teams, NewRuleBook(nil))

	if got[0].TeamID != "2" {
		t.Errorf("first team = %s, want 2", got[0].TeamID)
	}
	if got[1].OptimizationScore != 50 {
		t.Errorf("team 1 score = %d, want 50", got[1].OptimizationScore)
	}
	if got[1].Week != 3 || got[1].Owner != "Owner 1" {
		t.Errorf("identity not carried: %+v", got[1])
	}
}
