package aggregate

import (
	"testing"

	"github.com/omarshaarawi/ffhistory/internal/models"
)

func rivalryLog() []models.SeasonGameRecord {
	var records []models.SeasonGameRecord
	records = append(records, both("1", 2022, 1, "Alpha", "Beta", 100, 90)...)
	records = append(records, both("2", 2022, 8, "Alpha", "Beta", 80, 95)...)
	records = append(records, both("3", 2023, 2, "Alpha", "Beta", 120, 100)...)
	records = append(records, both("4", 2023, 9, "Alpha", "Beta", 110, 105)...)
	records = append(records, both("5", 2023, 14, "Alpha", "Beta", 0, 0)...)
	records = append(records, game("", 2023, 5, "Alpha", "Bye", 0, 0))

	playoff := both("6", 2023, 15, "Alpha", "Beta", 99, 101)
	for i := range playoff {
		playoff[i].SeasonPeriod = "Playoffs"
	}
	records = append(records, playoff...)

	// Week 3 of 2023: Alpha and Beta both play other teams.
	records = append(records, both("7", 2023, 3, "Alpha", "Gamma", 90, 80)...)
	records = append(records, both("8", 2023, 3, "Beta", "Delta", 95, 70)...)
	return records
}

func TestHeadToHead(t *testing.T) {
	got := HeadToHead(rivalryLog(), "alpha", "Beta")

	if got.Games != 5 {
		t.Fatalf("Games = %d, want 5 with 0-0 excluded", got.Games)
	}
	if got.Wins != 3 || got.Losses != 2 || got.Ties != 0 {
		t.Errorf("record = %d-%d-%d, want 3-2-0", got.Wins, got.Losses, got.Ties)
	}
	if got.WinPct != 0.6 {
		t.Errorf("WinPct = %v, want 0.6", got.WinPct)
	}
	if got.PointsFor != 509 || got.PointsAgainst != 491 {
		t.Errorf("points = %v/%v, want 509/491", got.PointsFor, got.PointsAgainst)
	}
	if got.PPGFor != 101.8 || got.PPGAgainst != 98.2 || got.PointDiff != 3.6 {
		t.Errorf("ppg = %v/%v diff %v, want 101.8/98.2 diff 3.6", got.PPGFor, got.PPGAgainst, got.PointDiff)
	}
	if got.Streak != (models.Streak{Result: "L", Length: 1}) {
		t.Errorf("Streak = %+v, want L1", got.Streak)
	}
	if got.LongestWinStreak != 2 {
		t.Errorf("LongestWinStreak = %d, want 2", got.LongestWinStreak)
	}
	if got.LastGame == nil || got.LastGame.Season != 2023 || got.LastGame.Week != 15 {
		t.Errorf("LastGame = %+v, want 2023 week 15", got.LastGame)
	}
	if got.Playoff.Games != 1 || got.Playoff.Losses != 1 {
		t.Errorf("Playoff = %+v, want 0-1", got.Playoff)
	}
}

func TestHeadToHead_OverallRecord(t *testing.T) {
	got := HeadToHead(rivalryLog(), "Alpha", "Beta")

	// Five direct games plus week 3 of 2023, where Beta outscored Alpha.
	if got.Overall.Games != 6 {
		t.Fatalf("Overall.Games = %d, want 6", got.Overall.Games)
	}
	if got.Overall.Wins != 3 || got.Overall.Losses != 3 {
		t.Errorf("Overall = %d-%d, want 3-3", got.Overall.Wins, got.Overall.Losses)
	}
}

func TestHeadToHead_ZeroZeroExcludedEverywhere(t *testing.T) {
	records := both("1", 2023, 14, "Alpha", "Beta", 0, 0)

	got := HeadToHead(records, "Alpha", "Beta")

	if got.Games != 0 || got.Overall.Games != 0 || got.Playoff.Games != 0 {
		t.Errorf("unplayed game counted: %+v", got)
	}
	if got.LastGame != nil {
		t.Errorf("LastGame = %+v, want nil", got.LastGame)
	}
	if got.Matchups == nil {
		t.Error("Matchups should be an empty slice, not nil")
	}
}

func TestHeadToHead_StreakResetsOnTie(t *testing.T) {
	var records []models.SeasonGameRecord
	records = append(records, both("1", 2023, 1, "A", "B", 100, 90)...)
	records = append(records, both("2", 2023, 2, "A", "B", 100, 90)...)
	records = append(records, both("3", 2023, 3, "A", "B", 95, 95)...)

	got := HeadToHead(records, "A", "B")

	if got.Streak != (models.Streak{Result: "T", Length: 1}) {
		t.Errorf("Streak = %+v, want T1", got.Streak)
	}
	if got.Ties != 1 || got.LongestWinStreak != 2 {
		t.Errorf("ties=%d longest=%d, want 1 and 2", got.Ties, got.LongestWinStreak)
	}
}

func TestRivalries(t *testing.T) {
	records := rivalryLog()

	got := Rivalries(records, "Alpha")

	if len(got) != 2 {
		t.Fatalf("len = %d, want Beta and Gamma", len(got))
	}
	if got[0].Opponent != "Beta" || got[0].Games != 5 {
		t.Errorf("first = %s with %d games, want Beta with 5", got[0].Opponent, got[0].Games)
	}
	if got[1].Opponent != "Gamma" || got[1].Wins != 1 {
		t.Errorf("second = %+v, want a 1-0 record against Gamma", got[1])
	}
}
