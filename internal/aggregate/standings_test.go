package aggregate

import (
	"testing"

	"github.com/omarshaarawi/ffhistory/internal/models"
)

func TestStandings(t *testing.T) {
	var records []models.SeasonGameRecord
	records = append(records, both("1", 2023, 1, "Alpha", "Beta", 100, 90)...)
	records = append(records, both("2", 2023, 1, "Gamma", "Delta", 120, 80)...)
	records = append(records, both("3", 2023, 2, "Alpha", "Gamma", 110, 100)...)
	records = append(records, both("4", 2023, 2, "Beta", "Delta", 131, 70)...)
	records = append(records, both("5", 2023, 3, "Alpha", "Delta", 0, 0)...)
	records = append(records, both("6", 2022, 1, "Delta", "Alpha", 150, 60)...)
	records = append(records, game("", 2023, 3, "Beta", "Bye", 0, 0))

	playoff := both("7", 2023, 15, "Delta", "Alpha", 140, 60)
	for i := range playoff {
		playoff[i].SeasonPeriod = "Playoffs"
	}
	records = append(records, playoff...)

	got := Standings(records, 2023)

	want := []struct {
		team   string
		wins   int
		losses int
	}{
		{"Alpha", 2, 0},
		{"Beta", 1, 1},
		{"Gamma", 1, 1},
		{"Delta", 0, 2},
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i, w := range want {
		row := got[i]
		if row.Team != w.team || row.Wins != w.wins || row.Losses != w.losses {
			t.Errorf("row %d = %s %d-%d, want %s %d-%d", i, row.Team, row.Wins, row.Losses, w.team, w.wins, w.losses)
		}
		if row.Rank != i+1 {
			t.Errorf("row %d rank = %d", i, row.Rank)
		}
	}
	// Beta and Gamma are both .500; Beta has more points for.
	if got[1].PointsFor != 221 {
		t.Errorf("Beta PointsFor = %v, want 221", got[1].PointsFor)
	}
}

func TestStandings_AllTime(t *testing.T) {
	var records []models.SeasonGameRecord
	records = append(records, both("1", 2022, 1, "Alpha", "Beta", 100, 90)...)
	records = append(records, both("1", 2023, 1, "Alpha", "Beta", 80, 95)...)

	got := Standings(records, 0)

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Team != "Beta" || got[0].WinPct != 0.5 {
		t.Errorf("leader = %+v, want Beta at .500 on points", got[0])
	}
}
