package aggregate

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/omarshaarawi/ffhistory/internal/models"
)

// NotableLimit is how many games each notable bucket holds.
const NotableLimit = 6

// Matchups collapses score rows into one entry per game. Both teams' rows
// share a game id, so the first row seen for a (game, week, season) wins.
// Rows without both team names and Bye rows are dropped.
func Matchups(records []models.SeasonGameRecord) []models.Matchup {
	seen := make(map[string]bool)
	out := make([]models.Matchup, 0, len(records)/2)

	for _, r := range records {
		if r.Team == "" || r.Opponent == "" || r.IsBye() {
			continue
		}
		key := matchupKey(r)
		if seen[key] {
			continue
		}
		seen[key] = true

		out = append(out, models.Matchup{
			GameID:        r.GameID,
			Season:        r.Season,
			Week:          r.Week,
			SeasonPeriod:  r.SeasonPeriod,
			Team1:         r.Team,
			Team2:         r.Opponent,
			Score1:        r.TeamScore,
			Score2:        r.OpponentScore,
			CombinedScore: round2(r.TeamScore + r.OpponentScore),
			Margin:        round2(math.Abs(r.TeamScore - r.OpponentScore)),
		})
	}
	return out
}

func matchupKey(r models.SeasonGameRecord) string {
	if r.GameID != "" {
		return fmt.Sprintf("%s|%d|%d", r.GameID, r.Week, r.Season)
	}
	a, b := strings.ToLower(r.Team), strings.ToLower(r.Opponent)
	if b < a {
		a, b = b, a
	}
	return fmt.Sprintf("%s|%s|%d|%d", a, b, r.Week, r.Season)
}

// ClassifyGames buckets played games into the highest and lowest combined
// scores and the largest and smallest margins.
func ClassifyGames(records []models.SeasonGameRecord) models.NotableGames {
	games := slices.DeleteFunc(Matchups(records), func(m models.Matchup) bool {
		return m.Score1 == 0 && m.Score2 == 0
	})

	byCombined := func(a, b models.Matchup) int { return cmp.Compare(a.CombinedScore, b.CombinedScore) }
	byMargin := func(a, b models.Matchup) int { return cmp.Compare(a.Margin, b.Margin) }

	return models.NotableGames{
		Highest:  top(games, reverse(byCombined)),
		Lowest:   top(games, byCombined),
		Blowouts: top(games, reverse(byMargin)),
		Closest:  top(games, byMargin),
	}
}

func top(games []models.Matchup, less func(a, b models.Matchup) int) []models.Matchup {
	sorted := slices.Clone(games)
	slices.SortStableFunc(sorted, less)
	if len(sorted) > NotableLimit {
		sorted = sorted[:NotableLimit]
	}
	if sorted == nil {
		sorted = []models.Matchup{}
	}
	return sorted
}

func reverse(f func(a, b models.Matchup) int) func(a, b models.Matchup) int {
	return func(a, b models.Matchup) int { return f(b, a) }
}

// GameQuery filters SearchGames. Zero values match everything.
type GameQuery struct {
	Season          int
	Week            int
	Team            string
	Period          string
	IncludeUnplayed bool
}

// SearchGames returns the deduplicated games matching q in chronological
// order.
func SearchGames(records []models.SeasonGameRecord, q GameQuery) []models.Matchup {
	team := strings.TrimSpace(q.Team)
	period := strings.TrimSpace(q.Period)

	out := make([]models.Matchup, 0)
	for _, m := range Matchups(records) {
		if q.Season != 0 && m.Season != q.Season {
			continue
		}
		if q.Week != 0 && m.Week != q.Week {
			continue
		}
		if team != "" && !sameTeam(m.Team1, team) && !sameTeam(m.Team2, team) {
			continue
		}
		if period != "" && !strings.EqualFold(m.SeasonPeriod, period) {
			continue
		}
		if !q.IncludeUnplayed && m.Score1 == 0 && m.Score2 == 0 {
			continue
		}
		out = append(out, m)
	}

	slices.SortStableFunc(out, func(a, b models.Matchup) int {
		if c := cmp.Compare(a.Season, b.Season); c != 0 {
			return c
		}
		return cmp.Compare(a.Week, b.Week)
	})
	return out
}

// Seasons lists the seasons present in records, oldest first.
func Seasons(records []models.SeasonGameRecord) []int {
	seen := make(map[int]bool)
	var seasons []int
	for _, r := range records {
		if r.Season > 0 && !seen[r.Season] {
			seen[r.Season] = true
			seasons = append(seasons, r.Season)
		}
	}
	slices.Sort(seasons)
	return seasons
}

// LatestPlayedWeek is the last week of season with a scored game, or 0.
func LatestPlayedWeek(records []models.SeasonGameRecord, season int) int {
	week := 0
	for _, r := range records {
		if r.Season == season && !r.Unplayed() && !r.IsBye() && r.Week > week {
			week = r.Week
		}
	}
	return week
}

// SeasonWeeks lists the weeks of season present in records.
func SeasonWeeks(records []models.SeasonGameRecord, season int) []int {
	seen := make(map[int]bool)
	var weeks []int
	for _, r := range records {
		if r.Season == season && r.Week > 0 && !seen[r.Week] {
			seen[r.Week] = true
			weeks = append(weeks, r.Week)
		}
	}
	slices.Sort(weeks)
	return weeks
}

// TeamNames lists every team that appears in records, in first-seen order.
func TeamNames(records []models.SeasonGameRecord) []string {
	seen := make(map[string]bool)
	var names []string
	for _, r := range records {
		key := strings.ToLower(r.Team)
		if r.Team != "" && !seen[key] {
			seen[key] = true
			names = append(names, r.Team)
		}
	}
	return names
}

func sameTeam(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
