package aggregate

import (
	"sort"
	"strings"

	"github.com/omarshaarawi/ffhistory/internal/models"
)

const (
	resultWin  = "W"
	resultLoss = "L"
	resultTie  = "T"
)

func result(r models.SeasonGameRecord) string {
	switch {
	case r.TeamScore > r.OpponentScore:
		return resultWin
	case r.TeamScore < r.OpponentScore:
		return resultLoss
	}
	return resultTie
}

// played keeps games that actually happened. 0-0 rows are scheduled games.
func played(r models.SeasonGameRecord) bool {
	return r.Team != "" && !r.IsBye() && !r.Unplayed()
}

// HeadToHead summarizes every played game team had against opponent. Overall
// compares the two teams' scores in every week they both played, which can
// disagree with the direct record when they sit in different divisions.
func HeadToHead(records []models.SeasonGameRecord, team, opponent string) models.RivalrySummary {
	sum := models.RivalrySummary{
		Team:     strings.TrimSpace(team),
		Opponent: strings.TrimSpace(opponent),
		Matchups: []models.SeasonGameRecord{},
	}

	for _, r := range records {
		if played(r) && sameTeam(r.Team, team) && sameTeam(r.Opponent, opponent) {
			sum.Matchups = append(sum.Matchups, r)
		}
	}
	sort.SliceStable(sum.Matchups, func(i, j int) bool {
		return sum.Matchups[i].Before(sum.Matchups[j])
	})

	winRun := 0
	for i, g := range sum.Matchups {
		res := result(g)
		switch res {
		case resultWin:
			sum.Wins++
			winRun++
		case resultLoss:
			sum.Losses++
			winRun = 0
		default:
			sum.Ties++
			winRun = 0
		}
		if winRun > sum.LongestWinStreak {
			sum.LongestWinStreak = winRun
		}

		if res == sum.Streak.Result {
			sum.Streak.Length++
		} else {
			sum.Streak = models.Streak{Result: res, Length: 1}
		}

		sum.PointsFor += g.TeamScore
		sum.PointsAgainst += g.OpponentScore

		if g.IsPlayoff() {
			tally(&sum.Playoff, res)
		}
		if sum.LastGame == nil || sum.LastGame.Before(g) {
			sum.LastGame = &sum.Matchups[i]
		}
	}

	sum.Games = len(sum.Matchups)
	if sum.Games > 0 {
		games := float64(sum.Games)
		sum.WinPct = round3(float64(sum.Wins) / games)
		sum.PPGFor = round2(sum.PointsFor / games)
		sum.PPGAgainst = round2(sum.PointsAgainst / games)
		sum.PointDiff = round2(sum.PPGFor - sum.PPGAgainst)
	}
	sum.PointsFor = round2(sum.PointsFor)
	sum.PointsAgainst = round2(sum.PointsAgainst)
	finish(&sum.Playoff)
	sum.Overall = overallRecord(records, team, opponent)
	return sum
}

type weekKey struct{ season, week int }

func overallRecord(records []models.SeasonGameRecord, team, opponent string) models.RecordLine {
	mine := make(map[weekKey]float64)
	theirs := make(map[weekKey]float64)
	for _, r := range records {
		if !played(r) {
			continue
		}
		k := weekKey{r.Season, r.Week}
		switch {
		case sameTeam(r.Team, team):
			mine[k] = r.TeamScore
		case sameTeam(r.Team, opponent):
			theirs[k] = r.TeamScore
		}
	}

	var line models.RecordLine
	for k, score := range mine {
		other, ok := theirs[k]
		if !ok {
			continue
		}
		tally(&line, result(models.SeasonGameRecord{TeamScore: score, OpponentScore: other}))
	}
	finish(&line)
	return line
}

func tally(line *models.RecordLine, res string) {
	line.Games++
	switch res {
	case resultWin:
		line.Wins++
	case resultLoss:
		line.Losses++
	default:
		line.Ties++
	}
}

func finish(line *models.RecordLine) {
	if line.Games > 0 {
		line.WinPct = round3(float64(line.Wins) / float64(line.Games))
	}
}

// Rivalries returns a head-to-head summary against every opponent team has
// played, most frequent opponents first.
func Rivalries(records []models.SeasonGameRecord, team string) []models.RivalrySummary {
	seen := make(map[string]bool)
	var opponents []string
	for _, r := range records {
		if !played(r) || !sameTeam(r.Team, team) {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(r.Opponent))
		if !seen[key] {
			seen[key] = true
			opponents = append(opponents, r.Opponent)
		}
	}

	out := make([]models.RivalrySummary, 0, len(opponents))
	for _, opp := range opponents {
		out = append(out, HeadToHead(records, team, opp))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Games > out[j].Games
	})
	return out
}
