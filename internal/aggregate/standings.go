package aggregate

import (
	"sort"
	"strings"

	"github.com/omarshaarawi/ffhistory/internal/models"
)

// Standings builds the regular season table for season from each team's own
// score rows. Season 0 covers every season on record.
func Standings(records []models.SeasonGameRecord, season int) []models.StandingsRow {
	byTeam := make(map[string]*models.StandingsRow)
	var order []*models.StandingsRow

	for _, r := range records {
		if !played(r) || r.IsPlayoff() || r.Opponent == "" {
			continue
		}
		if season != 0 && r.Season != season {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(r.Team))
		row, ok := byTeam[key]
		if !ok {
			row = &models.StandingsRow{Team: r.Team}
			byTeam[key] = row
			order = append(order, row)
		}

		switch result(r) {
		case resultWin:
			row.Wins++
		case resultLoss:
			row.Losses++
		default:
			row.Ties++
		}
		row.PointsFor += r.TeamScore
		row.PointsAgainst += r.OpponentScore
	}

	rows := make([]models.StandingsRow, 0, len(order))
	for _, row := range order {
		if games := row.Wins + row.Losses + row.Ties; games > 0 {
			row.WinPct = round3(float64(row.Wins) / float64(games))
		}
		row.PointsFor = round2(row.PointsFor)
		row.PointsAgainst = round2(row.PointsAgainst)
		rows = append(rows, *row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].WinPct != rows[j].WinPct {
			return rows[i].WinPct > rows[j].WinPct
		}
		return rows[i].PointsFor > rows[j].PointsFor
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}
