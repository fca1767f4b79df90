// Package aggregate folds weekly rosters and league score rows into season
// and all-time summaries. Every function is pure: inputs are never mutated and
// missing data produces empty results instead of errors.
package aggregate

import (
	"math"
	"sort"

	"github.com/omarshaarawi/ffhistory/internal/lineup"
	"github.com/omarshaarawi/ffhistory/internal/models"
)

// PlayerTotals accumulates every rostered player's points across weeks, in
// the order players are first seen. A week only counts toward WeeksPlayed when
// the player scored more than zero, so byes and injuries don't drag down PPG.
// Team and Owner reflect the last week the player appeared in.
func PlayerTotals(weeks []models.TeamWeek) []*models.PlayerTotal {
	byKey := make(map[string]*models.PlayerTotal)
	var order []*models.PlayerTotal

	for _, tw := range weeks {
		for _, p := range tw.Roster {
			if p.Position == "" || p.ActualPoints == nil {
				continue
			}

			key := p.Key()
			total, ok := byKey[key]
			if !ok {
				total = &models.PlayerTotal{
					PlayerID: p.PlayerID,
					Name:     p.Name,
					Position: models.NormalizePosition(p.Position),
				}
				byKey[key] = total
				order = append(order, total)
			}

			points := *p.ActualPoints
			total.TotalPoints += points
			if points > 0 {
				total.WeeksPlayed++
			}
			if p.ProTeam != "" {
				total.ProTeam = p.ProTeam
			}
			total.Team = tw.Label()
			total.Owner = tw.Owner
		}
	}

	for _, total := range order {
		total.TotalPoints = round2(total.TotalPoints)
		if total.WeeksPlayed > 0 {
			total.PPG = round2(total.TotalPoints / float64(total.WeeksPlayed))
		}
	}
	return order
}

// SelectAllPro picks first, second and third teams for each position in
// rules. A position with n slots takes the top 3n scorers; slots beyond the
// available players stay nil.
func SelectAllPro(weeks []models.TeamWeek, rules models.RosterRules) models.AllProSelection {
	slots := rules.Slots
	if len(slots) == 0 {
		slots = lineup.DefaultRules.Slots
	}

	limits := make(map[string]int)
	for pos, n := range slots {
		pos = models.NormalizePosition(pos)
		if n <= 0 || pos == models.PositionFlex || models.IsReserveSlot(pos) {
			continue
		}
		if n > limits[pos] {
			limits[pos] = n
		}
	}

	positions := make([]string, 0, len(limits))
	for pos := range limits {
		positions = append(positions, pos)
	}
	models.SortPositions(positions)

	byPosition := make(map[string][]*models.PlayerTotal)
	for _, total := range PlayerTotals(weeks) {
		if _, ok := limits[total.Position]; ok {
			byPosition[total.Position] = append(byPosition[total.Position], total)
		}
	}

	sel := models.AllProSelection{
		Positions:      positions,
		PositionLimits: limits,
		First:          make(models.AllProTeam),
		Second:         make(models.AllProTeam),
		Third:          make(models.AllProTeam),
	}
	for _, pos := range positions {
		ranked := byPosition[pos]
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].TotalPoints > ranked[j].TotalPoints
		})

		n := limits[pos]
		sel.First[pos] = pick(ranked, 0, n)
		sel.Second[pos] = pick(ranked, n, n)
		sel.Third[pos] = pick(ranked, 2*n, n)
	}
	return sel
}

func pick(ranked []*models.PlayerTotal, from, n int) []*models.PlayerTotal {
	out := make([]*models.PlayerTotal, n)
	for i := 0; i < n; i++ {
		if from+i < len(ranked) {
			out[i] = ranked[from+i]
		}
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
