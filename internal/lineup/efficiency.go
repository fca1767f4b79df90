package lineup

import (
	"sort"

	"github.com/omarshaarawi/ffhistory/internal/models"
)

// OptimizeWeek optimizes every team in a week, best lineup manager first.
func OptimizeWeek(teams []models.TeamWeek, book RuleBook) []models.TeamOptimization {
	results := make([]models.TeamOptimization, 0, len(teams))
	for _, t := range teams {
		results = append(results, OptimizeTeam(t, book.For(t.Season)))
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].OptimizationScore != results[j].OptimizationScore {
			return results[i].OptimizationScore > results[j].OptimizationScore
		}
		return results[i].ActualPoints > results[j].ActualPoints
	})
	return results
}

func OptimizeTeam(t models.TeamWeek, rules models.RosterRules) models.TeamOptimization {
	return models.TeamOptimization{
		Season:             t.Season,
		Week:               t.Week,
		TeamID:             t.TeamID,
		TeamName:           t.TeamName,
		Owner:              t.Owner,
		OptimizationResult: Optimize(t.Roster, rules),
	}
}

// SeasonEfficiency rolls weekly optimizations up per team. Teams are ordered
// by their season-long score, highest first.
func SeasonEfficiency(weeks []models.TeamWeek, book RuleBook) []models.TeamEfficiency {
	byTeam := make(map[string]*models.TeamEfficiency)
	var order []string
	scoreSum := make(map[string]int)

	for _, tw := range weeks {
		key := tw.TeamID
		if key == "" {
			key = tw.Label()
		}

		eff, ok := byTeam[key]
		if !ok {
			eff = &models.TeamEfficiency{
				TeamID:     tw.TeamID,
				BestScore:  -1,
				WorstScore: 101,
			}
			byTeam[key] = eff
			order = append(order, key)
		}
		eff.TeamName = tw.TeamName
		eff.Owner = tw.Owner

		res := Optimize(tw.Roster, book.For(tw.Season))
		eff.Weeks++
		eff.ActualPoints += res.ActualPoints
		eff.OptimalPoints += res.OptimalPoints
		eff.PointsLeftOnBench += res.PointsLeftOnBench
		scoreSum[key] += res.OptimizationScore

		if res.OptimizationScore > eff.BestScore {
			eff.BestScore = res.OptimizationScore
			eff.BestWeek = tw.Week
		}
		if res.OptimizationScore < eff.WorstScore {
			eff.WorstScore = res.OptimizationScore
			eff.WorstWeek = tw.Week
		}
	}

	out := make([]models.TeamEfficiency, 0, len(order))
	for _, key := range order {
		eff := byTeam[key]
		eff.ActualPoints = round2(eff.ActualPoints)
		eff.OptimalPoints = round2(eff.OptimalPoints)
		eff.PointsLeftOnBench = round2(eff.PointsLeftOnBench)
		eff.AverageScore = round2(float64(scoreSum[key]) / float64(eff.Weeks))
		eff.SeasonScore = Score(eff.ActualPoints, eff.OptimalPoints)
		out = append(out, *eff)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SeasonScore > out[j].SeasonScore
	})
	return out
}
