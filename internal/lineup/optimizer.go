// Package lineup scores how close a team's started lineup came to the best
// lineup it could have fielded from its own roster.
package lineup

import (
	"math"
	"sort"

	"github.com/omarshaarawi/ffhistory/internal/models"
)

type candidate struct {
	kind       models.ImprovementKind
	position   string
	bench      int
	active     int // -1 for an empty slot
	difference float64
}

// Optimize compares the points a roster scored against the best lineup
// reachable by swapping bench players in.
//
// Every benched player with positive points is paired with each active player
// of the same position who scored less, and with the position itself when no
// active player holds it. Candidates are taken greedily by size; a bench
// player is used at most once and an active player is swapped out at most
// once.
//
// Only one empty-slot candidate is proposed per position even when several
// slots at that position are empty, and it goes to the first benched player
// listed at that position rather than the highest scoring one.
func Optimize(roster []models.PlayerWeekEntry, rules models.RosterRules) models.OptimizationResult {
	var active, benched []int
	for i, p := range roster {
		if p.IsActive() {
			active = append(active, i)
		} else {
			benched = append(benched, i)
		}
	}

	var actual float64
	activeByPosition := make(map[string]int)
	for _, i := range active {
		actual += roster[i].Points()
		activeByPosition[models.NormalizePosition(roster[i].Position)]++
	}

	var candidates []candidate
	emptyResolved := make(map[string]bool)
	for _, b := range benched {
		bench := roster[b]
		benchPoints := bench.Points()
		if benchPoints <= 0 {
			continue
		}
		position := models.NormalizePosition(bench.Position)

		for _, a := range active {
			if models.NormalizePosition(roster[a].Position) != position {
				continue
			}
			if activePoints := roster[a].Points(); activePoints < benchPoints {
				candidates = append(candidates, candidate{
					kind:       models.ImprovementSwap,
					position:   position,
					bench:      b,
					active:     a,
					difference: benchPoints - activePoints,
				})
			}
		}

		if activeByPosition[position] == 0 && rules.SlotCount(position) > 0 && !emptyResolved[position] {
			emptyResolved[position] = true
			candidates = append(candidates, candidate{
				kind:       models.ImprovementEmpty,
				position:   position,
				bench:      b,
				active:     -1,
				difference: benchPoints,
			})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].difference > candidates[j].difference
	})

	usedBench := make(map[int]bool)
	usedActive := make(map[int]bool)
	accepted := make([]models.Improvement, 0)
	var gained float64

	for _, c := range candidates {
		if usedBench[c.bench] {
			continue
		}
		if c.kind == models.ImprovementSwap && usedActive[c.active] {
			continue
		}

		usedBench[c.bench] = true
		imp := models.Improvement{
			Kind:       c.kind,
			Position:   c.position,
			Bench:      roster[c.bench],
			Difference: round2(c.difference),
		}
		if c.kind == models.ImprovementSwap {
			usedActive[c.active] = true
			swapped := roster[c.active]
			imp.Active = &swapped
		}
		accepted = append(accepted, imp)
		gained += c.difference
	}

	optimal := actual + gained
	return models.OptimizationResult{
		ActualPoints:         round2(actual),
		OptimalPoints:        round2(optimal),
		PointsLeftOnBench:    round2(gained),
		OptimizationScore:    Score(actual, optimal),
		AcceptedImprovements: accepted,
	}
}

// Score is actual as a whole percentage of optimal; a lineup with nothing to
// gain is 100.
func Score(actual, optimal float64) int {
	if optimal <= 0 {
		return 100
	}
	return roundHalfUp(actual / optimal * 100)
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
