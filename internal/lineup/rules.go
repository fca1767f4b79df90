package lineup

import (
	"maps"
	"slices"
	"sort"

	"github.com/omarshaarawi/ffhistory/internal/models"
)

// DefaultRules is used when the rules table has neither a matching season
// nor a "default" entry.
var DefaultRules = models.RosterRules{
	IsDefault: true,
	Slots: map[string]int{
		"QB":                1,
		"RB":                2,
		"WR":                2,
		"TE":                1,
		models.PositionFlex: 1,
		models.PositionDST:  1,
		"K":                 1,
	},
	FlexEligible: []string{"RB", "WR", "TE"},
}

// RuleBook selects the roster rules in force for a season.
type RuleBook struct {
	seasons  []models.RosterRules
	fallback *models.RosterRules
}

func NewRuleBook(rules []models.RosterRules) RuleBook {
	var b RuleBook
	for _, r := range rules {
		if r.IsDefault {
			fallback := r
			b.fallback = &fallback
			continue
		}
		b.seasons = append(b.seasons, r)
	}
	sort.SliceStable(b.seasons, func(i, j int) bool {
		return b.seasons[i].Season < b.seasons[j].Season
	})
	return b
}

// Loaded reports whether any rules came from the rules table.
func (b RuleBook) Loaded() bool {
	return len(b.seasons) > 0 || b.fallback != nil
}

// For returns the rules for season: the exact season, else the nearest
// earlier season, else the table's default entry, else DefaultRules.
func (b RuleBook) For(season int) models.RosterRules {
	var prior *models.RosterRules
	for i := range b.seasons {
		r := &b.seasons[i]
		if r.Season == season {
			return clone(*r)
		}
		if r.Season < season {
			prior = r
		}
	}
	if prior != nil {
		return clone(*prior)
	}
	if b.fallback != nil {
		return clone(*b.fallback)
	}
	return clone(DefaultRules)
}

// Latest returns the rules for the most recent configured season.
func (b RuleBook) Latest() models.RosterRules {
	if len(b.seasons) == 0 {
		return b.For(0)
	}
	return clone(b.seasons[len(b.seasons)-1])
}

func clone(r models.RosterRules) models.RosterRules {
	r.Slots = maps.Clone(r.Slots)
	r.FlexEligible = slices.Clone(r.FlexEligible)
	return r
}
