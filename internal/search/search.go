// Package search resolves loosely typed team and player names against league
// data.
package search

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/omarshaarawi/ffhistory/internal/aggregate"
	"github.com/omarshaarawi/ffhistory/internal/models"
)

const (
	PlayerThreshold = 0.7
	TeamThreshold   = 0.6
)

// Similarity is 1 minus the Levenshtein distance normalized by the longer
// string, compared case-insensitively.
func Similarity(a, b string) float64 {
	a, b = strings.ToLower(strings.TrimSpace(a)), strings.ToLower(strings.TrimSpace(b))
	maxLen := max(len(a), len(b))
	if maxLen == 0 {
		return 0
	}
	return 1 - float64(fuzzy.LevenshteinDistance(a, b))/float64(maxLen)
}

// nameSimilarity also scores query against each word of name so "mahomes"
// finds "Patrick Mahomes".
func nameSimilarity(query, name string) float64 {
	best := Similarity(query, name)
	for _, part := range strings.Fields(name) {
		if s := Similarity(query, part); s > best {
			best = s
		}
	}
	return best
}

// ResolveTeam returns the team name closest to query. An exact match
// (ignoring case) wins outright. Otherwise the most similar name above
// TeamThreshold is used, and failing that a single name containing the query
// characters in order.
func ResolveTeam(names []string, query string) (string, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", false
	}

	for _, name := range names {
		if strings.EqualFold(name, query) {
			return name, true
		}
	}

	bestName, bestScore := "", TeamThreshold
	for _, name := range names {
		if s := nameSimilarity(query, name); s > bestScore {
			bestName, bestScore = name, s
		}
	}
	if bestName != "" {
		return bestName, true
	}

	if matches := fuzzy.FindNormalizedFold(query, names); len(matches) == 1 {
		return matches[0], true
	}
	return "", false
}

// FindPlayers returns every rostered player whose name is similar to query,
// best match first. Totals cover all of weeks; slot and week describe the
// player's most recent appearance.
func FindPlayers(weeks []models.TeamWeek, query string) []models.PlayerMatch {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.PlayerMatch{}
	}

	type seen struct {
		slot         string
		season, week int
	}
	latest := make(map[string]seen)
	for _, tw := range weeks {
		for _, p := range tw.Roster {
			prev, ok := latest[p.Key()]
			if !ok || tw.Season > prev.season || (tw.Season == prev.season && tw.Week >= prev.week) {
				latest[p.Key()] = seen{slot: models.NormalizeSlot(p.SlotPosition), season: tw.Season, week: tw.Week}
			}
		}
	}

	matches := make([]models.PlayerMatch, 0)
	for _, total := range aggregate.PlayerTotals(weeks) {
		score := nameSimilarity(query, total.Name)
		if score <= PlayerThreshold {
			continue
		}

		key := models.PlayerWeekEntry{PlayerID: total.PlayerID, Name: total.Name, Position: total.Position}.Key()
		last := latest[key]
		matches = append(matches, models.PlayerMatch{
			PlayerTotal:  *total,
			Similarity:   score,
			SlotPosition: last.slot,
			Week:         last.week,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Similarity != matches[j].Similarity {
			return matches[i].Similarity > matches[j].Similarity
		}
		return matches[i].TotalPoints > matches[j].TotalPoints
	})
	return matches
}
