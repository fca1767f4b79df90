package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/omarshaarawi/ffhistory/internal/aggregate"
	"github.com/omarshaarawi/ffhistory/internal/models"
)

// The *Report methods render Telegram Markdown for the bot and scheduler.

func seasonLabel(season int) string {
	if season == 0 {
		return "All-Time"
	}
	return fmt.Sprintf("%d", season)
}

func (s *StatsService) OptimizationReport(ctx context.Context, season, week int, team string) (string, error) {
	results, err := s.WeekOptimization(ctx, season, week, team)
	if err != nil {
		return "", fmt.Errorf("error optimizing lineups: %w", err)
	}
	if len(results) == 0 {
		return fmt.Sprintf("No rosters found for week %d of %d.", week, season), nil
	}

	r := results[0]
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🧮 *%s* Week %d, %d\n\n", r.TeamName, r.Week, r.Season))
	sb.WriteString(fmt.Sprintf("Actual: %.2f\n", r.ActualPoints))
	sb.WriteString(fmt.Sprintf("Optimal: %.2f\n", r.OptimalPoints))
	sb.WriteString(fmt.Sprintf("Left on bench: %.2f\n", r.PointsLeftOnBench))
	sb.WriteString(fmt.Sprintf("Lineup score: %d%%\n", r.OptimizationScore))

	if len(r.AcceptedImprovements) == 0 {
		sb.WriteString("\nPerfect lineup. Nothing to change.")
		return sb.String(), nil
	}

	sb.WriteString("\n*Should have started:*\n")
	for _, imp := range r.AcceptedImprovements {
		if imp.Active == nil {
			sb.WriteString(fmt.Sprintf("  • %s %s in the empty %s slot (+%.2f)\n",
				imp.Position, imp.Bench.Name, imp.Position, imp.Difference))
			continue
		}
		sb.WriteString(fmt.Sprintf("  • %s %s over %s (+%.2f)\n",
			imp.Position, imp.Bench.Name, imp.Active.Name, imp.Difference))
	}
	return sb.String(), nil
}

func (s *StatsService) EfficiencyReport(ctx context.Context, season, week int) (string, error) {
	results, err := s.WeekOptimization(ctx, season, week, "")
	if err != nil {
		return "", fmt.Errorf("error optimizing lineups: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📈 *Week %d Lineup Efficiency*\n\n", week))
	if len(results) == 0 {
		sb.WriteString("No rosters found for this week.")
		return sb.String(), nil
	}

	for i, r := range results {
		sb.WriteString(fmt.Sprintf("%d. *%s* %d%%\n", i+1, r.TeamName, r.OptimizationScore))
		sb.WriteString(fmt.Sprintf("   %.2f of %.2f (%.2f on bench)\n", r.ActualPoints, r.OptimalPoints, r.PointsLeftOnBench))
	}
	return sb.String(), nil
}

func (s *StatsService) AllProReport(ctx context.Context, season int) (string, error) {
	sel, err := s.AllPro(ctx, season)
	if err != nil {
		return "", fmt.Errorf("error selecting all-pro teams: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🏅 *%s All-Pro Team*\n", seasonLabel(season)))

	tiers := []struct {
		name string
		team models.AllProTeam
	}{
		{"First Team", sel.First},
		{"Second Team", sel.Second},
		{"Third Team", sel.Third},
	}
	for _, tier := range tiers {
		sb.WriteString(fmt.Sprintf("\n*%s:*\n", tier.name))
		for _, pos := range sel.Positions {
			for _, p := range tier.team[pos] {
				if p == nil {
					sb.WriteString(fmt.Sprintf("▫️ %s -\n", pos))
					continue
				}
				sb.WriteString(fmt.Sprintf("▫️ %s %s (%s) %.2f pts, %.2f ppg\n",
					pos, p.Name, p.Team, p.TotalPoints, p.PPG))
			}
		}
	}
	return sb.String(), nil
}

func writeGames(sb *strings.Builder, title string, games []models.Matchup, value func(models.Matchup) float64) {
	sb.WriteString(fmt.Sprintf("\n*%s:*\n", title))
	if len(games) == 0 {
		sb.WriteString("No games yet.\n")
		return
	}
	for _, g := range games {
		sb.WriteString(fmt.Sprintf("%d W%d: %s %.2f - %.2f %s (%.2f)\n",
			g.Season, g.Week, g.Team1, g.Score1, g.Score2, g.Team2, value(g)))
	}
}

func (s *StatsService) NotableReport(ctx context.Context, season int) (string, error) {
	notable, err := s.NotableGames(ctx, season)
	if err != nil {
		return "", fmt.Errorf("error classifying games: %w", err)
	}

	combined := func(m models.Matchup) float64 { return m.CombinedScore }
	margin := func(m models.Matchup) float64 { return m.Margin }

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📊 *%s Notable Games*\n", seasonLabel(season)))
	writeGames(&sb, "Highest Scoring", notable.Highest, combined)
	writeGames(&sb, "Lowest Scoring", notable.Lowest, combined)
	writeGames(&sb, "Biggest Blowouts", notable.Blowouts, margin)
	writeGames(&sb, "Closest Games", notable.Closest, margin)
	return sb.String(), nil
}

func (s *StatsService) HeadToHeadReport(ctx context.Context, team, opponent string) (string, error) {
	sum, err := s.HeadToHead(ctx, team, opponent)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("⚔️ *%s* vs *%s*\n\n", sum.Team, sum.Opponent))
	if sum.Games == 0 {
		sb.WriteString("These teams have never played.")
		return sb.String(), nil
	}

	sb.WriteString(fmt.Sprintf("Record: %d-%d-%d (%.3f)\n", sum.Wins, sum.Losses, sum.Ties, sum.WinPct))
	sb.WriteString(fmt.Sprintf("PPG: %.2f - %.2f (%+.2f)\n", sum.PPGFor, sum.PPGAgainst, sum.PointDiff))
	sb.WriteString(fmt.Sprintf("Streak: %s%d\n", sum.Streak.Result, sum.Streak.Length))
	sb.WriteString(fmt.Sprintf("Longest win streak: %d\n", sum.LongestWinStreak))
	if sum.Playoff.Games > 0 {
		sb.WriteString(fmt.Sprintf("Playoffs: %d-%d-%d\n", sum.Playoff.Wins, sum.Playoff.Losses, sum.Playoff.Ties))
	}
	sb.WriteString(fmt.Sprintf("Same-week scoring: %d-%d-%d\n", sum.Overall.Wins, sum.Overall.Losses, sum.Overall.Ties))
	if g := sum.LastGame; g != nil {
		sb.WriteString(fmt.Sprintf("\nLast game: %d W%d, %.2f - %.2f\n", g.Season, g.Week, g.TeamScore, g.OpponentScore))
	}
	return sb.String(), nil
}

func (s *StatsService) StandingsReport(ctx context.Context, season int) (string, error) {
	standings, err := s.Standings(ctx, season)
	if err != nil {
		return "", fmt.Errorf("error fetching standings: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🏆 *%s Standings*\n\n", seasonLabel(season)))
	if len(standings) == 0 {
		sb.WriteString("No games have been played.")
		return sb.String(), nil
	}
	for _, team := range standings {
		sb.WriteString(fmt.Sprintf("%d. *%s*\n", team.Rank, team.Team))
		sb.WriteString(fmt.Sprintf("   Record: %d-%d-%d\n", team.Wins, team.Losses, team.Ties))
		sb.WriteString(fmt.Sprintf("   Points For: %.2f\n", team.PointsFor))
		sb.WriteString(fmt.Sprintf("   Points Against: %.2f\n\n", team.PointsAgainst))
	}
	return sb.String(), nil
}

func (s *StatsService) WhoHasReport(ctx context.Context, playerName string) (string, error) {
	matches, err := s.FindPlayers(ctx, playerName, 0)
	if err != nil {
		return "", fmt.Errorf("error searching players: %w", err)
	}
	if len(matches) == 0 {
		return fmt.Sprintf("🔍 No player found matching '%s'.", playerName), nil
	}

	m := matches[0]
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*%s* (%s - %s)\n", m.Name, m.Position, m.ProTeam))
	sb.WriteString("━━━━━━━━━━━━━━━━\n")
	sb.WriteString(fmt.Sprintf("*%s*\n", m.Team))
	if models.IsReserveSlot(m.SlotPosition) {
		sb.WriteString(fmt.Sprintf("%s (week %d)\n", m.SlotPosition, m.Week))
	} else {
		sb.WriteString(fmt.Sprintf("Starting (week %d)\n", m.Week))
	}
	sb.WriteString(fmt.Sprintf("\n%.2f pts in %d games (%.2f ppg)", m.TotalPoints, m.WeeksPlayed, m.PPG))
	return sb.String(), nil
}

func aggregateWeek(scores []models.SeasonGameRecord, season, week int) []models.Matchup {
	games := aggregate.SearchGames(scores, aggregate.GameQuery{Season: season, Week: week})
	sort.SliceStable(games, func(i, j int) bool {
		return games[i].CombinedScore > games[j].CombinedScore
	})
	return games
}

type trophy struct {
	category string
	team     string
	value    float64
}

func weekTrophies(games []models.Matchup) []trophy {
	if len(games) == 0 {
		return nil
	}

	high := trophy{category: "Highest Score", value: -math.MaxFloat64}
	low := trophy{category: "Lowest Score", value: math.MaxFloat64}
	biggest := trophy{category: "Biggest Win", value: -math.MaxFloat64}
	closest := trophy{category: "Closest Win", value: math.MaxFloat64}

	for _, g := range games {
		for _, side := range []struct {
			team  string
			score float64
		}{{g.Team1, g.Score1}, {g.Team2, g.Score2}} {
			if side.score > high.value {
				high.value, high.team = side.score, side.team
			}
			if side.score < low.value {
				low.value, low.team = side.score, side.team
			}
		}

		winner := g.Winner()
		if winner == "" {
			continue
		}
		if g.Margin > biggest.value {
			biggest.value, biggest.team = g.Margin, winner
		}
		if g.Margin < closest.value {
			closest.value, closest.team = g.Margin, winner
		}
	}

	trophies := []trophy{high, low}
	if biggest.team != "" {
		trophies = append(trophies, biggest, closest)
	}
	return trophies
}

// WeeklyRecap summarizes the latest scored week: final scores, trophies and
// the best and worst managed lineups.
func (s *StatsService) WeeklyRecap(ctx context.Context) (string, error) {
	season, err := s.LatestSeason(ctx)
	if err != nil {
		return "", err
	}
	week, err := s.CurrentWeek(ctx, season)
	if err != nil {
		return "", err
	}
	if week == 0 {
		return fmt.Sprintf("No games have been scored in %d yet.", season), nil
	}

	scores, err := s.scores(ctx)
	if err != nil {
		return "", err
	}
	games := aggregateWeek(scores, season, week)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📊 *Week %d Final Scores:*\n\n", week))
	for _, g := range games {
		sb.WriteString(fmt.Sprintf("%s %.2f - %.2f %s\n", g.Team1, g.Score1, g.Score2, g.Team2))
	}

	sb.WriteString("\n🏆 *Trophies:*\n")
	for _, t := range weekTrophies(games) {
		switch t.category {
		case "Biggest Win", "Closest Win":
			sb.WriteString(fmt.Sprintf("%s: %s (Margin: %.2f)\n", t.category, t.team, t.value))
		default:
			sb.WriteString(fmt.Sprintf("%s: %s (%.2f)\n", t.category, t.team, t.value))
		}
	}

	results, err := s.WeekOptimization(ctx, season, week, "")
	if err != nil {
		s.logger.Warnw("Skipping lineup section of recap", "season", season, "week", week, "error", err)
		return sb.String(), nil
	}
	if len(results) > 0 {
		best, worst := results[0], results[len(results)-1]
		sb.WriteString("\n🧮 *Lineups:*\n")
		sb.WriteString(fmt.Sprintf("Best managed: %s (%d%%)\n", best.TeamName, best.OptimizationScore))
		sb.WriteString(fmt.Sprintf("Worst managed: %s (%.2f pts on bench, %d%%)\n",
			worst.TeamName, worst.PointsLeftOnBench, worst.OptimizationScore))
	}
	return sb.String(), nil
}
