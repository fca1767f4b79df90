package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const helpText = "Available commands:\n" +
	"/optimize <team> [week] - Optimal lineup for a team\n" +
	"/efficiency [week] - Lineup efficiency for every team\n" +
	"/allpro [season|all] - All-Pro teams\n" +
	"/notable [season|all] - Highest, lowest, blowout and closest games\n" +
	"/h2h <team> vs <opponent> - Head to head record\n" +
	"/standings [season|all] - League standings\n" +
	"/whohas <player> - Check which team has a player"

// Reports renders the Markdown the bot replies with.
type Reports interface {
	LatestSeason(ctx context.Context) (int, error)
	CurrentWeek(ctx context.Context, season int) (int, error)
	OptimizationReport(ctx context.Context, season, week int, team string) (string, error)
	EfficiencyReport(ctx context.Context, season, week int) (string, error)
	AllProReport(ctx context.Context, season int) (string, error)
	NotableReport(ctx context.Context, season int) (string, error)
	HeadToHeadReport(ctx context.Context, team, opponent string) (string, error)
	StandingsReport(ctx context.Context, season int) (string, error)
	WhoHasReport(ctx context.Context, playerName string) (string, error)
}

type Handler struct {
	reports Reports
	logger  *zap.SugaredLogger
}

func NewHandler(reports Reports, logger *zap.Logger) *Handler {
	return &Handler{reports: reports, logger: logger.Sugar()}
}

func (h *Handler) HandleCommand(ctx context.Context, update tgbotapi.Update) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")
	command := strings.ToLower(update.Message.Command())
	args := strings.TrimSpace(update.Message.CommandArguments())
	msg.ParseMode = "Markdown"

	switch command {
	case "start":
		msg.Text = "Welcome to the league historian! Use /help to see available commands."
	case "help":
		msg.Text = helpText
	case "optimize":
		h.handleOptimize(ctx, &msg, args)
	case "efficiency":
		h.handleEfficiency(ctx, &msg, args)
	case "allpro":
		h.handleSeasonReport(ctx, &msg, args, "All-Pro teams", h.reports.AllProReport)
	case "notable":
		h.handleSeasonReport(ctx, &msg, args, "notable games", h.reports.NotableReport)
	case "standings":
		h.handleSeasonReport(ctx, &msg, args, "standings", h.reports.StandingsReport)
	case "h2h":
		h.handleHeadToHead(ctx, &msg, args)
	case "whohas":
		h.handleWhoHas(ctx, &msg, args)
	default:
		msg.Text = "Unknown command. Use /help to see available commands."
	}

	if msg.Text == "" {
		msg.Text = "Nothing to report."
	}
	return msg
}

// latestWeek resolves an omitted week to the last scored week of the latest
// season.
func (h *Handler) latestWeek(ctx context.Context, week int) (int, int, error) {
	season, err := h.reports.LatestSeason(ctx)
	if err != nil {
		return 0, 0, err
	}
	if week > 0 {
		return season, week, nil
	}
	week, err = h.reports.CurrentWeek(ctx, season)
	if err != nil {
		return 0, 0, err
	}
	if week == 0 {
		return 0, 0, fmt.Errorf("no games have been scored in %d yet", season)
	}
	return season, week, nil
}

func (h *Handler) handleOptimize(ctx context.Context, msg *tgbotapi.MessageConfig, args string) {
	team, week := parseTeamWeek(args)
	if team == "" {
		msg.Text = "Please provide a team name. Usage: /optimize <team> [week]"
		return
	}
	season, week, err := h.latestWeek(ctx, week)
	if err != nil {
		h.reply(msg, "optimizing lineup", err)
		return
	}
	report, err := h.reports.OptimizationReport(ctx, season, week, team)
	h.reply(msg, "optimizing lineup", err, report)
}

func (h *Handler) handleEfficiency(ctx context.Context, msg *tgbotapi.MessageConfig, args string) {
	week := 0
	if args != "" {
		n, err := strconv.Atoi(args)
		if err != nil || n <= 0 {
			msg.Text = "Week must be a number. Usage: /efficiency [week]"
			return
		}
		week = n
	}
	season, week, err := h.latestWeek(ctx, week)
	if err != nil {
		h.reply(msg, "fetching efficiency", err)
		return
	}
	report, err := h.reports.EfficiencyReport(ctx, season, week)
	h.reply(msg, "fetching efficiency", err, report)
}

func (h *Handler) handleSeasonReport(ctx context.Context, msg *tgbotapi.MessageConfig, args, what string, render func(context.Context, int) (string, error)) {
	season, latest, err := parseSeasonArg(args)
	if err != nil {
		msg.Text = fmt.Sprintf("Season must be a year or 'all': %v", err)
		return
	}
	if latest {
		if season, err = h.reports.LatestSeason(ctx); err != nil {
			h.reply(msg, "fetching "+what, err)
			return
		}
	}
	report, err := render(ctx, season)
	h.reply(msg, "fetching "+what, err, report)
}

func (h *Handler) handleHeadToHead(ctx context.Context, msg *tgbotapi.MessageConfig, args string) {
	team, opponent, ok := splitVersus(args)
	if !ok {
		msg.Text = "Please provide two teams. Usage: /h2h <team> vs <opponent>"
		return
	}
	report, err := h.reports.HeadToHeadReport(ctx, team, opponent)
	h.reply(msg, "fetching head to head", err, report)
}

func (h *Handler) handleWhoHas(ctx context.Context, msg *tgbotapi.MessageConfig, args string) {
	if args == "" {
		msg.Text = "Please provide a player name. Usage: /whohas <player name>"
		return
	}
	result, err := h.reports.WhoHasReport(ctx, args)
	h.reply(msg, "checking who has player", err, result)
}

func (h *Handler) reply(msg *tgbotapi.MessageConfig, action string, err error, report ...string) {
	if err != nil {
		h.logger.Warnw("Command failed", "action", action, "error", err)
		msg.Text = fmt.Sprintf("Error %s: %v", action, err)
		return
	}
	if len(report) > 0 {
		msg.Text = report[0]
	}
}

// parseTeamWeek splits "<team> [week]"; a trailing number is the week.
func parseTeamWeek(args string) (string, int) {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return "", 0
	}
	if len(fields) > 1 {
		if week, err := strconv.Atoi(fields[len(fields)-1]); err == nil && week > 0 {
			return strings.Join(fields[:len(fields)-1], " "), week
		}
	}
	return strings.Join(fields, " "), 0
}

// parseSeasonArg reads "[season|all]". An empty argument asks for the latest
// season; "all" is season 0.
func parseSeasonArg(args string) (season int, latest bool, err error) {
	switch {
	case args == "":
		return 0, true, nil
	case strings.EqualFold(args, "all"):
		return 0, false, nil
	}
	season, err = strconv.Atoi(args)
	if err != nil || season <= 0 {
		return 0, false, fmt.Errorf("invalid season %q", args)
	}
	return season, false, nil
}

// splitVersus splits "<team> vs <opponent>", accepting "vs" or "vs." in any
// case.
func splitVersus(args string) (string, string, bool) {
	fields := strings.Fields(args)
	for i, f := range fields {
		lower := strings.ToLower(f)
		if lower != "vs" && lower != "vs." {
			continue
		}
		team := strings.Join(fields[:i], " ")
		opponent := strings.Join(fields[i+1:], " ")
		if team == "" || opponent == "" {
			return "", "", false
		}
		return team, opponent, true
	}
	return "", "", false
}
