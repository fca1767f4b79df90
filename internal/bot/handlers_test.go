package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type mockReports struct {
	calls []string
}

func (m *mockReports) LatestSeason(ctx context.Context) (int, error) {
	return 2023, nil
}

func (m *mockReports) CurrentWeek(ctx context.Context, season int) (int, error) {
	return 9, nil
}

func (m *mockReports) OptimizationReport(ctx context.Context, season, week int, team string) (string, error) {
	return m.record("optimize %d %d %s", season, week, team)
}

func (m *mockReports) EfficiencyReport(ctx context.Context, season, week int) (string, error) {
	return m.record("efficiency %d %d", season, week)
}

func (m *mockReports) AllProReport(ctx context.Context, season int) (string, error) {
	return m.record("allpro %d", season)
}

func (m *mockReports) NotableReport(ctx context.Context, season int) (string, error) {
	return m.record("notable %d", season)
}

func (m *mockReports) HeadToHeadReport(ctx context.Context, team, opponent string) (string, error) {
	if opponent == "Nobody" {
		return "", errors.New("team not found: Nobody")
	}
	return m.record("h2h %s|%s", team, opponent)
}

func (m *mockReports) StandingsReport(ctx context.Context, season int) (string, error) {
	return m.record("standings %d", season)
}

func (m *mockReports) WhoHasReport(ctx context.Context, playerName string) (string, error) {
	return m.record("whohas %s", playerName)
}

func (m *mockReports) record(format string, args ...interface{}) (string, error) {
	call := fmt.Sprintf(format, args...)
	m.calls = append(m.calls, call)
	return call, nil
}

func commandUpdate(text string) tgbotapi.Update {
	length := strings.IndexByte(text, ' ')
	if length < 0 {
		length = len(text)
	}
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			Text: text,
			Chat: &tgbotapi.Chat{ID: 42},
			Entities: []tgbotapi.MessageEntity{
				{Type: "bot_command", Offset: 0, Length: length},
			},
		},
	}
}

func TestHandleCommand(t *testing.T) {
	tests := []struct {
		text     string
		expected string
	}{
		{text: "/optimize Team Alpha", expected: "optimize 2023 9 Team Alpha"},
		{text: "/optimize Team Alpha 4", expected: "optimize 2023 4 Team Alpha"},
		{text: "/efficiency", expected: "efficiency 2023 9"},
		{text: "/efficiency 3", expected: "efficiency 2023 3"},
		{text: "/allpro", expected: "allpro 2023"},
		{text: "/allpro all", expected: "allpro 0"},
		{text: "/notable 2021", expected: "notable 2021"},
		{text: "/standings ALL", expected: "standings 0"},
		{text: "/h2h Alpha Squad vs Beta Ballers", expected: "h2h Alpha Squad|Beta Ballers"},
		{text: "/H2H alpha VS. beta", expected: "h2h alpha|beta"},
		{text: "/whohas justin jefferson", expected: "whohas justin jefferson"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			reports := &mockReports{}
			h := NewHandler(reports, zap.NewNop())

			msg := h.HandleCommand(context.Background(), commandUpdate(tt.text))

			if msg.ChatID != 42 {
				t.Errorf("expected chat 42, got %d", msg.ChatID)
			}
			if msg.ParseMode != "Markdown" {
				t.Errorf("expected Markdown parse mode, got %q", msg.ParseMode)
			}
			if msg.Text != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, msg.Text)
			}
		})
	}
}

func TestHandleCommandUsage(t *testing.T) {
	tests := []struct {
		text     string
		contains string
	}{
		{text: "/optimize", contains: "Usage: /optimize"},
		{text: "/efficiency soon", contains: "Usage: /efficiency"},
		{text: "/allpro last", contains: "Season must be"},
		{text: "/h2h Alpha", contains: "Usage: /h2h"},
		{text: "/h2h vs Beta", contains: "Usage: /h2h"},
		{text: "/h2h Alpha vs Nobody", contains: "Error fetching head to head"},
		{text: "/whohas", contains: "Usage: /whohas"},
		{text: "/help", contains: "/h2h <team> vs <opponent>"},
		{text: "/scores", contains: "Unknown command"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			reports := &mockReports{}
			h := NewHandler(reports, zap.NewNop())

			msg := h.HandleCommand(context.Background(), commandUpdate(tt.text))
			if !strings.Contains(msg.Text, tt.contains) {
				t.Errorf("expected %q in %q", tt.contains, msg.Text)
			}
			if strings.Contains(tt.contains, "Usage") && len(reports.calls) != 0 {
				t.Errorf("expected no report calls, got %v", reports.calls)
			}
		})
	}
}

func TestParseTeamWeek(t *testing.T) {
	tests := []struct {
		args string
		team string
		week int
	}{
		{args: "", team: "", week: 0},
		{args: "Alpha", team: "Alpha", week: 0},
		{args: "Team 2", team: "Team", week: 2},
		{args: "Team 0", team: "Team 0", week: 0},
		{args: "  The  Big   Team  ", team: "The Big Team", week: 0},
		{args: "7", team: "7", week: 0},
	}

	for _, tt := range tests {
		team, week := parseTeamWeek(tt.args)
		if team != tt.team || week != tt.week {
			t.Errorf("parseTeamWeek(%q) = %q, %d; want %q, %d", tt.args, team, week, tt.team, tt.week)
		}
	}
}
