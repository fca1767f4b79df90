package scheduler

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/omarshaarawi/ffhistory/internal/config"
)

type mockReports struct {
	recap        string
	recapErr     error
	refreshErr   error
	refreshCalls int
	standings    []int
}

func (m *mockReports) LatestSeason(ctx context.Context) (int, error) {
	return 2024, nil
}

func (m *mockReports) WeeklyRecap(ctx context.Context) (string, error) {
	return m.recap, m.recapErr
}

func (m *mockReports) StandingsReport(ctx context.Context, season int) (string, error) {
	m.standings = append(m.standings, season)
	return "standings", nil
}

func (m *mockReports) Refresh(ctx context.Context) error {
	m.refreshCalls++
	return m.refreshErr
}

type mockFlusher struct {
	calls int
	err   error
}

func (m *mockFlusher) Flush(ctx context.Context) (int, error) {
	m.calls++
	return 3, m.err
}

func testSchedule() config.Schedule {
	return config.Schedule{
		Timezone:      "America/Chicago",
		RecapCron:     "0 9 * * 2",
		StandingsCron: "0 10 * * 3",
		RefreshCron:   "0 */6 * * *",
	}
}

func TestSchedulerJobs(t *testing.T) {
	tests := []struct {
		name     string
		send     func(string) error
		expected int
	}{
		{name: "with telegram", send: func(string) error { return nil }, expected: 3},
		{name: "refresh only", send: nil, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewScheduler(testSchedule(), &mockReports{}, nil, tt.send, zap.NewNop())
			if err != nil {
				t.Fatalf("NewScheduler() error = %v", err)
			}
			if err := s.Start(); err != nil {
				t.Fatalf("Start() error = %v", err)
			}
			defer s.Stop()

			if got := len(s.s.Jobs()); got != tt.expected {
				t.Errorf("expected %d jobs, got %d", tt.expected, got)
			}
		})
	}
}

func TestNewSchedulerBadTimezone(t *testing.T) {
	cfg := testSchedule()
	cfg.Timezone = "Mars/Olympus"
	if _, err := NewScheduler(cfg, &mockReports{}, nil, nil, zap.NewNop()); err == nil {
		t.Error("expected error for unknown timezone")
	}
}

func TestStartBadCron(t *testing.T) {
	cfg := testSchedule()
	cfg.RefreshCron = "every six hours"
	s, err := NewScheduler(cfg, &mockReports{}, nil, nil, zap.NewNop())
	if err != nil {
		t.Fatalf("NewScheduler() error = %v", err)
	}
	if err := s.Start(); err == nil {
		t.Error("expected error for invalid cron expression")
	}
}

func TestSendRecap(t *testing.T) {
	var sent []string
	send := func(text string) error {
		sent = append(sent, text)
		return nil
	}

	reports := &mockReports{recap: "recap"}
	s, err := NewScheduler(testSchedule(), reports, nil, send, zap.NewNop())
	if err != nil {
		t.Fatalf("NewScheduler() error = %v", err)
	}

	s.sendRecap()
	reports.recapErr = errors.New("scores unavailable")
	s.sendRecap()
	s.sendStandings()

	if len(sent) != 2 || sent[0] != "recap" || sent[1] != "standings" {
		t.Errorf("unexpected messages: %v", sent)
	}
	if len(reports.standings) != 1 || reports.standings[0] != 2024 {
		t.Errorf("expected standings for 2024, got %v", reports.standings)
	}
}

func TestRefresh(t *testing.T) {
	reports := &mockReports{}
	flusher := &mockFlusher{err: errors.New("redis down")}
	s, err := NewScheduler(testSchedule(), reports, flusher, nil, zap.NewNop())
	if err != nil {
		t.Fatalf("NewScheduler() error = %v", err)
	}

	s.refresh()

	if flusher.calls != 1 {
		t.Errorf("expected 1 flush, got %d", flusher.calls)
	}
	if reports.refreshCalls != 1 {
		t.Errorf("expected refresh despite flush failure, got %d calls", reports.refreshCalls)
	}
}
