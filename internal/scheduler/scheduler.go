package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"

	"github.com/omarshaarawi/ffhistory/internal/config"
)

const jobTimeout = 2 * time.Minute

type Reports interface {
	LatestSeason(ctx context.Context) (int, error)
	WeeklyRecap(ctx context.Context) (string, error)
	StandingsReport(ctx context.Context, season int) (string, error)
	Refresh(ctx context.Context) error
}

// CacheFlusher drops shared cached league files before a refresh.
type CacheFlusher interface {
	Flush(ctx context.Context) (int, error)
}

type Scheduler struct {
	s           gocron.Scheduler
	cfg         config.Schedule
	reports     Reports
	flusher     CacheFlusher
	sendMessage func(string) error
	logger      *zap.SugaredLogger
}

// NewScheduler builds the job scheduler. flusher and sendMessage are
// optional; without sendMessage only the refresh job runs.
func NewScheduler(cfg config.Schedule, reports Reports, flusher CacheFlusher, sendMessage func(string) error, logger *zap.Logger) (*Scheduler, error) {
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load location %q: %w", cfg.Timezone, err)
	}

	s, err := gocron.NewScheduler(
		gocron.WithLocation(location),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		s:           s,
		cfg:         cfg,
		reports:     reports,
		flusher:     flusher,
		sendMessage: sendMessage,
		logger:      logger.Sugar(),
	}, nil
}

func (s *Scheduler) Start() error {
	if s.sendMessage != nil {
		// Weekly recap after the final game of the week
		if err := s.addJob("weekly-recap", s.cfg.RecapCron, s.sendRecap); err != nil {
			return err
		}

		if err := s.addJob("standings", s.cfg.StandingsCron, s.sendStandings); err != nil {
			return err
		}
	}

	if err := s.addJob("refresh", s.cfg.RefreshCron, s.refresh); err != nil {
		return err
	}

	s.s.Start()
	s.logger.Infow("Scheduler started", "jobs", len(s.s.Jobs()), "timezone", s.cfg.Timezone)
	return nil
}

func (s *Scheduler) addJob(name, crontab string, task func()) error {
	_, err := s.s.NewJob(
		gocron.CronJob(crontab, false),
		gocron.NewTask(task),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to create %s job: %w", name, err)
	}
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

func (s *Scheduler) sendRecap() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	report, err := s.reports.WeeklyRecap(ctx)
	if err != nil {
		s.logger.Errorw("Failed to build weekly recap", "error", err)
		return
	}
	s.send("weekly-recap", report)
}

func (s *Scheduler) sendStandings() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	season, err := s.reports.LatestSeason(ctx)
	if err != nil {
		s.logger.Errorw("Failed to find latest season", "error", err)
		return
	}
	report, err := s.reports.StandingsReport(ctx, season)
	if err != nil {
		s.logger.Errorw("Failed to get standings", "season", season, "error", err)
		return
	}
	s.send("standings", report)
}

func (s *Scheduler) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if s.flusher != nil {
		n, err := s.flusher.Flush(ctx)
		if err != nil {
			s.logger.Warnw("Failed to flush file cache", "error", err)
		} else {
			s.logger.Debugw("Flushed file cache", "keys", n)
		}
	}

	if err := s.reports.Refresh(ctx); err != nil {
		s.logger.Errorw("Failed to refresh league data", "error", err)
		return
	}
	s.logger.Infow("Refreshed league data")
}

func (s *Scheduler) send(job, text string) {
	if err := s.sendMessage(text); err != nil {
		s.logger.Errorw("Failed to send scheduled message", "job", job, "error", err)
	}
}
