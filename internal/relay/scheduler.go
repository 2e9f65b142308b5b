package relay

import (
	"context"
	"log/slog"
	"time"

	"github.com/mchen04/ESPN-Season-Lineup-Setup/internal/logging"
	"github.com/mchen04/ESPN-Season-Lineup-Setup/internal/timeutil"
)

// TipoffSource reports the earliest game start on a given YYYYMMDD date.
type TipoffSource interface {
	FetchEarliestTipoff(ctx context.Context, date string) (time.Time, bool, error)
}

// SeasonRunFunc runs the lineup automation for the stored credentials.
type SeasonRunFunc func(ctx context.Context, creds Credentials) error

// SchedulerConfig controls the daily check loop.
type SchedulerConfig struct {
	// CheckHour is the local hour at which the scheduler wakes up each day.
	CheckHour int
	// LeadTime is how long before the earliest tipoff the run is started.
	LeadTime time.Duration
}

// Scheduler wakes once per day, waits until shortly before the first game
// and then runs the season automation with whatever credentials the relay
// has stored.
type Scheduler struct {
	store   CredentialStore
	tipoffs TipoffSource
	run     SeasonRunFunc
	cfg     SchedulerConfig
	logger  *slog.Logger

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewScheduler builds a Scheduler. Zero config fields fall back to a 9am
// check and a five minute lead.
func NewScheduler(store CredentialStore, tipoffs TipoffSource, run SeasonRunFunc, cfg SchedulerConfig, logger *slog.Logger) *Scheduler {
	if cfg.CheckHour <= 0 || cfg.CheckHour > 23 {
		cfg.CheckHour = 9
	}
	if cfg.LeadTime <= 0 {
		cfg.LeadTime = 5 * time.Minute
	}
	return &Scheduler{
		store:   store,
		tipoffs: tipoffs,
		run:     run,
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
		sleep:   sleepCtx,
	}
}

// Start blocks until ctx is cancelled, performing one check per day.
func (s *Scheduler) Start(ctx context.Context) error {
	for {
		next := s.nextCheck(s.now())
		logging.Info(s.logger, "scheduler sleeping until next check", "next_check", next.Format(time.RFC3339))
		if err := s.sleep(ctx, next.Sub(s.now())); err != nil {
			return err
		}
		if err := s.runOnce(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logging.Error(s.logger, "daily check failed", err)
		}
	}
}

// runOnce performs a single daily check: load credentials, find today's
// earliest tipoff and run the automation just before it.
func (s *Scheduler) runOnce(ctx context.Context) error {
	creds, ok, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	if !ok {
		logging.Info(s.logger, "no stored credentials, skipping daily run")
		return nil
	}

	today := timeutil.CompactDate(s.now())
	tipoff, found, err := s.tipoffs.FetchEarliestTipoff(ctx, today)
	if err != nil {
		return err
	}
	if !found {
		logging.Info(s.logger, "no games today, skipping daily run")
		return nil
	}

	startAt := tipoff.Add(-s.cfg.LeadTime)
	if wait := startAt.Sub(s.now()); wait > 0 {
		logging.Info(s.logger, "waiting for tipoff window",
			"tipoff", tipoff.Format(time.RFC3339), "start_at", startAt.Format(time.RFC3339))
		if err := s.sleep(ctx, wait); err != nil {
			return err
		}
	}

	logging.Info(s.logger, "starting scheduled season run",
		logging.FieldLeagueID, creds.LeagueID, logging.FieldTeamID, creds.TeamID)
	return s.run(ctx, creds)
}

// nextCheck returns the next occurrence of the configured check hour
// strictly after now.
func (s *Scheduler) nextCheck(now time.Time) time.Time {
	check := time.Date(now.Year(), now.Month(), now.Day(), s.cfg.CheckHour, 0, 0, 0, now.Location())
	if !check.After(now) {
		check = check.AddDate(0, 0, 1)
	}
	return check
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
