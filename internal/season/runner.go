// Package season drives the full remaining-season lineup setup: one IR
// decision up front, then a sequential per-day optimize-and-submit loop.
package season

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mchen04/ESPN-Season-Lineup-Setup/internal/domain"
	"github.com/mchen04/ESPN-Season-Lineup-Setup/internal/lineup"
	"github.com/mchen04/ESPN-Season-Lineup-Setup/internal/logging"
	"github.com/mchen04/ESPN-Season-Lineup-Setup/internal/metrics"
	"github.com/mchen04/ESPN-Season-Lineup-Setup/internal/provider"
	"github.com/mchen04/ESPN-Season-Lineup-Setup/internal/sports"
	"github.com/mchen04/ESPN-Season-Lineup-Setup/internal/timeutil"
)

const (
	// defaultCalendarWindow bounds the concurrent per-day schedule prefetch.
	// A fixed window avoids a sequential dependency on the league's final
	// scoring period.
	defaultCalendarWindow = 60
	// defaultSubmitDelay paces successive writes against the provider.
	defaultSubmitDelay = 300 * time.Millisecond
)

// ProgressFunc receives (completed, total) after every processed day.
type ProgressFunc func(completed, total int)

// CalendarCache optionally short-circuits per-day schedule fetches.
type CalendarCache interface {
	Load(date string) (map[int]struct{}, bool)
	Store(date string, teams map[int]struct{}) error
}

// Options identifies the league, team and credentials for one run.
type Options struct {
	LeagueID int
	TeamID   int
	Season   int
	// CurrentPeriodID overrides the league's "today" pointer when positive;
	// otherwise the fetched league settings decide.
	CurrentPeriodID int
	Auth            provider.Auth
	OnProgress      ProgressFunc
}

// Result aggregates one run's outcomes.
type Result struct {
	Submitted int
	Skipped   int
	Errors    []string
}

// Runner executes season setup runs against a FantasyProvider.
type Runner struct {
	provider       provider.FantasyProvider
	logger         *slog.Logger
	metrics        *metrics.Recorder
	slots          sports.SlotTable
	cache          CalendarCache
	calendarWindow int
	submitDelay    time.Duration
	now            func() time.Time
	sleep          func(ctx context.Context, d time.Duration) error
}

// RunnerOption customizes a Runner.
type RunnerOption func(*Runner)

// WithCalendarWindow sets how many days of schedules are prefetched.
func WithCalendarWindow(days int) RunnerOption {
	return func(r *Runner) {
		if days > 0 {
			r.calendarWindow = days
		}
	}
}

// WithSubmitDelay sets the minimum pause between processed days.
func WithSubmitDelay(d time.Duration) RunnerOption {
	return func(r *Runner) {
		if d >= 0 {
			r.submitDelay = d
		}
	}
}

// WithCalendarCache plugs in a local cache for per-day schedules.
func WithCalendarCache(cache CalendarCache) RunnerOption {
	return func(r *Runner) { r.cache = cache }
}

// WithClock overrides the runner's clock.
func WithClock(now func() time.Time) RunnerOption {
	return func(r *Runner) {
		if now != nil {
			r.now = now
		}
	}
}

// New constructs a Runner with sane defaults.
func New(p provider.FantasyProvider, logger *slog.Logger, recorder *metrics.Recorder, slots sports.SlotTable, opts ...RunnerOption) *Runner {
	r := &Runner{
		provider:       p,
		logger:         logger,
		metrics:        recorder,
		slots:          slots,
		calendarWindow: defaultCalendarWindow,
		submitDelay:    defaultSubmitDelay,
		now:            time.Now,
		sleep:          sleepCtx,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the full remaining-season setup. Fatal preconditions (league
// unreachable, team absent) surface as an error before any submission work;
// once the per-day loop starts, all faults are captured into Result.Errors
// and the loop continues. Cancellation stops between days and returns the
// partial result alongside the context error.
func (r *Runner) Run(ctx context.Context, opts Options) (Result, error) {
	today := timeutil.Midnight(r.now())

	settings, players, calendar, err := r.gather(ctx, opts, today)
	if err != nil {
		return Result{}, err
	}

	myPlayers := filterTeam(players, opts.TeamID)
	if len(myPlayers) == 0 {
		return Result{}, fmt.Errorf("season: team %d has no roster in league %d", opts.TeamID, opts.LeagueID)
	}

	currentPeriod := settings.CurrentScoringPeriodID
	if opts.CurrentPeriodID > 0 {
		currentPeriod = opts.CurrentPeriodID
	}

	// IR placement is decided once for the whole horizon.
	irIDs := lineup.IRPlayerIDs(myPlayers, settings.IRSlotCount, r.slots)
	var active, onIR []domain.Player
	for _, p := range myPlayers {
		if _, ok := irIDs[p.PlayerID]; ok {
			onIR = append(onIR, p)
		} else {
			active = append(active, p)
		}
	}

	activeSlots := r.slots.ExpandActiveSlots(settings.RosterSlots)
	gameDays := lineup.BuildGameDays(calendar, currentPeriod, settings.FinalScoringPeriodID, today)

	logging.Info(r.logger, "season setup starting",
		logging.FieldLeagueID, opts.LeagueID,
		logging.FieldTeamID, opts.TeamID,
		logging.FieldCount, len(gameDays),
		"ir_players", len(onIR))

	return r.processDays(ctx, opts, gameDays, active, onIR, activeSlots, currentPeriod)
}

// gather runs the initial fan-out: one league fetch plus one calendar fetch
// per window day, all concurrent. A failed calendar day degrades to "no
// games known"; a failed league fetch is fatal.
func (r *Runner) gather(ctx context.Context, opts Options, today time.Time) (domain.LeagueSettings, []domain.Player, map[string]map[int]struct{}, error) {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		calendar = make(map[string]map[int]struct{}, r.calendarWindow)

		settings  domain.LeagueSettings
		players   []domain.Player
		leagueErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		settings, players, leagueErr = r.provider.FetchLeague(ctx, opts.LeagueID, opts.Season, opts.Auth)
	}()

	for i := 0; i < r.calendarWindow; i++ {
		date := timeutil.CompactDate(timeutil.AddDays(today, i))

		if r.cache != nil {
			if teams, ok := r.cache.Load(date); ok {
				mu.Lock()
				calendar[date] = teams
				mu.Unlock()
				continue
			}
		}

		wg.Add(1)
		go func(date string) {
			defer wg.Done()
			teams, err := r.provider.FetchCalendarDay(ctx, date)
			if err != nil {
				logging.Warn(r.logger, "calendar day fetch failed", logging.FieldDate, date, "error", err)
				return
			}
			mu.Lock()
			calendar[date] = teams
			mu.Unlock()
			if r.cache != nil {
				if err := r.cache.Store(date, teams); err != nil {
					logging.Warn(r.logger, "calendar cache write failed", logging.FieldDate, date, "error", err)
				}
			}
		}(date)
	}

	wg.Wait()

	if leagueErr != nil {
		return domain.LeagueSettings{}, nil, nil, fmt.Errorf("season: fetch league: %w", leagueErr)
	}
	return settings, players, calendar, nil
}

func (r *Runner) processDays(ctx context.Context, opts Options, gameDays []domain.GameDay, active, onIR []domain.Player, activeSlots []int, currentPeriod int) (Result, error) {
	var result Result
	total := len(gameDays)
	completed := 0

	report := func() {
		completed++
		if opts.OnProgress != nil {
			opts.OnProgress(completed, total)
		}
	}

	for i, day := range gameDays {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		r.processDay(ctx, opts, day, active, onIR, activeSlots, currentPeriod, &result)
		report()

		if i < len(gameDays)-1 && r.submitDelay > 0 {
			if err := r.sleep(ctx, r.submitDelay); err != nil {
				return result, err
			}
		}
	}

	return result, nil
}

func (r *Runner) processDay(ctx context.Context, opts Options, day domain.GameDay, active, onIR []domain.Player, activeSlots []int, currentPeriod int, result *Result) {
	fresh, err := r.provider.FetchRosterSlots(ctx, opts.LeagueID, opts.Season, day.ScoringPeriodID, opts.TeamID, opts.Auth)
	if err != nil {
		r.recordDayError(result, day, err)
		return
	}

	items := lineup.OptimizeDay(lineup.DayInput{
		ActivePlayers:   active,
		IRPlayers:       onIR,
		PlayingTeamIDs:  day.PlayingTeamIDs,
		ScoringPeriodID: day.ScoringPeriodID,
		CurrentPeriodID: currentPeriod,
		CurrentSlots:    fresh,
		ActiveSlots:     activeSlots,
		Slots:           r.slots,
	})

	if len(items) == 0 {
		result.Skipped++
		r.metrics.RecordSubmission(metrics.OutcomeSkipped)
		logging.Info(r.logger, "lineup already optimal",
			logging.FieldDate, day.Date, logging.FieldPeriod, day.ScoringPeriodID)
		return
	}

	err = r.provider.SubmitLineup(ctx, opts.LeagueID, opts.Season, opts.Auth, provider.Submission{
		TeamID:          opts.TeamID,
		ScoringPeriodID: day.ScoringPeriodID,
		Items:           items,
		Future:          day.ScoringPeriodID > currentPeriod,
	})
	switch {
	case err == nil:
		result.Submitted++
		r.metrics.RecordSubmission(metrics.OutcomeSubmitted)
	case provider.IsLocked(err):
		// Already locked for editing; nothing to do for this day.
		r.metrics.RecordSubmission(metrics.OutcomeLocked)
		logging.Warn(r.logger, "lineup locked, continuing",
			logging.FieldDate, day.Date, logging.FieldPeriod, day.ScoringPeriodID, "error", err)
	default:
		r.recordDayError(result, day, err)
	}
}

func (r *Runner) recordDayError(result *Result, day domain.GameDay, err error) {
	result.Errors = append(result.Errors, fmt.Sprintf("[%s] period %d: %v", day.Date, day.ScoringPeriodID, err))
	r.metrics.RecordSubmission(metrics.OutcomeError)
	logging.Error(r.logger, "day processing failed", err,
		logging.FieldDate, day.Date, logging.FieldPeriod, day.ScoringPeriodID)
}

func filterTeam(players []domain.Player, teamID int) []domain.Player {
	var mine []domain.Player
	for _, p := range players {
		if p.TeamID == teamID {
			mine = append(mine, p)
		}
	}
	return mine
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
