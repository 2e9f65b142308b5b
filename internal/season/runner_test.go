package season

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mchen04/ESPN-Season-Lineup-Setup/internal/domain"
	"github.com/mchen04/ESPN-Season-Lineup-Setup/internal/metrics"
	"github.com/mchen04/ESPN-Season-Lineup-Setup/internal/provider"
	"github.com/mchen04/ESPN-Season-Lineup-Setup/internal/sports"
)

type stubProvider struct {
	mu sync.Mutex

	settings  domain.LeagueSettings
	players   []domain.Player
	leagueErr error

	calendar     map[string]map[int]struct{}
	calendarErr  error
	calendarHits int

	rosterSlots map[int]map[int]int // period -> player -> slot
	rosterErrs  map[int]error

	submitErrs  map[int]error // period -> error
	submissions []provider.Submission
}

func (s *stubProvider) FetchLeague(ctx context.Context, leagueID, season int, auth provider.Auth) (domain.LeagueSettings, []domain.Player, error) {
	return s.settings, s.players, s.leagueErr
}

func (s *stubProvider) FetchRosterSlots(ctx context.Context, leagueID, season, period, teamID int, auth provider.Auth) (map[int]int, error) {
	if err := s.rosterErrs[period]; err != nil {
		return nil, err
	}
	if slots, ok := s.rosterSlots[period]; ok {
		return slots, nil
	}
	return map[int]int{}, nil
}

func (s *stubProvider) FetchCalendarDay(ctx context.Context, date string) (map[int]struct{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calendarHits++
	if s.calendarErr != nil {
		return nil, s.calendarErr
	}
	if teams, ok := s.calendar[date]; ok {
		return teams, nil
	}
	return map[int]struct{}{}, nil
}

func (s *stubProvider) SubmitLineup(ctx context.Context, leagueID, season int, auth provider.Auth, sub provider.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.submitErrs[sub.ScoringPeriodID]; err != nil {
		return err
	}
	s.submissions = append(s.submissions, sub)
	return nil
}

// fiveDayStub builds a league with five remaining periods (10..14) and one
// benched player whose optimal spot is the single PG slot, so every day
// produces a submission unless a test arranges otherwise.
func fiveDayStub() *stubProvider {
	return &stubProvider{
		settings: domain.LeagueSettings{
			CurrentScoringPeriodID: 10,
			FinalScoringPeriodID:   14,
			IRSlotCount:            1,
			RosterSlots:            map[int]int{0: 1},
		},
		players: []domain.Player{
			{PlayerID: 1, Name: "Starter", TeamID: 5, ProTeamID: 7, EligibleSlots: []int{0, 12}, LineupSlotID: 12, ProjectedPoints: 25},
		},
		rosterSlots: map[int]map[int]int{},
		rosterErrs:  map[int]error{},
		submitErrs:  map[int]error{},
	}
}

func newTestRunner(p provider.FantasyProvider, opts ...RunnerOption) *Runner {
	base := []RunnerOption{
		WithSubmitDelay(0),
		WithCalendarWindow(5),
		WithClock(func() time.Time {
			return time.Date(2025, time.January, 10, 9, 0, 0, 0, time.UTC)
		}),
	}
	return New(p, nil, metrics.NewRecorder(), sports.Basketball(), append(base, opts...)...)
}

func runOpts(onProgress ProgressFunc) Options {
	return Options{
		LeagueID:   42,
		TeamID:     5,
		Season:     2025,
		Auth:       provider.Auth{EspnS2: "s2", SWID: "{swid}"},
		OnProgress: onProgress,
	}
}

func TestRunSubmitsEveryDayWithChanges(t *testing.T) {
	stub := fiveDayStub()
	runner := newTestRunner(stub)

	result, err := runner.Run(context.Background(), runOpts(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Submitted != 5 || result.Skipped != 0 || len(result.Errors) != 0 {
		t.Fatalf("unexpected result %+v", result)
	}
	if len(stub.submissions) != 5 {
		t.Fatalf("expected 5 submissions, got %d", len(stub.submissions))
	}

	// Today's period uses the same-day transaction type, later ones the
	// future type.
	if stub.submissions[0].Future {
		t.Fatalf("period 10 should not be a future submission")
	}
	for _, sub := range stub.submissions[1:] {
		if !sub.Future {
			t.Fatalf("period %d should be a future submission", sub.ScoringPeriodID)
		}
	}
}

func TestRunContinuesPastDayError(t *testing.T) {
	stub := fiveDayStub()
	stub.submitErrs[12] = &provider.APIError{Endpoint: "submit", StatusCode: 500, Body: "boom"}
	runner := newTestRunner(stub)

	result, err := runner.Run(context.Background(), runOpts(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Submitted != 4 {
		t.Fatalf("expected 4 submitted, got %d", result.Submitted)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected exactly 1 error, got %v", result.Errors)
	}
	if want := "period 12"; !strings.Contains(result.Errors[0], want) {
		t.Fatalf("error should reference the failed day, got %q", result.Errors[0])
	}
}

func TestRunLockedDayIsSoftSkip(t *testing.T) {
	stub := fiveDayStub()
	stub.submitErrs[10] = &provider.LockedError{ScoringPeriodID: 10}
	runner := newTestRunner(stub)

	result, err := runner.Run(context.Background(), runOpts(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Submitted != 4 || len(result.Errors) != 0 {
		t.Fatalf("locked day must not count as error, got %+v", result)
	}
}

func TestRunSkipsOptimalDays(t *testing.T) {
	stub := fiveDayStub()
	for period := 10; period <= 14; period++ {
		stub.rosterSlots[period] = map[int]int{1: 0} // already starting
	}
	runner := newTestRunner(stub)

	result, err := runner.Run(context.Background(), runOpts(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Submitted != 0 || result.Skipped != 5 {
		t.Fatalf("expected all days skipped, got %+v", result)
	}
	if len(stub.submissions) != 0 {
		t.Fatalf("no network writes expected, got %d", len(stub.submissions))
	}
}

func TestRunRosterFetchFailureIsDayError(t *testing.T) {
	stub := fiveDayStub()
	stub.rosterErrs[11] = errors.New("transport down")
	runner := newTestRunner(stub)

	result, err := runner.Run(context.Background(), runOpts(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Submitted != 4 || len(result.Errors) != 1 {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestRunReportsProgressForEveryDay(t *testing.T) {
	stub := fiveDayStub()
	stub.submitErrs[12] = &provider.APIError{Endpoint: "submit", StatusCode: 500}
	runner := newTestRunner(stub)

	var calls [][2]int
	_, err := runner.Run(context.Background(), runOpts(func(completed, total int) {
		calls = append(calls, [2]int{completed, total})
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(calls) != 5 {
		t.Fatalf("expected 5 progress reports, got %d", len(calls))
	}
	for i, call := range calls {
		if call[0] != i+1 || call[1] != 5 {
			t.Fatalf("progress call %d = %v, want (%d, 5)", i, call, i+1)
		}
	}
}

func TestRunFailsFastWhenTeamMissing(t *testing.T) {
	stub := fiveDayStub()
	runner := newTestRunner(stub)

	opts := runOpts(nil)
	opts.TeamID = 99
	if _, err := runner.Run(context.Background(), opts); err == nil {
		t.Fatal("expected fatal precondition error")
	}
	if len(stub.submissions) != 0 {
		t.Fatalf("no submissions expected, got %d", len(stub.submissions))
	}
}

func TestRunFailsFastOnLeagueFetchError(t *testing.T) {
	stub := fiveDayStub()
	stub.leagueErr = errors.New("unauthorized")
	runner := newTestRunner(stub)

	if _, err := runner.Run(context.Background(), runOpts(nil)); err == nil {
		t.Fatal("expected error from failed league fetch")
	}
}

func TestRunCalendarFailureDegradesToNoGames(t *testing.T) {
	stub := fiveDayStub()
	stub.calendarErr = errors.New("scoreboard down")
	runner := newTestRunner(stub)

	// The benched player still gets promoted into the open slot; a missing
	// calendar only affects tiering, never aborts the run.
	result, err := runner.Run(context.Background(), runOpts(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Submitted != 5 {
		t.Fatalf("expected run to proceed without calendars, got %+v", result)
	}
}

func TestRunFutureIRMovesSuppressed(t *testing.T) {
	stub := fiveDayStub()
	stub.players = append(stub.players, domain.Player{
		PlayerID: 2, Name: "Hurt", TeamID: 5, ProTeamID: 8,
		InjuryStatus: domain.StatusOut, EligibleSlots: []int{11, 12, 13}, LineupSlotID: 12,
	})
	runner := newTestRunner(stub)

	result, err := runner.Run(context.Background(), runOpts(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Submitted != 5 {
		t.Fatalf("unexpected result %+v", result)
	}

	slots := sports.Basketball()
	for _, sub := range stub.submissions {
		for _, item := range sub.Items {
			if item.ToSlotID == slots.IRSlot && sub.ScoringPeriodID > 10 {
				t.Fatalf("IR move submitted for future period %d: %+v", sub.ScoringPeriodID, item)
			}
		}
	}
	// Today's submission does carry the IR move.
	var todayHasIR bool
	for _, item := range stub.submissions[0].Items {
		if item.PlayerID == 2 && item.ToSlotID == slots.IRSlot {
			todayHasIR = true
		}
	}
	if !todayHasIR {
		t.Fatal("expected IR move in today's submission")
	}
}

func TestRunHonorsCancellation(t *testing.T) {
	stub := fiveDayStub()
	runner := newTestRunner(stub)

	ctx, cancel := context.WithCancel(context.Background())
	opts := runOpts(func(completed, total int) {
		if completed == 2 {
			cancel()
		}
	})

	result, err := runner.Run(ctx, opts)
	if err == nil {
		t.Fatal("expected context error")
	}
	if result.Submitted != 2 {
		t.Fatalf("expected partial result with 2 submissions, got %+v", result)
	}
}
