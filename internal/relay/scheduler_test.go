package relay

import (
	"context"
	"testing"
	"time"
)

type stubTipoffs struct {
	tipoff time.Time
	found  bool
	err    error
}

func (s *stubTipoffs) FetchEarliestTipoff(ctx context.Context, date string) (time.Time, bool, error) {
	return s.tipoff, s.found, s.err
}

func TestSchedulerRunsBeforeTipoff(t *testing.T) {
	now := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	tipoff := now.Add(3 * time.Hour)

	store := &memoryStore{creds: &Credentials{SWID: "{A}", EspnS2: "s2", LeagueID: 1, TeamID: 2, SeasonYear: 2025}}
	var ranWith *Credentials
	sched := NewScheduler(store, &stubTipoffs{tipoff: tipoff, found: true},
		func(ctx context.Context, creds Credentials) error {
			ranWith = &creds
			return nil
		}, SchedulerConfig{CheckHour: 9, LeadTime: 5 * time.Minute}, nil)

	var slept []time.Duration
	sched.now = func() time.Time { return now }
	sched.sleep = func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		now = now.Add(d)
		return nil
	}

	if err := sched.runOnce(context.Background()); err != nil {
		t.Fatalf("runOnce: %v", err)
	}
	if ranWith == nil {
		t.Fatal("season run not invoked")
	}
	if ranWith.LeagueID != 1 || ranWith.TeamID != 2 {
		t.Errorf("ran with credentials %+v", *ranWith)
	}
	if len(slept) != 1 || slept[0] != 3*time.Hour-5*time.Minute {
		t.Errorf("slept %v, want one wait of 2h55m", slept)
	}
}

func TestSchedulerSkipsWithoutCredentials(t *testing.T) {
	ran := false
	sched := NewScheduler(&memoryStore{}, &stubTipoffs{found: true, tipoff: time.Now()},
		func(ctx context.Context, creds Credentials) error {
			ran = true
			return nil
		}, SchedulerConfig{}, nil)

	if err := sched.runOnce(context.Background()); err != nil {
		t.Fatalf("runOnce: %v", err)
	}
	if ran {
		t.Error("season run should not fire without credentials")
	}
}

func TestSchedulerSkipsIdleDay(t *testing.T) {
	store := &memoryStore{creds: &Credentials{SWID: "{A}", EspnS2: "s2", LeagueID: 1, TeamID: 2, SeasonYear: 2025}}
	ran := false
	sched := NewScheduler(store, &stubTipoffs{found: false},
		func(ctx context.Context, creds Credentials) error {
			ran = true
			return nil
		}, SchedulerConfig{}, nil)

	if err := sched.runOnce(context.Background()); err != nil {
		t.Fatalf("runOnce: %v", err)
	}
	if ran {
		t.Error("season run should not fire on a day without games")
	}
}

func TestSchedulerRunsImmediatelyPastLeadTime(t *testing.T) {
	now := time.Date(2025, 1, 10, 18, 59, 0, 0, time.UTC)
	tipoff := now.Add(time.Minute)

	store := &memoryStore{creds: &Credentials{SWID: "{A}", EspnS2: "s2", LeagueID: 1, TeamID: 2, SeasonYear: 2025}}
	ran := false
	sched := NewScheduler(store, &stubTipoffs{tipoff: tipoff, found: true},
		func(ctx context.Context, creds Credentials) error {
			ran = true
			return nil
		}, SchedulerConfig{LeadTime: 5 * time.Minute}, nil)

	sched.now = func() time.Time { return now }
	sched.sleep = func(ctx context.Context, d time.Duration) error {
		t.Fatalf("unexpected sleep of %v", d)
		return nil
	}

	if err := sched.runOnce(context.Background()); err != nil {
		t.Fatalf("runOnce: %v", err)
	}
	if !ran {
		t.Error("season run should fire immediately when inside the lead window")
	}
}

func TestNextCheckRollsToTomorrow(t *testing.T) {
	sched := NewScheduler(&memoryStore{}, &stubTipoffs{}, nil, SchedulerConfig{CheckHour: 9}, nil)

	now := time.Date(2025, 1, 10, 10, 0, 0, 0, time.UTC)
	next := sched.nextCheck(now)
	want := time.Date(2025, 1, 11, 9, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("nextCheck = %v, want %v", next, want)
	}

	early := time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)
	if next := sched.nextCheck(early); !next.Equal(time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("nextCheck(early) = %v", next)
	}
}
