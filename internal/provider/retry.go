package provider

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/mchen04/ESPN-Season-Lineup-Setup/internal/domain"
	"github.com/mchen04/ESPN-Season-Lineup-Setup/internal/logging"
)

const (
	defaultMaxRetries      = 3
	defaultInitialInterval = 200 * time.Millisecond
)

// RetryConfig tunes the read-retry decorator.
type RetryConfig struct {
	MaxRetries      uint64
	InitialInterval time.Duration
}

// retryingProvider wraps a FantasyProvider with exponential-backoff retries
// on reads. Writes pass through untouched: lineup transactions are not
// idempotent on the provider side, so a retried write could double-apply.
type retryingProvider struct {
	inner  FantasyProvider
	logger *slog.Logger
	cfg    RetryConfig
}

// NewRetrying wraps the given provider with read retries. Zero config fields
// fall back to defaults.
func NewRetrying(inner FantasyProvider, logger *slog.Logger, cfg RetryConfig) FantasyProvider {
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.InitialInterval <= 0 {
		cfg.InitialInterval = defaultInitialInterval
	}
	return &retryingProvider{inner: inner, logger: logger, cfg: cfg}
}

func (r *retryingProvider) FetchLeague(ctx context.Context, leagueID, season int, auth Auth) (domain.LeagueSettings, []domain.Player, error) {
	var settings domain.LeagueSettings
	var players []domain.Player
	err := r.retry(ctx, "league", func() error {
		var err error
		settings, players, err = r.inner.FetchLeague(ctx, leagueID, season, auth)
		return err
	})
	return settings, players, err
}

func (r *retryingProvider) FetchRosterSlots(ctx context.Context, leagueID, season, period, teamID int, auth Auth) (map[int]int, error) {
	var slots map[int]int
	err := r.retry(ctx, "roster", func() error {
		var err error
		slots, err = r.inner.FetchRosterSlots(ctx, leagueID, season, period, teamID, auth)
		return err
	})
	return slots, err
}

func (r *retryingProvider) FetchCalendarDay(ctx context.Context, date string) (map[int]struct{}, error) {
	var teams map[int]struct{}
	err := r.retry(ctx, "calendar", func() error {
		var err error
		teams, err = r.inner.FetchCalendarDay(ctx, date)
		return err
	})
	return teams, err
}

func (r *retryingProvider) SubmitLineup(ctx context.Context, leagueID, season int, auth Auth, sub Submission) error {
	return r.inner.SubmitLineup(ctx, leagueID, season, auth, sub)
}

func (r *retryingProvider) retry(ctx context.Context, op string, fn func() error) error {
	attempt := 0

	wrapped := func() error {
		attempt++
		err := fn()
		if err == nil {
			return nil
		}
		if !retryable(err) {
			return backoff.Permanent(err)
		}
		logging.Warn(r.logger, "provider read retry", "op", op, "attempt", attempt, "error", err)
		return err
	}

	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = r.cfg.InitialInterval
	policy := backoff.WithContext(backoff.WithMaxRetries(expo, r.cfg.MaxRetries), ctx)

	return backoff.Retry(wrapped, policy)
}

// retryable reports whether a read failure is worth another attempt. Client
// errors other than 429 are not.
func retryable(err error) bool {
	apiErr, ok := AsAPIError(err)
	if !ok {
		return true
	}
	if apiErr.StatusCode == http.StatusTooManyRequests {
		return true
	}
	return apiErr.StatusCode < 400 || apiErr.StatusCode >= 500
}
