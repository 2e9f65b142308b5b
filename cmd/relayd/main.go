// Command relayd serves the credential relay: it receives encrypted ESPN
// session tokens from the browser extension, stores them in Postgres, and
// runs the season automation shortly before the first game each day.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/mchen04/ESPN-Season-Lineup-Setup/internal/config"
	"github.com/mchen04/ESPN-Season-Lineup-Setup/internal/logging"
	"github.com/mchen04/ESPN-Season-Lineup-Setup/internal/metrics"
	"github.com/mchen04/ESPN-Season-Lineup-Setup/internal/provider"
	"github.com/mchen04/ESPN-Season-Lineup-Setup/internal/provider/espn"
	"github.com/mchen04/ESPN-Season-Lineup-Setup/internal/relay"
	"github.com/mchen04/ESPN-Season-Lineup-Setup/internal/season"
	"github.com/mchen04/ESPN-Season-Lineup-Setup/internal/sports"
)

const appVersion = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "relayd:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "relayd",
		Version: appVersion,
	})

	if cfg.Relay.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	codec, err := relay.NewCodec(cfg.Relay.SecretKey, cfg.Relay.KeySalt, cfg.Relay.ReplayWindow)
	if err != nil {
		return err
	}

	db, err := sql.Open("postgres", cfg.Relay.DatabaseURL)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	store := relay.NewPostgresStore(db)
	if err := store.Init(ctx); err != nil {
		return fmt.Errorf("init credential store: %w", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.Relay.RedisAddr})
	defer rdb.Close()
	limiter := relay.NewRateLimiter(rdb, int64(cfg.Relay.RateLimitMax), cfg.Relay.RateLimitWindow)
	nonces := relay.NewRedisNonceCache(rdb, cfg.Relay.ReplayWindow)

	recorder, promHandler, shutdownMetrics, err := metrics.Setup(ctx, metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	})
	if err != nil {
		return fmt.Errorf("metrics setup: %w", err)
	}
	defer func() {
		if err := shutdownMetrics(context.Background()); err != nil {
			logging.Warn(logger, "metrics shutdown failed", "error", err)
		}
	}()

	slots, err := sports.Resolve(cfg.Season.Sport)
	if err != nil {
		return err
	}
	client := espn.NewClient(espn.Config{
		ReadBaseURL:       cfg.ESPN.ReadBaseURL,
		WriteBaseURL:      cfg.ESPN.WriteBaseURL,
		ScoreboardBaseURL: cfg.ESPN.ScoreboardBaseURL,
		Game:              slots.Sport,
		Logger:            logger,
		Metrics:           recorder,
		Slots:             slots,
	})
	fantasy := provider.NewRetrying(client, logger, provider.RetryConfig{
		MaxRetries:      uint64(cfg.Season.MaxRetries),
		InitialInterval: cfg.Season.RetryInterval,
	})
	runner := season.New(fantasy, logger, recorder, slots,
		season.WithCalendarWindow(cfg.Season.CalendarDays),
		season.WithSubmitDelay(cfg.Season.SubmitDelay),
	)

	runSeason := func(ctx context.Context, creds relay.Credentials) error {
		result, err := runner.Run(ctx, season.Options{
			LeagueID: creds.LeagueID,
			TeamID:   creds.TeamID,
			Season:   creds.SeasonYear,
			Auth:     provider.Auth{EspnS2: creds.EspnS2, SWID: creds.SWID},
		})
		if err != nil {
			return err
		}
		logging.Info(logger, "scheduled run complete",
			"submitted", result.Submitted, "skipped", result.Skipped, "failed", len(result.Errors))
		return nil
	}

	scheduler := relay.NewScheduler(store, client, runSeason, relay.SchedulerConfig{
		CheckHour: cfg.Relay.DailyCheckHour,
		LeadTime:  cfg.Relay.TipoffLeadTime,
	}, logger)
	go func() {
		if err := scheduler.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logging.Error(logger, "scheduler stopped", err)
		}
	}()

	server := relay.NewServer(codec, store, nonces, limiter, logger)
	mux := http.NewServeMux()
	mux.Handle("/", server.Handler())
	if promHandler != nil {
		mux.Handle("/metrics", promHandler)
	}
	httpServer := &http.Server{Addr: ":" + cfg.Relay.Port, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		logging.Info(logger, "relay listening", "port", cfg.Relay.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
