// Command season-setup runs the full-season lineup automation once: it reads
// the league, places injured players on IR, and submits an optimized lineup
// for every remaining scoring period.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mchen04/ESPN-Season-Lineup-Setup/internal/calendarcache"
	"github.com/mchen04/ESPN-Season-Lineup-Setup/internal/config"
	"github.com/mchen04/ESPN-Season-Lineup-Setup/internal/logging"
	"github.com/mchen04/ESPN-Season-Lineup-Setup/internal/metrics"
	"github.com/mchen04/ESPN-Season-Lineup-Setup/internal/provider"
	"github.com/mchen04/ESPN-Season-Lineup-Setup/internal/provider/espn"
	"github.com/mchen04/ESPN-Season-Lineup-Setup/internal/season"
	"github.com/mchen04/ESPN-Season-Lineup-Setup/internal/sports"
)

const appVersion = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "season-setup:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "season-setup",
		Version: appVersion,
	})

	if cfg.ESPN.LeagueID == 0 || cfg.ESPN.TeamID == 0 || cfg.ESPN.SeasonYear == 0 {
		return errors.New("LEAGUE_ID, TEAM_ID and SEASON_YEAR are required")
	}
	if cfg.ESPN.EspnS2 == "" || cfg.ESPN.SWID == "" {
		return errors.New("ESPN_S2 and ESPN_SWID are required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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
	if promHandler != nil {
		go serveMetrics(logger, cfg.Metrics.Port, promHandler)
	}

	slots, err := resolveSlots(cfg.Season)
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

	opts := []season.RunnerOption{
		season.WithCalendarWindow(cfg.Season.CalendarDays),
		season.WithSubmitDelay(cfg.Season.SubmitDelay),
	}
	if cfg.Season.CalendarCacheDir != "" {
		opts = append(opts, season.WithCalendarCache(calendarcache.NewStore(cfg.Season.CalendarCacheDir)))
	}
	runner := season.New(fantasy, logger, recorder, slots, opts...)

	result, err := runner.Run(ctx, season.Options{
		LeagueID: cfg.ESPN.LeagueID,
		TeamID:   cfg.ESPN.TeamID,
		Season:   cfg.ESPN.SeasonYear,
		Auth:     provider.Auth{EspnS2: cfg.ESPN.EspnS2, SWID: cfg.ESPN.SWID},
		OnProgress: func(completed, total int) {
			fmt.Printf("\rProcessing day %d/%d", completed, total)
		},
	})
	fmt.Println()
	if err != nil {
		return err
	}

	fmt.Printf("Done: %d lineups submitted, %d days already optimal\n", result.Submitted, result.Skipped)
	if len(result.Errors) > 0 {
		fmt.Printf("%d days failed:\n", len(result.Errors))
		for _, msg := range result.Errors {
			fmt.Println("  -", msg)
		}
	}
	return nil
}

func resolveSlots(cfg config.SeasonConfig) (sports.SlotTable, error) {
	sport := cfg.Sport
	switch sport {
	case "basketball":
		sport = "fba"
	case "football":
		sport = "ffl"
	}

	if cfg.SportsFile != "" {
		tables, err := sports.LoadFile(cfg.SportsFile)
		if err != nil {
			return sports.SlotTable{}, err
		}
		if table, ok := tables[sport]; ok {
			return table, nil
		}
		return sports.SlotTable{}, fmt.Errorf("no slot table for sport %q in %s", sport, cfg.SportsFile)
	}
	return sports.Resolve(sport)
}

func serveMetrics(logger *slog.Logger, port string, handler http.Handler) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)
	if err := http.ListenAndServe(":"+port, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logging.Warn(logger, "metrics server stopped", "error", err)
	}
}
