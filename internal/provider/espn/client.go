package espn

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mchen04/ESPN-Season-Lineup-Setup/internal/domain"
	"github.com/mchen04/ESPN-Season-Lineup-Setup/internal/logging"
	"github.com/mchen04/ESPN-Season-Lineup-Setup/internal/metrics"
	"github.com/mchen04/ESPN-Season-Lineup-Setup/internal/provider"
	"github.com/mchen04/ESPN-Season-Lineup-Setup/internal/sports"
)

// Config controls how the ESPN client reaches the upstream API.
type Config struct {
	ReadBaseURL       string
	WriteBaseURL      string
	ScoreboardBaseURL string
	Game              string // provider game key, e.g. "fba"
	HTTPClient        *http.Client
	Logger            *slog.Logger
	Metrics           *metrics.Recorder
	Slots             sports.SlotTable
}

// Client talks to the ESPN fantasy read/write hosts and the public site
// scoreboard, mapping responses to domain models. It implements
// provider.FantasyProvider.
type Client struct {
	readBase       string
	writeBase      string
	scoreboardBase string
	game           string
	httpClient     httpDoer
	logger         *slog.Logger
	metrics        *metrics.Recorder
	slots          sports.SlotTable
}

// NewClient constructs an ESPN client with the provided configuration.
func NewClient(cfg Config) *Client {
	slots := cfg.Slots
	if slots.Names == nil {
		slots = sports.Basketball()
	}
	game := cfg.Game
	if game == "" {
		game = defaultGame
	}
	return &Client{
		readBase:       normalizeBaseURL(cfg.ReadBaseURL, defaultReadBaseURL),
		writeBase:      normalizeBaseURL(cfg.WriteBaseURL, defaultWriteBaseURL),
		scoreboardBase: normalizeBaseURL(cfg.ScoreboardBaseURL, defaultScoreboardBaseURL),
		game:           game,
		httpClient:     resolveHTTPClient(cfg.HTTPClient),
		logger:         cfg.Logger,
		metrics:        cfg.Metrics,
		slots:          slots,
	}
}

// FetchLeague retrieves league settings and all rostered players.
func (c *Client) FetchLeague(ctx context.Context, leagueID, season int, auth provider.Auth) (domain.LeagueSettings, []domain.Player, error) {
	url := fmt.Sprintf("%s/%s/seasons/%d/segments/0/leagues/%d?view=mRoster&view=mTeam&view=mSettings",
		c.readBase, c.game, season, leagueID)

	var payload leagueResponse
	if err := c.getJSON(ctx, "league", url, auth, &payload); err != nil {
		return domain.LeagueSettings{}, nil, err
	}

	settings, players := mapLeague(payload, c.slots)
	return settings, players, nil
}

// FetchRosterSlots retrieves one team's slot occupancy as of a specific
// scoring period.
func (c *Client) FetchRosterSlots(ctx context.Context, leagueID, season, period, teamID int, auth provider.Auth) (map[int]int, error) {
	url := fmt.Sprintf("%s/%s/seasons/%d/segments/0/leagues/%d?view=mRoster&scoringPeriodId=%d",
		c.readBase, c.game, season, leagueID, period)

	var payload leagueResponse
	if err := c.getJSON(ctx, "roster", url, auth, &payload); err != nil {
		return nil, err
	}

	for _, team := range payload.Teams {
		if team.ID == teamID {
			return mapRosterSlots(team), nil
		}
	}
	return nil, fmt.Errorf("espn: team %d not found in period %d roster response", teamID, period)
}

// FetchCalendarDay retrieves the set of pro teams with a game on the given
// YYYYMMDD date from the public scoreboard.
func (c *Client) FetchCalendarDay(ctx context.Context, date string) (map[int]struct{}, error) {
	url := fmt.Sprintf("%s/scoreboard?dates=%s", c.scoreboardBase, date)

	var payload scoreboardResponse
	if err := c.getJSON(ctx, "scoreboard", url, provider.Auth{}, &payload); err != nil {
		return nil, err
	}
	return mapScoreboardTeams(payload), nil
}

// FetchEarliestTipoff returns the start time of the first game on the given
// YYYYMMDD date. The boolean is false when the date has no games.
func (c *Client) FetchEarliestTipoff(ctx context.Context, date string) (time.Time, bool, error) {
	url := fmt.Sprintf("%s/scoreboard?dates=%s", c.scoreboardBase, date)

	var payload scoreboardResponse
	if err := c.getJSON(ctx, "scoreboard", url, provider.Auth{}, &payload); err != nil {
		return time.Time{}, false, err
	}
	tipoff, ok := earliestTipoff(payload)
	return tipoff, ok, nil
}

// SubmitLineup posts a lineup transaction for one scoring period.
func (c *Client) SubmitLineup(ctx context.Context, leagueID, season int, auth provider.Auth, sub provider.Submission) error {
	url := fmt.Sprintf("%s/%s/seasons/%d/segments/0/leagues/%d/transactions/",
		c.writeBase, c.game, season, leagueID)

	txType := txTypeRoster
	if sub.Future {
		txType = txTypeFutureRoster
	}
	body := transactionRequest{
		TeamID:          sub.TeamID,
		Type:            txType,
		MemberID:        auth.SWID,
		ScoringPeriodID: sub.ScoringPeriodID,
		ExecutionType:   txExecutionExecute,
		Items:           mapTransactionItems(sub.Items),
	}

	encoded, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(encoded))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	c.setAuthHeaders(req, auth)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.recordCall("submit", start, err)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		logging.Info(c.logger, "lineup submitted",
			logging.FieldPeriod, sub.ScoringPeriodID, logging.FieldItems, len(sub.Items))
		return nil
	}

	excerpt := readExcerpt(resp.Body)
	if strings.Contains(excerpt, lockedCode) {
		return &provider.LockedError{ScoringPeriodID: sub.ScoringPeriodID, Message: excerpt}
	}
	return &provider.APIError{Endpoint: "submit", StatusCode: resp.StatusCode, Body: excerpt}
}

func (c *Client) getJSON(ctx context.Context, endpoint, url string, auth provider.Auth, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	c.setAuthHeaders(req, auth)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.recordCall(endpoint, start, err)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &provider.APIError{Endpoint: endpoint, StatusCode: resp.StatusCode, Body: readExcerpt(resp.Body)}
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) setAuthHeaders(req *http.Request, auth provider.Auth) {
	if auth.EspnS2 != "" || auth.SWID != "" {
		req.Header.Set("Cookie", fmt.Sprintf("espn_s2=%s; SWID=%s", auth.EspnS2, auth.SWID))
	}
	req.Header.Set("X-Fantasy-Source", headerFantasySource)
	req.Header.Set("X-Fantasy-Platform", headerFantasyPlatform)
}

func (c *Client) recordCall(endpoint string, start time.Time, err error) {
	c.metrics.RecordAPICall(endpoint, time.Since(start), err)
}

func readExcerpt(r io.Reader) string {
	body, _ := io.ReadAll(io.LimitReader(r, 512))
	return strings.TrimSpace(string(body))
}

func mapTransactionItems(items []domain.LineupChange) []transactionItem {
	out := make([]transactionItem, 0, len(items))
	for _, item := range items {
		out = append(out, transactionItem{
			PlayerID:         item.PlayerID,
			Type:             string(item.Type),
			FromLineupSlotID: item.FromSlotID,
			ToLineupSlotID:   item.ToSlotID,
		})
	}
	return out
}

// parseTeamID handles the site API's string team ids.
func parseTeamID(raw string) (int, bool) {
	id, err := strconv.Atoi(raw)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
