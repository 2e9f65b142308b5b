package relay

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Credentials is the persisted provider session plus league identity.
type Credentials struct {
	SWID       string
	EspnS2     string
	LeagueID   int
	TeamID     int
	SeasonYear int
	UpdatedAt  time.Time
}

// CredentialStore persists the single active credential set.
type CredentialStore interface {
	Upsert(ctx context.Context, creds Credentials) error
	Load(ctx context.Context) (Credentials, bool, error)
}

// PostgresStore keeps credentials in a single-row Postgres table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore wraps an opened database handle.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Init creates the credentials table when absent.
func (s *PostgresStore) Init(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS espn_credentials (
			id          INTEGER PRIMARY KEY,
			swid        TEXT NOT NULL,
			espn_s2     TEXT NOT NULL,
			league_id   INTEGER NOT NULL,
			team_id     INTEGER NOT NULL,
			season_year INTEGER NOT NULL,
			updated_at  TIMESTAMPTZ NOT NULL
		)`)
	return err
}

// Upsert stores the credential set, replacing any previous one.
func (s *PostgresStore) Upsert(ctx context.Context, creds Credentials) error {
	updated := creds.UpdatedAt
	if updated.IsZero() {
		updated = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO espn_credentials (id, swid, espn_s2, league_id, team_id, season_year, updated_at)
		VALUES (1, $1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			swid = EXCLUDED.swid,
			espn_s2 = EXCLUDED.espn_s2,
			league_id = EXCLUDED.league_id,
			team_id = EXCLUDED.team_id,
			season_year = EXCLUDED.season_year,
			updated_at = EXCLUDED.updated_at`,
		creds.SWID, creds.EspnS2, creds.LeagueID, creds.TeamID, creds.SeasonYear, updated)
	return err
}

// Load returns the stored credential set; the boolean is false when none has
// been uploaded yet.
func (s *PostgresStore) Load(ctx context.Context) (Credentials, bool, error) {
	var creds Credentials
	err := s.db.QueryRowContext(ctx, `
		SELECT swid, espn_s2, league_id, team_id, season_year, updated_at
		FROM espn_credentials WHERE id = 1`).
		Scan(&creds.SWID, &creds.EspnS2, &creds.LeagueID, &creds.TeamID, &creds.SeasonYear, &creds.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Credentials{}, false, nil
	}
	if err != nil {
		return Credentials{}, false, err
	}
	return creds, true, nil
}
