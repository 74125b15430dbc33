package leaguestore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/park285/league-keeper/internal/league"
)

// Repository archives finished leagues to Postgres before they are removed
// from Redis. Optional collaborator; the manager works without one.
type Repository struct {
	db *sql.DB
}

func NewRepository(databaseURL string) (*Repository, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(16)
	db.SetMaxIdleConns(8)
	db.SetConnMaxLifetime(30 * time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// ArchiveLeague upserts one row per decided match of the league. Undecided
// matches are skipped; deletion of an unfinished league is force-only and
// leaves no archive.
func (r *Repository) ArchiveLeague(ctx context.Context, name string, l *league.League) error {
	if r == nil || r.db == nil || l == nil {
		return nil
	}

	const q = `INSERT INTO league_matches (
	    id, league_name, first_player, second_player, winner, game_count, archived_at
	  ) VALUES ($1,$2,$3,$4,$5,$6,$7)
	  ON CONFLICT (league_name, first_player, second_player) DO UPDATE SET
	    winner=EXCLUDED.winner,
	    game_count=EXCLUDED.game_count,
	    archived_at=EXCLUDED.archived_at`

	now := time.Now()
	for field, gm := range l.Matches {
		pair, err := league.ParsePairKey(field)
		if err != nil {
			return err
		}
		var winner string
		switch gm.Winner(l.Props.BestOf()) {
		case league.WinnerFirst:
			winner = l.Players[pair.First]
		case league.WinnerSecond:
			winner = l.Players[pair.Second]
		default:
			continue
		}
		_, err = r.db.ExecContext(ctx, q,
			uuid.NewString(),
			name,
			l.Players[pair.First],
			l.Players[pair.Second],
			winner,
			len(gm.Games),
			now,
		)
		if err != nil {
			return fmt.Errorf("archive match %s: %w", field, err)
		}
	}
	return nil
}
