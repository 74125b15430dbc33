// Package leaguestore orchestrates league operations against Redis: it owns
// name uniqueness, caller authorization, and the persistence of the engine's
// results. The engine itself (internal/league) stays pure.
package leaguestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/park285/league-keeper/internal/gametypes"
	"github.com/park285/league-keeper/internal/league"
	"github.com/park285/league-keeper/internal/obslog"
	"github.com/park285/league-keeper/pkg/leaguedto"
)

// Store-level errors.
var (
	ErrLeagueExists   = errf("league with that name already exists")
	ErrLeagueNotFound = errf("league not found")
	ErrInvalidCaller  = errf("caller identity required")
)

type staticErr string

func (e staticErr) Error() string { return string(e) }
func errf(s string) error         { return staticErr(s) }

// Manager is the boundary entry point for every league operation.
type Manager struct {
	rdb   *redis.Client
	store *Store
	repo  *Repository
}

func NewManager(redisURL string) (*Manager, error) {
	if strings.TrimSpace(redisURL) == "" {
		return nil, fmt.Errorf("REDIS_URL required for league manager")
	}
	opts, err := parseRedisURL(redisURL)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &Manager{rdb: rdb, store: NewStore(rdb)}, nil
}

func (m *Manager) Close() error {
	if m == nil || m.rdb == nil {
		return nil
	}
	return m.rdb.Close()
}

// AttachRepository wires a database repository for archiving finished leagues.
func (m *Manager) AttachRepository(r *Repository) {
	if m != nil {
		m.repo = r
	}
}

// CreateLeague validates the parameters, claims the name, and persists the
// fresh league. The caller becomes the owner.
func (m *Manager) CreateLeague(ctx context.Context, name string, players, accounts []string, bestOf uint8, gt gametypes.GameType, caller string) error {
	if strings.TrimSpace(caller) == "" {
		return ErrInvalidCaller
	}
	l, err := league.New(name, players, accounts, bestOf, gt, caller)
	if err != nil {
		return err
	}

	meta := &leagueMeta{Props: l.Props, Owner: l.Owner, Keys: l.Keys}
	ok, err := m.store.CreateMeta(ctx, name, meta)
	if err != nil {
		return err
	}
	if !ok {
		return ErrLeagueExists
	}

	if err := m.store.SaveRoster(ctx, l.Keys, l.Players); err != nil {
		return err
	}
	trusted := make([]string, 0, len(l.Trusted))
	for id := range l.Trusted {
		trusted = append(trusted, id)
	}
	if err := m.store.SaveTrusted(ctx, l.Keys, trusted); err != nil {
		return err
	}

	obslog.L().Info("league_create",
		zap.String("league", name),
		zap.String("owner", caller),
		zap.Uint8("best_of", bestOf),
		zap.String("game_type", string(gt)),
		zap.Int("players", len(l.Players)),
	)
	return nil
}

// load assembles the full aggregate from its stored parts.
func (m *Manager) load(ctx context.Context, name string) (*league.League, error) {
	meta, err := m.store.LoadMeta(ctx, name)
	if err != nil {
		return nil, err
	}
	if meta == nil {
		return nil, ErrLeagueNotFound
	}
	if err := meta.Props.Validate(); err != nil {
		return nil, err
	}
	roster, err := m.store.Roster(ctx, meta.Keys)
	if err != nil {
		return nil, err
	}
	trusted, err := m.store.Trusted(ctx, meta.Keys)
	if err != nil {
		return nil, err
	}
	matches, err := m.store.Matches(ctx, meta.Keys)
	if err != nil {
		return nil, err
	}
	return league.Restore(meta.Props, roster, trusted, matches, meta.Owner, meta.Keys), nil
}

// AddGame records one game. Authorization is enforced here, at the boundary,
// with the engine's predicates; the engine performs the pairing, winner, and
// payload checks. A rejected call leaves the store untouched: only the
// single updated hash field is written, and only on success.
func (m *Manager) AddGame(ctx context.Context, name string, playerNames [2]string, firstInTupleWon bool, gameData string, caller string) error {
	if strings.TrimSpace(caller) == "" {
		return ErrInvalidCaller
	}
	meta, err := m.store.LoadMeta(ctx, name)
	if err != nil {
		return err
	}
	if meta == nil {
		return ErrLeagueNotFound
	}

	// WATCH the matches hash so concurrent writers to the same league retry
	// rather than interleave.
	err = m.rdb.Watch(ctx, func(tx *redis.Tx) error {
		l, err := m.load(ctx, name)
		if err != nil {
			return err
		}
		if !l.IsAllowed(caller) {
			return league.ErrNotAllowed
		}
		pair, gm, err := l.AddGame(playerNames[0], playerNames[1], firstInTupleWon, gameData)
		if err != nil {
			return err
		}
		raw, err := json.Marshal(gm)
		if err != nil {
			return err
		}
		pipe := tx.TxPipeline()
		pipe.HSet(ctx, l.Keys.Matches, pair.Key(), raw)
		_, err = pipe.Exec(ctx)
		return err
	}, meta.Keys.Matches)
	if err != nil {
		if errors.Is(err, redis.TxFailedErr) {
			return fmt.Errorf("concurrent update on league %q, retry", name)
		}
		return err
	}

	obslog.L().Info("league_add_game",
		zap.String("league", name),
		zap.String("first", playerNames[0]),
		zap.String("second", playerNames[1]),
		zap.Bool("first_in_tuple_won", firstInTupleWon),
		zap.String("caller", caller),
	)
	return nil
}

// Meta describes a league: properties, roster, owner, and completion state.
// Doubles as the existence query; an unknown name yields ErrLeagueNotFound.
func (m *Manager) Meta(ctx context.Context, name string) (*leaguedto.MetaResponse, error) {
	l, err := m.load(ctx, name)
	if err != nil {
		return nil, err
	}
	return &leaguedto.MetaResponse{
		League:   name,
		BestOf:   l.Props.BestOf(),
		GameType: string(l.Props.GameType()),
		Players:  l.Players,
		Owner:    l.Owner,
		Finished: l.IsFinished(),
	}, nil
}

// IsFinished reports whether every pair has a decided match.
func (m *Manager) IsFinished(ctx context.Context, name string) (bool, error) {
	l, err := m.load(ctx, name)
	if err != nil {
		return false, err
	}
	return l.IsFinished(), nil
}

// DeleteLeague removes a league. Only the owner may delete, and only a
// finished league unless force is set. A finished league is archived to the
// attached repository before removal.
func (m *Manager) DeleteLeague(ctx context.Context, name string, force bool, caller string) error {
	if strings.TrimSpace(caller) == "" {
		return ErrInvalidCaller
	}
	l, err := m.load(ctx, name)
	if err != nil {
		return err
	}
	if !l.IsOwner(caller) {
		return league.ErrNotOwner
	}
	finished := l.IsFinished()
	if !finished && !force {
		return league.ErrNotFinished
	}

	if m.repo != nil && finished {
		if err := m.repo.ArchiveLeague(ctx, name, l); err != nil {
			obslog.L().Error("league_archive_error", zap.String("league", name), zap.Error(err))
			return err
		}
	}

	if err := m.store.DeleteLeague(ctx, name, l.Keys); err != nil {
		return err
	}
	obslog.L().Info("league_delete",
		zap.String("league", name),
		zap.String("caller", caller),
		zap.Bool("force", force),
		zap.Bool("finished", finished),
	)
	return nil
}

// Matches lists every match of a league with payloads decoded back to their
// human-readable form.
func (m *Manager) Matches(ctx context.Context, name string) ([]leaguedto.MatchView, error) {
	l, err := m.load(ctx, name)
	if err != nil {
		return nil, err
	}

	out := make([]leaguedto.MatchView, 0, len(l.Matches))
	for field, gm := range l.Matches {
		pair, err := league.ParsePairKey(field)
		if err != nil {
			return nil, err
		}
		view := leaguedto.MatchView{
			FirstPlayer:  l.Players[pair.First],
			SecondPlayer: l.Players[pair.Second],
			Games:        make([]leaguedto.GameView, 0, len(gm.Games)),
		}
		switch gm.Winner(l.Props.BestOf()) {
		case league.WinnerFirst:
			view.Winner = l.Players[pair.First]
		case league.WinnerSecond:
			view.Winner = l.Players[pair.Second]
		}
		for _, g := range gm.Games {
			view.Games = append(view.Games, leaguedto.GameView{
				FirstPlayerWon: g.FirstPlayerWon,
				GameData:       gametypes.Decode(l.Props.GameType(), g.Payload),
			})
		}
		out = append(out, view)
	}
	return out, nil
}

// GameTypes enumerates the registered game type tags.
func (m *Manager) GameTypes() []string { return gametypes.Names() }

func parseRedisURL(raw string) (*redis.Options, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "redis" && u.Scheme != "rediss" {
		return nil, fmt.Errorf("unsupported scheme: %s", u.Scheme)
	}
	db := 0
	if p := strings.TrimPrefix(u.Path, "/"); p != "" {
		if n, err := strconv.Atoi(p); err == nil {
			db = n
		}
	}
	pass, _ := u.User.Password()
	return &redis.Options{Addr: u.Host, Password: pass, DB: db}, nil
}
