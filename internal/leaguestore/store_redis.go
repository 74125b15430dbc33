package leaguestore

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/park285/league-keeper/internal/league"
)

// Store is the Redis layout of a league. The meta record lives under a
// name-based key; the three collections live under keys derived from the
// league name, so the store never needs to know the name to reach them once
// the meta record is loaded.
type Store struct{ rdb *redis.Client }

func NewStore(rdb *redis.Client) *Store { return &Store{rdb: rdb} }

func (s *Store) keyMeta(name string) string { return "lg:" + strings.TrimSpace(name) }

// leagueMeta is stored as JSON under lg:<name>.
type leagueMeta struct {
	Props league.VersionedProperties `json:"props"`
	Owner string                     `json:"owner"`
	Keys  league.CollectionKeys      `json:"keys"`
}

// CreateMeta writes the meta record only if the name is still free. The
// returned bool is false when a league of that name already exists.
func (s *Store) CreateMeta(ctx context.Context, name string, meta *leagueMeta) (bool, error) {
	raw, err := json.Marshal(meta)
	if err != nil {
		return false, err
	}
	return s.rdb.SetNX(ctx, s.keyMeta(name), raw, 0).Result()
}

// LoadMeta returns nil without error when the league does not exist.
func (s *Store) LoadMeta(ctx context.Context, name string) (*leagueMeta, error) {
	raw, err := s.rdb.Get(ctx, s.keyMeta(name)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var m leagueMeta
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveRoster writes the immutable participant list. Called once, at league
// creation.
func (s *Store) SaveRoster(ctx context.Context, keys league.CollectionKeys, players []string) error {
	args := make([]interface{}, len(players))
	for i, p := range players {
		args[i] = p
	}
	return s.rdb.RPush(ctx, keys.Players, args...).Err()
}

func (s *Store) Roster(ctx context.Context, keys league.CollectionKeys) ([]string, error) {
	return s.rdb.LRange(ctx, keys.Players, 0, -1).Result()
}

func (s *Store) SaveTrusted(ctx context.Context, keys league.CollectionKeys, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return s.rdb.SAdd(ctx, keys.Trusted, args...).Err()
}

func (s *Store) Trusted(ctx context.Context, keys league.CollectionKeys) ([]string, error) {
	return s.rdb.SMembers(ctx, keys.Trusted).Result()
}

// SaveMatch upserts one pair's match in the matches hash.
func (s *Store) SaveMatch(ctx context.Context, keys league.CollectionKeys, pairKey string, gm *league.GameMatch) error {
	raw, err := json.Marshal(gm)
	if err != nil {
		return err
	}
	return s.rdb.HSet(ctx, keys.Matches, pairKey, raw).Err()
}

// Matches loads the whole matches hash, pair key to match.
func (s *Store) Matches(ctx context.Context, keys league.CollectionKeys) (map[string]*league.GameMatch, error) {
	raw, err := s.rdb.HGetAll(ctx, keys.Matches).Result()
	if err != nil {
		return nil, err
	}
	out := make(map[string]*league.GameMatch, len(raw))
	for field, val := range raw {
		var gm league.GameMatch
		if err := json.Unmarshal([]byte(val), &gm); err != nil {
			return nil, err
		}
		out[field] = &gm
	}
	return out, nil
}

// DeleteLeague removes the meta record and all three derived collections.
func (s *Store) DeleteLeague(ctx context.Context, name string, keys league.CollectionKeys) error {
	return s.rdb.Del(ctx, s.keyMeta(name), keys.Players, keys.Trusted, keys.Matches).Err()
}
