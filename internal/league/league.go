// Package league is the tournament resolution engine: canonical pairing of
// contestants, best-of-N winner determination per match, and league-wide
// completion detection.
//
// The roster is immutable after creation and contestants are referenced by
// roster index, never by pointer, which keeps pairs unambiguous and the
// stored form free of aliasing. The engine is synchronous and holds no
// locks; the store layer serializes writers per league.
package league

import (
	"github.com/park285/league-keeper/internal/gametypes"
)

// League is the aggregate holding one tournament together: its versioned
// properties, the fixed participant roster, all matches keyed by canonical
// pair, the trusted identities, and the owner.
type League struct {
	Props VersionedProperties
	// Players is the fixed roster. Indices into it identify contestants for
	// the lifetime of the league.
	Players []string
	// Matches maps PlayerPair.Key() to the match between that pair.
	Matches map[string]*GameMatch
	// Trusted identities may manipulate the league besides the owner. The
	// owner is never stored here.
	Trusted map[string]struct{}
	Owner   string
	Keys    CollectionKeys
}

// New validates the creation parameters and builds a fresh league owned by
// the caller. Identities in trusted equal to the owner are dropped; the
// owner is implicitly authorized and would only be double bookkeeping.
func New(name string, players []string, trusted []string, bestOf uint8, gt gametypes.GameType, owner string) (*League, error) {
	if bestOf%2 == 0 {
		return nil, ErrEvenBestOf
	}
	if len(players) <= 2 {
		return nil, ErrTooFewPlayers
	}
	if len(players) > 255 {
		return nil, ErrTooManyPlayers
	}
	if len(name) <= 2 {
		return nil, ErrShortName
	}
	if !gametypes.Valid(gt) {
		return nil, ErrUnknownGameType
	}

	ts := make(map[string]struct{}, len(trusted))
	for _, id := range trusted {
		if id != owner && id != "" {
			ts[id] = struct{}{}
		}
	}

	roster := make([]string, len(players))
	copy(roster, players)

	return &League{
		Props:   NewPropertiesV1(bestOf, gt),
		Players: roster,
		Matches: make(map[string]*GameMatch),
		Trusted: ts,
		Owner:   owner,
		Keys:    DeriveKeys(name),
	}, nil
}

// Restore assembles a league from its stored parts without re-validation.
func Restore(props VersionedProperties, players []string, trusted []string, matches map[string]*GameMatch, owner string, keys CollectionKeys) *League {
	ts := make(map[string]struct{}, len(trusted))
	for _, id := range trusted {
		ts[id] = struct{}{}
	}
	if matches == nil {
		matches = make(map[string]*GameMatch)
	}
	return &League{
		Props:   props,
		Players: players,
		Matches: matches,
		Trusted: ts,
		Owner:   owner,
		Keys:    keys,
	}
}

// IsOwner reports whether caller created the league.
func (l *League) IsOwner(caller string) bool {
	return caller == l.Owner
}

// IsAllowed reports whether caller may manipulate the league: the owner or
// any trusted identity. Pure predicate; enforcement is up to the boundary.
func (l *League) IsAllowed(caller string) bool {
	if l.IsOwner(caller) {
		return true
	}
	_, ok := l.Trusted[caller]
	return ok
}

// AddGame records one game between two named contestants. firstInTupleWon is
// relative to the argument order; it is re-oriented against the canonical
// pair before storage. On success the updated match and its pair are
// returned so the caller can persist exactly that entry; on any error
// nothing is mutated.
func (l *League) AddGame(firstName, secondName string, firstInTupleWon bool, gameData string) (PlayerPair, *GameMatch, error) {
	if firstName == secondName {
		return PlayerPair{}, nil, ErrSamePlayer
	}

	// Resolve names to roster indices. First occurrence wins; duplicate
	// roster names are not defended against here.
	first, second := -1, -1
	for idx, name := range l.Players {
		switch {
		case name == firstName && first < 0:
			first = idx
		case name == secondName && second < 0:
			second = idx
		}
	}
	if first < 0 || second < 0 {
		return PlayerPair{}, nil, ErrPlayerNotFound
	}

	pair := NewPlayerPair(uint8(first), uint8(second))

	gm := l.Matches[pair.Key()]
	if gm == nil {
		gm = &GameMatch{}
	}
	if gm.Winner(l.Props.BestOf()).Exists() {
		return PlayerPair{}, nil, ErrMatchFinished
	}

	// Re-orient the caller-relative winner flag to canonical pair order.
	firstPlayerWon := pair.IsSwapped(uint8(first)) != firstInTupleWon

	payload, err := gametypes.Encode(l.Props.GameType(), gameData)
	if err != nil {
		return PlayerPair{}, nil, ErrInvalidPayload
	}

	gm.AddGame(Game{FirstPlayerWon: firstPlayerWon, Payload: payload})
	l.Matches[pair.Key()] = gm
	return pair, gm, nil
}

// IsFinished reports whether every pair among the n roster entries has a
// match and every match is decided. The Gaussian pair count n(n-1)/2 is the
// cheap necessary condition; the per-match scan is the sufficient one.
func (l *League) IsFinished() bool {
	n := len(l.Players)
	if len(l.Matches) != n*(n-1)/2 {
		return false
	}
	for _, gm := range l.Matches {
		if !gm.Winner(l.Props.BestOf()).Exists() {
			return false
		}
	}
	return true
}
