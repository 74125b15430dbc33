// Package gametypes is the closed registry of game-type payload codecs.
//
// Every league declares one game type; each recorded game carries a payload
// that must validate against it. Encode is the only fallible direction:
// Decode is guaranteed to succeed on anything Encode produced. Adding a game
// type means one new tag constant, one codec file, and one case in each
// switch below.
package gametypes

import "errors"

// GameType tags the payload schema of a league.
type GameType string

const (
	// Standard carries no payload beyond the winner: the data must be an
	// empty JSON object.
	Standard GameType = "standard"
	// Chess carries the game's moves in UCI notation, validated by replay.
	Chess GameType = "chess"
)

// ErrUnknownType is returned for tags not in the registry.
var ErrUnknownType = errors.New("unknown game type")

// Names enumerates every registered tag. Static; no per-instance state.
func Names() []string {
	return []string{string(Standard), string(Chess)}
}

// Valid reports whether gt is a registered tag.
func Valid(gt GameType) bool {
	switch gt {
	case Standard, Chess:
		return true
	}
	return false
}

// Encode validates human-readable game data against the game type and
// returns the compact stored form.
func Encode(gt GameType, data string) ([]byte, error) {
	switch gt {
	case Standard:
		return encodeStandard(data)
	case Chess:
		return encodeChess(data)
	}
	return nil, ErrUnknownType
}

// Decode converts a stored payload back to its human-readable form. It never
// fails on output produced by Encode; for anything else it returns the empty
// string.
func Decode(gt GameType, raw []byte) string {
	switch gt {
	case Standard:
		return decodeStandard(raw)
	case Chess:
		return decodeChess(raw)
	}
	return ""
}
