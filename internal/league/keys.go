package league

import (
	"crypto/sha256"
	"encoding/hex"
)

// CollectionKeys are the storage key names for a league's three collections.
// They are derived from the league name, which is unique, so collections of
// different leagues can never alias each other.
type CollectionKeys struct {
	Players string `json:"players"`
	Trusted string `json:"trusted"`
	Matches string `json:"matches"`
}

// DeriveKeys hashes the league name and appends a distinct suffix byte per
// collection, yielding three deterministic, collision-resistant key names.
func DeriveKeys(name string) CollectionKeys {
	sum := sha256.Sum256([]byte(name))

	buf := make([]byte, len(sum)+1)
	copy(buf, sum[:])

	derive := func(suffix byte) string {
		buf[len(sum)] = suffix
		return hex.EncodeToString(buf)
	}
	return CollectionKeys{
		Players: derive(0),
		Trusted: derive(1),
		Matches: derive(2),
	}
}
