package league

import "fmt"

// PlayerPair identifies the two contestants of a match by roster index.
// The pair is canonical: First always holds the smaller index, so the same
// two contestants yield an equal pair regardless of argument order.
type PlayerPair struct {
	First  uint8 `json:"first"`
	Second uint8 `json:"second"`
}

// NewPlayerPair builds the canonical pair for two roster indices.
func NewPlayerPair(a, b uint8) PlayerPair {
	if a <= b {
		return PlayerPair{First: a, Second: b}
	}
	return PlayerPair{First: b, Second: a}
}

// IsSwapped reports whether the caller-supplied order differed from the
// canonical order. Caller-relative data such as the winner flag has to be
// reinterpreted when this is true.
func (p PlayerPair) IsSwapped(shouldBeFirst uint8) bool {
	return p.First != shouldBeFirst
}

// Key is the stable field name for the pair inside the matches collection.
func (p PlayerPair) Key() string {
	return fmt.Sprintf("%d:%d", p.First, p.Second)
}

// ParsePairKey is the inverse of Key.
func ParsePairKey(key string) (PlayerPair, error) {
	var first, second uint8
	if _, err := fmt.Sscanf(key, "%d:%d", &first, &second); err != nil {
		return PlayerPair{}, fmt.Errorf("malformed pair key %q: %w", key, err)
	}
	return PlayerPair{First: first, Second: second}, nil
}
