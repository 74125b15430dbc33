package league

// Game is one resolved game inside a match. The payload is the compact form
// produced by the game-type codec; it is validated once on the way in and
// never touched again.
type Game struct {
	FirstPlayerWon bool   `json:"first_player_won"`
	Payload        []byte `json:"payload"`
}

// Winner is the outcome of a match as far as it can be determined.
type Winner int

const (
	WinnerNone Winner = iota
	WinnerFirst
	WinnerSecond
)

// Exists reports whether the match has been decided. A missing winner means
// the match is still ongoing.
func (w Winner) Exists() bool { return w != WinnerNone }

// GameMatch is the append-only series of games between one PlayerPair. The
// bound is the league's best_of; callers must not append once a winner exists.
type GameMatch struct {
	Games []Game `json:"games"`
}

// Winner tallies the games in insertion order and applies the best-of rule.
// Only the first bestOf records count; the threshold is the majority
// (bestOf+1)/2, checked by exact equality, so a match can never be decided
// for both sides.
func (m *GameMatch) Winner(bestOf uint8) Winner {
	var first, second int
	for i := 0; i < int(bestOf) && i < len(m.Games); i++ {
		if m.Games[i].FirstPlayerWon {
			first++
		} else {
			second++
		}
	}

	// Widened before the addition: bestOf 255 would wrap the threshold to 0
	// in uint8 and decide an empty match.
	winCondition := (int(bestOf) + 1) / 2
	if first == winCondition {
		return WinnerFirst
	}
	if second == winCondition {
		return WinnerSecond
	}
	return WinnerNone
}

// AddGame appends unconditionally. The not-yet-decided check belongs to the
// League, which owns the best_of bound.
func (m *GameMatch) AddGame(g Game) {
	m.Games = append(m.Games, g)
}
