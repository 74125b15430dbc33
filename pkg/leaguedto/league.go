package leaguedto

// StatusResponse acknowledges a mutating call.
type StatusResponse struct {
	OK bool `json:"ok"`
}

// FinishedResponse answers the league completion query.
type FinishedResponse struct {
	League   string `json:"league"`
	Finished bool   `json:"finished"`
}

// GameTypesResponse lists the registered game type tags.
type GameTypesResponse struct {
	GameTypes []string `json:"game_types"`
}

// MetaResponse describes a league's configuration and completion state.
type MetaResponse struct {
	League   string   `json:"league"`
	BestOf   uint8    `json:"best_of"`
	GameType string   `json:"game_type"`
	Players  []string `json:"players"`
	Owner    string   `json:"owner"`
	Finished bool     `json:"finished"`
}

// GameView is one recorded game with its payload decoded back to the
// human-readable form of the league's game type.
type GameView struct {
	FirstPlayerWon bool   `json:"first_player_won"`
	GameData       string `json:"game_data"`
}

// MatchView is one pair's match. Winner is the winning player's name, empty
// while the match is undecided.
type MatchView struct {
	FirstPlayer  string     `json:"first_player"`
	SecondPlayer string     `json:"second_player"`
	Winner       string     `json:"winner,omitempty"`
	Games        []GameView `json:"games"`
}

// MatchesResponse lists every match of a league.
type MatchesResponse struct {
	League  string      `json:"league"`
	Matches []MatchView `json:"matches"`
}
