package leaguedto

// CreateLeagueRequest creates a named league owned by the caller.
type CreateLeagueRequest struct {
	Name     string   `json:"name"`
	Players  []string `json:"players"`
	Accounts []string `json:"accounts,omitempty"`
	BestOf   uint8    `json:"best_of"`
	GameType string   `json:"game_type"`
}

// AddGameRequest records one game between two named players of a league.
// FirstInTupleWon refers to the order of Players in this request.
type AddGameRequest struct {
	League          string    `json:"league"`
	Players         [2]string `json:"players"`
	FirstInTupleWon bool      `json:"first_in_tuple_won"`
	GameData        string    `json:"game_data"`
}

// DeleteLeagueRequest removes a league. Force skips the finished check.
type DeleteLeagueRequest struct {
	League string `json:"league"`
	Force  bool   `json:"force,omitempty"`
}
