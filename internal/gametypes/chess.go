package gametypes

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	nchess "github.com/corentings/chess/v2"
)

// chessData is the payload of a chess game: the move list in UCI notation.
type chessData struct {
	Moves []string `json:"moves"`
}

func encodeChess(data string) ([]byte, error) {
	dec := json.NewDecoder(strings.NewReader(data))
	dec.DisallowUnknownFields()
	var d chessData
	if err := dec.Decode(&d); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("trailing data after payload")
	}

	// Replay from the start position so only legal games are stored.
	game := nchess.NewGame()
	for _, mv := range d.Moves {
		if err := game.PushNotationMove(mv, nchess.UCINotation{}, nil); err != nil {
			return nil, fmt.Errorf("illegal move %q: %w", mv, err)
		}
	}
	return json.Marshal(&d)
}

func decodeChess(raw []byte) string {
	var d chessData
	if err := json.Unmarshal(raw, &d); err != nil {
		return ""
	}
	out, err := json.Marshal(&d)
	if err != nil {
		return ""
	}
	return string(out)
}
