package gametypes

import (
	"encoding/json"
	"errors"
	"strings"
)

// standardData is the payload of a standard game: nothing at all. Validation
// accepts exactly an empty JSON object.
type standardData struct{}

func encodeStandard(data string) ([]byte, error) {
	dec := json.NewDecoder(strings.NewReader(data))
	dec.DisallowUnknownFields()
	var d standardData
	if err := dec.Decode(&d); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("trailing data after payload")
	}
	return json.Marshal(d)
}

func decodeStandard([]byte) string {
	// A standard payload carries no information.
	return "{}"
}
