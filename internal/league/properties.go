package league

import "github.com/park285/league-keeper/internal/gametypes"

// VersionedProperties lets the league configuration schema evolve without
// rewriting stored leagues: the version tag selects which payload field is
// set, and every accessor switches on it. Adding a version means one more
// field, one more case per accessor, and nothing else.
type VersionedProperties struct {
	Version int           `json:"version"`
	V1      *PropertiesV1 `json:"v1,omitempty"`
}

// PropertiesV1 is the current properties schema.
type PropertiesV1 struct {
	// BestOf is the maximum number of games per match. Always odd.
	BestOf uint8 `json:"best_of"`
	// GameType every game payload in the league must conform to.
	GameType gametypes.GameType `json:"game_type"`
}

// NewPropertiesV1 wraps a V1 schema in the versioned envelope.
func NewPropertiesV1(bestOf uint8, gt gametypes.GameType) VersionedProperties {
	return VersionedProperties{Version: 1, V1: &PropertiesV1{BestOf: bestOf, GameType: gt}}
}

// Validate rejects stored properties whose version tag this build does not
// know about.
func (p VersionedProperties) Validate() error {
	switch p.Version {
	case 1:
		if p.V1 == nil {
			return ErrUnknownPropertiesVersion
		}
		return nil
	}
	return ErrUnknownPropertiesVersion
}

// BestOf returns the per-match game bound independent of the schema version.
func (p VersionedProperties) BestOf() uint8 {
	switch p.Version {
	case 1:
		return p.V1.BestOf
	}
	return 0
}

// GameType returns the league's game type independent of the schema version.
func (p VersionedProperties) GameType() gametypes.GameType {
	switch p.Version {
	case 1:
		return p.V1.GameType
	}
	return ""
}
