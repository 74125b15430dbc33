package league

// Engine errors. Every rejected operation surfaces as exactly one of these;
// callers match with errors.Is.
var (
	ErrEvenBestOf      = errf("best_of number should be odd")
	ErrTooFewPlayers   = errf("league needs at least 3 participants")
	ErrTooManyPlayers  = errf("league supports at most 255 participants")
	ErrShortName       = errf("league name must be at least 3 chars long")
	ErrUnknownGameType = errf("unknown game type")

	ErrSamePlayer     = errf("need two distinct players")
	ErrPlayerNotFound = errf("at least one player not found in the league")
	ErrMatchFinished  = errf("match is already finished")
	ErrInvalidPayload = errf("game data does not conform to the game type")

	ErrNotAllowed  = errf("caller is not allowed to manipulate the league")
	ErrNotOwner    = errf("caller is not the league owner")
	ErrNotFinished = errf("league is not finished yet")

	ErrUnknownPropertiesVersion = errf("unknown league properties version")
)

type staticErr string

func (e staticErr) Error() string { return string(e) }
func errf(s string) error         { return staticErr(s) }
