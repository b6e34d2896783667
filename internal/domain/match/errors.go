package match

import crerr "github.com/cockroachdb/errors"

var (
	// ErrAmbiguousEvent means an event lookup key (kind + minute) matched more
	// than one stored event. Callers decide whether that is an idempotent
	// re-parse or a genuine conflict.
	ErrAmbiguousEvent = crerr.New("more than one matching event")

	// ErrUnknownClubSide means neither team name matched the club's known
	// name variants, so home/away orientation cannot be resolved.
	ErrUnknownClubSide = crerr.New("cannot resolve club side from team names")
)
