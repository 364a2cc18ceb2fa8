package service

import (
	"errors"
	"fmt"

	"github.com/okian/pitchstats/internal/domain/player"
)

// Sentinel kinds for service errors.
var (
	ErrNotLoaded     = errors.New("player table not loaded")
	ErrAlreadyLoaded = errors.New("player table already loaded")
)

// QueryError carries the failing query name and its correlation ID. Use
// errors.Is against the player sentinels to classify the cause.
type QueryError struct {
	Query   string
	QueryID string
	Err     error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Query, e.QueryID, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// errorKind maps an error to a low-cardinality metrics label.
func errorKind(err error) string {
	switch {
	case errors.Is(err, player.ErrPlayerNotFound):
		return "not_found"
	case errors.Is(err, player.ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, ErrNotLoaded):
		return "not_loaded"
	default:
		return "internal"
	}
}
