package player

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel kinds for analytics errors. Use errors.Is against these; the typed
// errors below carry the query context.
var (
	ErrDataLoad        = errors.New("data load failed")
	ErrPlayerNotFound  = errors.New("player not found")
	ErrInvalidArgument = errors.New("invalid argument")
)

// DataLoadError reports an unreadable source or a schema mismatch.
type DataLoadError struct {
	Source  string
	Missing []string
	Err     error
}

func (e *DataLoadError) Error() string {
	var b strings.Builder
	b.WriteString("load ")
	b.WriteString(e.Source)
	if len(e.Missing) > 0 {
		b.WriteString(": missing required columns: ")
		b.WriteString(strings.Join(e.Missing, ", "))
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *DataLoadError) Unwrap() error { return e.Err }

// Is matches ErrDataLoad.
func (e *DataLoadError) Is(target error) bool { return target == ErrDataLoad }

// PlayerNotFoundError reports a lookup key with no matching record.
type PlayerNotFoundError struct {
	Key   string // "name" or "id"
	Value string
}

func (e *PlayerNotFoundError) Error() string {
	key := e.Key
	if key == "" {
		key = "name"
	}
	return fmt.Sprintf("player not found: %s %q", key, e.Value)
}

// Is matches ErrPlayerNotFound.
func (e *PlayerNotFoundError) Is(target error) bool { return target == ErrPlayerNotFound }

// InvalidArgumentError rejects a single query parameter.
type InvalidArgumentError struct {
	Query  string
	Param  string
	Value  string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	var b strings.Builder
	if e.Query != "" {
		b.WriteString(e.Query)
		b.WriteString(": ")
	}
	b.WriteString("invalid ")
	b.WriteString(e.Param)
	if e.Value != "" {
		fmt.Fprintf(&b, " %q", e.Value)
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	return b.String()
}

// Is matches ErrInvalidArgument.
func (e *InvalidArgumentError) Is(target error) bool { return target == ErrInvalidArgument }
