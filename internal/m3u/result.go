package m3u

import (
	"errors"
	"fmt"

	"github.com/voyagen/m3ugroups/internal/models"
)

var (
	// ErrNoEntriesFound means the input never contained an #EXTINF line.
	ErrNoEntriesFound = errors.New("no valid M3U entries found")
	// ErrEmptyResult means an #EXTINF line was found but no well-formed pair survived.
	ErrEmptyResult = errors.New("no channels found")
)

// Status summarizes the outcome of a parse.
type Status int

const (
	StatusOK Status = iota
	StatusEmpty
	StatusNoEntriesFound
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusEmpty:
		return "empty"
	case StatusNoEntriesFound:
		return "no_entries_found"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// Result is the outcome of parsing one playlist.
type Result struct {
	Entries []models.Channel
	Groups  []models.Group
	Status  Status
}

// Err maps non-OK statuses to their sentinel errors. A successful parse returns nil.
func (r Result) Err() error {
	switch r.Status {
	case StatusEmpty:
		return ErrEmptyResult
	case StatusNoEntriesFound:
		return ErrNoEntriesFound
	default:
		return nil
	}
}

// Message returns the user-facing summary for the parse outcome.
func (r Result) Message() string {
	switch r.Status {
	case StatusOK:
		return fmt.Sprintf("Successfully processed %d channels in %d groups", len(r.Entries), len(r.Groups))
	case StatusEmpty:
		return "No channels found in file"
	default:
		return "No valid M3U entries found in file"
	}
}
