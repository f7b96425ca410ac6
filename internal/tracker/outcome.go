package tracker

import (
	"time"

	"mediascout/internal/taxonomy"
)

// Status classifies how a tracker query ended.
type Status int

const (
	StatusSuccess Status = iota
	StatusNoData
	StatusFilteredEmpty
	StatusMissingCredentials
	StatusInvalidResponse
	StatusRequestFailed
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusNoData:
		return "no_data"
	case StatusFilteredEmpty:
		return "filtered_empty"
	case StatusMissingCredentials:
		return "missing_credentials"
	case StatusInvalidResponse:
		return "invalid_response"
	case StatusRequestFailed:
		return "request_failed"
	default:
		return "unknown"
	}
}

// Outcome is the single result produced for one tracker in a run.
type Outcome struct {
	TrackerName string
	TrackerCode string
	Status      Status
	// Reason is the human-readable explanation for any non-success status.
	Reason string
	// Listings holds the releases after filtering.
	Listings []Listing
	// Total counts the decoded listings before filtering.
	Total int
	// Missing lists absent categories; only set when no query was active.
	Missing []taxonomy.Category
	// Unknown lists format tokens that matched no category.
	Unknown []string
	Skipped []Skipped
	// Raw is the unfiltered response body, kept for export.
	Raw     []byte
	Latency time.Duration
}

// Succeeded reports whether the outcome counts as a successful query.
func (o Outcome) Succeeded() bool {
	return o.Status == StatusSuccess
}
