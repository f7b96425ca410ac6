package lookup

import (
	"context"

	"mediascout/internal/tmdb"
)

// Selection is the outcome of disambiguation: either a chosen result or an
// explicit refusal of every candidate.
type Selection struct {
	result tmdb.Result
	chosen bool
}

// Selected wraps the chosen search result.
func Selected(result tmdb.Result) Selection {
	return Selection{result: result, chosen: true}
}

// Aborted records that the operator rejected every candidate.
func Aborted() Selection {
	return Selection{}
}

// Result returns the chosen entry and whether one was chosen.
func (s Selection) Result() (tmdb.Result, bool) {
	return s.result, s.chosen
}

// IsAborted reports whether no candidate was chosen.
func (s Selection) IsAborted() bool {
	return !s.chosen
}

// Chooser picks one entry out of several search results.
type Chooser interface {
	Choose(ctx context.Context, results []tmdb.Result) (Selection, error)
}

// ChooserFunc adapts a function to the Chooser interface.
type ChooserFunc func(ctx context.Context, results []tmdb.Result) (Selection, error)

// Choose calls f.
func (f ChooserFunc) Choose(ctx context.Context, results []tmdb.Result) (Selection, error) {
	return f(ctx, results)
}
