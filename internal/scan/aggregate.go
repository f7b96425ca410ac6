package scan

import (
	"mediascout/internal/taxonomy"
	"mediascout/internal/tracker"
)

// Aggregate is the run-level summary of every tracker outcome.
type Aggregate struct {
	Media tracker.Media
	Query string
	// Successful lists tracker names whose query succeeded, in configuration order.
	Successful []string
	// Failed maps tracker name to the failure reason.
	Failed map[string]string
	// Missing maps tracker name to the categories it lacks. Only trackers
	// queried without a search filter appear here.
	Missing map[string][]taxonomy.Category
	// Outcomes holds one entry per configured tracker, in configuration order.
	Outcomes []tracker.Outcome
	// Exported lists the files written after the scan.
	Exported []string
}

func newAggregate(media tracker.Media, query string, size int) *Aggregate {
	return &Aggregate{
		Media:    media,
		Query:    query,
		Failed:   make(map[string]string),
		Missing:  make(map[string][]taxonomy.Category),
		Outcomes: make([]tracker.Outcome, 0, size),
	}
}

func (a *Aggregate) add(outcome tracker.Outcome) {
	a.Outcomes = append(a.Outcomes, outcome)
	if !outcome.Succeeded() {
		a.Failed[outcome.TrackerName] = outcome.Reason
		return
	}
	a.Successful = append(a.Successful, outcome.TrackerName)
	if len(outcome.Missing) > 0 {
		a.Missing[outcome.TrackerName] = outcome.Missing
	}
}

// NoSuccess reports that no tracker returned results. It is a signal for
// the caller, not an error.
func (a *Aggregate) NoSuccess() bool {
	return len(a.Successful) == 0
}

// FailedOutcomes returns failed outcomes in configuration order.
func (a *Aggregate) FailedOutcomes() []tracker.Outcome {
	var out []tracker.Outcome
	for _, o := range a.Outcomes {
		if !o.Succeeded() {
			out = append(out, o)
		}
	}
	return out
}

// MissingOutcomes returns successful outcomes that lack categories, in
// configuration order.
func (a *Aggregate) MissingOutcomes() []tracker.Outcome {
	var out []tracker.Outcome
	for _, o := range a.Outcomes {
		if o.Succeeded() && len(o.Missing) > 0 {
			out = append(out, o)
		}
	}
	return out
}
