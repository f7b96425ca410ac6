package services

import "context"

type contextKey string

const (
	runIDKey   contextKey = "run_id"
	trackerKey contextKey = "tracker"
)

// WithRunID annotates context with the identifier of the current lookup run.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithTracker annotates context with the tracker code being queried.
func WithTracker(ctx context.Context, code string) context.Context {
	if code == "" {
		return ctx
	}
	return context.WithValue(ctx, trackerKey, code)
}

// TrackerFromContext returns the tracker code if present.
func TrackerFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(trackerKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}
