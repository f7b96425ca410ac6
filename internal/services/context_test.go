package services_test

import (
	"context"
	"testing"

	"mediascout/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithRunID(ctx, "run-123")
	ctx = services.WithTracker(ctx, "ATH")

	if rid, ok := services.RunIDFromContext(ctx); !ok || rid != "run-123" {
		t.Fatalf("unexpected run id: %v %v", rid, ok)
	}
	if code, ok := services.TrackerFromContext(ctx); !ok || code != "ATH" {
		t.Fatalf("unexpected tracker: %v %v", code, ok)
	}
}

func TestTrackerBlankPreservesContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithTracker(ctx, "")
	if _, ok := services.TrackerFromContext(ctx); ok {
		t.Fatal("expected no tracker value")
	}
}
