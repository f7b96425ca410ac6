package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestNewFanoutHandlerCollapses(t *testing.T) {
	if _, ok := newFanoutHandler(nil, nil).(NoopHandler); !ok {
		t.Fatal("expected NoopHandler for all nil handlers")
	}
	inner := slog.NewJSONHandler(&bytes.Buffer{}, nil)
	if h := newFanoutHandler(nil, inner); h != inner {
		t.Fatal("expected single non-nil handler to be returned unwrapped")
	}
}

func TestFanoutHandlerRespectsEachLevel(t *testing.T) {
	var fileBuf, consoleBuf bytes.Buffer
	file := slog.NewTextHandler(&fileBuf, &slog.HandlerOptions{Level: slog.LevelDebug})
	console := slog.NewTextHandler(&consoleBuf, &slog.HandlerOptions{Level: slog.LevelWarn})
	logger := slog.New(newFanoutHandler(file, console)).With("run_id", "r1").WithGroup("scan")

	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("expected debug enabled through the file handler")
	}
	logger.Debug("pacing", "delay", "1s")
	logger.Warn("tracker failed", "code", "BLU")

	if !strings.Contains(fileBuf.String(), "pacing") || !strings.Contains(fileBuf.String(), "tracker failed") {
		t.Fatalf("file handler missing records: %q", fileBuf.String())
	}
	if strings.Contains(consoleBuf.String(), "pacing") {
		t.Fatalf("console handler received debug record: %q", consoleBuf.String())
	}
	if !strings.Contains(consoleBuf.String(), "run_id=r1") || !strings.Contains(consoleBuf.String(), "scan.code=BLU") {
		t.Fatalf("console handler lost attrs or group: %q", consoleBuf.String())
	}
}

func TestPrettyHandlerFormatsComponentAndGroups(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := slog.New(newPrettyHandler(&buf, lvl, false)).
		With(FieldComponent, "tracker").
		WithGroup("req").
		With("status", 500)

	logger.Info("request failed", "reason", "tracker returned 500 Internal Server Error", "status", 502)

	out := buf.String()
	if !strings.Contains(out, "INFO  tracker: request failed") {
		t.Fatalf("unexpected header %q", out)
	}
	if !strings.Contains(out, `req.reason="tracker returned 500 Internal Server Error"`) {
		t.Fatalf("expected quoted grouped value, got %q", out)
	}
	if strings.Count(out, "req.status=") != 1 || !strings.Contains(out, "req.status=502") {
		t.Fatalf("expected deduplicated status, got %q", out)
	}
}
