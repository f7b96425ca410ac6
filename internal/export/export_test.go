package export_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"

	"mediascout/internal/export"
)

func TestFilename(t *testing.T) {
	if got := export.Filename("ATH", 603); got != "ATH_TMDb_603.json" {
		t.Fatalf("unexpected filename %q", got)
	}
	if got := export.Filename("a/b", 1); got != "a-b_TMDb_1.json" {
		t.Fatalf("expected unsafe characters replaced, got %q", got)
	}
}

func TestExportIndentsAndPreservesUnicode(t *testing.T) {
	fs := afero.NewMemMapFs()
	writer := export.NewWriter(fs, "/exports")

	raw := []byte(`{"data":[{"attributes":{"name":"Amélie <2001>","size":1}}]}`)
	path, err := writer.Export("BLU", 194, raw)
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	if path != filepath.Join("/exports", "BLU_TMDb_194.json") {
		t.Fatalf("unexpected path %q", path)
	}
	content, err := afero.ReadFile(fs, path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	want := "{\n    \"data\": [\n        {\n            \"attributes\": {\n                \"name\": \"Amélie <2001>\",\n                \"size\": 1\n            }\n        }\n    ]\n}\n"
	if string(content) != want {
		t.Fatalf("unexpected export content:\n%s", content)
	}
	if exists, _ := afero.Exists(fs, path+".tmp"); exists {
		t.Fatal("temp file left behind")
	}
}

func TestExportOverwrites(t *testing.T) {
	fs := afero.NewMemMapFs()
	writer := export.NewWriter(fs, "/exports")

	if _, err := writer.Export("ATH", 603, []byte(`{"data":[{"a":1}]}`)); err != nil {
		t.Fatalf("first export: %v", err)
	}
	path, err := writer.Export("ATH", 603, []byte(`{"data":[]}`))
	if err != nil {
		t.Fatalf("second export: %v", err)
	}
	content, _ := afero.ReadFile(fs, path)
	if strings.Contains(string(content), `"a"`) {
		t.Fatalf("expected overwrite, got %s", content)
	}
}

func TestExportRejectsInvalidJSON(t *testing.T) {
	writer := export.NewWriter(afero.NewMemMapFs(), "/exports")
	if _, err := writer.Export("ATH", 1, []byte("not json")); err == nil {
		t.Fatal("expected error for invalid body")
	}
	if _, err := export.NewWriter(afero.NewMemMapFs(), "").Export("ATH", 1, []byte(`{}`)); err == nil {
		t.Fatal("expected error without directory")
	}
}

func TestLockDirIsExclusive(t *testing.T) {
	dir := t.TempDir()
	release, err := export.LockDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("LockDir returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	if _, err := export.LockDir(ctx, dir); !errors.Is(err, export.ErrLocked) {
		t.Fatalf("expected ErrLocked while held, got %v", err)
	}

	if err := release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	again, err := export.LockDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("expected lock after release, got %v", err)
	}
	_ = again()
}

func TestOsWriterRoundTrip(t *testing.T) {
	dir := t.TempDir()
	writer := export.NewWriter(nil, dir)
	path, err := writer.Export("OE", 42, []byte(`{"data":[]}`))
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("unexpected path %q", path)
	}
}
