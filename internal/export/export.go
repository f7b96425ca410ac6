package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/afero"

	"mediascout/internal/textutil"
)

const (
	indent       = "    "
	lockFileName = ".mediascout.lock"
	lockRetry    = 100 * time.Millisecond
)

// ErrLocked reports that another run holds the export directory.
var ErrLocked = errors.New("export directory is locked by another run")

// Filename returns the export file name for a tracker code and TMDb id.
func Filename(code string, tmdbID int64) string {
	name := textutil.SanitizeFileName(code)
	if name == "" {
		name = "UNKNOWN"
	}
	return name + "_TMDb_" + strconv.FormatInt(tmdbID, 10) + ".json"
}

// Writer writes tracker responses under one directory.
type Writer struct {
	fs  afero.Fs
	dir string
}

// NewWriter returns a Writer rooted at dir. A nil fs uses the OS filesystem.
func NewWriter(fs afero.Fs, dir string) *Writer {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Writer{fs: fs, dir: dir}
}

// Dir returns the export directory.
func (w *Writer) Dir() string {
	return w.dir
}

// Export re-indents raw with four spaces and writes it, replacing any
// previous export for the same tracker and title. It returns the file path.
func (w *Writer) Export(code string, tmdbID int64, raw []byte) (string, error) {
	if strings.TrimSpace(w.dir) == "" {
		return "", errors.New("export directory not configured")
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, bytes.TrimSpace(raw), "", indent); err != nil {
		return "", fmt.Errorf("indent response: %w", err)
	}
	pretty.WriteByte('\n')

	if err := w.fs.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	path := filepath.Join(w.dir, Filename(code, tmdbID))
	tmpPath := path + ".tmp"
	if err := afero.WriteFile(w.fs, tmpPath, pretty.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := w.fs.Rename(tmpPath, path); err != nil {
		_ = w.fs.Remove(tmpPath)
		return "", fmt.Errorf("rename temp file: %w", err)
	}
	return path, nil
}

// LockDir takes an exclusive lock on dir for the duration of a run. It
// gives up with ErrLocked once ctx is done. The returned func releases it.
func LockDir(ctx context.Context, dir string) (func() error, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export directory: %w", err)
	}
	lock := flock.New(filepath.Join(dir, lockFileName))
	ok, err := lock.TryLockContext(ctx, lockRetry)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ErrLocked
		}
		return nil, fmt.Errorf("acquire export lock: %w", err)
	}
	if !ok {
		return nil, ErrLocked
	}
	return lock.Unlock, nil
}
