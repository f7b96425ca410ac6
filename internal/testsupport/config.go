package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"mediascout/internal/config"
)

// TMDBKey is the TMDb API key written into test configurations.
const TMDBKey = "test-tmdb-key"

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Pacing is disabled so scans run without sleeping.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.TMDB.APIKey = TMDBKey
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.ExportDir = filepath.Join(base, "exports")
	cfgVal.Search.DelaySeconds = 0
	cfgVal.Search.TimeoutSeconds = 5

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithTMDBURL points the config at a fake TMDb server.
func WithTMDBURL(baseURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.TMDB.BaseURL = baseURL
	}
}

// WithTracker appends an explicit [[trackers]] entry.
func WithTracker(name, code, url, apiKey string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Trackers = append(b.cfg.Trackers, config.Tracker{
			Name:   name,
			Code:   code,
			URL:    url,
			APIKey: apiKey,
		})
	}
}

// WriteConfig encodes cfg as TOML at path.
func WriteConfig(t testing.TB, path string, cfg *config.Config) {
	t.Helper()

	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

// ClearCredentialEnv blanks every credential environment variable the
// config loader consults, so host settings cannot leak into a test.
func ClearCredentialEnv(t testing.TB) {
	t.Helper()

	t.Setenv("TMDB_API_KEY", "")
	t.Setenv("TMDB_URL", "")
	for _, entry := range config.Catalog() {
		t.Setenv(config.APIKeyEnv(entry.Code), "")
		t.Setenv(config.URLEnv(entry.Code), "")
	}
}
