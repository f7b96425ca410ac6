package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/subosito/gotenv"
)

// legacyDotEnv is where older installs kept their credentials.
const legacyDotEnv = "config/.env"

// loadDotEnv exports variables from a .env beside the config file and from
// ./config/.env. Variables already in the environment win.
func loadDotEnv(configPath string) error {
	candidates := []string{legacyDotEnv}
	if configPath != "" {
		candidates = append([]string{filepath.Join(filepath.Dir(configPath), ".env")}, candidates...)
	}
	for _, candidate := range candidates {
		info, err := os.Stat(candidate)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("stat %s: %w", candidate, err)
		}
		if info.IsDir() {
			continue
		}
		if err := gotenv.Load(candidate); err != nil {
			return fmt.Errorf("load %s: %w", candidate, err)
		}
	}
	return nil
}

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTMDB()
	c.normalizeSearch()
	c.normalizeLogging()
	c.normalizeTrackers()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LogDir) != "" {
		if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
			return fmt.Errorf("paths.log_dir: %w", err)
		}
	}
	if strings.TrimSpace(c.Paths.ExportDir) == "" {
		c.Paths.ExportDir = defaultExportDir
	}
	if c.Paths.ExportDir, err = expandPath(c.Paths.ExportDir); err != nil {
		return fmt.Errorf("paths.export_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTMDB() {
	c.TMDB.APIKey = strings.TrimSpace(c.TMDB.APIKey)
	if c.TMDB.APIKey == "" {
		c.TMDB.APIKey = envValue("TMDB_API_KEY")
	}
	c.TMDB.BaseURL = strings.TrimSpace(c.TMDB.BaseURL)
	if value := envValue("TMDB_URL"); value != "" && (c.TMDB.BaseURL == "" || c.TMDB.BaseURL == defaultTMDBBaseURL) {
		c.TMDB.BaseURL = value
	}
	if c.TMDB.BaseURL == "" {
		c.TMDB.BaseURL = defaultTMDBBaseURL
	}
	c.TMDB.BaseURL = strings.TrimRight(c.TMDB.BaseURL, "/")
	c.TMDB.Language = strings.TrimSpace(c.TMDB.Language)
	if c.TMDB.Language == "" {
		c.TMDB.Language = defaultTMDBLanguage
	}
}

func (c *Config) normalizeSearch() {
	if c.Search.Concurrency == 0 {
		c.Search.Concurrency = defaultConcurrency
	}
	if c.Search.TimeoutSeconds == 0 {
		c.Search.TimeoutSeconds = defaultTimeoutSeconds
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.MaxSizeMB <= 0 {
		c.Logging.MaxSizeMB = defaultLogMaxSizeMB
	}
	if c.Logging.MaxBackups < 0 {
		c.Logging.MaxBackups = 0
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}

// normalizeTrackers fills credentials from the environment. Explicit
// [[trackers]] entries are always kept, even half-configured ones, so the
// scan can report them. Without explicit entries the catalog is used and
// entries without an API key are moved to Disabled.
func (c *Config) normalizeTrackers() {
	if len(c.Trackers) > 0 {
		for i := range c.Trackers {
			c.Trackers[i] = fillTracker(c.Trackers[i])
		}
		return
	}

	c.Trackers = nil
	c.Disabled = nil
	for _, entry := range catalog {
		t := fillTracker(Tracker{Name: entry.Name, Code: entry.Code})
		if t.APIKey == "" {
			c.Disabled = append(c.Disabled, t)
			continue
		}
		c.Trackers = append(c.Trackers, t)
	}
}

func fillTracker(t Tracker) Tracker {
	t.Code = strings.ToUpper(strings.TrimSpace(t.Code))
	t.Name = strings.TrimSpace(t.Name)
	t.URL = strings.TrimSpace(t.URL)
	t.APIKey = strings.TrimSpace(t.APIKey)

	entry, known := LookupCatalog(t.Code)
	if t.Name == "" {
		if known {
			t.Name = entry.Name
		} else {
			t.Name = t.Code
		}
	}
	if t.APIKey == "" {
		t.APIKey = envValue(APIKeyEnv(t.Code))
	}
	if t.URL == "" {
		t.URL = envValue(URLEnv(t.Code))
	}
	if t.URL == "" && known {
		t.URL = entry.DefaultURL
	}
	return t
}

func envValue(key string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}
