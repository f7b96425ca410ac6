package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"mediascout/internal/services"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	LogDir    string `toml:"log_dir"`
	ExportDir string `toml:"export_dir"`
}

// TMDB contains configuration for The Movie Database API.
type TMDB struct {
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
	Language string `toml:"language"`
}

// Search controls how trackers are queried.
type Search struct {
	DelaySeconds   float64 `toml:"delay_seconds"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
	Concurrency    int     `toml:"concurrency"`
	Transliterate  bool    `toml:"transliterate"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	MaxSizeMB     int    `toml:"max_size_mb"`
	MaxBackups    int    `toml:"max_backups"`
	RetentionDays int    `toml:"retention_days"`
}

// Tracker is one UNIT3D-style tracker site.
type Tracker struct {
	Name   string `toml:"name"`
	Code   string `toml:"code"`
	URL    string `toml:"url"`
	APIKey string `toml:"api_key"`
}

// Configured reports whether both credentials are present.
func (t Tracker) Configured() bool {
	return strings.TrimSpace(t.URL) != "" && strings.TrimSpace(t.APIKey) != ""
}

// Label renders "Name (CODE)".
func (t Tracker) Label() string {
	if t.Name == "" {
		return t.Code
	}
	return fmt.Sprintf("%s (%s)", t.Name, t.Code)
}

// Config encapsulates all configuration values for mediascout.
type Config struct {
	Paths    Paths     `toml:"paths"`
	TMDB     TMDB      `toml:"tmdb"`
	Search   Search    `toml:"search"`
	Logging  Logging   `toml:"logging"`
	Trackers []Tracker `toml:"trackers"`

	// Disabled lists catalog trackers skipped because no credentials were
	// configured for them.
	Disabled []Tracker `toml:"-"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and environment fallbacks applied.
func Load(path string) (*Config, string, bool, error) {
	cfg, resolvedPath, exists, err := LoadUnvalidated(path)
	if err != nil {
		return nil, resolvedPath, exists, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, resolvedPath, exists, fmt.Errorf("%w: %w", services.ErrConfiguration, err)
	}
	return cfg, resolvedPath, exists, nil
}

// LoadUnvalidated is Load without the final Validate step. It backs commands
// that report on partial configuration.
func LoadUnvalidated(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}
	if err := loadDotEnv(resolvedPath); err != nil {
		return nil, resolvedPath, exists, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, resolvedPath, exists, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			var strict *toml.StrictMissingError
			if errors.As(err, &strict) {
				return nil, resolvedPath, exists, fmt.Errorf("%w: parse config: %s", services.ErrConfiguration, strict.String())
			}
			return nil, resolvedPath, exists, fmt.Errorf("%w: parse config: %w", services.ErrConfiguration, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, resolvedPath, exists, fmt.Errorf("%w: %w", services.ErrConfiguration, err)
	}
	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		info, err := os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		if info.IsDir() {
			return "", false, fmt.Errorf("config path %q is a directory", expanded)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

// EnsureDirectories creates the log and export directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.LogDir, c.Paths.ExportDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// RequestTimeout is the per-tracker HTTP timeout.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Search.TimeoutSeconds) * time.Second
}

// Delay is the pause between consecutive tracker queries.
func (c *Config) Delay() time.Duration {
	return time.Duration(c.Search.DelaySeconds * float64(time.Second))
}

// Secrets returns every credential that must never appear in logs.
func (c *Config) Secrets() []string {
	secrets := []string{c.TMDB.APIKey}
	for _, t := range c.Trackers {
		secrets = append(secrets, t.APIKey)
	}
	for _, t := range c.Disabled {
		secrets = append(secrets, t.APIKey)
	}
	out := secrets[:0]
	for _, s := range secrets {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// SampleConfig returns the embedded sample configuration.
func SampleConfig() string {
	return sampleConfig
}

// CreateSample writes the sample configuration file to path.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o600); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
