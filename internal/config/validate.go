package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Validate ensures the configuration is usable for a lookup.
func (c *Config) Validate() error {
	if err := c.validateTMDB(); err != nil {
		return err
	}
	if err := c.validateSearch(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return c.validateTrackers()
}

func (c *Config) validateTMDB() error {
	if c.TMDB.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = defaultConfigPath
		}
		return fmt.Errorf("tmdb.api_key is required. Set TMDB_API_KEY env var or edit %s (create with 'mediascout config init')", defaultPath)
	}
	if !strings.HasPrefix(c.TMDB.BaseURL, "http://") && !strings.HasPrefix(c.TMDB.BaseURL, "https://") {
		return fmt.Errorf("tmdb.base_url must be an http(s) URL, got %q", c.TMDB.BaseURL)
	}
	return nil
}

func (c *Config) validateSearch() error {
	if c.Search.TimeoutSeconds <= 0 {
		return errors.New("search.timeout_seconds must be positive")
	}
	if c.Search.DelaySeconds < 0 {
		return errors.New("search.delay_seconds must not be negative")
	}
	if c.Search.Concurrency < 1 {
		return errors.New("search.concurrency must be at least 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level %q is not recognized", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateTrackers() error {
	seen := make(map[string]struct{}, len(c.Trackers))
	configured := 0
	for idx, t := range c.Trackers {
		if t.Code == "" {
			return fmt.Errorf("trackers[%d].code must be set", idx)
		}
		if _, dup := seen[t.Code]; dup {
			return fmt.Errorf("trackers[%d].code %q is duplicated", idx, t.Code)
		}
		seen[t.Code] = struct{}{}
		if t.Configured() {
			configured++
		}
	}
	if configured == 0 {
		codes := make([]string, 0, len(catalog))
		for _, entry := range catalog {
			codes = append(codes, fmt.Sprintf("%s (%s)", entry.Name, entry.Code))
		}
		slices.Sort(codes)
		return fmt.Errorf("at least one tracker with both api key and url is required; set <CODE>_API_KEY for one of: %s", strings.Join(codes, ", "))
	}
	return nil
}
