// Package config loads, normalizes, and validates mediascout configuration.
//
// Configuration is TOML. Defaults are applied first, then the file, then
// environment fallbacks (TMDB_API_KEY, <CODE>_API_KEY, <CODE>_URL), which may
// come from a .env file next to the config. When no [[trackers]] are listed
// the built-in tracker catalog is used.
package config
