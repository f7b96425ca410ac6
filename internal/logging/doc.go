// Package logging assembles the structured slog loggers used by mediascout.
//
// A run logs to a rotating file under the configured log directory and, when
// requested, mirrors a console rendering to stderr. Every handler chain is
// wrapped in a redaction layer so tracker and TMDb API keys never reach disk.
// Context helpers attach the run id and tracker code to log lines.
package logging
