// Package services defines shared utilities consumed by the tracker scan and
// the metadata lookup integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers and tracker codes for logging
//     and tracing.
//   - Structured error markers plus the Wrap helper that let the CLI tell user
//     input mistakes apart from configuration and transport failures.
//
// Use these helpers when wiring new integrations so operational behaviour
// (error handling, observability) stays uniform across commands.
package services
