// Package textutil provides small string helpers shared by the exporter, the
// tracker client, and the console report: filename sanitization and
// rune-safe truncation.
package textutil
