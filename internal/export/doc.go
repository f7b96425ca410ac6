// Package export persists raw tracker responses as pretty-printed JSON files
// named <CODE>_TMDb_<id>.json.
//
// Files are written through an afero filesystem so tests run in memory. A
// directory lock keeps two concurrent runs from interleaving writes.
package export
