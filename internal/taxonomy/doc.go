// Package taxonomy holds the canonical release-format categories (REMUX,
// WEB-DL, Encode, ...) and the synonym tokens that identify them.
//
// Matching is case-insensitive and substring based: a token such as
// "x265 encode" or a release name such as "Movie.2023.1080p.WEB-DL" counts
// toward every category whose synonym it contains. The table is built once
// and never mutated, so a single Taxonomy may be shared freely.
package taxonomy
