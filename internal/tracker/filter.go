package tracker

import (
	"strings"

	"github.com/mozillazg/go-unidecode"

	"mediascout/internal/taxonomy"
)

// QuerySeparator splits free-text query terms.
const QuerySeparator = "^"

// FilterOptions tunes free-text matching.
type FilterOptions struct {
	// Transliterate folds accented and non-Latin text to ASCII on both sides
	// before comparing, so "amélie" matches "Amelie.2001".
	Transliterate bool
}

// ParseQuery splits a query on ^ and returns the trimmed, case-folded terms.
// Blank terms are dropped.
func ParseQuery(query string) []string {
	return parseQuery(query, FilterOptions{})
}

func parseQuery(query string, opts FilterOptions) []string {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	parts := strings.Split(query, QuerySeparator)
	terms := make([]string, 0, len(parts))
	for _, part := range parts {
		term := normalizeText(part, opts)
		if term == "" {
			continue
		}
		terms = append(terms, term)
	}
	return terms
}

// Filter keeps the listings whose name contains every query term. An empty
// query returns listings unchanged.
func Filter(listings []Listing, query string) []Listing {
	return FilterWith(listings, query, FilterOptions{})
}

// FilterWith is Filter with explicit matching options.
func FilterWith(listings []Listing, query string, opts FilterOptions) []Listing {
	terms := parseQuery(query, opts)
	if len(terms) == 0 {
		return listings
	}
	matched := make([]Listing, 0, len(listings))
	for _, listing := range listings {
		if matchesAll(normalizeText(listing.Name, opts), terms) {
			matched = append(matched, listing)
		}
	}
	return matched
}

func matchesAll(name string, terms []string) bool {
	if name == "" {
		return false
	}
	for _, term := range terms {
		if !strings.Contains(name, term) {
			return false
		}
	}
	return true
}

func normalizeText(value string, opts FilterOptions) string {
	if opts.Transliterate {
		value = unidecode.Unidecode(value)
	}
	return taxonomy.Fold(value)
}
