package tracker

import (
	"slices"

	"mediascout/internal/taxonomy"
)

// Check returns the taxonomy categories absent from listings, in taxonomy
// order, together with the distinct format tokens that matched no category.
// A category is present when any listing's type token classifies to it or
// any listing's name contains one of its synonyms.
func Check(listings []Listing, tax *taxonomy.Taxonomy) ([]taxonomy.Category, []string) {
	if tax == nil {
		tax = taxonomy.Default()
	}
	found := make(map[taxonomy.Category]struct{})
	unknownSet := make(map[string]struct{})

	for _, listing := range listings {
		if token := taxonomy.Fold(listing.Type); token != "" {
			categories := tax.Classify(token)
			if len(categories) == 0 {
				unknownSet[token] = struct{}{}
			}
			for _, c := range categories {
				found[c] = struct{}{}
			}
		}
		for _, c := range tax.MatchName(listing.Name) {
			found[c] = struct{}{}
		}
	}

	var missing []taxonomy.Category
	for _, c := range tax.Categories() {
		if _, ok := found[c]; !ok {
			missing = append(missing, c)
		}
	}

	var unknown []string
	if len(unknownSet) > 0 {
		unknown = make([]string, 0, len(unknownSet))
		for token := range unknownSet {
			unknown = append(unknown, token)
		}
		slices.Sort(unknown)
	}
	return missing, unknown
}
