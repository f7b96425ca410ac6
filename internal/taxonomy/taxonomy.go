package taxonomy

import (
	"strings"

	"golang.org/x/text/cases"
)

// Category is the canonical name of a release format.
type Category string

const (
	Remux    Category = "REMUX"
	WebDL    Category = "WEB-DL"
	Encode   Category = "Encode"
	FullDisc Category = "Full Disc"
	WebRip   Category = "WEBRip"
	HDTV     Category = "HDTV"
)

// Entry pairs a category with the lowercase tokens that indicate it.
type Entry struct {
	Category Category
	Synonyms []string
}

// Taxonomy is an ordered, immutable category table.
type Taxonomy struct {
	entries []Entry
}

// Default returns the taxonomy used for tracker scans.
func Default() *Taxonomy {
	return New([]Entry{
		{Category: Remux, Synonyms: []string{"remux"}},
		{Category: WebDL, Synonyms: []string{"web-dl"}},
		{Category: Encode, Synonyms: []string{"encode", "x264 encode", "x265 encode"}},
		{Category: FullDisc, Synonyms: []string{"full disc", "full disk"}},
		{Category: WebRip, Synonyms: []string{"webrip", "web-rip"}},
		{Category: HDTV, Synonyms: []string{"hdtv"}},
	})
}

// New copies entries into a taxonomy, folding synonyms and dropping blanks.
func New(entries []Entry) *Taxonomy {
	out := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		synonyms := make([]string, 0, len(entry.Synonyms))
		for _, synonym := range entry.Synonyms {
			if folded := Fold(synonym); folded != "" {
				synonyms = append(synonyms, folded)
			}
		}
		out = append(out, Entry{Category: entry.Category, Synonyms: synonyms})
	}
	return &Taxonomy{entries: out}
}

// Fold trims and case-folds value for comparison.
func Fold(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	return cases.Fold().String(value)
}

// Categories returns the categories in table order.
func (t *Taxonomy) Categories() []Category {
	out := make([]Category, 0, len(t.entries))
	for _, entry := range t.entries {
		out = append(out, entry.Category)
	}
	return out
}

// Entries returns a copy of the table.
func (t *Taxonomy) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	for i, entry := range t.entries {
		out[i] = Entry{Category: entry.Category, Synonyms: append([]string(nil), entry.Synonyms...)}
	}
	return out
}

// Classify returns every category whose synonym equals or is contained in the
// format token. An empty result means the token is unknown.
func (t *Taxonomy) Classify(token string) []Category {
	return t.match(Fold(token))
}

// MatchName returns every category with a synonym appearing inside a release
// name.
func (t *Taxonomy) MatchName(name string) []Category {
	return t.match(Fold(name))
}

// IsKnown reports whether token classifies to at least one category.
func (t *Taxonomy) IsKnown(token string) bool {
	return len(t.Classify(token)) > 0
}

func (t *Taxonomy) match(folded string) []Category {
	if folded == "" {
		return nil
	}
	var found []Category
	for _, entry := range t.entries {
		for _, synonym := range entry.Synonyms {
			if folded == synonym || strings.Contains(folded, synonym) {
				found = append(found, entry.Category)
				break
			}
		}
	}
	return found
}
