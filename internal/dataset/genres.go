package dataset

import "strings"

// Canonical genres in the enriched dataset. Rows whose genre cannot be
// normalized into this set are skipped at load.
var canonicalGenres = map[string]bool{
	"Fiction":         true,
	"Science Fiction": true,
	"Fantasy":         true,
	"Mystery":         true,
	"Romance":         true,
	"History":         true,
	"Biography":       true,
	"Nonfiction":      true,
	"Self-Help":       true,
	"Children":        true,
}

// genreAliases maps raw metadata strings (lower-cased) to canonical genres.
// The enrichment source is inconsistent about naming; this list grew out of
// the strings it actually emits.
var genreAliases = map[string]string{
	"sci-fi":               "Science Fiction",
	"scifi":                "Science Fiction",
	"science-fiction":      "Science Fiction",
	"speculative fiction":  "Science Fiction",
	"literary fiction":     "Fiction",
	"novel":                "Fiction",
	"general fiction":      "Fiction",
	"thriller":             "Mystery",
	"crime":                "Mystery",
	"detective":            "Mystery",
	"non-fiction":          "Nonfiction",
	"non fiction":          "Nonfiction",
	"memoir":               "Biography",
	"autobiography":        "Biography",
	"historical":           "History",
	"self help":            "Self-Help",
	"personal development": "Self-Help",
	"kids":                 "Children",
	"juvenile":             "Children",
	"children's":           "Children",
	"ya":                   "Fantasy",
}

// NormalizeGenre maps a raw genre string to its canonical form. The second
// return value is false when the string cannot be mapped.
func NormalizeGenre(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	if canonicalGenres[raw] {
		return raw, true
	}
	lower := strings.ToLower(raw)
	// Raw value may be canonical modulo case.
	for g := range canonicalGenres {
		if strings.ToLower(g) == lower {
			return g, true
		}
	}
	if mapped, ok := genreAliases[lower]; ok {
		return mapped, true
	}
	return "", false
}

// Genres returns the canonical genre set in no particular order.
func Genres() []string {
	out := make([]string, 0, len(canonicalGenres))
	for g := range canonicalGenres {
		out = append(out, g)
	}
	return out
}
