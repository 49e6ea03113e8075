package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Book represents one record in the enriched dataset. The dataset is loaded
// once at startup and never mutated; every field is validated at load time.
type Book struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Authors     []string  `json:"authors"`
	Rating      float64   `json:"rating"`
	Genre       string    `json:"genre"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Pages       int       `json:"pages"`
	Published   time.Time `json:"published"`

	// Position is the row's zero-based position in the source file. Filtered
	// results are always returned in Position order.
	Position int `json:"-"`
}

// AuthorLine joins the author list for display.
func (b *Book) AuthorLine() string {
	return strings.Join(b.Authors, ", ")
}

// Year returns the publication year.
func (b *Book) Year() int {
	return b.Published.Year()
}

// Filter holds the active filter predicates. The zero value selects the full
// dataset (the "reset filters" state). Predicates are AND-combined.
type Filter struct {
	Genre      string  `json:"genre,omitempty"`
	MinRating  float64 `json:"min_rating,omitempty"`
	MaxPrice   float64 `json:"max_price,omitempty"`
	TitleQuery string  `json:"q,omitempty"`
}

// IsZero reports whether no predicate is active.
func (f Filter) IsZero() bool {
	return f.Genre == "" && f.MinRating == 0 && f.MaxPrice == 0 && f.TitleQuery == ""
}

// Key returns a canonical cache key for the filter. Distinct filters must
// produce distinct keys, so the numeric bounds are encoded exactly rather
// than rounded; the title query is folded to lower case because matching is
// case-insensitive.
func (f Filter) Key() string {
	return fmt.Sprintf("g=%s|r=%s|p=%s|q=%s",
		f.Genre,
		strconv.FormatFloat(f.MinRating, 'g', -1, 64),
		strconv.FormatFloat(f.MaxPrice, 'g', -1, 64),
		strings.ToLower(f.TitleQuery))
}

// Matches reports whether a book satisfies every active predicate.
func (f Filter) Matches(b *Book) bool {
	if f.Genre != "" && b.Genre != f.Genre {
		return false
	}
	if f.MinRating > 0 && b.Rating < f.MinRating {
		return false
	}
	if f.MaxPrice > 0 && b.Price > f.MaxPrice {
		return false
	}
	if f.TitleQuery != "" && !strings.Contains(strings.ToLower(b.Title), strings.ToLower(f.TitleQuery)) {
		return false
	}
	return true
}

// GenreCount is one entry in a genre distribution ranking.
type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

// Bestseller identifies the current top book in a filtered set.
type Bestseller struct {
	Title  string  `json:"title"`
	Author string  `json:"author"`
	Rating float64 `json:"rating"`
}

// Summary holds the KPI values shown on the dashboard, computed from the
// current filtered set. Empty is true when no rows matched; all other fields
// are zero in that case.
type Summary struct {
	Empty         bool         `json:"empty"`
	TotalBooks    int          `json:"total_books"`
	AvgRating     float64      `json:"avg_rating"`
	AvgPrice      float64      `json:"avg_price"`
	TotalPrice    float64      `json:"total_price"`
	AvgPages      float64      `json:"avg_pages"`
	TopGenre      string       `json:"top_genre,omitempty"`
	TopRatedGenre string       `json:"top_rated_genre,omitempty"`
	Bestseller    *Bestseller  `json:"bestseller,omitempty"`
	Genres        []GenreCount `json:"genres,omitempty"`
}
