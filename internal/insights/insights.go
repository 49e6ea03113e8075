// Package insights derives the dashboard's KPI values from a filtered record
// set. Everything here is a pure single-pass reduction: no state, no I/O, and
// a well-defined empty result for zero rows.
package insights

import (
	"math"
	"sort"

	"github.com/shelfmetrics/bookdash/internal/models"
)

// Summarize computes the Summary for a set of books. The input must be in
// source order; all tie-breaks resolve to the earlier row or the earlier
// first appearance, which makes repeated runs over unchanged data
// deterministic.
func Summarize(books []models.Book) models.Summary {
	if len(books) == 0 {
		return models.Summary{Empty: true}
	}

	var totalRating, totalPrice float64
	var totalPages int
	for i := range books {
		totalRating += books[i].Rating
		totalPrice += books[i].Price
		totalPages += books[i].Pages
	}

	n := float64(len(books))
	genres := GenreDistribution(books)

	summary := models.Summary{
		TotalBooks:    len(books),
		AvgRating:     roundTo2(totalRating / n),
		AvgPrice:      roundTo2(totalPrice / n),
		TotalPrice:    roundTo2(totalPrice),
		AvgPages:      roundTo2(float64(totalPages) / n),
		TopGenre:      genres[0].Genre,
		TopRatedGenre: TopRatedGenre(books),
		Genres:        genres,
	}

	if best := BestsellerOf(books); best != nil {
		summary.Bestseller = best
	}
	return summary
}

// GenreDistribution counts books per genre, descending. Ties keep the genre
// that appeared first in the input.
func GenreDistribution(books []models.Book) []models.GenreCount {
	counts := make(map[string]int)
	var order []string
	for i := range books {
		g := books[i].Genre
		if _, seen := counts[g]; !seen {
			order = append(order, g)
		}
		counts[g]++
	}

	dist := make([]models.GenreCount, 0, len(order))
	for _, g := range order {
		dist = append(dist, models.GenreCount{Genre: g, Count: counts[g]})
	}
	sort.SliceStable(dist, func(i, j int) bool { return dist[i].Count > dist[j].Count })
	return dist
}

// TopRatedGenre returns the genre with the highest mean rating. Ties keep
// the genre that appeared first in the input.
func TopRatedGenre(books []models.Book) string {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	var order []string
	for i := range books {
		g := books[i].Genre
		if _, seen := counts[g]; !seen {
			order = append(order, g)
		}
		sums[g] += books[i].Rating
		counts[g]++
	}

	var top string
	best := math.Inf(-1)
	for _, g := range order {
		avg := sums[g] / float64(counts[g])
		if avg > best {
			best = avg
			top = g
		}
	}
	return top
}

// BestsellerOf returns the highest-rated book. Ties keep the earlier row.
// Returns nil for an empty input.
func BestsellerOf(books []models.Book) *models.Bestseller {
	if len(books) == 0 {
		return nil
	}

	top := &books[0]
	for i := 1; i < len(books); i++ {
		if books[i].Rating > top.Rating {
			top = &books[i]
		}
	}
	return &models.Bestseller{
		Title:  top.Title,
		Author: top.AuthorLine(),
		Rating: top.Rating,
	}
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
