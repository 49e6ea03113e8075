// Package charts builds render-ready chart and table configurations from a
// filtered record set. Builders never error: zero rows produce a nil config,
// which the frontend shows as the empty state.
package charts

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/shelfmetrics/bookdash/internal/models"
)

const histogramBuckets = 10

// GenreBar builds a bar chart of book counts per genre from a distribution
// that is already ranked.
func GenreBar(dist []models.GenreCount) *ChartConfig {
	if len(dist) == 0 {
		return nil
	}

	points := make([]ChartPoint, 0, len(dist))
	for _, gc := range dist {
		points = append(points, ChartPoint{Label: gc.Genre, Value: float64(gc.Count)})
	}

	return &ChartConfig{
		ChartType:  "bar",
		Title:      "Books per Genre",
		XAxis:      "Genre",
		YAxis:      "Count",
		Series:     []ChartSeries{{Name: "Books", Data: points}},
		Colors:     assignColors(1),
		ShowLegend: false,
		ShowGrid:   true,
	}
}

// RatingHistogram buckets ratings into fixed 0.5-wide bins over the 0–5
// scale. Bin edges are stable regardless of the data, so the chart shape is
// comparable across filter states.
func RatingHistogram(books []models.Book) *ChartConfig {
	if len(books) == 0 {
		return nil
	}

	counts := make([]int, histogramBuckets)
	for i := range books {
		bucket := int(books[i].Rating / 0.5)
		if bucket >= histogramBuckets {
			bucket = histogramBuckets - 1 // rating exactly 5.0
		}
		counts[bucket]++
	}

	points := make([]ChartPoint, histogramBuckets)
	for i, c := range counts {
		lo := float64(i) * 0.5
		points[i] = ChartPoint{
			Label: fmt.Sprintf("%.1f–%.1f", lo, lo+0.5),
			Value: float64(c),
		}
	}

	return &ChartConfig{
		ChartType:  "histogram",
		Title:      "Rating Distribution",
		XAxis:      "Rating",
		YAxis:      "Count",
		Series:     []ChartSeries{{Name: "Books", Data: points}},
		Colors:     assignColors(1),
		ShowLegend: false,
		ShowGrid:   true,
	}
}

// PriceHistogram buckets prices into a fixed number of equal-width bins over
// the observed range. A set where every price is identical gets a single bin.
func PriceHistogram(books []models.Book) *ChartConfig {
	if len(books) == 0 {
		return nil
	}

	lo, hi := books[0].Price, books[0].Price
	for i := range books {
		if books[i].Price < lo {
			lo = books[i].Price
		}
		if books[i].Price > hi {
			hi = books[i].Price
		}
	}

	var points []ChartPoint
	if hi == lo {
		points = []ChartPoint{{
			Label: fmt.Sprintf("%.2f", lo),
			Value: float64(len(books)),
		}}
	} else {
		width := (hi - lo) / histogramBuckets
		counts := make([]int, histogramBuckets)
		for i := range books {
			bucket := int((books[i].Price - lo) / width)
			if bucket >= histogramBuckets {
				bucket = histogramBuckets - 1 // price exactly at the top edge
			}
			counts[bucket]++
		}
		points = make([]ChartPoint, histogramBuckets)
		for i, c := range counts {
			start := lo + float64(i)*width
			points[i] = ChartPoint{
				Label: fmt.Sprintf("%.2f–%.2f", start, start+width),
				Value: float64(c),
			}
		}
	}

	return &ChartConfig{
		ChartType:  "histogram",
		Title:      "Price Distribution",
		XAxis:      "Price",
		YAxis:      "Count",
		Series:     []ChartSeries{{Name: "Books", Data: points}},
		Colors:     assignColors(1),
		ShowLegend: false,
		ShowGrid:   true,
	}
}

// YearRatingScatter plots rating against publication year, one series per
// genre. Series are ordered by genre first appearance; points within a
// series are sorted by year.
func YearRatingScatter(books []models.Book) *ChartConfig {
	if len(books) == 0 {
		return nil
	}

	pointsByGenre := make(map[string][]ChartPoint)
	var order []string
	for i := range books {
		g := books[i].Genre
		if _, seen := pointsByGenre[g]; !seen {
			order = append(order, g)
		}
		pointsByGenre[g] = append(pointsByGenre[g], ChartPoint{
			Label: strconv.Itoa(books[i].Year()),
			Value: books[i].Rating,
		})
	}

	series := make([]ChartSeries, 0, len(order))
	for i, g := range order {
		points := pointsByGenre[g]
		sort.SliceStable(points, func(a, b int) bool { return points[a].Label < points[b].Label })
		series = append(series, ChartSeries{
			Name:  g,
			Data:  points,
			Color: defaultColors[i%len(defaultColors)],
		})
	}

	return &ChartConfig{
		ChartType:  "scatter",
		Title:      "Rating by Publication Year",
		XAxis:      "Year",
		YAxis:      "Rating",
		Series:     series,
		Colors:     assignColors(len(series)),
		ShowLegend: true,
		ShowGrid:   true,
	}
}

// TopBooksTable lists the highest-rated books, at most limit rows. Sorting
// is stable, so equal ratings keep their source order.
func TopBooksTable(books []models.Book, limit int) *TableData {
	title := fmt.Sprintf("Top %d Books by Rating", limit)
	if len(books) == 0 {
		return &TableData{Title: title, Columns: []Column{}, Rows: [][]string{}}
	}

	ranked := make([]models.Book, len(books))
	copy(ranked, books)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Rating > ranked[j].Rating })
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	columns := []Column{
		{Key: "title", Label: "Title", Type: "text", Align: "left"},
		{Key: "authors", Label: "Authors", Type: "text", Align: "left"},
		{Key: "genre", Label: "Genre", Type: "text", Align: "left"},
		{Key: "rating", Label: "Rating", Type: "number", Align: "right"},
		{Key: "price", Label: "Price", Type: "number", Align: "right"},
		{Key: "pages", Label: "Pages", Type: "number", Align: "right"},
		{Key: "year", Label: "Year", Type: "number", Align: "center"},
	}

	rows := make([][]string, 0, len(ranked))
	var totalPrice float64
	for i := range ranked {
		b := &ranked[i]
		rows = append(rows, []string{
			b.Title,
			b.AuthorLine(),
			b.Genre,
			fmt.Sprintf("%.2f", b.Rating),
			fmt.Sprintf("%.2f", b.Price),
			strconv.Itoa(b.Pages),
			strconv.Itoa(b.Year()),
		})
		totalPrice += b.Price
	}

	return &TableData{
		Title:   title,
		Columns: columns,
		Rows:    rows,
		Summary: &Summary{
			Label: fmt.Sprintf("Total (%d books)", len(ranked)),
			Values: map[string]string{
				"price": fmt.Sprintf("%.2f", math.Round(totalPrice*100)/100),
			},
		},
	}
}
