package charts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmetrics/bookdash/internal/models"
)

func fixtureBooks() []models.Book {
	mk := func(pos int, title, genre string, rating, price float64, year int) models.Book {
		return models.Book{
			Position:  pos,
			Title:     title,
			Authors:   []string{"A"},
			Rating:    rating,
			Genre:     genre,
			Price:     price,
			Pages:     100,
			Published: time.Date(year, time.June, 1, 0, 0, 0, 0, time.UTC),
		}
	}
	return []models.Book{
		mk(0, "Alpha", "Fiction", 4.0, 10.00, 2010),
		mk(1, "Beta", "Mystery", 5.0, 20.00, 2012),
		mk(2, "Gamma", "Fiction", 3.0, 6.00, 2014),
		mk(3, "Delta", "Mystery", 5.0, 24.00, 2016),
	}
}

func TestGenreBar(t *testing.T) {
	dist := []models.GenreCount{
		{Genre: "Fiction", Count: 3},
		{Genre: "Mystery", Count: 2},
	}
	cfg := GenreBar(dist)
	require.NotNil(t, cfg)
	assert.Equal(t, "bar", cfg.ChartType)
	require.Len(t, cfg.Series, 1)
	require.Len(t, cfg.Series[0].Data, 2)
	assert.Equal(t, "Fiction", cfg.Series[0].Data[0].Label)
	assert.Equal(t, 3.0, cfg.Series[0].Data[0].Value)

	assert.Nil(t, GenreBar(nil))
}

func TestRatingHistogram(t *testing.T) {
	cfg := RatingHistogram(fixtureBooks())
	require.NotNil(t, cfg)
	require.Len(t, cfg.Series, 1)
	points := cfg.Series[0].Data
	require.Len(t, points, 10)

	var total float64
	for _, p := range points {
		total += p.Value
	}
	assert.Equal(t, 4.0, total, "every book lands in exactly one bucket")

	// Rating 5.0 belongs to the last bucket, not an eleventh one.
	assert.Equal(t, 2.0, points[9].Value)
	// Ratings 4.0 and 3.0 fall on lower bucket edges.
	assert.Equal(t, 1.0, points[8].Value)
	assert.Equal(t, 1.0, points[6].Value)

	assert.Nil(t, RatingHistogram(nil))
}

func TestPriceHistogram(t *testing.T) {
	cfg := PriceHistogram(fixtureBooks())
	require.NotNil(t, cfg)
	points := cfg.Series[0].Data
	require.Len(t, points, 10)

	var total float64
	for _, p := range points {
		total += p.Value
	}
	assert.Equal(t, 4.0, total)
	// The maximum price sits in the last bucket.
	assert.GreaterOrEqual(t, points[9].Value, 1.0)

	assert.Nil(t, PriceHistogram(nil))
}

func TestPriceHistogramUniformPrices(t *testing.T) {
	books := []models.Book{
		{Title: "A", Genre: "Fiction", Price: 9.99, Rating: 4, Pages: 100, Published: time.Now()},
		{Title: "B", Genre: "Fiction", Price: 9.99, Rating: 4, Pages: 100, Published: time.Now()},
	}
	cfg := PriceHistogram(books)
	require.NotNil(t, cfg)
	require.Len(t, cfg.Series[0].Data, 1)
	assert.Equal(t, 2.0, cfg.Series[0].Data[0].Value)
}

func TestYearRatingScatter(t *testing.T) {
	cfg := YearRatingScatter(fixtureBooks())
	require.NotNil(t, cfg)
	assert.Equal(t, "scatter", cfg.ChartType)
	require.Len(t, cfg.Series, 2)
	// Series follow genre first appearance.
	assert.Equal(t, "Fiction", cfg.Series[0].Name)
	assert.Equal(t, "Mystery", cfg.Series[1].Name)
	assert.Len(t, cfg.Series[0].Data, 2)
	// Points are sorted by year within a series.
	assert.Equal(t, "2010", cfg.Series[0].Data[0].Label)
	assert.Equal(t, "2014", cfg.Series[0].Data[1].Label)
	assert.True(t, cfg.ShowLegend)

	assert.Nil(t, YearRatingScatter(nil))
}

func TestTopBooksTable(t *testing.T) {
	table := TopBooksTable(fixtureBooks(), 3)
	require.NotNil(t, table)
	require.Len(t, table.Rows, 3)

	// Highest rating first; the 5.0 tie keeps source order.
	assert.Equal(t, "Beta", table.Rows[0][0])
	assert.Equal(t, "Delta", table.Rows[1][0])
	assert.Equal(t, "Alpha", table.Rows[2][0])

	require.NotNil(t, table.Summary)
	assert.Contains(t, table.Summary.Label, "3 books")
}

func TestTopBooksTableEmpty(t *testing.T) {
	table := TopBooksTable(nil, 20)
	require.NotNil(t, table)
	assert.Empty(t, table.Rows)
	assert.Nil(t, table.Summary)
}

func TestTopBooksTableDoesNotMutateInput(t *testing.T) {
	books := fixtureBooks()
	TopBooksTable(books, 2)
	assert.Equal(t, "Alpha", books[0].Title)
	assert.Equal(t, "Delta", books[3].Title)
}
