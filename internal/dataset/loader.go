// Package dataset loads the prepared book CSV into memory. The file is built
// offline by the enrichment pipeline; at runtime it is read exactly once, at
// startup, and the loaded records are immutable from then on.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shelfmetrics/bookdash/internal/models"
)

// Result holds the outcome of a dataset load.
type Result struct {
	Books   []models.Book
	Skipped int // rows dropped by validation
}

// LoadFile reads and parses the dataset CSV at path.
func LoadFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	res, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}
	return res, nil
}

// Load parses dataset CSV from a reader. Columns are matched by header name,
// so column order does not matter. Rows that fail validation (bad numbers,
// unknown genre, non-English language, missing title or author) are skipped;
// a dataset with no valid rows is an error.
func Load(r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read headers: %w", err)
	}

	cols := make(map[string]int, len(headers))
	for i, h := range headers {
		cols[toSnakeCase(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"title", "authors", "average_rating", "genre", "price", "pages", "publication_date"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("dataset is missing required column %q", required)
		}
	}

	res := &Result{}
	position := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			res.Skipped++
			continue
		}

		book, ok := parseRow(row, cols)
		if !ok {
			res.Skipped++
			continue
		}
		book.ID = uuid.New().String()
		book.Position = position
		position++
		res.Books = append(res.Books, book)
	}

	if len(res.Books) == 0 {
		return nil, fmt.Errorf("dataset contains no valid rows (%d skipped)", res.Skipped)
	}
	return res, nil
}

func parseRow(row []string, cols map[string]int) (models.Book, bool) {
	field := func(key string) string {
		i, ok := cols[key]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	// The upstream pipeline filters to English; rows that slip through with
	// another language tag are dropped here.
	if lang := field("language"); lang != "" && !strings.HasPrefix(strings.ToLower(lang), "en") {
		return models.Book{}, false
	}

	title := field("title")
	if title == "" {
		return models.Book{}, false
	}

	authors := splitAuthors(field("authors"))
	if len(authors) == 0 {
		return models.Book{}, false
	}

	rating, err := strconv.ParseFloat(field("average_rating"), 64)
	if err != nil || rating < 0 || rating > 5 {
		return models.Book{}, false
	}

	genre, ok := NormalizeGenre(field("genre"))
	if !ok {
		return models.Book{}, false
	}

	price, err := strconv.ParseFloat(field("price"), 64)
	if err != nil || price < 0 {
		return models.Book{}, false
	}

	pages, err := strconv.Atoi(field("pages"))
	if err != nil || pages < 1 {
		return models.Book{}, false
	}

	published, err := parseDate(field("publication_date"))
	if err != nil {
		return models.Book{}, false
	}

	return models.Book{
		Title:       title,
		Authors:     authors,
		Rating:      rating,
		Genre:       genre,
		Description: field("description"),
		Price:       price,
		Pages:       pages,
		Published:   published,
	}, true
}

// splitAuthors splits a multi-author field on semicolons, dropping blanks.
func splitAuthors(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseDate accepts a full date or a bare publication year.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if year, err := strconv.Atoi(s); err == nil && year > 0 {
		return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

// toSnakeCase converts "Publication Date" to "publication_date".
func toSnakeCase(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}
