package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shelfmetrics/bookdash/internal/models"
)

// exportHeader is the column order for CSV export, matching the prepared
// dataset's layout so an exported file round-trips through Load.
var exportHeader = []string{
	"title", "authors", "average_rating", "genre", "description",
	"price", "pages", "publication_date",
}

// WriteCSV writes books as CSV in load order. A zero-row input produces a
// header-only file, not an error.
func WriteCSV(w io.Writer, books []models.Book) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i := range books {
		b := &books[i]
		row := []string{
			b.Title,
			strings.Join(b.Authors, "; "),
			strconv.FormatFloat(b.Rating, 'f', 2, 64),
			b.Genre,
			b.Description,
			strconv.FormatFloat(b.Price, 'f', 2, 64),
			strconv.Itoa(b.Pages),
			b.Published.Format("2006-01-02"),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
