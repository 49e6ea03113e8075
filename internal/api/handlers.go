package api

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/shelfmetrics/bookdash/internal/charts"
	"github.com/shelfmetrics/bookdash/internal/dataset"
	"github.com/shelfmetrics/bookdash/internal/insights"
	"github.com/shelfmetrics/bookdash/internal/metrics"
	"github.com/shelfmetrics/bookdash/internal/models"
	"github.com/shelfmetrics/bookdash/internal/storage"
)

// DashboardCharts groups the chart configs the page renders. A nil config
// means the filtered set was empty.
type DashboardCharts struct {
	GenreBar        *charts.ChartConfig `json:"genre_bar"`
	RatingHistogram *charts.ChartConfig `json:"rating_histogram"`
	PriceHistogram  *charts.ChartConfig `json:"price_histogram"`
	YearScatter     *charts.ChartConfig `json:"year_scatter"`
}

// DashboardState is the one-shot payload the page fetches on every widget
// change. It is immutable once computed, which is what makes it cacheable.
type DashboardState struct {
	Filter   models.Filter     `json:"filter"`
	Count    int               `json:"count"`
	Summary  models.Summary    `json:"summary"`
	Charts   DashboardCharts   `json:"charts"`
	TopBooks *charts.TableData `json:"top_books"`
}

// Handler contains all HTTP handlers.
type Handler struct {
	db       *storage.Database
	metrics  *metrics.Metrics
	cache    *lru.Cache[string, *DashboardState]
	topBooks int
}

// NewHandler creates a new handler instance. cacheSize bounds the number of
// memoized dashboard states; entries stay valid for the process lifetime
// because the dataset never changes.
func NewHandler(db *storage.Database, m *metrics.Metrics, cacheSize, topBooks int) (*Handler, error) {
	cache, err := lru.New[string, *DashboardState](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create dashboard cache: %w", err)
	}
	return &Handler{
		db:       db,
		metrics:  m,
		cache:    cache,
		topBooks: topBooks,
	}, nil
}

// HealthCheck reports server status and dataset size.
func (h *Handler) HealthCheck(c *gin.Context) {
	count, err := h.db.CountBooks()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "books": count})
}

// APIInfo lists the available endpoints.
func (h *Handler) APIInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name": "bookdash",
		"endpoints": gin.H{
			"GET /api/books":     "filtered book list (params: genre, min_rating, max_price, q)",
			"GET /api/genres":    "genres present in the dataset",
			"GET /api/dashboard": "filter + KPIs + charts + top books in one call",
			"GET /api/export":    "filtered books as CSV download",
		},
	})
}

// ListBooks returns the filtered record set in source order.
func (h *Handler) ListBooks(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	books, err := h.db.FilterBooks(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query books"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(books), "books": books})
}

// GetGenres returns the genres present in the dataset, alphabetically.
func (h *Handler) GetGenres(c *gin.Context) {
	genres, err := h.db.Genres()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query genres"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"genres": genres})
}

// GetDashboard returns the full dashboard state for the requested filter.
// Absent params mean "reset": the state is computed over the whole dataset.
func (h *Handler) GetDashboard(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := h.dashboardState(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute dashboard"})
		return
	}

	c.JSON(http.StatusOK, state)
}

// ExportCSV streams the filtered record set as a CSV attachment.
func (h *Handler) ExportCSV(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	books, err := h.db.FilterBooks(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query books"})
		return
	}

	filename := "books.csv"
	if !filter.IsZero() {
		filename = "books-filtered.csv"
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := dataset.WriteCSV(c.Writer, books); err != nil {
		// Headers are already out; nothing useful left to send.
		c.Abort()
	}
}

// dashboardState returns the memoized state for a filter, computing it on a
// cache miss.
func (h *Handler) dashboardState(filter models.Filter) (*DashboardState, error) {
	key := filter.Key()
	if state, ok := h.cache.Get(key); ok {
		h.metrics.IncCacheHit()
		return state, nil
	}
	h.metrics.IncCacheMiss()

	books, err := h.db.FilterBooks(filter)
	if err != nil {
		return nil, err
	}

	summary := insights.Summarize(books)
	state := &DashboardState{
		Filter:  filter,
		Count:   len(books),
		Summary: summary,
		Charts: DashboardCharts{
			GenreBar:        charts.GenreBar(summary.Genres),
			RatingHistogram: charts.RatingHistogram(books),
			PriceHistogram:  charts.PriceHistogram(books),
			YearScatter:     charts.YearRatingScatter(books),
		},
		TopBooks: charts.TopBooksTable(books, h.topBooks),
	}
	h.metrics.IncCompute()

	h.cache.Add(key, state)
	return state, nil
}

// parseFilter reads filter predicates from query params. Unparseable or
// out-of-range values are rejected; absent params leave the predicate off.
func parseFilter(c *gin.Context) (models.Filter, error) {
	var filter models.Filter

	if genre := strings.TrimSpace(c.Query("genre")); genre != "" {
		canonical, ok := dataset.NormalizeGenre(genre)
		if !ok {
			known := dataset.Genres()
			sort.Strings(known)
			return filter, fmt.Errorf("unknown genre %q (known: %s)", genre, strings.Join(known, ", "))
		}
		filter.Genre = canonical
	}

	if raw := c.Query("min_rating"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filter, fmt.Errorf("invalid min_rating %q", raw)
		}
		if v < 0 || v > 5 {
			return filter, fmt.Errorf("min_rating must be between 0 and 5")
		}
		filter.MinRating = v
	}

	if raw := c.Query("max_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filter, fmt.Errorf("invalid max_price %q", raw)
		}
		if v < 0 {
			return filter, fmt.Errorf("max_price cannot be negative")
		}
		filter.MaxPrice = v
	}

	filter.TitleQuery = strings.TrimSpace(c.Query("q"))

	return filter, nil
}
