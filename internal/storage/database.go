package storage

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/shelfmetrics/bookdash/internal/models"
)

// Database holds the dataset in an in-memory SQLite table. It is populated
// once at startup and read-only afterwards; there are no update or delete
// statements anywhere in this package.
type Database struct {
	db *sql.DB
}

// NewDatabase creates and initializes the in-memory database.
func NewDatabase() (*Database, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, err
	}
	// A second pool connection would see its own empty :memory: database.
	db.SetMaxOpenConns(1)

	d := &Database{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

func (d *Database) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS books (
		id TEXT PRIMARY KEY,
		position INTEGER NOT NULL UNIQUE,
		title TEXT NOT NULL,
		title_lower TEXT NOT NULL,
		authors TEXT NOT NULL,
		rating REAL NOT NULL,
		genre TEXT NOT NULL,
		description TEXT DEFAULT '',
		price REAL NOT NULL,
		pages INTEGER NOT NULL,
		published DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_books_genre ON books(genre);
	CREATE INDEX IF NOT EXISTS idx_books_rating ON books(rating);
	CREATE INDEX IF NOT EXISTS idx_books_price ON books(price);
	`

	_, err := d.db.Exec(schema)
	return err
}

// LoadBooks bulk-inserts the dataset inside a single transaction. It is
// called exactly once, before the server starts accepting requests.
func (d *Database) LoadBooks(books []models.Book) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO books (id, position, title, title_lower, authors, rating, genre, description, price, pages, published)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for i := range books {
		b := &books[i]
		// Lower-cased in Go, not SQL: sqlite's lower() folds ASCII only.
		_, err := stmt.Exec(b.ID, b.Position, b.Title, strings.ToLower(b.Title),
			strings.Join(b.Authors, "; "),
			b.Rating, b.Genre, b.Description, b.Price, b.Pages, b.Published)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("insert book %q: %w", b.Title, err)
		}
	}

	return tx.Commit()
}

// FilterBooks returns the books matching every active predicate, in source
// order. A zero filter returns the full dataset; no matches returns an empty
// slice, not an error.
func (d *Database) FilterBooks(filter models.Filter) ([]models.Book, error) {
	query := `
		SELECT id, position, title, authors, rating, genre, description, price, pages, published
		FROM books WHERE 1=1`
	var args []interface{}

	if filter.Genre != "" {
		query += " AND genre = ?"
		args = append(args, filter.Genre)
	}
	if filter.MinRating > 0 {
		query += " AND rating >= ?"
		args = append(args, filter.MinRating)
	}
	if filter.MaxPrice > 0 {
		query += " AND price <= ?"
		args = append(args, filter.MaxPrice)
	}
	if filter.TitleQuery != "" {
		query += " AND instr(title_lower, ?) > 0"
		args = append(args, strings.ToLower(filter.TitleQuery))
	}

	query += " ORDER BY position"

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := []models.Book{}
	for rows.Next() {
		var b models.Book
		var authors string
		if err := rows.Scan(&b.ID, &b.Position, &b.Title, &authors, &b.Rating,
			&b.Genre, &b.Description, &b.Price, &b.Pages, &b.Published); err != nil {
			return nil, err
		}
		b.Authors = splitAuthors(authors)
		books = append(books, b)
	}
	return books, rows.Err()
}

// AllBooks returns the full dataset in source order.
func (d *Database) AllBooks() ([]models.Book, error) {
	return d.FilterBooks(models.Filter{})
}

// Genres returns the distinct genres present in the dataset, alphabetically.
func (d *Database) Genres() ([]string, error) {
	rows, err := d.db.Query(`SELECT DISTINCT genre FROM books ORDER BY genre`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	genres := []string{}
	for rows.Next() {
		var g string
		if err := rows.Scan(&g); err != nil {
			return nil, err
		}
		genres = append(genres, g)
	}
	return genres, rows.Err()
}

// CountBooks returns the dataset size.
func (d *Database) CountBooks() (int, error) {
	var n int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM books`).Scan(&n)
	return n, err
}

// Close closes the database connection.
func (d *Database) Close() error {
	return d.db.Close()
}

func splitAuthors(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
