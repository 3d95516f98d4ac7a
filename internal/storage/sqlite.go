package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hyperjump/kasane/internal/models"
)

// SQLiteStorage implements Storage using SQLite.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage opens or creates a SQLite database at dbPath and initializes
// the schema. Parent directories are created if they do not exist.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS papers (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		authors TEXT,
		link TEXT,
		year INTEGER,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_papers_year ON papers(year);
	CREATE INDEX IF NOT EXISTS idx_papers_created_at ON papers(created_at);
	`
	_, err := db.Exec(schema)
	return err
}

// InsertPapers inserts papers in a single transaction and returns the count
// inserted. Papers with an already-used ID are skipped, not fatal.
func (s *SQLiteStorage) InsertPapers(ctx context.Context, papers []*models.Paper) (int, error) {
	if len(papers) == 0 {
		return 0, nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO papers (id, title, authors, link, year, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	now := time.Now()
	inserted := 0
	for _, paper := range papers {
		authorsJSON, err := json.Marshal(paper.Authors)
		if err != nil {
			return inserted, fmt.Errorf("failed to marshal authors: %w", err)
		}
		paper.CreatedAt = now
		res, err := stmt.ExecContext(ctx, paper.ID, paper.Title, string(authorsJSON), paper.Link, paper.Year, paper.CreatedAt)
		if err != nil {
			return inserted, err
		}
		if n, _ := res.RowsAffected(); n > 0 {
			inserted++
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

// GetPaper returns a paper by ID.
func (s *SQLiteStorage) GetPaper(ctx context.Context, id string) (*models.Paper, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, authors, link, year, created_at FROM papers WHERE id = ?`, id)
	paper, err := scanPaper(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("paper not found: %s", id)
	}
	return paper, err
}

// ListPapers returns papers with offset and limit in insertion order.
func (s *SQLiteStorage) ListPapers(ctx context.Context, offset, limit int) ([]*models.Paper, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, authors, link, year, created_at
		 FROM papers ORDER BY rowid LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPapers(rows)
}

// AllPapers returns every paper in insertion order.
func (s *SQLiteStorage) AllPapers(ctx context.Context) ([]*models.Paper, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, authors, link, year, created_at FROM papers ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPapers(rows)
}

// CountPapers returns the total number of papers.
func (s *SQLiteStorage) CountPapers(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM papers`).Scan(&count)
	return count, err
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPaper(row rowScanner) (*models.Paper, error) {
	var paper models.Paper
	var authorsJSON sql.NullString
	if err := row.Scan(&paper.ID, &paper.Title, &authorsJSON, &paper.Link, &paper.Year, &paper.CreatedAt); err != nil {
		return nil, err
	}
	if authorsJSON.Valid && authorsJSON.String != "" {
		if err := json.Unmarshal([]byte(authorsJSON.String), &paper.Authors); err != nil {
			return nil, fmt.Errorf("failed to unmarshal authors: %w", err)
		}
	}
	return &paper, nil
}

func scanPapers(rows *sql.Rows) ([]*models.Paper, error) {
	var papers []*models.Paper
	for rows.Next() {
		paper, err := scanPaper(rows)
		if err != nil {
			return nil, err
		}
		papers = append(papers, paper)
	}
	return papers, rows.Err()
}
