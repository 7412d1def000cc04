package sheet

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLite is a Backend over a SQLite database. The grid is stored one row
// per record, cells JSON-encoded, keyed by position, so the table keeps
// the same shape and semantics as a sheet: read everything, replace
// everything.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (or creates) a SQLite database at dbPath. Use
// ":memory:" for an in-memory database.
func NewSQLite(dbPath string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite: %v", ErrUnavailable, err)
	}

	// WAL mode keeps readers from blocking the overwrite transaction.
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%w: exec %s: %v", ErrUnavailable, pragma, err)
		}
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS sheet_rows (
		pos   INTEGER PRIMARY KEY,
		cells TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: create sheet_rows: %v", ErrUnavailable, err)
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) Read(ctx context.Context) ([][]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT cells FROM sheet_rows ORDER BY pos`)
	if err != nil {
		return nil, fmt.Errorf("%w: query sheet_rows: %v", ErrUnavailable, err)
	}
	defer rows.Close()

	var grid [][]string
	for rows.Next() {
		var cellsJSON string
		if err := rows.Scan(&cellsJSON); err != nil {
			return nil, fmt.Errorf("%w: scan row: %v", ErrUnavailable, err)
		}
		var cells []string
		if err := json.Unmarshal([]byte(cellsJSON), &cells); err != nil {
			return nil, fmt.Errorf("%w: decode row: %v", ErrUnavailable, err)
		}
		grid = append(grid, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate sheet_rows: %v", ErrUnavailable, err)
	}
	return grid, nil
}

func (s *SQLite) Write(ctx context.Context, grid [][]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", ErrUnavailable, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM sheet_rows`); err != nil {
		return fmt.Errorf("%w: clear sheet_rows: %v", ErrUnavailable, err)
	}
	for pos, cells := range grid {
		cellsJSON, err := json.Marshal(cells)
		if err != nil {
			return fmt.Errorf("%w: encode row %d: %v", ErrUnavailable, pos, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO sheet_rows (pos, cells) VALUES (?, ?)`,
			pos, string(cellsJSON)); err != nil {
			return fmt.Errorf("%w: insert row %d: %v", ErrUnavailable, pos, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", ErrUnavailable, err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}
