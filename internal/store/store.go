// Package store holds the draws of the current session in an in-memory SQLite database.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/verte-zerg/jackpot/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for the fetched draws.
type Store struct {
	db *sql.DB
}

// OpenMemory opens an empty in-memory database. Nothing is written to disk.
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, err
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS draws (
			seq INTEGER PRIMARY KEY,
			draw_date TEXT NOT NULL,
			year TEXT NOT NULL,
			month TEXT NOT NULL,
			main TEXT NOT NULL,
			stars TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_draws_year_month ON draws(year, month);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// ReplaceDraws swaps the held draws for a freshly fetched set, keeping fetch order.
func (s *Store) ReplaceDraws(ctx context.Context, draws []model.Draw) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM draws`); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO draws (seq, draw_date, year, month, main, stars) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()
	for i, d := range draws {
		if _, err = stmt.ExecContext(ctx, i, d.Date, d.Year(), d.Month(), joinInts(d.Main), joinInts(d.Stars)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Count returns the number of held draws.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM draws`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// ListYears returns the distinct draw years, most recent first.
func (s *Store) ListYears(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT year FROM draws ORDER BY year DESC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var years []string
	for rows.Next() {
		var year string
		if err := rows.Scan(&year); err != nil {
			return nil, err
		}
		years = append(years, year)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return years, nil
}

// ListDraws returns the draws matching the filter in fetch order.
func (s *Store) ListDraws(ctx context.Context, filter model.Filter) ([]model.Draw, error) {
	clauses := []string{"year = ?"}
	args := []any{filter.Year}
	if !filter.AllMonths() {
		clauses = append(clauses, "month = ?")
		args = append(args, filter.Month)
	}
	query := fmt.Sprintf(`SELECT draw_date, main, stars
		FROM draws
		WHERE %s
		ORDER BY seq ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var draws []model.Draw
	for rows.Next() {
		var d model.Draw
		var main, stars string
		if err := rows.Scan(&d.Date, &main, &stars); err != nil {
			return nil, err
		}
		if d.Main, err = splitInts(main); err != nil {
			return nil, fmt.Errorf("draw %s: %w", d.Date, err)
		}
		if d.Stars, err = splitInts(stars); err != nil {
			return nil, fmt.Errorf("draw %s: %w", d.Date, err)
		}
		draws = append(draws, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return draws, nil
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func splitInts(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", p, err)
		}
		out[i] = v
	}
	return out, nil
}
