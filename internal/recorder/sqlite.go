package recorder

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"PriceBoard/internal/model"
	"PriceBoard/pkg/logger"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder stores price history in a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.Info("sqlite recorder opened", logger.String("path", dbPath))
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS price_samples (
			resource   TEXT NOT NULL,
			date       TEXT NOT NULL,
			price      TEXT NOT NULL,
			fetched_at INTEGER NOT NULL,
			PRIMARY KEY (resource, date)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_samples_fetched ON price_samples(fetched_at)`,
	}
	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) SaveHistory(ctx context.Context, resource string, samples []model.PriceSample) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM price_samples WHERE resource = ?`, resource); err != nil {
		return fmt.Errorf("clear %s: %w", resource, err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO price_samples
		(resource, date, price, fetched_at) VALUES (?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for _, s := range samples {
		if _, err := stmt.ExecContext(ctx, resource, s.Date, s.Price.String(), now); err != nil {
			return fmt.Errorf("insert %s %s: %w", resource, s.Date, err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) LoadHistory(ctx context.Context, resource string) ([]model.PriceSample, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT date, price FROM price_samples WHERE resource = ? ORDER BY date`, resource)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", resource, err)
	}
	defer rows.Close()

	var out []model.PriceSample
	for rows.Next() {
		var date, price string
		if err := rows.Scan(&date, &price); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		d, err := decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("parse stored price %q: %w", price, err)
		}
		out = append(out, model.PriceSample{Date: date, Price: d})
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	logger.Info("closing sqlite recorder")
	return r.db.Close()
}
