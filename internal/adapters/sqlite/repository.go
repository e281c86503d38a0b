package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"stockanalyzer/internal/domain"
	"stockanalyzer/internal/ports"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Repository implements the ports.BarRepository interface using SQLite.
// It caches raw provider bars per (symbol, range) together with the fetch
// time, so the service can enforce a freshness window without re-hitting the
// provider. Computed indicator results are never stored.
type Repository struct {
	db     *sql.DB
	logger ports.Logger
}

// Config holds configuration for the SQLite repository.
type Config struct {
	DBPath string
	Logger ports.Logger
}

// NewRepository creates a new SQLite repository instance.
func NewRepository(cfg Config) (*Repository, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for SQLite repository")
	}
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = "./data/stockanalyzer.db"
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		err = fmt.Errorf("failed to create data directory '%s': %w", filepath.Dir(dbPath), err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		err = fmt.Errorf("failed to open database at '%s': %v: %w", dbPath, err, ports.ErrDBConnection)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		err = fmt.Errorf("failed to ping database at '%s': %v: %w", dbPath, err, ports.ErrDBConnection)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	// SQLite handles concurrency internally; the Go driver benefits from a
	// single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	repo := &Repository{db: db, logger: cfg.Logger}
	if err := repo.initializeSchema(context.Background()); err != nil {
		db.Close()
		err = fmt.Errorf("failed to initialize database schema: %w", err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	cfg.Logger.Info(context.Background(), "SQLite bar cache ready", map[string]interface{}{"path": dbPath})
	return repo, nil
}

func (r *Repository) initializeSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS bars (
		symbol TEXT NOT NULL,
		time_range TEXT NOT NULL,
		ts TIMESTAMP NOT NULL,
		open REAL NOT NULL,
		high REAL NOT NULL,
		low REAL NOT NULL,
		close REAL NOT NULL,
		volume REAL NOT NULL,
		fetched_at TIMESTAMP NOT NULL,
		PRIMARY KEY (symbol, time_range, ts)
	);
	CREATE INDEX IF NOT EXISTS idx_bars_symbol_range ON bars (symbol, time_range);
	`
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to execute schema initialization: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	if r.db != nil {
		r.logger.Info(context.Background(), "Closing SQLite database connection")
		return r.db.Close()
	}
	return nil
}

// GetBars returns the cached bars for (symbol, rng) ordered oldest first,
// with the time they were fetched from the provider.
func (r *Repository) GetBars(ctx context.Context, symbol string, rng domain.Range) ([]domain.Bar, time.Time, error) {
	const query = `
	SELECT ts, open, high, low, close, volume, fetched_at
	FROM bars
	WHERE symbol = ? AND time_range = ?
	ORDER BY ts ASC`

	rows, err := r.db.QueryContext(ctx, query, symbol, string(rng))
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to query cached bars for %s/%s: %v: %w", symbol, rng, err, ports.ErrQueryFailed)
	}
	defer rows.Close()

	var bars []domain.Bar
	var fetchedAt time.Time
	for rows.Next() {
		var b domain.Bar
		if err := rows.Scan(&b.Timestamp, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume, &fetchedAt); err != nil {
			return nil, time.Time{}, fmt.Errorf("failed to scan cached bar for %s/%s: %v: %w", symbol, rng, err, ports.ErrQueryFailed)
		}
		bars = append(bars, b)
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to iterate cached bars for %s/%s: %v: %w", symbol, rng, err, ports.ErrQueryFailed)
	}
	if len(bars) == 0 {
		return nil, time.Time{}, fmt.Errorf("no cached bars for %s/%s: %w", symbol, rng, ports.ErrNotFound)
	}

	r.logger.Debug(ctx, "Bar cache hit", map[string]interface{}{"symbol": symbol, "range": string(rng), "count": len(bars)})
	return bars, fetchedAt, nil
}

// StoreBars replaces the cached bars for (symbol, rng) in one transaction.
func (r *Repository) StoreBars(ctx context.Context, symbol string, rng domain.Range, bars []domain.Bar) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v: %w", err, ports.ErrUpdateFailed)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM bars WHERE symbol = ? AND time_range = ?`, symbol, string(rng)); err != nil {
		return fmt.Errorf("failed to clear cached bars for %s/%s: %v: %w", symbol, rng, err, ports.ErrUpdateFailed)
	}

	const insert = `
	INSERT INTO bars (symbol, time_range, ts, open, high, low, close, volume, fetched_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	fetchedAt := time.Now().UTC()
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %v: %w", err, ports.ErrUpdateFailed)
	}
	defer stmt.Close()

	for _, b := range bars {
		if _, err := stmt.ExecContext(ctx, symbol, string(rng), b.Timestamp, b.Open, b.High, b.Low, b.Close, b.Volume, fetchedAt); err != nil {
			return fmt.Errorf("failed to insert bar for %s/%s: %v: %w", symbol, rng, err, ports.ErrUpdateFailed)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit bar cache for %s/%s: %v: %w", symbol, rng, err, ports.ErrUpdateFailed)
	}

	r.logger.Debug(ctx, "Bar cache updated", map[string]interface{}{"symbol": symbol, "range": string(rng), "count": len(bars)})
	return nil
}
