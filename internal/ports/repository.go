package ports

import (
	"context"
	"time"

	"stockanalyzer/internal/domain"
)

// BarRepository caches raw provider responses so repeated analyses of the
// same (symbol, range) within a freshness window do not re-hit the API.
// Computed indicator results are never persisted, only raw bars.
type BarRepository interface {
	// GetBars returns the cached bars for (symbol, rng) ordered oldest first,
	// together with the time they were fetched from the provider.
	// Returns ErrNotFound (wrapped) when nothing is cached.
	GetBars(ctx context.Context, symbol string, rng domain.Range) ([]domain.Bar, time.Time, error)

	// StoreBars replaces the cached bars for (symbol, rng).
	StoreBars(ctx context.Context, symbol string, rng domain.Range, bars []domain.Bar) error

	// Close releases the underlying storage.
	Close() error
}
