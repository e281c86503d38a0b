package ports

import (
	"context"

	"stockanalyzer/internal/domain"
)

// MarketDataProvider defines the interface for retrieving historical bars and
// quote snapshots from a market data source. This abstraction decouples the
// analyzer from any specific provider (Yahoo Finance, Binance, ...); the
// engine only requires a well-formed bar series.
type MarketDataProvider interface {
	// GetBars retrieves daily OHLCV bars for the symbol covering the given
	// range, ordered oldest first. Returns ErrSymbolNotFound (wrapped) when
	// the provider has no data for the symbol.
	GetBars(ctx context.Context, symbol string, rng domain.Range) ([]domain.Bar, error)

	// GetQuote retrieves the current quote snapshot and instrument metadata.
	GetQuote(ctx context.Context, symbol string) (*domain.Quote, error)
}
