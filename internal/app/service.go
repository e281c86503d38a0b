package app

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"stockanalyzer/config"
	"stockanalyzer/internal/domain"
	"stockanalyzer/internal/indicators"
	"stockanalyzer/internal/ports"
)

// Symbols are alphanumeric with optional dots or hyphens (e.g. BRK.B, BTC-USD).
var symbolPattern = regexp.MustCompile(`^[A-Za-z0-9.\-]+$`)

// Report is the outcome of one analysis request: the quote snapshot, the bar
// series and the per-indicator results aligned to it.
type Report struct {
	Symbol      string
	Range       domain.Range
	Quote       *domain.Quote
	Series      *domain.Series
	Results     map[string]indicators.Result
	FromCache   bool
	GeneratedAt time.Time
}

// AnalysisService orchestrates one analysis request: validate the symbol,
// load bars (cache first), build the series and run the indicator pipeline.
// The service holds no per-request state and is safe for repeated use.
type AnalysisService struct {
	cfg      *config.Config
	logger   ports.Logger
	provider ports.MarketDataProvider
	repo     ports.BarRepository // nil disables the bar cache
}

// NewAnalysisService creates a new application service instance. The
// repository is optional; without it every request hits the provider.
func NewAnalysisService(cfg *config.Config, logger ports.Logger, provider ports.MarketDataProvider, repo ports.BarRepository) (*AnalysisService, error) {
	if cfg == nil || logger == nil || provider == nil {
		return nil, fmt.Errorf("missing required dependencies for AnalysisService")
	}
	return &AnalysisService{cfg: cfg, logger: logger, provider: provider, repo: repo}, nil
}

// Analyze runs the full flow for one symbol and range.
func (s *AnalysisService) Analyze(ctx context.Context, symbol string, rng domain.Range) (*Report, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if !symbolPattern.MatchString(symbol) {
		return nil, fmt.Errorf("invalid symbol %q: %w", symbol, ports.ErrInvalidRequest)
	}

	bars, fromCache, err := s.loadBars(ctx, symbol, rng)
	if err != nil {
		return nil, err
	}

	series, err := domain.NewSeries(symbol, bars)
	if err != nil {
		s.logger.Error(ctx, err, "Provider returned a malformed series", map[string]interface{}{"symbol": symbol})
		return nil, err
	}

	// Quote failure degrades the report header, it does not kill the analysis.
	quote, err := s.provider.GetQuote(ctx, symbol)
	if err != nil {
		s.logger.Warn(ctx, "Quote unavailable, continuing without it", map[string]interface{}{"symbol": symbol, "reason": err.Error()})
		quote = nil
	}

	results := indicators.Run(series, s.cfg.IndicatorConfig())
	for name, res := range results {
		if res.Status == indicators.StatusInvalidConfiguration {
			s.logger.Warn(ctx, "Indicator configuration rejected", map[string]interface{}{"indicator": name, "reason": res.Err.Error()})
		}
	}

	s.logger.Info(ctx, "Analysis complete", map[string]interface{}{
		"symbol":     symbol,
		"range":      string(rng),
		"bars":       series.Len(),
		"indicators": len(results),
		"fromCache":  fromCache,
	})

	return &Report{
		Symbol:      symbol,
		Range:       rng,
		Quote:       quote,
		Series:      series,
		Results:     results,
		FromCache:   fromCache,
		GeneratedAt: time.Now().UTC(),
	}, nil
}

// loadBars serves from the cache while it is fresh, otherwise fetches from
// the provider and refreshes the cache.
func (s *AnalysisService) loadBars(ctx context.Context, symbol string, rng domain.Range) ([]domain.Bar, bool, error) {
	if s.repo != nil {
		cached, fetchedAt, err := s.repo.GetBars(ctx, symbol, rng)
		switch {
		case err == nil && time.Since(fetchedAt) <= s.cacheTTL():
			s.logger.Debug(ctx, "Serving bars from cache", map[string]interface{}{"symbol": symbol, "range": string(rng), "count": len(cached)})
			return cached, true, nil
		case err != nil && !errors.Is(err, ports.ErrNotFound):
			s.logger.Warn(ctx, "Bar cache lookup failed, fetching from provider", map[string]interface{}{"symbol": symbol, "reason": err.Error()})
		}
	}

	bars, err := s.provider.GetBars(ctx, symbol, rng)
	if err != nil {
		return nil, false, fmt.Errorf("failed to retrieve bars for %s: %w", symbol, err)
	}

	if s.repo != nil {
		if err := s.repo.StoreBars(ctx, symbol, rng, bars); err != nil {
			// Cache refresh failure is not fatal; next request re-fetches.
			s.logger.Warn(ctx, "Failed to refresh bar cache", map[string]interface{}{"symbol": symbol, "reason": err.Error()})
		}
	}
	return bars, false, nil
}

func (s *AnalysisService) cacheTTL() time.Duration {
	if s.cfg.CacheTTL > 0 {
		return s.cfg.CacheTTL
	}
	return 5 * time.Minute
}
