package yahoo

import (
	"context"
	"fmt"
	"time"

	"stockanalyzer/internal/domain"
	"stockanalyzer/internal/ports"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/equity"
	"github.com/shopspring/decimal"
)

// Client implements the ports.MarketDataProvider interface against Yahoo
// Finance using the finance-go library. Daily bars only; intraday intervals
// are not needed for the supported ranges.
type Client struct {
	logger ports.Logger
}

// Config holds configuration specific to the Yahoo adapter.
type Config struct {
	Logger ports.Logger
}

// New creates a new Yahoo Finance adapter.
func New(cfg Config) (*Client, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for Yahoo client")
	}
	return &Client{logger: cfg.Logger}, nil
}

// GetBars retrieves daily bars covering the range, oldest first.
func (c *Client) GetBars(ctx context.Context, symbol string, rng domain.Range) ([]domain.Bar, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrContextCanceled, err)
	}

	start, end := rng.Window(time.Now())
	params := &chart.Params{
		Symbol:   symbol,
		Interval: datetime.OneDay,
	}
	if !start.IsZero() {
		params.Start = datetime.New(&start)
		params.End = datetime.New(&end)
	}

	iter := chart.Get(params)
	var bars []domain.Bar
	for iter.Next() {
		b := iter.Bar()
		bars = append(bars, domain.Bar{
			Timestamp: time.Unix(int64(b.Timestamp), 0).UTC(),
			Open:      toFloat(b.Open),
			High:      toFloat(b.High),
			Low:       toFloat(b.Low),
			Close:     toFloat(b.Close),
			Volume:    float64(b.Volume),
		})
	}
	if err := iter.Err(); err != nil {
		c.logger.Error(ctx, err, "Yahoo chart request failed", map[string]interface{}{"symbol": symbol, "range": string(rng)})
		return nil, fmt.Errorf("chart request for %s failed: %v: %w", symbol, err, ports.ErrProviderUnavailable)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: %s", ports.ErrSymbolNotFound, symbol)
	}

	c.logger.Debug(ctx, "Fetched bars from Yahoo", map[string]interface{}{"symbol": symbol, "count": len(bars)})
	return bars, nil
}

// GetQuote retrieves the current quote snapshot and company metadata.
func (c *Client) GetQuote(ctx context.Context, symbol string) (*domain.Quote, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrContextCanceled, err)
	}

	q, err := equity.Get(symbol)
	if err != nil {
		c.logger.Error(ctx, err, "Yahoo quote request failed", map[string]interface{}{"symbol": symbol})
		return nil, fmt.Errorf("quote request for %s failed: %v: %w", symbol, err, ports.ErrProviderUnavailable)
	}
	if q == nil {
		return nil, fmt.Errorf("%w: %s", ports.ErrSymbolNotFound, symbol)
	}

	name := q.LongName
	if name == "" {
		name = q.ShortName
	}
	if name == "" {
		name = symbol
	}
	return &domain.Quote{
		Symbol:           q.Symbol,
		Name:             name,
		Exchange:         q.FullExchangeName,
		Price:            q.RegularMarketPrice,
		PreviousClose:    q.RegularMarketPreviousClose,
		MarketCap:        float64(q.MarketCap),
		Volume:           float64(q.RegularMarketVolume),
		PERatio:          q.TrailingPE,
		EPS:              q.EpsTrailingTwelveMonths,
		DividendYield:    q.TrailingAnnualDividendYield,
		FiftyTwoWeekHigh: q.FiftyTwoWeekHigh,
		FiftyTwoWeekLow:  q.FiftyTwoWeekLow,
	}, nil
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
