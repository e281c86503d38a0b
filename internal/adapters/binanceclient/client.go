package binanceclient

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"stockanalyzer/internal/domain"
	"stockanalyzer/internal/ports"

	"github.com/adshao/go-binance/v2"
	"github.com/adshao/go-binance/v2/common"
)

// Client implements the ports.MarketDataProvider interface for crypto pairs
// using the go-binance library. Only public market-data endpoints are used,
// so API keys are optional.
type Client struct {
	spot   *binance.Client
	logger ports.Logger
}

// Config holds configuration specific to the Binance client adapter.
type Config struct {
	APIKey    string
	SecretKey string
	Logger    ports.Logger
}

// New creates a new Binance market-data adapter.
func New(cfg Config) (*Client, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for Binance client")
	}
	return &Client{
		spot:   binance.NewClient(cfg.APIKey, cfg.SecretKey),
		logger: cfg.Logger,
	}, nil
}

// handleError translates common Binance API errors into standardized ports errors.
func (c *Client) handleError(ctx context.Context, err error, operation, symbol string) error {
	if err == nil {
		return nil
	}

	fields := map[string]interface{}{"operation": operation, "symbol": symbol, "originalError": err.Error()}

	var apiErr *common.APIError
	if errors.As(err, &apiErr) {
		fields["apiErrorCode"] = apiErr.Code
		var mappedErr error
		switch apiErr.Code {
		case -1003: // Too many requests
			mappedErr = ports.ErrRateLimited
		case -1121: // Invalid symbol
			mappedErr = ports.ErrSymbolNotFound
		default:
			mappedErr = ports.ErrProviderUnavailable
		}
		c.logger.Error(ctx, err, "Binance API error", fields)
		return fmt.Errorf("binance %s failed: %s: %w", operation, apiErr.Message, mappedErr)
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("binance %s canceled: %w", operation, ports.ErrContextCanceled)
	}
	if strings.Contains(err.Error(), "connection refused") || strings.Contains(err.Error(), "no such host") {
		c.logger.Error(ctx, err, "Binance connection error", fields)
		return fmt.Errorf("binance %s failed: %w", operation, ports.ErrConnectionFailed)
	}

	c.logger.Error(ctx, err, "Binance request failed", fields)
	return fmt.Errorf("binance %s failed: %v: %w", operation, err, ports.ErrProviderUnavailable)
}

// GetBars retrieves daily spot klines covering the range, oldest first.
func (c *Client) GetBars(ctx context.Context, symbol string, rng domain.Range) ([]domain.Bar, error) {
	svc := c.spot.NewKlinesService().Symbol(symbol).Interval("1d").Limit(1000)
	if start, end := rng.Window(time.Now()); !start.IsZero() {
		svc = svc.StartTime(start.UnixMilli()).EndTime(end.UnixMilli())
	}

	klines, err := svc.Do(ctx)
	if err != nil {
		return nil, c.handleError(ctx, err, "klines", symbol)
	}
	if len(klines) == 0 {
		return nil, fmt.Errorf("%w: %s", ports.ErrSymbolNotFound, symbol)
	}

	bars := make([]domain.Bar, 0, len(klines))
	for _, k := range klines {
		bar, convErr := convertKline(k)
		if convErr != nil {
			return nil, fmt.Errorf("malformed kline for %s: %w", symbol, convErr)
		}
		bars = append(bars, bar)
	}

	c.logger.Debug(ctx, "Fetched klines from Binance", map[string]interface{}{"symbol": symbol, "count": len(bars)})
	return bars, nil
}

// GetQuote builds a quote snapshot from the 24h ticker statistics. Equity
// metadata (market cap, P/E, dividends) does not exist for crypto pairs and
// stays zero.
func (c *Client) GetQuote(ctx context.Context, symbol string) (*domain.Quote, error) {
	stats, err := c.spot.NewListPriceChangeStatsService().Symbol(symbol).Do(ctx)
	if err != nil {
		return nil, c.handleError(ctx, err, "ticker stats", symbol)
	}
	if len(stats) == 0 {
		return nil, fmt.Errorf("%w: %s", ports.ErrSymbolNotFound, symbol)
	}
	s := stats[0]

	price, err := parsePrice(s.LastPrice, "lastPrice")
	if err != nil {
		return nil, err
	}
	prevClose, err := parsePrice(s.PrevClosePrice, "prevClosePrice")
	if err != nil {
		return nil, err
	}
	volume, err := parsePrice(s.Volume, "volume")
	if err != nil {
		return nil, err
	}

	return &domain.Quote{
		Symbol:        s.Symbol,
		Name:          s.Symbol,
		Exchange:      "Binance",
		Price:         price,
		PreviousClose: prevClose,
		Volume:        volume,
	}, nil
}

func convertKline(k *binance.Kline) (domain.Bar, error) {
	open, err := parsePrice(k.Open, "open")
	if err != nil {
		return domain.Bar{}, err
	}
	high, err := parsePrice(k.High, "high")
	if err != nil {
		return domain.Bar{}, err
	}
	low, err := parsePrice(k.Low, "low")
	if err != nil {
		return domain.Bar{}, err
	}
	closeP, err := parsePrice(k.Close, "close")
	if err != nil {
		return domain.Bar{}, err
	}
	volume, err := parsePrice(k.Volume, "volume")
	if err != nil {
		return domain.Bar{}, err
	}
	return domain.Bar{
		Timestamp: time.UnixMilli(k.OpenTime).UTC(),
		Open:      open,
		High:      high,
		Low:       low,
		Close:     closeP,
		Volume:    volume,
	}, nil
}

func parsePrice(s, field string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s %q: %w", field, s, err)
	}
	return v, nil
}
