package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"stockanalyzer/internal/adapters/logger" // Import the logger package for LogLevel
	"stockanalyzer/internal/domain"
	"stockanalyzer/internal/indicators"
)

// Provider selection values for DATA_PROVIDER.
const (
	ProviderYahoo   = "yahoo"
	ProviderBinance = "binance"
)

// Config holds all application configuration.
type Config struct {
	// Request defaults
	Symbol string
	Range  domain.Range

	// Market data provider
	Provider  string // "yahoo" or "binance"
	APIKey    string // Binance only, optional for public market data
	SecretKey string

	// Indicator Parameters. Structural validity (e.g. fast < slow) is checked
	// per indicator by the pipeline, not here, so one bad indicator never
	// blocks the others.
	MAPeriods       []int
	RSIPeriod       int
	MACDFast        int
	MACDSlow        int
	MACDSignal      int
	BollingerPeriod int
	BollingerMult   float64

	// Bar cache
	DBPath   string
	CacheTTL time.Duration

	// Output
	CSVOut string

	// Logging
	LogLevel logger.LogLevel
}

// LoadConfig loads configuration from environment variables (.env file).
func LoadConfig() (*Config, error) {
	// Load .env file, but don't fail if it doesn't exist (allow pure env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	var err error
	var errs []string // Collect validation errors

	cfg.Symbol = strings.ToUpper(getEnv("SYMBOL", "AAPL"))
	if cfg.Symbol == "" {
		errs = append(errs, "SYMBOL must be set")
	}

	cfg.Range, err = domain.ParseRange(getEnv("RANGE", "1y"))
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid RANGE: %v", err))
	}

	cfg.Provider = strings.ToLower(getEnv("DATA_PROVIDER", ProviderYahoo))
	if cfg.Provider != ProviderYahoo && cfg.Provider != ProviderBinance {
		errs = append(errs, fmt.Sprintf("DATA_PROVIDER must be %q or %q, got %q", ProviderYahoo, ProviderBinance, cfg.Provider))
	}
	cfg.APIKey = getEnv("BINANCE_API_KEY", "")
	cfg.SecretKey = getEnv("BINANCE_API_SECRET", "")

	cfg.MAPeriods, err = getEnvAsIntSlice("MA_PERIODS", []int{20, 50, 200})
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid MA_PERIODS: %v", err))
	}
	cfg.RSIPeriod, err = getEnvAsInt("RSI_PERIOD", 14)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid RSI_PERIOD: %v", err))
	}
	cfg.MACDFast, err = getEnvAsInt("MACD_FAST", 12)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid MACD_FAST: %v", err))
	}
	cfg.MACDSlow, err = getEnvAsInt("MACD_SLOW", 26)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid MACD_SLOW: %v", err))
	}
	cfg.MACDSignal, err = getEnvAsInt("MACD_SIGNAL", 9)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid MACD_SIGNAL: %v", err))
	}
	cfg.BollingerPeriod, err = getEnvAsInt("BOLLINGER_PERIOD", 20)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid BOLLINGER_PERIOD: %v", err))
	}
	cfg.BollingerMult, err = getEnvAsFloat("BOLLINGER_MULT", 2.0)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid BOLLINGER_MULT: %v", err))
	}

	cfg.DBPath = getEnv("DB_PATH", "./data/stockanalyzer.db")
	cfg.CacheTTL, err = getEnvAsDuration("CACHE_TTL", 5*time.Minute)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid CACHE_TTL: %v", err))
	}

	cfg.CSVOut = getEnv("CSV_OUT", "")
	cfg.LogLevel = logger.ParseLevel(getEnv("LOG_LEVEL", "INFO"))

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

// IndicatorConfig assembles the pipeline configuration from the loaded
// parameters. A zeroed parameter disables its indicator.
func (c *Config) IndicatorConfig() indicators.Config {
	cfg := indicators.Config{
		MovingAveragePeriods: c.MAPeriods,
		RSIPeriod:            c.RSIPeriod,
	}
	if c.MACDFast != 0 || c.MACDSlow != 0 || c.MACDSignal != 0 {
		cfg.MACD = &indicators.MACDConfig{
			FastPeriod:   c.MACDFast,
			SlowPeriod:   c.MACDSlow,
			SignalPeriod: c.MACDSignal,
		}
	}
	if c.BollingerPeriod != 0 {
		cfg.Bollinger = &indicators.BollingerConfig{
			Period:     c.BollingerPeriod,
			Multiplier: c.BollingerMult,
		}
	}
	return cfg
}

// --- Helper Functions ---

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) (int, error) {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("value %q is not an integer", valueStr)
	}
	return value, nil
}

func getEnvAsFloat(key string, fallback float64) (float64, error) {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback, nil
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return 0, fmt.Errorf("value %q is not a number", valueStr)
	}
	return value, nil
}

func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return 0, fmt.Errorf("value %q is not a duration", valueStr)
	}
	return value, nil
}

// getEnvAsIntSlice parses a comma-separated integer list, e.g. "20,50,200".
func getEnvAsIntSlice(key string, fallback []int) ([]int, error) {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback, nil
	}
	parts := strings.Split(valueStr, ",")
	values := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("value %q is not a comma-separated integer list", valueStr)
		}
		values = append(values, v)
	}
	return values, nil
}
