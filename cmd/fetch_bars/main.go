package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"stockanalyzer/config"
	"stockanalyzer/internal/adapters/binanceclient"
	"stockanalyzer/internal/adapters/logger"
	"stockanalyzer/internal/adapters/yahoo"
	"stockanalyzer/internal/domain"
	"stockanalyzer/internal/ports"
	"stockanalyzer/internal/utils"
)

// Fetches raw bars for a symbol and dumps them to CSV, bypassing the cache.
func main() {
	symbolFlag := flag.String("symbol", "", "symbol to fetch (overrides SYMBOL)")
	rangeFlag := flag.String("range", "", "history range (overrides RANGE)")
	outFlag := flag.String("out", "", "output CSV file (default data/<symbol>_<range>_<date>.csv)")
	flag.Parse()

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}
	if *symbolFlag != "" {
		cfg.Symbol = strings.ToUpper(*symbolFlag)
	}
	if *rangeFlag != "" {
		cfg.Range, err = domain.ParseRange(*rangeFlag)
		if err != nil {
			log.Fatalf("FATAL: %v", err)
		}
	}

	// 2. Initialize Logger
	appLogger := logger.NewStdLogger(cfg.LogLevel)

	// 3. Initialize Market Data Provider
	var provider ports.MarketDataProvider
	if cfg.Provider == config.ProviderBinance {
		provider, err = binanceclient.New(binanceclient.Config{
			APIKey:    cfg.APIKey,
			SecretKey: cfg.SecretKey,
			Logger:    appLogger,
		})
	} else {
		provider, err = yahoo.New(yahoo.Config{Logger: appLogger})
	}
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize market data provider: %v", err)
	}

	fmt.Printf("Fetching %s bars for %s...\n", cfg.Range, cfg.Symbol)
	bars, err := provider.GetBars(context.Background(), cfg.Symbol, cfg.Range)
	if err != nil {
		appLogger.Error(context.Background(), err, "Error fetching bars")
		log.Fatalf("Error fetching bars: %v", err)
	}
	appLogger.Info(context.Background(), "Fetched bars", map[string]interface{}{"count": len(bars)})

	filename := *outFlag
	if filename == "" {
		filename = fmt.Sprintf("data/%s_%s_%s.csv", cfg.Symbol, cfg.Range, time.Now().Format("20060102"))
	}
	if err := utils.WriteBarsToCSV(bars, filename); err != nil {
		appLogger.Error(context.Background(), err, "Error writing CSV")
		log.Fatalf("Error writing CSV: %v", err)
	}
	fmt.Printf("Saved %d bars to %s\n", len(bars), filename)
}
