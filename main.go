package main

import (
	"context"
	"flag"
	"fmt"
	"log" // Use standard log only for initial fatal errors before logger is set up
	"sort"
	"strings"

	"stockanalyzer/config"
	"stockanalyzer/internal/adapters/binanceclient"
	"stockanalyzer/internal/adapters/logger"
	"stockanalyzer/internal/adapters/sqlite"
	"stockanalyzer/internal/adapters/yahoo"
	"stockanalyzer/internal/app"
	"stockanalyzer/internal/domain"
	"stockanalyzer/internal/indicators"
	"stockanalyzer/internal/ports"
	"stockanalyzer/internal/utils"
)

func main() {
	symbolFlag := flag.String("symbol", "", "symbol to analyze (overrides SYMBOL)")
	rangeFlag := flag.String("range", "", "history range: 1mo, 3mo, 6mo, 1y, 2y, 5y, max (overrides RANGE)")
	csvFlag := flag.String("csv", "", "write the full analysis to this CSV file (overrides CSV_OUT)")
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
	if *csvFlag != "" {
		cfg.CSVOut = *csvFlag
	}

	// 2. Initialize Logger
	appLogger := logger.NewStdLogger(cfg.LogLevel)
	appLogger.Info(context.Background(), "Logger initialized", map[string]interface{}{"level": cfg.LogLevel.String()})

	// 3. Initialize Bar Cache (Database Adapter)
	repo, err := sqlite.NewRepository(sqlite.Config{
		DBPath: cfg.DBPath,
		Logger: appLogger,
	})
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize bar cache")
		log.Fatalf("FATAL: Failed to initialize bar cache: %v", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			appLogger.Error(context.Background(), err, "Error closing bar cache")
		}
	}()

	// 4. Initialize Market Data Provider
	provider, err := newProvider(cfg, appLogger)
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize market data provider")
		log.Fatalf("FATAL: Failed to initialize market data provider: %v", err)
	}
	appLogger.Info(context.Background(), "Market data provider initialized", map[string]interface{}{"provider": cfg.Provider})

	// 5. Initialize Service and run the analysis
	service, err := app.NewAnalysisService(cfg, appLogger, provider, repo)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize analysis service: %v", err)
	}

	report, err := service.Analyze(context.Background(), cfg.Symbol, cfg.Range)
	if err != nil {
		appLogger.Error(context.Background(), err, "Analysis failed", map[string]interface{}{"symbol": cfg.Symbol})
		log.Fatalf("Analysis failed: %v", err)
	}

	renderReport(report)

	if cfg.CSVOut != "" {
		if err := utils.WriteAnalysisToCSV(report.Series, report.Results, cfg.CSVOut); err != nil {
			appLogger.Error(context.Background(), err, "Failed to write CSV", map[string]interface{}{"file": cfg.CSVOut})
			log.Fatalf("Failed to write CSV: %v", err)
		}
		fmt.Printf("\nAnalysis written to %s\n", cfg.CSVOut)
	}
}

func newProvider(cfg *config.Config, appLogger ports.Logger) (ports.MarketDataProvider, error) {
	if cfg.Provider == config.ProviderBinance {
		return binanceclient.New(binanceclient.Config{
			APIKey:    cfg.APIKey,
			SecretKey: cfg.SecretKey,
			Logger:    appLogger,
		})
	}
	return yahoo.New(yahoo.Config{Logger: appLogger})
}

func renderReport(report *app.Report) {
	if q := report.Quote; q != nil {
		fmt.Printf("\n%s (%s)", q.Name, q.Symbol)
		if q.Exchange != "" {
			fmt.Printf(" | %s", q.Exchange)
		}
		fmt.Println()
		fmt.Printf("Price: %s  %+.2f (%s)\n", utils.FormatCurrency(q.Price), q.Change(), utils.FormatPercent(q.ChangePercent()))
		fmt.Printf("Market Cap: %-12s Volume: %s\n", utils.FormatOptional(q.MarketCap, utils.FormatNumber), utils.FormatOptional(q.Volume, utils.FormatNumber))
		fmt.Printf("P/E: %-12s EPS: %-10s Dividend Yield: %s\n",
			utils.FormatOptional(q.PERatio, utils.FormatNumber),
			utils.FormatOptional(q.EPS, utils.FormatCurrency),
			utils.FormatOptional(q.DividendYield*100, utils.FormatPercent))
		fmt.Printf("52 Week Range: %s - %s\n",
			utils.FormatOptional(q.FiftyTwoWeekLow, utils.FormatCurrency),
			utils.FormatOptional(q.FiftyTwoWeekHigh, utils.FormatCurrency))
	} else {
		fmt.Printf("\n%s (quote unavailable)\n", report.Symbol)
	}
	fmt.Printf("\nBars: %d (%s)", report.Series.Len(), report.Range)
	if report.FromCache {
		fmt.Print(" [cached]")
	}
	fmt.Println()

	names := make([]string, 0, len(report.Results))
	for name := range report.Results {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nIndicators:")
	for _, name := range names {
		res := report.Results[name]
		switch res.Status {
		case indicators.StatusInvalidConfiguration:
			fmt.Printf("  %-16s %s (%v)\n", name, res.Status, res.Err)
		case indicators.StatusInsufficientData:
			fmt.Printf("  %-16s %s\n", name, res.Status)
		default:
			fmt.Printf("  %-16s %s\n", name, res.Status)
			for _, comp := range res.Components {
				if v, ok := comp.Values.Last(); ok {
					fmt.Printf("    %-14s %.4f\n", comp.Name, v)
				} else {
					fmt.Printf("    %-14s insufficient history\n", comp.Name)
				}
			}
		}
	}
}
