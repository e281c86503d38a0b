package indicators

import (
	"fmt"

	"stockanalyzer/internal/domain"
)

// MACDConfig parameterizes the MACD indicator. FastPeriod must be shorter
// than SlowPeriod.
type MACDConfig struct {
	FastPeriod   int
	SlowPeriod   int
	SignalPeriod int
}

// BollingerConfig parameterizes the Bollinger Bands indicator.
type BollingerConfig struct {
	Period     int
	Multiplier float64
}

// Config enumerates which indicators to run and their parameters. An
// indicator left at its zero value (empty period list, zero period, nil
// pointer) is not computed.
type Config struct {
	MovingAveragePeriods []int
	RSIPeriod            int
	MACD                 *MACDConfig
	Bollinger            *BollingerConfig
}

// Run computes the configured indicators over the series, keyed by indicator
// name. Indicators run independently: an invalid configuration or a short
// history for one never affects its siblings, and configuration is validated
// before any computation. Run is a pure function of (series, cfg); running it
// twice yields identical results.
func Run(series *domain.Series, cfg Config) map[string]Result {
	closes := series.Closes()
	results := make(map[string]Result)

	if len(cfg.MovingAveragePeriods) > 0 {
		results[NameMovingAverages] = runMovingAverages(closes, cfg.MovingAveragePeriods)
	}
	if cfg.RSIPeriod != 0 {
		results[NameRSI] = runRSI(closes, cfg.RSIPeriod)
	}
	if cfg.MACD != nil {
		results[NameMACD] = runMACD(closes, *cfg.MACD)
	}
	if cfg.Bollinger != nil {
		results[NameBollinger] = runBollinger(closes, *cfg.Bollinger)
	}
	return results
}

func runMovingAverages(closes []float64, periods []int) Result {
	comps, err := MovingAverages(closes, periods)
	if err != nil {
		names := make([]string, len(periods))
		for i, p := range periods {
			names[i] = fmt.Sprintf("sma_%d", p)
		}
		return invalid(NameMovingAverages, err, len(closes), names...)
	}
	return finish(NameMovingAverages, comps)
}

func runRSI(closes []float64, period int) Result {
	values, err := RSI(closes, period)
	if err != nil {
		return invalid(NameRSI, err, len(closes), "rsi")
	}
	return finish(NameRSI, []Component{{Name: "rsi", Values: values}})
}

func runMACD(closes []float64, cfg MACDConfig) Result {
	macd, signal, hist, err := MACD(closes, cfg.FastPeriod, cfg.SlowPeriod, cfg.SignalPeriod)
	if err != nil {
		return invalid(NameMACD, err, len(closes), "macd", "signal", "histogram")
	}
	return finish(NameMACD, []Component{
		{Name: "macd", Values: macd},
		{Name: "signal", Values: signal},
		{Name: "histogram", Values: hist},
	})
}

func runBollinger(closes []float64, cfg BollingerConfig) Result {
	middle, upper, lower, err := Bollinger(closes, cfg.Period, cfg.Multiplier)
	if err != nil {
		return invalid(NameBollinger, err, len(closes), "middle", "upper", "lower")
	}
	return finish(NameBollinger, []Component{
		{Name: "middle", Values: middle},
		{Name: "upper", Values: upper},
		{Name: "lower", Values: lower},
	})
}

// invalid builds an InvalidConfiguration result whose components are still
// aligned with the input, keeping positional zipping safe for callers.
func invalid(name string, err error, n int, componentNames ...string) Result {
	comps := make([]Component, len(componentNames))
	for i, cn := range componentNames {
		comps[i] = Component{Name: cn, Values: make(Series, n)}
	}
	return Result{Indicator: name, Status: StatusInvalidConfiguration, Err: err, Components: comps}
}

func finish(name string, comps []Component) Result {
	status := StatusInsufficientData
	for _, c := range comps {
		if c.Values.HasDefined() {
			status = StatusReady
			break
		}
	}
	return Result{Indicator: name, Status: status, Components: comps}
}
