package indicators

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockanalyzer/internal/domain"
)

func seriesFromCloses(t *testing.T, closes []float64) *domain.Series {
	t.Helper()
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]domain.Bar, len(closes))
	for i, c := range closes {
		bars[i] = domain.Bar{
			Timestamp: base.AddDate(0, 0, i),
			Open:      c,
			High:      c + 1,
			Low:       c - 1,
			Close:     c,
			Volume:    1000,
		}
	}
	s, err := domain.NewSeries("TEST", bars)
	require.NoError(t, err)
	return s
}

func TestRun_OnlyConfiguredIndicators(t *testing.T) {
	series := seriesFromCloses(t, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})

	results := Run(series, Config{RSIPeriod: 3})

	assert.Len(t, results, 1)
	assert.Contains(t, results, NameRSI)
	assert.NotContains(t, results, NameMACD)
	assert.NotContains(t, results, NameMovingAverages)
	assert.NotContains(t, results, NameBollinger)
}

func TestRun_AllOutputsAlignedToInput(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	series := seriesFromCloses(t, closes)

	results := Run(series, Config{
		MovingAveragePeriods: []int{5, 200},
		RSIPeriod:            14,
		MACD:                 &MACDConfig{FastPeriod: 12, SlowPeriod: 26, SignalPeriod: 9},
		Bollinger:            &BollingerConfig{Period: 20, Multiplier: 2},
	})

	require.Len(t, results, 4)
	for name, res := range results {
		require.NotEmpty(t, res.Components, "indicator %s", name)
		for _, comp := range res.Components {
			assert.Len(t, comp.Values, len(closes), "%s/%s must align with the input", name, comp.Name)
		}
	}
}

func TestRun_InsufficientDataStatus(t *testing.T) {
	// 10 bars against a 20-period moving average: all undefined, not an error.
	series := seriesFromCloses(t, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})

	results := Run(series, Config{MovingAveragePeriods: []int{20}})

	res := results[NameMovingAverages]
	assert.Equal(t, StatusInsufficientData, res.Status)
	assert.NoError(t, res.Err)
	require.Len(t, res.Components, 1)
	assert.Len(t, res.Components[0].Values, 10)
	assert.False(t, res.Components[0].Values.HasDefined())
}

func TestRun_InvalidConfigurationIsScoped(t *testing.T) {
	series := seriesFromCloses(t, []float64{
		1, 2, 3, 4, 5, 6, 7, 8, 9, 10,
		11, 12, 13, 14, 15, 16, 17, 18, 19, 20,
	})

	// fast >= slow is rejected; the sibling RSI still computes.
	results := Run(series, Config{
		RSIPeriod: 14,
		MACD:      &MACDConfig{FastPeriod: 26, SlowPeriod: 12, SignalPeriod: 9},
	})

	macdRes := results[NameMACD]
	assert.Equal(t, StatusInvalidConfiguration, macdRes.Status)
	assert.ErrorIs(t, macdRes.Err, ErrInvalidConfiguration)
	require.Len(t, macdRes.Components, 3)
	for _, comp := range macdRes.Components {
		assert.Len(t, comp.Values, series.Len())
		assert.False(t, comp.Values.HasDefined())
	}

	rsiRes := results[NameRSI]
	assert.Equal(t, StatusReady, rsiRes.Status)
	assert.NoError(t, rsiRes.Err)
	assert.True(t, rsiRes.Component("rsi").HasDefined())
}

func TestRun_ReadyStatusWithMixedPeriods(t *testing.T) {
	// One period fits, one does not; the indicator as a whole is Ready.
	series := seriesFromCloses(t, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})

	results := Run(series, Config{MovingAveragePeriods: []int{5, 50}})

	res := results[NameMovingAverages]
	assert.Equal(t, StatusReady, res.Status)
	assert.True(t, res.Component("sma_5").HasDefined())
	assert.False(t, res.Component("sma_50").HasDefined())
}

func TestRun_Idempotent(t *testing.T) {
	series := seriesFromCloses(t, []float64{
		100, 102, 101, 103, 102, 104, 106, 105, 107, 109,
		108, 110, 112, 111, 113, 115, 114, 116, 118, 117,
	})
	cfg := Config{
		MovingAveragePeriods: []int{5, 10},
		RSIPeriod:            14,
		MACD:                 &MACDConfig{FastPeriod: 3, SlowPeriod: 6, SignalPeriod: 4},
		Bollinger:            &BollingerConfig{Period: 5, Multiplier: 2},
	}

	first := Run(series, cfg)
	second := Run(series, cfg)

	assert.True(t, reflect.DeepEqual(first, second), "pipeline must be a pure function of (series, config)")
}

func TestRun_EmptySeries(t *testing.T) {
	series := seriesFromCloses(t, nil)

	results := Run(series, Config{
		RSIPeriod: 14,
		Bollinger: &BollingerConfig{Period: 20, Multiplier: 2},
	})

	for name, res := range results {
		assert.Equal(t, StatusInsufficientData, res.Status, "indicator %s", name)
		for _, comp := range res.Components {
			assert.Empty(t, comp.Values, "%s/%s", name, comp.Name)
		}
	}
}
