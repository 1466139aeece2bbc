package strategy

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockForecaster/internal/model"
	"StockForecaster/internal/synthetic"
)

var day0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func series(prices ...float64) []model.PricePoint {
	points := make([]model.PricePoint, len(prices))
	for i, p := range prices {
		points[i] = model.PricePoint{Date: day0.AddDate(0, 0, i), Price: p, Volume: 1_000_000}
	}
	return points
}

func flat(price float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = price
	}
	return out
}

func ramp(from float64, n int, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = from + float64(i)*step
	}
	return out
}

func assertFinite(t *testing.T, f *model.Forecast) {
	t.Helper()
	for _, h := range f.Horizons() {
		assert.False(t, math.IsNaN(h.Price) || math.IsInf(h.Price, 0), "day%d = %v", h.Days, h.Price)
	}
	assert.False(t, math.IsNaN(f.TrendMultiplier))
	assert.False(t, math.IsNaN(f.Indicators.TrendStrength))
}

func TestPredict_RisingTailFixture(t *testing.T) {
	// 9 flat days then 101..110
	prices := append(flat(100, 9), ramp(101, 10, 1)...)
	f, err := Predict(series(prices...))
	require.NoError(t, err)

	assert.InDelta(t, 105.5, f.Indicators.SMA10, 1e-9)
	assert.Equal(t, 110.0, f.Indicators.CurrentPrice)
	assert.Greater(t, f.Day7, 110.0)

	// 19 points is shorter than the 30-day window, so SMA30 falls back to
	// the last price and the crossover reads bearish.
	assert.Equal(t, 110.0, f.Indicators.SMA30)
	assert.Equal(t, model.TrendBearish, f.Trend)
}

func TestPredict_RisingTailWithFullWindow(t *testing.T) {
	prices := append(flat(100, 29), ramp(101, 10, 1)...)
	f, err := Predict(series(prices...))
	require.NoError(t, err)

	assert.InDelta(t, 105.5, f.Indicators.SMA10, 1e-9)
	assert.InDelta(t, (20*100.0+1055)/30, f.Indicators.SMA30, 1e-9)
	assert.Equal(t, model.TrendBullish, f.Trend)
	assert.Greater(t, f.Day7, 110.0)
	assert.Equal(t, FactorTrendUp, f.Factors[0])
	assert.Equal(t, FactorCrossoverBullish, f.Factors[2])
}

func TestPredict_FlatSeries(t *testing.T) {
	f, err := Predict(series(flat(100, 60)...))
	require.NoError(t, err)

	assert.Equal(t, model.TrendBearish, f.Trend)
	assert.Equal(t, 0.0, f.Indicators.TrendStrength)
	assert.Equal(t, 0.0, f.Indicators.Volatility)
	assert.Equal(t, 100.0, f.Indicators.RSI14)
	for _, h := range f.Horizons() {
		assert.Equal(t, 100.0, h.Price, "day%d", h.Days)
	}
	assert.Equal(t, 1.0, f.TrendMultiplier)
	assert.Equal(t, model.Confidence{Level: model.ConfidenceModerate, Score: 70, Label: "Moderate (60-75%)"}, f.Confidence)
	assert.Equal(t, []string{
		FactorTrendDown,
		FactorVolatilityLow,
		FactorCrossoverBearish,
		FactorRSIOverbought,
		FactorMomentumWeak,
	}, f.Factors)
}

func TestPredict_ProjectionFormula(t *testing.T) {
	prices := append(ramp(200, 40, -1.5), ramp(141, 25, 0.8)...)
	f := PredictPrices(prices)
	ind := f.Indicators

	volAdj := 1 + ind.Volatility*10
	momAdj := ind.Momentum14 / 100
	changes := BaseChanges(f.Trend)
	for i, h := range f.Horizons() {
		want := math.Round(ind.CurrentPrice*(1+changes[i]*ind.TrendStrength*volAdj+momAdj*Horizons[i].MomentumWeight)*100) / 100
		assert.InDelta(t, want, h.Price, 0.0100001, "day%d", h.Days)
	}
}

func TestPredict_TrendDirection(t *testing.T) {
	up := PredictPrices(ramp(50, 60, 1))
	assert.Equal(t, model.TrendBullish, up.Trend)
	for _, c := range BaseChanges(up.Trend) {
		assert.Greater(t, c, 0.0)
	}

	down := PredictPrices(ramp(200, 60, -1))
	assert.Equal(t, model.TrendBearish, down.Trend)
	for _, c := range BaseChanges(down.Trend) {
		assert.Less(t, c, 0.0)
	}
	assert.Less(t, down.Day730, down.Indicators.CurrentPrice)
}

func TestPredict_ShortSeries(t *testing.T) {
	f, err := Predict(series(42))
	require.NoError(t, err)
	assertFinite(t, f)
	assert.Equal(t, 42.0, f.Day7)
	assert.Equal(t, 42.0, f.Day730)
	assert.Equal(t, 50.0, f.Indicators.RSI14)
	assert.Equal(t, 0.0, f.Indicators.Momentum14)
	assert.Len(t, f.Factors, 5)
}

func TestPredictPrices_DegenerateInput(t *testing.T) {
	for _, prices := range [][]float64{
		flat(0, 40),
		{0},
		{-5, -4, -3},
		nil,
	} {
		f := PredictPrices(prices)
		assertFinite(t, f)
		assert.Equal(t, 0.0, f.Indicators.TrendStrength)
	}
}

func TestPredict_ValidationErrors(t *testing.T) {
	_, err := Predict(nil)
	assert.ErrorIs(t, err, ErrEmptySeries)

	_, err = Predict(series(10, 0, 12))
	assert.ErrorIs(t, err, ErrNonPositivePrice)

	_, err = Predict(series(10, math.NaN()))
	assert.ErrorIs(t, err, ErrNonPositivePrice)

	_, err = Predict(series(10, math.Inf(1)))
	assert.ErrorIs(t, err, ErrNonPositivePrice)

	pts := series(10, 11, 12)
	pts[2].Date = day0.AddDate(0, 0, -1)
	_, err = Predict(pts)
	assert.ErrorIs(t, err, ErrNotChronological)

	pts = series(10, 11)
	pts[1].Volume = -1
	_, err = Predict(pts)
	assert.ErrorIs(t, err, ErrNegativeVolume)

	pts = series(10, 11)
	pts[1].Date = pts[0].Date
	assert.NoError(t, Validate(pts))
}

func TestTrendMultiplier(t *testing.T) {
	tests := []struct {
		name  string
		trend model.Trend
		ts    float64
		rsi   float64
		want  float64
	}{
		{"bullish", model.TrendBullish, 0.1, 50, 1.05},
		{"bullish overbought", model.TrendBullish, 0.1, 75, 1.05 * 0.7},
		{"bullish at 70 not damped", model.TrendBullish, 0.1, 70, 1.05},
		{"bearish", model.TrendBearish, 0.1, 50, 0.95},
		{"bearish oversold", model.TrendBearish, 0.1, 20, 0.95 * 1.3},
		{"bearish at 30 not boosted", model.TrendBearish, 0.1, 30, 0.95},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, TrendMultiplier(tt.trend, tt.ts, tt.rsi), 1e-12)
		})
	}
}

func TestTrendMultiplier_NotAppliedToProjection(t *testing.T) {
	// two series with identical projection inputs but RSI on either side
	// of 70 must project the same prices
	ind := model.IndicatorSet{CurrentPrice: 100, TrendStrength: 0.1, Volatility: 0.01, Momentum14: 3}
	calm := ind
	calm.RSI14 = 50
	hot := ind
	hot.RSI14 = 90

	assert.NotEqual(t,
		TrendMultiplier(model.TrendBullish, calm.TrendStrength, calm.RSI14),
		TrendMultiplier(model.TrendBullish, hot.TrendStrength, hot.RSI14))
	assert.Equal(t, project(calm, model.TrendBullish), project(hot, model.TrendBullish))
}

func TestPredict_SyntheticRoundTrip(t *testing.T) {
	gen := synthetic.New(2024)
	for _, seed := range []float64{1, 10000, 1e9} {
		for _, days := range []int{0, 1, 365} {
			points := gen.Generate(seed, days)
			f, err := Predict(points)
			require.NoError(t, err, "seed=%v days=%d", seed, days)
			assertFinite(t, f)
			assert.Len(t, f.Factors, 5)
			assert.Contains(t, []model.ConfidenceLevel{model.ConfidenceLow, model.ConfidenceModerate, model.ConfidenceHigh}, f.Confidence.Level)
		}
	}
}
