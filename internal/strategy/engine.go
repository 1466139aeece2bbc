package strategy

import (
	"math"

	"StockForecaster/internal/calculator"
	"StockForecaster/internal/model"
)

const (
	RSIPeriod      = 14
	MomentumPeriod = 14

	OverboughtRSI = 70.0
	OversoldRSI   = 30.0
)

// Horizons defines the projection horizons. BaseChange is signed by the
// trend; MomentumWeight grows with horizon length.
var Horizons = []struct {
	Days           int
	BaseChange     float64
	MomentumWeight float64
}{
	{7, 0.02, 0.1},
	{30, 0.05, 0.3},
	{90, 0.12, 0.5},
	{180, 0.18, 0.7},
	{365, 0.28, 0.9},
	{730, 0.45, 1.2},
}

// Predict validates a series and computes its forecast.
func Predict(points []model.PricePoint) (*model.Forecast, error) {
	if err := Validate(points); err != nil {
		return nil, err
	}
	return PredictPrices(model.Prices(points)), nil
}

// PredictPrices computes a forecast from raw chronological prices.
// It never fails: short histories fall back to indicator sentinels and
// degenerate averages give a neutral trend strength.
func PredictPrices(prices []float64) *model.Forecast {
	ind := ComputeIndicators(prices)

	trend := model.TrendBearish
	if ind.SMA10 > ind.SMA30 {
		trend = model.TrendBullish
	}

	projected := project(ind, trend)

	return &model.Forecast{
		Day7:            projected[0],
		Day30:           projected[1],
		Day90:           projected[2],
		Day180:          projected[3],
		Day365:          projected[4],
		Day730:          projected[5],
		Confidence:      ScoreConfidence(ind.Volatility, ind.TrendStrength, ind.RSI14),
		Trend:           trend,
		Factors:         GenerateFactors(trend, ind.Volatility, ind.SMA10, ind.SMA30, ind.RSI14, ind.Momentum14),
		TrendMultiplier: TrendMultiplier(trend, ind.TrendStrength, ind.RSI14),
		Indicators:      ind,
	}
}

// ComputeIndicators computes every indicator the engine consumes.
func ComputeIndicators(prices []float64) model.IndicatorSet {
	ind := model.IndicatorSet{
		SMA10:      calculator.SMA(prices, 10),
		SMA30:      calculator.SMA(prices, 30),
		SMA50:      calculator.SMA(prices, 50),
		RSI14:      calculator.RSI(prices, RSIPeriod),
		Momentum14: calculator.Momentum(prices, MomentumPeriod),
		Volatility: calculator.Volatility(prices),
	}
	if len(prices) > 0 {
		ind.CurrentPrice = prices[len(prices)-1]
	}
	ind.TrendStrength = trendStrength(ind.SMA10, ind.SMA30)
	return ind
}

// trendStrength is the relative gap between the short and medium averages,
// 0 when the medium average cannot be divided by.
func trendStrength(sma10, sma30 float64) float64 {
	if !(sma30 > 0) {
		return 0
	}
	ts := math.Abs(sma10-sma30) / sma30
	if math.IsNaN(ts) || math.IsInf(ts, 0) {
		return 0
	}
	return ts
}

// TrendMultiplier scales the trend by half its strength, damped when a
// bullish market is overbought and boosted when a bearish one is oversold.
// Projected prices do not use it.
func TrendMultiplier(trend model.Trend, trendStrength, rsi float64) float64 {
	if trend == model.TrendBullish {
		m := 1 + trendStrength*0.5
		if rsi > OverboughtRSI {
			m *= 0.7
		}
		return m
	}
	m := 1 - trendStrength*0.5
	if rsi < OversoldRSI {
		m *= 1.3
	}
	return m
}

// BaseChanges returns the per-horizon base changes signed by trend.
func BaseChanges(trend model.Trend) []float64 {
	sign := -1.0
	if trend == model.TrendBullish {
		sign = 1.0
	}
	changes := make([]float64, len(Horizons))
	for i, h := range Horizons {
		changes[i] = sign * h.BaseChange
	}
	return changes
}

func project(ind model.IndicatorSet, trend model.Trend) []float64 {
	volatilityAdjustment := 1 + ind.Volatility*10
	momentumAdjustment := ind.Momentum14 / 100

	changes := BaseChanges(trend)
	out := make([]float64, len(Horizons))
	for i, h := range Horizons {
		factor := 1 + changes[i]*ind.TrendStrength*volatilityAdjustment + momentumAdjustment*h.MomentumWeight
		out[i] = round2(ind.CurrentPrice * factor)
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
