package strategy

import (
	"math"

	"StockForecaster/internal/model"
)

// Factor statements, one per category.
const (
	FactorTrendUp   = "📈 Positive momentum detected - upward price trend"
	FactorTrendDown = "📉 Negative momentum detected - downward price trend"

	FactorVolatilityLow      = "🎯 Low price volatility - stable price movement"
	FactorVolatilityModerate = "⚖️ Moderate price volatility - normal fluctuations"
	FactorVolatilityHigh     = "⚠️ High price volatility - significant price swings"

	FactorCrossoverBullish = "✅ Short-term average above long-term (bullish signal)"
	FactorCrossoverBearish = "❌ Short-term average below long-term (bearish signal)"

	FactorRSIOverbought = "🔴 RSI indicates overbought conditions - potential pullback"
	FactorRSIOversold   = "🟢 RSI indicates oversold conditions - potential bounce"
	FactorRSINeutral    = "⚪ RSI in neutral zone - balanced buying/selling"

	FactorMomentumStrongUp   = "🚀 Strong positive momentum - accelerating gains"
	FactorMomentumStrongDown = "⬇️ Strong negative momentum - accelerating losses"
	FactorMomentumWeak       = "➡️ Weak momentum - sideways price action"
)

// GenerateFactors returns exactly five statements in the order
// trend, volatility, MA crossover, RSI, momentum.
func GenerateFactors(trend model.Trend, volatility, sma10, sma30, rsi, momentum float64) []string {
	return []string{
		trendFactor(trend),
		volatilityFactor(volatility),
		crossoverFactor(sma10, sma30),
		rsiFactor(rsi),
		momentumFactor(momentum),
	}
}

func trendFactor(trend model.Trend) string {
	if trend == model.TrendBullish {
		return FactorTrendUp
	}
	return FactorTrendDown
}

func volatilityFactor(volatility float64) string {
	switch {
	case volatility < 0.02:
		return FactorVolatilityLow
	case volatility < 0.04:
		return FactorVolatilityModerate
	default:
		return FactorVolatilityHigh
	}
}

func crossoverFactor(sma10, sma30 float64) string {
	if sma10 > sma30 {
		return FactorCrossoverBullish
	}
	return FactorCrossoverBearish
}

func rsiFactor(rsi float64) string {
	switch {
	case rsi > OverboughtRSI:
		return FactorRSIOverbought
	case rsi < OversoldRSI:
		return FactorRSIOversold
	default:
		return FactorRSINeutral
	}
}

func momentumFactor(momentum float64) string {
	if math.Abs(momentum) > 5 {
		if momentum > 0 {
			return FactorMomentumStrongUp
		}
		return FactorMomentumStrongDown
	}
	return FactorMomentumWeak
}
