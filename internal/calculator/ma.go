package calculator

import (
	"github.com/markcheno/go-talib"
)

// SMA returns the simple moving average of the last period prices.
// With fewer than period prices it returns the most recent price, and 0 for no prices.
func SMA(prices []float64, period int) float64 {
	n := len(prices)
	if n == 0 {
		return 0
	}
	if period <= 0 || n < period {
		return prices[n-1]
	}
	window := prices[n-period:]
	out := talib.Sma(window, period)
	return out[len(out)-1]
}

// EMA returns the exponential moving average seeded with the SMA of the
// first period prices, using multiplier 2/(period+1).
// With fewer than period prices it returns the mean of all prices.
func EMA(prices []float64, period int) float64 {
	n := len(prices)
	if n == 0 {
		return 0
	}
	if period <= 0 {
		return prices[n-1]
	}
	if n < period {
		return mean(prices)
	}
	out := talib.Ema(prices, period)
	return out[len(out)-1]
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
