package calculator

import "math"

// StdDev returns the population standard deviation of values (divides by N).
func StdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	variance := 0.0
	for _, v := range values {
		d := v - m
		variance += d * d
	}
	variance /= float64(len(values))
	return math.Sqrt(variance)
}

// Returns computes day-over-day simple returns. Changes from a
// non-positive previous price are skipped.
func Returns(prices []float64) []float64 {
	if len(prices) < 2 {
		return nil
	}
	returns := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		prev := prices[i-1]
		if prev <= 0 {
			continue
		}
		returns = append(returns, (prices[i]-prev)/prev)
	}
	return returns
}

// Volatility is the standard deviation of daily returns.
func Volatility(prices []float64) float64 {
	return StdDev(Returns(prices))
}

// Momentum returns the percentage change between the latest price and
// prices[len-period]. Returns 0 when history is shorter than period.
func Momentum(prices []float64, period int) float64 {
	n := len(prices)
	if period <= 0 || n < period {
		return 0
	}
	current := prices[n-1]
	past := prices[n-period]
	if past <= 0 {
		return 0
	}
	return (current - past) / past * 100
}
