package calculator

// NeutralRSI is returned when there is not enough history.
const NeutralRSI = 50.0

// RSI computes a windowed RSI over the most recent period price changes.
// Gains and losses are plain averages over the window, not Wilder-smoothed.
// Requires at least period+1 prices, otherwise returns NeutralRSI.
func RSI(prices []float64, period int) float64 {
	if period <= 0 || len(prices) < period+1 {
		return NeutralRSI
	}

	var gains, losses float64
	for i := len(prices) - period; i < len(prices); i++ {
		change := prices[i] - prices[i-1]
		if change > 0 {
			gains += change
		} else {
			losses -= change
		}
	}

	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	// all gains
	if avgLoss == 0 {
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}
