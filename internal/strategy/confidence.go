package strategy

import "StockForecaster/internal/model"

// ConfidenceTiers maps a minimum confidence score to its level and label.
var ConfidenceTiers = []struct {
	MinScore int
	Level    model.ConfidenceLevel
	Label    string
}{
	{75, model.ConfidenceHigh, "High (75-85%)"},
	{60, model.ConfidenceModerate, "Moderate (60-75%)"},
}

// DefaultConfidence is used for scores below every tier.
var DefaultConfidence = struct {
	Level model.ConfidenceLevel
	Label string
}{model.ConfidenceLow, "Low (45-60%)"}

// ScoreConfidence adds up the volatility, trend-strength and RSI terms
// plus a flat base of 15.
func ScoreConfidence(volatility, trendStrength, rsi float64) model.Confidence {
	score := 0

	switch {
	case volatility < 0.02:
		score += 30
	case volatility < 0.04:
		score += 20
	default:
		score += 10
	}

	switch {
	case trendStrength > 0.05:
		score += 30
	case trendStrength > 0.02:
		score += 20
	default:
		score += 10
	}

	if rsi >= 30 && rsi <= 70 {
		score += 25
	} else {
		score += 15
	}

	score += 15

	return mapConfidence(score)
}

func mapConfidence(score int) model.Confidence {
	for _, t := range ConfidenceTiers {
		if score >= t.MinScore {
			return model.Confidence{Level: t.Level, Score: score, Label: t.Label}
		}
	}
	return model.Confidence{Level: DefaultConfidence.Level, Score: score, Label: DefaultConfidence.Label}
}
