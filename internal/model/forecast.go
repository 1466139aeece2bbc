package model

// Trend is the direction implied by the moving-average crossover.
type Trend string

const (
	TrendBullish Trend = "bullish"
	TrendBearish Trend = "bearish"
)

// ConfidenceLevel is the coarse bucket of the confidence score.
type ConfidenceLevel string

const (
	ConfidenceLow      ConfidenceLevel = "Low"
	ConfidenceModerate ConfidenceLevel = "Moderate"
	ConfidenceHigh     ConfidenceLevel = "High"
)

// Confidence is the additive confidence score and its display label.
type Confidence struct {
	Level ConfidenceLevel `json:"level"`
	Score int             `json:"score"`
	Label string          `json:"label"` // e.g. "High (75-85%)"
}

// HorizonPrice is a projected price at a number of days ahead.
type HorizonPrice struct {
	Days  int     `json:"days"`
	Price float64 `json:"price"`
}

// Forecast is the output of the forecast engine.
type Forecast struct {
	Day7   float64 `json:"day7"`
	Day30  float64 `json:"day30"`
	Day90  float64 `json:"day90"`
	Day180 float64 `json:"day180"`
	Day365 float64 `json:"day365"`
	Day730 float64 `json:"day730"`

	Confidence Confidence `json:"confidence"`
	Trend      Trend      `json:"trend"`
	Factors    []string   `json:"factors"`

	// TrendMultiplier is a sentiment signal only; projections do not use it.
	TrendMultiplier float64      `json:"trend_multiplier"`
	Indicators      IndicatorSet `json:"indicators"`
}

// Horizons returns the projected prices ordered from 7 to 730 days.
func (f *Forecast) Horizons() []HorizonPrice {
	return []HorizonPrice{
		{Days: 7, Price: f.Day7},
		{Days: 30, Price: f.Day30},
		{Days: 90, Price: f.Day90},
		{Days: 180, Price: f.Day180},
		{Days: 365, Price: f.Day365},
		{Days: 730, Price: f.Day730},
	}
}

// ChangePercent returns the percentage move from current to target.
func ChangePercent(target, current float64) float64 {
	if current == 0 {
		return 0
	}
	return (target - current) / current * 100
}
