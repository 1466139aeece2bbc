package model

// IndicatorSet holds the indicators computed for a single forecast call.
type IndicatorSet struct {
	CurrentPrice  float64 `json:"current_price"`
	SMA10         float64 `json:"sma10"`
	SMA30         float64 `json:"sma30"`
	SMA50         float64 `json:"sma50"`
	RSI14         float64 `json:"rsi14"`
	Momentum14    float64 `json:"momentum14"`
	Volatility    float64 `json:"volatility"`     // population stddev of daily returns
	TrendStrength float64 `json:"trend_strength"` // |sma10-sma30| / sma30
}

// TrendAlignment describes how the short, medium and long averages line up.
type TrendAlignment string

const (
	AlignmentStrongBullish TrendAlignment = "strong_bullish"
	AlignmentStrongBearish TrendAlignment = "strong_bearish"
	AlignmentMixed         TrendAlignment = "mixed"
)

// VolumeTrend compares recent volume with the series average.
type VolumeTrend string

const (
	VolumeIncreasing VolumeTrend = "increasing"
	VolumeDecreasing VolumeTrend = "decreasing"
	VolumeStable     VolumeTrend = "stable"
)

// Analysis is the multi-timeframe view of a series.
type Analysis struct {
	TrendAlignment TrendAlignment `json:"trend_alignment"`
	VolumeTrend    VolumeTrend    `json:"volume_trend"`
	ShortTerm      float64        `json:"short_term"`
	MediumTerm     float64        `json:"medium_term"`
	LongTerm       float64        `json:"long_term"`
}
