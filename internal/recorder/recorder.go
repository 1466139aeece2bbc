package recorder

import (
	"time"

	"github.com/google/uuid"

	"StockForecaster/internal/model"
)

// ForecastRecord is one persisted forecast.
type ForecastRecord struct {
	ID              string
	RunID           string
	Symbol          string
	Source          string
	Synthetic       bool
	CreatedAt       time.Time
	Price           float64
	Trend           model.Trend
	ConfidenceLevel model.ConfidenceLevel
	ConfidenceScore int
	Horizons        []model.HorizonPrice
	RSI             float64
	Momentum        float64
	Volatility      float64
	TrendStrength   float64
	Factors         []string
}

// NewForecastRecord flattens a forecast for storage.
func NewForecastRecord(runID, symbol, source string, synthetic bool, f *model.Forecast) *ForecastRecord {
	return &ForecastRecord{
		ID:              uuid.NewString(),
		RunID:           runID,
		Symbol:          symbol,
		Source:          source,
		Synthetic:       synthetic,
		CreatedAt:       time.Now(),
		Price:           f.Indicators.CurrentPrice,
		Trend:           f.Trend,
		ConfidenceLevel: f.Confidence.Level,
		ConfidenceScore: f.Confidence.Score,
		Horizons:        f.Horizons(),
		RSI:             f.Indicators.RSI14,
		Momentum:        f.Indicators.Momentum14,
		Volatility:      f.Indicators.Volatility,
		TrendStrength:   f.Indicators.TrendStrength,
		Factors:         f.Factors,
	}
}

// RunEvent summarizes one refresh of the watchlist.
type RunEvent struct {
	RunID      string
	StartedAt  time.Time
	Duration   time.Duration
	Trigger    string // "cron", "startup", "command"
	Symbols    int
	Failures   int
	FailedList []string
}

// NewRunID returns a fresh identifier for a refresh run.
func NewRunID() string { return uuid.NewString() }

// Recorder persists forecast history for later review.
type Recorder interface {
	RecordForecast(rec *ForecastRecord) error
	RecordRun(run *RunEvent) error
	Recent(symbol string, limit int) ([]ForecastRecord, error)
	Close() error
}
