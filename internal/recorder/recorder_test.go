package recorder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockForecaster/internal/model"
)

func sampleForecast() *model.Forecast {
	return &model.Forecast{
		Day7: 101, Day30: 103, Day90: 108, Day180: 112, Day365: 120, Day730: 140,
		Trend:      model.TrendBullish,
		Confidence: model.Confidence{Level: model.ConfidenceHigh, Score: 80, Label: "High (75-85%)"},
		Factors:    []string{"📈 Strong upward trend", "✅ Low volatility"},
		Indicators: model.IndicatorSet{CurrentPrice: 100, RSI14: 55, Momentum14: 3, Volatility: 0.01, TrendStrength: 0.02},
	}
}

func openMemory(t *testing.T) *SQLiteRecorder {
	t.Helper()
	r, err := NewSQLiteRecorder(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestNewForecastRecord(t *testing.T) {
	rec := NewForecastRecord("run-1", "AAPL", "demo", true, sampleForecast())
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "run-1", rec.RunID)
	assert.Equal(t, 100.0, rec.Price)
	assert.Equal(t, 80, rec.ConfidenceScore)
	require.Len(t, rec.Horizons, 6)
	assert.Equal(t, 140.0, rec.Horizons[5].Price)

	other := NewForecastRecord("run-1", "AAPL", "demo", true, sampleForecast())
	assert.NotEqual(t, rec.ID, other.ID)
}

func TestSQLiteRecorder_RoundTrip(t *testing.T) {
	r := openMemory(t)

	base := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		rec := NewForecastRecord("run", "AAPL", "yahoo", false, sampleForecast())
		rec.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		rec.Price = float64(100 + i)
		require.NoError(t, r.RecordForecast(rec))
	}
	require.NoError(t, r.RecordForecast(NewForecastRecord("run", "MSFT", "demo", true, sampleForecast())))

	got, err := r.Recent("AAPL", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 102.0, got[0].Price, "newest first")
	assert.Equal(t, 101.0, got[1].Price)
	assert.Equal(t, base.Add(2*time.Hour).Unix(), got[0].CreatedAt.Unix())
	assert.Equal(t, model.TrendBullish, got[0].Trend)
	assert.Equal(t, model.ConfidenceHigh, got[0].ConfidenceLevel)
	assert.False(t, got[0].Synthetic)
	assert.Equal(t, []string{"📈 Strong upward trend", "✅ Low volatility"}, got[0].Factors)
	assert.Equal(t, sampleForecast().Horizons(), got[0].Horizons)

	msft, err := r.Recent("MSFT", 0)
	require.NoError(t, err)
	require.Len(t, msft, 1)
	assert.True(t, msft[0].Synthetic)

	none, err := r.Recent("NOPE", 5)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSQLiteRecorder_DuplicateID(t *testing.T) {
	r := openMemory(t)
	rec := NewForecastRecord("run", "AAPL", "demo", true, sampleForecast())
	require.NoError(t, r.RecordForecast(rec))
	assert.Error(t, r.RecordForecast(rec))
}

func TestSQLiteRecorder_RecordRun(t *testing.T) {
	r := openMemory(t)
	run := &RunEvent{
		RunID:      NewRunID(),
		StartedAt:  time.Now(),
		Duration:   1500 * time.Millisecond,
		Trigger:    "cron",
		Symbols:    3,
		Failures:   1,
		FailedList: []string{"ZZZZ"},
	}
	require.NoError(t, r.RecordRun(run))

	var kind, failed string
	var ms int64
	err := r.db.QueryRow(`SELECT kind, duration_ms, failed FROM refresh_runs WHERE run_id = ?`, run.RunID).
		Scan(&kind, &ms, &failed)
	require.NoError(t, err)
	assert.Equal(t, "cron", kind)
	assert.Equal(t, int64(1500), ms)
	assert.Equal(t, "ZZZZ", failed)
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NewNoopRecorder()
	assert.NoError(t, r.RecordForecast(NewForecastRecord("", "X", "", false, sampleForecast())))
	assert.NoError(t, r.RecordRun(&RunEvent{}))
	got, err := r.Recent("X", 1)
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, r.Close())
}
