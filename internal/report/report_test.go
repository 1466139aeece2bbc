package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockForecaster/internal/model"
)

func series(n int) []model.PricePoint {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]model.PricePoint, n)
	for i := range out {
		out[i] = model.PricePoint{Date: start.AddDate(0, 0, i), Price: float64(100 + i), Volume: 1000}
	}
	return out
}

func forecast() *model.Forecast {
	return &model.Forecast{
		Day7: 102.5, Day30: 105, Day90: 112, Day180: 118, Day365: 128, Day730: 145,
		Trend:      model.TrendBullish,
		Confidence: model.Confidence{Level: model.ConfidenceModerate, Score: 70, Label: "Moderate (60-75%)"},
		Indicators: model.IndicatorSet{CurrentPrice: 100, SMA10: 99, SMA30: 97, SMA50: 95, RSI14: 61.2},
	}
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0.52131, "$0.5213"},
		{1.0842, "$1.08"},
		{99.999, "$100.00"},
		{189.84, "$190"},
		{67432.18, "$67,432"},
		{1234567.5, "$1,234,568"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPrice(tt.in), "%v", tt.in)
	}
}

func TestFormatMarketCap(t *testing.T) {
	assert.Equal(t, "$2.95T", FormatMarketCap(2.95e12))
	assert.Equal(t, "$87.00B", FormatMarketCap(8.7e10))
	assert.Equal(t, "$1.50M", FormatMarketCap(1.5e6))
	assert.Equal(t, "$999,999", FormatMarketCap(999999))
}

func TestFormatChangeAndVolume(t *testing.T) {
	assert.Equal(t, "+2.50%", FormatChange(2.5))
	assert.Equal(t, "-1.25%", FormatChange(-1.25))
	assert.Equal(t, "+0.00%", FormatChange(0))
	assert.Equal(t, "52,000,000", FormatVolume(52_000_000))
}

func TestRangeDaysAndFilter(t *testing.T) {
	tests := map[string]int{
		"1D": 1, "5D": 5, "1M": 30, "3M": 90, "6M": 180, "1Y": 365, "5Y": 1825,
		"1y": 365, "": 30, "bogus": 30,
	}
	for rng, want := range tests {
		assert.Equal(t, want, RangeDays(rng), rng)
	}

	points := series(400)
	got := FilterByRange(points, "3M")
	require.Len(t, got, 90)
	assert.Equal(t, points[len(points)-1], got[89])
	assert.Equal(t, points[310], got[0])

	short := series(10)
	assert.Len(t, FilterByRange(short, "1Y"), 10)
}

func TestHorizonTable(t *testing.T) {
	out := HorizonTable("AAPL", forecast())
	for _, want := range []string{
		"AAPL", "bullish", "Moderate (60-75%)",
		"7 Days", "2 Years", "$102.50", "+2.50%", "$145", "+45.00%",
	} {
		assert.Contains(t, out, want)
	}
	assert.True(t, strings.HasPrefix(out, "AAPL forecast from $100 (bullish, Moderate (60-75%))\n"))
}

func TestIndicatorTable(t *testing.T) {
	out := IndicatorTable(forecast().Indicators)
	assert.Contains(t, out, "SMA 50")
	assert.Contains(t, out, "61.2")
}

func TestRenderChart(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderChart(&buf, "AAPL", series(30), forecast()))
	html := buf.String()
	assert.Contains(t, html, "Actual Price")
	assert.Contains(t, html, "Predicted Price")
	assert.Contains(t, html, "2024-01-30")
	// Projections land 7, 30 and 90 days after the last observation.
	assert.Contains(t, html, "2024-02-06")
	assert.Contains(t, html, "2024-02-29")
	assert.Contains(t, html, "2024-04-29")
}

func TestNewChart_EmptyHistory(t *testing.T) {
	_, err := NewChart("AAPL", nil, forecast())
	assert.Error(t, err)
}

func TestWriteChart(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "charts")
	path, err := WriteChart(dir, "MSFT", series(5), forecast())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "MSFT.html"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "MSFT")
}
