package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"StockForecaster/internal/model"
)

// ChartHorizons are the projections drawn after the last observation.
var ChartHorizons = []int{7, 30, 90}

const (
	colorUp        = "#10B981"
	colorDown      = "#EF4444"
	colorPredicted = "#F59E0B"
	dateLayout     = "2006-01-02"
	missingValue   = "-"
)

// RangeDays maps a chart range label to a number of observations.
// Unknown labels select one month.
func RangeDays(rng string) int {
	switch strings.ToUpper(rng) {
	case "1D":
		return 1
	case "5D":
		return 5
	case "1M":
		return 30
	case "3M":
		return 90
	case "6M":
		return 180
	case "1Y":
		return 365
	case "5Y":
		return 1825
	}
	return 30
}

// FilterByRange keeps the most recent observations for the range label.
func FilterByRange(points []model.PricePoint, rng string) []model.PricePoint {
	n := RangeDays(rng)
	if len(points) <= n {
		return points
	}
	return points[len(points)-n:]
}

// NewChart builds a line chart of history with the short-horizon
// projections continuing from the last observation.
func NewChart(symbol string, history []model.PricePoint, f *model.Forecast) (*charts.Line, error) {
	if len(history) == 0 {
		return nil, fmt.Errorf("chart %s: empty history", symbol)
	}
	last := history[len(history)-1]

	byDays := make(map[int]float64)
	for _, h := range f.Horizons() {
		byDays[h.Days] = h.Price
	}

	dates := make([]string, 0, len(history)+len(ChartHorizons))
	actual := make([]opts.LineData, 0, cap(dates))
	predicted := make([]opts.LineData, 0, cap(dates))
	for i, p := range history {
		dates = append(dates, p.Date.Format(dateLayout))
		actual = append(actual, opts.LineData{Value: p.Price})
		if i == len(history)-1 {
			predicted = append(predicted, opts.LineData{Value: p.Price})
		} else {
			predicted = append(predicted, opts.LineData{Value: missingValue})
		}
	}
	for _, d := range ChartHorizons {
		dates = append(dates, last.Date.Add(time.Duration(d)*24*time.Hour).Format(dateLayout))
		actual = append(actual, opts.LineData{Value: missingValue})
		predicted = append(predicted, opts.LineData{Value: byDays[d]})
	}

	lineColor := colorUp
	if last.Price < history[0].Price {
		lineColor = colorDown
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: symbol + " forecast",
			Width:     "1200px",
			Height:    "600px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    symbol,
			Subtitle: fmt.Sprintf("%s trend, confidence %s", f.Trend, f.Confidence.Label),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	line.SetXAxis(dates).
		AddSeries("Actual Price", actual,
			charts.WithLineStyleOpts(opts.LineStyle{Color: lineColor})).
		AddSeries("Predicted Price", predicted,
			charts.WithLineStyleOpts(opts.LineStyle{Color: colorPredicted, Type: "dashed"})).
		SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return line, nil
}

// RenderChart writes the chart page as HTML.
func RenderChart(w io.Writer, symbol string, history []model.PricePoint, f *model.Forecast) error {
	line, err := NewChart(symbol, history, f)
	if err != nil {
		return err
	}
	return line.Render(w)
}

// WriteChart renders the chart into dir/<symbol>.html and returns the path.
func WriteChart(dir, symbol string, history []model.PricePoint, f *model.Forecast) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create chart dir: %w", err)
	}
	path := filepath.Join(dir, symbol+".html")
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create chart file: %w", err)
	}
	defer file.Close()
	if err := RenderChart(file, symbol, history, f); err != nil {
		return "", fmt.Errorf("render chart %s: %w", symbol, err)
	}
	return path, nil
}
