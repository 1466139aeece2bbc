package report

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"StockForecaster/internal/model"
)

// HorizonTable renders the projected prices and their change from the
// current price as a box-drawn table.
func HorizonTable(symbol string, f *model.Forecast) string {
	current := f.Indicators.CurrentPrice

	t := table.NewWriter()
	t.AppendHeader(table.Row{"Horizon", "Price", "Change"})
	for _, h := range f.Horizons() {
		t.AppendRow(table.Row{
			HorizonLabel(h.Days),
			FormatPrice(h.Price),
			FormatChange(model.ChangePercent(h.Price, current)),
		})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	t.SetStyle(table.StyleLight)
	title := fmt.Sprintf("%s forecast from %s (%s, %s)",
		symbol, FormatPrice(current), f.Trend, f.Confidence.Label)
	return title + "\n" + t.Render()
}

// IndicatorTable renders the indicator snapshot behind a forecast.
func IndicatorTable(ind model.IndicatorSet) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Indicator", "Value"})
	t.AppendRows([]table.Row{
		{"Price", FormatPrice(ind.CurrentPrice)},
		{"SMA 10", FormatPrice(ind.SMA10)},
		{"SMA 30", FormatPrice(ind.SMA30)},
		{"SMA 50", FormatPrice(ind.SMA50)},
		{"RSI 14", fmt.Sprintf("%.1f", ind.RSI14)},
		{"Momentum 14", FormatChange(ind.Momentum14)},
		{"Volatility", fmt.Sprintf("%.2f%%", ind.Volatility*100)},
		{"Trend strength", FormatChange(ind.TrendStrength * 100)},
	})
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
	t.SetStyle(table.StyleLight)
	return t.Render()
}
