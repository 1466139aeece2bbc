package notifier

import (
	"fmt"
	"html"
	"math"
	"sort"
	"strings"

	"StockForecaster/internal/calculator"
	"StockForecaster/internal/model"
	"StockForecaster/internal/report"
)

// FormatForecastReport formats one symbol's quote and forecast into a Telegram message.
func FormatForecastReport(sf model.SymbolForecast) string {
	q := sf.Quote
	f := sf.Forecast
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>%s</b> %s | %s\n", html.EscapeString(q.Symbol),
		html.EscapeString(q.Name), sf.GeneratedAt.Format("2006-01-02 15:04")))
	if q.Sector != "" && q.Sector != "N/A" {
		b.WriteString(fmt.Sprintf("<i>%s</i>\n", html.EscapeString(q.Sector)))
	}
	b.WriteString("\n")

	// Price and daily change
	change := q.Price - q.PreviousClose
	changePct := model.ChangePercent(q.Price, q.PreviousClose)
	arrow := "↑"
	if change < 0 {
		arrow = "↓"
	}
	b.WriteString(fmt.Sprintf("Price: %s  %s %s (%s)\n",
		report.FormatPrice(q.Price), arrow, report.FormatPrice(math.Abs(change)), report.FormatChange(changePct)))
	b.WriteString(fmt.Sprintf("Day range: %s - %s\n", report.FormatPrice(q.DayLow), report.FormatPrice(q.DayHigh)))
	b.WriteString(fmt.Sprintf("52w range: %s - %s", report.FormatPrice(q.Week52Low), report.FormatPrice(q.Week52High)))
	if pos, err := calculator.RangePosition(q.Price, q.Week52High, q.Week52Low); err == nil {
		b.WriteString(fmt.Sprintf(" (%.0f%%)", pos*100))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Volume: %s", report.FormatVolume(q.Volume)))
	if q.MarketCap > 0 {
		b.WriteString(fmt.Sprintf(" | Mkt cap: %s", report.FormatMarketCap(q.MarketCap)))
	}
	b.WriteString("\n")
	if q.PE > 0 || q.EPS != 0 {
		b.WriteString(fmt.Sprintf("P/E: %.2f | EPS: %.2f\n", q.PE, q.EPS))
	}

	// Horizons
	b.WriteString("\n🔮 <b>Forecast:</b>\n")
	for _, h := range f.Horizons() {
		b.WriteString(fmt.Sprintf("  %-9s %s (%s)\n", report.HorizonLabel(h.Days)+":",
			report.FormatPrice(h.Price), report.FormatChange(model.ChangePercent(h.Price, q.Price))))
	}
	b.WriteString(fmt.Sprintf("\nTrend: %s | Confidence: %s\n", f.Trend, html.EscapeString(f.Confidence.Label)))

	// Factors
	if len(f.Factors) > 0 {
		b.WriteString("\n<b>Key factors:</b>\n")
		for _, factor := range f.Factors {
			b.WriteString(fmt.Sprintf("  • %s\n", html.EscapeString(factor)))
		}
	}

	if sf.Synthetic {
		b.WriteString("\n⚠️ Price history is simulated; no historical data source was available.\n")
	}
	b.WriteString(fmt.Sprintf("\n<i>Source: %s. Not financial advice.</i>", html.EscapeString(sf.Source)))
	return b.String()
}

// FormatWatchlist summarizes the latest forecast of every symbol.
func FormatWatchlist(forecasts []model.SymbolForecast) string {
	if len(forecasts) == 0 {
		return "📋 Watchlist is empty. No forecasts yet."
	}
	var b strings.Builder
	b.WriteString("📋 <b>Watchlist</b>\n\n")
	for _, sf := range forecasts {
		icon := "📈"
		if sf.Forecast.Trend == model.TrendBearish {
			icon = "📉"
		}
		b.WriteString(fmt.Sprintf("%s <b>%s</b> %s → 30d %s (%s) | %s\n",
			icon, html.EscapeString(sf.Quote.Symbol),
			report.FormatPrice(sf.Quote.Price),
			report.FormatPrice(sf.Forecast.Day30),
			report.FormatChange(model.ChangePercent(sf.Forecast.Day30, sf.Quote.Price)),
			sf.Forecast.Confidence.Level))
	}
	return b.String()
}

// FormatSearchResults lists matching instruments.
func FormatSearchResults(query string, quotes []model.Quote) string {
	if len(quotes) == 0 {
		return fmt.Sprintf("🔍 No stocks found for \"%s\"", html.EscapeString(query))
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🔍 <b>Results for \"%s\"</b>\n\n", html.EscapeString(query)))
	for _, q := range quotes {
		sector := q.Sector
		if sector == "" {
			sector = "N/A"
		}
		b.WriteString(fmt.Sprintf("<b>%s</b> %s <i>(%s)</i>\n",
			html.EscapeString(q.Symbol), html.EscapeString(q.Name), html.EscapeString(sector)))
	}
	b.WriteString("\nUse /forecast SYMBOL for a forecast.")
	return b.String()
}

// FormatRefreshFailures reports symbols that could not be refreshed.
func FormatRefreshFailures(failed map[string]error) string {
	var b strings.Builder
	b.WriteString("⚠️ <b>Refresh failures</b>\n\n")
	symbols := make([]string, 0, len(failed))
	for symbol := range failed {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	for _, symbol := range symbols {
		b.WriteString(fmt.Sprintf("%s: %s\n", html.EscapeString(symbol), html.EscapeString(failed[symbol].Error())))
	}
	return b.String()
}

// FormatForecastFailure reports a failed on-demand forecast.
func FormatForecastFailure(symbol string, err error) string {
	return fmt.Sprintf("❌ Forecast for <b>%s</b> failed: %s",
		html.EscapeString(symbol), html.EscapeString(err.Error()))
}

// FormatHelp lists the supported commands.
func FormatHelp() string {
	return "🤖 <b>Commands</b>\n\n" +
		"/forecast SYMBOL - forecast one symbol\n" +
		"/refresh SYMBOL - forecast from freshly fetched data\n" +
		"/watchlist - latest forecasts for the watchlist\n" +
		"/search QUERY - find symbols by ticker or name\n" +
		"/help - this message"
}
