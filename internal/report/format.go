package report

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// FormatPrice scales precision to the magnitude of the price.
func FormatPrice(price float64) string {
	switch {
	case price < 1:
		return fmt.Sprintf("$%.4f", price)
	case price < 100:
		return fmt.Sprintf("$%.2f", price)
	}
	return FormatCurrency(price)
}

// FormatCurrency renders a whole-dollar amount with thousands separators.
func FormatCurrency(v float64) string {
	return "$" + humanize.Comma(int64(math.Round(v)))
}

// FormatMarketCap abbreviates to trillions, billions or millions.
func FormatMarketCap(v float64) string {
	switch {
	case v >= 1e12:
		return fmt.Sprintf("$%.2fT", v/1e12)
	case v >= 1e9:
		return fmt.Sprintf("$%.2fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("$%.2fM", v/1e6)
	}
	return FormatCurrency(v)
}

// FormatVolume renders a share count with thousands separators.
func FormatVolume(v int64) string {
	return humanize.Comma(v)
}

// FormatChange renders a signed percentage with two decimals.
func FormatChange(pct float64) string {
	if pct >= 0 {
		return fmt.Sprintf("+%.2f%%", math.Abs(pct))
	}
	return fmt.Sprintf("%.2f%%", pct)
}

// HorizonLabel names a horizon in days the way the forecast display does.
func HorizonLabel(days int) string {
	switch days {
	case 7:
		return "7 Days"
	case 30:
		return "1 Month"
	case 90:
		return "3 Months"
	case 180:
		return "6 Months"
	case 365:
		return "1 Year"
	case 730:
		return "2 Years"
	}
	return fmt.Sprintf("%d Days", days)
}
