package collector

import (
	"context"
	"sort"

	"StockForecaster/internal/model"
)

// DemoSource serves a fixed set of well-known instruments. It is the
// last resort when no live source is reachable.
type DemoSource struct {
	quotes map[string]model.Quote
}

// NewDemoSource creates a demo source with the built-in instruments.
func NewDemoSource() *DemoSource {
	d := &DemoSource{quotes: make(map[string]model.Quote, len(demoQuotes))}
	for _, q := range demoQuotes {
		fillQuoteDefaults(&q)
		d.quotes[q.Symbol] = q
	}
	return d
}

func (d *DemoSource) Name() string { return "demo" }

func (d *DemoSource) FetchQuote(_ context.Context, symbol string) (*model.Quote, error) {
	q, ok := d.quotes[symbol]
	if !ok {
		return nil, ErrSymbolNotFound
	}
	return &q, nil
}

func (d *DemoSource) FetchHistory(context.Context, string, int) ([]model.PricePoint, error) {
	return nil, ErrNoHistory
}

// ListSymbols returns the demo instruments sorted by symbol.
func (d *DemoSource) ListSymbols(context.Context) ([]model.Quote, error) {
	out := make([]model.Quote, 0, len(d.quotes))
	for _, q := range d.quotes {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out, nil
}

var demoQuotes = []model.Quote{
	// US stocks
	{Symbol: "AAPL", Name: "Apple Inc.", Sector: "Technology", Price: 189.84, PreviousClose: 187.15, MarketCap: 2.95e12, PE: 29.4, EPS: 6.46, Volume: 52_000_000},
	{Symbol: "MSFT", Name: "Microsoft Corporation", Sector: "Technology", Price: 415.26, PreviousClose: 411.22, MarketCap: 3.09e12, PE: 36.1, EPS: 11.5, Volume: 21_000_000},
	{Symbol: "GOOGL", Name: "Alphabet Inc.", Sector: "Communication Services", Price: 171.95, PreviousClose: 170.34, MarketCap: 2.13e12, PE: 26.2, EPS: 6.56, Volume: 24_000_000},
	{Symbol: "AMZN", Name: "Amazon.com Inc.", Sector: "Consumer Cyclical", Price: 183.63, PreviousClose: 185.07, MarketCap: 1.91e12, PE: 51.5, EPS: 3.57, Volume: 38_000_000},
	{Symbol: "NVDA", Name: "NVIDIA Corporation", Sector: "Technology", Price: 121.79, PreviousClose: 118.11, MarketCap: 2.99e12, PE: 71.3, EPS: 1.71, Volume: 310_000_000},
	{Symbol: "META", Name: "Meta Platforms Inc.", Sector: "Communication Services", Price: 498.43, PreviousClose: 494.12, MarketCap: 1.26e12, PE: 28.9, EPS: 17.25, Volume: 14_000_000},
	{Symbol: "TSLA", Name: "Tesla Inc.", Sector: "Consumer Cyclical", Price: 178.01, PreviousClose: 182.47, MarketCap: 5.68e11, PE: 45.2, EPS: 3.94, Volume: 92_000_000},
	{Symbol: "JPM", Name: "JPMorgan Chase & Co.", Sector: "Financial Services", Price: 199.95, PreviousClose: 198.4, MarketCap: 5.74e11, PE: 12.1, EPS: 16.52, Volume: 9_000_000},
	{Symbol: "V", Name: "Visa Inc.", Sector: "Financial Services", Price: 275.12, PreviousClose: 273.9, MarketCap: 5.52e11, PE: 31.2, EPS: 8.82, Volume: 6_500_000},
	{Symbol: "WMT", Name: "Walmart Inc.", Sector: "Consumer Defensive", Price: 67.8, PreviousClose: 67.35, MarketCap: 5.46e11, PE: 29.1, EPS: 2.33, Volume: 15_000_000},
	{Symbol: "KO", Name: "The Coca-Cola Company", Sector: "Consumer Defensive", Price: 62.45, PreviousClose: 62.71, MarketCap: 2.69e11, PE: 25.3, EPS: 2.47, Volume: 12_000_000},
	{Symbol: "DIS", Name: "The Walt Disney Company", Sector: "Communication Services", Price: 101.56, PreviousClose: 102.88, MarketCap: 1.85e11, PE: 111.6, EPS: 0.91, Volume: 10_000_000},
	{Symbol: "NFLX", Name: "Netflix Inc.", Sector: "Communication Services", Price: 640.47, PreviousClose: 633.9, MarketCap: 2.76e11, PE: 44.7, EPS: 14.33, Volume: 3_000_000},
	{Symbol: "INTC", Name: "Intel Corporation", Sector: "Technology", Price: 30.68, PreviousClose: 31.12, MarketCap: 1.31e11, PE: 31.9, EPS: 0.96, Volume: 40_000_000},
	{Symbol: "AMD", Name: "Advanced Micro Devices Inc.", Sector: "Technology", Price: 159.2, PreviousClose: 156.4, MarketCap: 2.57e11, PE: 236.2, EPS: 0.67, Volume: 48_000_000},
	// Forex
	{Symbol: "EURUSD", Name: "Euro / US Dollar", Sector: "Forex", Price: 1.0842, PreviousClose: 1.0831},
	{Symbol: "GBPUSD", Name: "British Pound / US Dollar", Sector: "Forex", Price: 1.2715, PreviousClose: 1.2698},
	{Symbol: "USDJPY", Name: "US Dollar / Japanese Yen", Sector: "Forex", Price: 156.82, PreviousClose: 157.1},
	{Symbol: "AUDUSD", Name: "Australian Dollar / US Dollar", Sector: "Forex", Price: 0.6651, PreviousClose: 0.6643},
	{Symbol: "USDCHF", Name: "US Dollar / Swiss Franc", Sector: "Forex", Price: 0.9012, PreviousClose: 0.9025},
	// Crypto
	{Symbol: "BTC", Name: "Bitcoin", Sector: "Cryptocurrency", Price: 67432.18, PreviousClose: 66210.5, MarketCap: 1.33e12},
	{Symbol: "ETH", Name: "Ethereum", Sector: "Cryptocurrency", Price: 3521.44, PreviousClose: 3488.9, MarketCap: 4.23e11},
	{Symbol: "BNB", Name: "BNB", Sector: "Cryptocurrency", Price: 589.3, PreviousClose: 581.75, MarketCap: 8.7e10},
	{Symbol: "SOL", Name: "Solana", Sector: "Cryptocurrency", Price: 164.27, PreviousClose: 159.8, MarketCap: 7.4e10},
	{Symbol: "XRP", Name: "XRP", Sector: "Cryptocurrency", Price: 0.5213, PreviousClose: 0.5178, MarketCap: 2.9e10},
}
