package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"StockForecaster/internal/model"
)

const defaultYahooBaseURL = "https://query1.finance.yahoo.com"

// YahooSource implements Source using the Yahoo Finance chart API.
type YahooSource struct {
	BaseURL   string
	Client    *http.Client
	SymbolMap map[string]string // maps internal symbol to Yahoo ticker

	// ExchangeSuffix is retried for four-letter exchange codes Yahoo does not list bare.
	ExchangeSuffix string
}

// NewYahooSource creates a new Yahoo Finance source.
func NewYahooSource(proxyURL string) *YahooSource {
	return &YahooSource{
		BaseURL:        defaultYahooBaseURL,
		Client:         newHTTPClient(proxyURL),
		ExchangeSuffix: ".JK",
		SymbolMap: map[string]string{
			"SPX500": "^GSPC",
			"SPX":    "^GSPC",
			"SP500":  "^GSPC",
			"EURUSD": "EURUSD=X",
			"GBPUSD": "GBPUSD=X",
			"USDJPY": "JPY=X",
			"BTC":    "BTC-USD",
			"ETH":    "ETH-USD",
		},
	}
}

func (s *YahooSource) Name() string { return "yahoo" }

func (s *YahooSource) yahooSymbol(symbol string) string {
	if mapped, ok := s.SymbolMap[symbol]; ok {
		return mapped
	}
	return symbol
}

// yahooChart is the response structure from Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta       yahooMeta `json:"meta"`
			Timestamp  []int64   `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type yahooMeta struct {
	Symbol             string  `json:"symbol"`
	LongName           string  `json:"longName"`
	ShortName          string  `json:"shortName"`
	InstrumentType     string  `json:"instrumentType"`
	RegularMarketPrice float64 `json:"regularMarketPrice"`
	ChartPreviousClose float64 `json:"chartPreviousClose"`
	DayHigh            float64 `json:"regularMarketDayHigh"`
	DayLow             float64 `json:"regularMarketDayLow"`
	Volume             float64 `json:"regularMarketVolume"`
	FiftyTwoWeekHigh   float64 `json:"fiftyTwoWeekHigh"`
	FiftyTwoWeekLow    float64 `json:"fiftyTwoWeekLow"`
}

type yahooBar struct {
	point model.PricePoint
	open  float64
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

func at(values []interface{}, i int) float64 {
	if i >= len(values) {
		return 0
	}
	return toFloat(values[i])
}

func (s *YahooSource) fetchChart(ctx context.Context, symbol, interval, rng string) (*yahooMeta, []yahooBar, error) {
	ticker := s.yahooSymbol(symbol)
	meta, bars, err := s.fetchTicker(ctx, ticker, interval, rng)
	if errors.Is(err, ErrSymbolNotFound) && s.ExchangeSuffix != "" && ticker == symbol && IsExchangeCode(symbol) {
		return s.fetchTicker(ctx, symbol+s.ExchangeSuffix, interval, rng)
	}
	return meta, bars, err
}

func (s *YahooSource) fetchTicker(ctx context.Context, ticker, interval, rng string) (*yahooMeta, []yahooBar, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=%s&range=%s",
		s.BaseURL, url.PathEscape(ticker), interval, rng)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil, ErrSymbolNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, nil, fmt.Errorf("yahoo: no data returned")
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, nil, fmt.Errorf("yahoo: no quote indicators")
	}
	quote := result.Indicators.Quote[0]
	bars := make([]yahooBar, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		c := at(quote.Close, i)
		if c <= 0 {
			continue // skip null bars (holidays etc.)
		}
		t := time.Unix(ts, 0).UTC()
		bars = append(bars, yahooBar{
			point: model.PricePoint{
				Date:   time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC),
				Price:  c,
				Volume: int64(at(quote.Volume, i)),
			},
			open: at(quote.Open, i),
		})
	}

	if len(bars) == 0 {
		return nil, nil, fmt.Errorf("yahoo: only null bars returned")
	}
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].point.Date.Before(bars[j].point.Date) })
	return &result.Meta, bars, nil
}

// FetchHistory returns up to days daily closes, oldest first.
func (s *YahooSource) FetchHistory(ctx context.Context, symbol string, days int) ([]model.PricePoint, error) {
	// Yahoo range: max "5y" for daily interval
	rng := "5y"
	if days <= 30 {
		rng = "1mo"
	} else if days <= 90 {
		rng = "3mo"
	} else if days <= 180 {
		rng = "6mo"
	} else if days <= 365 {
		rng = "1y"
	} else if days <= 730 {
		rng = "2y"
	}
	_, bars, err := s.fetchChart(ctx, symbol, "1d", rng)
	if err != nil {
		return nil, err
	}
	points := make([]model.PricePoint, len(bars))
	for i, b := range bars {
		points[i] = b.point
	}
	// Trim to requested count
	if days > 0 && len(points) > days {
		points = points[len(points)-days:]
	}
	return points, nil
}

// FetchQuote builds a quote from the chart metadata and the latest bar.
func (s *YahooSource) FetchQuote(ctx context.Context, symbol string) (*model.Quote, error) {
	meta, bars, err := s.fetchChart(ctx, symbol, "1d", "5d")
	if err != nil {
		return nil, err
	}
	last := bars[len(bars)-1]
	q := &model.Quote{
		Symbol:        symbol,
		Name:          meta.LongName,
		Sector:        meta.InstrumentType,
		Price:         meta.RegularMarketPrice,
		PreviousClose: meta.ChartPreviousClose,
		Open:          last.open,
		DayHigh:       meta.DayHigh,
		DayLow:        meta.DayLow,
		Week52High:    meta.FiftyTwoWeekHigh,
		Week52Low:     meta.FiftyTwoWeekLow,
		Volume:        int64(meta.Volume),
	}
	if q.Name == "" {
		q.Name = meta.ShortName
	}
	if q.Name == "" {
		q.Name = symbol
	}
	if q.Price <= 0 {
		q.Price = last.point.Price
	}
	if len(bars) >= 2 && q.PreviousClose <= 0 {
		q.PreviousClose = bars[len(bars)-2].point.Price
	}
	var total int64
	for _, b := range bars {
		total += b.point.Volume
	}
	q.AvgVolume = total / int64(len(bars))
	fillQuoteDefaults(q)
	return q, nil
}
