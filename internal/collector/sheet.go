package collector

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"StockForecaster/internal/model"
)

// SheetSource reads quotes from a published spreadsheet CSV.
type SheetSource struct {
	URL    string
	Client *http.Client
}

// NewSheetSource creates a sheet source for a publish-to-web CSV URL.
func NewSheetSource(sheetURL, proxyURL string) *SheetSource {
	return &SheetSource{URL: sheetURL, Client: newHTTPClient(proxyURL)}
}

func (s *SheetSource) Name() string { return "sheet" }

// urls returns the publish URL followed by the export-style alternative.
func (s *SheetSource) urls() []string {
	urls := []string{s.URL}
	if strings.Contains(s.URL, "/pub?output=csv") {
		urls = append(urls, strings.Replace(s.URL, "/pub?output=csv", "/export?format=csv", 1))
	}
	return urls
}

// ListSymbols downloads the sheet and returns every parsed quote.
func (s *SheetSource) ListSymbols(ctx context.Context) ([]model.Quote, error) {
	if s.URL == "" {
		return nil, errors.New("sheet url not configured")
	}
	var errs []error
	for _, u := range s.urls() {
		quotes, err := s.fetchCSV(ctx, u)
		if err == nil {
			return quotes, nil
		}
		errs = append(errs, err)
	}
	return nil, errors.Join(errs...)
}

func (s *SheetSource) FetchQuote(ctx context.Context, symbol string) (*model.Quote, error) {
	quotes, err := s.ListSymbols(ctx)
	if err != nil {
		return nil, err
	}
	for i := range quotes {
		if quotes[i].Symbol == symbol {
			return &quotes[i], nil
		}
	}
	return nil, ErrSymbolNotFound
}

func (s *SheetSource) FetchHistory(context.Context, string, int) ([]model.PricePoint, error) {
	return nil, ErrNoHistory
}

func (s *SheetSource) fetchCSV(ctx context.Context, u string) ([]model.Quote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sheet fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("sheet fetch: status %d, body: %s", resp.StatusCode, string(body))
	}
	quotes, err := ParseQuotesCSV(resp.Body)
	if err != nil {
		return nil, err
	}
	if len(quotes) == 0 {
		return nil, errors.New("sheet: no valid rows")
	}
	return quotes, nil
}

type column int

const (
	colIgnore column = iota
	colSymbol
	colName
	colSector
	colPrice
	colPreviousClose
	colOpen
	colDayHigh
	colDayLow
	colWeek52High
	colWeek52Low
	colVolume
	colMarketCap
	colPE
	colEPS
)

// classifyHeader maps a header cell to a column. Order matters: the
// first matching rule wins.
func classifyHeader(h string) column {
	h = strings.ToLower(strings.TrimSpace(h))
	switch {
	case strings.Contains(h, "symbol"):
		return colSymbol
	case strings.Contains(h, "name") || strings.Contains(h, "company"):
		return colName
	case strings.Contains(h, "sector") || strings.Contains(h, "industry"):
		return colSector
	case strings.Contains(h, "price") || strings.Contains(h, "current"):
		return colPrice
	case strings.Contains(h, "previous") || strings.Contains(h, "close"):
		return colPreviousClose
	case strings.Contains(h, "open"):
		return colOpen
	case strings.Contains(h, "high") && !strings.Contains(h, "52"):
		return colDayHigh
	case strings.Contains(h, "low") && !strings.Contains(h, "52"):
		return colDayLow
	case strings.Contains(h, "52") && strings.Contains(h, "high"):
		return colWeek52High
	case strings.Contains(h, "52") && strings.Contains(h, "low"):
		return colWeek52Low
	case strings.Contains(h, "volume"):
		return colVolume
	case strings.Contains(h, "market") && strings.Contains(h, "cap"):
		return colMarketCap
	case strings.Contains(h, "pe") || strings.Contains(h, "p/e"):
		return colPE
	case strings.Contains(h, "eps"):
		return colEPS
	}
	return colIgnore
}

// ParseQuotesCSV parses a header-led quote sheet. Rows without a symbol
// or a positive price are skipped.
func ParseQuotesCSV(r io.Reader) ([]model.Quote, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	cols := make([]column, len(header))
	for i, h := range header {
		cols[i] = classifyHeader(h)
	}

	var quotes []model.Quote
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		q := model.Quote{}
		for i, raw := range record {
			if i >= len(cols) {
				break
			}
			setColumn(&q, cols[i], strings.TrimSpace(raw))
		}
		if q.Symbol == "" || q.Price <= 0 {
			continue
		}
		fillQuoteDefaults(&q)
		quotes = append(quotes, q)
	}
	return quotes, nil
}

func setColumn(q *model.Quote, col column, v string) {
	switch col {
	case colSymbol:
		q.Symbol = strings.ToUpper(v)
	case colName:
		q.Name = v
	case colSector:
		q.Sector = v
	case colPrice:
		q.Price = parseNumber(v)
	case colPreviousClose:
		q.PreviousClose = parseNumber(v)
	case colOpen:
		q.Open = parseNumber(v)
	case colDayHigh:
		q.DayHigh = parseNumber(v)
	case colDayLow:
		q.DayLow = parseNumber(v)
	case colWeek52High:
		q.Week52High = parseNumber(v)
	case colWeek52Low:
		q.Week52Low = parseNumber(v)
	case colVolume:
		q.Volume = int64(parseNumber(v))
	case colMarketCap:
		q.MarketCap = parseNumber(v)
	case colPE:
		q.PE = parseNumber(v)
	case colEPS:
		q.EPS = parseNumber(v)
	}
}

// parseNumber returns 0 for anything that is not a plain number.
func parseNumber(v string) float64 {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}

// fillQuoteDefaults derives missing fields from the price.
func fillQuoteDefaults(q *model.Quote) {
	p := q.Price
	if q.Name == "" {
		q.Name = q.Symbol
	}
	if q.Sector == "" {
		q.Sector = "N/A"
	}
	if q.PreviousClose <= 0 {
		q.PreviousClose = p
	}
	if q.Open <= 0 {
		q.Open = p
	}
	if q.DayHigh <= 0 {
		q.DayHigh = p * 1.02
	}
	if q.DayLow <= 0 {
		q.DayLow = p * 0.98
	}
	if q.Week52High <= 0 {
		q.Week52High = p * 1.15
	}
	if q.Week52Low <= 0 {
		q.Week52Low = p * 0.85
	}
	if q.Volume <= 0 {
		q.Volume = 1_000_000
	}
	if q.AvgVolume <= 0 {
		q.AvgVolume = q.Volume
	}
}
