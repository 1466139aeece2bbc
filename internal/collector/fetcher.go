package collector

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"StockForecaster/internal/model"
)

var (
	// ErrNoHistory is returned by sources that only serve quotes.
	ErrNoHistory = errors.New("source has no price history")
	// ErrSymbolNotFound is returned when a source does not know the symbol.
	ErrSymbolNotFound = errors.New("symbol not found")
)

// Source defines the interface for fetching market data.
type Source interface {
	FetchQuote(ctx context.Context, symbol string) (*model.Quote, error)
	FetchHistory(ctx context.Context, symbol string, days int) ([]model.PricePoint, error)
	Name() string
}

// SourceError records which source failed for which symbol.
type SourceError struct {
	Source string
	Symbol string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Source, e.Symbol, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// ChainError aggregates the failures of every source in a Chain.
type ChainError struct {
	Symbol string
	Errors []*SourceError
}

func (e *ChainError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("no sources configured for %s", e.Symbol)
	}
	parts := make([]string, len(e.Errors))
	for i, se := range e.Errors {
		parts[i] = se.Error()
	}
	return fmt.Sprintf("all sources failed for %s: %s", e.Symbol, strings.Join(parts, "; "))
}

func (e *ChainError) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, se := range e.Errors {
		errs[i] = se
	}
	return errs
}

// newHTTPClient builds a client with an optional proxy.
func newHTTPClient(proxyURL string) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{
		Timeout:   30 * time.Second,
		Transport: transport,
	}
}
