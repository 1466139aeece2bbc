package collector

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"StockForecaster/internal/calculator"
	"StockForecaster/internal/model"
	"StockForecaster/internal/synthetic"
)

// DefaultHistoryDays is the synthetic history length when no source has one.
const DefaultHistoryDays = 365

// Snapshot is everything needed to forecast one symbol.
type Snapshot struct {
	Quote     model.Quote        `json:"quote"`
	History   []model.PricePoint `json:"history"`
	Source    string             `json:"source"`
	Synthetic bool               `json:"synthetic"`
	FetchedAt time.Time          `json:"fetched_at"`
}

// Collector orchestrates quote and history fetching.
type Collector struct {
	Chain       *Chain
	HistoryDays int

	cache *Cache[*Snapshot]
	log   *zap.Logger

	mu  sync.Mutex // guards gen
	gen *synthetic.Generator
}

// NewCollector creates a new Collector.
func NewCollector(chain *Chain, historyDays int, ttl time.Duration, log *zap.Logger) *Collector {
	if historyDays <= 0 {
		historyDays = DefaultHistoryDays
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Collector{
		Chain:       chain,
		HistoryDays: historyDays,
		cache:       NewCache[*Snapshot](ttl),
		log:         log,
		gen:         synthetic.New(time.Now().UnixNano()),
	}
}

// WithGenerator replaces the synthetic history generator.
func (c *Collector) WithGenerator(g *synthetic.Generator) *Collector {
	c.mu.Lock()
	c.gen = g
	c.mu.Unlock()
	return c
}

// Collect fetches a quote and history for symbol. When no source has
// history, a synthetic random walk seeded at the quote price is used.
func (c *Collector) Collect(ctx context.Context, symbol string) (*Snapshot, error) {
	symbol, err := ValidateSymbol(symbol)
	if err != nil {
		return nil, err
	}
	if snap, ok := c.cache.Get(symbol); ok {
		return snap, nil
	}

	quote, source, err := c.Chain.FetchQuote(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("fetch quote: %w", err)
	}

	snap := &Snapshot{Quote: *quote, Source: source, FetchedAt: time.Now()}

	history, _, err := c.Chain.FetchHistory(ctx, symbol, c.HistoryDays)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("fetch history: %w", ctxErr)
		}
		c.log.Info("using synthetic history",
			zap.String("symbol", symbol),
			zap.Error(err))
		c.mu.Lock()
		history = c.gen.Generate(quote.Price, c.HistoryDays)
		c.mu.Unlock()
		snap.Synthetic = true
	} else {
		widenYearRange(&snap.Quote, history)
	}
	snap.History = history

	// Synthetic history after a source failure is not cached.
	if err == nil || !hasSourceFailure(err) {
		c.cache.Set(symbol, snap)
	}
	return snap, nil
}

// hasSourceFailure reports whether a history error carries a real source
// failure rather than every source lacking history.
func hasSourceFailure(err error) bool {
	var chainErr *ChainError
	if !errors.As(err, &chainErr) {
		return !errors.Is(err, ErrNoHistory)
	}
	for _, e := range chainErr.Errors {
		if !errors.Is(e, ErrNoHistory) {
			return true
		}
	}
	return false
}

// Invalidate drops a cached snapshot.
func (c *Collector) Invalidate(symbol string) {
	c.cache.Delete(SanitizeSymbol(symbol))
}

// widenYearRange extends the quote's 52-week range to cover real history.
func widenYearRange(q *model.Quote, history []model.PricePoint) {
	high, low, err := calculator.Range(model.Prices(history), calculator.TradingDaysPerYear)
	if err != nil {
		return
	}
	if high > q.Week52High {
		q.Week52High = high
	}
	if low > 0 && (q.Week52Low <= 0 || low < q.Week52Low) {
		q.Week52Low = low
	}
}
