package collector

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"StockForecaster/internal/metrics"
	"StockForecaster/internal/model"
)

// Chain tries its sources in order until one answers.
type Chain struct {
	sources []Source
	log     *zap.Logger
}

// NewChain creates a chain over sources; a nil logger discards output.
func NewChain(log *zap.Logger, sources ...Source) *Chain {
	if log == nil {
		log = zap.NewNop()
	}
	return &Chain{sources: sources, log: log}
}

// Sources returns the configured sources in order.
func (c *Chain) Sources() []Source { return c.sources }

// FetchQuote returns the first successful quote and the name of the source
// that produced it.
func (c *Chain) FetchQuote(ctx context.Context, symbol string) (*model.Quote, string, error) {
	chainErr := &ChainError{Symbol: symbol}
	for _, src := range c.sources {
		if err := ctx.Err(); err != nil {
			return nil, "", err
		}
		q, err := src.FetchQuote(ctx, symbol)
		if err == nil && q != nil && q.Price > 0 {
			metrics.SourceAttemptsTotal.WithLabelValues(src.Name(), "ok").Inc()
			return q, src.Name(), nil
		}
		if err == nil {
			err = errors.New("empty quote")
		}
		metrics.SourceAttemptsTotal.WithLabelValues(src.Name(), "error").Inc()
		c.log.Warn("quote source failed",
			zap.String("source", src.Name()),
			zap.String("symbol", symbol),
			zap.Error(err))
		chainErr.Errors = append(chainErr.Errors, &SourceError{Source: src.Name(), Symbol: symbol, Err: err})
	}
	return nil, "", chainErr
}

// FetchHistory returns the first non-empty history. Sources without
// history are skipped silently; if none has any, the result wraps ErrNoHistory.
func (c *Chain) FetchHistory(ctx context.Context, symbol string, days int) ([]model.PricePoint, string, error) {
	chainErr := &ChainError{Symbol: symbol}
	for _, src := range c.sources {
		if err := ctx.Err(); err != nil {
			return nil, "", err
		}
		points, err := src.FetchHistory(ctx, symbol, days)
		if errors.Is(err, ErrNoHistory) {
			continue
		}
		if err == nil && len(points) > 0 {
			return points, src.Name(), nil
		}
		if err == nil {
			err = ErrNoHistory
		}
		c.log.Debug("history source failed",
			zap.String("source", src.Name()),
			zap.String("symbol", symbol),
			zap.Error(err))
		chainErr.Errors = append(chainErr.Errors, &SourceError{Source: src.Name(), Symbol: symbol, Err: err})
	}
	if len(chainErr.Errors) == 0 {
		return nil, "", ErrNoHistory
	}
	chainErr.Errors = append(chainErr.Errors, &SourceError{Source: "chain", Symbol: symbol, Err: ErrNoHistory})
	return nil, "", chainErr
}
