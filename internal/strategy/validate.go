package strategy

import (
	"errors"
	"fmt"
	"math"

	"StockForecaster/internal/model"
)

var (
	ErrEmptySeries      = errors.New("series is empty")
	ErrNonPositivePrice = errors.New("price must be positive")
	ErrNegativeVolume   = errors.New("volume must be non-negative")
	ErrNotChronological = errors.New("series is not in chronological order")
)

// Validate checks that a series is non-empty, chronological and has
// positive finite prices. Equal consecutive dates are allowed.
func Validate(points []model.PricePoint) error {
	if len(points) == 0 {
		return ErrEmptySeries
	}
	for i, p := range points {
		if !(p.Price > 0) || math.IsInf(p.Price, 0) {
			return fmt.Errorf("point %d (%v): %w", i, p.Price, ErrNonPositivePrice)
		}
		if p.Volume < 0 {
			return fmt.Errorf("point %d: %w", i, ErrNegativeVolume)
		}
		if i > 0 && p.Date.Before(points[i-1].Date) {
			return fmt.Errorf("point %d (%s before %s): %w", i,
				p.Date.Format("2006-01-02"), points[i-1].Date.Format("2006-01-02"), ErrNotChronological)
		}
	}
	return nil
}
