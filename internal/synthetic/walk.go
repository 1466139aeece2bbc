// Package synthetic backfills price history with a biased random walk when
// no data source provides real history.
package synthetic

import (
	"math"
	"math/rand"
	"time"

	"StockForecaster/internal/model"
)

const (
	// DailyVolatility scales each uniform draw into a daily move.
	DailyVolatility = 0.015
	// Bias is subtracted from the uniform draw; below 0.5 the walk drifts upward.
	Bias = 0.48

	MinVolume = 10_000_000
	MaxVolume = 30_000_000
)

// Generator produces random-walk series. It is not safe for concurrent use.
type Generator struct {
	rng *rand.Rand
	now func() time.Time
}

// New creates a Generator seeded with seed.
func New(seed int64) *Generator {
	return NewWithSource(rand.NewSource(seed))
}

// NewWithSource creates a Generator drawing from src.
func NewWithSource(src rand.Source) *Generator {
	return &Generator{rng: rand.New(src), now: time.Now}
}

// WithClock overrides the clock used to anchor the series end date.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate returns days+1 chronological points ending today, walking
// backwards from seedPrice. Stored prices are rounded to whole units
// unless rounding would make them non-positive.
func (g *Generator) Generate(seedPrice float64, days int) []model.PricePoint {
	if days < 0 {
		days = 0
	}
	today := truncateDay(g.now())
	points := make([]model.PricePoint, 0, days+1)

	price := seedPrice
	for i := days; i >= 0; i-- {
		delta := (g.rng.Float64() - Bias) * DailyVolatility
		price = price / (1 + delta)

		stored := math.Round(price)
		if stored <= 0 {
			stored = price
		}
		points = append(points, model.PricePoint{
			Date:   today.AddDate(0, 0, -i),
			Price:  stored,
			Volume: MinVolume + g.rng.Int63n(MaxVolume-MinVolume),
		})
	}
	return points
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
