package strategy

import (
	"StockForecaster/internal/calculator"
	"StockForecaster/internal/model"
)

const recentVolumeWindow = 5

// Analyze reports moving-average alignment across three timeframes and
// whether recent volume runs above or below the series average.
func Analyze(points []model.PricePoint) model.Analysis {
	prices := model.Prices(points)
	a := model.Analysis{
		ShortTerm:  calculator.SMA(prices, 10),
		MediumTerm: calculator.SMA(prices, 30),
		LongTerm:   calculator.SMA(prices, 50),
	}

	switch {
	case a.ShortTerm > a.MediumTerm && a.MediumTerm > a.LongTerm:
		a.TrendAlignment = model.AlignmentStrongBullish
	case a.ShortTerm < a.MediumTerm && a.MediumTerm < a.LongTerm:
		a.TrendAlignment = model.AlignmentStrongBearish
	default:
		a.TrendAlignment = model.AlignmentMixed
	}

	a.VolumeTrend = volumeTrend(model.Volumes(points))
	return a
}

func volumeTrend(volumes []float64) model.VolumeTrend {
	if len(volumes) == 0 {
		return model.VolumeStable
	}
	avg := calculator.SMA(volumes, len(volumes))
	window := recentVolumeWindow
	if len(volumes) < window {
		window = len(volumes)
	}
	recent := calculator.SMA(volumes, window)

	switch {
	case recent > avg*1.2:
		return model.VolumeIncreasing
	case recent < avg*0.8:
		return model.VolumeDecreasing
	default:
		return model.VolumeStable
	}
}
