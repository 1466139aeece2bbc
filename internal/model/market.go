package model

import "time"

// PricePoint is a single daily observation.
type PricePoint struct {
	Date   time.Time `json:"date"`
	Price  float64   `json:"price"`
	Volume int64     `json:"volume"`
}

// Quote is an instrument snapshot returned by a data source.
type Quote struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Sector        string  `json:"sector"`
	Price         float64 `json:"price"`
	PreviousClose float64 `json:"previous_close"`
	Open          float64 `json:"open"`
	DayHigh       float64 `json:"day_high"`
	DayLow        float64 `json:"day_low"`
	Week52High    float64 `json:"week52_high"`
	Week52Low     float64 `json:"week52_low"`
	Volume        int64   `json:"volume"`
	AvgVolume     int64   `json:"avg_volume"`
	MarketCap     float64 `json:"market_cap"`
	PE            float64 `json:"pe"`
	EPS           float64 `json:"eps"`
}

// Prices extracts the price column of a series.
func Prices(points []PricePoint) []float64 {
	prices := make([]float64, len(points))
	for i, p := range points {
		prices[i] = p.Price
	}
	return prices
}

// Volumes extracts the volume column of a series.
func Volumes(points []PricePoint) []float64 {
	volumes := make([]float64, len(points))
	for i, p := range points {
		volumes[i] = float64(p.Volume)
	}
	return volumes
}
