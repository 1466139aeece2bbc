package model

import "time"

// SessionState is the host application's explicit view state.
type SessionState struct {
	SelectedSymbol string                    `json:"selected_symbol"`
	LastForecasts  map[string]SymbolForecast `json:"last_forecasts"`
	RecentSearches []string                  `json:"recent_searches"`
	UpdatedAt      time.Time                 `json:"updated_at"`
}

// SymbolForecast is the most recent forecast kept for a symbol.
type SymbolForecast struct {
	Quote       Quote     `json:"quote"`
	Forecast    Forecast  `json:"forecast"`
	Source      string    `json:"source"`
	Synthetic   bool      `json:"synthetic"`
	GeneratedAt time.Time `json:"generated_at"`
}
