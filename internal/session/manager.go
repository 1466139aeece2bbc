// Package session holds the application's view state: the selected
// symbol, the latest forecast per symbol and recent searches.
package session

import (
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"StockForecaster/internal/logger"
	"StockForecaster/internal/model"
)

// MaxRecentSearches bounds the search history.
const MaxRecentSearches = 10

// Manager guards the session state and persists it after every change.
type Manager struct {
	mu       sync.Mutex
	state    *model.SessionState
	filePath string
}

// NewManager creates a Manager, loading state from disk. An empty
// filePath keeps the state in memory only.
func NewManager(filePath string) (*Manager, error) {
	state := &model.SessionState{}
	if filePath != "" {
		var err error
		if state, err = LoadState(filePath); err != nil {
			return nil, err
		}
	}
	if state.LastForecasts == nil {
		state.LastForecasts = make(map[string]model.SymbolForecast)
	}
	return &Manager{state: state, filePath: filePath}, nil
}

// Snapshot returns a deep copy of the current state.
func (m *Manager) Snapshot() model.SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := *m.state
	out.LastForecasts = make(map[string]model.SymbolForecast, len(m.state.LastForecasts))
	for k, v := range m.state.LastForecasts {
		out.LastForecasts[k] = v
	}
	out.RecentSearches = append([]string(nil), m.state.RecentSearches...)
	return out
}

// SelectSymbol marks symbol as the one currently on display.
func (m *Manager) SelectSymbol(symbol string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.SelectedSymbol = symbol
	m.save()
}

// Selected returns the symbol currently on display.
func (m *Manager) Selected() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.SelectedSymbol
}

// StoreForecast keeps f as the latest forecast for its quote's symbol.
func (m *Manager) StoreForecast(f model.SymbolForecast) {
	if f.GeneratedAt.IsZero() {
		f.GeneratedAt = time.Now()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.LastForecasts[f.Quote.Symbol] = f
	m.save()
}

// Forecast returns the latest stored forecast for symbol.
func (m *Manager) Forecast(symbol string) (model.SymbolForecast, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.state.LastForecasts[symbol]
	return f, ok
}

// Symbols lists every symbol with a stored forecast, sorted.
func (m *Manager) Symbols() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.state.LastForecasts))
	for s := range m.state.LastForecasts {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// AddSearch records a query, most recent first, without duplicates.
func (m *Manager) AddSearch(query string) {
	if query == "" {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	searches := []string{query}
	for _, s := range m.state.RecentSearches {
		if s != query {
			searches = append(searches, s)
		}
	}
	if len(searches) > MaxRecentSearches {
		searches = searches[:MaxRecentSearches]
	}
	m.state.RecentSearches = searches
	m.save()
}

// save must be called with mu held. Failures are logged; the in-memory
// state stays authoritative.
func (m *Manager) save() {
	if m.filePath == "" {
		m.state.UpdatedAt = time.Now()
		return
	}
	if err := SaveState(m.filePath, m.state); err != nil {
		logger.Error("failed to save session state", zap.String("path", m.filePath), zap.Error(err))
	}
}
