package session

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockForecaster/internal/model"
)

func TestManager_PersistsAcrossRestarts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	m, err := NewManager(path)
	require.NoError(t, err)
	m.SelectSymbol("AAPL")
	m.StoreForecast(model.SymbolForecast{
		Quote:    model.Quote{Symbol: "AAPL", Price: 190},
		Forecast: model.Forecast{Day7: 192, Trend: model.TrendBullish},
		Source:   "demo",
	})
	m.AddSearch("app")

	_, err = os.Stat(path)
	require.NoError(t, err)

	reloaded, err := NewManager(path)
	require.NoError(t, err)
	assert.Equal(t, "AAPL", reloaded.Selected())
	f, ok := reloaded.Forecast("AAPL")
	require.True(t, ok)
	assert.Equal(t, 192.0, f.Forecast.Day7)
	assert.False(t, f.GeneratedAt.IsZero())
	assert.Equal(t, []string{"app"}, reloaded.Snapshot().RecentSearches)
}

func TestManager_InMemory(t *testing.T) {
	m, err := NewManager("")
	require.NoError(t, err)
	m.SelectSymbol("MSFT")
	assert.Equal(t, "MSFT", m.Selected())
	assert.False(t, m.Snapshot().UpdatedAt.IsZero())
}

func TestManager_AddSearch(t *testing.T) {
	m, err := NewManager("")
	require.NoError(t, err)

	m.AddSearch("")
	assert.Empty(t, m.Snapshot().RecentSearches)

	m.AddSearch("a")
	m.AddSearch("b")
	m.AddSearch("a")
	assert.Equal(t, []string{"a", "b"}, m.Snapshot().RecentSearches)

	for i := 0; i < 20; i++ {
		m.AddSearch(string(rune('c' + i)))
	}
	got := m.Snapshot().RecentSearches
	assert.Len(t, got, MaxRecentSearches)
	assert.Equal(t, string(rune('c'+19)), got[0])
}

func TestManager_SnapshotIsACopy(t *testing.T) {
	m, err := NewManager("")
	require.NoError(t, err)
	m.StoreForecast(model.SymbolForecast{Quote: model.Quote{Symbol: "B"}})
	m.StoreForecast(model.SymbolForecast{Quote: model.Quote{Symbol: "A"}})
	m.AddSearch("x")

	snap := m.Snapshot()
	delete(snap.LastForecasts, "A")
	snap.RecentSearches[0] = "mutated"

	assert.Equal(t, []string{"A", "B"}, m.Symbols())
	assert.Equal(t, []string{"x"}, m.Snapshot().RecentSearches)
}

func TestManager_ConcurrentUse(t *testing.T) {
	m, err := NewManager(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for _, sym := range []string{"A", "B", "C", "D"} {
		wg.Add(1)
		go func(sym string) {
			defer wg.Done()
			m.StoreForecast(model.SymbolForecast{Quote: model.Quote{Symbol: sym}})
			m.AddSearch(sym)
		}(sym)
	}
	wg.Wait()
	assert.Len(t, m.Symbols(), 4)
}

func TestLoadState_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err := NewManager(path)
	assert.Error(t, err)
}
