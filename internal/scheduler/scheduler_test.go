package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockForecaster/internal/collector"
	"StockForecaster/internal/recorder"
	"StockForecaster/internal/session"
	"StockForecaster/internal/synthetic"
)

type captureNotifier struct {
	mu   sync.Mutex
	sent []string
}

func (c *captureNotifier) SendWithRetry(_ context.Context, text string, _ int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, text)
	return nil
}

func (c *captureNotifier) messages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.sent...)
}

type fixture struct {
	sched    *Scheduler
	notifier *captureNotifier
	recorder *recorder.SQLiteRecorder
	session  *session.Manager
}

func newFixture(t *testing.T, watchlist ...string) *fixture {
	t.Helper()
	demo := collector.NewDemoSource()
	gen := synthetic.New(7).WithClock(func() time.Time {
		return time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	})
	col := collector.NewCollector(collector.NewChain(nil, demo), 120, time.Minute, nil).WithGenerator(gen)

	rec, err := recorder.NewSQLiteRecorder(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = rec.Close() })

	sess, err := session.NewManager("")
	require.NoError(t, err)

	n := &captureNotifier{}
	s := NewScheduler(context.Background(), Options{
		Collector:   col,
		Session:     sess,
		Recorder:    rec,
		Notifier:    n,
		Listers:     []SymbolLister{demo},
		Watchlist:   watchlist,
		Concurrency: 2,
	})
	return &fixture{sched: s, notifier: n, recorder: rec, session: sess}
}

func TestRefreshAll(t *testing.T) {
	f := newFixture(t, "AAPL", "MSFT", "ZZZZ")

	run := f.sched.RefreshAll(context.Background(), TriggerCommand)
	assert.Equal(t, 3, run.Symbols)
	assert.Equal(t, 1, run.Failures)
	assert.Equal(t, []string{"ZZZZ"}, run.FailedList)
	assert.NotEmpty(t, run.RunID)

	assert.Equal(t, []string{"AAPL", "MSFT"}, f.session.Symbols())

	recent, err := f.recorder.Recent("AAPL", 5)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, run.RunID, recent[0].RunID)
	assert.True(t, recent[0].Synthetic)
	assert.Equal(t, "demo", recent[0].Source)

	msgs := f.notifier.messages()
	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[0], "<b>AAPL</b>")
	assert.Less(t, strings.Index(msgs[0], "AAPL"), strings.Index(msgs[0], "MSFT"))
	assert.Contains(t, msgs[1], "ZZZZ")
}

func TestRefreshAll_NoNotifier(t *testing.T) {
	f := newFixture(t, "AAPL")
	f.sched.Notifier = nil
	run := f.sched.RefreshAll(context.Background(), TriggerCron)
	assert.Zero(t, run.Failures)
}

func TestForecast_WritesChart(t *testing.T) {
	f := newFixture(t)
	f.sched.ChartDir = filepath.Join(t.TempDir(), "charts")

	sf, snap, err := f.sched.Forecast(context.Background(), "btc")
	require.NoError(t, err)
	assert.Equal(t, "BTC", sf.Quote.Symbol)
	assert.Len(t, snap.History, 121)
	assert.Equal(t, snap.History[len(snap.History)-1].Price, sf.Forecast.Indicators.CurrentPrice)

	_, err = os.Stat(filepath.Join(f.sched.ChartDir, "BTC.html"))
	assert.NoError(t, err)
}

func TestHandleCommand(t *testing.T) {
	f := newFixture(t, "AAPL", "MSFT")
	ctx := context.Background()

	help := f.sched.HandleCommand(ctx, "/unknown")
	assert.Contains(t, help, "/forecast SYMBOL")
	assert.Equal(t, help, f.sched.HandleCommand(ctx, "  "))

	assert.Contains(t, f.sched.HandleCommand(ctx, "/watchlist"), "empty")

	reply := f.sched.HandleCommand(ctx, "/forecast@ForecastBot aapl")
	assert.Contains(t, reply, "<b>AAPL</b> Apple Inc.")
	assert.Contains(t, reply, "simulated")
	assert.Equal(t, "AAPL", f.session.Selected())

	assert.Contains(t, f.sched.HandleCommand(ctx, "/watchlist"), "<b>AAPL</b>")
	assert.NotContains(t, f.sched.HandleCommand(ctx, "/watchlist"), "<b>MSFT</b>")

	assert.Contains(t, f.sched.HandleCommand(ctx, "/forecast"), "Usage")
	assert.Contains(t, f.sched.HandleCommand(ctx, "/forecast ZZZZ"), "Forecast for <b>ZZZZ</b> failed")

	search := f.sched.HandleCommand(ctx, "/search micro")
	assert.Contains(t, search, "<b>MSFT</b> Microsoft Corporation")
	assert.Equal(t, []string{"micro"}, f.session.Snapshot().RecentSearches)
	assert.Contains(t, f.sched.HandleCommand(ctx, "/search"), "Usage")
}

func TestHandleCommand_FailureIsEscaped(t *testing.T) {
	f := newFixture(t)
	reply := f.sched.HandleCommand(context.Background(), "/forecast 123<x>")
	assert.Contains(t, reply, "failed")
	assert.Contains(t, reply, "123&lt;x&gt;")
	assert.NotContains(t, reply, "<x>")
}

func TestHandleCommand_RefreshBypassesCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, first, err := f.sched.Forecast(ctx, "AAPL")
	require.NoError(t, err)
	_, cached, err := f.sched.Forecast(ctx, "AAPL")
	require.NoError(t, err)
	assert.Same(t, first, cached)

	reply := f.sched.HandleCommand(ctx, "/refresh aapl")
	assert.Contains(t, reply, "<b>AAPL</b> Apple Inc.")

	_, after, err := f.sched.Forecast(ctx, "AAPL")
	require.NoError(t, err)
	assert.NotSame(t, first, after)

	assert.Contains(t, f.sched.HandleCommand(ctx, "/refresh"), "Usage: /refresh SYMBOL")
}

func TestWatchlist_LowerCaseEntries(t *testing.T) {
	f := newFixture(t, "aapl")
	ctx := context.Background()

	run := f.sched.RefreshAll(ctx, TriggerCommand)
	assert.Zero(t, run.Failures)
	assert.Contains(t, f.sched.HandleCommand(ctx, "/watchlist"), "<b>AAPL</b>")
}

func TestSearch_DedupesAcrossListers(t *testing.T) {
	f := newFixture(t)
	demo := collector.NewDemoSource()
	f.sched.Listers = append(f.sched.Listers, demo)

	got := f.sched.Search(context.Background(), "AAPL")
	require.Len(t, got, 1)
	assert.Equal(t, "AAPL", got[0].Symbol)
	assert.Nil(t, f.sched.Search(context.Background(), " "))
}

func TestRegisterAll(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.sched.RegisterAll("0 30 22 * * 1-5"))
	assert.Len(t, f.sched.Cron.Entries(), 1)
	assert.Error(t, f.sched.RegisterAll("not a cron"))

	f.sched.Start()
	f.sched.Stop()
}

var _ SymbolLister = (*collector.SheetSource)(nil)
