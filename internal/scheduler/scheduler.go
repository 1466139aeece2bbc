package scheduler

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"StockForecaster/internal/collector"
	"StockForecaster/internal/logger"
	"StockForecaster/internal/metrics"
	"StockForecaster/internal/model"
	"StockForecaster/internal/notifier"
	"StockForecaster/internal/recorder"
	"StockForecaster/internal/report"
	"StockForecaster/internal/session"
	"StockForecaster/internal/strategy"
)

const (
	TriggerCron    = "cron"
	TriggerStartup = "startup"
	TriggerCommand = "command"

	defaultConcurrency = 4
	sendRetries        = 3
)

// Notifier delivers formatted messages.
type Notifier interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// SymbolLister lists the instruments a source knows about.
type SymbolLister interface {
	ListSymbols(ctx context.Context) ([]model.Quote, error)
}

// Options wires the scheduler's collaborators. Notifier and ChartDir are optional.
type Options struct {
	Collector   *collector.Collector
	Session     *session.Manager
	Recorder    recorder.Recorder
	Notifier    Notifier
	Listers     []SymbolLister
	Watchlist   []string
	Concurrency int
	ChartDir    string
}

// Scheduler manages the refresh cron task and serves on-demand forecasts.
type Scheduler struct {
	Cron        *cron.Cron
	Collector   *collector.Collector
	Session     *session.Manager
	Recorder    recorder.Recorder
	Notifier    Notifier
	Listers     []SymbolLister
	Watchlist   []string
	Concurrency int
	ChartDir    string
	Ctx         context.Context

	log *zap.Logger
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, opts Options) *Scheduler {
	if opts.Recorder == nil {
		opts.Recorder = recorder.NewNoopRecorder()
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}
	return &Scheduler{
		Cron:        cron.New(cron.WithSeconds()),
		Collector:   opts.Collector,
		Session:     opts.Session,
		Recorder:    opts.Recorder,
		Notifier:    opts.Notifier,
		Listers:     opts.Listers,
		Watchlist:   opts.Watchlist,
		Concurrency: opts.Concurrency,
		ChartDir:    opts.ChartDir,
		Ctx:         ctx,
		log:         logger.Named("scheduler"),
	}
}

// RegisterAll registers the watchlist refresh task.
func (s *Scheduler) RegisterAll(refreshCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, func() { s.RefreshAll(s.Ctx, TriggerCron) }); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info("scheduler started")
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.log.Info("scheduler stopped")
}

// RunRefreshNow refreshes the watchlist immediately (for RUN_ON_START).
func (s *Scheduler) RunRefreshNow() {
	s.RefreshAll(s.Ctx, TriggerStartup)
}

// RefreshAll forecasts every watchlist symbol, records the run and
// sends a summary.
func (s *Scheduler) RefreshAll(ctx context.Context, trigger string) *recorder.RunEvent {
	start := time.Now()
	runID := recorder.NewRunID()
	s.log.Info("running refresh", zap.String("run_id", runID), zap.String("trigger", trigger),
		zap.Int("symbols", len(s.Watchlist)))

	var (
		mu      sync.Mutex
		results = make(map[string]model.SymbolForecast, len(s.Watchlist))
		failed  = make(map[string]error)
	)
	var g errgroup.Group
	g.SetLimit(s.Concurrency)
	for _, symbol := range s.Watchlist {
		symbol := symbol
		g.Go(func() error {
			sf, _, err := s.forecast(ctx, runID, symbol)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed[symbol] = err
				return nil
			}
			results[symbol] = *sf
			return nil
		})
	}
	_ = g.Wait()

	duration := time.Since(start)
	metrics.RefreshDuration.Observe(duration.Seconds())

	run := &recorder.RunEvent{
		RunID:     runID,
		StartedAt: start,
		Duration:  duration,
		Trigger:   trigger,
		Symbols:   len(s.Watchlist),
		Failures:  len(failed),
	}
	for _, symbol := range s.Watchlist {
		if _, ok := failed[symbol]; ok {
			run.FailedList = append(run.FailedList, symbol)
		}
	}
	if err := s.Recorder.RecordRun(run); err != nil {
		s.log.Error("record run", zap.Error(err))
	}

	ordered := make([]model.SymbolForecast, 0, len(results))
	for _, symbol := range s.Watchlist {
		if sf, ok := results[symbol]; ok {
			ordered = append(ordered, sf)
		}
	}
	if len(ordered) > 0 {
		s.trySend(ctx, notifier.FormatWatchlist(ordered))
	}
	if len(failed) > 0 {
		s.trySend(ctx, notifier.FormatRefreshFailures(failed))
	}

	s.log.Info("refresh finished", zap.String("run_id", runID),
		zap.Duration("duration", duration), zap.Int("failures", len(failed)))
	return run
}

// Forecast collects data for symbol and produces, records and stores a forecast.
func (s *Scheduler) Forecast(ctx context.Context, symbol string) (*model.SymbolForecast, *collector.Snapshot, error) {
	return s.forecast(ctx, recorder.NewRunID(), symbol)
}

func (s *Scheduler) forecast(ctx context.Context, runID, symbol string) (*model.SymbolForecast, *collector.Snapshot, error) {
	snap, err := s.Collector.Collect(ctx, symbol)
	if err != nil {
		metrics.ForecastErrorsTotal.WithLabelValues("collect").Inc()
		s.log.Warn("collect failed", zap.String("symbol", symbol), zap.Error(err))
		return nil, nil, fmt.Errorf("collect %s: %w", symbol, err)
	}
	symbol = snap.Quote.Symbol

	f, err := strategy.Predict(snap.History)
	if err != nil {
		metrics.ForecastErrorsTotal.WithLabelValues("predict").Inc()
		s.log.Warn("predict failed", zap.String("symbol", symbol), zap.Error(err))
		return nil, nil, fmt.Errorf("predict %s: %w", symbol, err)
	}
	metrics.ForecastsTotal.WithLabelValues(string(f.Trend), string(f.Confidence.Level)).Inc()

	sf := model.SymbolForecast{
		Quote:       snap.Quote,
		Forecast:    *f,
		Source:      snap.Source,
		Synthetic:   snap.Synthetic,
		GeneratedAt: time.Now(),
	}
	if s.Session != nil {
		s.Session.StoreForecast(sf)
	}
	if err := s.Recorder.RecordForecast(recorder.NewForecastRecord(runID, symbol, snap.Source, snap.Synthetic, f)); err != nil {
		s.log.Error("record forecast", zap.String("symbol", symbol), zap.Error(err))
	}
	if s.ChartDir != "" {
		if path, err := report.WriteChart(s.ChartDir, symbol, snap.History, f); err != nil {
			s.log.Warn("write chart", zap.String("symbol", symbol), zap.Error(err))
		} else {
			s.log.Debug("chart written", zap.String("path", path))
		}
	}
	return &sf, snap, nil
}

// Search finds instruments by ticker or name across every lister.
func (s *Scheduler) Search(ctx context.Context, query string) []model.Quote {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	seen := make(map[string]bool)
	var all []model.Quote
	for _, l := range s.Listers {
		quotes, err := l.ListSymbols(ctx)
		if err != nil {
			s.log.Warn("list symbols", zap.Error(err))
			continue
		}
		for _, q := range quotes {
			if !seen[q.Symbol] {
				seen[q.Symbol] = true
				all = append(all, q)
			}
		}
	}
	if s.Session != nil {
		s.Session.AddSearch(query)
	}
	return collector.Search(all, query)
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return notifier.FormatHelp()
	}
	name := strings.ToLower(fields[0])
	if i := strings.Index(name, "@"); i > 0 {
		name = name[:i]
	}
	arg := strings.Join(fields[1:], " ")

	switch name {
	case "/forecast", "/refresh":
		if arg == "" {
			return "Usage: " + name + " SYMBOL"
		}
		if name == "/refresh" {
			s.Collector.Invalidate(arg)
		}
		sf, _, err := s.Forecast(ctx, arg)
		if err != nil {
			return notifier.FormatForecastFailure(arg, err)
		}
		if s.Session != nil {
			s.Session.SelectSymbol(sf.Quote.Symbol)
		}
		return notifier.FormatForecastReport(*sf)
	case "/watchlist":
		return notifier.FormatWatchlist(s.latest())
	case "/search":
		if arg == "" {
			return "Usage: /search QUERY"
		}
		return notifier.FormatSearchResults(arg, s.Search(ctx, arg))
	default:
		return notifier.FormatHelp()
	}
}

// latest returns the stored forecasts of the watchlist, in watchlist order.
func (s *Scheduler) latest() []model.SymbolForecast {
	if s.Session == nil {
		return nil
	}
	var out []model.SymbolForecast
	for _, symbol := range s.Watchlist {
		if sf, ok := s.Session.Forecast(collector.SanitizeSymbol(symbol)); ok {
			out = append(out, sf)
		}
	}
	return out
}

func (s *Scheduler) trySend(ctx context.Context, text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(ctx, text, sendRetries); err != nil {
		s.log.Error("send notification", zap.Error(err))
	}
}
