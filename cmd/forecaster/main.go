package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"StockForecaster/internal/collector"
	"StockForecaster/internal/config"
	"StockForecaster/internal/logger"
	"StockForecaster/internal/notifier"
	"StockForecaster/internal/recorder"
	"StockForecaster/internal/scheduler"
	"StockForecaster/internal/session"
	transport "StockForecaster/internal/transport/http/forecast"
)

func main() {
	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.App.LogLevel, cfg.App.Environment); err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("config validation", zap.Error(err))
	}
	logger.Info("StockForecaster starting", zap.String("config", cfgPath), zap.Strings("watchlist", cfg.Watchlist))

	// Init sources, most authoritative first
	var (
		sources []collector.Source
		listers []scheduler.SymbolLister
	)
	if cfg.DataSource.SheetURL != "" {
		sheet := collector.NewSheetSource(cfg.DataSource.SheetURL, cfg.Proxy)
		sources = append(sources, sheet)
		listers = append(listers, sheet)
	}
	if cfg.DataSource.YahooEnabled {
		sources = append(sources, collector.NewYahooSource(cfg.Proxy))
	}
	if cfg.DataSource.DemoFallback {
		demo := collector.NewDemoSource()
		sources = append(sources, demo)
		listers = append(listers, demo)
	}
	for _, src := range sources {
		logger.Info("data source enabled", zap.String("source", src.Name()))
	}

	chain := collector.NewChain(logger.Named("collector"), sources...)
	col := collector.NewCollector(chain, cfg.DataSource.HistoryDays, cfg.DataSource.CacheTTL, logger.Named("collector"))

	// Init session
	sess, err := session.NewManager(cfg.Session.StateFile)
	if err != nil {
		logger.Fatal("init session", zap.Error(err))
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			logger.Warn("init sqlite recorder failed, using noop", zap.Error(err))
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := scheduler.Options{
		Collector:   col,
		Session:     sess,
		Recorder:    rec,
		Listers:     listers,
		Watchlist:   cfg.Watchlist,
		Concurrency: cfg.Schedule.Concurrency,
		ChartDir:    cfg.Report.ChartDir,
	}
	var tn *notifier.TelegramNotifier
	if cfg.TelegramEnabled() {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		opts.Notifier = tn
	} else {
		logger.Info("telegram not configured, notifications disabled")
	}

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, opts)
	if err := sched.RegisterAll(cfg.Schedule.RefreshCron); err != nil {
		logger.Fatal("register cron tasks", zap.Error(err))
	}
	sched.Start()
	defer sched.Stop()

	srv, err := transport.NewHTTPServer(transport.HTTPConfig{Addr: cfg.HTTP.Addr, Svc: sched, Data: col})
	if err != nil {
		logger.Fatal("init http server", zap.Error(err))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Start(gctx) })
	if tn != nil {
		g.Go(func() error {
			logger.Info("telegram polling started")
			tn.StartPolling(gctx, sched.HandleCommand)
			return nil
		})
	}

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		logger.Info("RUN_ON_START enabled, refreshing watchlist now")
		go sched.RunRefreshNow()
	}

	logger.Info("StockForecaster is running. Press Ctrl+C to stop.")
	if err := g.Wait(); err != nil {
		logger.Error("server stopped with error", zap.Error(err))
	}
	logger.Info("StockForecaster stopped")
}
