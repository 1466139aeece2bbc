package recorder

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"StockForecaster/internal/logger"
	"StockForecaster/internal/model"
)

var horizonDays = []int{7, 30, 90, 180, 365, 730}

// SQLiteRecorder persists forecast history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.Info("sqlite recorder opened", zap.String("path", dbPath))
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS forecasts (
			id               TEXT PRIMARY KEY,
			run_id           TEXT,
			timestamp        INTEGER NOT NULL,
			symbol           TEXT NOT NULL,
			source           TEXT,
			synthetic        INTEGER,
			price            REAL,
			trend            TEXT,
			confidence_level TEXT,
			confidence_score INTEGER,
			day7             REAL,
			day30            REAL,
			day90            REAL,
			day180           REAL,
			day365           REAL,
			day730           REAL,
			rsi              REAL,
			momentum         REAL,
			volatility       REAL,
			trend_strength   REAL,
			factors          TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_forecasts_symbol_ts ON forecasts(symbol, timestamp)`,

		`CREATE TABLE IF NOT EXISTS refresh_runs (
			run_id      TEXT PRIMARY KEY,
			timestamp   INTEGER NOT NULL,
			duration_ms INTEGER,
			kind        TEXT,
			symbols     INTEGER,
			failures    INTEGER,
			failed      TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON refresh_runs(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordForecast(rec *ForecastRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	factors, err := json.Marshal(rec.Factors)
	if err != nil {
		return fmt.Errorf("encode factors: %w", err)
	}
	days := make(map[int]float64, len(rec.Horizons))
	for _, h := range rec.Horizons {
		days[h.Days] = h.Price
	}

	_, err = r.db.Exec(`INSERT INTO forecasts
		(id, run_id, timestamp, symbol, source, synthetic, price,
		 trend, confidence_level, confidence_score,
		 day7, day30, day90, day180, day365, day730,
		 rsi, momentum, volatility, trend_strength, factors)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		rec.ID, rec.RunID, rec.CreatedAt.Unix(), rec.Symbol, rec.Source, rec.Synthetic, rec.Price,
		string(rec.Trend), string(rec.ConfidenceLevel), rec.ConfidenceScore,
		days[7], days[30], days[90], days[180], days[365], days[730],
		rec.RSI, rec.Momentum, rec.Volatility, rec.TrendStrength, string(factors),
	)
	if err != nil {
		return fmt.Errorf("insert forecast %s: %w", rec.Symbol, err)
	}
	return nil
}

func (r *SQLiteRecorder) RecordRun(run *RunEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO refresh_runs
		(run_id, timestamp, duration_ms, kind, symbols, failures, failed)
		VALUES (?,?,?,?,?,?,?)`,
		run.RunID, run.StartedAt.Unix(), run.Duration.Milliseconds(), run.Trigger,
		run.Symbols, run.Failures, strings.Join(run.FailedList, ","),
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", run.RunID, err)
	}
	return nil
}

// Recent returns the latest forecasts for symbol, newest first.
func (r *SQLiteRecorder) Recent(symbol string, limit int) ([]ForecastRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT
		id, run_id, timestamp, symbol, source, synthetic, price,
		trend, confidence_level, confidence_score,
		day7, day30, day90, day180, day365, day730,
		rsi, momentum, volatility, trend_strength, factors
		FROM forecasts WHERE symbol = ? ORDER BY timestamp DESC, rowid DESC LIMIT ?`,
		symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("query forecasts: %w", err)
	}
	defer rows.Close()

	var out []ForecastRecord
	for rows.Next() {
		var (
			rec     ForecastRecord
			ts      int64
			trend   string
			level   string
			factors string
			prices  = make([]float64, len(horizonDays))
		)
		if err := rows.Scan(
			&rec.ID, &rec.RunID, &ts, &rec.Symbol, &rec.Source, &rec.Synthetic, &rec.Price,
			&trend, &level, &rec.ConfidenceScore,
			&prices[0], &prices[1], &prices[2], &prices[3], &prices[4], &prices[5],
			&rec.RSI, &rec.Momentum, &rec.Volatility, &rec.TrendStrength, &factors,
		); err != nil {
			return nil, fmt.Errorf("scan forecast: %w", err)
		}
		rec.CreatedAt = time.Unix(ts, 0)
		rec.Trend = model.Trend(trend)
		rec.ConfidenceLevel = model.ConfidenceLevel(level)
		for i, d := range horizonDays {
			rec.Horizons = append(rec.Horizons, model.HorizonPrice{Days: d, Price: prices[i]})
		}
		if err := json.Unmarshal([]byte(factors), &rec.Factors); err != nil {
			return nil, fmt.Errorf("decode factors: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	logger.Info("closing sqlite recorder")
	return r.db.Close()
}
