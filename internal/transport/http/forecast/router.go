package forecast

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"StockForecaster/internal/collector"
	"StockForecaster/internal/logger"
	"StockForecaster/internal/metrics"
	"StockForecaster/internal/model"
	"StockForecaster/internal/report"
	"StockForecaster/internal/strategy"
)

// Service produces forecasts and searches instruments.
type Service interface {
	Forecast(ctx context.Context, symbol string) (*model.SymbolForecast, *collector.Snapshot, error)
	Search(ctx context.Context, query string) []model.Quote
}

// SnapshotSource serves collected quote and history data.
type SnapshotSource interface {
	Collect(ctx context.Context, symbol string) (*collector.Snapshot, error)
}

// Router handles forecast API endpoints
type Router struct {
	svc  Service
	data SnapshotSource
}

// NewRouter creates a new forecast API router
func NewRouter(svc Service, data SnapshotSource) *Router {
	return &Router{svc: svc, data: data}
}

// Register registers the forecast API routes
func (r *Router) Register(group *gin.RouterGroup) {
	if group == nil {
		return
	}
	group.GET("/forecast/:symbol", r.handleForecast)
	group.GET("/search", r.handleSearch)
	group.GET("/history/:symbol", r.handleHistory)
}

// HorizonResponse is one projected price with its change from the current price.
type HorizonResponse struct {
	Days          int     `json:"days"`
	Label         string  `json:"label"`
	Price         float64 `json:"price"`
	ChangePercent float64 `json:"change_percent"`
}

// ForecastResponse is the API response for a forecast
type ForecastResponse struct {
	Symbol      string             `json:"symbol"`
	Quote       model.Quote        `json:"quote"`
	Trend       model.Trend        `json:"trend"`
	Confidence  model.Confidence   `json:"confidence"`
	Horizons    []HorizonResponse  `json:"horizons"`
	Factors     []string           `json:"factors"`
	Indicators  model.IndicatorSet `json:"indicators"`
	Analysis    model.Analysis     `json:"analysis"`
	Source      string             `json:"source"`
	Synthetic   bool               `json:"synthetic"`
	GeneratedAt time.Time          `json:"generated_at"`
}

// HistoryResponse is the API response for a chart range
type HistoryResponse struct {
	Symbol    string             `json:"symbol"`
	Range     string             `json:"range"`
	Synthetic bool               `json:"synthetic"`
	Points    []model.PricePoint `json:"points"`
}

func (r *Router) handleForecast(c *gin.Context) {
	sf, snap, err := r.svc.Forecast(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		r.fail(c, "forecast", err)
		return
	}
	if c.Query("format") == "text" {
		c.String(http.StatusOK, "%s\n\n%s\n",
			report.HorizonTable(sf.Quote.Symbol, &sf.Forecast),
			report.IndicatorTable(sf.Forecast.Indicators))
		return
	}

	current := sf.Forecast.Indicators.CurrentPrice
	horizons := make([]HorizonResponse, 0, 6)
	for _, h := range sf.Forecast.Horizons() {
		horizons = append(horizons, HorizonResponse{
			Days:          h.Days,
			Label:         report.HorizonLabel(h.Days),
			Price:         h.Price,
			ChangePercent: model.ChangePercent(h.Price, current),
		})
	}

	c.JSON(http.StatusOK, ForecastResponse{
		Symbol:      sf.Quote.Symbol,
		Quote:       sf.Quote,
		Trend:       sf.Forecast.Trend,
		Confidence:  sf.Forecast.Confidence,
		Horizons:    horizons,
		Factors:     sf.Forecast.Factors,
		Indicators:  sf.Forecast.Indicators,
		Analysis:    strategy.Analyze(snap.History),
		Source:      sf.Source,
		Synthetic:   sf.Synthetic,
		GeneratedAt: sf.GeneratedAt,
	})
}

func (r *Router) handleSearch(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter q"})
		return
	}
	results := r.svc.Search(c.Request.Context(), q)
	if results == nil {
		results = []model.Quote{}
	}
	c.JSON(http.StatusOK, gin.H{"query": q, "count": len(results), "results": results})
}

func (r *Router) handleHistory(c *gin.Context) {
	snap, err := r.data.Collect(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		r.fail(c, "history", err)
		return
	}
	rng := c.DefaultQuery("range", "1M")
	c.JSON(http.StatusOK, HistoryResponse{
		Symbol:    snap.Quote.Symbol,
		Range:     rng,
		Synthetic: snap.Synthetic,
		Points:    report.FilterByRange(snap.History, rng),
	})
}

func (r *Router) fail(c *gin.Context, op string, err error) {
	status := http.StatusBadGateway
	switch {
	case errors.Is(err, collector.ErrInvalidSymbol):
		status = http.StatusBadRequest
	case errors.Is(err, collector.ErrSymbolNotFound):
		status = http.StatusNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	}
	logger.Warn("api request failed",
		zap.String("op", op),
		zap.String("symbol", c.Param("symbol")),
		zap.Int("status", status),
		zap.Error(err))
	c.JSON(status, gin.H{"error": err.Error()})
}

// requestMetrics counts requests by route template and status.
func requestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		metrics.RequestTotal.WithLabelValues(c.Request.Method, endpoint, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
