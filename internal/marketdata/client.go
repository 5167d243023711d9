package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/wonny/drip/pkg/config"
	"github.com/wonny/drip/pkg/httputil"
	"github.com/wonny/drip/pkg/logger"
)

// ChartClient fetches daily candles from a Yahoo-compatible chart endpoint.
// ⭐ SSOT: 일봉 수집은 이 클라이언트를 통해서만
type ChartClient struct {
	http         *httputil.Client
	baseURL      string
	lookbackDays int
	logger       *logger.Logger
}

// chartResponse mirrors the v8 chart JSON envelope. Null entries in the
// quote arrays mark non-trading sessions and are skipped.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// NewChartClient creates a chart client with the configured rate limit
func NewChartClient(cfg *config.Config, log *logger.Logger) *ChartClient {
	return &ChartClient{
		http: httputil.NewWithTimeout(cfg, log, 15*time.Second).
			WithRateLimit(cfg.MarketData.RatePerSec),
		baseURL:      cfg.MarketData.ChartBaseURL,
		lookbackDays: cfg.MarketData.LookbackDays,
		logger:       log,
	}
}

// DailyCandles fetches the trailing daily candles for a symbol, oldest first
func (c *ChartClient) DailyCandles(ctx context.Context, symbol string) (Series, error) {
	url := fmt.Sprintf("%s/%s?range=%dd&interval=1d", c.baseURL, symbol, c.lookbackDays)

	resp, err := c.http.GetWithHeaders(ctx, url, map[string]string{
		"User-Agent": "Mozilla/5.0 (compatible; drip/1.0)",
		"Accept":     "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("chart fetch for %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("chart fetch for %s: status %d", symbol, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("chart read for %s: %w", symbol, err)
	}

	var parsed chartResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("chart decode for %s: %w", symbol, err)
	}

	if parsed.Chart.Error != nil {
		return nil, fmt.Errorf("chart API error for %s: %s", symbol, parsed.Chart.Error.Description)
	}
	if len(parsed.Chart.Result) == 0 || len(parsed.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("chart response for %s carries no quote data", symbol)
	}

	result := parsed.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	series := make(Series, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) || quote.Close[i] == nil {
			continue
		}
		candle := Candle{
			Date:  time.Unix(ts, 0).UTC(),
			Close: *quote.Close[i],
		}
		if i < len(quote.Open) && quote.Open[i] != nil {
			candle.Open = *quote.Open[i]
		}
		if i < len(quote.High) && quote.High[i] != nil {
			candle.High = *quote.High[i]
		}
		if i < len(quote.Low) && quote.Low[i] != nil {
			candle.Low = *quote.Low[i]
		}
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			candle.Volume = *quote.Volume[i]
		}
		series = append(series, candle)
	}

	if len(series) == 0 {
		return nil, fmt.Errorf("chart response for %s carries no usable candles", symbol)
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol":  symbol,
		"candles": len(series),
	}).Debug("Fetched daily candles")

	return series, nil
}
