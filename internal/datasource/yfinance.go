package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/seenimoa/agritrade/internal/infra"
	"github.com/seenimoa/agritrade/pkg/models"
)

// DefaultYFinanceBaseURL is the Yahoo Finance API host.
const DefaultYFinanceBaseURL = "https://query1.finance.yahoo.com"

// YFinance implements PriceSource using the Yahoo Finance v8 chart API.
type YFinance struct {
	baseURL string
	client  *resty.Client
	limiter *infra.RateLimiter
	log     zerolog.Logger
}

// YFinanceOptions configures a YFinance source. Zero values select defaults.
type YFinanceOptions struct {
	BaseURL   string
	Timeout   time.Duration
	RateLimit int // requests per second; 0 disables limiting
	Logger    zerolog.Logger
}

// NewYFinance creates a new Yahoo Finance data source.
func NewYFinance(opts YFinanceOptions) *YFinance {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultYFinanceBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	return &YFinance{
		baseURL: opts.BaseURL,
		client:  infra.NewHTTPClient(opts.Timeout),
		limiter: infra.NewRateLimiter(opts.RateLimit, time.Second),
		log:     opts.Logger.With().Str("source", "yfinance").Logger(),
	}
}

// Name returns the data source name.
func (y *YFinance) Name() string { return "Yahoo Finance" }

// --- Yahoo Finance v8 API types ---

type yfChartResponse struct {
	Chart struct {
		Result []yfChartResult `json:"result"`
		Error  *yfError        `json:"error"`
	} `json:"chart"`
}

type yfChartResult struct {
	Meta       yfChartMeta  `json:"meta"`
	Timestamp  []int64      `json:"timestamp"`
	Indicators yfIndicators `json:"indicators"`
}

type yfChartMeta struct {
	Symbol   string `json:"symbol"`
	Currency string `json:"currency"`
}

type yfIndicators struct {
	Quote []yfOHLCV `json:"quote"`
}

type yfOHLCV struct {
	Close []*float64 `json:"close"`
}

type yfError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// LatestClose returns the last close of the most recent daily bar.
func (y *YFinance) LatestClose(ctx context.Context, symbol string) (*models.ClosePrice, error) {
	if err := y.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/v8/finance/chart/%s?range=1d&interval=1d",
		y.baseURL, url.PathEscape(symbol))

	body, err := infra.DoGet(ctx, y.client, u, map[string]string{
		"Accept": "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("yfinance chart %s: %w", symbol, err)
	}

	var resp yfChartResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parse yfinance chart %s: %w", symbol, err)
	}
	if resp.Chart.Error != nil {
		if resp.Chart.Error.Code == "Not Found" {
			return nil, fmt.Errorf("%w: %s", ErrTickerNotFound, symbol)
		}
		return nil, fmt.Errorf("yfinance chart error: %s", resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("%w: %s: empty chart result", ErrNoData, symbol)
	}

	result := resp.Chart.Result[0]
	price, ts, ok := lastClose(result)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoData, symbol)
	}

	y.log.Debug().Str("symbol", symbol).Float64("close", price).Msg("fetched close")

	return &models.ClosePrice{
		Symbol:   symbol,
		Price:    price,
		Currency: result.Meta.Currency,
		AsOf:     ts,
		Source:   y.Name(),
	}, nil
}

// lastClose returns the most recent usable close and its bar timestamp.
// Trailing null closes (a bar that has not printed yet) are skipped.
func lastClose(result yfChartResult) (float64, time.Time, bool) {
	if len(result.Indicators.Quote) == 0 {
		return 0, time.Time{}, false
	}
	closes := result.Indicators.Quote[0].Close
	for i := len(closes) - 1; i >= 0; i-- {
		if closes[i] == nil || !usablePrice(*closes[i]) {
			continue
		}
		var ts time.Time
		if i < len(result.Timestamp) {
			ts = time.Unix(result.Timestamp[i], 0)
		}
		return *closes[i], ts, true
	}
	return 0, time.Time{}, false
}
