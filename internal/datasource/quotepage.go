package datasource

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/seenimoa/agritrade/internal/infra"
	"github.com/seenimoa/agritrade/pkg/models"
)

// DefaultQuotePageBaseURL is the Yahoo Finance website host.
const DefaultQuotePageBaseURL = "https://finance.yahoo.com"

// QuotePage implements PriceSource by scraping the Yahoo Finance quote
// page. It is an alternative for networks where the JSON API is blocked.
type QuotePage struct {
	baseURL string
	client  *resty.Client
	limiter *infra.RateLimiter
	log     zerolog.Logger
}

// NewQuotePage creates a quote-page scraper. It shares YFinanceOptions.
func NewQuotePage(opts YFinanceOptions) *QuotePage {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultQuotePageBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	return &QuotePage{
		baseURL: opts.BaseURL,
		client:  infra.NewHTTPClient(opts.Timeout),
		limiter: infra.NewRateLimiter(opts.RateLimit, time.Second),
		log:     opts.Logger.With().Str("source", "quotepage").Logger(),
	}
}

// Name returns the data source name.
func (q *QuotePage) Name() string { return "Yahoo Finance (quote page)" }

// LatestClose scrapes the regular market price from the quote page.
func (q *QuotePage) LatestClose(ctx context.Context, symbol string) (*models.ClosePrice, error) {
	if err := q.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/quote/%s/", q.baseURL, url.PathEscape(symbol))
	body, err := infra.DoGet(ctx, q.client, u, map[string]string{
		"Accept": "text/html",
	})
	if err != nil {
		return nil, fmt.Errorf("quote page %s: %w", symbol, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse quote page %s: %w", symbol, err)
	}

	price, err := scrapePrice(doc, symbol)
	if err != nil {
		return nil, err
	}

	q.log.Debug().Str("symbol", symbol).Float64("price", price).Msg("scraped price")

	return &models.ClosePrice{
		Symbol: symbol,
		Price:  price,
		AsOf:   time.Now(),
		Source: q.Name(),
	}, nil
}

// scrapePrice reads the regularMarketPrice streamer for symbol. The
// data-value attribute is preferred over the rendered text.
func scrapePrice(doc *goquery.Document, symbol string) (float64, error) {
	sel := doc.Find(`fin-streamer[data-field="regularMarketPrice"]`).FilterFunction(func(_ int, s *goquery.Selection) bool {
		sym, ok := s.Attr("data-symbol")
		return !ok || sym == symbol
	}).First()
	if sel.Length() == 0 {
		return 0, fmt.Errorf("%w: %s: price element not found", ErrNoData, symbol)
	}

	raw, ok := sel.Attr("data-value")
	if !ok || strings.TrimSpace(raw) == "" {
		raw = sel.Text()
	}
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", "")

	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: unparseable price %q", ErrNoData, symbol, raw)
	}
	if !usablePrice(price) {
		return 0, fmt.Errorf("%w: %s: price %v", ErrNoData, symbol, price)
	}
	return price, nil
}
