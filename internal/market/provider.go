// Package market builds per-commodity market snapshots: the live commodity
// price normalised to a per-tonne figure, the live USD/INR rate, and the
// static logistics table, merged into one row per destination country.
package market

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/seenimoa/agritrade/internal/commodity"
	"github.com/seenimoa/agritrade/internal/datasource"
	"github.com/seenimoa/agritrade/internal/infra"
	"github.com/seenimoa/agritrade/pkg/utils"
)

// DefaultFXSymbol is the USD→INR instrument.
const DefaultFXSymbol = "INR=X"

// DefaultTTL is how long a snapshot is served from cache.
const DefaultTTL = time.Hour

// Row is one destination country merged with the snapshot's live figures.
type Row struct {
	Country              string  `json:"country"`
	ShippingCostPerTonne float64 `json:"shipping_cost_per_tonne"`
	TariffRate           float64 `json:"tariff_rate"`
	PoliticalRisk        float64 `json:"political_risk"`
	PricePerTonne        float64 `json:"price_per_tonne"` // quote currency (USD)
	ExchangeRate         float64 `json:"exchange_rate"`   // quote currency → INR
}

// Snapshot is the merged market view of one commodity at fetch time.
// Snapshots are never modified after creation.
type Snapshot struct {
	Commodity     string    `json:"commodity"`
	Symbol        string    `json:"symbol"`
	Unit          string    `json:"unit"`
	RawPrice      float64   `json:"raw_price"`
	PricePerTonne float64   `json:"price_per_tonne"`
	ExchangeRate  float64   `json:"exchange_rate"`
	FetchedAt     time.Time `json:"fetched_at"`
	LastUpdated   string    `json:"last_updated"` // FetchedAt formatted for display
	Rows          []Row     `json:"rows"`
}

func (s *Snapshot) clone() *Snapshot {
	cp := *s
	cp.Rows = append([]Row(nil), s.Rows...)
	return &cp
}

// Options configures a Provider.
type Options struct {
	Catalog  *commodity.Catalog
	Source   datasource.PriceSource
	FXSymbol string        // defaults to DefaultFXSymbol
	TTL      time.Duration // defaults to DefaultTTL
	Clock    infra.Clock   // defaults to time.Now
	Logger   zerolog.Logger
}

// Provider fetches and caches market snapshots.
type Provider struct {
	catalog  *commodity.Catalog
	source   datasource.PriceSource
	fxSymbol string
	cache    *infra.Cache[*Snapshot]
	now      infra.Clock
	log      zerolog.Logger
}

// NewProvider creates a market data provider.
func NewProvider(opts Options) *Provider {
	if opts.Catalog == nil {
		opts.Catalog = commodity.DefaultCatalog()
	}
	if opts.FXSymbol == "" {
		opts.FXSymbol = DefaultFXSymbol
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Provider{
		catalog:  opts.Catalog,
		source:   opts.Source,
		fxSymbol: opts.FXSymbol,
		cache:    infra.NewCacheWithClock[*Snapshot](opts.TTL, opts.Clock),
		now:      opts.Clock,
		log:      opts.Logger.With().Str("component", "market").Logger(),
	}
}

// Catalog returns the provider's commodity catalog.
func (p *Provider) Catalog() *commodity.Catalog { return p.catalog }

// TTL returns the snapshot cache lifetime.
func (p *Provider) TTL() time.Duration { return p.cache.TTL() }

// FetchSnapshot returns the market snapshot for the named commodity,
// served from cache when a snapshot younger than the TTL exists.
//
// Errors are always *FetchError: KindUnknownCommodity for names outside
// the catalog, KindUpstreamFetch when either live query fails. No partial
// snapshot is ever returned.
func (p *Provider) FetchSnapshot(ctx context.Context, name string) (*Snapshot, error) {
	cfg, err := p.catalog.Lookup(name)
	if err != nil {
		return nil, &FetchError{Kind: KindUnknownCommodity, Commodity: name, Err: err}
	}

	if snap, ok := p.cache.Get(name); ok {
		p.log.Debug().Str("commodity", name).Str("fetched_at", snap.LastUpdated).Msg("snapshot cache hit")
		return snap.clone(), nil
	}

	rate, raw, err := p.fetchPair(ctx, cfg.Symbol)
	if err != nil {
		p.log.Warn().Err(err).Str("commodity", name).Msg("market data fetch failed")
		return nil, &FetchError{Kind: KindUpstreamFetch, Commodity: name, Err: err}
	}

	snap := buildSnapshot(cfg, raw, rate, p.now())
	p.cache.Set(name, snap)

	p.log.Info().
		Str("commodity", name).
		Float64("raw_price", raw).
		Float64("price_per_tonne", snap.PricePerTonne).
		Float64("exchange_rate", rate).
		Msg("market snapshot refreshed")

	return snap.clone(), nil
}

// Invalidate drops the cached snapshot of one commodity and reports
// whether one was cached.
func (p *Provider) Invalidate(name string) bool { return p.cache.Invalidate(name) }

// Flush drops every cached snapshot and returns the commodities dropped.
func (p *Provider) Flush() []string { return p.cache.Flush() }

// Cached returns the number of snapshots held in the cache.
func (p *Provider) Cached() int { return p.cache.Len() }

// fetchPair queries the exchange rate and the commodity price together.
// Both must succeed.
func (p *Provider) fetchPair(ctx context.Context, symbol string) (rate, price float64, err error) {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		fx, err := p.source.LatestClose(gctx, p.fxSymbol)
		if err != nil {
			return fmt.Errorf("exchange rate %s: %w", p.fxSymbol, err)
		}
		rate = fx.Price
		return nil
	})

	g.Go(func() error {
		px, err := p.source.LatestClose(gctx, symbol)
		if err != nil {
			return fmt.Errorf("commodity price %s: %w", symbol, err)
		}
		price = px.Price
		return nil
	})

	if err := g.Wait(); err != nil {
		return 0, 0, err
	}
	return rate, price, nil
}

func buildSnapshot(cfg commodity.Config, raw, rate float64, at time.Time) *Snapshot {
	perTonne := cfg.NormalizePrice(raw)

	rows := make([]Row, 0, len(cfg.Countries))
	for _, c := range cfg.Countries {
		rows = append(rows, Row{
			Country:              c.Country,
			ShippingCostPerTonne: c.ShippingCostPerTonne,
			TariffRate:           c.TariffRate,
			PoliticalRisk:        c.PoliticalRisk,
			PricePerTonne:        perTonne,
			ExchangeRate:         rate,
		})
	}

	at = utils.ToIST(at)
	return &Snapshot{
		Commodity:     cfg.Name,
		Symbol:        cfg.Symbol,
		Unit:          cfg.Unit,
		RawPrice:      raw,
		PricePerTonne: perTonne,
		ExchangeRate:  rate,
		FetchedAt:     at,
		LastUpdated:   utils.FormatDateTimeIST(at),
		Rows:          rows,
	}
}
