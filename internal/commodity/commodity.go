// Package commodity holds the static commodity and per-country logistics
// tables that the market provider merges with live prices.
//
// A Catalog is built once at startup, either from the built-in defaults or
// from an external YAML table, and is read-only afterwards.
package commodity

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknown is returned when a commodity name is not in the catalog.
var ErrUnknown = errors.New("unknown commodity")

// CountryLogistics is the static shipping/tariff/risk record for one
// destination country of a commodity.
type CountryLogistics struct {
	Country              string  `json:"country"                  mapstructure:"country"                  validate:"required"`
	ShippingCostPerTonne float64 `json:"shipping_cost_per_tonne"  mapstructure:"shipping_cost_per_tonne"  validate:"gte=0"`
	TariffRate           float64 `json:"tariff_rate"              mapstructure:"tariff_rate"              validate:"gte=0,lte=1"`
	PoliticalRisk        float64 `json:"political_risk"           mapstructure:"political_risk"           validate:"gte=0,lte=1"` // informational only
}

// Config describes one tradable commodity.
type Config struct {
	Name        string  `json:"name"         mapstructure:"name"         validate:"required"`
	Symbol      string  `json:"symbol"       mapstructure:"symbol"       validate:"required"` // Yahoo Finance instrument, e.g. "ZW=F"
	Unit        string  `json:"unit"         mapstructure:"unit"         validate:"required"` // unit of the raw quote, e.g. "bushel"
	TonneFactor float64 `json:"tonne_factor" mapstructure:"tonne_factor" validate:"gt=0"`     // quoted units per metric tonne
	InSubunit   bool    `json:"in_subunit"   mapstructure:"in_subunit"`                       // quote is in cents

	Countries []CountryLogistics `json:"countries" mapstructure:"countries" validate:"required,min=1,dive"`
}

// NormalizePrice converts a raw quote into quote-currency per tonne.
func (c Config) NormalizePrice(raw float64) float64 {
	if c.InSubunit {
		raw /= 100
	}
	return raw * c.TonneFactor
}

// Catalog is an immutable, ordered set of commodity configurations keyed by name.
type Catalog struct {
	order  []string
	byName map[string]Config
}

// NewCatalog builds a catalog, rejecting duplicate commodity names and
// duplicate countries within one commodity.
func NewCatalog(configs []Config) (*Catalog, error) {
	c := &Catalog{byName: make(map[string]Config, len(configs))}
	for _, cfg := range configs {
		if cfg.Name == "" {
			return nil, fmt.Errorf("commodity with symbol %q has no name", cfg.Symbol)
		}
		if _, dup := c.byName[cfg.Name]; dup {
			return nil, fmt.Errorf("duplicate commodity %q", cfg.Name)
		}
		seen := make(map[string]struct{}, len(cfg.Countries))
		for _, row := range cfg.Countries {
			if _, dup := seen[row.Country]; dup {
				return nil, fmt.Errorf("commodity %q: duplicate country %q", cfg.Name, row.Country)
			}
			seen[row.Country] = struct{}{}
		}

		cp := cfg
		cp.Countries = append([]CountryLogistics(nil), cfg.Countries...)
		c.byName[cfg.Name] = cp
		c.order = append(c.order, cfg.Name)
	}
	return c, nil
}

// Lookup returns the configuration for name. The returned Countries slice
// is a copy and may be modified by the caller.
func (c *Catalog) Lookup(name string) (Config, error) {
	cfg, ok := c.byName[name]
	if !ok {
		return Config{}, fmt.Errorf("%w: %q (supported: %s)", ErrUnknown, name, strings.Join(c.order, ", "))
	}
	cfg.Countries = append([]CountryLogistics(nil), cfg.Countries...)
	return cfg, nil
}

// Names returns commodity names in declaration order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.order...)
}

// All returns every configuration in declaration order.
func (c *Catalog) All() []Config {
	out := make([]Config, 0, len(c.order))
	for _, name := range c.order {
		cfg, _ := c.Lookup(name)
		out = append(out, cfg)
	}
	return out
}

// Resolve matches name case-insensitively against the catalog and returns
// the canonical name. It is used for user-typed input ("crude oil").
func (c *Catalog) Resolve(name string) (string, bool) {
	if _, ok := c.byName[name]; ok {
		return name, true
	}
	names := c.Names()
	sort.Strings(names)
	for _, n := range names {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return n, true
		}
	}
	return "", false
}
