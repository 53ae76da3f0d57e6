// Package datasource fetches the latest close price of an instrument from
// an upstream market data source. Two sources are provided: the Yahoo
// Finance chart API and the Yahoo Finance quote page.
package datasource

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/seenimoa/agritrade/pkg/models"
)

// PriceSource returns the latest close for an instrument over the most
// recent trading period.
type PriceSource interface {
	// Name returns the human-readable name of this data source.
	Name() string

	// LatestClose returns the latest close for symbol.
	LatestClose(ctx context.Context, symbol string) (*models.ClosePrice, error)
}

// --- Sentinel errors ---

// ErrNoData is returned when the source answers but carries no usable
// close price (empty result, null or non-positive close).
var ErrNoData = errors.New("no close price available")

// ErrTickerNotFound is returned when a symbol cannot be resolved.
var ErrTickerNotFound = errors.New("ticker not found")

// usablePrice reports whether p can be used as a close price.
func usablePrice(p float64) bool {
	return p > 0 && !math.IsInf(p, 0) && !math.IsNaN(p)
}

// Source names accepted by New.
const (
	SourceChart = "chart"
	SourcePage  = "page"
)

// New returns the PriceSource registered under name.
func New(name string, opts YFinanceOptions) (PriceSource, error) {
	switch name {
	case "", SourceChart:
		return NewYFinance(opts), nil
	case SourcePage:
		return NewQuotePage(opts), nil
	default:
		return nil, fmt.Errorf("unknown price source %q (want %q or %q)", name, SourceChart, SourcePage)
	}
}
