package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seenimoa/agritrade/internal/analysis/trade"
	"github.com/seenimoa/agritrade/internal/commodity"
	"github.com/seenimoa/agritrade/internal/config"
	"github.com/seenimoa/agritrade/internal/market"
)

func wheatSnapshot() *market.Snapshot {
	perTonne := 5.5 * (1 / 0.0272155)
	return &market.Snapshot{
		Commodity:     "Wheat",
		Symbol:        "ZW=F",
		Unit:          "bushel",
		RawPrice:      550,
		PricePerTonne: perTonne,
		ExchangeRate:  83,
		LastUpdated:   "2026-10-19 10:00:00 IST",
		Rows: []market.Row{
			{Country: "Egypt", ShippingCostPerTonne: 4000, TariffRate: 0.10, PoliticalRisk: 0.6, PricePerTonne: perTonne, ExchangeRate: 83},
			{Country: "Indonesia", ShippingCostPerTonne: 3000, TariffRate: 0.05, PoliticalRisk: 0.3, PricePerTonne: perTonne, ExchangeRate: 83},
		},
	}
}

func TestRenderCatalog(t *testing.T) {
	var buf bytes.Buffer
	renderCatalog(&buf, commodity.DefaultCatalog().All())

	out := buf.String()
	for _, name := range []string{"Coffee", "Wheat", "Corn", "Crude Oil", "ZW=F"} {
		assert.Contains(t, out, name)
	}
}

func TestRenderSnapshot(t *testing.T) {
	var buf bytes.Buffer
	renderSnapshot(&buf, wheatSnapshot())

	out := buf.String()
	assert.Contains(t, out, "Wheat (ZW=F)")
	assert.Contains(t, out, "$202.09")
	assert.Contains(t, out, "2026-10-19 10:00:00 IST")
	assert.Contains(t, out, "₹4,000.00")
	assert.Contains(t, out, "Indonesia")
}

func TestRenderAnalysis(t *testing.T) {
	snap := wheatSnapshot()
	req := trade.Request{CostBasis: 50000, WeightKg: 1000}
	res, err := trade.Run(req, snap.Rows)
	require.NoError(t, err)

	var buf bytes.Buffer
	renderAnalysis(&buf, snap, req, res)

	out := buf.String()
	assert.Contains(t, out, "Export analysis: Wheat")
	assert.Contains(t, out, "₹50,000.00")
	assert.Contains(t, out, "Best opportunity: Indonesia (-₹37.07 K, ROI -74.13%)")
	assert.Contains(t, out, "Lowest return:    Egypt (-₹38.9 K, ROI -77.81%)")
	assert.Contains(t, out, "-77.81%")
}

func TestRenderAnalysisNoRows(t *testing.T) {
	snap := wheatSnapshot()
	snap.Rows = nil
	req := trade.Request{CostBasis: 50000, WeightKg: 1000}
	res, err := trade.Run(req, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	renderAnalysis(&buf, snap, req, res)
	assert.Contains(t, buf.String(), "Could not perform analysis")
}

func TestRenderFailure(t *testing.T) {
	var buf bytes.Buffer
	err := &market.FetchError{Kind: market.KindUpstreamFetch, Commodity: "Corn", Err: errors.New("timeout")}
	renderFailure(&buf, "Corn", err)

	out := buf.String()
	assert.Contains(t, out, "Failed to fetch real-time data for Corn")
	assert.Contains(t, out, market.FallbackFetchedAt)
}

func TestLoadCatalogDefault(t *testing.T) {
	catalog, err := loadCatalog(&config.Config{})
	require.NoError(t, err)
	assert.Len(t, catalog.Names(), 4)
}

func TestLoadCatalogMissingFile(t *testing.T) {
	_, err := loadCatalog(&config.Config{Market: config.MarketConfig{CatalogFile: "/nonexistent/commodities.yaml"}})
	assert.Error(t, err)
}

func TestNewProviderUnknownSource(t *testing.T) {
	_, err := newProvider(&config.Config{Market: config.MarketConfig{Source: "carrier-pigeon"}}, log)
	assert.Error(t, err)
}

func TestExportXLSX(t *testing.T) {
	snap := wheatSnapshot()
	req := trade.Request{CostBasis: 50000, WeightKg: 1000}
	res, err := trade.Run(req, snap.Rows)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "wheat.xlsx")
	require.NoError(t, exportXLSX(path, snap, req, res))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestApplyLogLevel(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	base, err := config.Load()
	require.NoError(t, err)

	require.NoError(t, applyLogLevel(base, ""))
	assert.Equal(t, "info", base.Logging.Level)

	require.NoError(t, applyLogLevel(base, "debug"))
	assert.Equal(t, "debug", base.Logging.Level)

	err = applyLogLevel(base, "verbose")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "verbose")
	assert.Equal(t, "debug", base.Logging.Level, "rejected level leaves the config unchanged")
}
