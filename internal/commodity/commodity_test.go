package commodity

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()
	assert.Equal(t, []string{"Coffee", "Wheat", "Corn", "Crude Oil"}, c.Names())

	for _, cfg := range c.All() {
		require.NoError(t, Validate(cfg), cfg.Name)
		assert.Len(t, cfg.Countries, 10, cfg.Name)
	}

	wheat, err := c.Lookup("Wheat")
	require.NoError(t, err)
	assert.Equal(t, "ZW=F", wheat.Symbol)
	assert.True(t, wheat.InSubunit)
	assert.InDelta(t, 36.7437, wheat.TonneFactor, 1e-4)
	assert.Equal(t, "Egypt", wheat.Countries[0].Country)
}

func TestLookupUnknown(t *testing.T) {
	_, err := DefaultCatalog().Lookup("Gold")
	require.ErrorIs(t, err, ErrUnknown)
	assert.Contains(t, err.Error(), "Crude Oil")
}

func TestLookupReturnsCopy(t *testing.T) {
	c := DefaultCatalog()
	cfg, err := c.Lookup("Corn")
	require.NoError(t, err)
	cfg.Countries[0].Country = "Atlantis"

	again, err := c.Lookup("Corn")
	require.NoError(t, err)
	assert.Equal(t, "Mexico", again.Countries[0].Country)
}

func TestNormalizePrice(t *testing.T) {
	c := DefaultCatalog()

	wheat, _ := c.Lookup("Wheat")
	assert.InDelta(t, 550.0/100*wheat.TonneFactor, wheat.NormalizePrice(550), 1e-9)
	assert.InDelta(t, 202.09, wheat.NormalizePrice(550), 0.01)

	oil, _ := c.Lookup("Crude Oil")
	assert.InDelta(t, 80*7.33, oil.NormalizePrice(80), 1e-9)
}

func TestNewCatalogRejectsDuplicates(t *testing.T) {
	row := CountryLogistics{Country: "Egypt", ShippingCostPerTonne: 4000, TariffRate: 0.1}

	_, err := NewCatalog([]Config{
		{Name: "Wheat", Symbol: "ZW=F", Countries: []CountryLogistics{row}},
		{Name: "Wheat", Symbol: "ZW=F", Countries: []CountryLogistics{row}},
	})
	assert.ErrorContains(t, err, "duplicate commodity")

	_, err = NewCatalog([]Config{
		{Name: "Wheat", Symbol: "ZW=F", Countries: []CountryLogistics{row, row}},
	})
	assert.ErrorContains(t, err, "duplicate country")
}

func TestResolve(t *testing.T) {
	c := DefaultCatalog()

	name, ok := c.Resolve("crude oil")
	assert.True(t, ok)
	assert.Equal(t, "Crude Oil", name)

	name, ok = c.Resolve("Wheat")
	assert.True(t, ok)
	assert.Equal(t, "Wheat", name)

	_, ok = c.Resolve("soybeans")
	assert.False(t, ok)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "commodities.yaml")
	yaml := `
commodities:
  - name: Soybeans
    symbol: ZS=F
    unit: bushel
    tonne_factor: 36.7437
    in_subunit: true
    countries:
      - country: China
        shipping_cost_per_tonne: 3500
        tariff_rate: 0.03
        political_risk: 0.5
      - country: Japan
        shipping_cost_per_tonne: 7000
        tariff_rate: 0
        political_risk: 0.1
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Soybeans"}, c.Names())

	cfg, err := c.Lookup("Soybeans")
	require.NoError(t, err)
	assert.True(t, cfg.InSubunit)
	require.Len(t, cfg.Countries, 2)
	assert.Equal(t, 3500.0, cfg.Countries[0].ShippingCostPerTonne)
	assert.Equal(t, 0.03, cfg.Countries[0].TariffRate)
}

func TestLoadFileInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	yaml := `
commodities:
  - name: Rice
    symbol: ZR=F
    unit: cwt
    tonne_factor: 22.0462
    countries:
      - country: Iraq
        shipping_cost_per_tonne: 5000
        tariff_rate: 1.5
        political_risk: 0.7
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TariffRate")
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadFileExample(t *testing.T) {
	catalog, err := LoadFile(filepath.Join("..", "..", "config", "commodities.example.yaml"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Wheat", "Crude Oil"}, catalog.Names())

	wheat, err := catalog.Lookup("Wheat")
	require.NoError(t, err)
	assert.True(t, wheat.InSubunit)
	assert.Len(t, wheat.Countries, 3)
}
