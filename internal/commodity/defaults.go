package commodity

// Bushel weights in tonnes used by CBOT grain contracts.
const (
	wheatBushelTonnes = 0.0272155
	cornBushelTonnes  = 0.0254
)

// Defaults returns the built-in commodity table. Shipping costs are INR per
// tonne estimates; real logistics figures need a specialised data provider.
func Defaults() []Config {
	return []Config{
		{
			Name:        "Coffee",
			Symbol:      "KC=F",
			Unit:        "pound",
			TonneFactor: 2204.62,
			Countries: []CountryLogistics{
				{"Germany", 8200, 0.07, 0.2},
				{"USA", 10000, 0.0, 0.2},
				{"Italy", 8500, 0.05, 0.3},
				{"Japan", 7000, 0.08, 0.1},
				{"France", 8300, 0.07, 0.2},
				{"Canada", 10500, 0.0, 0.2},
				{"Netherlands", 8100, 0.07, 0.2},
				{"South Korea", 7200, 0.02, 0.3},
				{"Spain", 8800, 0.07, 0.3},
				{"UK", 8000, 0.0, 0.2},
			},
		},
		{
			Name:        "Wheat",
			Symbol:      "ZW=F",
			Unit:        "bushel",
			TonneFactor: 1 / wheatBushelTonnes,
			InSubunit:   true,
			Countries: []CountryLogistics{
				{"Egypt", 4000, 0.10, 0.6},
				{"Indonesia", 5500, 0.05, 0.4},
				{"Turkey", 4200, 0.12, 0.5},
				{"Brazil", 9500, 0.20, 0.7},
				{"Philippines", 5800, 0.07, 0.4},
				{"Nigeria", 6500, 0.15, 0.8},
				{"Bangladesh", 5000, 0.08, 0.5},
				{"Algeria", 4500, 0.06, 0.6},
				{"Mexico", 11000, 0.18, 0.4},
				{"Japan", 7000, 0.12, 0.1},
			},
		},
		{
			Name:        "Corn",
			Symbol:      "ZC=F",
			Unit:        "bushel",
			TonneFactor: 1 / cornBushelTonnes,
			InSubunit:   true,
			Countries: []CountryLogistics{
				{"Mexico", 11000, 0.0, 0.4},
				{"Japan", 7000, 0.12, 0.1},
				{"EU", 8000, 0.09, 0.2},
				{"Egypt", 4000, 0.10, 0.6},
				{"South Korea", 7200, 0.02, 0.3},
				{"Vietnam", 6000, 0.07, 0.4},
				{"Colombia", 12000, 0.15, 0.6},
				{"Taiwan", 6800, 0.06, 0.3},
				{"Iran", 3800, 0.10, 0.8},
				{"Saudi Arabia", 3500, 0.05, 0.3},
			},
		},
		{
			Name:        "Crude Oil",
			Symbol:      "CL=F",
			Unit:        "barrel",
			TonneFactor: 7.33,
			Countries: []CountryLogistics{
				{"China", 3000, 0.05, 0.5},
				{"USA", 9000, 0.08, 0.2},
				{"India", 2000, 0.03, 0.4},
				{"Japan", 3200, 0.06, 0.1},
				{"South Korea", 3100, 0.02, 0.3},
				{"Germany", 4500, 0.09, 0.2},
				{"Netherlands", 4400, 0.09, 0.2},
				{"Spain", 4800, 0.09, 0.3},
				{"Italy", 4600, 0.09, 0.3},
				{"Singapore", 3500, 0.0, 0.1},
			},
		},
	}
}

// DefaultCatalog returns a catalog of the built-in table.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(Defaults())
	if err != nil {
		panic("commodity: invalid built-in table: " + err.Error())
	}
	return c
}
