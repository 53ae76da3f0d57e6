// Package trade ranks export destinations by the profit of shipping a
// consignment there at the current market snapshot.
package trade

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/seenimoa/agritrade/internal/market"
)

// ErrInvalidInput is returned by Run for a non-positive cost basis or weight.
var ErrInvalidInput = errors.New("invalid trade input")

// Row is one destination country with its computed outcome. All money
// fields are in INR.
type Row struct {
	market.Row

	TotalSaleValue    float64 `json:"total_sale_value"`
	TotalShippingCost float64 `json:"total_shipping_cost"`
	TariffCost        float64 `json:"tariff_cost"`
	TotalExpenses     float64 `json:"total_expenses"`
	PotentialProfit   float64 `json:"potential_profit"`
	ROI               float64 `json:"roi"` // percent of cost basis
}

// Analyze computes the outcome of exporting weightKg of goods bought for
// costBasis (INR) to every country in rows, ranked by potential profit,
// highest first. Countries with equal profit keep their input order.
//
// costBasis must be > 0: ROI divides by it, and a zero cost basis yields
// an infinite or NaN ROI. Use Run for validated input.
//
// An empty rows slice yields an empty result.
func Analyze(costBasis, weightKg float64, rows []market.Row) []Row {
	out := make([]Row, 0, len(rows))
	if len(rows) == 0 {
		return out
	}

	weightTonnes := weightKg / 1000
	for _, r := range rows {
		sale := r.PricePerTonne * weightTonnes * r.ExchangeRate
		shipping := r.ShippingCostPerTonne * weightTonnes
		tariff := sale * r.TariffRate
		expenses := costBasis + shipping + tariff
		profit := sale - expenses

		out = append(out, Row{
			Row:               r,
			TotalSaleValue:    sale,
			TotalShippingCost: shipping,
			TariffCost:        tariff,
			TotalExpenses:     expenses,
			PotentialProfit:   profit,
			ROI:               profit / costBasis * 100,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PotentialProfit > out[j].PotentialProfit
	})
	return out
}

// Request is a trader's scenario: what the goods cost and how much they weigh.
type Request struct {
	CostBasis float64 `json:"cost_basis" validate:"gt=0"` // INR
	WeightKg  float64 `json:"weight_kg"  validate:"gt=0"`
}

// Result is a ranked analysis together with its extremes.
type Result struct {
	Rows  []Row `json:"rows"`
	Best  *Row  `json:"best,omitempty"`  // highest potential profit
	Worst *Row  `json:"worst,omitempty"` // lowest potential profit
}

var validate = validator.New()

// Validate checks that the request satisfies Analyze's preconditions.
func (r Request) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s must be greater than 0 (got %v)", jsonName(e.Field()), e.Value()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(msgs, "; "))
}

// Run validates req and analyzes rows. Best and Worst are nil when rows
// is empty.
func Run(req Request, rows []market.Row) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ranked := Analyze(req.CostBasis, req.WeightKg, rows)
	res := &Result{Rows: ranked}
	if len(ranked) > 0 {
		best := ranked[0]
		worst := ranked[len(ranked)-1]
		res.Best = &best
		res.Worst = &worst
	}
	return res, nil
}

func jsonName(field string) string {
	switch field {
	case "CostBasis":
		return "cost_basis"
	case "WeightKg":
		return "weight_kg"
	}
	return field
}
