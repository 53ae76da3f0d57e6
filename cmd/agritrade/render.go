package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/seenimoa/agritrade/internal/analysis/trade"
	"github.com/seenimoa/agritrade/internal/commodity"
	"github.com/seenimoa/agritrade/internal/market"
	"github.com/seenimoa/agritrade/pkg/utils"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	gainStyle   = cellStyle.Foreground(lipgloss.Color("42"))
	lossStyle   = cellStyle.Foreground(lipgloss.Color("196"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...)
}

func renderCatalog(w io.Writer, all []commodity.Config) {
	t := newTable("Commodity", "Symbol", "Quoted per", "Units/tonne", "Cents", "Countries").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, c := range all {
		cents := "no"
		if c.InSubunit {
			cents = "yes"
		}
		t.Row(c.Name, c.Symbol, c.Unit, strconv.FormatFloat(c.TonneFactor, 'f', 4, 64), cents, strconv.Itoa(len(c.Countries)))
	}
	fmt.Fprintln(w, t.Render())
}

func renderSnapshot(w io.Writer, snap *market.Snapshot) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s (%s)", snap.Commodity, snap.Symbol)))
	fmt.Fprintf(w, "Price per tonne: %s  (raw %.4f per %s)\n", utils.FormatUSD(snap.PricePerTonne), snap.RawPrice, snap.Unit)
	fmt.Fprintf(w, "USD/INR:         %.4f\n", snap.ExchangeRate)
	fmt.Fprintln(w, mutedStyle.Render("Last updated: "+snap.LastUpdated))

	t := newTable("Country", "Shipping/tonne", "Tariff", "Political risk").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, r := range snap.Rows {
		t.Row(r.Country, utils.FormatINR(r.ShippingCostPerTonne), fmt.Sprintf("%.0f%%", r.TariffRate*100), fmt.Sprintf("%.2f", r.PoliticalRisk))
	}
	fmt.Fprintln(w, t.Render())
}

func renderAnalysis(w io.Writer, snap *market.Snapshot, req trade.Request, res *trade.Result) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Export analysis: %s", snap.Commodity)))
	fmt.Fprintf(w, "Cost basis %s, weight %.0f kg, price %s/tonne at %.4f INR/USD\n",
		utils.FormatINR(req.CostBasis), req.WeightKg, utils.FormatUSD(snap.PricePerTonne), snap.ExchangeRate)
	fmt.Fprintln(w, mutedStyle.Render("Last updated: "+snap.LastUpdated))

	if len(res.Rows) == 0 {
		fmt.Fprintln(w, warnStyle.Render("Could not perform analysis: no market data rows are available."))
		return
	}

	rows := res.Rows
	t := newTable("Country", "Sale value", "Shipping", "Tariff", "Expenses", "Profit", "ROI", "Risk").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if (col == 5 || col == 6) && row >= 0 && row < len(rows) {
				if rows[row].PotentialProfit < 0 {
					return lossStyle
				}
				return gainStyle
			}
			return cellStyle
		})
	for _, r := range rows {
		t.Row(
			r.Country,
			utils.FormatINR(r.TotalSaleValue),
			utils.FormatINR(r.TotalShippingCost),
			utils.FormatINR(r.TariffCost),
			utils.FormatINR(r.TotalExpenses),
			utils.FormatINR(r.PotentialProfit),
			utils.FormatPct(r.ROI),
			fmt.Sprintf("%.2f", r.PoliticalRisk),
		)
	}
	fmt.Fprintln(w, t.Render())

	fmt.Fprintf(w, "Best opportunity: %s (%s, ROI %s)\n", res.Best.Country, utils.FormatINRCompact(res.Best.PotentialProfit), utils.FormatPct(res.Best.ROI))
	fmt.Fprintf(w, "Lowest return:    %s (%s, ROI %s)\n", res.Worst.Country, utils.FormatINRCompact(res.Worst.PotentialProfit), utils.FormatPct(res.Worst.ROI))
}

func renderFailure(w io.Writer, name string, err error) {
	fmt.Fprintln(w, warnStyle.Render(market.FailureMessage(name, err)))
	fmt.Fprintln(w, mutedStyle.Render("Last updated: "+market.FallbackFetchedAt))
}
