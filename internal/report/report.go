// Package report exports trade analyses as spreadsheet workbooks.
package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/seenimoa/agritrade/internal/analysis/trade"
	"github.com/seenimoa/agritrade/internal/market"
)

// Sheet names of the analysis workbook.
const (
	SheetAnalysis = "Analysis"
	SheetSummary  = "Summary"
)

// analysisHeaders are the column titles of the analysis sheet, in order.
var analysisHeaders = []interface{}{
	"Country",
	"Shipping Cost/Tonne (INR)",
	"Tariff Rate",
	"Political Risk",
	"Price/Tonne (USD)",
	"Exchange Rate",
	"Total Sale Value (INR)",
	"Total Shipping Cost (INR)",
	"Tariff Cost (INR)",
	"Total Expenses (INR)",
	"Potential Profit (INR)",
	"ROI (%)",
}

// WriteAnalysisXLSX writes the ranked rows of res, together with a summary
// sheet describing the snapshot and inputs, as an .xlsx workbook to w.
func WriteAnalysisXLSX(w io.Writer, snap *market.Snapshot, req trade.Request, res *trade.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetAnalysis); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeRows(f, res.Rows); err != nil {
		return err
	}

	if _, err := f.NewSheet(SheetSummary); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}
	if err := writeSummary(f, snap, req, res); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, rows []trade.Row) error {
	if err := f.SetSheetRow(SheetAnalysis, "A1", &analysisHeaders); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(analysisHeaders), 1)
	if err := f.SetCellStyle(SheetAnalysis, "A1", last, bold); err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []interface{}{
			r.Country,
			r.ShippingCostPerTonne,
			r.TariffRate,
			r.PoliticalRisk,
			r.PricePerTonne,
			r.ExchangeRate,
			r.TotalSaleValue,
			r.TotalShippingCost,
			r.TariffCost,
			r.TotalExpenses,
			r.PotentialProfit,
			r.ROI,
		}
		if err := f.SetSheetRow(SheetAnalysis, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if len(rows) > 0 {
		money, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
		if err != nil {
			return fmt.Errorf("number style: %w", err)
		}
		end, _ := excelize.CoordinatesToCellName(len(analysisHeaders), len(rows)+1)
		if err := f.SetCellStyle(SheetAnalysis, "G2", end, money); err != nil {
			return fmt.Errorf("number style: %w", err)
		}
	}
	return f.SetColWidth(SheetAnalysis, "A", "L", 20)
}

func writeSummary(f *excelize.File, snap *market.Snapshot, req trade.Request, res *trade.Result) error {
	lines := [][]interface{}{
		{"Commodity", snap.Commodity},
		{"Symbol", snap.Symbol},
		{"Price/Tonne (USD)", snap.PricePerTonne},
		{"Exchange Rate", snap.ExchangeRate},
		{"Last Updated", snap.LastUpdated},
		{"Cost Basis (INR)", req.CostBasis},
		{"Weight (kg)", req.WeightKg},
	}
	if res.Best != nil {
		lines = append(lines,
			[]interface{}{"Best Opportunity", res.Best.Country, res.Best.PotentialProfit},
			[]interface{}{"Lowest Return", res.Worst.Country, res.Worst.PotentialProfit},
		)
	}

	for i := range lines {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(SheetSummary, cell, &lines[i]); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}
	return f.SetColWidth(SheetSummary, "A", "A", 22)
}
