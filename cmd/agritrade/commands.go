package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/seenimoa/agritrade/api"
	"github.com/seenimoa/agritrade/internal/analysis/trade"
	"github.com/seenimoa/agritrade/internal/market"
	"github.com/seenimoa/agritrade/internal/report"
)

// --- Commodities Command ---

var commoditiesCmd = &cobra.Command{
	Use:   "commodities",
	Short: "List supported commodities",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog(cfg)
		if err != nil {
			return err
		}
		renderCatalog(cmd.OutOrStdout(), catalog.All())
		return nil
	},
}

// --- Snapshot Command ---

var snapshotCmd = &cobra.Command{
	Use:   "snapshot [commodity]",
	Short: "Show the live market snapshot of a commodity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, err := newProvider(cfg, log)
		if err != nil {
			return err
		}
		name := resolveName(provider, args[0])

		snap, err := provider.FetchSnapshot(cmd.Context(), name)
		if err != nil {
			renderFailure(cmd.ErrOrStderr(), name, err)
			return err
		}
		renderSnapshot(cmd.OutOrStdout(), snap)
		return nil
	},
}

// --- Analyze Command ---

var analyzeCmd = &cobra.Command{
	Use:   "analyze [commodity]",
	Short: "Rank export destinations by potential profit",
	Long: `Fetch the live snapshot of a commodity and compute, for every destination
country, sale value, shipping, tariff, total expenses, potential profit and ROI.

Every run fetches fresh prices; the snapshot cache lives in the API server
(see "serve", and the refresh option of its snapshot and analyze endpoints).

Examples:
  agritrade analyze Wheat --cost 50000 --weight 1000
  agritrade analyze "Crude Oil" --cost 2500000 --weight 20000 --xlsx oil.xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cost, _ := cmd.Flags().GetFloat64("cost")
		weight, _ := cmd.Flags().GetFloat64("weight")
		xlsxPath, _ := cmd.Flags().GetString("xlsx")

		req := trade.Request{CostBasis: cost, WeightKg: weight}
		if err := req.Validate(); err != nil {
			return err
		}

		provider, err := newProvider(cfg, log)
		if err != nil {
			return err
		}
		name := resolveName(provider, args[0])

		snap, err := provider.FetchSnapshot(cmd.Context(), name)
		if err != nil {
			renderFailure(cmd.ErrOrStderr(), name, err)
			return err
		}

		res, err := trade.Run(req, snap.Rows)
		if err != nil {
			return err
		}
		renderAnalysis(cmd.OutOrStdout(), snap, req, res)

		if xlsxPath != "" {
			if err := exportXLSX(xlsxPath, snap, req, res); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "📄 Workbook written to %s\n", xlsxPath)
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().Float64("cost", 50000, "cost basis of the goods in INR")
	analyzeCmd.Flags().Float64("weight", 1000, "shipment weight in kg")
	analyzeCmd.Flags().String("xlsx", "", "also write the analysis to an .xlsx workbook")
}

// --- Serve Command (API Server) ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, err := newProvider(cfg, log)
		if err != nil {
			return err
		}
		if port, _ := cmd.Flags().GetInt("port"); port != 0 {
			cfg.API.Port = port
		}

		srv := api.NewServer(cfg, provider, log, version)
		fmt.Fprintf(cmd.OutOrStdout(), "🌐 Starting agritrade API server on %s\n", cfg.API.Addr())
		return srv.ListenAndServe(cfg.API.Addr())
	},
}

func init() {
	serveCmd.Flags().Int("port", 0, "listen port override")
}

// resolveName maps user input to the catalog's spelling; unknown names are
// passed through so the provider reports them.
func resolveName(p *market.Provider, name string) string {
	if canonical, ok := p.Catalog().Resolve(name); ok {
		return canonical
	}
	return name
}

func exportXLSX(path string, snap *market.Snapshot, req trade.Request, res *trade.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create workbook: %w", err)
	}
	if err := report.WriteAnalysisXLSX(f, snap, req, res); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
