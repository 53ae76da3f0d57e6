// agritrade: export profitability for commodity shipments.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/seenimoa/agritrade/internal/commodity"
	"github.com/seenimoa/agritrade/internal/config"
	"github.com/seenimoa/agritrade/internal/datasource"
	"github.com/seenimoa/agritrade/internal/market"
	"github.com/seenimoa/agritrade/pkg/logger"
	"github.com/seenimoa/agritrade/pkg/utils"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config and logger, set in PersistentPreRunE.
var (
	cfg *config.Config
	log zerolog.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "agritrade",
	Short: "agritrade: commodity export profitability calculator",
	Long: `agritrade combines live commodity prices and the USD/INR rate with
static per-country shipping, tariff and political risk tables, and ranks
export destinations by potential profit for a given cost basis and weight.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		lvl, _ := cmd.Flags().GetString("log-level")
		if err := applyLogLevel(cfg, lvl); err != nil {
			return err
		}
		log = logger.New(logger.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
		logger.SetGlobalLogger(log)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(commoditiesCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
}

// applyLogLevel overrides the configured log level, rejecting names the
// config file would reject too. An empty level keeps the configured one.
func applyLogLevel(c *config.Config, level string) error {
	if level == "" {
		return nil
	}
	prev := c.Logging.Level
	c.Logging.Level = level
	if err := config.Validate(c); err != nil {
		c.Logging.Level = prev
		return fmt.Errorf("invalid --log-level %q (want debug, info, warn or error)", level)
	}
	return nil
}

// loadCatalog returns the external commodity table when configured,
// otherwise the built-in one.
func loadCatalog(c *config.Config) (*commodity.Catalog, error) {
	if c.Market.CatalogFile == "" {
		return commodity.DefaultCatalog(), nil
	}
	catalog, err := commodity.LoadFile(c.Market.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return catalog, nil
}

// newProvider wires the configured price source and catalog into a market provider.
func newProvider(c *config.Config, l zerolog.Logger) (*market.Provider, error) {
	catalog, err := loadCatalog(c)
	if err != nil {
		return nil, err
	}
	src, err := datasource.New(c.Market.Source, datasource.YFinanceOptions{
		BaseURL:   c.Market.BaseURL,
		Timeout:   c.Market.Timeout(),
		RateLimit: c.Market.RateLimit,
		Logger:    l,
	})
	if err != nil {
		return nil, err
	}
	return market.NewProvider(market.Options{
		Catalog:  catalog,
		Source:   src,
		FXSymbol: c.Market.FXSymbol,
		TTL:      c.Market.TTL(),
		Logger:   l,
	}), nil
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "agritrade %s\n", version)
		fmt.Fprintf(out, "  commit:  %s\n", commit)
		fmt.Fprintf(out, "  built:   %s\n", date)
	},
}

// --- Status Command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration and commodity catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog(cfg)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "═══════════════════════════════════════")
		fmt.Fprintln(out, "  agritrade System Status")
		fmt.Fprintln(out, "═══════════════════════════════════════")
		fmt.Fprintf(out, "  Version:       %s (%s)\n", version, commit)
		fmt.Fprintf(out, "  Time (IST):    %s\n", utils.FormatDateTimeIST(utils.NowIST()))
		fmt.Fprintln(out)

		fmt.Fprintln(out, "  Configuration:")
		fmt.Fprintf(out, "    Price source:  %s\n", cfg.Market.Source)
		fmt.Fprintf(out, "    FX symbol:     %s\n", cfg.Market.FXSymbol)
		fmt.Fprintf(out, "    Cache TTL:     %s\n", cfg.Market.TTL())
		fmt.Fprintf(out, "    Rate limit:    %d req/s\n", cfg.Market.RateLimit)
		catalogSrc := "built-in"
		if cfg.Market.CatalogFile != "" {
			catalogSrc = cfg.Market.CatalogFile
		}
		fmt.Fprintf(out, "    Catalog:       %s\n", catalogSrc)
		fmt.Fprintf(out, "    API Server:    %s\n", cfg.API.Addr())
		fmt.Fprintln(out)

		fmt.Fprintln(out, "  Commodities:")
		for _, c := range catalog.All() {
			fmt.Fprintf(out, "    %-12s %-6s per %-7s %d countries\n", c.Name, c.Symbol, c.Unit, len(c.Countries))
		}
		fmt.Fprintln(out, "═══════════════════════════════════════")
		return nil
	},
}
