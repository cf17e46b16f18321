package main

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-exoplanets/internal/config"
	"github.com/litescript/ls-exoplanets/internal/exo"
	"github.com/litescript/ls-exoplanets/internal/logging"
	"github.com/litescript/ls-exoplanets/internal/report"
	"github.com/litescript/ls-exoplanets/internal/scene"
	"github.com/litescript/ls-exoplanets/internal/ui"
)

var (
	summaryMax int
	exportOut  string
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print a table of the placed planets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runHeadless(cmd, func(w io.Writer, h headless) error {
			report.WriteSummaryTable(w, h.records, h.objects, h.catalog.FetchedAt(), report.TableOptions{
				Color: report.IsTerminal(os.Stdout),
				Max:   summaryMax,
			})
			return nil
		})
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the placed planets as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runHeadless(cmd, func(w io.Writer, h headless) error {
			export := report.ExportCatalog(h.records, h.objects, h.cfg.Endpoint, h.catalog.FetchedAt())
			if exportOut == "-" {
				if err := export.WriteJSON(w); err != nil {
					return fmt.Errorf("write JSON to stdout: %w", err)
				}
				return nil
			}
			f, err := os.Create(exportOut)
			if err != nil {
				return fmt.Errorf("create export file: %w", err)
			}
			defer f.Close()
			if err := export.WriteJSON(f); err != nil {
				return fmt.Errorf("write JSON to file: %w", err)
			}
			h.logger.Info("Exported %d planets to %s", len(h.objects), exportOut)
			return nil
		})
	},
}

var cardCmd = &cobra.Command{
	Use:   "card NAME",
	Short: "Show the analysis card for one planet",
	Long: `Shows the analysis card for the first planet whose name or KOI id
contains NAME (case-insensitive).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHeadless(cmd, func(w io.Writer, h headless) error {
			i, err := exo.FindByName(h.records, args[0])
			if err != nil {
				return err
			}
			if matches := exo.FilterByName(h.records, args[0]); len(matches) > 1 {
				h.logger.Info("%d planets match %q; showing %s", len(matches), args[0], h.records[i].DisplayName())
			}
			r := h.records[i]
			o, ok := scene.Lookup(h.objects, r.ID)
			if !ok {
				// Not among the placed planets; place the whole table.
				all := scene.Generate(h.records, len(h.records), h.rng)
				o, _ = scene.Lookup(all, r.ID)
			}
			report.WriteCard(w, r, o, exo.DeriveMetrics(r, h.rng))
			return nil
		})
	},
}

func init() {
	summaryCmd.Flags().IntVar(&summaryMax, "max", 40, "Rows to print (0 prints all)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "-", "Output file (- for stdout)")
}

// headless carries the loaded catalog into a subcommand.
type headless struct {
	cfg     config.Config
	logger  *logging.Logger
	catalog *exo.Catalog
	rng     *rand.Rand
	records []exo.Record
	objects []scene.Object
}

// runHeadless loads the catalog once and hands it to fn.
func runHeadless(cmd *cobra.Command, fn func(io.Writer, headless) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := signalContext()
	defer cancel()

	catalog := newCatalog(cfg, logger)
	records, err := catalog.Load(ctx)
	if err != nil {
		return err
	}
	logger.Debug("Catalog ready after %d request(s)", catalog.Requests())

	rng := ui.NewRand(cfg.Seed)
	limit := cfg.Limit
	if limit <= 0 {
		limit = len(records)
	}
	h := headless{
		cfg:     cfg,
		logger:  logger,
		catalog: catalog,
		rng:     rng,
		records: records,
		objects: scene.Generate(records, limit, rng),
	}
	return fn(cmd.OutOrStdout(), h)
}
