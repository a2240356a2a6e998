package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"dbstats/adapters/excel"
	"dbstats/adapters/export"
	"dbstats/adapters/plot"
	"dbstats/app"
	"dbstats/internal/config"
)

func main() {
	// Optional .env next to the binary; environment wins over defaults.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "dbstats",
		Short: "Longitudinal statistics for the rodent DBS experiment",
		Long: `dbstats analyzes the body-weight and sucrose-preference measurements
of the Parkinson's-disease deep-brain-stimulation experiment: reshaping
the weekly weight table, testing phase effects (paired t-tests with Holm
correction, Friedman omnibus) and rendering the publication figures.`,
	}

	rootCmd.AddCommand(
		newWeightCmd(),
		newSucroseCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// flagOverrides applies the shared path/alpha flags onto the loaded config.
func flagOverrides(cmd *cobra.Command, cfg *config.Config) error {
	if v, _ := cmd.Flags().GetString("out"); v != "" {
		cfg.Paths.OutputDir = v
	}
	if cmd.Flags().Changed("alpha") {
		cfg.Analysis.Alpha, _ = cmd.Flags().GetFloat64("alpha")
	}
	if cmd.Flags().Changed("dpi") {
		cfg.Figures.DPI, _ = cmd.Flags().GetFloat64("dpi")
	}
	return cfg.Validate()
}

func addSharedFlags(cmd *cobra.Command) {
	cmd.Flags().String("out", "", "Output directory for tables and figures")
	cmd.Flags().Float64("alpha", 0.05, "Family-wise error rate for the Holm correction")
	cmd.Flags().Float64("dpi", 600, "Raster resolution of the figures")
}

func newWeightCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weight [input-file]",
		Short: "Run the body-weight phase analysis",
		Long: `Run the full body-weight pipeline on the wide weekly table:
melt to long form, label phases, aggregate per-subject phase means,
run the Holm-corrected paired post-hoc family and the Friedman test,
write Tables S1-S3 and render the trajectory and raincloud figures.

Example: dbstats weight data/weights.xlsx --out results --alpha 0.05`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				cfg.Paths.WeightFile = args[0]
			}
			if err := flagOverrides(cmd, cfg); err != nil {
				return err
			}

			svc := app.NewWeightService(
				cfg,
				excel.NewWeightReader(),
				export.NewCSVExporter(),
				plot.NewRenderer(cfg.Figures.DPI),
			)
			_, err = svc.Run(cmd.Context())
			return err
		},
	}
	addSharedFlags(cmd)
	return cmd
}

func newSucroseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sucrose [input-file]",
		Short: "Run the sucrose-preference OFF/ON analysis",
		Long: `Pair each PD subject's sucrose preference under stimulation OFF and ON,
run the paired t-test with Cohen's dz and render the raincloud figure.

Example: dbstats sucrose data/sucrose.csv --out results`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				cfg.Paths.SucroseFile = args[0]
			}
			if err := flagOverrides(cmd, cfg); err != nil {
				return err
			}

			svc := app.NewSucroseService(
				cfg,
				excel.NewSucroseReader(),
				plot.NewRenderer(cfg.Figures.DPI),
			)
			_, err = svc.Run(cmd.Context())
			return err
		},
	}
	addSharedFlags(cmd)
	return cmd
}
