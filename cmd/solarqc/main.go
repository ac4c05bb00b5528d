package main

import (
	"context"
	"fmt"
	"os"

	"solarqc/adapters/charts"
	"solarqc/adapters/report"
	"solarqc/adapters/tabfile"
	"solarqc/app"
	"solarqc/domain/cleaning"
	"solarqc/domain/table"
	"solarqc/internal/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// Pick up local configuration when a .env file is present
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "solarqc",
		Short: "Profile, clean and report solar measurement station exports",
	}

	rootCmd.AddCommand(
		newProfileCmd(),
		newCleanCmd(),
		newChartsCmd(),
		newRunCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// pipelineFlags are the per-run overrides every subcommand shares.
// Environment configuration provides the defaults; a flag only takes
// effect when the user set it explicitly.
type pipelineFlags struct {
	columns    []string
	zThreshold float64
	outDir     string
	output     string
	timestamp  string
	sampleRows int
	bins       int
}

func (f *pipelineFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.columns, "columns", nil, "Target columns to clean (default TARGET_COLUMNS)")
	cmd.Flags().Float64Var(&f.zThreshold, "z-threshold", 3.0, "Absolute z-score above which a row is an outlier")
	cmd.Flags().StringVar(&f.outDir, "out-dir", "out", "Directory for cleaned data, figures and reports")
	cmd.Flags().StringVar(&f.output, "output", "", "Cleaned CSV filename (default <input>_clean.csv)")
	cmd.Flags().StringVar(&f.timestamp, "timestamp-column", "", "Timestamp column name (default auto-detect)")
	cmd.Flags().IntVar(&f.sampleRows, "sample-rows", 1000, "Rows sampled for column type detection")
	cmd.Flags().IntVar(&f.bins, "bins", 40, "Histogram bin count")
}

func (f *pipelineFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("columns") {
		cfg.Data.TargetColumns = f.columns
	}
	if flags.Changed("z-threshold") {
		cfg.Cleaning.ZThreshold = f.zThreshold
	}
	if flags.Changed("out-dir") {
		cfg.Output.Dir = f.outDir
	}
	if flags.Changed("output") {
		cfg.Output.CleanedName = f.output
	}
	if flags.Changed("timestamp-column") {
		cfg.Data.TimestampColumn = f.timestamp
	}
	if flags.Changed("sample-rows") {
		cfg.Data.SampleRows = f.sampleRows
	}
	if flags.Changed("bins") {
		cfg.Charts.HistogramBins = f.bins
	}
}

// loadConfig builds the run configuration from the environment plus
// explicit flag overrides.
func loadConfig(cmd *cobra.Command, flags *pipelineFlags) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	flags.apply(cmd, cfg)
	return cfg, nil
}

func buildService(cfg *config.Config) *app.WorkflowService {
	return app.NewWorkflowService(
		tabfile.NewReader(),
		tabfile.NewWriter(),
		charts.NewRenderer(cfg.Charts),
		report.NewRenderer(),
		cfg,
	)
}

func newProfileCmd() *cobra.Command {
	flags := &pipelineFlags{}

	cmd := &cobra.Command{
		Use:   "profile [data-file]",
		Short: "Profile every column of a station export",
		Long: `Read a station export and print per-column statistics: inferred type,
missing counts, summary statistics and distribution shape.

Example: solarqc profile data/benin-malanville.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			return runProfile(cmd.Context(), cfg, args[0])
		},
	}

	flags.register(cmd)
	return cmd
}

func newCleanCmd() *cobra.Command {
	flags := &pipelineFlags{}

	cmd := &cobra.Command{
		Use:   "clean [data-file]",
		Short: "Clean target columns and write the cleaned CSV",
		Long: `Flag outlier rows by z-score, impute missing target values with the
column median, drop rows that stay incomplete, and write the surviving
rows back out as CSV.

Example: solarqc clean data/benin-malanville.csv --columns GHI,DNI,DHI --z-threshold 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			return runClean(cmd.Context(), cfg, args[0])
		},
	}

	flags.register(cmd)
	return cmd
}

func newChartsCmd() *cobra.Command {
	flags := &pipelineFlags{}

	cmd := &cobra.Command{
		Use:   "charts [data-file]",
		Short: "Clean the data and render the figure set",
		Long: `Clean the target columns, then render time series, histograms, scatter,
correlation heatmap and wind rose figures into the output directory
without writing the cleaned CSV or reports.

Example: solarqc charts data/benin-malanville.csv --out-dir figures`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			return runCharts(cmd.Context(), cfg, args[0])
		},
	}

	flags.register(cmd)
	return cmd
}

func newRunCmd() *cobra.Command {
	flags := &pipelineFlags{}
	var noHTML, noWorkbook bool

	cmd := &cobra.Command{
		Use:   "run [data-file]",
		Short: "Run the full pipeline: profile, clean, charts and reports",
		Long: `Execute every stage: profile the raw data, clean the target columns,
write the cleaned CSV, render figures and produce the markdown, HTML
and workbook reports.

Example: solarqc run data/benin-malanville.csv --columns GHI,DNI,DHI --out-dir out`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			if noHTML {
				cfg.Output.ReportHTML = false
			}
			if noWorkbook {
				cfg.Output.Workbook = false
			}
			return runAll(cmd.Context(), cfg, args[0])
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&noHTML, "no-html", false, "Skip the HTML report")
	cmd.Flags().BoolVar(&noWorkbook, "no-workbook", false, "Skip the xlsx workbook")
	return cmd
}

func runProfile(ctx context.Context, cfg *config.Config, path string) error {
	svc := buildService(cfg)

	profile, err := svc.RunProfile(ctx, path)
	if err != nil {
		return err
	}

	fmt.Printf("\n=== COLUMN PROFILES: %s (%d rows) ===\n\n", profile.Dataset, profile.Rows)
	fmt.Printf("%-14s %-10s %8s %8s %9s %10s %10s %10s %10s\n",
		"Column", "Type", "Count", "Missing", "Missing%", "Mean", "StdDev", "Min", "Max")
	for _, p := range profile.Profiles {
		switch p.Type {
		case table.ValueTypeFloat, table.ValueTypeInteger:
			fmt.Printf("%-14s %-10s %8d %8d %8.1f%% %10.2f %10.2f %10.2f %10.2f\n",
				p.Column, p.Type, p.Count, p.Missing, p.MissingRate*100,
				p.Summary.Mean, p.Summary.StdDev, p.Summary.Min, p.Summary.Max)
		default:
			fmt.Printf("%-14s %-10s %8d %8d %8.1f%%\n",
				p.Column, p.Type, p.Count, p.Missing, p.MissingRate*100)
		}
	}

	for _, col := range profile.NumericColumns() {
		p := profile.ProfileFor(col)
		if p.IQROutliers == 0 && p.NegativeCount == 0 {
			continue
		}
		fmt.Printf("\n%s: %d IQR outliers, %d negative, %d zero values",
			col, p.IQROutliers, p.NegativeCount, p.ZeroCount)
	}
	fmt.Println()
	return nil
}

func runClean(ctx context.Context, cfg *config.Config, path string) error {
	svc := buildService(cfg)

	result, err := svc.RunClean(ctx, path)
	if err != nil {
		return err
	}

	printCleaningSummary(result.Report)
	fmt.Printf("\nCleaned dataset: %s\n", result.Outputs[0])
	return nil
}

func runCharts(ctx context.Context, cfg *config.Config, path string) error {
	svc := buildService(cfg)

	result, err := svc.RunCharts(ctx, path)
	if err != nil {
		return err
	}

	fmt.Printf("\n=== FIGURES ===\n")
	if len(result.Charts) == 0 {
		fmt.Println("No figures applicable to this dataset.")
		return nil
	}
	for _, a := range result.Charts {
		fmt.Printf("%-12s %s\n", a.Kind, a.Path)
	}
	return nil
}

func runAll(ctx context.Context, cfg *config.Config, path string) error {
	svc := buildService(cfg)

	result, err := svc.RunAll(ctx, path)
	if err != nil {
		return err
	}

	printCleaningSummary(result.Report)

	if result.Pearson != nil {
		if a, b, r, ok := result.Pearson.StrongestPair(); ok {
			fmt.Printf("\nStrongest correlation: %s and %s (r = %.2f)\n", a, b, r)
		}
	}

	fmt.Printf("\n=== OUTPUTS ===\n")
	for _, out := range result.Outputs {
		fmt.Println(out)
	}
	return nil
}

func printCleaningSummary(report *cleaning.Report) {
	fmt.Printf("\n=== CLEANING SUMMARY ===\n")
	fmt.Printf("Run: %s\n", report.RunID)
	fmt.Printf("Threshold: |z| > %g\n", report.Threshold)
	fmt.Printf("Rows: %d in, %d out (%d dropped missing, %d dropped outlier)\n",
		report.RowsIn, report.RowsOut, report.RowsDroppedMissing, report.RowsDroppedOutlier)

	if len(report.Columns) > 0 {
		fmt.Printf("\n%-14s %8s %9s %9s %8s\n", "Column", "Missing", "Missing%", "Outliers", "Imputed")
		for _, c := range report.Columns {
			fmt.Printf("%-14s %8d %8.1f%% %9d %8d\n",
				c.Column, c.Missing, c.MissingPct, c.Outliers, c.Imputed)
		}
	}

	for _, w := range report.Warnings {
		fmt.Printf("Warning [%s] %s: %s\n", w.Kind, w.Column, w.Detail)
	}
}
