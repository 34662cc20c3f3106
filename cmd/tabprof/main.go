package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"tabprof/adapters/loader"
	"tabprof/adapters/postgres"
	"tabprof/adapters/render"
	"tabprof/app"
	"tabprof/domain/report"
	"tabprof/domain/table"
	"tabprof/internal"
	"tabprof/internal/config"
	"tabprof/ui"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00CC66")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#CC8800"))
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tabprof",
		Short: "Profile tabular datasets into HTML, PDF or JSON reports",
	}

	rootCmd.AddCommand(
		newProfileCmd(),
		newCompareCmd(),
		newServeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// optionFlags are the CLI overrides layered on top of env and file config
type optionFlags struct {
	configFile  string
	title       string
	target      string
	include     []string
	exclude     []string
	method      string
	theme       string
	topK        int
	outlierMeth string
	outlierMult float64
	sampleRows  int
	maxRows     int
	maxCols     int
	static      bool
	pdfEngine   string
}

func (f *optionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.configFile, "config", "", "YAML options file merged over environment config")
	cmd.Flags().StringVar(&f.title, "title", "", "report title")
	cmd.Flags().StringVar(&f.target, "target", "", "target column for relationship analysis")
	cmd.Flags().StringSliceVar(&f.include, "include", nil, "sections to include (default all)")
	cmd.Flags().StringSliceVar(&f.exclude, "exclude", nil, "sections to exclude (wins over include)")
	cmd.Flags().StringVar(&f.method, "method", "", "correlation method: pearson or spearman")
	cmd.Flags().StringVar(&f.theme, "theme", "", "report theme: light or dark")
	cmd.Flags().IntVar(&f.topK, "top-k", 0, "top categories kept per categorical column")
	cmd.Flags().StringVar(&f.outlierMeth, "outlier-method", "", "outlier flagging: iqr or stddev")
	cmd.Flags().Float64Var(&f.outlierMult, "outlier-mult", 0, "stddev multiplier for outlier fences")
	cmd.Flags().IntVar(&f.sampleRows, "sample-rows", 0, "rows shown in the head/tail sample")
	cmd.Flags().IntVar(&f.maxRows, "max-rows", 0, "maximum rows accepted at load time")
	cmd.Flags().IntVar(&f.maxCols, "max-cols", 0, "maximum columns accepted at load time")
	cmd.Flags().BoolVar(&f.static, "static", false, "render static charts instead of live ones")
	cmd.Flags().StringVar(&f.pdfEngine, "pdf-engine", "", "external HTML-to-PDF converter command")
}

// resolveOptions layers env config, an optional YAML file and CLI flags
func (f *optionFlags) resolveOptions() (config.Options, error) {
	opts := config.Load()
	if f.configFile != "" {
		merged, err := config.MergeFile(opts, f.configFile)
		if err != nil {
			return opts, err
		}
		opts = merged
	}
	if f.title != "" {
		opts.Title = f.title
	}
	if f.target != "" {
		opts.Target = f.target
	}
	if len(f.include) > 0 {
		opts.IncludeSections = f.include
	}
	if len(f.exclude) > 0 {
		opts.ExcludeSections = f.exclude
	}
	if f.method != "" {
		opts.CorrelationMethod = config.CorrelationMethod(f.method)
	}
	if f.theme != "" {
		opts.Theme = config.Theme(f.theme)
	}
	if f.topK > 0 {
		opts.TopKCategories = f.topK
	}
	if f.outlierMeth != "" {
		opts.OutlierMethod = config.OutlierMethod(f.outlierMeth)
	}
	if f.outlierMult > 0 {
		opts.OutlierStdDevMult = f.outlierMult
	}
	if f.sampleRows > 0 {
		opts.SampleRows = f.sampleRows
	}
	if f.maxRows > 0 {
		opts.Limits.MaxRows = f.maxRows
	}
	if f.maxCols > 0 {
		opts.Limits.MaxCols = f.maxCols
	}
	if f.static {
		opts.OutputMode = report.ModeStatic
	}
	if f.pdfEngine != "" {
		opts.PDFEngine = f.pdfEngine
	}
	return opts, opts.Validate()
}

// loadInput reads a table from a file path or a SQL relation
func loadInput(ctx context.Context, path, sqlDSN, sqlTable string, limits config.Limits) (*table.Table, string, error) {
	if sqlDSN != "" {
		if sqlTable == "" {
			return nil, "", fmt.Errorf("--sql-table is required with --sql-dsn")
		}
		db, err := postgres.Connect(sqlDSN)
		if err != nil {
			return nil, "", err
		}
		defer db.Close()
		tbl, err := postgres.NewTableLoader(db).Load(ctx, sqlTable, limits)
		return tbl, sqlTable, err
	}
	if path == "" {
		return nil, "", fmt.Errorf("an input file or --sql-dsn is required")
	}
	tbl, err := loader.Load(ctx, path, limits)
	return tbl, filepath.Base(path), err
}

func newProfileCmd() *cobra.Command {
	var flags optionFlags
	var out, format, sqlDSN, sqlTable string

	cmd := &cobra.Command{
		Use:   "profile [input-file]",
		Short: "Generate a profiling report for one dataset",
		Long: `Profile a CSV, Excel or Parquet file, or a PostgreSQL table, and write
the report as HTML, PDF or JSON.

Example: tabprof profile sales.csv --target revenue --out sales.html`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log := internal.NewDefaultLogger()

			opts, err := flags.resolveOptions()
			if err != nil {
				return err
			}
			if format == "pdf" {
				// Live charts cannot survive print conversion.
				opts.OutputMode = report.ModeStatic
			}

			var path string
			if len(args) == 1 {
				path = args[0]
			}
			tbl, name, err := loadInput(ctx, path, sqlDSN, sqlTable, opts.Limits)
			if err != nil {
				return err
			}
			fmt.Println(mutedStyle.Render(fmt.Sprintf("loaded %s: %d rows, %d columns",
				name, tbl.NumRows(), tbl.NumCols())))

			svc, err := app.NewProfileService(opts, log)
			if err != nil {
				return err
			}

			var bar *progressbar.ProgressBar
			svc.OnColumn = func(col string, index, total int) {
				if bar == nil {
					bar = progressbar.NewOptions(total,
						progressbar.OptionSetDescription("profiling"),
						progressbar.OptionSetWidth(40),
						progressbar.OptionShowCount(),
						progressbar.OptionClearOnFinish(),
					)
				}
				bar.Describe("profiling " + col)
				bar.Add(1)
			}

			rep, err := svc.BuildReport(tbl)
			if err != nil {
				return err
			}
			if bar != nil {
				bar.Finish()
			}

			if out == "" {
				out = defaultOutPath(name, format)
			}
			if err := writeReport(ctx, rep, opts, format, out); err != nil {
				return err
			}

			printSummary(rep, out)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&out, "out", "", "output path (defaults next to the input)")
	cmd.Flags().StringVar(&format, "format", "html", "output format: html, pdf or json")
	cmd.Flags().StringVar(&sqlDSN, "sql-dsn", "", "PostgreSQL connection string")
	cmd.Flags().StringVar(&sqlTable, "sql-table", "", "relation to profile when using --sql-dsn")
	return cmd
}

func defaultOutPath(inputName, format string) string {
	base := strings.TrimSuffix(inputName, filepath.Ext(inputName))
	if base == "" {
		base = "report"
	}
	switch format {
	case "pdf":
		return base + ".pdf"
	case "json":
		return base + ".json"
	default:
		return base + ".html"
	}
}

func writeReport(ctx context.Context, rep *report.Report, opts config.Options, format, out string) error {
	switch format {
	case "html":
		renderer, err := render.NewHTMLRenderer()
		if err != nil {
			return err
		}
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		return renderer.RenderReport(f, rep)
	case "pdf":
		renderer, err := render.NewHTMLRenderer()
		if err != nil {
			return err
		}
		engine := opts.PDFEngine
		if engine == "" {
			engine = "wkhtmltopdf"
		}
		return render.WritePDF(ctx, renderer, rep, engine, out)
	case "json":
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		return render.WriteJSON(f, rep)
	default:
		return fmt.Errorf("unknown format %q (want html, pdf or json)", format)
	}
}

func printSummary(rep *report.Report, out string) {
	fmt.Println()
	fmt.Println(titleStyle.Render(rep.Title))
	if rep.Overview != nil {
		fmt.Println(mutedStyle.Render(fmt.Sprintf("  %d rows · %d columns · %.2f%% missing cells",
			rep.Overview.Rows, rep.Overview.Columns, rep.Overview.MissingCellsPct)))
	}
	for _, d := range rep.Diagnostics {
		fmt.Println(warnStyle.Render(fmt.Sprintf("  ! section %s skipped: %s", d.Section, d.Message)))
	}
	fmt.Println(successStyle.Render("  ✔ " + out))
}

func newCompareCmd() *cobra.Command {
	var flags optionFlags
	var out, format string

	cmd := &cobra.Command{
		Use:   "compare <left-file> <right-file>",
		Short: "Compare two datasets column by column",
		Long: `Load two datasets and report schema drift and per-column distribution
differences for the columns they share.

Example: tabprof compare train.csv test.csv --out drift.html`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log := internal.NewDefaultLogger()

			opts, err := flags.resolveOptions()
			if err != nil {
				return err
			}

			var left, right *table.Table
			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				var err error
				left, err = loader.Load(gctx, args[0], opts.Limits)
				return err
			})
			g.Go(func() error {
				var err error
				right, err = loader.Load(gctx, args[1], opts.Limits)
				return err
			})
			if err := g.Wait(); err != nil {
				return err
			}

			svc, err := app.NewCompareService(opts, log)
			if err != nil {
				return err
			}
			cmp := svc.Compare(left, right, filepath.Base(args[0]), filepath.Base(args[1]))

			if out == "" {
				if format == "json" {
					out = "comparison.json"
				} else {
					out = "comparison.html"
				}
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()

			switch format {
			case "html":
				renderer, err := render.NewHTMLRenderer()
				if err != nil {
					return err
				}
				if err := renderer.RenderComparison(f, cmp); err != nil {
					return err
				}
			case "json":
				if err := render.WriteComparisonJSON(f, cmp); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown format %q (want html or json)", format)
			}

			fmt.Println(titleStyle.Render(fmt.Sprintf("%s vs %s", cmp.LeftName, cmp.RightName)))
			fmt.Println(mutedStyle.Render(fmt.Sprintf("  %d shared · %d only left · %d only right",
				len(cmp.Common), len(cmp.OnlyLeft), len(cmp.OnlyRight))))
			fmt.Println(successStyle.Render("  ✔ " + out))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&out, "out", "", "output path")
	cmd.Flags().StringVar(&format, "format", "html", "output format: html or json")
	return cmd
}

func newServeCmd() *cobra.Command {
	var flags optionFlags
	var addr, sqlDSN, sqlTable string

	cmd := &cobra.Command{
		Use:   "serve [input-file]",
		Short: "Profile a dataset and serve the report over HTTP",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log := internal.NewDefaultLogger()
			opts, err := flags.resolveOptions()
			if err != nil {
				return err
			}

			var path string
			if len(args) == 1 {
				path = args[0]
			}
			tbl, _, err := loadInput(ctx, path, sqlDSN, sqlTable, opts.Limits)
			if err != nil {
				return err
			}

			svc, err := app.NewProfileService(opts, log)
			if err != nil {
				return err
			}
			rep, err := svc.BuildReport(tbl)
			if err != nil {
				return err
			}

			renderer, err := render.NewHTMLRenderer()
			if err != nil {
				return err
			}
			return ui.NewApp(rep, renderer, log).Serve(ctx, addr)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&sqlDSN, "sql-dsn", "", "PostgreSQL connection string")
	cmd.Flags().StringVar(&sqlTable, "sql-table", "", "relation to profile when using --sql-dsn")
	return cmd
}
