// Package config holds the profiling options consumed by the core. Options
// can be built directly, loaded from environment variables, or merged from a
// YAML file; the core only ever sees the resulting value and never knows how
// it was produced.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"tabprof/domain/report"
	"tabprof/internal/errors"
)

// CorrelationMethod selects the association coefficient
type CorrelationMethod string

const (
	MethodPearson  CorrelationMethod = "pearson"
	MethodSpearman CorrelationMethod = "spearman"
)

// OutlierMethod selects the flagging bounds
type OutlierMethod string

const (
	OutlierIQR    OutlierMethod = "iqr"
	OutlierStdDev OutlierMethod = "stddev"
)

// Theme selects the report color theme
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Limits bounds the size of a loadable dataset. Exceeding a limit is a
// distinct load-time error raised before the core runs.
type Limits struct {
	MaxRows int `yaml:"max_rows"`
	MaxCols int `yaml:"max_cols"`
}

// Options is the full configuration of one profiling run
type Options struct {
	Title  string `yaml:"title"`
	Target string `yaml:"target"`

	IncludeSections []string `yaml:"include_sections"`
	ExcludeSections []string `yaml:"exclude_sections"`

	CorrelationMethod CorrelationMethod `yaml:"correlation_method"`
	OutputMode        report.OutputMode `yaml:"output_mode"`
	Theme             Theme             `yaml:"theme"`

	TopKCategories       int     `yaml:"top_k_categories"`
	CategoricalThreshold float64 `yaml:"categorical_threshold"`

	OutlierMethod     OutlierMethod `yaml:"outlier_method"`
	OutlierStdDevMult float64       `yaml:"outlier_stddev_mult"`

	SampleRows int    `yaml:"sample_rows"`
	Limits     Limits `yaml:"limits"`

	// PDFEngine is the external HTML-to-PDF converter command; conversion
	// is outside the core and only invoked by the CLI.
	PDFEngine string `yaml:"pdf_engine"`
}

// Default returns the baseline options
func Default() Options {
	return Options{
		Title:                "Data Profile Report",
		CorrelationMethod:    MethodPearson,
		OutputMode:           report.ModeInteractive,
		Theme:                ThemeLight,
		TopKCategories:       10,
		CategoricalThreshold: 0.5,
		OutlierMethod:        OutlierIQR,
		OutlierStdDevMult:    3,
		SampleRows:           5,
		Limits: Limits{
			MaxRows: 1_000_000,
			MaxCols: 1_000,
		},
	}
}

// Load reads options from the environment on top of defaults. A .env file is
// honored when present.
func Load() Options {
	_ = godotenv.Load()

	opts := Default()
	if v := os.Getenv("TABPROF_TITLE"); v != "" {
		opts.Title = v
	}
	if v := os.Getenv("TABPROF_THEME"); v != "" {
		opts.Theme = Theme(v)
	}
	if v := os.Getenv("TABPROF_OUTPUT_MODE"); v != "" {
		opts.OutputMode = report.OutputMode(v)
	}
	if v := os.Getenv("TABPROF_CORRELATION_METHOD"); v != "" {
		opts.CorrelationMethod = CorrelationMethod(v)
	}
	if v := os.Getenv("TABPROF_TOP_K"); v != "" {
		if k, err := strconv.Atoi(v); err == nil {
			opts.TopKCategories = k
		}
	}
	if v := os.Getenv("TABPROF_MAX_ROWS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			opts.Limits.MaxRows = n
		}
	}
	if v := os.Getenv("TABPROF_MAX_COLS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			opts.Limits.MaxCols = n
		}
	}
	if v := os.Getenv("TABPROF_PDF_ENGINE"); v != "" {
		opts.PDFEngine = v
	}
	return opts
}

// MergeFile overlays a YAML options file on top of opts
func MergeFile(opts Options, path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, errors.Wrapf(err, "failed to read options file %s", path)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, errors.Wrapf(err, "failed to parse options file %s", path)
	}
	return opts, nil
}

// Validate fails fast on unrecognized enum values and section names,
// identifying the offending field. Target presence is validated against the
// table by the assembler since it needs the column set.
func (o Options) Validate() error {
	switch o.CorrelationMethod {
	case MethodPearson, MethodSpearman:
	default:
		return errors.ConfigInvalid("correlation_method",
			fmt.Sprintf("unknown correlation method %q", o.CorrelationMethod))
	}
	switch o.OutputMode {
	case report.ModeInteractive, report.ModeStatic:
	default:
		return errors.ConfigInvalid("output_mode",
			fmt.Sprintf("unknown output mode %q", o.OutputMode))
	}
	switch o.Theme {
	case ThemeLight, ThemeDark:
	default:
		return errors.ConfigInvalid("theme", fmt.Sprintf("unknown theme %q", o.Theme))
	}
	switch o.OutlierMethod {
	case OutlierIQR, OutlierStdDev:
	default:
		return errors.ConfigInvalid("outlier_method",
			fmt.Sprintf("unknown outlier method %q", o.OutlierMethod))
	}
	if o.TopKCategories <= 0 {
		return errors.ConfigInvalid("top_k_categories", "must be positive")
	}
	if o.CategoricalThreshold <= 0 || o.CategoricalThreshold > 1 {
		return errors.ConfigInvalid("categorical_threshold", "must be in (0, 1]")
	}
	if o.OutlierStdDevMult <= 0 {
		return errors.ConfigInvalid("outlier_stddev_mult", "must be positive")
	}
	if o.SampleRows < 0 {
		return errors.ConfigInvalid("sample_rows", "must not be negative")
	}
	if _, err := o.Sections(); err != nil {
		return err
	}
	return nil
}

// Sections resolves the active section set, rejecting unknown names
func (o Options) Sections() (report.SectionSet, error) {
	include, err := parseSections(o.IncludeSections, "include_sections")
	if err != nil {
		return nil, err
	}
	exclude, err := parseSections(o.ExcludeSections, "exclude_sections")
	if err != nil {
		return nil, err
	}
	return report.ResolveSections(include, exclude), nil
}

func parseSections(names []string, field string) ([]report.Section, error) {
	out := make([]report.Section, 0, len(names))
	for _, name := range names {
		sec, err := report.ParseSection(name)
		if err != nil {
			return nil, errors.ConfigInvalid(field, err.Error())
		}
		out = append(out, sec)
	}
	return out, nil
}
