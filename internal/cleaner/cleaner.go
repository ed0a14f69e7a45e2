// Package cleaner turns a freshly loaded table.Dataset into a cleaned one by
// running an ordered pipeline of column transforms.
//
// Every transform is a Step: a pure Dataset -> Dataset function bound to one
// or more columns. Steps are built from a Cleaner, which carries the settings
// they share (reference time zone, missing-value sentinels, logger), and are
// composed with a plain Pipeline slice:
//
//	c := cleaner.New(cleaner.Options{})
//	p := cleaner.Pipeline{
//		c.NormalizeNulls(),
//		c.ParseDatetimes([]string{"Published"}, ""),
//		c.ImputeCategory([]string{"institution"}, cleaner.DefaultCategoryFallback),
//	}
//	out, rep, err := p.Run(ctx, raw)
package cleaner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/KaramelBytes/wordloom/internal/table"
)

const (
	// DefaultTimezone anchors parsed datetimes.
	DefaultTimezone = "America/Lima"
	// DefaultCategoryFallback replaces missing categorical values.
	DefaultCategoryFallback = "sin especificar"
)

// DefaultMissingTokens are the raw cell spellings treated as missing. The
// empty string also covers whitespace-only cells since cells are trimmed
// before the lookup.
var DefaultMissingTokens = []string{"", "NaN", "nan", "null", "NULL", "undefined", "N/A"}

// Options configures a Cleaner.
type Options struct {
	// Timezone is an IANA name; empty means DefaultTimezone.
	Timezone string
	// MissingTokens overrides DefaultMissingTokens when non-nil.
	MissingTokens []string
	Logger        *slog.Logger
}

// Cleaner builds Steps that share one configuration.
type Cleaner struct {
	loc     *time.Location
	missing map[string]struct{}
	logger  *slog.Logger
}

// New constructs a Cleaner. An unknown timezone falls back to UTC with a
// warning so a bad config never blocks loading.
func New(opt Options) *Cleaner {
	logger := opt.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "cleaner"))

	tz := opt.Timezone
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		logger.Warn("unknown timezone, using UTC", slog.String("timezone", tz), slog.String("error", err.Error()))
		loc = time.UTC
	}

	tokens := opt.MissingTokens
	if tokens == nil {
		tokens = DefaultMissingTokens
	}
	missing := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		missing[t] = struct{}{}
	}
	return &Cleaner{loc: loc, missing: missing, logger: logger}
}

// Location returns the reference time zone.
func (c *Cleaner) Location() *time.Location { return c.loc }

// StepKind identifies a transform for ordering checks and reporting.
type StepKind string

const (
	KindNormalizeNulls     StepKind = "normalize_nulls"
	KindClearSentinel      StepKind = "clear_sentinel"
	KindParseDatetimes     StepKind = "parse_datetimes"
	KindParseRecords       StepKind = "parse_datetime_records"
	KindFormatDates        StepKind = "format_dates"
	KindImputeCategory     StepKind = "impute_category"
	KindParseNested        StepKind = "parse_nested"
	KindStandardizeJoinKey StepKind = "standardize_join_key"
	KindRemapCategories    StepKind = "remap_categories"
	KindParseBooleans      StepKind = "parse_booleans"
	KindParseFloats        StepKind = "parse_floats"
	KindStripDiacritics    StepKind = "strip_diacritics"
	KindRemoveEmojis       StepKind = "remove_emojis"
	KindEnsureListContains StepKind = "ensure_list_contains"
	KindValidate           StepKind = "validate"
)

// Step is one named column transform.
type Step struct {
	Kind    StepKind
	Columns []string
	apply   func(ctx context.Context, d table.Dataset, rep *Report) (table.Dataset, error)
}

// Name renders the step for logs, e.g. "parse_datetimes(Published)".
func (s Step) Name() string {
	return fmt.Sprintf("%s(%s)", s.Kind, strings.Join(s.Columns, ","))
}

// Apply runs the step on its own, outside a pipeline.
func (s Step) Apply(ctx context.Context, d table.Dataset) (table.Dataset, *Report, error) {
	rep := &Report{}
	out, err := s.apply(ctx, d, rep)
	return out, rep, err
}

// Warning is a recoverable, cell-level problem. The cell was set to null.
type Warning struct {
	Step   string
	Column string
	Row    int
	Value  string
	Reason string
}

// StepStat records how long a step took.
type StepStat struct {
	Name     string
	Duration time.Duration
}

// Report summarizes a pipeline run.
type Report struct {
	Rows     int
	Steps    []StepStat
	Warnings []Warning
}

func (c *Cleaner) warn(rep *Report, w Warning) {
	rep.Warnings = append(rep.Warnings, w)
	c.logger.Warn("value could not be parsed, set to null",
		slog.String("step", w.Step),
		slog.String("column", w.Column),
		slog.Int("row", w.Row),
		slog.String("value", w.Value),
		slog.String("reason", w.Reason),
	)
}

// eachColumn applies fn to every listed column in turn.
func eachColumn(d table.Dataset, cols []string, fn func(col string, i int, v table.Value) (table.Value, error)) (table.Dataset, error) {
	out := d
	for _, col := range cols {
		var err error
		out, err = out.MapColumn(col, func(i int, v table.Value) (table.Value, error) {
			return fn(col, i, v)
		})
		if err != nil {
			return table.Dataset{}, err
		}
	}
	return out, nil
}
