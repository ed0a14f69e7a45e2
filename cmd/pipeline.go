package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/KaramelBytes/wordloom/internal/chart"
	"github.com/KaramelBytes/wordloom/internal/cleaner"
	"github.com/KaramelBytes/wordloom/internal/dashboard"
	"github.com/KaramelBytes/wordloom/internal/table"
	"github.com/KaramelBytes/wordloom/internal/wordfreq"
)

// sourceArg returns the data source from args, falling back to data_path.
func sourceArg(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if cfg != nil && cfg.DataPath != "" {
		return cfg.DataPath, nil
	}
	return "", fmt.Errorf("no data source: pass a file or set data_path")
}

func loadOptions() table.LoadOptions {
	return table.LoadOptions{
		Delimiter: cfg.DelimiterRune(),
		SheetName: cfg.SheetName,
		MaxRows:   cfg.MaxRows,
	}
}

func newCleaner() *cleaner.Cleaner {
	return cleaner.New(cleaner.Options{Timezone: cfg.Timezone, Logger: logger})
}

// buildPlan turns config into a cleaning plan. Remap files extend the
// built-in institution mapping.
func buildPlan() (cleaner.Plan, error) {
	p := cleaner.DefaultPlan()
	if cfg.DatetimeColumns != nil {
		p.DatetimeColumns = cfg.DatetimeColumns
	}
	p.DatetimeFormat = cfg.DatetimeFormat
	if cfg.CategoryColumns != nil {
		p.CategoryColumns = cfg.CategoryColumns
	}
	if cfg.CategoryFallback != "" {
		p.CategoryFallback = cfg.CategoryFallback
	}
	if cfg.NestedColumns != nil {
		p.NestedColumns = cfg.NestedColumns
	}
	p.EmojiColumns = cfg.EmojiColumns
	p.RecordColumns = cfg.RecordColumns
	p.RecordDateFields = cfg.RecordDateFields
	p.BooleanColumns = cfg.BooleanColumns
	p.FloatColumns = cfg.FloatColumns
	if cfg.JoinKey != "" {
		p.JoinKey = cfg.JoinKey
	}
	p.Validate = cfg.Validate

	if cfg.InstitutionRemapFile != "" {
		m, err := cleaner.LoadMapping(cfg.InstitutionRemapFile)
		if err != nil {
			return cleaner.Plan{}, err
		}
		p.JoinKeyRemap = cleaner.MergeMappings(p.JoinKeyRemap, m)
	}
	if cfg.KeywordRemapFile != "" {
		m, err := cleaner.LoadMapping(cfg.KeywordRemapFile)
		if err != nil {
			return cleaner.Plan{}, err
		}
		p.KeywordRemap = m
	}
	return p, nil
}

func fetchTimeout() time.Duration {
	return time.Duration(cfg.FetchTimeoutSec) * time.Second
}

// rawSource loads src without cleaning it.
func rawSource(src string) dashboard.Source {
	return func(ctx context.Context) (table.Dataset, error) {
		return table.LoadSource(ctx, src, loadOptions(), fetchTimeout())
	}
}

// loadCleaned loads src and runs the configured pipeline.
func loadCleaned(ctx context.Context, src string) (table.Dataset, *cleaner.Report, error) {
	plan, err := buildPlan()
	if err != nil {
		return table.Dataset{}, nil, err
	}
	raw, err := rawSource(src)(ctx)
	if err != nil {
		return table.Dataset{}, nil, err
	}
	logger.Debug("dataset loaded", slog.String("source", src), slog.Int("rows", raw.Len()), slog.Any("columns", raw.Columns()))
	return newCleaner().Build(plan).Run(ctx, raw)
}

func textFields() []dashboard.Field {
	fields := make([]dashboard.Field, 0, len(cfg.TextFields))
	for _, f := range cfg.TextFields {
		fields = append(fields, dashboard.Field{Name: f, Label: cfg.Label(f)})
	}
	return fields
}

func chartOptions() chart.Options {
	return chart.Options{
		Title:      cfg.Title,
		Width:      cfg.Width,
		Height:     cfg.Height,
		ColorScale: cfg.ColorScale,
		Spiral: wordfreq.SpiralOptions{
			AngleStep:   cfg.SpiralAngleStep,
			RadiusScale: cfg.SpiralRadiusScale,
			MinFontSize: cfg.MinFontSize,
			MaxFontSize: cfg.MaxFontSize,
		},
	}
}

// newSession wires config into a dashboard session.
func newSession() (*dashboard.Session, error) {
	plan, err := buildPlan()
	if err != nil {
		return nil, err
	}
	kind, err := chart.ParseKind(cfg.ChartKind)
	if err != nil {
		return nil, err
	}
	return dashboard.NewSession(dashboard.Options{
		Cleaner:   newCleaner(),
		Plan:      plan,
		Fields:    textFields(),
		Tokenizer: wordfreq.Tokenizer{MinLen: cfg.MinTokenLen},
		MaxWords:  cfg.MaxWords,
		Kind:      kind,
		Chart:     chartOptions(),
		Logger:    logger,
	}), nil
}

// loadSession builds a session and loads src into it synchronously.
func loadSession(ctx context.Context, src string) (*dashboard.Session, error) {
	s, err := newSession()
	if err != nil {
		return nil, err
	}
	if err := s.Load(ctx, rawSource(src)); err != nil {
		return nil, err
	}
	return s, nil
}

func printReport(w io.Writer, rep *cleaner.Report) {
	if rep == nil {
		return
	}
	if n := len(rep.Warnings); n > 0 {
		fmt.Fprintf(w, "⚠ %d value(s) could not be parsed and were set to null\n", n)
		for i, wr := range rep.Warnings {
			if i == 5 {
				fmt.Fprintf(w, "  ... and %d more\n", n-5)
				break
			}
			fmt.Fprintf(w, "  - %s row %d: %q\n", wr.Column, wr.Row+1, wr.Value)
		}
	}
}
