package cleaner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/KaramelBytes/wordloom/internal/table"
)

// Pipeline is an ordered sequence of steps. Run applies them left to right.
type Pipeline []Step

// nullBranching lists the steps whose behavior depends on cells already
// being Null rather than a raw sentinel string.
var nullBranching = map[StepKind]bool{
	KindClearSentinel:      true,
	KindParseDatetimes:     true,
	KindParseRecords:       true,
	KindImputeCategory:     true,
	KindParseNested:        true,
	KindStandardizeJoinKey: true,
	KindParseBooleans:      true,
	KindParseFloats:        true,
	KindEnsureListContains: true,
	KindValidate:           true,
}

// Validate checks the ordering contract: a step may not run before the step
// it depends on. NormalizeNulls precedes null-branching steps, ParseDatetimes
// precedes date formatting of the same column, and StandardizeJoinKey
// precedes RemapCategories of the same column.
func (p Pipeline) Validate() error {
	normalizeAt := -1
	for i, s := range p {
		if s.Kind == KindNormalizeNulls {
			normalizeAt = i
			break
		}
	}
	if normalizeAt > 0 {
		for _, s := range p[:normalizeAt] {
			if nullBranching[s.Kind] {
				return fmt.Errorf("%w: %s must run after %s", ErrStepOrder, s.Name(), KindNormalizeNulls)
			}
		}
	}

	for i, s := range p {
		switch s.Kind {
		case KindFormatDates:
			if j := p.indexOf(KindParseDatetimes, s.Columns); j > i {
				return fmt.Errorf("%w: %s must run after %s", ErrStepOrder, s.Name(), p[j].Name())
			}
		case KindRemapCategories:
			if j := p.indexOf(KindStandardizeJoinKey, s.Columns); j > i {
				return fmt.Errorf("%w: %s must run after %s", ErrStepOrder, s.Name(), p[j].Name())
			}
		}
	}
	return nil
}

// indexOf returns the position of the first step of kind touching any of cols.
func (p Pipeline) indexOf(kind StepKind, cols []string) int {
	for i, s := range p {
		if s.Kind != kind {
			continue
		}
		for _, a := range s.Columns {
			for _, b := range cols {
				if a == b {
					return i
				}
			}
		}
	}
	return -1
}

// Run validates the ordering and applies every step. The first error aborts
// the run and no partially cleaned dataset is returned.
func (p Pipeline) Run(ctx context.Context, d table.Dataset) (table.Dataset, *Report, error) {
	if err := p.Validate(); err != nil {
		return table.Dataset{}, nil, err
	}
	rep := &Report{Rows: d.Len()}
	out := d
	for _, s := range p {
		if err := ctx.Err(); err != nil {
			return table.Dataset{}, rep, err
		}
		start := time.Now()
		next, err := s.apply(ctx, out, rep)
		if err != nil {
			return table.Dataset{}, rep, fmt.Errorf("%s: %w", s.Name(), err)
		}
		rep.Steps = append(rep.Steps, StepStat{Name: s.Name(), Duration: time.Since(start)})
		out = next
	}
	slog.Debug("pipeline finished", slog.Int("rows", out.Len()), slog.Int("steps", len(p)), slog.Int("warnings", len(rep.Warnings)))
	return out, rep, nil
}
