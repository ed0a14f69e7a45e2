package cleaner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/KaramelBytes/wordloom/internal/table"
)

const (
	DefaultDatePattern     = "DD-MM-YYYY"
	DefaultDatetimePattern = "DD-MM-YYYY HH:mm:ss"
)

// isoLayouts are tried in order when no explicit format is configured.
var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
}

// ParseDatetimes replaces each non-null string in columns with a DateTime in
// the reference zone. format is either empty (ISO-like layouts), a day.js
// style pattern such as "DD/MM/YYYY HH:mm", or a Go layout. Cells that fail
// to parse become Null and are reported as warnings. Non-string cells pass
// through, so running the step twice is a no-op.
func (c *Cleaner) ParseDatetimes(columns []string, format string) Step {
	layouts := isoLayouts
	if format != "" {
		layouts = []string{Layout(format)}
	}
	return Step{
		Kind:    KindParseDatetimes,
		Columns: columns,
		apply: func(_ context.Context, d table.Dataset, rep *Report) (table.Dataset, error) {
			return eachColumn(d, columns, func(col string, i int, v table.Value) (table.Value, error) {
				s, ok := v.Str()
				if !ok {
					return v, nil
				}
				t, err := c.parseTime(s, layouts)
				if err != nil {
					c.warn(rep, Warning{Step: string(KindParseDatetimes), Column: col, Row: i, Value: s, Reason: err.Error()})
					return table.Null(), nil
				}
				return table.DateTime(t), nil
			})
		},
	}
}

// ParseTime parses s with the ISO-like layouts, anchored to the reference zone.
func (c *Cleaner) ParseTime(s string) (time.Time, error) {
	return c.parseTime(s, isoLayouts)
}

func (c *Cleaner) parseTime(s string, layouts []string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, l := range layouts {
		if hasZone(l) {
			if t, err := time.Parse(l, s); err == nil {
				return t.In(c.loc), nil
			}
			continue
		}
		if t, err := time.ParseInLocation(l, s, c.loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized datetime %q", s)
}

func hasZone(layout string) bool {
	return strings.Contains(layout, "Z07") || strings.Contains(layout, "-07") || strings.Contains(layout, "MST")
}

// FormatDates renders DateTime cells with pattern (DefaultDatePattern when
// empty). Must run after ParseDatetimes on the same columns.
func (c *Cleaner) FormatDates(columns []string, pattern string) Step {
	if pattern == "" {
		pattern = DefaultDatePattern
	}
	return c.formatStep(columns, pattern)
}

// FormatDatetimes is FormatDates with DefaultDatetimePattern.
func (c *Cleaner) FormatDatetimes(columns []string, pattern string) Step {
	if pattern == "" {
		pattern = DefaultDatetimePattern
	}
	return c.formatStep(columns, pattern)
}

func (c *Cleaner) formatStep(columns []string, pattern string) Step {
	layout := Layout(pattern)
	return Step{
		Kind:    KindFormatDates,
		Columns: columns,
		apply: func(_ context.Context, d table.Dataset, _ *Report) (table.Dataset, error) {
			return eachColumn(d, columns, func(_ string, _ int, v table.Value) (table.Value, error) {
				t, ok := v.Time()
				if !ok {
					return v, nil
				}
				return table.String(t.In(c.loc).Format(layout)), nil
			})
		},
	}
}

// dayjsTokens maps day.js format tokens to Go layout fragments, longest first.
var dayjsTokens = []struct{ tok, layout string }{
	{"YYYY", "2006"},
	{"SSS", "000"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"dddd", "Monday"},
	{"ddd", "Mon"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"HH", "15"},
	{"hh", "03"},
	{"mm", "04"},
	{"ss", "05"},
	{"ZZ", "-0700"},
	{"M", "1"},
	{"D", "2"},
	{"H", "15"},
	{"h", "3"},
	{"m", "4"},
	{"s", "5"},
	{"A", "PM"},
	{"a", "pm"},
	{"Z", "-07:00"},
}

// Layout converts a day.js style pattern to a Go time layout. A pattern that
// already contains Go reference fields ("2006", "15:04") is returned as is.
// Text inside square brackets is copied literally.
func Layout(pattern string) string {
	if strings.Contains(pattern, "2006") || strings.Contains(pattern, "15:04") {
		return pattern
	}
	var b strings.Builder
	for i := 0; i < len(pattern); {
		if pattern[i] == '[' {
			if end := strings.IndexByte(pattern[i:], ']'); end > 0 {
				b.WriteString(pattern[i+1 : i+end])
				i += end + 1
				continue
			}
		}
		matched := false
		for _, t := range dayjsTokens {
			if strings.HasPrefix(pattern[i:], t.tok) {
				b.WriteString(t.layout)
				i += len(t.tok)
				matched = true
				break
			}
		}
		if !matched {
			b.WriteByte(pattern[i])
			i++
		}
	}
	return b.String()
}

// ParseDatetimeRecords parses columns holding single-quoted lists of records
// and then parses the named datetime fields inside every record. A malformed
// list is a StructuredParseError; a malformed date inside a record becomes
// Null with a warning.
func (c *Cleaner) ParseDatetimeRecords(columns []string, fields []string) Step {
	nested := c.ParseNestedObjects(columns, true)
	return Step{
		Kind:    KindParseRecords,
		Columns: columns,
		apply: func(ctx context.Context, d table.Dataset, rep *Report) (table.Dataset, error) {
			parsed, err := nested.apply(ctx, d, rep)
			if err != nil {
				return table.Dataset{}, err
			}
			return eachColumn(parsed, columns, func(col string, i int, v table.Value) (table.Value, error) {
				items, ok := v.Items()
				if !ok {
					return v, nil
				}
				out := make([]table.Value, len(items))
				for k, item := range items {
					out[k] = c.parseRecordFields(rep, col, i, item, fields)
				}
				return table.List(out...), nil
			})
		},
	}
}

func (c *Cleaner) parseRecordFields(rep *Report, col string, row int, item table.Value, fields []string) table.Value {
	rec, ok := item.Fields()
	if !ok {
		return item
	}
	out := make(map[string]table.Value, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	for _, f := range fields {
		s, ok := out[f].Str()
		if !ok {
			continue
		}
		t, err := c.ParseTime(s)
		if err != nil {
			c.warn(rep, Warning{Step: string(KindParseRecords), Column: col + "." + f, Row: row, Value: s, Reason: err.Error()})
			out[f] = table.Null()
			continue
		}
		out[f] = table.DateTime(t)
	}
	return table.Object(out)
}
