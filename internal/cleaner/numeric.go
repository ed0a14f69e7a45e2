package cleaner

import (
	"context"
	"strconv"
	"strings"

	"github.com/KaramelBytes/wordloom/internal/table"
)

// ParseBooleans maps "true" and "1" (case-insensitive) to true and any other
// string to false. Null passes through.
func (c *Cleaner) ParseBooleans(columns []string) Step {
	return Step{
		Kind:    KindParseBooleans,
		Columns: columns,
		apply: func(_ context.Context, d table.Dataset, _ *Report) (table.Dataset, error) {
			return eachColumn(d, columns, func(_ string, _ int, v table.Value) (table.Value, error) {
				s, ok := v.Str()
				if !ok {
					return v, nil
				}
				switch strings.ToLower(strings.TrimSpace(s)) {
				case "true", "1":
					return table.Bool(true), nil
				default:
					return table.Bool(false), nil
				}
			})
		},
	}
}

// ParseFloats converts numeric strings to Number. Unparseable cells become
// Null with a warning.
func (c *Cleaner) ParseFloats(columns []string) Step {
	return Step{
		Kind:    KindParseFloats,
		Columns: columns,
		apply: func(_ context.Context, d table.Dataset, rep *Report) (table.Dataset, error) {
			return eachColumn(d, columns, func(col string, i int, v table.Value) (table.Value, error) {
				s, ok := v.Str()
				if !ok {
					return v, nil
				}
				f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
				if err != nil {
					c.warn(rep, Warning{Step: string(KindParseFloats), Column: col, Row: i, Value: s, Reason: "not a number"})
					return table.Null(), nil
				}
				return table.Number(f), nil
			})
		},
	}
}
