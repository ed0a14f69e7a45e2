package cleaner

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/KaramelBytes/wordloom/internal/table"
)

// ParseNestedObjects decodes string cells holding JSON objects or arrays. With
// unquote set, single quotes are rewritten to double quotes first, which
// accepts the Python-style "['a', 'b']" encoding. Null and already structured
// cells pass through. Any other non-parseable cell aborts the run with a
// *StructuredParseError.
func (c *Cleaner) ParseNestedObjects(columns []string, unquote bool) Step {
	return Step{
		Kind:    KindParseNested,
		Columns: columns,
		apply: func(_ context.Context, d table.Dataset, _ *Report) (table.Dataset, error) {
			return eachColumn(d, columns, func(col string, i int, v table.Value) (table.Value, error) {
				s, ok := v.Str()
				if !ok {
					return v, nil
				}
				parsed, err := ParseStructured(s, unquote)
				if err != nil {
					return table.Value{}, &StructuredParseError{Column: col, Row: i, Value: s, Err: err}
				}
				return parsed, nil
			})
		},
	}
}

// ParseStructured decodes one structured cell.
func ParseStructured(s string, unquote bool) (table.Value, error) {
	if unquote {
		s = strings.ReplaceAll(s, "'", `"`)
	}
	var raw any
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return table.Value{}, err
	}
	return table.FromAny(raw), nil
}

// EnsureListContains appends the string in valueColumn to the list in
// listColumn when the list does not already hold it.
func (c *Cleaner) EnsureListContains(listColumn, valueColumn string) Step {
	return Step{
		Kind:    KindEnsureListContains,
		Columns: []string{listColumn, valueColumn},
		apply: func(_ context.Context, d table.Dataset, _ *Report) (table.Dataset, error) {
			return d.Map(func(_ int, r table.Row) (table.Row, error) {
				items, ok := r.Get(listColumn).Items()
				if !ok {
					return r, nil
				}
				want := r.Get(valueColumn)
				if _, ok := want.Str(); !ok {
					return r, nil
				}
				for _, it := range items {
					if it.Equal(want) {
						return r, nil
					}
				}
				next := append(append([]table.Value(nil), items...), want)
				r[listColumn] = table.List(next...)
				return r, nil
			})
		},
	}
}
