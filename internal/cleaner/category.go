package cleaner

import (
	"context"
	"strings"

	"github.com/KaramelBytes/wordloom/internal/table"
)

// DefaultInstitutionRemap merges spelling variants of institution names.
// Keys are in standardized form (see StandardizeText).
var DefaultInstitutionRemap = map[string]string{
	"falabella":     "saga falabella",
	"sagafalabella": "saga falabella",
}

// ImputeCategory replaces Null cells in columns with replacement. Non-null
// cells pass through. All listed columns share the one label; call it again
// with other columns for a different label.
func (c *Cleaner) ImputeCategory(columns []string, replacement string) Step {
	return Step{
		Kind:    KindImputeCategory,
		Columns: columns,
		apply: func(_ context.Context, d table.Dataset, _ *Report) (table.Dataset, error) {
			return eachColumn(d, columns, func(_ string, _ int, v table.Value) (table.Value, error) {
				if v.IsNull() {
					return table.String(replacement), nil
				}
				return v, nil
			})
		},
	}
}

// StandardizeJoinKey collapses whitespace runs to one space, lower-cases and
// trims a string column used for filtering and grouping. Null passes through.
func (c *Cleaner) StandardizeJoinKey(column string) Step {
	return Step{
		Kind:    KindStandardizeJoinKey,
		Columns: []string{column},
		apply: func(_ context.Context, d table.Dataset, _ *Report) (table.Dataset, error) {
			return d.MapColumn(column, func(_ int, v table.Value) (table.Value, error) {
				s, ok := v.Str()
				if !ok {
					return v, nil
				}
				return c.text(StandardizeText(s)), nil
			})
		},
	}
}

// StandardizeText is the join-key normalization applied to a single string.
func StandardizeText(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// RemapCategories canonicalizes values through mapping. Values absent from the
// mapping, and non-string cells, pass through unchanged.
func (c *Cleaner) RemapCategories(column string, mapping map[string]string) Step {
	m := make(map[string]string, len(mapping))
	for k, v := range mapping {
		m[k] = v
	}
	return Step{
		Kind:    KindRemapCategories,
		Columns: []string{column},
		apply: func(_ context.Context, d table.Dataset, _ *Report) (table.Dataset, error) {
			return d.MapColumn(column, func(_ int, v table.Value) (table.Value, error) {
				s, ok := v.Str()
				if !ok {
					return v, nil
				}
				if canon, hit := m[s]; hit {
					return c.text(canon), nil
				}
				return v, nil
			})
		},
	}
}
