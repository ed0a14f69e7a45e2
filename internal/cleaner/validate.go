package cleaner

import (
	"context"
	"fmt"

	"github.com/KaramelBytes/wordloom/internal/table"
)

// ValidateStrings checks that every non-null cell of column is a string.
// With nullable false, Null cells fail too.
func (c *Cleaner) ValidateStrings(column string, nullable bool) Step {
	return c.check([]string{column}, func(r table.Row) string {
		v := r.Get(column)
		if v.IsNull() {
			if nullable {
				return ""
			}
			return "missing value"
		}
		if _, ok := v.Str(); !ok {
			return fmt.Sprintf("expected string, got %s", v.Kind())
		}
		return ""
	}, column)
}

// ValidateStringLists checks that every cell of column is a list of strings.
func (c *Cleaner) ValidateStringLists(column string) Step {
	return c.check([]string{column}, func(r table.Row) string {
		items, ok := r.Get(column).Items()
		if !ok {
			return fmt.Sprintf("expected list, got %s", r.Get(column).Kind())
		}
		for _, it := range items {
			if _, ok := it.Str(); !ok {
				return fmt.Sprintf("list holds a %s", it.Kind())
			}
		}
		return ""
	}, column)
}

// ValidateMembership checks that the string in valueColumn appears in the
// list in listColumn.
func (c *Cleaner) ValidateMembership(valueColumn, listColumn string) Step {
	return c.check([]string{valueColumn, listColumn}, func(r table.Row) string {
		want := r.Get(valueColumn)
		if _, ok := want.Str(); !ok {
			return fmt.Sprintf("expected string, got %s", want.Kind())
		}
		items, ok := r.Get(listColumn).Items()
		if !ok {
			return fmt.Sprintf("%s is not a list", listColumn)
		}
		for _, it := range items {
			if it.Equal(want) {
				return ""
			}
		}
		return fmt.Sprintf("%q not contained in %s", want.Text(), listColumn)
	}, valueColumn)
}

func (c *Cleaner) check(columns []string, rule func(table.Row) string, reportCol string) Step {
	return Step{
		Kind:    KindValidate,
		Columns: columns,
		apply: func(_ context.Context, d table.Dataset, _ *Report) (table.Dataset, error) {
			for i := 0; i < d.Len(); i++ {
				if reason := rule(d.Row(i)); reason != "" {
					return table.Dataset{}, &ValidationError{Column: reportCol, Row: i, Reason: reason}
				}
			}
			return d, nil
		},
	}
}
