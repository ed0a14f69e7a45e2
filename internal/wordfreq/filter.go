// Package wordfreq ranks the words of a free-text column and lays the ranking
// out for a treemap or spiral word cloud.
package wordfreq

import (
	"github.com/KaramelBytes/wordloom/internal/table"
)

// Selector chooses rows by category. The zero Selector selects every row.
type Selector struct {
	values map[string]struct{}
}

// All selects every row.
func All() Selector { return Selector{} }

// One selects rows whose category equals v.
func One(v string) Selector { return AnyOf(v) }

// AnyOf selects rows whose category is one of vs. With no values it behaves
// like All.
func AnyOf(vs ...string) Selector {
	if len(vs) == 0 {
		return Selector{}
	}
	set := make(map[string]struct{}, len(vs))
	for _, v := range vs {
		set[v] = struct{}{}
	}
	return Selector{values: set}
}

// IsAll reports whether s selects every row.
func (s Selector) IsAll() bool { return len(s.values) == 0 }

// Match reports whether a category value is selected. Null never matches a
// non-empty selector.
func (s Selector) Match(v table.Value) bool {
	if s.IsAll() {
		return true
	}
	str, ok := v.Str()
	if !ok {
		return false
	}
	_, hit := s.values[str]
	return hit
}

// FilterByCategory returns the rows of d whose column value is selected by
// sel. The input is never modified; with All the result is a copy with the
// same contents.
func FilterByCategory(d table.Dataset, column string, sel Selector) table.Dataset {
	if sel.IsAll() {
		return d.Clone()
	}
	return d.Filter(func(r table.Row) bool { return sel.Match(r.Get(column)) })
}
