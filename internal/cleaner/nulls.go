package cleaner

import (
	"context"
	"math"
	"strings"
	"unicode"

	"github.com/KaramelBytes/wordloom/internal/table"
)

// NormalizeNulls replaces every missing or sentinel cell, in every column,
// with an explicit Null.
func (c *Cleaner) NormalizeNulls() Step {
	return Step{
		Kind: KindNormalizeNulls,
		apply: func(_ context.Context, d table.Dataset, _ *Report) (table.Dataset, error) {
			cols := d.Columns()
			return d.Map(func(_ int, r table.Row) (table.Row, error) {
				for _, col := range cols {
					r[col] = c.normalize(r.Get(col))
				}
				return r, nil
			})
		},
	}
}

// IsMissing reports whether v is Null or one of the configured sentinels.
func (c *Cleaner) IsMissing(v table.Value) bool {
	switch v.Kind() {
	case table.KindNull:
		return true
	case table.KindString:
		s, _ := v.Str()
		_, ok := c.missing[strings.TrimSpace(s)]
		return ok
	case table.KindNumber:
		f, _ := v.Num()
		return math.IsNaN(f)
	}
	return false
}

func (c *Cleaner) normalize(v table.Value) table.Value {
	if c.IsMissing(v) {
		return table.Null()
	}
	return v
}

// text wraps a rewritten string cell. A rewrite that leaves a sentinel
// behind, such as an emoji-only post stripped to "", yields Null.
func (c *Cleaner) text(s string) table.Value {
	return c.normalize(table.String(s))
}

// ClearSentinelText nulls string cells that spell one of words once
// whitespace is removed and case is folded, e.g. "None", " n o n e ".
// With no words it clears "none".
func (c *Cleaner) ClearSentinelText(column string, words ...string) Step {
	if len(words) == 0 {
		words = []string{"none"}
	}
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[squash(w)] = struct{}{}
	}
	return Step{
		Kind:    KindClearSentinel,
		Columns: []string{column},
		apply: func(_ context.Context, d table.Dataset, _ *Report) (table.Dataset, error) {
			return d.MapColumn(column, func(_ int, v table.Value) (table.Value, error) {
				s, ok := v.Str()
				if !ok {
					return v, nil
				}
				if _, hit := set[squash(s)]; hit {
					return table.Null(), nil
				}
				return v, nil
			})
		},
	}
}

func squash(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, s)
}
