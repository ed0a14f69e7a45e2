package cleaner

import (
	"context"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/KaramelBytes/wordloom/internal/table"
)

const combiningTilde = '\u0303'

// StripDiacritics removes accents from string cells while keeping ñ/Ñ, then
// collapses whitespace. Cells left blank become Null.
func (c *Cleaner) StripDiacritics(columns []string) Step {
	return Step{
		Kind:    KindStripDiacritics,
		Columns: columns,
		apply: func(_ context.Context, d table.Dataset, _ *Report) (table.Dataset, error) {
			return eachColumn(d, columns, func(_ string, _ int, v table.Value) (table.Value, error) {
				s, ok := v.Str()
				if !ok {
					return v, nil
				}
				return c.text(RemoveDiacritics(s)), nil
			})
		},
	}
}

// RemoveDiacritics decomposes s, drops combining marks except a tilde sitting
// directly on n or N, recomposes and collapses whitespace.
func RemoveDiacritics(s string) string {
	decomposed := []rune(norm.NFD.String(s))
	var b strings.Builder
	b.Grow(len(s))
	for i, r := range decomposed {
		if !unicode.Is(unicode.Mn, r) {
			b.WriteRune(r)
			continue
		}
		if r == combiningTilde && i > 0 && (decomposed[i-1] == 'n' || decomposed[i-1] == 'N') {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(norm.NFC.String(b.String())), " ")
}

// RemoveEmojis drops emoji and pictographic runes from string cells and
// trims the result. Cells left blank become Null.
func (c *Cleaner) RemoveEmojis(columns []string) Step {
	return Step{
		Kind:    KindRemoveEmojis,
		Columns: columns,
		apply: func(_ context.Context, d table.Dataset, _ *Report) (table.Dataset, error) {
			return eachColumn(d, columns, func(_ string, _ int, v table.Value) (table.Value, error) {
				s, ok := v.Str()
				if !ok {
					return v, nil
				}
				return c.text(StripEmojis(s)), nil
			})
		},
	}
}

// StripEmojis removes emoji code points, joiners and variation selectors.
func StripEmojis(s string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if isEmoji(r) {
			return -1
		}
		return r
	}, s))
}

func isEmoji(r rune) bool {
	switch {
	case r >= 0x1F000 && r <= 0x1FAFF: // pictographs, emoticons, transport, flags
		return true
	case r >= 0x2600 && r <= 0x27BF: // misc symbols, dingbats
		return true
	case r >= 0x2B00 && r <= 0x2BFF:
		return true
	case r >= 0xE0020 && r <= 0xE007F: // tag sequences
		return true
	case r == 0x200D, r == 0xFE0F, r == 0xFE0E, r == 0x20E3:
		return true
	}
	return false
}
