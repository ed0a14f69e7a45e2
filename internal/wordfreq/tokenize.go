package wordfreq

import (
	"strings"
	"unicode"
)

// DefaultMinLen is the shortest token kept, in runes.
const DefaultMinLen = 3

// WordChar reports whether r belongs to a word: any letter, digit or '_'.
func WordChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// ASCIIWordChar is the narrower [A-Za-z0-9_] class.
func ASCIIWordChar(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// Tokenizer splits free text into lower-cased words. The zero value uses
// WordChar and DefaultMinLen.
type Tokenizer struct {
	WordChar func(rune) bool
	MinLen   int
}

// Tokenize lower-cases text, treats every rune outside the word class as a
// separator and drops tokens shorter than MinLen runes.
func (t Tokenizer) Tokenize(text string) []string {
	isWord := t.WordChar
	if isWord == nil {
		isWord = WordChar
	}
	minLen := t.MinLen
	if minLen <= 0 {
		minLen = DefaultMinLen
	}
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool { return !isWord(r) })
	out := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) >= minLen {
			out = append(out, f)
		}
	}
	return out
}

// Tokenize runs the default Tokenizer.
func Tokenize(text string) []string { return Tokenizer{}.Tokenize(text) }
