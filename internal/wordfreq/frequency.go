package wordfreq

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/KaramelBytes/wordloom/internal/table"
)

// DefaultMaxWords caps the ranking when nothing else is configured.
const DefaultMaxWords = 50

// ErrInvalidMaxWords is returned for a non-positive maxWords.
var ErrInvalidMaxWords = errors.New("maxWords must be a positive integer")

// Frequency is one ranked token.
type Frequency struct {
	Text  string `json:"text"`
	Count int    `json:"frequency"`
}

// ComputeFrequencies counts the tokens of field across d with the default
// Tokenizer and returns the top maxWords by descending count.
func ComputeFrequencies(d table.Dataset, field string, maxWords int) ([]Frequency, error) {
	return Tokenizer{}.ComputeFrequencies(d, field, maxWords)
}

// ComputeFrequencies counts tokens of field across d. Rows where the field is
// absent, null, non-string or blank are skipped. Ties keep first-seen order.
func (t Tokenizer) ComputeFrequencies(d table.Dataset, field string, maxWords int) ([]Frequency, error) {
	if maxWords <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidMaxWords, maxWords)
	}
	index := map[string]int{}
	var freqs []Frequency
	for i := 0; i < d.Len(); i++ {
		s, ok := d.Value(i, field).Str()
		if !ok || strings.TrimSpace(s) == "" {
			continue
		}
		for _, tok := range t.Tokenize(s) {
			if at, seen := index[tok]; seen {
				freqs[at].Count++
				continue
			}
			index[tok] = len(freqs)
			freqs = append(freqs, Frequency{Text: tok, Count: 1})
		}
	}
	sort.SliceStable(freqs, func(a, b int) bool { return freqs[a].Count > freqs[b].Count })
	if len(freqs) > maxWords {
		freqs = freqs[:maxWords]
	}
	if freqs == nil {
		freqs = []Frequency{}
	}
	return freqs, nil
}
