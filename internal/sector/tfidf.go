package sector

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/nedextract/internal/textutil"
)

// feature is one non-zero entry of a sparse document vector
type feature struct {
	Index int
	Value float64
}

// Vectorizer computes l2-normalized TF-IDF vectors with smoothed idf
type Vectorizer struct {
	Vocabulary map[string]int `msgpack:"vocabulary"`
	IDF        []float64      `msgpack:"idf"`
}

// Tokenize lowercases text and returns its words of two or more runes
func Tokenize(text string) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !textutil.IsWordRune(r)
	})
	out := words[:0]
	for _, w := range words {
		if utf8.RuneCountInString(w) >= 2 {
			out = append(out, w)
		}
	}
	return out
}

// Fit learns the vocabulary and idf weights of docs. Vocabulary indices
// follow the sorted term order.
func (v *Vectorizer) Fit(docs []string) {
	df := make(map[string]int)
	for _, d := range docs {
		seen := make(map[string]bool)
		for _, tok := range Tokenize(d) {
			if !seen[tok] {
				seen[tok] = true
				df[tok]++
			}
		}
	}

	terms := make([]string, 0, len(df))
	for t := range df {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	n := float64(len(docs))
	v.Vocabulary = make(map[string]int, len(terms))
	v.IDF = make([]float64, len(terms))
	for i, t := range terms {
		v.Vocabulary[t] = i
		v.IDF[i] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}
}

// Transform returns the sparse TF-IDF vector of doc, sorted by index.
// Unknown terms are ignored.
func (v *Vectorizer) Transform(doc string) []feature {
	counts := make(map[int]float64)
	for _, tok := range Tokenize(doc) {
		if i, ok := v.Vocabulary[tok]; ok {
			counts[i]++
		}
	}

	vec := make([]feature, 0, len(counts))
	var norm float64
	for i, c := range counts {
		w := c * v.IDF[i]
		vec = append(vec, feature{Index: i, Value: w})
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i].Value /= norm
		}
	}
	sort.Slice(vec, func(a, b int) bool { return vec[a].Index < vec[b].Index })
	return vec
}

// Size returns the vocabulary size
func (v *Vectorizer) Size() int {
	return len(v.IDF)
}
