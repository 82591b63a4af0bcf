package cluster

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"
)

// VectorizerOptions control vocabulary construction. The zero value keeps
// every term.
type VectorizerOptions struct {
	Bigrams bool    // include adjacent word pairs alongside unigrams
	MinDF   int     // drop terms seen in fewer than MinDF documents (0/1 = keep all)
	MaxDF   float64 // drop terms seen in more than MaxDF fraction of documents (0 or 1 = keep all)
}

// Vectorizer is a fit-then-transform TF-IDF encoder. Fit determines the
// vocabulary from this run's corpus only; nothing persists across runs. The
// vocabulary is sorted so vector layout is deterministic.
type Vectorizer struct {
	opts  VectorizerOptions
	vocab map[string]int // term -> column
	idf   []float64
	fit   bool
}

func NewVectorizer(opts VectorizerOptions) *Vectorizer {
	return &Vectorizer{opts: opts}
}

// Fit builds the vocabulary and idf weights over the whole corpus. Calling
// Fit on an empty corpus is a caller bug; the pipeline guards it.
func (v *Vectorizer) Fit(corpus []string) error {
	if len(corpus) == 0 {
		return fmt.Errorf("tfidf: fit on empty corpus")
	}
	n := len(corpus)
	df := map[string]int{}
	for _, doc := range corpus {
		seen := map[string]struct{}{}
		for _, t := range v.terms(doc) {
			seen[t] = struct{}{}
		}
		for t := range seen {
			df[t]++
		}
	}

	pruned := v.prune(df, n)
	if len(pruned) == 0 {
		// frequency pruning emptied the vocabulary on a small corpus; fall
		// back to keeping every term rather than failing
		pruned = df
	}

	terms := make([]string, 0, len(pruned))
	for t := range pruned {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	v.vocab = make(map[string]int, len(terms))
	v.idf = make([]float64, len(terms))
	for i, t := range terms {
		v.vocab[t] = i
		// smoothed idf, never zero
		v.idf[i] = math.Log(float64(1+n)/float64(1+pruned[t])) + 1
	}
	v.fit = true
	return nil
}

func (v *Vectorizer) prune(df map[string]int, n int) map[string]int {
	minDF := v.opts.MinDF
	maxDF := v.opts.MaxDF
	if minDF <= 1 && (maxDF <= 0 || maxDF >= 1) {
		return df
	}
	out := map[string]int{}
	for t, c := range df {
		if minDF > 1 && c < minDF {
			continue
		}
		if maxDF > 0 && maxDF < 1 && float64(c) > maxDF*float64(n) {
			continue
		}
		out[t] = c
	}
	return out
}

// Transform encodes documents against the fitted vocabulary, L2-normalized.
func (v *Vectorizer) Transform(docs []string) ([][]float64, error) {
	if !v.fit {
		return nil, fmt.Errorf("tfidf: transform before fit")
	}
	out := make([][]float64, len(docs))
	for i, doc := range docs {
		row := make([]float64, len(v.idf))
		for _, t := range v.terms(doc) {
			if col, ok := v.vocab[t]; ok {
				row[col] += v.idf[col]
			}
		}
		l2normalize(row)
		out[i] = row
	}
	return out, nil
}

// VocabSize returns the fitted vocabulary size.
func (v *Vectorizer) VocabSize() int { return len(v.idf) }

func (v *Vectorizer) terms(doc string) []string {
	words := tokenize(doc)
	if !v.opts.Bigrams {
		return words
	}
	out := make([]string, 0, len(words)*2)
	out = append(out, words...)
	for i := 0; i+1 < len(words); i++ {
		out = append(out, words[i]+" "+words[i+1])
	}
	return out
}

func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

func l2normalize(row []float64) {
	var sum float64
	for _, x := range row {
		sum += x * x
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range row {
		row[i] /= norm
	}
}
