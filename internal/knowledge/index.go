package knowledge

import (
	"math"
	"strings"
	"unicode"
)

// maxFeatures caps the vocabulary size. Terms are ranked by corpus
// frequency and the tail is dropped, keeping the index small no matter
// how large the knowledge base grows.
const maxFeatures = 1000

// englishStopwords are filtered out during tokenization. A compact subset of
// the usual English list; enough to keep glue words from dominating the
// similarity scores on short questions.
var englishStopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"but": {}, "by": {}, "do": {}, "does": {}, "for": {}, "from": {},
	"has": {}, "have": {}, "if": {}, "in": {}, "into": {}, "is": {}, "it": {},
	"its": {}, "no": {}, "not": {}, "of": {}, "on": {}, "or": {}, "such": {},
	"that": {}, "the": {}, "their": {}, "then": {}, "there": {}, "these": {},
	"they": {}, "this": {}, "to": {}, "was": {}, "were": {}, "will": {},
	"with": {},
}

// vector is a sparse TF-IDF vector, L2-normalized at construction so cosine
// similarity reduces to a dot product.
type vector map[string]float64

// index holds TF-IDF vectors for the question and answer columns, fitted on
// the combined question+answer text of every pair.
type index struct {
	idf       map[string]float64
	questions []vector
	answers   []vector
}

// tokenize lowercases, splits on non-alphanumeric runes, removes stopwords,
// and emits unigrams plus bigrams of the surviving terms.
func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	words := fields[:0]
	for _, w := range fields {
		if _, stop := englishStopwords[w]; !stop {
			words = append(words, w)
		}
	}

	terms := make([]string, 0, 2*len(words))
	terms = append(terms, words...)
	for i := 0; i+1 < len(words); i++ {
		terms = append(terms, words[i]+" "+words[i+1])
	}
	return terms
}

// buildIndex fits TF-IDF on the combined texts and vectorizes the question
// and answer columns separately. Returns nil for an empty knowledge base.
func buildIndex(pairs []Pair) *index {
	if len(pairs) == 0 {
		return nil
	}

	combined := make([][]string, len(pairs))
	total := make(map[string]int)
	df := make(map[string]int)
	for i, p := range pairs {
		terms := tokenize(p.Question + " " + p.Answer)
		combined[i] = terms

		seen := make(map[string]struct{}, len(terms))
		for _, t := range terms {
			total[t]++
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				df[t]++
			}
		}
	}

	vocab := limitVocabulary(total)

	// Smoothed inverse document frequency: ln((1+n)/(1+df)) + 1.
	n := float64(len(pairs))
	idf := make(map[string]float64, len(vocab))
	for t := range vocab {
		idf[t] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}

	idx := &index{
		idf:       idf,
		questions: make([]vector, len(pairs)),
		answers:   make([]vector, len(pairs)),
	}
	for i, p := range pairs {
		idx.questions[i] = idx.vectorize(tokenize(p.Question))
		idx.answers[i] = idx.vectorize(tokenize(p.Answer))
	}
	return idx
}

// limitVocabulary keeps the maxFeatures most frequent terms.
func limitVocabulary(total map[string]int) map[string]struct{} {
	vocab := make(map[string]struct{}, len(total))
	if len(total) <= maxFeatures {
		for t := range total {
			vocab[t] = struct{}{}
		}
		return vocab
	}

	// Find the count cutoff for the top maxFeatures terms.
	counts := make([]int, 0, len(total))
	for _, c := range total {
		counts = append(counts, c)
	}
	cutoff := nthLargest(counts, maxFeatures)

	for t, c := range total {
		if c >= cutoff && len(vocab) < maxFeatures {
			vocab[t] = struct{}{}
		}
	}
	return vocab
}

// nthLargest returns the nth largest value in counts (1-based).
func nthLargest(counts []int, n int) int {
	// Counting by value is fine here: term counts are small integers.
	maxCount := 0
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}
	seen := 0
	for v := maxCount; v >= 0; v-- {
		for _, c := range counts {
			if c == v {
				seen++
				if seen >= n {
					return v
				}
			}
		}
	}
	return 0
}

// vectorize builds an L2-normalized TF-IDF vector from tokens.
// Tokens outside the fitted vocabulary contribute nothing.
func (idx *index) vectorize(terms []string) vector {
	tf := make(map[string]float64)
	for _, t := range terms {
		if _, ok := idx.idf[t]; ok {
			tf[t]++
		}
	}
	if len(tf) == 0 {
		return nil
	}

	v := make(vector, len(tf))
	var norm float64
	for t, f := range tf {
		w := f * idx.idf[t]
		v[t] = w
		norm += w * w
	}
	norm = math.Sqrt(norm)
	for t := range v {
		v[t] /= norm
	}
	return v
}

// dot computes the cosine similarity of two normalized sparse vectors.
func dot(a, b vector) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var sum float64
	for t, w := range a {
		sum += w * b[t]
	}
	return sum
}

// bestQuestion returns the index and score of the question most similar to
// the query. The first maximum wins on ties.
func (idx *index) bestQuestion(query string) (int, float64) {
	return best(idx.vectorize(tokenize(query)), idx.questions)
}

// bestAnswer returns the index and score of the answer most similar to the query.
func (idx *index) bestAnswer(query string) (int, float64) {
	return best(idx.vectorize(tokenize(query)), idx.answers)
}

func best(q vector, docs []vector) (int, float64) {
	bestIdx, bestScore := 0, 0.0
	if q == nil {
		return bestIdx, bestScore
	}
	for i, d := range docs {
		if score := dot(q, d); score > bestScore {
			bestIdx, bestScore = i, score
		}
	}
	return bestIdx, bestScore
}
