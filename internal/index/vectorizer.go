package index

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// maxVocabulary caps the fitted vocabulary size. The most frequent terms
// across the corpus are kept; ties break lexicographically so that fitting
// is deterministic.
const maxVocabulary = 5000

// SparseVector maps vocabulary indices to weights. Vectors produced by
// Transform are L2-normalized, so cosine similarity reduces to a dot product.
type SparseVector map[int]float64

// Vectorizer is a TF-IDF vector space fitted once over the full corpus.
// Transforming any later document (including profile pseudo-documents) must
// go through the same fitted instance; refitting breaks comparability.
type Vectorizer struct {
	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float64      `json:"idf"`
}

// FitVectorizer learns the vocabulary and IDF weights from the corpus.
// Terms are case-folded unigrams and bigrams with stop words removed.
func FitVectorizer(docs []string) *Vectorizer {
	totalCount := make(map[string]int)
	docFreq := make(map[string]int)

	for _, doc := range docs {
		terms := analyze(doc)
		seen := make(map[string]struct{}, len(terms))
		for _, term := range terms {
			totalCount[term]++
			seen[term] = struct{}{}
		}
		for term := range seen {
			docFreq[term]++
		}
	}

	selected := selectVocabulary(totalCount)

	v := &Vectorizer{
		Vocabulary: make(map[string]int, len(selected)),
		IDF:        make([]float64, len(selected)),
	}
	n := float64(len(docs))
	for i, term := range selected {
		v.Vocabulary[term] = i
		// Smoothed IDF; keeps weights finite for terms present in every doc.
		v.IDF[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}
	return v
}

// Transform maps a document into the fitted space and L2-normalizes it.
// Unknown terms are ignored; a document with no known terms yields an empty
// vector.
func (v *Vectorizer) Transform(doc string) SparseVector {
	vec := make(SparseVector)
	for _, term := range analyze(doc) {
		if i, ok := v.Vocabulary[term]; ok {
			vec[i] += v.IDF[i]
		}
	}

	var norm float64
	for _, w := range vec {
		norm += w * w
	}
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}

// Dot returns the inner product of two sparse vectors. For vectors out of
// Transform this is their cosine similarity.
func Dot(a, b SparseVector) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var sum float64
	for i, w := range a {
		sum += w * b[i]
	}
	return sum
}

// analyze tokenizes a document and emits unigrams plus adjacent-pair bigrams,
// so short multi-word phrases like "food bank" are first-class terms.
func analyze(doc string) []string {
	tokens := tokenize(doc)
	terms := make([]string, 0, len(tokens)*2)
	terms = append(terms, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		terms = append(terms, tokens[i]+" "+tokens[i+1])
	}
	return terms
}

func tokenize(doc string) []string {
	fields := strings.FieldsFunc(strings.ToLower(doc), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := fields[:0]
	for _, tok := range fields {
		if len(tok) < 2 {
			continue
		}
		if _, stop := stopWords[tok]; stop {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// selectVocabulary keeps the maxVocabulary most frequent terms, breaking
// frequency ties lexicographically, and returns them in lexicographic order
// so that index assignment is stable.
func selectVocabulary(totalCount map[string]int) []string {
	terms := make([]string, 0, len(totalCount))
	for term := range totalCount {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if totalCount[terms[i]] != totalCount[terms[j]] {
			return totalCount[terms[i]] > totalCount[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > maxVocabulary {
		terms = terms[:maxVocabulary]
	}
	sort.Strings(terms)
	return terms
}
