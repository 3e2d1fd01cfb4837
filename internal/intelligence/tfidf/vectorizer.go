// Package tfidf implements the term-frequency/inverse-document-frequency
// vectorizer shared by the department classifier and the duplicate detector.
//
// The corpus this platform was built from carries no machine-learning
// dependency, so the vectorizer is implemented here directly.  Semantics
// follow the conventional formulation: smoothed IDF, L2-normalized rows,
// word n-grams over tokens of two or more characters.
package tfidf

import (
	"encoding/json"
	"math"
	"sort"
	"strings"

	"github.com/SolBenven/proyecto-final/internal/intelligence/textproc"
	"github.com/SolBenven/proyecto-final/pkg/errors"
)

// Config controls vocabulary construction.
type Config struct {
	// MaxFeatures caps the vocabulary size; the most frequent terms across
	// the fitted corpus are kept.  Zero means unlimited.
	MaxFeatures int

	// NgramMin and NgramMax bound the word n-gram range, inclusive.
	NgramMin int
	NgramMax int

	// MinDocFreq drops terms appearing in fewer than this many documents.
	MinDocFreq int

	// Stopwords are removed after normalization and before n-gram
	// generation.  Nil means no stopword filtering.
	Stopwords map[string]struct{}
}

// Vector is a sparse document vector keyed by vocabulary index.
type Vector map[int]float64

// Vectorizer converts raw text into L2-normalized TF-IDF vectors.  A
// Vectorizer is immutable after Fit and safe for concurrent Transform calls.
type Vectorizer struct {
	cfg        Config
	vocabulary map[string]int
	idf        []float64
}

// state is the serializable snapshot of a fitted Vectorizer.  Stopwords are
// applied at fit time only and are not part of the artifact.
type state struct {
	MaxFeatures int            `json:"max_features"`
	NgramMin    int            `json:"ngram_min"`
	NgramMax    int            `json:"ngram_max"`
	MinDocFreq  int            `json:"min_doc_freq"`
	Vocabulary  map[string]int `json:"vocabulary"`
	IDF         []float64      `json:"idf"`
}

// extractTerms tokenizes doc and produces its n-gram terms.  Single-character
// tokens are discarded before n-gram generation so that punctuation debris and
// one-letter words never enter the vocabulary.
func extractTerms(doc string, cfg Config) []string {
	raw := textproc.Tokenize(doc)
	tokens := make([]string, 0, len(raw))
	for _, tok := range raw {
		if len(tok) < 2 {
			continue
		}
		if cfg.Stopwords != nil {
			if _, stop := cfg.Stopwords[tok]; stop {
				continue
			}
		}
		tokens = append(tokens, tok)
	}

	var terms []string
	for n := cfg.NgramMin; n <= cfg.NgramMax; n++ {
		if n < 1 {
			continue
		}
		for i := 0; i+n <= len(tokens); i++ {
			terms = append(terms, strings.Join(tokens[i:i+n], " "))
		}
	}
	return terms
}

// Fit builds the vocabulary and IDF table from docs and returns a ready
// Vectorizer.  It fails when the corpus yields an empty vocabulary, which
// callers treat as "nothing to compare against" rather than a crash.
func Fit(docs []string, cfg Config) (*Vectorizer, error) {
	if cfg.NgramMin == 0 {
		cfg.NgramMin = 1
	}
	if cfg.NgramMax == 0 {
		cfg.NgramMax = 1
	}
	if cfg.MinDocFreq == 0 {
		cfg.MinDocFreq = 1
	}

	termCounts := make(map[string]int) // total occurrences, for max_features ranking
	docFreq := make(map[string]int)

	for _, doc := range docs {
		terms := extractTerms(doc, cfg)
		seen := make(map[string]struct{}, len(terms))
		for _, term := range terms {
			termCounts[term]++
			if _, ok := seen[term]; !ok {
				seen[term] = struct{}{}
				docFreq[term]++
			}
		}
	}

	candidates := make([]string, 0, len(termCounts))
	for term, df := range docFreq {
		if df >= cfg.MinDocFreq {
			candidates = append(candidates, term)
		}
	}
	if len(candidates) == 0 {
		return nil, errors.New(errors.ErrCodeValidation, "empty vocabulary: documents contain no usable terms")
	}

	// Rank by corpus frequency descending, ties alphabetically, so that the
	// max_features cut is deterministic.
	sort.Slice(candidates, func(i, j int) bool {
		ci, cj := termCounts[candidates[i]], termCounts[candidates[j]]
		if ci != cj {
			return ci > cj
		}
		return candidates[i] < candidates[j]
	})
	if cfg.MaxFeatures > 0 && len(candidates) > cfg.MaxFeatures {
		candidates = candidates[:cfg.MaxFeatures]
	}

	// Vocabulary indices are assigned alphabetically for stable artifacts.
	sort.Strings(candidates)
	vocabulary := make(map[string]int, len(candidates))
	for i, term := range candidates {
		vocabulary[term] = i
	}

	n := float64(len(docs))
	idf := make([]float64, len(candidates))
	for term, idx := range vocabulary {
		df := float64(docFreq[term])
		idf[idx] = math.Log((1+n)/(1+df)) + 1
	}

	return &Vectorizer{cfg: cfg, vocabulary: vocabulary, idf: idf}, nil
}

// Transform converts doc into an L2-normalized TF-IDF vector.  Terms outside
// the fitted vocabulary are ignored; a document sharing no terms with the
// vocabulary yields an empty vector.
func (v *Vectorizer) Transform(doc string) Vector {
	counts := make(map[int]float64)
	for _, term := range extractTerms(doc, v.cfg) {
		if idx, ok := v.vocabulary[term]; ok {
			counts[idx]++
		}
	}

	vec := make(Vector, len(counts))
	var sumSquares float64
	for idx, tf := range counts {
		w := tf * v.idf[idx]
		vec[idx] = w
		sumSquares += w * w
	}
	if sumSquares > 0 {
		norm := math.Sqrt(sumSquares)
		for idx := range vec {
			vec[idx] /= norm
		}
	}
	return vec
}

// VocabularySize returns the number of fitted terms.
func (v *Vectorizer) VocabularySize() int {
	return len(v.vocabulary)
}

// MarshalJSON serializes the fitted vectorizer as an opaque artifact blob.
func (v *Vectorizer) MarshalJSON() ([]byte, error) {
	return json.Marshal(state{
		MaxFeatures: v.cfg.MaxFeatures,
		NgramMin:    v.cfg.NgramMin,
		NgramMax:    v.cfg.NgramMax,
		MinDocFreq:  v.cfg.MinDocFreq,
		Vocabulary:  v.vocabulary,
		IDF:         v.idf,
	})
}

// UnmarshalJSON restores a fitted vectorizer from an artifact blob.  A blob
// whose vocabulary and IDF table disagree in size is rejected as corrupt.
func (v *Vectorizer) UnmarshalJSON(data []byte) error {
	var st state
	if err := json.Unmarshal(data, &st); err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "invalid vectorizer artifact")
	}
	if len(st.Vocabulary) != len(st.IDF) {
		return errors.New(errors.ErrCodeSerialization, "vectorizer artifact vocabulary and idf size mismatch")
	}
	v.cfg = Config{
		MaxFeatures: st.MaxFeatures,
		NgramMin:    st.NgramMin,
		NgramMax:    st.NgramMax,
		MinDocFreq:  st.MinDocFreq,
	}
	v.vocabulary = st.Vocabulary
	v.idf = st.IDF
	return nil
}

// Cosine computes the cosine similarity of two L2-normalized vectors, which
// reduces to their dot product.  The result is clamped to [0, 1]: summation
// over identical vectors can accumulate past 1 in floating point.
func Cosine(a, b Vector) float64 {
	// Iterate over the smaller map.
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for idx, av := range a {
		if bv, ok := b[idx]; ok {
			dot += av * bv
		}
	}
	return math.Min(math.Max(dot, 0), 1)
}
