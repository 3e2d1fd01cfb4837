// Package similarity detects near-duplicate claims.  Unlike the department
// classifier it keeps no persistent artifacts: each query fits an ephemeral
// TF-IDF index over the current candidate set, so results always reflect the
// live corpus.
package similarity

import (
	"sort"

	"github.com/SolBenven/proyecto-final/internal/infrastructure/monitoring/logging"
	"github.com/SolBenven/proyecto-final/internal/intelligence/textproc"
	"github.com/SolBenven/proyecto-final/internal/intelligence/tfidf"
)

// Candidate is one existing claim offered for comparison.  Callers pass only
// claims still open for consolidation, typically those in the pending status.
type Candidate struct {
	ID   int64
	Text string
}

// Match pairs a candidate with its cosine similarity to the query text.
type Match struct {
	Candidate Candidate
	Score     float64
}

// Config carries the duplicate-detection tuning knobs.
type Config struct {
	// Threshold is the exclusive lower bound on cosine similarity; a
	// candidate must score strictly above it to be reported.
	Threshold float64

	// Limit caps the number of matches returned.
	Limit int

	// MaxFeatures caps the ephemeral vocabulary per query.
	MaxFeatures int
}

// Finder ranks candidates by textual similarity to a query.
type Finder interface {
	// FindSimilar returns candidates scoring strictly above the threshold,
	// best first, at most Limit of them.  The candidate whose ID equals
	// excludeID is skipped; pass 0 to exclude nothing.  Degenerate input
	// (no candidates, empty query, vocabulary-free corpus) yields an empty
	// result, never an error.
	FindSimilar(text string, candidates []Candidate, excludeID int64) []Match
}

type finder struct {
	cfg Config
	log logging.Logger
}

// NewFinder builds a duplicate-detection finder.
func NewFinder(cfg Config, log logging.Logger) Finder {
	return &finder{cfg: cfg, log: log.Named("similarity")}
}

func (f *finder) FindSimilar(text string, candidates []Candidate, excludeID int64) []Match {
	if text == "" || len(candidates) == 0 {
		return nil
	}

	eligible := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if excludeID != 0 && c.ID == excludeID {
			continue
		}
		eligible = append(eligible, c)
	}
	if len(eligible) == 0 {
		return nil
	}

	// Fit the ephemeral index over the query plus every eligible candidate
	// so that query-only terms still contribute to the vocabulary.
	docs := make([]string, 0, len(eligible)+1)
	docs = append(docs, text)
	for _, c := range eligible {
		docs = append(docs, c.Text)
	}

	vec, err := tfidf.Fit(docs, tfidf.Config{
		MaxFeatures: f.cfg.MaxFeatures,
		NgramMin:    1,
		NgramMax:    2,
		MinDocFreq:  1,
		Stopwords:   textproc.SpanishStopwords,
	})
	if err != nil {
		// Nothing tokenizable in the corpus: report no duplicates.
		f.log.Debug("similarity corpus produced no vocabulary", logging.Err(err))
		return nil
	}

	query := vec.Transform(text)
	if len(query) == 0 {
		return nil
	}

	matches := make([]Match, 0, len(eligible))
	for _, c := range eligible {
		score := tfidf.Cosine(query, vec.Transform(c.Text))
		if score > f.cfg.Threshold {
			matches = append(matches, Match{Candidate: c, Score: score})
		}
	}

	// Stable sort keeps candidate order deterministic on equal scores.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if f.cfg.Limit > 0 && len(matches) > f.cfg.Limit {
		matches = matches[:f.cfg.Limit]
	}
	return matches
}
