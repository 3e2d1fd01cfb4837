// Package deptclass implements the department classifier: a TF-IDF
// vectorizer paired with a multinomial naive Bayes model, trained on
// historical claim text labeled with the department that resolved it.
package deptclass

import (
	"encoding/json"
	"math"
	"sort"

	"github.com/SolBenven/proyecto-final/internal/intelligence/tfidf"
	"github.com/SolBenven/proyecto-final/pkg/errors"
)

// smoothing is the additive (Laplace) smoothing constant.
const smoothing = 1.0

// Prediction is the outcome of scoring one document.
type Prediction struct {
	// Label is the highest-probability class.
	Label string

	// Confidence is the posterior probability of Label, in (0, 1].
	Confidence float64
}

// naiveBayes is a multinomial naive Bayes model over TF-IDF features.
// Immutable after fitting and safe for concurrent prediction.
type naiveBayes struct {
	classes       []string    // sorted class labels
	classLogPrior []float64   // per class
	featureLogPob [][]float64 // per class, per vocabulary index
	featureCount  int
}

type nbState struct {
	Classes       []string    `json:"classes"`
	ClassLogPrior []float64   `json:"class_log_prior"`
	FeatureLogPob [][]float64 `json:"feature_log_prob"`
	FeatureCount  int         `json:"feature_count"`
}

// fitNaiveBayes trains a model from vectorized documents and their labels.
// vectors and labels must be parallel and non-empty.
func fitNaiveBayes(vectors []tfidf.Vector, labels []string, featureCount int) (*naiveBayes, error) {
	if len(vectors) == 0 || len(vectors) != len(labels) {
		return nil, errors.New(errors.ErrCodeTrainingInput, "training vectors and labels must be parallel and non-empty")
	}

	classSet := make(map[string]struct{})
	for _, l := range labels {
		classSet[l] = struct{}{}
	}
	classes := make([]string, 0, len(classSet))
	for l := range classSet {
		classes = append(classes, l)
	}
	sort.Strings(classes)
	classIndex := make(map[string]int, len(classes))
	for i, l := range classes {
		classIndex[l] = i
	}

	docCounts := make([]float64, len(classes))
	featureSums := make([][]float64, len(classes))
	totalSums := make([]float64, len(classes))
	for i := range featureSums {
		featureSums[i] = make([]float64, featureCount)
	}

	for i, vec := range vectors {
		c := classIndex[labels[i]]
		docCounts[c]++
		for idx, w := range vec {
			featureSums[c][idx] += w
			totalSums[c] += w
		}
	}

	n := float64(len(vectors))
	classLogPrior := make([]float64, len(classes))
	featureLogPob := make([][]float64, len(classes))
	for c := range classes {
		classLogPrior[c] = math.Log(docCounts[c] / n)
		denom := totalSums[c] + smoothing*float64(featureCount)
		row := make([]float64, featureCount)
		for idx := 0; idx < featureCount; idx++ {
			row[idx] = math.Log((featureSums[c][idx] + smoothing) / denom)
		}
		featureLogPob[c] = row
	}

	return &naiveBayes{
		classes:       classes,
		classLogPrior: classLogPrior,
		featureLogPob: featureLogPob,
		featureCount:  featureCount,
	}, nil
}

// predict scores vec against every class and returns the winner with its
// posterior probability.  Ties break toward the alphabetically first class.
func (m *naiveBayes) predict(vec tfidf.Vector) Prediction {
	scores := make([]float64, len(m.classes))
	for c := range m.classes {
		score := m.classLogPrior[c]
		row := m.featureLogPob[c]
		for idx, w := range vec {
			if idx < len(row) {
				score += w * row[idx]
			}
		}
		scores[c] = score
	}

	best := 0
	for c := 1; c < len(scores); c++ {
		if scores[c] > scores[best] {
			best = c
		}
	}

	// Log-sum-exp for a numerically stable posterior.
	max := scores[best]
	var sum float64
	for _, s := range scores {
		sum += math.Exp(s - max)
	}

	return Prediction{
		Label:      m.classes[best],
		Confidence: 1 / sum,
	}
}

func (m *naiveBayes) MarshalJSON() ([]byte, error) {
	return json.Marshal(nbState{
		Classes:       m.classes,
		ClassLogPrior: m.classLogPrior,
		FeatureLogPob: m.featureLogPob,
		FeatureCount:  m.featureCount,
	})
}

func (m *naiveBayes) UnmarshalJSON(data []byte) error {
	var st nbState
	if err := json.Unmarshal(data, &st); err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "invalid classifier artifact")
	}
	if len(st.Classes) == 0 ||
		len(st.Classes) != len(st.ClassLogPrior) ||
		len(st.Classes) != len(st.FeatureLogPob) {
		return errors.New(errors.ErrCodeSerialization, "classifier artifact class tables disagree in size")
	}
	for _, row := range st.FeatureLogPob {
		if len(row) != st.FeatureCount {
			return errors.New(errors.ErrCodeSerialization, "classifier artifact feature table has wrong width")
		}
	}
	m.classes = st.Classes
	m.classLogPrior = st.ClassLogPrior
	m.featureLogPob = st.FeatureLogPob
	m.featureCount = st.FeatureCount
	return nil
}
