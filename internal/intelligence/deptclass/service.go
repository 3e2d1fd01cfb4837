package deptclass

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/SolBenven/proyecto-final/internal/infrastructure/monitoring/logging"
	"github.com/SolBenven/proyecto-final/internal/intelligence/tfidf"
	"github.com/SolBenven/proyecto-final/pkg/errors"
)

// LoadState tracks whether the model artifacts have been loaded.
type LoadState int

const (
	// StateUnloaded means no load has been attempted yet.
	StateUnloaded LoadState = iota
	// StateLoaded means the vectorizer and model are in memory and usable.
	StateLoaded
	// StateUnavailable means a load was attempted and failed; classification
	// is refused until artifacts are retrained or the store recovers.
	StateUnavailable
)

// ArtifactStore persists the two opaque model blobs at fixed keys.
type ArtifactStore interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Exists(ctx context.Context, key string) (bool, error)
}

// Config carries the classifier tuning knobs.
type Config struct {
	// ConfidenceThreshold is the posterior probability below which a
	// prediction is discarded in favor of FallbackLabel.
	ConfidenceThreshold float64

	// VectorizerKey and ModelKey are the fixed artifact store keys.
	VectorizerKey string
	ModelKey      string

	// MaxFeatures caps the vectorizer vocabulary at training time.
	MaxFeatures int

	// FallbackLabel is returned when the model is not confident enough.
	FallbackLabel string
}

// Service classifies claim text into a department label.  Artifacts are
// loaded lazily on first use; a failed load parks the service in the
// unavailable state until the next successful Train.
type Service interface {
	// Classify predicts the department label for text, substituting the
	// fallback label when confidence falls below the threshold.
	Classify(ctx context.Context, text string) (string, error)

	// Confidence returns the top-class posterior probability for text
	// without applying the fallback rule.  Blank text or an unavailable
	// model yield 0 without error.
	Confidence(ctx context.Context, text string) (float64, error)

	// Train fits fresh artifacts from parallel texts and labels, persists
	// them, and swaps them in.
	Train(ctx context.Context, texts, labels []string) error

	// ModelAvailable reports whether artifacts are loaded or loadable.
	ModelAvailable(ctx context.Context) bool
}

type service struct {
	cfg   Config
	store ArtifactStore
	log   logging.Logger

	mu    sync.Mutex
	state LoadState
	vec   *tfidf.Vectorizer
	model *naiveBayes
}

// NewService builds a classifier service in the unloaded state.
func NewService(cfg Config, store ArtifactStore, log logging.Logger) Service {
	return &service{
		cfg:   cfg,
		store: store,
		log:   log.Named("deptclass"),
		state: StateUnloaded,
	}
}

func (s *service) Classify(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", errors.New(errors.ErrCodeValidation, "classification text must not be empty")
	}
	pred, err := s.predict(ctx, text)
	if err != nil {
		return "", err
	}
	if pred.Confidence < s.cfg.ConfidenceThreshold {
		s.log.Debug("low confidence prediction, using fallback",
			logging.String("predicted", pred.Label),
			logging.Float64("confidence", pred.Confidence),
			logging.String("fallback", s.cfg.FallbackLabel))
		return s.cfg.FallbackLabel, nil
	}
	return pred.Label, nil
}

// Confidence is deliberately lenient where Classify is strict: blank text and
// a missing model both answer 0 instead of failing, so callers can report
// "no confidence" without branching on errors.
func (s *service) Confidence(ctx context.Context, text string) (float64, error) {
	if strings.TrimSpace(text) == "" {
		return 0, nil
	}
	pred, err := s.predict(ctx, text)
	if err != nil {
		if errors.IsCode(err, errors.ErrCodeModelUnavailable) {
			return 0, nil
		}
		return 0, err
	}
	return pred.Confidence, nil
}

func (s *service) predict(ctx context.Context, text string) (Prediction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(ctx); err != nil {
		return Prediction{}, err
	}
	return s.model.predict(s.vec.Transform(text)), nil
}

func (s *service) ModelAvailable(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureLoadedLocked(ctx) == nil
}

// ensureLoadedLocked performs the lazy artifact load.  The caller must hold
// s.mu.  Unavailable is sticky: once a load fails, subsequent calls fail fast
// without hitting the store again.
func (s *service) ensureLoadedLocked(ctx context.Context) error {
	switch s.state {
	case StateLoaded:
		return nil
	case StateUnavailable:
		return errors.New(errors.ErrCodeModelUnavailable, "classifier model is unavailable")
	}

	vec, model, err := s.loadArtifacts(ctx)
	if err != nil {
		s.state = StateUnavailable
		s.log.Warn("classifier artifact load failed, entering unavailable state", logging.Err(err))
		return err
	}

	s.vec = vec
	s.model = model
	s.state = StateLoaded
	s.log.Info("classifier artifacts loaded",
		logging.Int("vocabulary_size", vec.VocabularySize()),
		logging.Int("classes", len(model.classes)))
	return nil
}

func (s *service) loadArtifacts(ctx context.Context) (*tfidf.Vectorizer, *naiveBayes, error) {
	for _, key := range []string{s.cfg.VectorizerKey, s.cfg.ModelKey} {
		ok, err := s.store.Exists(ctx, key)
		if err != nil {
			return nil, nil, errors.Wrap(err, errors.ErrCodeModelUnavailable, "failed to check classifier artifact")
		}
		if !ok {
			return nil, nil, errors.Newf(errors.ErrCodeModelUnavailable, "classifier artifact %s not found, train the model first", key)
		}
	}

	vecBlob, err := s.store.Get(ctx, s.cfg.VectorizerKey)
	if err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrCodeModelUnavailable, "failed to fetch vectorizer artifact")
	}
	modelBlob, err := s.store.Get(ctx, s.cfg.ModelKey)
	if err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrCodeModelUnavailable, "failed to fetch classifier artifact")
	}

	vec := &tfidf.Vectorizer{}
	if err := json.Unmarshal(vecBlob, vec); err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrCodeArtifactCorrupt, "vectorizer artifact is corrupt")
	}
	model := &naiveBayes{}
	if err := json.Unmarshal(modelBlob, model); err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrCodeArtifactCorrupt, "classifier artifact is corrupt")
	}
	if model.featureCount != vec.VocabularySize() {
		return nil, nil, errors.New(errors.ErrCodeArtifactCorrupt, "vectorizer and classifier artifacts disagree on feature count")
	}
	return vec, model, nil
}

func (s *service) Train(ctx context.Context, texts, labels []string) error {
	if len(texts) == 0 || len(texts) != len(labels) {
		return errors.New(errors.ErrCodeTrainingInput, "training texts and labels must be parallel and non-empty")
	}

	vec, err := tfidf.Fit(texts, tfidf.Config{
		MaxFeatures: s.cfg.MaxFeatures,
		NgramMin:    1,
		NgramMax:    2,
		MinDocFreq:  1,
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeTrainingInput, "failed to fit vectorizer")
	}

	vectors := make([]tfidf.Vector, len(texts))
	for i, text := range texts {
		vectors[i] = vec.Transform(text)
	}
	model, err := fitNaiveBayes(vectors, labels, vec.VocabularySize())
	if err != nil {
		return err
	}

	vecBlob, err := json.Marshal(vec)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to serialize vectorizer")
	}
	modelBlob, err := json.Marshal(model)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to serialize classifier")
	}

	if err := s.store.Put(ctx, s.cfg.VectorizerKey, vecBlob); err != nil {
		return errors.Wrap(err, errors.ErrCodeStorageError, "failed to persist vectorizer artifact")
	}
	if err := s.store.Put(ctx, s.cfg.ModelKey, modelBlob); err != nil {
		return errors.Wrap(err, errors.ErrCodeStorageError, "failed to persist classifier artifact")
	}

	s.mu.Lock()
	s.vec = vec
	s.model = model
	s.state = StateLoaded
	s.mu.Unlock()

	s.log.Info("classifier trained",
		logging.Int("documents", len(texts)),
		logging.Int("vocabulary_size", vec.VocabularySize()),
		logging.Int("classes", len(model.classes)))
	return nil
}
