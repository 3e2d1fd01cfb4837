package deptclass

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SolBenven/proyecto-final/internal/intelligence/tfidf"
	"github.com/SolBenven/proyecto-final/internal/testutil"
	"github.com/SolBenven/proyecto-final/pkg/errors"
)

// memStore is an in-memory artifact store for tests.
type memStore struct {
	blobs   map[string][]byte
	getErr  error
	putErr  error
	existsE error
}

func newMemStore() *memStore {
	return &memStore{blobs: map[string][]byte{}}
}

func (m *memStore) Put(_ context.Context, key string, data []byte) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.blobs[key] = data
	return nil
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.blobs[key], nil
}

func (m *memStore) Exists(_ context.Context, key string) (bool, error) {
	if m.existsE != nil {
		return false, m.existsE
	}
	_, ok := m.blobs[key]
	return ok, nil
}

func testConfig() Config {
	return Config{
		ConfidenceThreshold: 0.4,
		VectorizerKey:       "models/vectorizer.json",
		ModelKey:            "models/classifier.json",
		MaxFeatures:         1000,
		FallbackLabel:       "secretaria_tecnica",
	}
}

// trainingCorpus is a small but separable corpus: maintenance claims talk
// about water and doors, systems claims about wifi and printers.
func trainingCorpus() ([]string, []string) {
	texts := []string{
		"canilla rota en el baño pierde agua",
		"puerta del aula trabada no abre",
		"el baño de planta baja sin agua",
		"ventana rota vidrio astillado peligro",
		"no anda el wifi en la biblioteca",
		"la impresora no imprime error de red",
		"wifi muy lento en el laboratorio",
		"no puedo acceder al sistema de notas",
	}
	labels := []string{
		"mantenimiento", "mantenimiento", "mantenimiento", "mantenimiento",
		"sistemas", "sistemas", "sistemas", "sistemas",
	}
	return texts, labels
}

func TestTrainThenClassify(t *testing.T) {
	svc := NewService(testConfig(), newMemStore(), testutil.NewMockLogger())
	texts, labels := trainingCorpus()
	require.NoError(t, svc.Train(context.Background(), texts, labels))

	label, err := svc.Classify(context.Background(), "canilla del baño pierde agua otra vez")
	require.NoError(t, err)
	assert.Equal(t, "mantenimiento", label)

	label, err = svc.Classify(context.Background(), "el wifi de la biblioteca no anda")
	require.NoError(t, err)
	assert.Equal(t, "sistemas", label)
}

func TestClassifyLoadsPersistedArtifacts(t *testing.T) {
	store := newMemStore()
	trainer := NewService(testConfig(), store, testutil.NewMockLogger())
	texts, labels := trainingCorpus()
	require.NoError(t, trainer.Train(context.Background(), texts, labels))

	// A fresh service instance must lazily load the persisted blobs.
	svc := NewService(testConfig(), store, testutil.NewMockLogger())
	label, err := svc.Classify(context.Background(), "puerta trabada en el aula 12")
	require.NoError(t, err)
	assert.Equal(t, "mantenimiento", label)
}

func TestClassifyFallbackOnLowConfidence(t *testing.T) {
	cfg := testConfig()
	cfg.ConfidenceThreshold = 0.99
	svc := NewService(cfg, newMemStore(), testutil.NewMockLogger())
	texts, labels := trainingCorpus()
	require.NoError(t, svc.Train(context.Background(), texts, labels))

	// Text sharing terms with both classes cannot reach 0.99 confidence.
	label, err := svc.Classify(context.Background(), "aula con la puerta rota y el wifi lento")
	require.NoError(t, err)
	assert.Equal(t, "secretaria_tecnica", label)
}

func TestConfidenceSkipsFallbackRule(t *testing.T) {
	cfg := testConfig()
	cfg.ConfidenceThreshold = 0.99
	svc := NewService(cfg, newMemStore(), testutil.NewMockLogger())
	texts, labels := trainingCorpus()
	require.NoError(t, svc.Train(context.Background(), texts, labels))

	conf, err := svc.Confidence(context.Background(), "canilla rota pierde agua")
	require.NoError(t, err)
	assert.Greater(t, conf, 0.0)
	assert.LessOrEqual(t, conf, 1.0)
}

func TestClassifyBlankText(t *testing.T) {
	svc := NewService(testConfig(), newMemStore(), testutil.NewMockLogger())

	for _, text := range []string{"", "   ", "\t\n"} {
		_, err := svc.Classify(context.Background(), text)
		assert.True(t, errors.IsCode(err, errors.ErrCodeValidation))
	}
}

func TestConfidenceLenientWhereClassifyIsStrict(t *testing.T) {
	// Blank text and a missing model answer zero confidence without error,
	// unlike Classify which refuses both.
	svc := NewService(testConfig(), newMemStore(), testutil.NewMockLogger())

	conf, err := svc.Confidence(context.Background(), "   ")
	require.NoError(t, err)
	assert.Zero(t, conf)

	conf, err = svc.Confidence(context.Background(), "no anda el wifi")
	require.NoError(t, err)
	assert.Zero(t, conf)
}

func TestClassifyWithoutArtifactsIsUnavailable(t *testing.T) {
	svc := NewService(testConfig(), newMemStore(), testutil.NewMockLogger())

	_, err := svc.Classify(context.Background(), "no anda nada")
	assert.True(t, errors.IsCode(err, errors.ErrCodeModelUnavailable))
	assert.False(t, svc.ModelAvailable(context.Background()))
}

func TestUnavailableStateIsSticky(t *testing.T) {
	store := newMemStore()
	svc := NewService(testConfig(), store, testutil.NewMockLogger())

	_, err := svc.Classify(context.Background(), "sin luz en el pasillo")
	require.True(t, errors.IsCode(err, errors.ErrCodeModelUnavailable))

	// Artifacts appearing later do not revive the service by themselves.
	other := NewService(testConfig(), store, testutil.NewMockLogger())
	texts, labels := trainingCorpus()
	require.NoError(t, other.Train(context.Background(), texts, labels))

	_, err = svc.Classify(context.Background(), "sin luz en el pasillo")
	assert.True(t, errors.IsCode(err, errors.ErrCodeModelUnavailable))
}

func TestTrainRecoversUnavailableService(t *testing.T) {
	svc := NewService(testConfig(), newMemStore(), testutil.NewMockLogger())

	_, err := svc.Classify(context.Background(), "sin luz")
	require.True(t, errors.IsCode(err, errors.ErrCodeModelUnavailable))

	texts, labels := trainingCorpus()
	require.NoError(t, svc.Train(context.Background(), texts, labels))

	label, err := svc.Classify(context.Background(), "canilla pierde agua en el baño")
	require.NoError(t, err)
	assert.Equal(t, "mantenimiento", label)
	assert.True(t, svc.ModelAvailable(context.Background()))
}

func TestCorruptArtifactDetected(t *testing.T) {
	store := newMemStore()
	trainer := NewService(testConfig(), store, testutil.NewMockLogger())
	texts, labels := trainingCorpus()
	require.NoError(t, trainer.Train(context.Background(), texts, labels))

	store.blobs["models/classifier.json"] = []byte("{garbage")

	svc := NewService(testConfig(), store, testutil.NewMockLogger())
	_, err := svc.Classify(context.Background(), "algo roto")
	assert.True(t, errors.IsCode(err, errors.ErrCodeArtifactCorrupt))
}

func TestTrainRejectsMismatchedInput(t *testing.T) {
	svc := NewService(testConfig(), newMemStore(), testutil.NewMockLogger())

	err := svc.Train(context.Background(), []string{"uno"}, []string{"a", "b"})
	assert.True(t, errors.IsCode(err, errors.ErrCodeTrainingInput))

	err = svc.Train(context.Background(), nil, nil)
	assert.True(t, errors.IsCode(err, errors.ErrCodeTrainingInput))
}

func TestPredictionTieBreaksDeterministically(t *testing.T) {
	vectors, labels, n := symmetricTrainingSet()
	model, err := fitNaiveBayes(vectors, labels, n)
	require.NoError(t, err)

	// A vector equidistant from both classes resolves to the first label
	// in sorted order.
	pred := model.predict(nil)
	assert.Equal(t, "alpha", pred.Label)
}

func symmetricTrainingSet() ([]tfidf.Vector, []string, int) {
	return []tfidf.Vector{
			{0: 1},
			{1: 1},
		}, []string{"beta", "alpha"}, 2
}
