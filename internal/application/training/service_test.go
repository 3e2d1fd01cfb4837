package training

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SolBenven/proyecto-final/internal/domain/department"
	"github.com/SolBenven/proyecto-final/internal/testutil"
	"github.com/SolBenven/proyecto-final/internal/testutil/mocks"
	"github.com/SolBenven/proyecto-final/pkg/errors"
)

func catalog(names ...string) []*department.Department {
	depts := make([]*department.Department, 0, len(names))
	for i, name := range names {
		depts = append(depts, &department.Department{ID: int64(i + 1), Name: name})
	}
	return depts
}

func newTestService() (*mocks.Classifier, *mocks.DepartmentRepository, Service) {
	classifier := &mocks.Classifier{}
	deptRepo := &mocks.DepartmentRepository{}
	return classifier, deptRepo, NewService(classifier, deptRepo, testutil.NewMockLogger())
}

func TestTrainWithMatchingLabels(t *testing.T) {
	classifier, deptRepo, svc := newTestService()

	deptRepo.On("List", mock.Anything).Return(catalog("mantenimiento", "sistemas"), nil)
	classifier.On("Train", mock.Anything,
		[]string{"canilla rota", "wifi caido"},
		[]string{"mantenimiento", "sistemas"},
	).Return(nil)

	err := svc.Train(context.Background(), []Sample{
		{Text: "canilla rota", Label: "mantenimiento"},
		{Text: "wifi caido", Label: "sistemas"},
	})
	require.NoError(t, err)
	classifier.AssertExpectations(t)
}

func TestTrainRefusesUnmatchedLabels(t *testing.T) {
	classifier, deptRepo, svc := newTestService()

	deptRepo.On("List", mock.Anything).Return(catalog("mantenimiento"), nil)

	err := svc.Train(context.Background(), []Sample{
		{Text: "canilla rota", Label: "mantenimiento"},
		{Text: "wifi caido", Label: "sistemas"},
		{Text: "puerta bloqueada", Label: "seguridad"},
	})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnmatchedLabels))
	// Unmatched labels are listed alphabetically.
	assert.Contains(t, err.Error(), "seguridad, sistemas")
	classifier.AssertNotCalled(t, "Train", mock.Anything, mock.Anything, mock.Anything)
}

func TestTrainRejectsEmptyCorpus(t *testing.T) {
	_, _, svc := newTestService()

	err := svc.Train(context.Background(), nil)
	assert.True(t, errors.IsCode(err, errors.ErrCodeTrainingInput))
}

func TestTrainRejectsBlankSample(t *testing.T) {
	_, _, svc := newTestService()

	err := svc.Train(context.Background(), []Sample{{Text: "  ", Label: "mantenimiento"}})
	assert.True(t, errors.IsCode(err, errors.ErrCodeTrainingInput))
}

func TestTrainTrimsSamples(t *testing.T) {
	classifier, deptRepo, svc := newTestService()

	deptRepo.On("List", mock.Anything).Return(catalog("mantenimiento"), nil)
	classifier.On("Train", mock.Anything, []string{"canilla rota"}, []string{"mantenimiento"}).Return(nil)

	err := svc.Train(context.Background(), []Sample{
		{Text: "  canilla rota  ", Label: " mantenimiento "},
	})
	require.NoError(t, err)
	classifier.AssertExpectations(t)
}

func TestDefaultCorpusIsWellFormed(t *testing.T) {
	require.NotEmpty(t, DefaultCorpus)
	for _, sample := range DefaultCorpus {
		assert.NotEmpty(t, sample.Text)
		assert.NotEmpty(t, sample.Label)
	}
}
