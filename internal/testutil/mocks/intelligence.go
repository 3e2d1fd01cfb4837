package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/SolBenven/proyecto-final/internal/intelligence/similarity"
)

// Classifier mocks deptclass.Service.
type Classifier struct {
	mock.Mock
}

func (m *Classifier) Classify(ctx context.Context, text string) (string, error) {
	args := m.Called(ctx, text)
	return args.String(0), args.Error(1)
}

func (m *Classifier) Confidence(ctx context.Context, text string) (float64, error) {
	args := m.Called(ctx, text)
	return args.Get(0).(float64), args.Error(1)
}

func (m *Classifier) Train(ctx context.Context, texts, labels []string) error {
	return m.Called(ctx, texts, labels).Error(0)
}

func (m *Classifier) ModelAvailable(ctx context.Context) bool {
	return m.Called(ctx).Bool(0)
}

// Finder mocks similarity.Finder.
type Finder struct {
	mock.Mock
}

func (m *Finder) FindSimilar(text string, candidates []similarity.Candidate, excludeID int64) []similarity.Match {
	args := m.Called(text, candidates, excludeID)
	if v := args.Get(0); v != nil {
		return v.([]similarity.Match)
	}
	return nil
}
