// Package training fits the department classifier from a labeled corpus,
// refusing corpora whose labels do not match existing departments.
package training

import (
	"context"
	"sort"
	"strings"

	"github.com/SolBenven/proyecto-final/internal/domain/department"
	"github.com/SolBenven/proyecto-final/internal/infrastructure/monitoring/logging"
	"github.com/SolBenven/proyecto-final/internal/intelligence/deptclass"
	"github.com/SolBenven/proyecto-final/pkg/errors"
)

// Sample is one labeled training document.  Label is a department's internal
// name, not its display name.
type Sample struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// Service trains the classifier.
type Service interface {
	// Train validates the corpus labels against the department catalog and
	// fits fresh artifacts.  A corpus naming unknown departments is refused
	// with a CLS_003 error listing them.
	Train(ctx context.Context, samples []Sample) error
}

type service struct {
	classifier deptclass.Service
	deptRepo   department.Repository
	log        logging.Logger
}

// NewService builds the training service.
func NewService(classifier deptclass.Service, deptRepo department.Repository, log logging.Logger) Service {
	return &service{
		classifier: classifier,
		deptRepo:   deptRepo,
		log:        log.Named("training"),
	}
}

func (s *service) Train(ctx context.Context, samples []Sample) error {
	if len(samples) == 0 {
		return errors.New(errors.ErrCodeTrainingInput, "training corpus is empty")
	}

	texts := make([]string, 0, len(samples))
	labels := make([]string, 0, len(samples))
	for i, sample := range samples {
		text := strings.TrimSpace(sample.Text)
		label := strings.TrimSpace(sample.Label)
		if text == "" || label == "" {
			return errors.Newf(errors.ErrCodeTrainingInput, "sample %d has an empty text or label", i)
		}
		texts = append(texts, text)
		labels = append(labels, label)
	}

	if err := s.validateLabels(ctx, labels); err != nil {
		return err
	}

	if err := s.classifier.Train(ctx, texts, labels); err != nil {
		return err
	}

	s.log.Info("classifier trained from corpus", logging.Int("samples", len(samples)))
	return nil
}

// validateLabels checks every distinct label against the department catalog.
func (s *service) validateLabels(ctx context.Context, labels []string) error {
	depts, err := s.deptRepo.List(ctx)
	if err != nil {
		return err
	}
	known := make(map[string]struct{}, len(depts))
	for _, d := range depts {
		known[d.Name] = struct{}{}
	}

	unmatchedSet := map[string]struct{}{}
	for _, label := range labels {
		if _, ok := known[label]; !ok {
			unmatchedSet[label] = struct{}{}
		}
	}
	if len(unmatchedSet) == 0 {
		return nil
	}

	unmatched := make([]string, 0, len(unmatchedSet))
	for label := range unmatchedSet {
		unmatched = append(unmatched, label)
	}
	sort.Strings(unmatched)
	return errors.Newf(errors.ErrCodeUnmatchedLabels,
		"corpus labels do not match any department: %s", strings.Join(unmatched, ", "))
}
