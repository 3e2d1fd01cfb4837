// Package intake orchestrates the filing of new claims: text validation,
// department resolution via the classifier with its fallback policy, the
// idempotent create, and the duplicate preview offered before filing.
package intake

import (
	"context"
	"strings"
	"time"

	"github.com/SolBenven/proyecto-final/internal/domain/claim"
	"github.com/SolBenven/proyecto-final/internal/domain/department"
	"github.com/SolBenven/proyecto-final/internal/infrastructure/monitoring/logging"
	"github.com/SolBenven/proyecto-final/internal/infrastructure/monitoring/metrics"
	"github.com/SolBenven/proyecto-final/internal/intelligence/deptclass"
	"github.com/SolBenven/proyecto-final/internal/intelligence/similarity"
	"github.com/SolBenven/proyecto-final/pkg/errors"
)

// CreateClaimInput is everything needed to file a claim.
type CreateClaimInput struct {
	CreatorID int64
	Detail    string

	// DepartmentID routes the claim manually, bypassing classification.
	DepartmentID *int64

	// ImagePath is an optional attachment reference.
	ImagePath *string

	// IdempotencyKey deduplicates client retries.  Empty disables the
	// protection for this request.
	IdempotencyKey string
}

// SimilarClaim pairs an existing claim with its similarity to a draft text.
type SimilarClaim struct {
	Claim *claim.Claim
	Score float64
}

// Service is the claim intake pipeline.
type Service interface {
	// CreateClaim validates, routes, and files a claim.  Routing order:
	// the manually chosen department, then the classifier's prediction,
	// then the technical secretariat.
	CreateClaim(ctx context.Context, in CreateClaimInput) (*claim.Claim, error)

	// FindSimilar previews pending claims similar to a draft text so the
	// user can support an existing claim instead of filing a duplicate.
	// excludeID skips one claim; pass 0 to skip none.
	FindSimilar(ctx context.Context, text string, excludeID int64) ([]SimilarClaim, error)
}

type service struct {
	claims     claim.Service
	claimRepo  claim.Repository
	deptRepo   department.Repository
	classifier deptclass.Service
	finder     similarity.Finder
	metrics    *metrics.Metrics
	log        logging.Logger
}

// NewService builds the intake service.
func NewService(
	claims claim.Service,
	claimRepo claim.Repository,
	deptRepo department.Repository,
	classifier deptclass.Service,
	finder similarity.Finder,
	m *metrics.Metrics,
	log logging.Logger,
) Service {
	return &service{
		claims:     claims,
		claimRepo:  claimRepo,
		deptRepo:   deptRepo,
		classifier: classifier,
		finder:     finder,
		metrics:    m,
		log:        log.Named("intake"),
	}
}

func (s *service) CreateClaim(ctx context.Context, in CreateClaimInput) (*claim.Claim, error) {
	detail := strings.TrimSpace(in.Detail)
	if detail == "" {
		return nil, errors.New(errors.ErrCodeClaimEmptyDetail, "claim detail must not be empty")
	}

	dept, err := s.resolveDepartment(ctx, detail, in.DepartmentID)
	if err != nil {
		return nil, err
	}

	c := &claim.Claim{
		Detail:       detail,
		DepartmentID: dept.ID,
		CreatorID:    in.CreatorID,
		ImagePath:    in.ImagePath,
	}
	if key := strings.TrimSpace(in.IdempotencyKey); key != "" {
		c.IdempotencyKey = &key
	}

	created, err := s.claims.Create(ctx, c)
	if err != nil {
		return nil, err
	}

	s.metrics.ClaimsCreated.WithLabelValues(dept.Name).Inc()
	s.log.Info("claim filed",
		logging.Int64("claim_id", created.ID),
		logging.String("department", dept.Name),
		logging.Int64("creator_id", in.CreatorID))
	return created, nil
}

// resolveDepartment picks the destination department.  Classification is
// best effort: any classifier failure, unknown label, or unavailable model
// falls back to the technical secretariat.
func (s *service) resolveDepartment(ctx context.Context, detail string, manualID *int64) (*department.Department, error) {
	if manualID != nil {
		return s.deptRepo.GetByID(ctx, *manualID)
	}

	if s.classifier.ModelAvailable(ctx) {
		label, err := s.classifier.Classify(ctx, detail)
		if err == nil {
			dept, err := s.deptRepo.GetByName(ctx, label)
			if err == nil {
				return dept, nil
			}
			s.log.Warn("classifier label has no matching department, falling back",
				logging.String("label", label), logging.Err(err))
		} else {
			s.log.Warn("classification failed, falling back", logging.Err(err))
		}
	}

	s.metrics.ClassifierFallbacks.Inc()
	fallback, err := s.deptRepo.GetTechnicalSecretariat(ctx)
	if err != nil {
		if errors.IsCode(err, errors.ErrCodeDepartmentNotFound) {
			return nil, errors.New(errors.ErrCodeNoFallbackDepartment, "technical secretariat department is not configured")
		}
		return nil, err
	}
	return fallback, nil
}

func (s *service) FindSimilar(ctx context.Context, text string, excludeID int64) ([]SimilarClaim, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	pending, err := s.claimRepo.ListPending(ctx, nil)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]*claim.Claim, len(pending))
	candidates := make([]similarity.Candidate, 0, len(pending))
	for _, c := range pending {
		byID[c.ID] = c
		candidates = append(candidates, similarity.Candidate{ID: c.ID, Text: c.Detail})
	}

	start := time.Now()
	matches := s.finder.FindSimilar(text, candidates, excludeID)
	s.metrics.SimilarityQueries.Observe(time.Since(start).Seconds())

	result := make([]SimilarClaim, 0, len(matches))
	for _, m := range matches {
		result = append(result, SimilarClaim{Claim: byID[m.Candidate.ID], Score: m.Score})
	}
	return result, nil
}
