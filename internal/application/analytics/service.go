// Package analytics computes the dashboard aggregates and keyword statistics
// shown in the administration panel, always narrowed to the actor's scope.
package analytics

import (
	"context"
	"math"
	"sort"
	"unicode"

	"github.com/SolBenven/proyecto-final/internal/domain/access"
	"github.com/SolBenven/proyecto-final/internal/domain/account"
	"github.com/SolBenven/proyecto-final/internal/domain/claim"
	"github.com/SolBenven/proyecto-final/internal/infrastructure/monitoring/logging"
	"github.com/SolBenven/proyecto-final/internal/intelligence/textproc"
)

// DefaultKeywordLimit caps the keyword report when the caller passes 0.
const DefaultKeywordLimit = 20

// Keyword is one entry of the keyword frequency report.
type Keyword struct {
	Word  string `json:"word"`
	Count int64  `json:"count"`
}

// StatusBreakdown summarizes claims by status with percentages over the
// actor's visible claims.
type StatusBreakdown struct {
	Total       int64              `json:"total"`
	Counts      map[string]int64   `json:"counts"`
	Percentages map[string]float64 `json:"percentages"`
}

// Service is the analytics read model.
type Service interface {
	// DashboardCounts returns the headline numbers over the actor's scope.
	DashboardCounts(ctx context.Context, actor account.Actor) (claim.DashboardCounts, error)

	// DepartmentDashboard returns per-department dashboard numbers for
	// every department in the actor's scope.
	DepartmentDashboard(ctx context.Context, actor account.Actor) (map[int64]claim.DashboardCounts, error)

	// StatusBreakdown returns counts and percentages by display status,
	// omitting statuses with zero claims.
	StatusBreakdown(ctx context.Context, actor account.Actor) (*StatusBreakdown, error)

	// KeywordFrequencies returns the most frequent meaningful words across
	// the visible claim texts, most frequent first.
	KeywordFrequencies(ctx context.Context, actor account.Actor, limit int) ([]Keyword, error)
}

type service struct {
	claimRepo claim.Repository
	log       logging.Logger
}

// NewService builds the analytics service.
func NewService(claimRepo claim.Repository, log logging.Logger) Service {
	return &service{claimRepo: claimRepo, log: log.Named("analytics")}
}

// scopeIDs converts an actor's scope into the repository's department filter
// convention: nil means every department, empty means none.
func scopeIDs(actor account.Actor) []int64 {
	scope := access.ScopeFor(actor)
	switch {
	case scope.All:
		return nil
	case scope.Empty():
		return []int64{}
	default:
		return []int64{scope.DepartmentID}
	}
}

func (s *service) DashboardCounts(ctx context.Context, actor account.Actor) (claim.DashboardCounts, error) {
	counts, err := s.claimRepo.CountByStatus(ctx, scopeIDs(actor))
	if err != nil {
		return claim.DashboardCounts{}, err
	}
	return claim.CountsFromStatuses(counts), nil
}

func (s *service) DepartmentDashboard(ctx context.Context, actor account.Actor) (map[int64]claim.DashboardCounts, error) {
	ids := scopeIDs(actor)
	if ids != nil && len(ids) == 0 {
		return map[int64]claim.DashboardCounts{}, nil
	}

	perDept, err := s.claimRepo.CountByDepartmentAndStatus(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make(map[int64]claim.DashboardCounts, len(perDept))
	for deptID, counts := range perDept {
		result[deptID] = claim.CountsFromStatuses(counts)
	}
	return result, nil
}

func (s *service) StatusBreakdown(ctx context.Context, actor account.Actor) (*StatusBreakdown, error) {
	counts, err := s.claimRepo.CountByStatus(ctx, scopeIDs(actor))
	if err != nil {
		return nil, err
	}

	breakdown := &StatusBreakdown{
		Counts:      map[string]int64{},
		Percentages: map[string]float64{},
	}
	for _, status := range claim.AllStatuses() {
		if n := counts[status]; n > 0 {
			breakdown.Counts[status.DisplayName()] = n
			breakdown.Total += n
		}
	}
	if breakdown.Total == 0 {
		return breakdown, nil
	}
	for label, n := range breakdown.Counts {
		pct := float64(n) / float64(breakdown.Total) * 100
		breakdown.Percentages[label] = math.Round(pct*10) / 10
	}
	return breakdown, nil
}

func (s *service) KeywordFrequencies(ctx context.Context, actor account.Actor, limit int) ([]Keyword, error) {
	if limit <= 0 {
		limit = DefaultKeywordLimit
	}

	ids := scopeIDs(actor)
	if ids != nil && len(ids) == 0 {
		return nil, nil
	}

	details, err := s.claimRepo.ListDetails(ctx, ids)
	if err != nil {
		return nil, err
	}

	freq := make(map[string]int64)
	for _, detail := range details {
		for _, tok := range textproc.Tokenize(detail) {
			if len(tok) <= 2 || textproc.IsStopword(tok) || isDigits(tok) {
				continue
			}
			freq[tok]++
		}
	}

	keywords := make([]Keyword, 0, len(freq))
	for word, count := range freq {
		keywords = append(keywords, Keyword{Word: word, Count: count})
	}
	// Frequency descending, ties alphabetically, for a stable report.
	sort.Slice(keywords, func(i, j int) bool {
		if keywords[i].Count != keywords[j].Count {
			return keywords[i].Count > keywords[j].Count
		}
		return keywords[i].Word < keywords[j].Word
	})
	if len(keywords) > limit {
		keywords = keywords[:limit]
	}
	return keywords, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}
