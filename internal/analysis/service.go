package analysis

import (
	"context"
	"errors"
	"fmt"

	"company-analyzer/internal/interfaces"
	"company-analyzer/internal/types"
)

// DefaultFuzzyLimit is how many candidates the fuzzy fallback considers.
const DefaultFuzzyLimit = 5

// ErrCompanyNotFound is matched by every *NotFoundError.
var ErrCompanyNotFound = errors.New("company not found")

// NotFoundError reports a name that matched no analyzable company.
// Suggestions holds close names when any were found.
type NotFoundError struct {
	Name        string
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("company %q not found", e.Name)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrCompanyNotFound
}

// Service resolves company names against a repository and analyzes them.
type Service struct {
	repo       interfaces.CompanyRepository
	fuzzyLimit int
}

// NewService creates a service. A fuzzyLimit below 1 uses DefaultFuzzyLimit.
func NewService(repo interfaces.CompanyRepository, fuzzyLimit int) *Service {
	if fuzzyLimit < 1 {
		fuzzyLimit = DefaultFuzzyLimit
	}
	return &Service{repo: repo, fuzzyLimit: fuzzyLimit}
}

// AnalyzeCompany looks name up exactly, then falls back to the best fuzzy
// match. The result is labelled with the requested name.
func (s *Service) AnalyzeCompany(ctx context.Context, name string) (*types.CompanyAnalysis, error) {
	record, ok, err := s.repo.FindByExactName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("lookup %q: %w", name, err)
	}
	if ok {
		return &types.CompanyAnalysis{
			Result:         Analyze(name, *record),
			MatchedName:    name,
			UsedExactMatch: true,
		}, nil
	}

	candidates, err := s.repo.SearchByName(ctx, name, s.fuzzyLimit)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", name, err)
	}
	if len(candidates) == 0 {
		return nil, &NotFoundError{Name: name}
	}

	best := candidates[0]
	record, ok, err = s.repo.FindByExactName(ctx, best)
	if err != nil {
		return nil, fmt.Errorf("lookup %q: %w", best, err)
	}
	if !ok {
		return nil, &NotFoundError{Name: name, Suggestions: candidates}
	}

	return &types.CompanyAnalysis{
		Result:      Analyze(name, *record),
		MatchedName: best,
	}, nil
}

var _ interfaces.CompanyAnalyzer = (*Service)(nil)
