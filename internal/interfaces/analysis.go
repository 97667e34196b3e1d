package interfaces

import (
	"context"

	"company-analyzer/internal/types"
)

// CompanyAnalyzer resolves a company by name and runs the financial analysis
type CompanyAnalyzer interface {
	// AnalyzeCompany looks the company up (exact, then fuzzy) and analyzes it
	AnalyzeCompany(ctx context.Context, name string) (*types.CompanyAnalysis, error)
}
