package analysis

import (
	"company-analyzer/internal/types"
)

// Analyze runs the full pipeline for one company record: normalize, compute
// ratios, evaluate, recommend. It holds no state and is safe to call
// concurrently. companyName is a display label only.
func Analyze(companyName string, record types.CompanyRecord) *types.AnalysisResult {
	extracted := Normalize(record.FinancialData)
	ratios := CalculateRatios(extracted)
	evaluation := Evaluate(ratios)
	recommendations := GenerateRecommendations(ratios, evaluation)

	return &types.AnalysisResult{
		CompanyName:     companyName,
		BasicInfo:       record.BasicInfo,
		ExtractedData:   extracted,
		Ratios:          ratios,
		Evaluation:      evaluation,
		Recommendations: recommendations,
	}
}
