package analysisobs

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"company-analyzer/internal/analysis"
	"company-analyzer/internal/interfaces"
	"company-analyzer/internal/logger"
	"company-analyzer/internal/trace"
	"company-analyzer/internal/types"
)

// observableAnalyzer wraps CompanyAnalyzer with logging and tracing
type observableAnalyzer struct {
	inner interfaces.CompanyAnalyzer
}

// Wrap wraps a CompanyAnalyzer with observability middleware
func Wrap(analyzer interfaces.CompanyAnalyzer) interfaces.CompanyAnalyzer {
	return &observableAnalyzer{inner: analyzer}
}

// AnalyzeCompany wraps the AnalyzeCompany method with logging and tracing
func (o *observableAnalyzer) AnalyzeCompany(ctx context.Context, name string) (*types.CompanyAnalysis, error) {
	ctx, span := trace.StartSpan(ctx, "analysis.AnalyzeCompany")
	defer span.End()
	span.SetAttributes(attribute.String("company", name))

	logger.DebugSkip(ctx, 1, "Analyzing company", "company", name)
	start := time.Now()

	result, err := o.inner.AnalyzeCompany(ctx, name)

	durationMs := time.Since(start).Milliseconds()

	if err != nil {
		var notFound *analysis.NotFoundError
		if errors.As(err, &notFound) {
			// a miss is a normal outcome, not a failure
			logger.InfoSkip(ctx, 1, "Company not found",
				"company", name,
				"suggestions", len(notFound.Suggestions),
				"duration_ms", durationMs)
			return nil, err
		}
		logger.ErrorWithErrSkip(ctx, 1, "Company analysis failed", err,
			"company", name,
			"duration_ms", durationMs)
		return nil, err
	}

	eval := result.Result.Evaluation
	span.SetAttributes(
		attribute.String("matched", result.MatchedName),
		attribute.Bool("exact_match", result.UsedExactMatch),
		attribute.String("grade", string(eval.Grade)),
		attribute.Int("score", eval.TotalScore),
	)

	logger.Analysis(ctx, name, string(eval.Grade), eval.TotalScore,
		"matched", result.MatchedName,
		"exact_match", result.UsedExactMatch,
		"profitability", eval.ProfitabilityScore,
		"stability", eval.StabilityScore,
		"growth", eval.GrowthScore,
		"activity", eval.ActivityScore,
		"duration_ms", durationMs)

	return result, nil
}
