package analysis

import (
	"github.com/shopspring/decimal"

	"company-analyzer/internal/types"
)

// CategoryWeights are the composite-score weights; they sum to 1.
type CategoryWeights map[Category]decimal.Decimal

// DefaultWeights returns profitability 40%, stability 30%, growth 20%,
// activity 10%.
func DefaultWeights() CategoryWeights {
	return CategoryWeights{
		CategoryProfitability: decimal.RequireFromString("0.4"),
		CategoryStability:     decimal.RequireFromString("0.3"),
		CategoryGrowth:        decimal.RequireFromString("0.2"),
		CategoryActivity:      decimal.RequireFromString("0.1"),
	}
}

// RatioScore is the band score of one ratio, or Known=false when the ratio
// could not be computed.
type RatioScore struct {
	Def   RatioDef
	Value types.Value
	Score int
	Known bool
}

// Scorer turns ratios into category scores, a composite and a grade.
type Scorer struct {
	defs    []RatioDef
	weights CategoryWeights
}

// NewScorer creates a scorer over the standard threshold table.
func NewScorer(weights CategoryWeights) *Scorer {
	if weights == nil {
		weights = DefaultWeights()
	}
	return &Scorer{defs: RatioDefs, weights: weights}
}

var defaultScorer = NewScorer(nil)

// Evaluate scores ratios with the default weights.
func Evaluate(ratios types.FinancialRatios) types.CompanyEvaluation {
	return defaultScorer.Evaluate(ratios)
}

// ScoreRatios bands every ratio with the standard table.
func ScoreRatios(ratios types.FinancialRatios) []RatioScore {
	return defaultScorer.ScoreRatios(ratios)
}

// ScoreRatios bands every ratio in table order.
func (s *Scorer) ScoreRatios(ratios types.FinancialRatios) []RatioScore {
	out := make([]RatioScore, 0, len(s.defs))
	for _, def := range s.defs {
		v := def.Value(&ratios)
		rs := RatioScore{Def: def, Value: v}
		if d, ok := v.Decimal(); ok {
			rs.Score = def.Threshold.Band(d)
			rs.Known = true
		}
		out = append(out, rs)
	}
	return out
}

// categoryAverages averages the known band scores of each category. A
// category with no known ratio averages to zero.
func (s *Scorer) categoryAverages(scores []RatioScore) map[Category]decimal.Decimal {
	sums := make(map[Category]decimal.Decimal, len(Categories))
	counts := make(map[Category]int64, len(Categories))
	for _, rs := range scores {
		if !rs.Known {
			continue
		}
		sums[rs.Def.Category] = sums[rs.Def.Category].Add(decimal.NewFromInt(int64(rs.Score)))
		counts[rs.Def.Category]++
	}

	avgs := make(map[Category]decimal.Decimal, len(Categories))
	for _, c := range Categories {
		if counts[c] == 0 {
			avgs[c] = decimal.Zero
			continue
		}
		avgs[c] = quotient(sums[c], decimal.NewFromInt(counts[c]))
	}
	return avgs
}

// composite is the weighted sum of the unrounded category averages.
func (s *Scorer) composite(avgs map[Category]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, c := range Categories {
		total = total.Add(avgs[c].Mul(s.weights[c]))
	}
	return total
}

// Evaluate computes category scores, the composite total and the grade. The
// grade is taken from the rounded total so score and grade always agree.
func (s *Scorer) Evaluate(ratios types.FinancialRatios) types.CompanyEvaluation {
	avgs := s.categoryAverages(s.ScoreRatios(ratios))
	total := roundScore(s.composite(avgs))
	grade := GradeFor(total)

	return types.CompanyEvaluation{
		TotalScore:         total,
		Grade:              grade.Grade,
		Status:             grade.Status,
		Color:              grade.Color,
		Emoji:              grade.Emoji,
		ProfitabilityScore: roundScore(avgs[CategoryProfitability]),
		StabilityScore:     roundScore(avgs[CategoryStability]),
		GrowthScore:        roundScore(avgs[CategoryGrowth]),
		ActivityScore:      roundScore(avgs[CategoryActivity]),
	}
}

// roundScore rounds half up to an integer; scores are never negative.
func roundScore(d decimal.Decimal) int {
	return int(d.Round(0).IntPart())
}
