package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"company-analyzer/internal/types"
)

func TestEvaluateSample(t *testing.T) {
	eval := Evaluate(CalculateRatios(sampleData(t)))

	assert.Equal(t, 70, eval.ProfitabilityScore)
	assert.Equal(t, 80, eval.StabilityScore)
	assert.Equal(t, 70, eval.GrowthScore)
	assert.Equal(t, 60, eval.ActivityScore)
	assert.Equal(t, 72, eval.TotalScore)
	assert.Equal(t, types.GradeB, eval.Grade)
	assert.Equal(t, "양호", eval.Status)
	assert.Equal(t, "bg-green-100", eval.Color)
	assert.Equal(t, "🙂", eval.Emoji)
}

func TestEvaluateAllUnknown(t *testing.T) {
	eval := Evaluate(types.FinancialRatios{})

	assert.Equal(t, types.CompanyEvaluation{
		TotalScore: 0,
		Grade:      types.GradeD,
		Status:     "주의 필요",
		Color:      "bg-red-100",
		Emoji:      "😟",
	}, eval)
}

func TestEvaluateSkipsUnknownWithinCategory(t *testing.T) {
	var r types.FinancialRatios
	r.Profitability.OperatingMargin = val("20") // 100
	r.Profitability.ROE = val("6")              // 60

	eval := Evaluate(r)
	assert.Equal(t, 80, eval.ProfitabilityScore)
	assert.Equal(t, 0, eval.StabilityScore)
	// 0.4 * 80
	assert.Equal(t, 32, eval.TotalScore)
	assert.Equal(t, types.GradeD, eval.Grade)
}

func TestEvaluatePartialCategories(t *testing.T) {
	var r types.FinancialRatios
	r.Profitability.OperatingMargin = val("15") // 100
	r.Profitability.NetMargin = val("7")        // 80
	r.Profitability.ROA = val("3")              // 60
	// (100+80+60)/3 = 80
	r.Stability.DebtRatio = val("30")     // 100
	r.Stability.CurrentRatio = val("150") // 80
	// 90
	r.Growth.RevenueGrowth = val("5")     // 60
	r.Activity.AssetTurnover = val("0.7") // 60

	eval := Evaluate(r)
	assert.Equal(t, 80, eval.ProfitabilityScore)
	assert.Equal(t, 90, eval.StabilityScore)
	assert.Equal(t, 60, eval.GrowthScore)
	assert.Equal(t, 60, eval.ActivityScore)
	// 32 + 27 + 12 + 6
	assert.Equal(t, 77, eval.TotalScore)
}

func TestEvaluateOneThirdAverages(t *testing.T) {
	var r types.FinancialRatios
	r.Stability.DebtRatio = val("40")     // 80
	r.Stability.CurrentRatio = val("150") // 80
	r.Stability.EquityRatio = val("30")   // 60
	// 220/3 = 73.33

	eval := Evaluate(r)
	assert.Equal(t, 73, eval.StabilityScore)
	// 0.3 * 73.33 = 22
	assert.Equal(t, 22, eval.TotalScore)
}

func TestBand(t *testing.T) {
	debt := RatioDefs[4].Threshold
	require.Equal(t, LowerIsBetter, debt.Direction)

	tests := []struct {
		name string
		th   Threshold
		in   string
		want int
	}{
		{"margin at excellent", RatioDefs[0].Threshold, "15", ScoreExcellent},
		{"margin just below excellent", RatioDefs[0].Threshold, "14.9999", ScoreGood},
		{"margin at poor bound", RatioDefs[0].Threshold, "0", ScorePoor},
		{"margin negative", RatioDefs[0].Threshold, "-0.01", ScoreBad},
		{"debt at excellent", debt, "30", ScoreExcellent},
		{"debt at good", debt, "50", ScoreGood},
		{"debt at average", debt, "100", ScoreAverage},
		{"debt at poor", debt, "200", ScorePoor},
		{"debt over poor", debt, "200.01", ScoreBad},
		{"turnover at poor", RatioDefs[9].Threshold, "0.5", ScorePoor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.th.Band(dec(tt.in)))
		})
	}
}

func TestGradeForBoundaries(t *testing.T) {
	tests := map[int]types.Grade{
		100: types.GradeS,
		90:  types.GradeS,
		89:  types.GradeA,
		80:  types.GradeA,
		79:  types.GradeB,
		70:  types.GradeB,
		69:  types.GradeC,
		60:  types.GradeC,
		59:  types.GradeD,
		0:   types.GradeD,
	}
	for score, want := range tests {
		assert.Equal(t, want, GradeFor(score).Grade, "score %d", score)
	}
}

func TestDescribeGrade(t *testing.T) {
	info, ok := DescribeGrade(types.GradeS)
	require.True(t, ok)
	assert.Equal(t, "매우 우수", info.Status)
	assert.Equal(t, "bg-purple-100", info.Color)
	assert.Equal(t, "🌟", info.Emoji)

	_, ok = DescribeGrade("F")
	assert.False(t, ok)
}

func TestRatioDefsCoverEveryRatio(t *testing.T) {
	perCategory := map[Category]int{}
	for _, def := range RatioDefs {
		perCategory[def.Category]++
	}
	assert.Equal(t, map[Category]int{
		CategoryProfitability: 4,
		CategoryStability:     3,
		CategoryGrowth:        2,
		CategoryActivity:      2,
	}, perCategory)
}

func TestCustomWeights(t *testing.T) {
	s := NewScorer(CategoryWeights{
		CategoryProfitability: dec("1"),
		CategoryStability:     dec("0"),
		CategoryGrowth:        dec("0"),
		CategoryActivity:      dec("0"),
	})
	eval := s.Evaluate(CalculateRatios(sampleData(t)))
	assert.Equal(t, 70, eval.TotalScore)
}

func TestRoundScore(t *testing.T) {
	assert.Equal(t, 73, roundScore(dec("72.5")))
	assert.Equal(t, 72, roundScore(dec("72.4999")))
	assert.Equal(t, 90, roundScore(dec("89.5")))
	assert.Equal(t, types.GradeS, GradeFor(roundScore(dec("89.5"))).Grade)
}
