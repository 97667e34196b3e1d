package analysis

import (
	"github.com/shopspring/decimal"

	"company-analyzer/internal/types"
)

const (
	RecProfitabilityWeak   = "💡 수익성 개선이 필요합니다. 매출 증대 & 비용 절감 전략을 검토하세요."
	RecProfitabilityStrong = "✅ 우수한 수익성을 보이고 있습니다. 현재 전략을 유지하세요."
	RecStabilityWeak       = "⚠️ 재무 안정성이 낮습니다. 부채 구조 개선과 유동성 확보에 주력하세요."
	RecStabilityStrong     = "🛡️ 안정적인 재무구조입니다. 공격적인 투자도 고려해볼 수 있습니다."
	RecRevenueDecline      = "📉 매출이 감소세입니다. 신시장 개척 또는 제품 혁신이 필요합니다."
	RecHighGrowth          = "🚀 고성장 중입니다. 성장에 따른 운영 리스크 관리에 유의하세요."
	RecLongTermAttractive  = "🎯 장기 투자 매력도가 높은 기업입니다."
	RecDueDiligence        = "🔍 투자 전 추가적인 리스크 분석이 필요합니다."
)

var highGrowthThreshold = decimal.NewFromInt(20)

// GenerateRecommendations runs the fixed rule checks in order: profitability,
// stability, revenue growth, then grade. Each check adds at most one entry.
func GenerateRecommendations(ratios types.FinancialRatios, eval types.CompanyEvaluation) []string {
	recs := make([]string, 0, 4)

	switch {
	case eval.ProfitabilityScore < ScoreAverage:
		recs = append(recs, RecProfitabilityWeak)
	case eval.ProfitabilityScore >= ScoreGood:
		recs = append(recs, RecProfitabilityStrong)
	}

	switch {
	case eval.StabilityScore < ScoreAverage:
		recs = append(recs, RecStabilityWeak)
	case eval.StabilityScore >= ScoreGood:
		recs = append(recs, RecStabilityStrong)
	}

	if g, ok := ratios.Growth.RevenueGrowth.Decimal(); ok {
		switch {
		case g.IsNegative():
			recs = append(recs, RecRevenueDecline)
		case g.GreaterThan(highGrowthThreshold):
			recs = append(recs, RecHighGrowth)
		}
	}

	switch eval.Grade {
	case types.GradeS, types.GradeA:
		recs = append(recs, RecLongTermAttractive)
	case types.GradeD:
		recs = append(recs, RecDueDiligence)
	}

	return recs
}
