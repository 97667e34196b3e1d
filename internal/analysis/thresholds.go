package analysis

import (
	"github.com/shopspring/decimal"

	"company-analyzer/internal/types"
)

// Category is one of the four ratio groupings used for sub-scoring.
type Category string

const (
	CategoryProfitability Category = "profitability"
	CategoryStability     Category = "stability"
	CategoryGrowth        Category = "growth"
	CategoryActivity      Category = "activity"
)

// Categories lists the categories in reporting order.
var Categories = []Category{CategoryProfitability, CategoryStability, CategoryGrowth, CategoryActivity}

// RatioKey identifies a single ratio.
type RatioKey string

const (
	RatioOperatingMargin       RatioKey = "operating_margin"
	RatioNetMargin             RatioKey = "net_margin"
	RatioROA                   RatioKey = "roa"
	RatioROE                   RatioKey = "roe"
	RatioDebt                  RatioKey = "debt_ratio"
	RatioCurrent               RatioKey = "current_ratio"
	RatioEquity                RatioKey = "equity_ratio"
	RatioRevenueGrowth         RatioKey = "revenue_growth"
	RatioOperatingIncomeGrowth RatioKey = "operating_income_growth"
	RatioAssetTurnover         RatioKey = "asset_turnover"
	RatioInventoryTurnover     RatioKey = "inventory_turnover"
)

// Direction tells which side of a threshold is better.
type Direction int

const (
	HigherIsBetter Direction = iota
	LowerIsBetter
)

// Threshold is the four-tier band table of one ratio.
type Threshold struct {
	Excellent decimal.Decimal
	Good      decimal.Decimal
	Average   decimal.Decimal
	Poor      decimal.Decimal
	Direction Direction
}

func higher(excellent, good, average, poor string) Threshold {
	return Threshold{
		Excellent: decimal.RequireFromString(excellent),
		Good:      decimal.RequireFromString(good),
		Average:   decimal.RequireFromString(average),
		Poor:      decimal.RequireFromString(poor),
		Direction: HigherIsBetter,
	}
}

func lower(excellent, good, average, poor string) Threshold {
	t := higher(excellent, good, average, poor)
	t.Direction = LowerIsBetter
	return t
}

// RatioDef describes one ratio: where it lives, how it is labelled and how it
// is banded.
type RatioDef struct {
	Key       RatioKey
	Category  Category
	Label     string
	Unit      string
	Threshold Threshold
	value     func(*types.FinancialRatios) types.Value
}

// Value reads this ratio out of r.
func (d RatioDef) Value(r *types.FinancialRatios) types.Value {
	return d.value(r)
}

// RatioDefs is the declarative threshold table. Order is category order, then
// ratio order within the category.
var RatioDefs = []RatioDef{
	{RatioOperatingMargin, CategoryProfitability, "영업이익률", "%", higher("15", "10", "5", "0"),
		func(r *types.FinancialRatios) types.Value { return r.Profitability.OperatingMargin }},
	{RatioNetMargin, CategoryProfitability, "순이익률", "%", higher("10", "7", "3", "0"),
		func(r *types.FinancialRatios) types.Value { return r.Profitability.NetMargin }},
	{RatioROA, CategoryProfitability, "ROA", "%", higher("10", "7", "3", "0"),
		func(r *types.FinancialRatios) types.Value { return r.Profitability.ROA }},
	{RatioROE, CategoryProfitability, "ROE", "%", higher("15", "10", "5", "0"),
		func(r *types.FinancialRatios) types.Value { return r.Profitability.ROE }},

	{RatioDebt, CategoryStability, "부채비율", "%", lower("30", "50", "100", "200"),
		func(r *types.FinancialRatios) types.Value { return r.Stability.DebtRatio }},
	{RatioCurrent, CategoryStability, "유동비율", "%", higher("200", "150", "120", "100"),
		func(r *types.FinancialRatios) types.Value { return r.Stability.CurrentRatio }},
	{RatioEquity, CategoryStability, "자기자본비율", "%", higher("60", "40", "30", "20"),
		func(r *types.FinancialRatios) types.Value { return r.Stability.EquityRatio }},

	{RatioRevenueGrowth, CategoryGrowth, "매출액증가율", "%", higher("20", "10", "5", "0"),
		func(r *types.FinancialRatios) types.Value { return r.Growth.RevenueGrowth }},
	{RatioOperatingIncomeGrowth, CategoryGrowth, "영업이익증가율", "%", higher("30", "15", "5", "0"),
		func(r *types.FinancialRatios) types.Value { return r.Growth.OperatingIncomeGrowth }},

	{RatioAssetTurnover, CategoryActivity, "총자산회전율", "회", higher("1.5", "1.0", "0.7", "0.5"),
		func(r *types.FinancialRatios) types.Value { return r.Activity.AssetTurnover }},
	{RatioInventoryTurnover, CategoryActivity, "재고자산회전율", "회", higher("12", "8", "4", "2"),
		func(r *types.FinancialRatios) types.Value { return r.Activity.InventoryTurnover }},
}

// Band scores
const (
	ScoreExcellent = 100
	ScoreGood      = 80
	ScoreAverage   = 60
	ScorePoor      = 40
	ScoreBad       = 20
)

// Band maps a value onto 100/80/60/40/20. Boundaries are inclusive.
func (t Threshold) Band(v decimal.Decimal) int {
	reached := func(limit decimal.Decimal) bool {
		if t.Direction == LowerIsBetter {
			return v.LessThanOrEqual(limit)
		}
		return v.GreaterThanOrEqual(limit)
	}
	switch {
	case reached(t.Excellent):
		return ScoreExcellent
	case reached(t.Good):
		return ScoreGood
	case reached(t.Average):
		return ScoreAverage
	case reached(t.Poor):
		return ScorePoor
	default:
		return ScoreBad
	}
}

// GradeInfo is the fixed presentation attached to a grade.
type GradeInfo struct {
	Grade    types.Grade
	MinScore int
	Status   string
	Color    string
	Emoji    string
}

// gradeTable is ordered from the highest grade down.
var gradeTable = []GradeInfo{
	{types.GradeS, 90, "매우 우수", "bg-purple-100", "🌟"},
	{types.GradeA, 80, "우수", "bg-blue-100", "😊"},
	{types.GradeB, 70, "양호", "bg-green-100", "🙂"},
	{types.GradeC, 60, "보통", "bg-yellow-100", "😐"},
	{types.GradeD, 0, "주의 필요", "bg-red-100", "😟"},
}

// GradeFor returns the grade whose lower bound score reaches.
func GradeFor(score int) GradeInfo {
	for _, g := range gradeTable {
		if score >= g.MinScore {
			return g
		}
	}
	return gradeTable[len(gradeTable)-1]
}

// DescribeGrade looks up the presentation of a grade.
func DescribeGrade(grade types.Grade) (GradeInfo, bool) {
	for _, g := range gradeTable {
		if g.Grade == grade {
			return g, true
		}
	}
	return GradeInfo{}, false
}
