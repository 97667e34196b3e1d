package analysis

import (
	"github.com/shopspring/decimal"

	"company-analyzer/internal/types"
)

// divisionPrecision is the number of significant digits kept by every
// quotient, whatever its magnitude.
const divisionPrecision int32 = 20

var hundred = decimal.NewFromInt(100)

// guard decides whether a denominator may be divided by.
type guard func(types.Value) bool

// positive is the default guard: known and strictly greater than zero.
func positive(v types.Value) bool { return v.IsPositive() }

// nonZero is the revenue guard used by the margins; negative revenue passes.
func nonZero(v types.Value) bool { return v.IsNonZero() }

// divide returns num/den when both are known and den passes g.
func divide(num, den types.Value, g guard) types.Value {
	n, ok := num.Decimal()
	if !ok || !g(den) {
		return types.Unknown
	}
	d, _ := den.Decimal()
	return types.Known(quotient(n, d))
}

// quotient returns n/d rounded half away from zero to divisionPrecision
// significant digits. d must not be zero.
func quotient(n, d decimal.Decimal) decimal.Decimal {
	if n.IsZero() {
		return decimal.Zero
	}
	// The leading digit of n/d sits at 10^(mag-1) or 10^mag.
	mag := magnitude(n) - magnitude(d)
	rough := n.DivRound(d, divisionPrecision-mag+1)
	lead := magnitude(rough) - 1
	return n.DivRound(d, divisionPrecision-1-lead)
}

// magnitude is the power of ten just above the leading digit of x.
func magnitude(x decimal.Decimal) int32 {
	c := x.Coefficient()
	return x.Exponent() + int32(len(c.Abs(c).String()))
}

// percent is divide scaled by 100.
func percent(num, den types.Value, g guard) types.Value {
	q, ok := divide(num, den, g).Decimal()
	if !ok {
		return types.Unknown
	}
	return types.Known(q.Mul(hundred))
}

// growth is (current - prior) / prior * 100 with the positive guard on prior.
func growth(current, prior types.Value) types.Value {
	c, ok := current.Decimal()
	if !ok || !positive(prior) {
		return types.Unknown
	}
	p, _ := prior.Decimal()
	return percent(types.Known(c.Sub(p)), prior, positive)
}

// CalculateRatios derives the profitability, stability, growth and activity
// ratios from normalized figures. A ratio whose operands are unknown or whose
// denominator fails its guard is Unknown.
func CalculateRatios(data types.ExtractedFinancialData) types.FinancialRatios {
	var r types.FinancialRatios

	r.Profitability.OperatingMargin = percent(data.OperatingIncome, data.Revenue, nonZero)
	r.Profitability.NetMargin = percent(data.NetIncome, data.Revenue, nonZero)
	r.Profitability.ROA = percent(data.NetIncome, data.TotalAssets, positive)
	r.Profitability.ROE = percent(data.NetIncome, data.TotalEquity, positive)

	r.Stability.DebtRatio = percent(data.TotalLiabilities, data.TotalEquity, positive)
	r.Stability.CurrentRatio = percent(data.CurrentAssets, data.CurrentLiabilities, positive)
	r.Stability.EquityRatio = percent(data.TotalEquity, data.TotalAssets, positive)

	r.Growth.RevenueGrowth = growth(data.Revenue, data.PriorRevenue)
	r.Growth.OperatingIncomeGrowth = growth(data.OperatingIncome, data.PriorOperatingIncome)

	r.Activity.AssetTurnover = divide(data.Revenue, data.TotalAssets, positive)
	r.Activity.InventoryTurnover = divide(data.Revenue, data.Inventories, positive)

	return r
}
