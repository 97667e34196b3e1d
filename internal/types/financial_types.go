package types

import "encoding/json"

// FieldKey is the dataset key of one extracted financial figure.
type FieldKey string

const (
	// Income statement
	FieldRevenue         FieldKey = "매출액"
	FieldOperatingIncome FieldKey = "영업이익"
	FieldNetIncome       FieldKey = "당기순이익"

	// Balance sheet
	FieldTotalAssets           FieldKey = "자산총계"
	FieldCurrentAssets         FieldKey = "유동자산"
	FieldNonCurrentAssets      FieldKey = "비유동자산"
	FieldTotalLiabilities      FieldKey = "부채총계"
	FieldCurrentLiabilities    FieldKey = "유동부채"
	FieldNonCurrentLiabilities FieldKey = "비유동부채"
	FieldTotalEquity           FieldKey = "자본총계"

	// Balance sheet detail
	FieldCash                FieldKey = "현금및현금성자산"
	FieldTradeReceivables    FieldKey = "매출채권"
	FieldInventories         FieldKey = "재고자산"
	FieldShortTermBorrowings FieldKey = "단기차입금"
	FieldLongTermBorrowings  FieldKey = "장기차입금"

	// Prior-year comparatives
	FieldPriorRevenue         FieldKey = "전년매출액"
	FieldPriorOperatingIncome FieldKey = "전년영업이익"
	FieldPriorNetIncome       FieldKey = "전년당기순이익"
)

// CompanyBasicInfo is the descriptive part of a company record. The analysis
// core passes it through untouched.
type CompanyBasicInfo struct {
	StockCode    string `json:"종목코드"`
	Market       string `json:"시장구분"`
	IndustryCode string `json:"업종"`
	IndustryName string `json:"업종명"`
	FiscalMonth  string `json:"결산월"`
	FiscalDate   string `json:"결산기준일"`
	ReportKind   string `json:"보고서종류"`
	Currency     string `json:"통화"`
}

// RawFinancialData is a partial financial record as stored in the dataset.
// Any key may be absent, null, a number or a numeric string.
type RawFinancialData map[string]interface{}

// CompanyRecord is one company entry of the financial database.
type CompanyRecord struct {
	BasicInfo     CompanyBasicInfo `json:"basicInfo"`
	FinancialData RawFinancialData `json:"financialData"`
}

// ExtractedFinancialData holds all eighteen input figures. Every field is
// present; absence is expressed as Unknown, never as zero.
type ExtractedFinancialData struct {
	Revenue         Value `json:"매출액"`
	OperatingIncome Value `json:"영업이익"`
	NetIncome       Value `json:"당기순이익"`

	TotalAssets           Value `json:"자산총계"`
	CurrentAssets         Value `json:"유동자산"`
	NonCurrentAssets      Value `json:"비유동자산"`
	TotalLiabilities      Value `json:"부채총계"`
	CurrentLiabilities    Value `json:"유동부채"`
	NonCurrentLiabilities Value `json:"비유동부채"`
	TotalEquity           Value `json:"자본총계"`

	Cash                Value `json:"현금및현금성자산"`
	TradeReceivables    Value `json:"매출채권"`
	Inventories         Value `json:"재고자산"`
	ShortTermBorrowings Value `json:"단기차입금"`
	LongTermBorrowings  Value `json:"장기차입금"`

	PriorRevenue         Value `json:"전년매출액"`
	PriorOperatingIncome Value `json:"전년영업이익"`
	PriorNetIncome       Value `json:"전년당기순이익"`
}

// FinancialField binds a dataset key to its slot in ExtractedFinancialData.
type FinancialField struct {
	Key   FieldKey
	Label string
	Value *Value
}

// Fields lists every figure of d in dataset order.
func (d *ExtractedFinancialData) Fields() []FinancialField {
	return []FinancialField{
		{FieldRevenue, "Revenue", &d.Revenue},
		{FieldOperatingIncome, "Operating income", &d.OperatingIncome},
		{FieldNetIncome, "Net income", &d.NetIncome},
		{FieldTotalAssets, "Total assets", &d.TotalAssets},
		{FieldCurrentAssets, "Current assets", &d.CurrentAssets},
		{FieldNonCurrentAssets, "Non-current assets", &d.NonCurrentAssets},
		{FieldTotalLiabilities, "Total liabilities", &d.TotalLiabilities},
		{FieldCurrentLiabilities, "Current liabilities", &d.CurrentLiabilities},
		{FieldNonCurrentLiabilities, "Non-current liabilities", &d.NonCurrentLiabilities},
		{FieldTotalEquity, "Total equity", &d.TotalEquity},
		{FieldCash, "Cash and equivalents", &d.Cash},
		{FieldTradeReceivables, "Trade receivables", &d.TradeReceivables},
		{FieldInventories, "Inventories", &d.Inventories},
		{FieldShortTermBorrowings, "Short-term borrowings", &d.ShortTermBorrowings},
		{FieldLongTermBorrowings, "Long-term borrowings", &d.LongTermBorrowings},
		{FieldPriorRevenue, "Prior-year revenue", &d.PriorRevenue},
		{FieldPriorOperatingIncome, "Prior-year operating income", &d.PriorOperatingIncome},
		{FieldPriorNetIncome, "Prior-year net income", &d.PriorNetIncome},
	}
}

// ProfitabilityRatios are percentages.
type ProfitabilityRatios struct {
	OperatingMargin Value `json:"영업이익률"`
	NetMargin       Value `json:"순이익률"`
	ROA             Value `json:"ROA"`
	ROE             Value `json:"ROE"`
}

// StabilityRatios are percentages.
type StabilityRatios struct {
	DebtRatio    Value `json:"부채비율"`
	CurrentRatio Value `json:"유동비율"`
	EquityRatio  Value `json:"자기자본비율"`
}

// GrowthRatios are percentages.
type GrowthRatios struct {
	RevenueGrowth         Value `json:"매출액증가율"`
	OperatingIncomeGrowth Value `json:"영업이익증가율"`
}

// ActivityRatios are turnover counts per period.
type ActivityRatios struct {
	AssetTurnover     Value `json:"총자산회전율"`
	InventoryTurnover Value `json:"재고자산회전율"`
}

// FinancialRatios groups the derived ratios into the four scoring categories.
type FinancialRatios struct {
	Profitability ProfitabilityRatios `json:"수익성"`
	Stability     StabilityRatios     `json:"안정성"`
	Growth        GrowthRatios        `json:"성장성"`
	Activity      ActivityRatios      `json:"활동성"`
}

// Grade is the letter grade, S being the highest.
type Grade string

const (
	GradeS Grade = "S"
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
)

// CompanyEvaluation is the scored verdict for one company.
type CompanyEvaluation struct {
	TotalScore         int    `json:"총점"`
	Grade              Grade  `json:"등급"`
	Status             string `json:"상태"`
	Color              string `json:"색상"`
	Emoji              string `json:"이모지"`
	ProfitabilityScore int    `json:"수익성점수"`
	StabilityScore     int    `json:"안정성점수"`
	GrowthScore        int    `json:"성장성점수"`
	ActivityScore      int    `json:"활동성점수"`
}

// AnalysisResult is the full output of one analysis run.
type AnalysisResult struct {
	CompanyName     string                 `json:"companyName"`
	BasicInfo       CompanyBasicInfo       `json:"basicInfo"`
	ExtractedData   ExtractedFinancialData `json:"extractedData"`
	Ratios          FinancialRatios        `json:"ratios"`
	Evaluation      CompanyEvaluation      `json:"evaluation"`
	Recommendations []string               `json:"recommendations"`
}

// CompanyAnalysis is an AnalysisResult plus how the company was matched.
type CompanyAnalysis struct {
	Result         *AnalysisResult `json:"data"`
	MatchedName    string          `json:"matchedName"`
	UsedExactMatch bool            `json:"usedExactMatch"`
}

// UnmarshalJSON keeps every value as raw JSON so figures are later parsed
// straight into decimals without a float64 round trip.
func (r *RawFinancialData) UnmarshalJSON(data []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	out := make(RawFinancialData, len(m))
	for k, v := range m {
		out[k] = v
	}
	*r = out
	return nil
}
