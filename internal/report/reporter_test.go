package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"company-analyzer/internal/analysis"
	"company-analyzer/internal/types"
)

func sampleResult() *types.AnalysisResult {
	raw := types.RawFinancialData{
		string(types.FieldRevenue):            "1000000",
		string(types.FieldOperatingIncome):    "100000",
		string(types.FieldNetIncome):          "80000",
		string(types.FieldTotalAssets):        "2000000",
		string(types.FieldTotalEquity):        "1000000",
		string(types.FieldTotalLiabilities):   "1000000",
		string(types.FieldCurrentAssets):      "800000",
		string(types.FieldCurrentLiabilities): "400000",
		string(types.FieldPriorRevenue):       "900000",
	}
	return analysis.Analyze("삼성전자", types.CompanyRecord{
		BasicInfo:     types.CompanyBasicInfo{StockCode: "005930", Market: "KOSPI", IndustryName: "전자부품"},
		FinancialData: raw,
	})
}

func fixedReporter(dir string) *Reporter {
	r := NewReporter(dir)
	r.now = func() time.Time { return time.Date(2024, 3, 31, 9, 30, 0, 0, time.UTC) }
	return r
}

func TestTextReport(t *testing.T) {
	result := sampleResult()
	out, err := fixedReporter("").GenerateReport(result, FormatText)
	require.NoError(t, err)

	band, ok := analysis.DescribeGrade(result.Evaluation.Grade)
	require.True(t, ok)
	assert.Contains(t, out, fmt.Sprintf("Grade Band: %d and above", band.MinScore))

	assert.Contains(t, out, "FINANCIAL ANALYSIS REPORT - 삼성전자")
	assert.Contains(t, out, "Generated: 2024-03-31 09:30:00")
	assert.Contains(t, out, "영업이익률: 10.00% (score 80)")
	assert.Contains(t, out, "재고자산회전율: N/A (score -)")
	assert.Contains(t, out, "총자산회전율: 0.50회")
	assert.Contains(t, out, "END OF REPORT")
}

func TestJSONReport(t *testing.T) {
	out, err := fixedReporter("").GenerateReport(sampleResult(), FormatJSON)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "삼성전자", decoded["companyName"])
}

func TestCSVReport(t *testing.T) {
	out, err := fixedReporter("").GenerateReport(sampleResult(), FormatCSV)
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"category", "metric", "value"}, rows[0])
	assert.Contains(t, rows, []string{"profitability", "operating_margin", "10.00"})
	assert.Contains(t, rows, []string{"activity", "inventory_turnover", "N/A"})
}

func TestSaveReport(t *testing.T) {
	dir := t.TempDir()
	path, err := fixedReporter(dir).SaveReport(sampleResult(), FormatText)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "삼성전자_analysis_2024-03-31_09-30-00.txt"), path)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Total Score")
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("CSV")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	_, err = ParseFormat("pdf")
	assert.Error(t, err)
}

func TestSafeFileName(t *testing.T) {
	assert.Equal(t, "A_B_C", safeFileName("A/B C"))
	assert.Equal(t, "company", safeFileName("  "))
}
