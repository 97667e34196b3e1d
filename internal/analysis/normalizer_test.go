package analysis

import (
	"encoding/json"
	"math"
	"testing"

	"company-analyzer/internal/types"
)

func TestNormalizeFillsEveryField(t *testing.T) {
	data := Normalize(types.RawFinancialData{})

	for _, f := range data.Fields() {
		if f.Value.IsKnown() {
			t.Errorf("Expected %s to be unknown", f.Key)
		}
	}
}

func TestNormalizeParsesMixedInput(t *testing.T) {
	raw := types.RawFinancialData{}
	raw[string(types.FieldRevenue)] = "1,250,000"
	raw[string(types.FieldOperatingIncome)] = 125000.5
	raw[string(types.FieldNetIncome)] = nil
	raw[string(types.FieldTotalAssets)] = math.Inf(1)
	raw[string(types.FieldTotalEquity)] = "n/a"
	raw[string(types.FieldInventories)] = json.Number("42")
	raw["비상장여부"] = true

	data := Normalize(raw)

	if d, ok := data.Revenue.Decimal(); !ok || !d.Equal(dec("1250000")) {
		t.Errorf("Expected revenue 1250000, got %v", data.Revenue)
	}
	if d, ok := data.OperatingIncome.Decimal(); !ok || !d.Equal(dec("125000.5")) {
		t.Errorf("Expected operating income 125000.5, got %v", data.OperatingIncome)
	}
	if d, ok := data.Inventories.Decimal(); !ok || !d.Equal(dec("42")) {
		t.Errorf("Expected inventories 42, got %v", data.Inventories)
	}
	for name, v := range map[string]types.Value{
		"net income":   data.NetIncome,
		"total assets": data.TotalAssets,
		"total equity": data.TotalEquity,
	} {
		if v.IsKnown() {
			t.Errorf("Expected %s to be unknown, got %v", name, v)
		}
	}
}

func TestNormalizeRawJSON(t *testing.T) {
	var raw types.RawFinancialData
	if err := json.Unmarshal([]byte(`{"매출액": 0.1, "영업이익": "0.01", "당기순이익": null, "자산총계": {"x": 1}}`), &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	data := Normalize(raw)

	if d, ok := data.Revenue.Decimal(); !ok || d.String() != "0.1" {
		t.Errorf("Expected revenue exactly 0.1, got %v", data.Revenue)
	}
	if d, ok := data.OperatingIncome.Decimal(); !ok || d.String() != "0.01" {
		t.Errorf("Expected operating income exactly 0.01, got %v", data.OperatingIncome)
	}
	if data.NetIncome.IsKnown() || data.TotalAssets.IsKnown() {
		t.Error("Expected null and object values to be unknown")
	}
}
