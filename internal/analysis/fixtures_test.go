package analysis

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"company-analyzer/internal/types"
)

// sampleJSON is a mid-sized manufacturer with every figure present.
const sampleJSON = `{
	"매출액": 1000000,
	"영업이익": 100000,
	"당기순이익": 80000,
	"자산총계": 2000000,
	"유동자산": 800000,
	"비유동자산": 1200000,
	"부채총계": 1000000,
	"유동부채": 400000,
	"비유동부채": 600000,
	"자본총계": 1000000,
	"현금및현금성자산": 300000,
	"매출채권": 200000,
	"재고자산": 100000,
	"단기차입금": 200000,
	"장기차입금": 300000,
	"전년매출액": 900000,
	"전년영업이익": 90000,
	"전년당기순이익": 70000
}`

func sampleRaw(t *testing.T) types.RawFinancialData {
	t.Helper()
	var raw types.RawFinancialData
	require.NoError(t, json.Unmarshal([]byte(sampleJSON), &raw))
	return raw
}

func sampleData(t *testing.T) types.ExtractedFinancialData {
	return Normalize(sampleRaw(t))
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func val(s string) types.Value {
	return types.Known(dec(s))
}

// requireValue asserts v is known and equal to want.
func requireValue(t *testing.T, want string, v types.Value, msgAndArgs ...interface{}) {
	t.Helper()
	d, ok := v.Decimal()
	require.True(t, ok, msgAndArgs...)
	require.Truef(t, d.Equal(dec(want)), "want %s, got %s", want, d)
}
