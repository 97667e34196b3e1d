package analysis

import (
	"company-analyzer/internal/types"
)

// Normalize turns a partial dataset record into a complete
// ExtractedFinancialData. Absent keys, nulls and values that do not parse as
// finite numbers all become types.Unknown; nothing is rescaled.
func Normalize(raw types.RawFinancialData) types.ExtractedFinancialData {
	var data types.ExtractedFinancialData
	for _, field := range data.Fields() {
		v, ok := raw[string(field.Key)]
		if !ok {
			*field.Value = types.Unknown
			continue
		}
		*field.Value = types.ParseValue(v)
	}
	return data
}
