package types

// DatabaseMetadata describes a build of the financial database.
type DatabaseMetadata struct {
	BuildDate      string `json:"buildDate"`
	TotalCompanies int    `json:"totalCompanies"`
	TotalFiles     int    `json:"totalFiles,omitempty"`
	Industries     int    `json:"industries,omitempty"`
	Markets        int    `json:"markets,omitempty"`
	Version        string `json:"version,omitempty"`
}

// SearchIndex is the precomputed lookup section of the database.
type SearchIndex struct {
	CompanyNames []string            `json:"companyNames"`
	IndustryMap  map[string][]string `json:"industryMap"`
	MarketMap    map[string][]string `json:"marketMap"`
}

// FinancialDatabase is the static dataset every lookup is served from.
// It is treated as read-only once loaded.
type FinancialDatabase struct {
	Metadata    DatabaseMetadata         `json:"metadata"`
	Companies   map[string]CompanyRecord `json:"companies"`
	SearchIndex SearchIndex              `json:"searchIndex"`
}
