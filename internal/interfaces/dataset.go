package interfaces

import (
	"context"
	"time"

	"company-analyzer/internal/types"
)

// DatabaseSource loads the financial database from somewhere
type DatabaseSource interface {
	// Load reads and decodes a full copy of the database
	Load(ctx context.Context) (*types.FinancialDatabase, error)

	// Describe names the source for logs
	Describe() string
}

// CompanyRepository serves company lookups from the loaded database
type CompanyRepository interface {
	// Database returns the current database snapshot
	Database(ctx context.Context) (*types.FinancialDatabase, error)

	// FindByExactName returns the record stored under exactly this name
	FindByExactName(ctx context.Context, name string) (*types.CompanyRecord, bool, error)

	// SearchByName returns up to limit names matching term, best first
	SearchByName(ctx context.Context, term string, limit int) ([]string, error)

	// Suggestions returns autocomplete candidates for term
	Suggestions(ctx context.Context, term string, limit int) ([]string, error)

	// ByIndustry lists the companies of an industry
	ByIndustry(ctx context.Context, industry string) ([]string, error)

	// ByMarket lists the companies listed on a market
	ByMarket(ctx context.Context, market string) ([]string, error)

	// Industries lists all industry names, sorted
	Industries(ctx context.Context) ([]string, error)

	// Markets lists all market names, sorted
	Markets(ctx context.Context) ([]string, error)

	// Metadata returns the database build metadata
	Metadata(ctx context.Context) (types.DatabaseMetadata, error)
}

// CacheController exposes the dataset cache state
type CacheController interface {
	ClearCache()
	CacheStatus() CacheStatus
}

// CacheStatus reports whether a database copy is cached and for how long
type CacheStatus struct {
	HasCache  bool          `json:"hasCache"`
	ExpiresIn time.Duration `json:"expiresIn"`
}

// CompanyIndex serves the externally hosted list of company names
type CompanyIndex interface {
	CompanyNames(ctx context.Context) ([]string, error)
}
