package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"company-analyzer/internal/api"
	"company-analyzer/internal/interfaces"
	"company-analyzer/internal/store"
	"company-analyzer/internal/types"
)

// FileSource reads the database from a local JSON file.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Load(ctx context.Context) (*types.FinancialDatabase, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	return Decode(b)
}

func (s *FileSource) Describe() string {
	return "file:" + s.path
}

// RemoteSource downloads the database over HTTP.
type RemoteSource struct {
	url    string
	client *api.Client
	retry  *api.RetryConfig
}

func NewRemoteSource(url string, client *api.Client, retry *api.RetryConfig) *RemoteSource {
	if client == nil {
		client = api.NewClient()
	}
	return &RemoteSource{url: url, client: client, retry: retry}
}

func (s *RemoteSource) Load(ctx context.Context) (*types.FinancialDatabase, error) {
	resp, err := s.client.GETWithRetry(ctx, s.url, s.retry)
	if err != nil {
		return nil, fmt.Errorf("download database: %w", err)
	}
	return Decode(resp.Body)
}

func (s *RemoteSource) Describe() string {
	return "remote:" + s.url
}

// NewSource creates the database source selected by configuration.
func NewSource(cfg *store.Config) (interfaces.DatabaseSource, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}

	if cfg.Dataset.UseLocal {
		return NewFileSource(cfg.Dataset.LocalPath), nil
	}
	if cfg.Dataset.RemoteURL == "" {
		return nil, errors.New("FINANCIAL_DATABASE_URL is not set")
	}

	client := api.NewClient(
		api.WithTimeout(cfg.HTTP.Timeout),
		api.WithLogging(cfg.HTTP.LogRequests),
	)
	retry := &api.RetryConfig{
		MaxAttempts: cfg.HTTP.MaxAttempts,
		InitialWait: cfg.HTTP.InitialWait,
		MaxWait:     cfg.HTTP.MaxWait,
	}
	return NewRemoteSource(cfg.Dataset.RemoteURL, client, retry), nil
}

// Decode parses a database document. Missing search index parts are
// derived from the companies section.
func Decode(b []byte) (*types.FinancialDatabase, error) {
	var db types.FinancialDatabase
	if err := json.Unmarshal(b, &db); err != nil {
		return nil, fmt.Errorf("decode database: %w", err)
	}
	if db.Companies == nil {
		return nil, errors.New("decode database: companies section is missing")
	}

	if db.Metadata.TotalCompanies == 0 {
		db.Metadata.TotalCompanies = len(db.Companies)
	}
	if len(db.SearchIndex.CompanyNames) == 0 {
		names := make([]string, 0, len(db.Companies))
		for name := range db.Companies {
			names = append(names, name)
		}
		sortKorean(names)
		db.SearchIndex.CompanyNames = names
	}
	if db.SearchIndex.IndustryMap == nil {
		db.SearchIndex.IndustryMap = map[string][]string{}
	}
	if db.SearchIndex.MarketMap == nil {
		db.SearchIndex.MarketMap = map[string][]string{}
	}
	return &db, nil
}
