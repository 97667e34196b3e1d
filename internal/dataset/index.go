package dataset

import (
	"context"
	"encoding/json"
	"fmt"

	"company-analyzer/internal/api"
)

// IndexClient reads the externally hosted company-name index.
type IndexClient struct {
	url    string
	client *api.Client
}

func NewIndexClient(url string, client *api.Client) *IndexClient {
	if client == nil {
		client = api.NewClient()
	}
	return &IndexClient{url: url, client: client}
}

// CompanyNames fetches the index and returns its string entries,
// deduplicated and sorted in Korean collation order. Upstream HTTP
// failures surface as *api.StatusError.
func (c *IndexClient) CompanyNames(ctx context.Context) ([]string, error) {
	if c.url == "" {
		return nil, ErrIndexNotConfigured
	}

	resp, err := c.client.GET(ctx, c.url, map[string]string{"Cache-Control": "no-store"})
	if err != nil {
		return nil, fmt.Errorf("fetch company index: %w", err)
	}

	var payload struct {
		CompanyNames json.RawMessage `json:"companyNames"`
	}
	if err := resp.ParseJSON(&payload); err != nil {
		return nil, err
	}

	var entries []interface{}
	if err := json.Unmarshal(payload.CompanyNames, &entries); err != nil {
		entries = nil
	}

	names := make([]string, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		name, ok := e.(string)
		if !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sortKorean(names)
	return names, nil
}
