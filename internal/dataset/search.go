package dataset

import (
	"context"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"company-analyzer/internal/types"
)

// DefaultSearchLimit caps SearchByName and Suggestions when limit <= 0.
const DefaultSearchLimit = 10

func fold(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}

func foldAll(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = fold(n)
	}
	return out
}

// sortKorean sorts names in Korean collation order. A collator is not
// safe for concurrent use, so one is built per call.
func sortKorean(names []string) {
	collate.New(language.Korean).SortStrings(names)
}

// FindByExactName returns the record stored under name.
func (s *Store) FindByExactName(ctx context.Context, name string) (*types.CompanyRecord, bool, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, false, err
	}
	if rec, ok := snap.db.Companies[name]; ok {
		return &rec, true, nil
	}
	if nfc := norm.NFC.String(name); nfc != name {
		if rec, ok := snap.db.Companies[nfc]; ok {
			return &rec, true, nil
		}
	}
	return nil, false, nil
}

// SearchByName returns names equal to term (ignoring case) followed by
// names containing it, without duplicates, at most limit long.
func (s *Store) SearchByName(ctx context.Context, term string, limit int) ([]string, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	needle := fold(term)
	if needle == "" {
		return []string{}, nil
	}

	names := snap.db.SearchIndex.CompanyNames
	var exact, partial []int
	for i, f := range snap.folded {
		switch {
		case f == needle:
			exact = append(exact, i)
		case strings.Contains(f, needle):
			partial = append(partial, i)
		}
	}
	return collect(names, limit, exact, partial), nil
}

// Suggestions returns autocomplete candidates: names starting with term,
// then names containing it elsewhere.
func (s *Store) Suggestions(ctx context.Context, term string, limit int) ([]string, error) {
	if term == "" {
		return []string{}, nil
	}
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	needle := fold(term)

	names := snap.db.SearchIndex.CompanyNames
	var prefix, contains []int
	for i, f := range snap.folded {
		switch {
		case strings.HasPrefix(f, needle):
			prefix = append(prefix, i)
		case strings.Contains(f, needle):
			contains = append(contains, i)
		}
	}
	return collect(names, limit, prefix, contains), nil
}

// collect concatenates the index buckets in order, dropping repeated names.
func collect(names []string, limit int, buckets ...[]int) []string {
	out := make([]string, 0, limit)
	seen := make(map[string]struct{})
	for _, bucket := range buckets {
		for _, i := range bucket {
			if len(out) == limit {
				return out
			}
			if _, dup := seen[names[i]]; dup {
				continue
			}
			seen[names[i]] = struct{}{}
			out = append(out, names[i])
		}
	}
	return out
}

// ByIndustry lists the companies filed under industry.
func (s *Store) ByIndustry(ctx context.Context, industry string) ([]string, error) {
	db, err := s.Database(ctx)
	if err != nil {
		return nil, err
	}
	return copyOrEmpty(db.SearchIndex.IndustryMap[industry]), nil
}

// ByMarket lists the companies listed on market.
func (s *Store) ByMarket(ctx context.Context, market string) ([]string, error) {
	db, err := s.Database(ctx)
	if err != nil {
		return nil, err
	}
	return copyOrEmpty(db.SearchIndex.MarketMap[market]), nil
}

func (s *Store) Industries(ctx context.Context) ([]string, error) {
	db, err := s.Database(ctx)
	if err != nil {
		return nil, err
	}
	return sortedKeys(db.SearchIndex.IndustryMap), nil
}

func (s *Store) Markets(ctx context.Context) ([]string, error) {
	db, err := s.Database(ctx)
	if err != nil {
		return nil, err
	}
	return sortedKeys(db.SearchIndex.MarketMap), nil
}

func (s *Store) Metadata(ctx context.Context) (types.DatabaseMetadata, error) {
	db, err := s.Database(ctx)
	if err != nil {
		return types.DatabaseMetadata{}, err
	}
	return db.Metadata, nil
}

func copyOrEmpty(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sortKorean(keys)
	return keys
}
