package dataset

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(NewFileSource(fixturePath), time.Minute)
}

func TestFindByExactName(t *testing.T) {
	s := fixtureStore(t)
	ctx := context.Background()

	rec, ok, err := s.FindByExactName(ctx, "삼성전자")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "005930", rec.BasicInfo.StockCode)

	_, ok, err = s.FindByExactName(ctx, "삼성")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSearchByName(t *testing.T) {
	s := fixtureStore(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		term  string
		limit int
		want  []string
	}{
		{"exact first", "삼성전자", 5, []string{"삼성전자", "삼성전자우"}},
		{"substring in index order", "삼성", 5, []string{"삼성전자", "삼성SDI", "삼성전자우"}},
		{"capped", "삼성", 2, []string{"삼성전자", "삼성SDI"}},
		{"case insensitive", "naver", 5, []string{"NAVER"}},
		{"mixed script", "sdi", 5, []string{"삼성SDI"}},
		{"no match", "현대", 5, []string{}},
		{"empty term", "", 5, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.SearchByName(ctx, tt.term, tt.limit)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSuggestions(t *testing.T) {
	s := fixtureStore(t)
	ctx := context.Background()

	got, err := s.Suggestions(ctx, "전자", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"삼성전자", "삼성전자우", "LG전자"}, got)

	got, err = s.Suggestions(ctx, "LG", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"LG전자"}, got)

	got, err = s.Suggestions(ctx, "", 10)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestIndustryAndMarketQueries(t *testing.T) {
	s := fixtureStore(t)
	ctx := context.Background()

	got, err := s.ByIndustry(ctx, "소프트웨어")
	require.NoError(t, err)
	assert.Equal(t, []string{"카카오", "NAVER"}, got)

	got, err = s.ByMarket(ctx, "KONEX")
	require.NoError(t, err)
	assert.Empty(t, got)

	industries, err := s.Industries(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"소프트웨어", "전자부품"}, industries)

	markets, err := s.Markets(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"KOSPI", "KOSDAQ"}, markets)

	meta, err := s.Metadata(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, meta.TotalCompanies)
}

func TestDecodeDerivesIndex(t *testing.T) {
	db, err := Decode([]byte(`{"metadata":{},"companies":{"나다":{},"가나":{}}}`))
	require.NoError(t, err)
	assert.Equal(t, 2, db.Metadata.TotalCompanies)
	assert.Equal(t, []string{"가나", "나다"}, db.SearchIndex.CompanyNames)
	assert.NotNil(t, db.SearchIndex.IndustryMap)

	_, err = Decode([]byte(`{"metadata":{}}`))
	assert.Error(t, err)
}
