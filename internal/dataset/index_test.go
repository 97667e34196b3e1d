package dataset

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"company-analyzer/internal/api"
)

func TestIndexClientCompanyNames(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"companyNames":["삼성전자","가나",42,null,"삼성전자","나다"]}`))
	}))
	defer srv.Close()

	names, err := NewIndexClient(srv.URL, nil).CompanyNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"가나", "나다", "삼성전자"}, names)
}

func TestIndexClientNonArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"companyNames":"oops"}`))
	}))
	defer srv.Close()

	names, err := NewIndexClient(srv.URL, nil).CompanyNames(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestIndexClientErrors(t *testing.T) {
	_, err := NewIndexClient("", nil).CompanyNames(context.Background())
	assert.ErrorIs(t, err, ErrIndexNotConfigured)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err = NewIndexClient(srv.URL, nil).CompanyNames(context.Background())
	var statusErr *api.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
}
