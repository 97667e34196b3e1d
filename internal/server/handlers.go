package server

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"company-analyzer/internal/analysis"
	"company-analyzer/internal/api"
	"company-analyzer/internal/dataset"
	"company-analyzer/internal/logger"
	"company-analyzer/internal/types"
)

const maxSuggestLimit = 50

// CompanyResponse is the body of a successful company analysis.
type CompanyResponse struct {
	Success        bool                  `json:"success"`
	Data           *types.AnalysisResult `json:"data"`
	UsedExactMatch bool                  `json:"usedExactMatch"`
}

// DatabaseResponse carries the whole dataset.
type DatabaseResponse struct {
	Success bool                     `json:"success"`
	DB      *types.FinancialDatabase `json:"db"`
}

// SearchResponse is the external company index.
type SearchResponse struct {
	CompanyNames []string `json:"companyNames"`
	Total        int      `json:"total"`
}

// CacheStatusResponse reports the dataset cache; ExpiresIn is milliseconds.
type CacheStatusResponse struct {
	HasCache  bool  `json:"hasCache"`
	ExpiresIn int64 `json:"expiresIn"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDatabase(w http.ResponseWriter, r *http.Request) {
	db, err := s.deps.Repo.Database(r.Context())
	if err != nil {
		logger.ErrorWithErr(r.Context(), "Failed to load company database", err)
		failed := false
		writeError(w, r, http.StatusInternalServerError, ErrorResponse{
			Success: &failed,
			Error:   "데이터베이스를 불러오지 못했습니다",
			Message: err.Error(),
		})
		return
	}
	s.writeCached(w, r, DatabaseResponse{Success: true, DB: db})
}

func (s *Server) handleCompany(w http.ResponseWriter, r *http.Request) {
	name := pathParam(r, "name")
	if strings.TrimSpace(name) == "" {
		writeError(w, r, http.StatusBadRequest, ErrorResponse{
			Error:   "회사명이 필요합니다",
			Message: "company name is required",
		})
		return
	}

	result, err := s.deps.Analyzer.AnalyzeCompany(r.Context(), name)
	if err != nil {
		var notFound *analysis.NotFoundError
		if errors.As(err, &notFound) {
			writeError(w, r, http.StatusNotFound, notFoundBody(name, notFound.Suggestions))
			return
		}
		writeError(w, r, statusFor(err), ErrorResponse{
			Error:   "서버 오류가 발생했습니다",
			Message: err.Error(),
		})
		return
	}

	writeJSON(w, r, http.StatusOK, CompanyResponse{
		Success:        true,
		Data:           result.Result,
		UsedExactMatch: result.UsedExactMatch,
	})
}

func notFoundBody(name string, suggestions []string) NotFoundResponse {
	if len(suggestions) == 0 {
		return NotFoundResponse{
			Error:       "검색 결과가 없습니다",
			Message:     fmt.Sprintf("%q와 일치하는 회사를 찾을 수 없습니다.", name),
			Suggestions: []string{},
		}
	}
	return NotFoundResponse{
		Error:       "데이터를 찾을 수 없습니다",
		Message:     "검색 결과는 있지만 데이터를 로드할 수 없습니다.",
		Suggestions: suggestions,
	}
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	names, err := s.deps.Index.CompanyNames(r.Context())
	if err != nil {
		var statusErr *api.StatusError
		switch {
		case errors.Is(err, dataset.ErrIndexNotConfigured):
			writeError(w, r, http.StatusInternalServerError, ErrorResponse{
				Error: "COMPANY_INDEX_URL is not configured",
			})
		case errors.As(err, &statusErr):
			writeError(w, r, http.StatusBadGateway, ErrorResponse{
				Error: fmt.Sprintf("Failed to fetch company index: %d", statusErr.StatusCode),
			})
		default:
			logger.ErrorWithErr(r.Context(), "Company index request failed", err)
			writeError(w, r, http.StatusInternalServerError, ErrorResponse{
				Error:   "검색 중 오류가 발생했습니다",
				Message: err.Error(),
			})
		}
		return
	}

	w.Header().Set("Cache-Control", noStore)
	writeJSON(w, r, http.StatusOK, SearchResponse{CompanyNames: names, Total: len(names)})
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	limit := s.cfg.Search.SuggestionLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, r, http.StatusBadRequest, ErrorResponse{
				Error: fmt.Sprintf("invalid limit %q", raw),
			})
			return
		}
		limit = min(n, maxSuggestLimit)
	}

	suggestions, err := s.deps.Repo.Suggestions(r.Context(), q, limit)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string][]string{"suggestions": suggestions})
}

func (s *Server) handleIndustries(w http.ResponseWriter, r *http.Request) {
	industries, err := s.deps.Repo.Industries(r.Context())
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	s.writeCached(w, r, map[string][]string{"industries": industries})
}

func (s *Server) handleIndustryCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := s.deps.Repo.ByIndustry(r.Context(), pathParam(r, "industry"))
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	s.writeCached(w, r, map[string][]string{"companies": companies})
}

func (s *Server) handleMarkets(w http.ResponseWriter, r *http.Request) {
	markets, err := s.deps.Repo.Markets(r.Context())
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	s.writeCached(w, r, map[string][]string{"markets": markets})
}

func (s *Server) handleMarketCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := s.deps.Repo.ByMarket(r.Context(), pathParam(r, "market"))
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	s.writeCached(w, r, map[string][]string{"companies": companies})
}

func (s *Server) handleMetadata(w http.ResponseWriter, r *http.Request) {
	meta, err := s.deps.Repo.Metadata(r.Context())
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]types.DatabaseMetadata{"metadata": meta})
}

func (s *Server) handleCacheStatus(w http.ResponseWriter, r *http.Request) {
	status := s.deps.Cache.CacheStatus()
	w.Header().Set("Cache-Control", noStore)
	writeJSON(w, r, http.StatusOK, CacheStatusResponse{
		HasCache:  status.HasCache,
		ExpiresIn: status.ExpiresIn.Milliseconds(),
	})
}

func (s *Server) handleCacheClear(w http.ResponseWriter, r *http.Request) {
	s.deps.Cache.ClearCache()
	logger.Info(r.Context(), "Dataset cache cleared")
	w.Header().Set("Cache-Control", noStore)
	writeJSON(w, r, http.StatusOK, map[string]bool{"success": true})
}

// writeFailure maps a dataset error onto a status code.
func (s *Server) writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	logger.ErrorWithErr(r.Context(), "Request failed", err, "path", r.URL.Path)
	writeError(w, r, statusFor(err), ErrorResponse{
		Error:   "서버 오류가 발생했습니다",
		Message: err.Error(),
	})
}

func statusFor(err error) int {
	if errors.Is(err, dataset.ErrDatabaseUnavailable) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// pathParam returns the decoded chi URL parameter.
func pathParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}
