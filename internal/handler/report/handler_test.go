package report

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propnest/realty/backend/internal/model/report"
)

func TestReportRoutes(t *testing.T) {
	r := chi.NewRouter()
	New(report.NewLibrary(report.Seed())).RegisterRoutes(r)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/reports", nil))
	require.Equal(t, http.StatusOK, resp.Code)

	var list []report.Report
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list, 3)
	assert.Empty(t, list[0].Sections)

	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/reports/valuation", nil))
	require.Equal(t, http.StatusOK, resp.Code)

	var full report.Report
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&full))
	assert.Equal(t, "valuation", full.Slug)
	assert.NotEmpty(t, full.Sections)

	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/reports/astrology", nil))
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
