package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propnest/realty/backend/internal/model/lead"
	"github.com/propnest/realty/backend/internal/model/property"
	"github.com/propnest/realty/backend/internal/model/report"
	chatService "github.com/propnest/realty/backend/internal/service/chat"
	contactService "github.com/propnest/realty/backend/internal/service/contact"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	chatSvc := chatService.NewService(chatService.Config{TypingDelay: 10 * time.Millisecond})
	t.Cleanup(chatSvc.Close)

	leads := lead.NewMemoryStore()
	return NewRouter(Dependencies{
		Chat:           chatSvc,
		Contact:        contactService.NewService(nil, leads),
		Properties:     property.NewMemoryStore(property.Seed()),
		Leads:          leads,
		Reports:        report.NewLibrary(report.Seed()),
		AllowedOrigins: []string{"https://propnest.in"},
	})
}

func TestRouterServesAPI(t *testing.T) {
	r := newTestRouter(t)

	cases := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/healthz", http.StatusOK},
		{http.MethodPost, "/api/chat/sessions", http.StatusCreated},
		{http.MethodGet, "/api/properties?location=mumbai", http.StatusOK},
		{http.MethodGet, "/api/reports/reit-taxation", http.StatusOK},
		{http.MethodGet, "/api/calculators", http.StatusOK},
		{http.MethodGet, "/api/admin/leads", http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		assert.Equal(t, tc.status, resp.Code, "%s %s", tc.method, tc.path)
	}
}

func TestRouterCORS(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/properties", nil)
	req.Header.Set("Origin", "https://propnest.in")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, "https://propnest.in", resp.Header().Get("Access-Control-Allow-Origin"))
}

func TestChatSessionEndToEnd(t *testing.T) {
	r := newTestRouter(t)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/chat/sessions", nil))
	require.Equal(t, http.StatusCreated, resp.Code)

	var view struct {
		Session struct {
			ID string `json:"id"`
		} `json:"session"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	require.NotEmpty(t, view.Session.ID)

	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/chat/sessions/"+view.Session.ID, nil))
	assert.Equal(t, http.StatusOK, resp.Code)
}
