package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adminModel "github.com/propnest/realty/backend/internal/model/admin"
	"github.com/propnest/realty/backend/internal/model/lead"
	"github.com/propnest/realty/backend/internal/model/property"
	"github.com/propnest/realty/backend/internal/service/auth"
)

func setupRouter(t *testing.T) (*chi.Mux, *property.MemoryStore, *lead.MemoryStore) {
	t.Helper()
	authSvc, err := auth.NewService(adminModel.NewMemoryCredentials(), auth.Config{TokenSecret: "test-secret", TokenTTL: time.Hour})
	require.NoError(t, err)
	require.NoError(t, authSvc.EnsureAdmin(context.Background(), "admin", "s3cret"))

	properties := property.NewMemoryStore(property.Seed())
	leads := lead.NewMemoryStore()

	r := chi.NewRouter()
	New(authSvc, properties, leads).RegisterRoutes(r)
	return r, properties, leads
}

func do(r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func login(t *testing.T, r http.Handler) string {
	t.Helper()
	resp := do(r, http.MethodPost, "/admin/login", "", map[string]string{"username": "admin", "password": "s3cret"})
	require.Equal(t, http.StatusOK, resp.Code)

	var session auth.Session
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&session))
	require.NotEmpty(t, session.Token)
	return session.Token
}

func TestLogin(t *testing.T) {
	r, _, _ := setupRouter(t)
	login(t, r)

	resp := do(r, http.MethodPost, "/admin/login", "", map[string]string{"username": "admin", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = do(r, http.MethodPost, "/admin/login", "", map[string]string{"username": "admin"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r, _, _ := setupRouter(t)

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/admin/leads", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/admin/properties", "garbage", nil).Code)
}

func TestPropertyCRUD(t *testing.T) {
	r, properties, _ := setupRouter(t)
	token := login(t, r)

	listing := property.Property{
		Title:    "Lake-view 3 BHK in Powai",
		Location: "Mumbai",
		Type:     property.TypeApartment,
		Bedrooms: 3,
		Price:    41000000,
		AreaSqft: 1350,
	}
	resp := do(r, http.MethodPost, "/admin/properties", token, listing)
	require.Equal(t, http.StatusCreated, resp.Code)

	var created property.Property
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "mumbai", created.Location)

	created.Price = 39500000
	resp = do(r, http.MethodPut, "/admin/properties/"+created.ID, token, created)
	require.Equal(t, http.StatusOK, resp.Code)

	stored, err := properties.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.InDelta(t, 39500000, stored.Price, 0.5)

	resp = do(r, http.MethodDelete, "/admin/properties/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, resp.Code)

	resp = do(r, http.MethodDelete, "/admin/properties/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestCreatePropertyValidation(t *testing.T) {
	r, _, _ := setupRouter(t)
	token := login(t, r)

	resp := do(r, http.MethodPost, "/admin/properties", token, property.Property{Title: "No price", Location: "pune", Type: "castle"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestListLeads(t *testing.T) {
	r, _, leads := setupRouter(t)
	token := login(t, r)

	require.NoError(t, leads.SaveLead(context.Background(), lead.Lead{
		ID: "l1", Name: "Kabir", Email: "kabir@example.com", Message: "Call me", Status: lead.StatusFailed, CreatedAt: time.Now(),
	}))

	resp := do(r, http.MethodGet, "/admin/leads", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var out []lead.Lead
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out, 1)
	assert.Equal(t, lead.StatusFailed, out[0].Status)
}
