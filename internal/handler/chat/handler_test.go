package chat

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

	"github.com/propnest/realty/backend/internal/model/chat"
	chatservice "github.com/propnest/realty/backend/internal/service/chat"
)

func setupRouter(t *testing.T) (*chi.Mux, *chatservice.Service) {
	t.Helper()
	chatSvc := chatservice.NewService(chatservice.Config{TypingDelay: 10 * time.Millisecond})
	t.Cleanup(chatSvc.Close)

	r := chi.NewRouter()
	New(chatSvc).RegisterRoutes(r)
	return r, chatSvc
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func createSession(t *testing.T, r http.Handler) SessionView {
	t.Helper()
	resp := doJSON(r, http.MethodPost, "/chat/sessions", nil)
	require.Equal(t, http.StatusCreated, resp.Code)

	var view SessionView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	return view
}

func TestCreateSessionReturnsSeedTranscript(t *testing.T) {
	r, _ := setupRouter(t)
	view := createSession(t, r)

	assert.NotEmpty(t, view.Session.ID)
	assert.Equal(t, chat.StateIdle, view.Session.State)
	require.Len(t, view.Transcript, 1)
	assert.Equal(t, chat.OriginBot, view.Transcript[0].Origin)
	assert.Len(t, view.QuickActions, 4)
}

func TestSubmitMessageAppendsUserThenBot(t *testing.T) {
	r, svc := setupRouter(t)
	view := createSession(t, r)

	resp := doJSON(r, http.MethodPost, "/chat/sessions/"+view.Session.ID+"/messages", map[string]string{"text": "Hi"})
	require.Equal(t, http.StatusAccepted, resp.Code)

	var accepted submitResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&accepted))
	assert.Equal(t, "Hi", accepted.Message.Text)
	assert.Equal(t, chat.OriginUser, accepted.Message.Origin)

	require.Eventually(t, func() bool {
		msgs, err := svc.LoadTranscript(context.Background(), view.Session.ID)
		return err == nil && len(msgs) == 3
	}, time.Second, 5*time.Millisecond)

	resp = doJSON(r, http.MethodGet, "/chat/sessions/"+view.Session.ID, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var after SessionView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&after))
	assert.Equal(t, chat.StateIdle, after.Session.State)
	assert.Empty(t, after.QuickActions)
	assert.Equal(t, chat.OriginBot, after.Transcript[2].Origin)
}

func TestSubmitEmptyMessage(t *testing.T) {
	r, _ := setupRouter(t)
	view := createSession(t, r)

	resp := doJSON(r, http.MethodPost, "/chat/sessions/"+view.Session.ID+"/messages", map[string]string{"text": "   "})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestQuickActionOnlyBeforeFirstMessage(t *testing.T) {
	r, _ := setupRouter(t)
	view := createSession(t, r)
	base := "/chat/sessions/" + view.Session.ID + "/quick-actions/"

	resp := doJSON(r, http.MethodPost, base+"9", nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = doJSON(r, http.MethodPost, base+"abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = doJSON(r, http.MethodPost, base+"1", nil)
	require.Equal(t, http.StatusAccepted, resp.Code)
	var accepted submitResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&accepted))
	assert.Equal(t, view.QuickActions[1].Utterance, accepted.Message.Text)

	resp = doJSON(r, http.MethodPost, base+"0", nil)
	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestUnknownSession(t *testing.T) {
	r, _ := setupRouter(t)

	assert.Equal(t, http.StatusNotFound, doJSON(r, http.MethodGet, "/chat/sessions/missing", nil).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(r, http.MethodPost, "/chat/sessions/missing/messages", map[string]string{"text": "hi"}).Code)
}

func TestCloseSession(t *testing.T) {
	r, _ := setupRouter(t)
	view := createSession(t, r)

	resp := doJSON(r, http.MethodDelete, "/chat/sessions/"+view.Session.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.Code)

	resp = doJSON(r, http.MethodGet, "/chat/sessions/"+view.Session.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
