package contact

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailRelaySendPostsTemplateParams(t *testing.T) {
	var got sendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, sendEndpoint, r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte("OK"))
	}))
	defer srv.Close()

	relay := NewEmailRelay(RelayConfig{
		BaseURL:    srv.URL + "/",
		ServiceID:  "svc",
		TemplateID: "tpl",
		PublicKey:  "pub",
		Timeout:    time.Second,
	})

	err := relay.Send(context.Background(), Inquiry{
		Name:    "Asha",
		Email:   "asha@example.com",
		Subject: "Site visit",
		Message: "Can I see the Pune flat on Saturday?",
	})
	require.NoError(t, err)

	assert.Equal(t, "svc", got.ServiceID)
	assert.Equal(t, "tpl", got.TemplateID)
	assert.Equal(t, "pub", got.UserID)
	assert.Empty(t, got.AccessToken)
	assert.Equal(t, "Asha", got.TemplateParams["from_name"])
	assert.Equal(t, "asha@example.com", got.TemplateParams["from_email"])
	assert.Equal(t, "Can I see the Pune flat on Saturday?", got.TemplateParams["message"])
}

func TestEmailRelaySendReportsRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("The template ID is invalid"))
	}))
	defer srv.Close()

	relay := NewEmailRelay(RelayConfig{BaseURL: srv.URL, Timeout: time.Second})
	err := relay.Send(context.Background(), Inquiry{Name: "A", Email: "a@example.com", Message: "hi"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRelayRejected))
	assert.Contains(t, err.Error(), "template ID is invalid")
}
