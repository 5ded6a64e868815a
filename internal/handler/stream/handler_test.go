package stream

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propnest/realty/backend/internal/model/chat"
	chatservice "github.com/propnest/realty/backend/internal/service/chat"
)

type sseEvent struct {
	name string
	data string
}

func readEvents(t *testing.T, scanner *bufio.Scanner, out chan<- sseEvent) {
	t.Helper()
	var current sseEvent
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			current.name = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			current.data = strings.TrimPrefix(line, "data: ")
		case line == "" && current.name != "":
			out <- current
			current = sseEvent{}
		}
	}
	close(out)
}

func nextEvent(t *testing.T, events <-chan sseEvent, name string) sseEvent {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			require.True(t, ok, "stream ended before %q", name)
			if ev.name == name {
				return ev
			}
		case <-timeout:
			t.Fatalf("timed out waiting for %q", name)
		}
	}
}

func TestEventStreamDeliversTurn(t *testing.T) {
	chatSvc := chatservice.NewService(chatservice.Config{TypingDelay: 10 * time.Millisecond})
	defer chatSvc.Close()

	r := chi.NewRouter()
	New(chatSvc).RegisterRoutes(r)
	srv := httptest.NewServer(r)
	defer srv.Close()

	ctx := context.Background()
	session, err := chatSvc.CreateSession(ctx)
	require.NoError(t, err)

	resp, err := http.Get(srv.URL + "/chat/sessions/" + session.ID + "/events")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	events := make(chan sseEvent, 16)
	go readEvents(t, bufio.NewScanner(resp.Body), events)

	nextEvent(t, events, "ready")

	_, err = chatSvc.Submit(ctx, session.ID, "show me flats in pune")
	require.NoError(t, err)

	var user, bot chatservice.Event
	require.NoError(t, json.Unmarshal([]byte(nextEvent(t, events, "message").data), &user))
	require.NoError(t, json.Unmarshal([]byte(nextEvent(t, events, "message").data), &bot))

	assert.Equal(t, chat.OriginUser, user.Message.Origin)
	assert.Equal(t, chat.OriginBot, bot.Message.Origin)
	require.NotNil(t, bot.Message.Navigation)
	assert.Equal(t, "/search?location=pune", bot.Message.Navigation.Path)

	require.NoError(t, chatSvc.CloseSession(ctx, session.ID))
	nextEvent(t, events, "closed")
}

func TestEventStreamUnknownSession(t *testing.T) {
	chatSvc := chatservice.NewService(chatservice.Config{})
	r := chi.NewRouter()
	New(chatSvc).RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodGet, "/chat/sessions/nope/events", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}
