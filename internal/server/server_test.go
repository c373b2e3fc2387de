package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/talentscout/screener/internal/screening"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer() *Server {
	manager := NewManager(func(id string) *screening.Session {
		return screening.NewSession(id, nil, nil, nil, zap.NewNop())
	})
	return New(Config{Port: "0"}, manager, zap.NewNop())
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func postJSON(t *testing.T, srv *Server, path string, payload any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(payload))

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.App().Test(req)
	require.NoError(t, err)
	return resp
}

func TestCreateSession(t *testing.T) {
	srv := newTestServer()

	resp := postJSON(t, srv, "/api/sessions", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.NotEmpty(t, body["session_id"])
	assert.Contains(t, body["greeting"], "TalentScout")
}

func TestPostTurnFlow(t *testing.T) {
	srv := newTestServer()

	created := decodeBody(t, postJSON(t, srv, "/api/sessions", nil))
	id := created["session_id"].(string)

	resp := postJSON(t, srv, fmt.Sprintf("/api/sessions/%s/turns", id), map[string]string{"text": "John Doe"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, false, body["closed"])
	assert.Equal(t, "gathering", body["phase"])
	assert.Contains(t, body["reply"], "email")
}

func TestPostTurnUnknownSession(t *testing.T) {
	srv := newTestServer()

	resp := postJSON(t, srv, "/api/sessions/nope/turns", map[string]string{"text": "hi"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGoodbyeClosesAndDropsSession(t *testing.T) {
	srv := newTestServer()

	created := decodeBody(t, postJSON(t, srv, "/api/sessions", nil))
	id := created["session_id"].(string)

	resp := postJSON(t, srv, fmt.Sprintf("/api/sessions/%s/turns", id), map[string]string{"text": "bye"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["closed"])
	assert.Equal(t, "closed", body["phase"])

	// The session is gone once closed.
	resp = postJSON(t, srv, fmt.Sprintf("/api/sessions/%s/turns", id), map[string]string{"text": "hi"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetTranscript(t *testing.T) {
	srv := newTestServer()

	created := decodeBody(t, postJSON(t, srv, "/api/sessions", nil))
	id := created["session_id"].(string)

	postJSON(t, srv, fmt.Sprintf("/api/sessions/%s/turns", id), map[string]string{"text": "John Doe"})

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/sessions/%s/transcript", id), nil)
	resp, err := srv.App().Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	turns := body["turns"].([]any)
	// Greeting, user turn, assistant reply.
	assert.Len(t, turns, 3)
}
