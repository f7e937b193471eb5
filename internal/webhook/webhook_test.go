package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuhaochen/lexipost/internal/app"
)

type fakePoster struct {
	lastReq app.PostRequest
	result  *app.PostResult
	err     error
}

func (f *fakePoster) CreateAndPublish(ctx context.Context, req app.PostRequest) (*app.PostResult, error) {
	f.lastReq = req
	return f.result, f.err
}

func newTestServer(poster Poster) *Server {
	return New(poster, 0, zerolog.Nop())
}

func TestHealth(t *testing.T) {
	s := newTestServer(&fakePoster{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	s.srv.Handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestTrigger(t *testing.T) {
	poster := &fakePoster{
		result: &app.PostResult{Success: true, Word: "abandon", Level: "CET-4"},
	}
	s := newTestServer(poster)

	body := bytes.NewBufferString(`{"word":"abandon","level":"CET-4"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/trigger", body)
	req.Header.Set("Content-Type", "application/json")
	s.srv.Handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abandon", poster.lastReq.Word)
	assert.Equal(t, "CET-4", poster.lastReq.Level)

	var result app.PostResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, "abandon", result.Word)
}

func TestTriggerEmptyBody(t *testing.T) {
	poster := &fakePoster{result: &app.PostResult{Success: true, Word: "serendipity"}}
	s := newTestServer(poster)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/trigger", nil)
	s.srv.Handler.ServeHTTP(w, req)

	// An empty body means "pick a word yourself".
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, poster.lastReq.Word)
}

func TestTriggerFailure(t *testing.T) {
	poster := &fakePoster{err: errors.New("ollama unreachable")}
	s := newTestServer(poster)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/trigger", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	s.srv.Handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "ollama unreachable")
}

func TestTriggerMalformedJSON(t *testing.T) {
	s := newTestServer(&fakePoster{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/trigger", bytes.NewBufferString(`{"word":`))
	req.Header.Set("Content-Type", "application/json")
	s.srv.Handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
