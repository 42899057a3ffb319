package lrclib

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Get(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/get", r.URL.Path)
		assert.Equal(t, "Nina Simone", r.URL.Query().Get("artist_name"))
		assert.Equal(t, "Feeling Good", r.URL.Query().Get("track_name"))
		assert.Equal(t, "178", r.URL.Query().Get("duration"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": 42,
			"trackName": "Feeling Good",
			"artistName": "Nina Simone",
			"syncedLyrics": "[00:01.00]Birds flying high"
		}`))
	}))
	defer srv.Close()

	c := NewWithBaseURL(srv.URL)
	result, err := c.Get(context.Background(), "Nina Simone", "Feeling Good", 178*time.Second)

	require.NoError(t, err)
	assert.Equal(t, 42, result.ID)
	assert.Equal(t, "[00:01.00]Birds flying high", result.SyncedLyrics)
}

func TestClient_Get_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewWithBaseURL(srv.URL)
	_, err := c.Get(context.Background(), "Nobody", "Nothing", 0)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestClient_Get_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewWithBaseURL(srv.URL)
	_, err := c.Get(context.Background(), "a", "b", 0)

	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound), "server errors must stay distinct from not-found")
}
