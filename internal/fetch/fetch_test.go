package fetch

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetBytes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		assert.Equal(t, "fr", r.Header.Get("Accept-Language"))
		_, _ = io.WriteString(w, "ok")
	}))
	defer srv.Close()

	c := New(0)
	got, err := c.GetBytes(context.Background(), srv.URL, map[string]string{"Accept-Language": "fr"})
	require.NoError(t, err)
	assert.Equal(t, "ok", string(got))
}

func TestPostJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		b, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"videoId":"abc"}`, string(b))
		_, _ = io.WriteString(w, `{"ok":true}`)
	}))
	defer srv.Close()

	got, err := New(0).PostJSON(context.Background(), srv.URL, map[string]string{"videoId": "abc"}, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(got))
}

func TestStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := New(0).GetBytes(context.Background(), srv.URL, nil)
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusNotFound))
	assert.False(t, IsStatus(err, http.StatusInternalServerError))
}

func TestTooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// pas de Content-Length : écriture en flux
		w.(http.Flusher).Flush()
		_, _ = io.WriteString(w, strings.Repeat("x", 64))
	}))
	defer srv.Close()

	c := New(0)
	c.MaxBytes = 10
	_, err := c.GetBytes(context.Background(), srv.URL, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTooLarge))
}

func TestInvalidURL(t *testing.T) {
	_, err := New(0).GetBytes(context.Background(), "pas une url", nil)
	assert.Error(t, err)
}
