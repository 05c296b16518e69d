package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func stubBackendStart(t *testing.T, fn func() error) *atomic.Int32 {
	t.Helper()
	orig := startBackgroundBackend
	t.Cleanup(func() { startBackgroundBackend = orig })
	var calls atomic.Int32
	startBackgroundBackend = func() error {
		calls.Add(1)
		return fn()
	}
	return &calls
}

func TestEnsureBackendHealthySkipsStart(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"ok":true,"version":"v1"}`))
	}))
	defer server.Close()
	calls := stubBackendStart(t, func() error { return nil })

	require.NoError(t, NewWithBaseURL(server.URL+"/api", "").EnsureBackend(context.Background()))
	require.Zero(t, calls.Load())
}

func TestEnsureBackendStartsLocalBackend(t *testing.T) {
	var up atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !up.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"error":"starting"}`))
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()
	calls := stubBackendStart(t, func() error {
		up.Store(true)
		return nil
	})

	require.NoError(t, NewWithBaseURL(server.URL+"/api", "").EnsureBackend(context.Background()))
	require.EqualValues(t, 1, calls.Load())
}

func TestEnsureBackendReportsStartFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()
	boom := errors.New("exec failed")
	stubBackendStart(t, func() error { return boom })

	err := NewWithBaseURL(server.URL, "").EnsureBackend(context.Background())
	require.ErrorIs(t, err, boom)
}

func TestEnsureBackendNeverStartsRemote(t *testing.T) {
	calls := stubBackendStart(t, func() error { return nil })
	c := New(Options{
		BaseURL: "https://crm.example.com/api",
		HTTPClient: &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
			return nil, errors.New("connection refused")
		})},
	})

	err := c.EnsureBackend(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "unavailable")
	require.Zero(t, calls.Load())
}

func TestIsLoopbackURL(t *testing.T) {
	require.True(t, isLoopbackURL("http://127.0.0.1:5000/api"))
	require.True(t, isLoopbackURL("http://localhost:5000"))
	require.True(t, isLoopbackURL("http://[::1]:5000"))
	require.False(t, isLoopbackURL("https://crm.example.com/api"))
}
