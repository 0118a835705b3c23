package neon

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient("test-key", WithBaseURL(server.URL))
}

func TestRequestReturnsStatusWithoutError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"not found"}`))
	}))

	status, body, err := client.Request("GET", "/projects/p/branches", nil)
	require.NoError(t, err, "HTTP-level failure should not be an error")
	require.Equal(t, http.StatusNotFound, status)
	require.Contains(t, string(body), "not found")
}

func TestRequestSetsAuthHeaders(t *testing.T) {
	var gotAuth, gotAgent, gotRequestID string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAgent = r.Header.Get("User-Agent")
		gotRequestID = r.Header.Get("X-Request-Id")
		w.Write([]byte(`{}`))
	}))

	_, _, err := client.Request("GET", "/projects/p/branches", nil)
	require.NoError(t, err)
	require.Equal(t, "Bearer test-key", gotAuth)
	require.Contains(t, gotAgent, "neon-branch/")
	require.NotEmpty(t, gotRequestID)
}

func TestRequestOrFailReturnsAPIError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"bad key"}`))
	}))

	_, err := client.RequestOrFail("POST", "/projects/p/branches", map[string]string{"x": "y"})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "POST", apiErr.Method)
	require.Equal(t, "/projects/p/branches", apiErr.Path)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Contains(t, apiErr.Body, "bad key")
}

func TestRequestOrFailPassesBodyThrough(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true}`))
	}))

	body, err := client.RequestOrFail("GET", "/projects/p/branches", nil)
	require.NoError(t, err)
	require.JSONEq(t, `{"ok":true}`, string(body))
}

func TestRequestRetriesServerErrors(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL), WithRetries(5))
	status, body, err := client.Request("GET", "/projects/p/branches", nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, string(body), "ok")
	require.Equal(t, 3, attempts)
}

func TestRequestDoesNotRetryByDefault(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))
	status, _, err := client.Request("GET", "/projects/p/branches", nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadGateway, status)
	require.Equal(t, 1, attempts)
}

func TestRequestDoesNotRetryClientErrors(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL), WithRetries(5))
	status, _, err := client.Request("GET", "/projects/p/branches", nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, status)
	require.Equal(t, 1, attempts)
}
