package services

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (*ApiClient, *httptest.Server) {
	server := httptest.NewServer(handler)
	return NewApiClient(server.URL, 5*time.Second), server
}

func TestGetAttachesBearerToken(t *testing.T) {
	var gotAuth string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	})
	defer server.Close()

	client.SetToken("secret-token")
	require.NoError(t, client.Get("/stores", nil, nil))
	assert.Equal(t, "Bearer secret-token", gotAuth)
}

func TestGetWithoutTokenSendsNoAuthHeader(t *testing.T) {
	var gotAuth string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	})
	defer server.Close()

	require.NoError(t, client.Get("/auth/whatever", nil, nil))
	assert.Empty(t, gotAuth)
}

func TestGetPassesQueryParameters(t *testing.T) {
	var gotQuery url.Values
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{}`))
	})
	defer server.Close()

	query := url.Values{}
	query.Set("name", "corner deli")
	query.Set("address", "main st")
	require.NoError(t, client.Get("/stores", query, nil))

	assert.Equal(t, "corner deli", gotQuery.Get("name"))
	assert.Equal(t, "main st", gotQuery.Get("address"))
}

func TestPostSendsJSONBody(t *testing.T) {
	var gotContentType string
	var gotMethod string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotMethod = r.Method
		w.Write([]byte(`{"message":"ok"}`))
	})
	defer server.Close()

	var out struct {
		Message string `json:"message"`
	}
	require.NoError(t, client.Post("/ratings", map[string]int{"store_id": 3, "rating": 4}, &out))

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "ok", out.Message)
}

func TestUnauthorizedClearsTokenAndIsAuthError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"token expired"}`))
	})
	defer server.Close()

	client.SetToken("stale")
	err := client.Get("/admin/dashboard", nil, nil)

	require.Error(t, err)
	assert.True(t, IsAuthError(err))
	assert.Empty(t, client.Token())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "token expired", apiErr.Message)
}

// The admin dashboard fires its stats, user and store fetches at the same
// time, so one rejected request clearing the token must not race the others
// reading it for their headers. Run with the race detector.
func TestConcurrentRequestsWithAuthFailure(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	defer server.Close()

	client.SetToken("stale")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := client.Get("/admin/dashboard", nil, nil)
			assert.True(t, IsAuthError(err))
		}()
	}
	wg.Wait()

	assert.Empty(t, client.Token())
}

func TestForbiddenIsAuthError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	defer server.Close()

	err := client.Get("/admin/users", nil, nil)
	assert.True(t, IsAuthError(err))
}

func TestServerErrorIsNotAuthError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"database unavailable"}`))
	})
	defer server.Close()

	client.SetToken("still-valid")
	err := client.Get("/stores", nil, nil)

	require.Error(t, err)
	assert.False(t, IsAuthError(err))
	// A transient backend failure must not invalidate the session.
	assert.Equal(t, "still-valid", client.Token())
	assert.Equal(t, "database unavailable", ErrorMessage(err, "fallback"))
}

func TestNetworkErrorIsNotAuthError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {})
	server.Close() // connection refused from here on

	err := client.Get("/stores", nil, nil)
	require.Error(t, err)
	assert.False(t, IsAuthError(err))
}

func TestErrorMessageFallback(t *testing.T) {
	assert.Equal(t, "fallback", ErrorMessage(errors.New("dial tcp: refused"), "fallback"))
	assert.Equal(t, "fallback", ErrorMessage(&APIError{StatusCode: 500}, "fallback"))
	assert.Equal(t, "boom", ErrorMessage(&APIError{StatusCode: 500, Message: "boom"}, "fallback"))
}

func TestErrorStringWithoutMessage(t *testing.T) {
	err := &APIError{StatusCode: 502}
	assert.Equal(t, "request failed with status 502", err.Error())
}

func TestNonJSONErrorBody(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	})
	defer server.Close()

	err := client.Get("/stores", nil, nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Empty(t, apiErr.Message)
}
