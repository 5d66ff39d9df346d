package api

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name string `json:"name"`
}

func TestFetchWithTokenSuccess(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(payload{Name: "PL-1234"})
	}))
	defer srv.Close()

	c := New(srv.URL, WithHTTPClient(srv.Client()), WithTokens(StaticToken("tok")))
	res := FetchWithToken[payload](context.Background(), c, http.MethodGet, srv.URL+"/picklists/1", nil,
		Header("X-Store", "1"))

	require.True(t, res.OK())
	assert.Equal(t, http.StatusOK, res.Status)
	require.NotNil(t, res.Data)
	assert.Equal(t, "PL-1234", res.Data.Name)
	assert.Empty(t, res.Error)

	assert.Equal(t, "Bearer tok", got.Header.Get("Authorization"))
	assert.Equal(t, "application/json", got.Header.Get("Content-Type"))
	assert.Equal(t, "gzip", got.Header.Get("Accept-Encoding"))
	assert.Equal(t, "1", got.Header.Get("X-Store"))
	assert.Len(t, got.Header.Get("X-Request-ID"), 36)
}

func TestFetchWithTokenSkipAuthAndAnonymous(t *testing.T) {
	var auth []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = append(auth, r.Header.Get("Authorization"))
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithHTTPClient(srv.Client()), WithTokens(StaticToken("tok")))
	FetchWithToken[payload](context.Background(), c, http.MethodPost, srv.URL, nil, SkipAuth())
	c.Tokens = StaticToken("")
	FetchWithToken[payload](context.Background(), c, http.MethodGet, srv.URL, nil)

	assert.Equal(t, []string{"", ""}, auth)
}

func TestFetchWithTokenHTTPErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/message":
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"Order not found"}`))
		case "/bare":
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte(`<html>bad gateway</html>`))
		}
	}))
	defer srv.Close()
	c := New(srv.URL, WithHTTPClient(srv.Client()))

	res := FetchWithToken[payload](context.Background(), c, http.MethodGet, srv.URL+"/message", nil)
	assert.False(t, res.OK())
	assert.Nil(t, res.Data)
	assert.Equal(t, "Order not found", res.Error)
	assert.Equal(t, http.StatusNotFound, res.Status)

	res = FetchWithToken[payload](context.Background(), c, http.MethodGet, srv.URL+"/bare", nil)
	assert.Equal(t, "HTTP 502", res.Error)
	assert.Equal(t, http.StatusBadGateway, res.Status)

	_, err := res.Value("unused")
	var ae *APIError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, http.StatusBadGateway, ae.Status)
	assert.Equal(t, http.StatusBadGateway, StatusOf(err))
}

func TestFetchWithTokenNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(url)
	res := FetchWithToken[payload](context.Background(), c, http.MethodGet, url, nil)
	assert.False(t, res.OK())
	assert.Equal(t, 0, res.Status)
	assert.NotEmpty(t, res.Error)
	assert.Equal(t, 0, StatusOf(res.Err()))
}

func TestFetchWithTokenBadJSONIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name":`))
	}))
	defer srv.Close()
	c := New(srv.URL, WithHTTPClient(srv.Client()))

	res := FetchWithToken[payload](context.Background(), c, http.MethodGet, srv.URL, nil)
	assert.Equal(t, 0, res.Status)
	assert.Contains(t, res.Error, "decode response")
}

func TestFetchWithTokenEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()
	c := New(srv.URL, WithHTTPClient(srv.Client()))

	res := FetchWithToken[payload](context.Background(), c, http.MethodPut, srv.URL, map[string]int{"picked": 2})
	assert.True(t, res.OK())
	assert.Nil(t, res.Data)
	assert.NoError(t, res.Err())

	_, err := res.Value("Picklist not found")
	assert.EqualError(t, err, "Picklist not found (status 204)")
}

func TestFetchWithTokenGzip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		json.NewEncoder(gz).Encode(payload{Name: "zipped"})
		gz.Close()
	}))
	defer srv.Close()
	c := New(srv.URL, WithHTTPClient(srv.Client()))

	res := FetchWithToken[payload](context.Background(), c, http.MethodGet, srv.URL, nil)
	require.True(t, res.OK(), res.Error)
	assert.Equal(t, "zipped", res.Data.Name)
}

type failingTokens struct{}

func (failingTokens) Token() (string, error) { return "", errors.New("disk on fire") }

func TestFetchWithTokenTokenReadFailure(t *testing.T) {
	c := New("http://unused.invalid", WithTokens(failingTokens{}))
	res := FetchWithToken[payload](context.Background(), c, http.MethodGet, "http://unused.invalid/x", nil)
	assert.Equal(t, 0, res.Status)
	assert.Contains(t, res.Error, "disk on fire")
}

func TestEndpointEscapesSegments(t *testing.T) {
	c := New("https://api.orderup.com/api/")
	assert.Equal(t, "https://api.orderup.com/api/orders/a%2Fb/status", c.endpoint("/orders", "a/b", "status"))
}
