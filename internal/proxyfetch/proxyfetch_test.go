package proxyfetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch_SendsRenderingParams(t *testing.T) {
	var got url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		_, _ = w.Write([]byte("<html>rendered</html>"))
	}))
	defer srv.Close()

	c := New("test-key", false)
	c.SetEndpoint(srv.URL)

	res, err := c.Fetch(context.Background(), "https://example.com/genre/shoegaze")
	require.NoError(t, err)

	assert.Equal(t, "<html>rendered</html>", res.HTML)
	assert.False(t, res.Skipped)
	assert.Equal(t, "test-key", got.Get("api_key"))
	assert.Equal(t, "https://example.com/genre/shoegaze", got.Get("url"))
	assert.Equal(t, "true", got.Get("render_js"))
	assert.Equal(t, "true", got.Get("premium_proxy"))
}

func TestFetch_NoAPIKeySkipsWithoutNetwork(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected without an API key")
	}))
	defer srv.Close()

	c := New("", false)
	c.SetEndpoint(srv.URL)

	res, err := c.Fetch(context.Background(), "https://example.com/genre/shoegaze")
	require.NoError(t, err)
	assert.True(t, res.Skipped)
	assert.Empty(t, res.HTML)
}

func TestFetch_NonSuccessStatusIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "insufficient credits", http.StatusPaymentRequired)
	}))
	defer srv.Close()

	c := New("test-key", false)
	c.SetEndpoint(srv.URL)

	_, err := c.Fetch(context.Background(), "https://example.com/genre/shoegaze")
	require.Error(t, err)

	var pe *Error
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "https://example.com/genre/shoegaze", pe.URL)
	assert.Contains(t, pe.Error(), "HTTP 402")
}

func TestFetch_TransportErrorIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := New("test-key", false)
	c.SetEndpoint(srv.URL)

	_, err := c.Fetch(context.Background(), "https://example.com/genre/shoegaze")
	var pe *Error
	require.ErrorAs(t, err, &pe)
	assert.NotNil(t, pe.Unwrap())
}

func TestFetch_SingleRequestNoRetry(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New("test-key", false)
	c.SetEndpoint(srv.URL)

	_, err := c.Fetch(context.Background(), "https://example.com/genre/shoegaze")
	require.Error(t, err)
	assert.Equal(t, 1, hits)
}
