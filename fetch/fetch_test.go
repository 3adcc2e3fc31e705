package fetch

import (
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPlainBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Write([]byte("hello"))
	}))
	defer server.Close()

	client := NewClient(5*time.Second, nil)
	body, err := client.Get(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))
}

func TestGetDecodesGzip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		gz.Write([]byte("compressed payload"))
		gz.Close()
	}))
	defer server.Close()

	client := NewClient(5*time.Second, nil)
	body, err := client.Get(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "compressed payload", string(body))
}

func TestGetRejectsNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(5*time.Second, nil)
	_, err := client.Get(context.Background(), server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestHostLimiterThrottlesSameHost(t *testing.T) {
	// 10 req/s with burst 1: the second request must wait ~100ms.
	limiter := NewHostLimiter(10, 1)
	ctx := context.Background()

	start := time.Now()
	require.NoError(t, limiter.WaitURL(ctx, "https://example.com/a"))
	require.NoError(t, limiter.WaitURL(ctx, "https://example.com/b"))
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestHostLimiterIsPerHost(t *testing.T) {
	limiter := NewHostLimiter(1, 1)
	ctx := context.Background()

	start := time.Now()
	require.NoError(t, limiter.WaitURL(ctx, "https://one.example.com/"))
	require.NoError(t, limiter.WaitURL(ctx, "https://two.example.com/"))
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestHostLimiterCancel(t *testing.T) {
	limiter := NewHostLimiter(0.001, 1)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	require.NoError(t, limiter.WaitURL(ctx, "https://example.com/"))
	err := limiter.WaitURL(ctx, "https://example.com/")
	assert.Error(t, err)
}
