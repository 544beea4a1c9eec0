package fetcher_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/gorecipe/internal/fetcher"
)

func TestFetch_Success(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		assert.Equal(t, "en-US,en;q=0.9", r.Header.Get("Accept-Language"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body>hello</body></html>"))
	}))
	defer server.Close()

	f := fetcher.New(nil)
	page, err := f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, page.StatusCode)
	assert.Contains(t, page.Body, "hello")
	assert.Equal(t, server.URL, page.URL)
}

func TestFetch_UserAgentRotation(t *testing.T) {
	t.Parallel()

	var agents []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agents = append(agents, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	f := fetcher.New(nil)
	for range 3 {
		_, err := f.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
	}

	require.Len(t, agents, 3)
	assert.NotEqual(t, agents[0], agents[1])
	assert.NotEqual(t, agents[1], agents[2])
}

func TestFetch_HeaderInjection(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "custom-value", r.Header.Get("X-Custom"))
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	f := fetcher.New(nil, fetcher.WithHeader("X-Custom", "custom-value"))
	_, err := f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
}

func TestFetch_NonSuccessStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := fetcher.New(nil)
	_, err := f.Fetch(context.Background(), server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
	assert.Contains(t, err.Error(), server.URL)
}

func TestFetch_TransportError(t *testing.T) {
	t.Parallel()

	f := fetcher.New(nil)
	_, err := f.Fetch(context.Background(), "http://127.0.0.1:1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch")
}

func TestDecodeBody(t *testing.T) {
	t.Parallel()

	t.Run("utf-8 passes through", func(t *testing.T) {
		t.Parallel()
		body := fetcher.DecodeBody([]byte("café ½ cup"), "text/html; charset=utf-8")
		assert.Equal(t, "café ½ cup", body)
	})

	t.Run("header charset decodes latin-1", func(t *testing.T) {
		t.Parallel()
		// "café" in ISO-8859-1: é is 0xE9.
		raw := []byte{'c', 'a', 'f', 0xE9}
		body := fetcher.DecodeBody(raw, "text/html; charset=iso-8859-1")
		assert.Equal(t, "café", body)
	})

	t.Run("meta charset honored when header is silent", func(t *testing.T) {
		t.Parallel()
		raw := append([]byte(`<meta charset="windows-1252"><body>caf`), 0xE9)
		body := fetcher.DecodeBody(raw, "text/html")
		assert.True(t, strings.HasSuffix(body, "café"))
	})

	t.Run("malformed utf-8 gets replacement runes", func(t *testing.T) {
		t.Parallel()
		raw := []byte("good text here with plenty of valid runs \xff\xfe")
		body := fetcher.DecodeBody(raw, "text/html; charset=utf-8")
		assert.Contains(t, body, "good text here")
		assert.True(t, strings.Contains(body, "�") || !strings.Contains(body, "\xff"))
	})
}
