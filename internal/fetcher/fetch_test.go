package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const body = "#EXTM3U\n#EXTINF:-1 group-title=\"News\",BBC One\nhttp://example.com/bbc1\n"

func TestFetch(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	text, err := Fetch(context.Background(), srv.URL, Options{UserAgent: "m3ugroups-test", Timeout: time.Second})
	require.NoError(t, err)
	assert.Equal(t, body, text)
	assert.Equal(t, "m3ugroups-test", gotUA)
}

func TestFetchNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := Fetch(context.Background(), srv.URL, Options{Timeout: time.Second})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLoad)
	assert.Contains(t, err.Error(), "HTTP 404")
}

func TestFetchCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Fetch(ctx, srv.URL, Options{Timeout: time.Second})
	assert.ErrorIs(t, err, ErrLoad)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.m3u")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	text, err := Load(context.Background(), path, Options{})
	require.NoError(t, err)
	assert.Equal(t, body, text)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.m3u"))
	assert.ErrorIs(t, err, ErrLoad)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("http://example.com/list.m3u"))
	assert.True(t, IsURL("https://example.com/get.php?type=m3u"))
	assert.False(t, IsURL("ftp://example.com/list.m3u"))
	assert.False(t, IsURL("/tmp/list.m3u"))
	assert.False(t, IsURL("list.m3u"))
	assert.False(t, IsURL("http://"))
}
