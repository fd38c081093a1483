package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetReturnsBodyOn200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "planarally-installer", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte("payload"))
	}))
	defer server.Close()

	data, err := New(time.Second, 0).Get(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestGetNon200IsDownloadError(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusNoContent, http.StatusInternalServerError} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		}))

		_, err := (&Client{}).Get(context.Background(), server.URL+"/python.exe")
		server.Close()

		var dlErr *DownloadError
		require.ErrorAs(t, err, &dlErr)
		assert.Equal(t, status, dlErr.StatusCode)
		assert.Equal(t, server.URL+"/python.exe", dlErr.URL)
		assert.Contains(t, err.Error(), "could not download from url")
	}
}

func TestGetConnectionFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := New(time.Second, 0).Get(context.Background(), url)
	var dlErr *DownloadError
	require.ErrorAs(t, err, &dlErr)
	assert.Zero(t, dlErr.StatusCode)
	assert.Error(t, dlErr.Unwrap())
}

func TestGetRejectsOversizedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 64)))
	}))
	defer server.Close()

	_, err := New(time.Second, 16).Get(context.Background(), server.URL)
	var dlErr *DownloadError
	require.ErrorAs(t, err, &dlErr)
	assert.Contains(t, err.Error(), "16 B limit")
}

func TestGetHonoursContext(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := (&Client{}).Get(ctx, server.URL)
	var dlErr *DownloadError
	require.ErrorAs(t, err, &dlErr)
	assert.True(t, dlErr.Timeout())
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestGetInvalidURL(t *testing.T) {
	_, err := (&Client{}).Get(context.Background(), "://bad")
	var dlErr *DownloadError
	require.ErrorAs(t, err, &dlErr)
	assert.Contains(t, err.Error(), "create request")
}
