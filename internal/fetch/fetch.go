// Package fetch downloads whole HTTP resources into memory.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/planarally/pa-installer/internal/messages"
)

// DefaultMaxBytes bounds a single download when Client.MaxBytes is unset.
const DefaultMaxBytes = int64(256 * 1024 * 1024) // 256 MiB

// DownloadError reports a failed GET. StatusCode is zero when no response was received.
type DownloadError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *DownloadError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf(messages.InstallDownloadStatusErrorFmt, e.URL, e.StatusCode)
	}
	return fmt.Sprintf(messages.InstallDownloadErrorFmt, e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the download failed on a network timeout.
func (e *DownloadError) Timeout() bool {
	var netErr net.Error
	if errors.As(e.Err, &netErr) {
		return netErr.Timeout()
	}
	return errors.Is(e.Err, context.DeadlineExceeded)
}

// Client fetches URLs with a plain GET. The zero value is usable.
type Client struct {
	HTTP     *http.Client
	MaxBytes int64
}

// New returns a Client with the given timeout and size bound.
func New(timeout time.Duration, maxBytes int64) *Client {
	return &Client{
		HTTP:     &http.Client{Timeout: timeout},
		MaxBytes: maxBytes,
	}
}

// Get downloads url and returns the full body. Only HTTP 200 counts as success.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &DownloadError{URL: url, Err: fmt.Errorf(messages.FetchCreateRequestFmt, err)}
	}
	req.Header.Set("User-Agent", messages.FetchUserAgent)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, &DownloadError{URL: url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &DownloadError{URL: url, StatusCode: resp.StatusCode}
	}

	maxBytes := c.maxBytes()
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return nil, &DownloadError{URL: url, StatusCode: resp.StatusCode, Err: fmt.Errorf(messages.FetchReadBodyFmt, err)}
	}
	if int64(len(data)) > maxBytes {
		return nil, &DownloadError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf(messages.FetchTooLargeFmt, humanize.IBytes(uint64(maxBytes))),
		}
	}
	return data, nil
}

func (c *Client) httpClient() *http.Client {
	if c == nil || c.HTTP == nil {
		return http.DefaultClient
	}
	return c.HTTP
}

func (c *Client) maxBytes() int64 {
	if c == nil || c.MaxBytes <= 0 {
		return DefaultMaxBytes
	}
	return c.MaxBytes
}
