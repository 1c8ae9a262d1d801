package importer

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

const (
	connectTimeout = 30 * time.Second
	readTimeout    = 60 * time.Second
)

// Fetcher downloads timing sheets. Timeouts match the source feeds'
// expectations: slow sanctioning-body servers, but bounded.
type Fetcher struct {
	client *http.Client
}

func NewFetcher() *Fetcher {
	return &Fetcher{client: &http.Client{
		Timeout: readTimeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{Timeout: connectTimeout}).DialContext,
		},
	}}
}

// Fetch returns the response body; the caller owns closing it. Any
// failure, including a non-2xx status, is reported as ErrTransport.
func (f *Fetcher) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: HTTP %d fetching %s",
			ErrTransport, resp.StatusCode, url)
	}
	return resp.Body, nil
}
