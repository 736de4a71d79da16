package input

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/dustin/go-humanize"
)

// maxAssetSize caps a single downloaded stylesheet.
const maxAssetSize = 10 * 1024 * 1024

// HTTPAdapter downloads stylesheets from a raw file URL prefix, versioned by
// a hash of their content.
type HTTPAdapter struct {
	baseURL string
	client  *http.Client
}

// NewHTTPAdapter creates an HTTPAdapter. A nil client uses http.DefaultClient.
func NewHTTPAdapter(baseURL string, client *http.Client) *HTTPAdapter {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPAdapter{baseURL: baseURL, client: client}
}

// Name returns the adapter identifier.
func (a *HTTPAdapter) Name() string {
	return "http"
}

// Fetch downloads baseURL/name.
func (a *HTTPAdapter) Fetch(ctx context.Context, name string) (*Asset, error) {
	u, err := url.JoinPath(a.baseURL, name)
	if err != nil {
		return nil, &AdapterError{Source: "http", Message: "invalid url", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &AdapterError{Source: "http", Message: "invalid request", Err: err}
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, &AdapterError{Source: "http", Message: "failed to fetch " + u, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &AdapterError{
			Source:  "http",
			Message: fmt.Sprintf("failed to fetch %s: %s", u, resp.Status),
		}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAssetSize+1))
	if err != nil {
		return nil, &AdapterError{Source: "http", Message: "failed to read " + u, Err: err}
	}
	if len(data) > maxAssetSize {
		return nil, &AdapterError{Source: "http", Message: u + " is larger than " + humanize.IBytes(maxAssetSize)}
	}

	return &Asset{
		Path:    name,
		Version: contentVersion(data),
		Data:    data,
	}, nil
}
