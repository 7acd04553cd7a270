package media

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	perrors "github.com/petpost/petpost/internal/errors"
)

const loadHTTPTimeout = 60 * time.Second

// URILoader reads file:// URIs and plain paths from disk and fetches
// http(s):// URIs.
type URILoader struct {
	httpClient *http.Client
}

// NewURILoader creates a loader with a default HTTP client.
func NewURILoader() *URILoader {
	return NewURILoaderWithClient(&http.Client{Timeout: loadHTTPTimeout})
}

// NewURILoaderWithClient creates a loader with a custom HTTP client (for testing).
func NewURILoaderWithClient(client *http.Client) *URILoader {
	return &URILoader{httpClient: client}
}

// Load implements Loader.
func (l *URILoader) Load(ctx context.Context, uri string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, perrors.MediaLoadFailed(uri, err)
	}

	u, err := url.Parse(uri)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		// Not a URI (or a Windows drive letter): treat as a path.
		return l.readFile(uri)
	}

	switch u.Scheme {
	case "file":
		return l.readFile(u.Path)
	case "http", "https":
		return l.fetch(ctx, uri)
	default:
		return nil, perrors.MediaLoadFailed(uri, fmt.Errorf("unsupported scheme %q", u.Scheme))
	}
}

func (l *URILoader) readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, perrors.MediaLoadFailed(path, err)
	}
	return data, nil
}

func (l *URILoader) fetch(ctx context.Context, uri string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, perrors.MediaLoadFailed(uri, err)
	}
	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, perrors.MediaLoadFailed(uri, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, perrors.MediaLoadFailed(uri, fmt.Errorf("status %d", resp.StatusCode))
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, perrors.MediaLoadFailed(uri, err)
	}
	return data, nil
}
