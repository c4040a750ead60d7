package questionbank

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// maxDatasetBytes is the default cap on the size of a remote dataset.
const maxDatasetBytes = 32 << 20

// Source fetches the raw bytes of one dataset.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// FileSource reads a dataset from the local filesystem.
type FileSource struct {
	Path string
}

func (f FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.Path, err)
	}
	return b, nil
}

func (f FileSource) String() string { return f.Path }

// HTTPSource fetches a dataset with a GET request. A nil Client uses
// http.DefaultClient; the request honours ctx's deadline. Bodies larger
// than MaxBytes (32 MiB when zero) are rejected.
type HTTPSource struct {
	URL      string
	Client   *http.Client
	MaxBytes int64
}

func (h HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", h.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", h.URL, resp.StatusCode)
	}

	limit := h.MaxBytes
	if limit <= 0 {
		limit = maxDatasetBytes
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", h.URL, err)
	}
	if int64(len(b)) > limit {
		return nil, fmt.Errorf("fetch %s: dataset exceeds %d bytes", h.URL, limit)
	}
	return b, nil
}

func (h HTTPSource) String() string { return h.URL }

// SourceFor returns an HTTPSource for http(s) URLs and a FileSource otherwise.
func SourceFor(location string) Source {
	lower := strings.ToLower(location)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return HTTPSource{URL: location}
	}
	return FileSource{Path: strings.TrimPrefix(location, "file://")}
}
