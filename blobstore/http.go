package blobstore

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/hupe1980/hups/resource"
)

// HTTPStore reads blobs relative to a base URL. Bodies are read completely
// when the blob is opened.
type HTTPStore struct {
	base   string
	client *http.Client
	rc     *resource.Controller
	header http.Header
}

// HTTPOption configures an HTTPStore.
type HTTPOption func(*HTTPStore)

// WithHTTPClient sets the client used for requests.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(s *HTTPStore) { s.client = c }
}

// WithController charges downloaded bytes against the controller's IO limit.
func WithController(rc *resource.Controller) HTTPOption {
	return func(s *HTTPStore) { s.rc = rc }
}

// WithHeader adds a request header.
func WithHeader(key, value string) HTTPOption {
	return func(s *HTTPStore) { s.header.Add(key, value) }
}

// NewHTTPStore creates a store for blobs under base. base must be an http or
// https URL.
func NewHTTPStore(base string, opts ...HTTPOption) (*HTTPStore, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, base)
	}

	s := &HTTPStore{
		base:   strings.TrimSuffix(base, "/"),
		client: http.DefaultClient,
		header: make(http.Header),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Open downloads the named blob.
func (s *HTTPStore) Open(ctx context.Context, name string) (Blob, error) {
	target := s.base + "/" + strings.TrimPrefix(name, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	for k, vs := range s.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("GET %s: %w", target, ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("GET %s: unexpected status %s", target, resp.Status)
	}

	data, err := io.ReadAll(resource.NewRateLimitedReader(ctx, resp.Body, s.rc))
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", target, err)
	}
	return NewBytesBlob(data), nil
}
