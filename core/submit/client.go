// Package submit implements the Submitter interface.
// It posts the RFP file and company description to the generation API as a
// multipart form and returns the raw JSON body.
package submit

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gaurav-prasanna/rfpdraft/core"
)

const (
	DefaultEndpoint  = "/process_rfp"
	defaultTimeout   = 120 * time.Second
	defaultUserAgent = "rfpdraft/1.0"
	maxErrorBody     = 512
)

// Client submits uploads to the generation API.
type Client struct {
	url       string
	userAgent string
	client    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds the whole request, including the generation wait.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.client.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.client = hc
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// New creates a Client posting to baseURL+endpoint. An empty endpoint uses
// DefaultEndpoint.
func New(baseURL, endpoint string, opts ...Option) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	c := &Client{
		url:       strings.TrimSuffix(baseURL, "/") + "/" + strings.TrimPrefix(endpoint, "/"),
		userAgent: defaultUserAgent,
		client:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL returns the submission endpoint.
func (c *Client) URL() string {
	return c.url
}

// Submit posts the upload and returns the response body. Every transport or
// status failure wraps core.ErrNetworkFailure.
func (c *Client) Submit(ctx context.Context, upload core.Upload) ([]byte, error) {
	body, contentType, err := encodeForm(upload)
	if err != nil {
		return nil, fmt.Errorf("encoding form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: posting to %s: %v", core.ErrNetworkFailure, c.url, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response body: %v", core.ErrNetworkFailure, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet := data
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		return nil, fmt.Errorf("%w: %s returned %d: %s", core.ErrNetworkFailure, c.url, resp.StatusCode, bytes.TrimSpace(snippet))
	}
	return data, nil
}

// encodeForm writes the "file" and "description" multipart fields.
func encodeForm(upload core.Upload) (io.Reader, string, error) {
	if upload.File == nil {
		return nil, "", fmt.Errorf("no file to upload")
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	name := filepath.Base(upload.FileName)
	if name == "." || name == "/" || name == "" {
		name = "rfp"
	}
	part, err := mw.CreateFormFile("file", name)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, upload.File); err != nil {
		return nil, "", fmt.Errorf("copying file: %w", err)
	}
	if err := mw.WriteField("description", upload.Description); err != nil {
		return nil, "", err
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}
