package api

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/apeerhq/apeer/internal/errors"
)

// TokenSource supplies the current bearer token, or "" when logged out.
type TokenSource func() string

// UnauthorizedHook is invoked once per 401 response, before the classified
// error is returned to the caller. It is a global policy hook: the session
// layer uses it to clear persisted credentials and force navigation back to
// the landing view.
type UnauthorizedHook func()

// Client is the APeer backend API client. All outgoing requests share one
// base URL, one timeout, and one token source; response-side error
// classification is centralized here so callers pattern-match on error
// kinds instead of inspecting status codes.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	tokenSource    TokenSource
	onUnauthorized UnauthorizedHook
}

// NewClient creates a new API client against the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// WithTokenSource sets the bearer token supplier.
func (c *Client) WithTokenSource(src TokenSource) *Client {
	c.tokenSource = src
	return c
}

// WithUnauthorizedHook registers the global 401 handler.
func (c *Client) WithUnauthorizedHook(hook UnauthorizedHook) *Client {
	c.onUnauthorized = hook
	return c
}

// Request describes one HTTP exchange. Body and Multipart are mutually
// exclusive; a multipart payload carries its own content type (with
// boundary) and must not be overridden with application/json.
type Request struct {
	Method string
	Path   string

	// Body is JSON-marshalled when non-nil.
	Body any

	// Multipart is used verbatim as the request body.
	Multipart   io.Reader
	ContentType string
}

// Do performs one HTTP exchange. At most one attempt is made; callers that
// need endpoint fallback compose calls with First.
//
// The returned response is live; use DecodeJSON or drain and close it.
func (c *Client) Do(ctx context.Context, req Request) (*http.Response, error) {
	var reqBody io.Reader
	contentType := ""

	switch {
	case req.Multipart != nil:
		reqBody = req.Multipart
		contentType = req.ContentType
	case req.Body != nil:
		jsonBody, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
		contentType = "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, c.BaseURL+req.Path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if c.tokenSource != nil {
		if token := c.tokenSource(); token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, c.classifyTransportError(err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}

	defer resp.Body.Close()
	return nil, c.classifyStatus(resp, req.Path)
}

// DoJSON performs an exchange and decodes a 2xx response body into target.
// A nil target drains and discards the body.
func (c *Client) DoJSON(ctx context.Context, req Request, target any) error {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return err
	}
	return DecodeJSON(resp, target)
}

// DecodeJSON decodes and closes a successful response body.
func DecodeJSON(resp *http.Response, target any) error {
	defer resp.Body.Close()

	if target == nil {
		_, err := io.Copy(io.Discard, resp.Body)
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// classifyStatus maps a non-2xx response to the closed error taxonomy.
// The body's {error|message} fields, when parseable, contribute detail.
func (c *Client) classifyStatus(resp *http.Response, path string) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	detail := errorDetail(body)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return errors.NewUnauthorizedError()
	case resp.StatusCode == http.StatusForbidden:
		return errors.NewForbiddenError(detail)
	case resp.StatusCode == http.StatusNotFound:
		return errors.NewNotFoundError(path)
	case resp.StatusCode >= 500:
		return errors.NewServerError(resp.StatusCode, detail)
	default:
		msg := fmt.Sprintf("request failed with status %d", resp.StatusCode)
		if detail != "" {
			msg = detail
		}
		return errors.New(errors.ErrCodeUnclassified, errors.KindUnclassified, msg)
	}
}

// classifyTransportError handles failures where no response was received.
// Connection refusal gets the "backend is not running" remediation hint.
func (c *Client) classifyTransportError(err error) error {
	if stderrors.Is(err, syscall.ECONNREFUSED) || isConnectionRefused(err) {
		return errors.NewBackendOfflineError(c.BaseURL, err)
	}

	var netErr net.Error
	if stderrors.As(err, &netErr) {
		return errors.Wrap(errors.ErrCodeBackendOffline, errors.KindNetworkUnreachable,
			"no response from server", err)
	}

	return errors.Wrap(errors.ErrCodeUnclassified, errors.KindUnclassified,
		"request failed", err)
}

func isConnectionRefused(err error) bool {
	var opErr *net.OpError
	return stderrors.As(err, &opErr) && opErr.Op == "dial"
}

// errorDetail extracts a human-readable message from an API error body.
func errorDetail(body []byte) string {
	var errResp struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil {
		if errResp.Error != "" {
			return errResp.Error
		}
		if errResp.Message != "" {
			return errResp.Message
		}
	}
	return strings.TrimSpace(string(body))
}

// Operation is one candidate call in an ordered fallback chain.
type Operation func(ctx context.Context) error

// First runs candidate operations in order and returns nil on the first
// success. Each candidate fully resolves before the next starts. When all
// fail, the LAST failure is returned so the error reflects the endpoint
// the chain settled on.
func First(ctx context.Context, ops ...Operation) error {
	var lastErr error
	for _, op := range ops {
		if lastErr = op(ctx); lastErr == nil {
			return nil
		}
	}
	return lastErr
}

// Download fetches a binary resource and materializes it at dest. The body
// is staged in a temp file in the destination directory and renamed into
// place; the temp file is removed on every failure path.
func (c *Client) Download(ctx context.Context, path, dest string) error {
	resp, err := c.Do(ctx, Request{Method: http.MethodGet, Path: path})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".apeer-download-*")
	if err != nil {
		return fmt.Errorf("failed to stage download: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write download: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to finalize download: %w", err)
	}

	return os.Rename(tmp.Name(), dest)
}
