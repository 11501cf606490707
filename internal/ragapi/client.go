// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ragapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the RAG backend client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// Is matches sentinel errors by type so errors.Is works on wrapped
// instances.
func (e *ClientError) Is(target error) bool {
	var ce *ClientError
	if errors.As(target, &ce) {
		return e.Type == ce.Type
	}
	return false
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeUnreachable
	ErrTypeTimeout
	ErrTypeInvalidResponse
	ErrTypeServer
	ErrTypeNotFound
	ErrTypeUnsupportedFile
	ErrTypeSocketClosed
)

// Sentinel errors for easy checking.
var (
	ErrUnreachable         = &ClientError{Type: ErrTypeUnreachable, Message: "backend is not reachable"}
	ErrTimeout             = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
	ErrFragmentNotFound    = &ClientError{Type: ErrTypeNotFound, Message: "fragment not found"}
	ErrUnsupportedFileType = &ClientError{Type: ErrTypeUnsupportedFile, Message: "only PDF and DOCX files are supported"}
	ErrSocketClosed        = &ClientError{Type: ErrTypeSocketClosed, Message: "socket connection closed"}
)

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the RAG backend client.
type ClientConfig struct {
	// BaseURL is the backend base URL (default: http://127.0.0.1:8000)
	BaseURL string

	// Timeout for request/response calls (default: 120s; retrieval
	// queries run the full pipeline server-side)
	Timeout time.Duration

	// UploadTimeout for document uploads (default: 5m)
	UploadTimeout time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:       "http://127.0.0.1:8000",
		Timeout:       120 * time.Second,
		UploadTimeout: 5 * time.Minute,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles request/response communication with the RAG backend.
//
// The Client is thread-safe for concurrent use.
type Client struct {
	config       *ClientConfig
	httpClient   *http.Client
	uploadClient *http.Client
}

// NewClient creates a client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:8000"
	}
	if config.Timeout == 0 {
		config.Timeout = 120 * time.Second
	}
	if config.UploadTimeout == 0 {
		config.UploadTimeout = 5 * time.Minute
	}

	return &Client{
		config:       config,
		httpClient:   &http.Client{Timeout: config.Timeout},
		uploadClient: &http.Client{Timeout: config.UploadTimeout},
	}
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// =============================================================================
// QUERY OPERATIONS
// =============================================================================

// ChatNaive sends a query through the single-step retrieval endpoint
// and returns the answer text.
func (c *Client) ChatNaive(ctx context.Context, query string) (string, error) {
	var resp chatResponse
	if err := c.postJSON(ctx, "/api/chat-naiverag", queryRequest{Query: query}, &resp); err != nil {
		return "", err
	}
	return resp.Response, nil
}

// ProcessQuery sends a query through the full retrieval pipeline and
// returns the answer with its supporting evidence.
func (c *Client) ProcessQuery(ctx context.Context, query string) (*QueryResult, error) {
	var resp processResponse
	if err := c.postJSON(ctx, "/api/process-query", queryRequest{Query: query}, &resp); err != nil {
		return nil, err
	}
	return resp.toQueryResult(), nil
}

// PreprocessQuery returns reformulated variants of the query.
func (c *Client) PreprocessQuery(ctx context.Context, query string) ([]string, error) {
	var resp preprocessResponse
	if err := c.postJSON(ctx, "/api/preprocess-query", queryRequest{Query: query}, &resp); err != nil {
		return nil, err
	}
	return resp.Response, nil
}

// =============================================================================
// FRAGMENT LOOKUP
// =============================================================================

// FragmentText retrieves the full text of a document fragment by ID.
func (c *Client) FragmentText(ctx context.Context, fragmentID string) (string, error) {
	endpoint := "/api/texts/" + url.PathEscape(fragmentID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+endpoint, nil)
	if err != nil {
		return "", &ClientError{Type: ErrTypeUnreachable, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", ErrFragmentNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return "", statusError(resp)
	}

	var body fragmentResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode fragment response", Cause: err}
	}
	return body.Text, nil
}

// =============================================================================
// DOCUMENT UPLOAD
// =============================================================================

// allowedUploadExts gates uploads before any bytes leave the machine.
var allowedUploadExts = map[string]bool{
	".pdf":  true,
	".docx": true,
}

// UploadDocument sends a document to the backend for ingestion.
// Only PDF and DOCX files are accepted; anything else fails with
// ErrUnsupportedFileType without contacting the server.
func (c *Client) UploadDocument(ctx context.Context, filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedUploadExts[ext] {
		return "", ErrUnsupportedFileType
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return "", &ClientError{Type: ErrTypeUnknown, Message: "failed to build upload request", Cause: err}
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", &ClientError{Type: ErrTypeUnknown, Message: "failed to read document", Cause: err}
	}
	if err := w.Close(); err != nil {
		return "", &ClientError{Type: ErrTypeUnknown, Message: "failed to build upload request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/api/upload-document", &buf)
	if err != nil {
		return "", &ClientError{Type: ErrTypeUnreachable, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.uploadClient.Do(req)
	if err != nil {
		return "", transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", statusError(resp)
	}

	var body uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode upload response", Cause: err}
	}
	return body.Response, nil
}

// =============================================================================
// INTERNAL HELPERS
// =============================================================================

// postJSON sends a JSON request body and decodes a JSON response into out.
func (c *Client) postJSON(ctx context.Context, endpoint string, in, out interface{}) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return &ClientError{Type: ErrTypeUnknown, Message: "failed to encode request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+endpoint, bytes.NewReader(payload))
	if err != nil {
		return &ClientError{Type: ErrTypeUnreachable, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}
	return nil
}

// transportError maps a round-trip failure to a typed client error.
func transportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	var ue *url.Error
	if errors.As(err, &ue) && ue.Timeout() {
		return ErrTimeout
	}
	return &ClientError{Type: ErrTypeUnreachable, Message: "backend is not reachable", Cause: err}
}

// statusError maps a non-200 response to a typed client error. The
// body is drained but its content is not trusted for display.
func statusError(resp *http.Response) error {
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	return &ClientError{
		Type:    ErrTypeServer,
		Message: "unexpected status from backend: " + resp.Status,
	}
}
