package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/naveenspark/boxview/pkg/domain"
)

// DefaultBaseURL is the public Box View API endpoint.
const DefaultBaseURL = "https://view-api.box.com"

// CreateSessionRequest is the payload for creating a viewing session.
// Duration and ExpiresAt are optional; the API applies its own default
// lifetime when both are empty.
type CreateSessionRequest struct {
	DocumentID string
	Duration   time.Duration
	ExpiresAt  time.Time
}

type createSessionBody struct {
	DocumentID string     `json:"document_id"`
	Duration   int        `json:"duration,omitempty"` // minutes
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
}

// Client is the Box View API client.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a new API client.
func New(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API base the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CreateSession creates a viewing session for a converted document.
// If the document is still converting it returns a *NotReadyError.
func (c *Client) CreateSession(ctx context.Context, req CreateSessionRequest) (*domain.Session, error) {
	if req.DocumentID == "" {
		return nil, fmt.Errorf("client.CreateSession: %w", domain.ErrDocumentIDNotFound)
	}
	body := createSessionBody{DocumentID: req.DocumentID}
	if req.Duration > 0 {
		body.Duration = int(req.Duration.Round(time.Minute) / time.Minute)
		if body.Duration == 0 {
			body.Duration = 1
		}
	}
	if !req.ExpiresAt.IsZero() {
		exp := req.ExpiresAt.UTC()
		body.ExpiresAt = &exp
	}

	var s domain.Session
	resp, err := c.doRequest(ctx, http.MethodPost, "/1/sessions", body, &s)
	if err != nil {
		return nil, fmt.Errorf("client.CreateSession: %w", err)
	}
	if resp.StatusCode == http.StatusAccepted {
		return nil, fmt.Errorf("client.CreateSession: %w", &NotReadyError{
			DocumentID: req.DocumentID,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		})
	}
	// Some deployments omit the document reference in the response.
	if _, err := s.DocumentID(); err != nil {
		exp, _ := s.ExpirationDate() //nolint:errcheck // zero time keeps the field unset
		s = domain.NewSession(
			domain.WithSessionID(s.ID()),
			domain.WithDocumentID(req.DocumentID),
			domain.WithExpirationDate(exp),
		)
	}
	return &s, nil
}

// GetDocument fetches a document's metadata by ID.
func (c *Client) GetDocument(ctx context.Context, id string) (*domain.Document, error) {
	var doc domain.Document
	if _, err := c.get(ctx, "/1/documents/"+url.PathEscape(id), &doc); err != nil {
		return nil, fmt.Errorf("client.GetDocument: %w", err)
	}
	return &doc, nil
}

func (c *Client) get(ctx context.Context, path string, out any) (*http.Response, error) {
	return c.doRequest(ctx, http.MethodGet, path, nil, out)
}

// doRequest sends a JSON request and decodes a 2xx body into out.
// The returned response has its body closed; only status and headers are valid.
func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Token "+c.apiKey)
	}
	reqID := uuid.NewString()
	req.Header.Set("X-Request-Id", reqID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.DebugContext(ctx, "request failed", "method", method, "path", path, "request_id", reqID, "error", err)
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close
	c.logger.DebugContext(ctx, "request done",
		"method", method, "path", path, "request_id", reqID,
		"status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
		if readErr != nil {
			return nil, &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		var apiErr struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil {
			if apiErr.Message != "" {
				return nil, &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Message}
			}
			if apiErr.Error != "" {
				return nil, &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Error}
			}
		}
		return nil, &HTTPError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
	}

	if out != nil && resp.StatusCode != http.StatusAccepted && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp, nil
}

// parseRetryAfter accepts both delta-seconds and HTTP-date forms.
func parseRetryAfter(v string) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}
