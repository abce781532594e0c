package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"shareit/internal/api"
	"shareit/internal/models"
)

// Backend is the service the gateway forwards validated requests to.
type Backend interface {
	Forward(ctx context.Context, req ForwardRequest) (*BackendResponse, error)
	Ping(ctx context.Context) error
}

// ForwardRequest is the part of an inbound request relayed to the backend.
type ForwardRequest struct {
	Method    string
	Path      string
	RawQuery  string
	UserID    string
	RequestID string
	Body      []byte
}

// BackendResponse is relayed to the client as is.
type BackendResponse struct {
	Status      int
	ContentType string
	Body        []byte
}

// BackendClient is a plain HTTP client for the backend REST API.
type BackendClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewBackendClient constructs a client with baseURL and per-request timeout.
func NewBackendClient(baseURL string, timeout time.Duration) *BackendClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &BackendClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *BackendClient) Forward(ctx context.Context, fr ForwardRequest) (*BackendResponse, error) {
	endpoint := c.baseURL + fr.Path
	if fr.RawQuery != "" {
		endpoint += "?" + fr.RawQuery
	}

	var body io.Reader
	if len(fr.Body) > 0 {
		body = bytes.NewReader(fr.Body)
	}
	req, err := http.NewRequestWithContext(ctx, fr.Method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("build backend request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if fr.UserID != "" {
		req.Header.Set(models.UserIDHeader, fr.UserID)
	}
	if fr.RequestID != "" {
		req.Header.Set(api.RequestIDHeader, fr.RequestID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call backend %s %s: %w", fr.Method, fr.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read backend response: %w", err)
	}
	return &BackendResponse{
		Status:      resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        data,
	}, nil
}

// Ping checks the backend liveness endpoint.
func (c *BackendClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("backend health: http %d", resp.StatusCode)
	}
	return nil
}
