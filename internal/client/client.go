// Package client is a typed client for the octo JSON API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/JaimeStill/octo/internal/agents"
	"github.com/JaimeStill/octo/internal/session"
	"github.com/JaimeStill/octo/pkg/handlers"
	"github.com/JaimeStill/octo/pkg/pagination"
)

const maxResponseBytes = 4 << 20

// Config holds configuration for creating a Client.
type Config struct {
	// BaseURL is the API root, e.g. "http://localhost:8080/api".
	BaseURL string

	// Token is sent as a bearer token on every request.
	Token string

	// HTTPClient defaults to http.DefaultClient.
	HTTPClient *http.Client

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Client calls the agents API as one user.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// APIError is a non-2xx response. It unwraps to the matching agents error so callers
// can test it with errors.Is.
type APIError struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return &agents.ValidationError{Fields: e.Fields}
	case http.StatusUnauthorized:
		return agents.ErrUnauthorized
	case http.StatusForbidden:
		return agents.ErrForbidden
	case http.StatusNotFound:
		return agents.ErrNotFound
	case http.StatusConflict:
		return agents.ErrDuplicate
	default:
		return nil
	}
}

// New creates a client from cfg.
func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		return nil, errors.New("client: base url required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("client: invalid base url: %w", err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    base,
		token:      cfg.Token,
		httpClient: httpClient,
		logger:     logger.With("system", "client"),
	}, nil
}

// Session returns the user behind the client's token.
func (c *Client) Session(ctx context.Context) (*session.Info, error) {
	var info session.Info
	if err := c.do(ctx, http.MethodGet, "/session", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// List fetches one page of agents.
func (c *Client) List(ctx context.Context, q agents.ListQuery) (*pagination.PageResult[agents.Agent], error) {
	values := url.Values{}
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		values.Set("page_size", strconv.Itoa(q.PageSize))
	}

	path := "/agents"
	if len(values) > 0 {
		path += "?" + values.Encode()
	}

	var result pagination.PageResult[agents.Agent]
	if err := c.do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Find fetches one agent.
func (c *Client) Find(ctx context.Context, id uuid.UUID) (*agents.Agent, error) {
	var a agents.Agent
	if err := c.do(ctx, http.MethodGet, "/agents/"+id.String(), nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create submits a new agent.
func (c *Client) Create(ctx context.Context, cmd agents.CreateCommand) (*agents.Agent, error) {
	var a agents.Agent
	if err := c.do(ctx, http.MethodPost, "/agents", cmd, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("client: building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("client: reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var e handlers.ErrorResponse
		if json.Unmarshal(data, &e) == nil && e.Error != "" {
			apiErr.Message = e.Error
			apiErr.Fields = e.Fields
		}
		c.logger.Debug("api error", "method", method, "path", path, "status", resp.StatusCode)
		return apiErr
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("client: decoding response: %w", err)
	}
	return nil
}
