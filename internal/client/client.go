// Package client is the HTTP client for the directory service. It speaks
// the json-server layout (/persons, /persons/{id}) so it works against the
// bundled server and against a plain json-server alike.
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
	"strings"
	"time"

	"github.com/starford/phonebook/internal/models"
	"github.com/starford/phonebook/internal/phonebook"
)

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 4 << 20

// Config holds configuration for a Client.
type Config struct {
	// BaseURL is the directory root, e.g. "http://localhost:3001/api".
	// Requests go to BaseURL + "/persons".
	BaseURL string

	// Token, when set, is sent as a Bearer token.
	Token string

	// Timeout bounds each request. Zero means no timeout beyond ctx.
	Timeout time.Duration

	// HTTPClient defaults to a client with Timeout.
	HTTPClient *http.Client

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Client implements phonebook.Remote over HTTP.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ phonebook.Remote = (*Client)(nil)

// StatusError is returned for non-2xx responses that have no more specific
// meaning.
type StatusError struct {
	Method  string
	Path    string
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Code)
	}
	return fmt.Sprintf("client: %s %s: %d %s", e.Method, e.Path, e.Code, msg)
}

// New creates a Client. BaseURL must be an absolute http(s) URL.
func New(cfg Config) (*Client, error) {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("client: parse base url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("client: base url must be absolute http(s), got %q", cfg.BaseURL)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// List fetches every contact.
func (c *Client) List(ctx context.Context) ([]models.Contact, error) {
	var out []models.Contact
	if err := c.do(ctx, http.MethodGet, "/persons", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Contact{}
	}
	return out, nil
}

// Create posts a new contact and returns it with the id assigned by the
// server.
func (c *Client) Create(ctx context.Context, contact models.Contact) (models.Contact, error) {
	var out models.Contact
	body := models.Contact{Name: contact.Name, Number: contact.Number}
	if err := c.do(ctx, http.MethodPost, "/persons", body, &out); err != nil {
		return models.Contact{}, err
	}
	return out, nil
}

// Update replaces the contact with id. A 404 is reported as
// phonebook.ErrStaleRecord.
func (c *Client) Update(ctx context.Context, id string, contact models.Contact) (models.Contact, error) {
	var out models.Contact
	contact.ID = id
	err := c.do(ctx, http.MethodPut, "/persons/"+url.PathEscape(id), contact, &out)
	if err != nil {
		return models.Contact{}, staleOn404(err)
	}
	return out, nil
}

// Delete removes the contact with id. A 404 is reported as
// phonebook.ErrStaleRecord.
func (c *Client) Delete(ctx context.Context, id string) error {
	return staleOn404(c.do(ctx, http.MethodDelete, "/persons/"+url.PathEscape(id), nil, nil))
}

func staleOn404(err error) error {
	var se *StatusError
	if errors.As(err, &se) && se.Code == http.StatusNotFound {
		return fmt.Errorf("%s %s: %w", se.Method, se.Path, phonebook.ErrStaleRecord)
	}
	return err
}

// do sends a JSON request and decodes a JSON response into out when out is
// non-nil. Non-2xx responses become *StatusError.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("client: encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("client: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("directory request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(start)))

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("client: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Method: method, Path: path, Code: resp.StatusCode, Message: errorMessage(data)}
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("client: decode %s %s: %w", method, path, err)
	}
	return nil
}

// errorMessage extracts {"error": "..."} from an error body.
func errorMessage(data []byte) string {
	var body struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(data, &body) == nil {
		return body.Error
	}
	return ""
}
