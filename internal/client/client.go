// Package client talks to the portfolio HTTP API. It is used by the admin
// editor and by the command-line tool.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/vbonduro/paani/internal/domain"
)

// PasswordHeader carries the admin password on write requests.
const PasswordHeader = "X-Admin-Password"

// APIError is a non-2xx response. Message and Details mirror the server's
// {error, details} body; Details is empty in production.
type APIError struct {
	Status  int
	Message string
	Details string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if e.Details != "" {
		return fmt.Sprintf("%s (%d): %s", msg, e.Status, e.Details)
	}
	return fmt.Sprintf("%s (%d)", msg, e.Status)
}

// IsUnauthorized reports whether err is a 401 from the API.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

type Client struct {
	baseURL  string
	password string
	http     *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithPassword(password string) Option {
	return func(c *Client) { c.password = password }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetPassword changes the password sent on subsequent write requests.
func (c *Client) SetPassword(password string) {
	c.password = password
}

// Login checks password against the server. On success it is kept for
// later writes.
func (c *Client) Login(ctx context.Context, password string) error {
	if err := c.doJSON(ctx, http.MethodPost, "/api/admin/login", map[string]string{"password": password}, nil); err != nil {
		return err
	}
	c.password = password
	return nil
}

func (c *Client) GetPortfolio(ctx context.Context) (*domain.PortfolioDocument, error) {
	var doc domain.PortfolioDocument
	if err := c.doJSON(ctx, http.MethodGet, "/api/portfolio", nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Read lets a Client serve as a read-only portfolio source.
func (c *Client) Read(ctx context.Context) (*domain.PortfolioDocument, error) {
	return c.GetPortfolio(ctx)
}

func (c *Client) SavePortfolio(ctx context.Context, doc *domain.PortfolioDocument) error {
	return c.doJSON(ctx, http.MethodPost, "/api/portfolio", doc, nil)
}

// Upload sends r as the multipart "file" field and returns the public URL.
func (c *Client) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	fw, err := w.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(fw, r); err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finish form: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/upload", body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var out struct {
		URL string `json:"url"`
	}
	if err := c.do(req, &out); err != nil {
		return "", err
	}
	return out.URL, nil
}

// Chat asks the FAQ endpoint question with knowledge as context.
func (c *Client) Chat(ctx context.Context, question, knowledge string) (string, error) {
	var out struct {
		Response string `json:"response"`
	}
	in := map[string]string{"question": question, "context": knowledge}
	if err := c.doJSON(ctx, http.MethodPost, "/api/chat", in, &out); err != nil {
		return "", err
	}
	return out.Response, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.password != "" {
		req.Header.Set(PasswordHeader, c.password)
	}
	return req, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var body struct {
			Error   string `json:"error"`
			Details string `json:"details"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
			apiErr.Message = body.Error
			apiErr.Details = body.Details
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
