package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/phenrril/lojamobile/internal/domain"
)

// Client is a small JSON-over-HTTP client shared by the remote adapters.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New builds a client for baseURL. A nil hc gets a client with the given timeout.
func New(baseURL string, timeout time.Duration, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: hc}
}

func (c *Client) BaseURL() string { return c.baseURL }

// StatusError is a non-2xx answer from the remote API.
type StatusError struct {
	Method  string
	URL     string
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.URL, e.Status, e.Message)
}

func (e *StatusError) Unwrap() error {
	if e.Status == http.StatusNotFound {
		return domain.ErrNotFound
	}
	return domain.ErrRemote
}

// Do sends in as the JSON body (when non-nil) and decodes the answer into out
// (when non-nil).
func (c *Client) Do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("serializar payload: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: error de conexión con %s: %w", domain.ErrRemote, c.baseURL, err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 64<<10))
		return &StatusError{Method: method, URL: url, Status: res.StatusCode, Message: errorMessage(b)}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: %s %s: respuesta vacía", domain.ErrRemote, method, url)
		}
		return fmt.Errorf("%w: %s %s: respuesta inválida: %w", domain.ErrRemote, method, url, err)
	}
	return nil
}

// errorMessage prefers the "message" or "error" fields of a JSON error body.
func errorMessage(body []byte) string {
	var e struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err == nil {
		if e.Message != "" {
			return e.Message
		}
		if e.Error != "" {
			return e.Error
		}
	}
	s := strings.TrimSpace(string(body))
	if s == "" {
		return "error al procesar la solicitud"
	}
	return s
}
