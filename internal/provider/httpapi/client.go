package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/lu-zhengda/mailpane/internal/domain"
	"github.com/lu-zhengda/mailpane/internal/provider"
)

// MailsPath is the endpoint, relative to the base URL, that lists messages.
const MailsPath = "/api/mails"

// maxErrorBody caps how much of an error response is quoted in errors.
const maxErrorBody = 512

var _ provider.MessageSource = (*Client)(nil)

// Client fetches messages from the mail API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client. Its Timeout bounds a
// whole fetch, connection to last byte.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a Client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch performs GET {base}/api/mails and decodes the message array.
func (c *Client) Fetch(ctx context.Context) ([]domain.Message, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+MailsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch mails: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("failed to fetch mails: %w: %s %s",
			provider.ErrUnexpectedStatus, resp.Status, strings.TrimSpace(string(body)))
	}

	// Records are decoded one by one so a bad record only loses its own fields.
	var records []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode mails: %w", err)
	}

	msgs := make([]domain.Message, 0, len(records))
	for i, raw := range records {
		msgs = append(msgs, decodeMessage(raw, i))
	}
	return msgs, nil
}
