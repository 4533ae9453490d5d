package teams

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/shiftavenue/shiftavenue-code-samples/google-cloud-budget-alert-relay/internal/errs"
)

// maxErrorBody bounds how much of a failed response ends up in the error.
const maxErrorBody = 512

// Client posts cards to one incoming webhook.
type Client struct {
	url        string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.httpClient = c
		}
	}
}

// NewClient creates a client for the webhook at webhookURL. The client sets
// no timeout of its own; the context passed to Post bounds each request.
func NewClient(webhookURL string, opts ...Option) *Client {
	c := &Client{
		url:        webhookURL,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Post sends card as JSON. Any non-2xx response or transport failure is a
// DeliveryError.
func (c *Client) Post(ctx context.Context, card MessageCard) error {
	body, err := json.Marshal(card)
	if err != nil {
		return errs.DeliveryError.Wrap(err, "marshal message card")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return errs.DeliveryError.Wrap(redact(err), "create webhook request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errs.DeliveryError.Wrap(redact(err), "send webhook request")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return errs.DeliveryError.New("webhook returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(excerpt)))
	}

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// redact drops the URL from err. Webhook URLs carry their credentials.
func redact(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return fmt.Errorf("%s: %w", uerr.Op, uerr.Err)
	}
	return err
}
