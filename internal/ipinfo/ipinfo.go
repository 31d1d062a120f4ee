// Package ipinfo resolves the server's public IP for visit logging.
// Lookups are best-effort: any failure or timeout degrades to the
// Unknown sentinel and is never surfaced to the viewer.
package ipinfo

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// Unknown is recorded when the lookup fails or times out.
const Unknown = "unknown"

// maxResponseSize caps the body read; an IP address is tiny.
const maxResponseSize = 256

// Client queries a plain-text IP echo endpoint.
type Client struct {
	endpoint   string
	timeout    time.Duration
	httpClient *http.Client
}

// New creates a client for the given echo endpoint. timeout bounds each
// lookup; 2 seconds is the intended production value.
func New(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint:   endpoint,
		timeout:    timeout,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Lookup returns the public IP reported by the endpoint, or an error.
// Callers that must not fail should use LookupOrUnknown.
func (c *Client) Lookup(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("build ip lookup request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ip lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ip lookup: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("read ip lookup response: %w", err)
	}

	ip := strings.TrimSpace(string(body))
	if net.ParseIP(ip) == nil {
		return "", fmt.Errorf("ip lookup: response %q is not an address", ip)
	}
	return ip, nil
}

// LookupOrUnknown is Lookup degraded to the Unknown sentinel on any
// failure.
func (c *Client) LookupOrUnknown(ctx context.Context) string {
	ip, err := c.Lookup(ctx)
	if err != nil {
		return Unknown
	}
	return ip
}
