/**
 * @description
 * This package provides a thin client for the third-party voice API. The
 * service only proxies two read endpoints, so responses are returned as raw
 * JSON and forwarded to the caller verbatim.
 *
 * @dependencies
 * - context, encoding/json, fmt, io, net/http, time: Standard Go libraries.
 */

package voiceclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is a client for the voice provider's API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new voice API client.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GetModels returns the provider's model catalog as raw JSON.
func (c *Client) GetModels(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, fmt.Sprintf("%s/v1/models", c.baseURL))
}

// GetVoices returns the provider's voice catalog as raw JSON.
func (c *Client) GetVoices(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, fmt.Sprintf("%s/v1/voices", c.baseURL))
}

func (c *Client) get(ctx context.Context, url string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create http request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("voice API error: status %d, body: %s", resp.StatusCode, string(body))
	}
	return json.RawMessage(body), nil
}
