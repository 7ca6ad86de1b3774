/**
 * @description
 * This package provides a client for the managed object-storage HTTP API. The
 * service only deletes files (the recording cleanup path), so a single
 * operation is exposed.
 *
 * @dependencies
 * - context, fmt, io, net/http, net/url, strings, time: Standard Go libraries.
 */

package storageclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is a client for the object-storage API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new storage API client.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// DeleteObject removes a stored file from the given bucket. The object path
// may be a bare key or a full public URL; anything up to and including the
// bucket segment is stripped.
func (c *Client) DeleteObject(ctx context.Context, bucket, objectPath string) error {
	key := ObjectKeyFromURL(bucket, objectPath)
	if key == "" {
		return fmt.Errorf("empty object key for bucket %s", bucket)
	}

	u := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, url.PathEscape(bucket), key)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create http request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("storage API error: status %d, body: %s", resp.StatusCode, string(body))
	}
	return nil
}

// ObjectKeyFromURL extracts the object key from a stored file reference. Full
// public URLs keep everything after the bucket segment; bare keys pass
// through unchanged.
func ObjectKeyFromURL(bucket, ref string) string {
	trimmed := strings.TrimSpace(ref)
	marker := "/" + bucket + "/"
	if idx := strings.Index(trimmed, marker); idx >= 0 {
		return trimmed[idx+len(marker):]
	}
	return strings.TrimPrefix(trimmed, "/")
}
