/**
 * @description
 * This package provides a client for interacting with the Unipile messaging API.
 * It encapsulates the logic for making authenticated HTTP requests to Unipile's
 * account-linking and chat endpoints.
 *
 * Key features:
 * - Manages the API base URL and access token.
 * - Provides methods for hosted auth links, chat listing, and message dispatch.
 * - Handles JSON serialization/deserialization and error handling for API calls.
 *
 * The client performs no retry, no backoff, and carries no idempotency key; a
 * caller re-invoking StartNewChat after a timeout may create a duplicate
 * conversation upstream.
 *
 * @dependencies
 * - bytes, context, encoding/json, fmt, io, net/http, net/url, time: Standard Go libraries.
 * - The service's internal domain package for Unipile request/response models.
 */

package unipileclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/scoutline/outreach-service/internal/domain"
)

// Client is a client for the Unipile API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new Unipile API client.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// CreateHostedAuthLink requests a one-time hosted link the end user opens to
// authorize account linking (or reconnect an expired one).
func (c *Client) CreateHostedAuthLink(ctx context.Context, req domain.HostedAuthLinkRequest) (*domain.HostedAuthLinkResponse, error) {
	u := fmt.Sprintf("%s/api/v1/hosted/accounts/link", c.baseURL)
	var resp domain.HostedAuthLinkResponse

	if err := c.do(ctx, http.MethodPost, u, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetAllChats lists the existing conversations for a linked external account.
func (c *Client) GetAllChats(ctx context.Context, accountID string) (*domain.ChatList, error) {
	u := fmt.Sprintf("%s/api/v1/chats?account_id=%s", c.baseURL, url.QueryEscape(accountID))
	var resp domain.ChatList

	if err := c.do(ctx, http.MethodGet, u, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// StartNewChat opens a new conversation and sends the first message in one call.
func (c *Client) StartNewChat(ctx context.Context, accountID, text string, attendeesIDs []string) (*domain.ChatStarted, error) {
	u := fmt.Sprintf("%s/api/v1/chats", c.baseURL)
	if attendeesIDs == nil {
		attendeesIDs = []string{}
	}
	body := map[string]interface{}{
		"account_id":    accountID,
		"text":          text,
		"attendees_ids": attendeesIDs,
	}
	var resp domain.ChatStarted

	if err := c.do(ctx, http.MethodPost, u, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SendMessage posts a message into an existing conversation.
func (c *Client) SendMessage(ctx context.Context, chatID, text string) (*domain.MessageSent, error) {
	u := fmt.Sprintf("%s/api/v1/chats/%s/messages", c.baseURL, url.PathEscape(chatID))
	body := map[string]string{"text": text}
	var resp domain.MessageSent

	if err := c.do(ctx, http.MethodPost, u, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// do is a helper function to make HTTP requests to the Unipile API.
func (c *Client) do(ctx context.Context, method, url string, body, target interface{}) error {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create http request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-API-KEY", c.apiKey)

	log.Printf("level=info component=unipile_client msg=\"api request\" method=%s url=%s", method, url)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("level=error component=unipile_client msg=\"non-success status\" status=%d body=%s", resp.StatusCode, string(respBody))
		return fmt.Errorf("unipile API error: status %d, body: %s", resp.StatusCode, string(respBody))
	}

	if target != nil {
		if err := json.Unmarshal(respBody, target); err != nil {
			return fmt.Errorf("failed to unmarshal response body: %w", err)
		}
	}

	return nil
}
