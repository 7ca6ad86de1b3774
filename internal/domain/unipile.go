/**
 * @description
 * Request and response models for the Unipile messaging/account-linking API.
 * Only the fields this service reads are modeled; everything else the API
 * returns is ignored during decoding.
 */

package domain

// HostedAuthLinkRequest is the payload for requesting a one-time hosted
// authentication link. The Name field carries the internal user id as a
// correlation token echoed back on the async notify callback.
type HostedAuthLinkRequest struct {
	Type               string   `json:"type"` // "create" or "reconnect"
	Providers          []string `json:"providers,omitempty"`
	ReconnectAccount   string   `json:"reconnect_account,omitempty"`
	APIURL             string   `json:"api_url"`
	ExpiresOn          string   `json:"expiresOn"`
	SuccessRedirectURL string   `json:"success_redirect_url,omitempty"`
	FailureRedirectURL string   `json:"failure_redirect_url,omitempty"`
	NotifyURL          string   `json:"notify_url,omitempty"`
	Name               string   `json:"name,omitempty"`
}

// HostedAuthLinkResponse carries the one-time URL issued by the platform.
type HostedAuthLinkResponse struct {
	Object string `json:"object"`
	URL    string `json:"url"`
}

// Chat is a conversation at the messaging platform.
type Chat struct {
	ID        string `json:"id"`
	AccountID string `json:"account_id"`
	Timestamp string `json:"timestamp,omitempty"`
}

// ChatList is the envelope returned when listing an account's conversations.
type ChatList struct {
	Object string `json:"object"`
	Items  []Chat `json:"items"`
	Cursor string `json:"cursor,omitempty"`
}

// ChatStarted is returned when a new conversation is opened with an initial message.
type ChatStarted struct {
	Object string `json:"object"`
	ChatID string `json:"chat_id"`
}

// MessageSent is returned when a message is posted into an existing conversation.
type MessageSent struct {
	Object    string `json:"object"`
	MessageID string `json:"message_id"`
}

// AccountNotification is the payload Unipile posts to the notify URL after the
// end user completes (or fails) the hosted authentication flow.
type AccountNotification struct {
	Status    string `json:"status"`
	AccountID string `json:"account_id"`
	Name      string `json:"name"` // correlation token: the internal user id
}
