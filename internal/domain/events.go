/**
 * @description
 * Event payloads published to RabbitMQ when notable domain state changes occur.
 * Consumers (email delivery, analytics) live outside this service.
 */

package domain

import (
	"time"

	"github.com/google/uuid"
)

// Routing keys for published events.
const (
	EventProviderLinked            = "provider.linked"
	EventProviderReconnectRequired = "provider.reconnect_required"
	EventWorkflowCreated           = "workflow.created"
	EventCreditsDebited            = "credits.debited"
)

// ProviderEvent is emitted when a provider is linked or flagged for reconnect.
type ProviderEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	UserID     uuid.UUID `json:"user_id"`
	ProviderID uuid.UUID `json:"provider_id"`
	AccountID  string    `json:"account_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// WorkflowEvent is emitted when a workflow is created.
type WorkflowEvent struct {
	EventID    uuid.UUID    `json:"event_id"`
	WorkflowID uuid.UUID    `json:"workflow_id"`
	ProviderID uuid.UUID    `json:"provider_id"`
	CompanyID  uuid.UUID    `json:"company_id"`
	Type       WorkflowType `json:"type"`
	OccurredAt time.Time    `json:"occurred_at"`
}

// CreditsEvent is emitted after a successful credit debit.
type CreditsEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Email      string    `json:"email"`
	Amount     int       `json:"amount"`
	Remaining  int       `json:"remaining"`
	OccurredAt time.Time `json:"occurred_at"`
}
