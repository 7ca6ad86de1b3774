/**
 * @description
 * Domain models for linked messaging accounts (providers) and the automation
 * workflows that run against them.
 */

package domain

import (
	"time"

	"github.com/google/uuid"
)

// Provider represents a user's linked external messaging account. Rows are
// soft-deleted: a non-nil DeletedAt excludes the provider from every lookup.
type Provider struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	CompanyID uuid.UUID  `json:"company_id"`
	AccountID string     `json:"account_id"` // external account reference at the messaging platform
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// WorkflowType enumerates the supported outreach modes.
type WorkflowType string

const (
	WorkflowTypeConnect WorkflowType = "connect"
	WorkflowTypeMessage WorkflowType = "message"
	WorkflowTypeVisit   WorkflowType = "visit"
)

// Valid reports whether t is a known workflow type.
func (t WorkflowType) Valid() bool {
	switch t {
	case WorkflowTypeConnect, WorkflowTypeMessage, WorkflowTypeVisit:
		return true
	}
	return false
}

// DisplayName derives the human-readable workflow name from its type.
func (t WorkflowType) DisplayName() string {
	switch t {
	case WorkflowTypeConnect:
		return "Connection Campaign"
	case WorkflowTypeMessage:
		return "Message Campaign"
	case WorkflowTypeVisit:
		return "Profile Visit Campaign"
	}
	return "Campaign"
}

// Workflow is a configured automation run definition tied to a provider.
// Workflows are created once per automation request and never mutated by the
// routes in this service.
type Workflow struct {
	ID         uuid.UUID    `json:"id"`
	CompanyID  uuid.UUID    `json:"company_id"`
	ProviderID uuid.UUID    `json:"provider_id"`
	Type       WorkflowType `json:"type"`
	LimitCount int          `json:"limit_count"`
	Name       string       `json:"name"`
	CreatedAt  time.Time    `json:"created_at"`
}

// Lead is a prospect record targeted by workflows. Leads are populated either
// by an external enrichment collaborator or through the spreadsheet import
// endpoint; this service otherwise treats them as read-only.
type Lead struct {
	ID                uuid.UUID `json:"id"`
	ProviderID        uuid.UUID `json:"provider_id"`
	CompanyID         uuid.UUID `json:"company_id"`
	FullName          string    `json:"full_name"`
	Headline          string    `json:"headline,omitempty"`
	Company           string    `json:"company,omitempty"`
	Location          string    `json:"location,omitempty"`
	PrivateIdentifier string    `json:"private_identifier"` // external account ref used for message dispatch
	CreatedAt         time.Time `json:"created_at"`
}

// CreateWorkflowRequest is the DTO for incoming workflow creation API requests.
type CreateWorkflowRequest struct {
	AccountID  string       `json:"account_id"`
	Type       WorkflowType `json:"type"`
	LimitCount int          `json:"limit_count"`
}

// DispatchMessageRequest is the DTO for bulk message dispatch API requests.
type DispatchMessageRequest struct {
	AccountID                string   `json:"account_id"`
	TargetPrivateIdentifiers []string `json:"target_private_identifiers"`
	Message                  string   `json:"message"`
}

// DispatchResult captures the outcome of one target's delivery attempt.
type DispatchResult struct {
	Target string `json:"target"`
	ChatID string `json:"chat_id,omitempty"`
	Error  string `json:"error,omitempty"`
}

// DispatchReport aggregates per-target outcomes for a bulk dispatch run.
type DispatchReport struct {
	Sent    int              `json:"sent"`
	Failed  int              `json:"failed"`
	Results []DispatchResult `json:"results"`
}
