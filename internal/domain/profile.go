/**
 * @description
 * This file defines the core domain models for the outreach-service.
 * These structs represent the main entities and data transfer objects (DTOs)
 * used throughout the service's business logic, database interactions, and API layers.
 *
 * @notes
 * - Credits are stored as a plain integer balance; the debit path enforces the
 *   non-negative invariant with a conditional update at the store layer, so the
 *   domain model itself carries no floor logic.
 */

package domain

import (
	"time"

	"github.com/google/uuid"
)

// Profile represents an authenticated user's account record. It maps directly
// to the `profiles` table in the database.
type Profile struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Credits   *int       `json:"credits"` // nil when the balance was never initialized
	CompanyID *uuid.UUID `json:"company_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Recording represents a stored audio recording and its backing object-storage file.
type Recording struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	FileURL   string    `json:"file_url"`
	CreatedAt time.Time `json:"created_at"`
}

// ScoutScreening is a per-company screening configuration record. It is created
// empty by this service and populated by a separate collaborator.
type ScoutScreening struct {
	ID        uuid.UUID `json:"id"`
	CompanyID uuid.UUID `json:"company_id"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
