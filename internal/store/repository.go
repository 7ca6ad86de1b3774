/**
 * @description
 * This file defines the `Repository` interface, which specifies the contract for all
 * data access operations required by the outreach-service. By defining an interface,
 * we decouple the application's business logic from the specific database implementation
 * (e.g., PostgreSQL), making the code more modular and easier to test.
 *
 * The gateway contract: every method is exactly one round trip. Single-row
 * fetches return (nil, nil) when no row matches; absence is a result, not an
 * error. All other database errors propagate to the caller unchanged.
 *
 * @dependencies
 * - context: Standard Go library.
 * - github.com/google/uuid: For UUID handling.
 * - internal/domain: For the service's domain models.
 */

package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/scoutline/outreach-service/internal/domain"
)

// Custom errors returned by the repository layer.
var (
	ErrProfileNotFound       = errors.New("profile not found")
	ErrCreditsNotInitialized = errors.New("profile credits not initialized")
	ErrInsufficientCredits   = errors.New("insufficient credits")
	ErrInvalidDebitAmount    = errors.New("debit amount must be positive")
	ErrRecordingNotFound     = errors.New("recording not found")
)

// Repository defines the set of methods for interacting with the database.
type Repository interface {
	// Profile and credit methods
	GetProfileByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	GetProfileByEmail(ctx context.Context, email string) (*domain.Profile, error)
	// DebitCredits performs a single conditional update
	// (credits = credits - amount WHERE credits >= amount) and returns the
	// remaining balance. Fails with ErrInvalidDebitAmount, ErrProfileNotFound,
	// ErrCreditsNotInitialized or ErrInsufficientCredits.
	DebitCredits(ctx context.Context, email string, amount int) (int, error)

	// Provider methods. Lookups exclude soft-deleted rows.
	CreateProvider(ctx context.Context, provider *domain.Provider) (*domain.Provider, error)
	GetProviderByUserAndAccountID(ctx context.Context, userID uuid.UUID, accountID string) (*domain.Provider, error)
	ListProvidersByUser(ctx context.Context, userID uuid.UUID) ([]domain.Provider, error)
	ListActiveProviders(ctx context.Context) ([]domain.Provider, error)
	SoftDeleteProvider(ctx context.Context, id uuid.UUID) error

	// Workflow methods
	CreateWorkflow(ctx context.Context, workflow *domain.Workflow) (*domain.Workflow, error)
	AttachLeadsToWorkflow(ctx context.Context, workflowID uuid.UUID, leadIDs []uuid.UUID) error

	// Lead methods
	CreateLeads(ctx context.Context, leads []domain.Lead) (int, error)
	ListLeadsByProvider(ctx context.Context, providerID uuid.UUID) ([]domain.Lead, error)

	// Screening methods
	CreateScoutScreening(ctx context.Context, companyID, userID uuid.UUID) (*domain.ScoutScreening, error)

	// Recording methods
	GetRecordingByID(ctx context.Context, id uuid.UUID) (*domain.Recording, error)
	DeleteRecording(ctx context.Context, id uuid.UUID) error
}
