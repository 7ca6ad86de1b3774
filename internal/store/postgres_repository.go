/**
 * @description
 * This file implements the `Repository` interface against PostgreSQL using the
 * pgx connection pool. Every method issues exactly one statement; there are no
 * cross-collection transactions in this service.
 *
 * @dependencies
 * - github.com/jackc/pgx/v5: PostgreSQL driver and pool.
 * - internal/domain: Domain models scanned from rows.
 */

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/scoutline/outreach-service/internal/domain"
)

// PostgresRepository is the pgx-backed implementation of Repository.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgresRepository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetProfileByID fetches a profile by its primary key. A missing row yields
// (nil, nil), never an error.
func (r *PostgresRepository) GetProfileByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	var p domain.Profile
	query := `
        SELECT id, email, credits, company_id, created_at, updated_at
        FROM profiles
        WHERE id = $1
    `
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.Email,
		&p.Credits,
		&p.CompanyID,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// GetProfileByEmail fetches a profile by email. A missing row yields (nil, nil).
func (r *PostgresRepository) GetProfileByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	var p domain.Profile
	query := `
        SELECT id, email, credits, company_id, created_at, updated_at
        FROM profiles
        WHERE email = $1
    `
	err := r.db.QueryRow(ctx, query, email).Scan(
		&p.ID,
		&p.Email,
		&p.Credits,
		&p.CompanyID,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// DebitCredits debits a profile's balance with a single conditional update so
// concurrent debits cannot produce a lost update or drive the balance below
// zero. When the update matches no row, a follow-up fetch distinguishes a
// missing profile, an uninitialized balance, and an insufficient one.
func (r *PostgresRepository) DebitCredits(ctx context.Context, email string, amount int) (int, error) {
	if amount <= 0 {
		return 0, ErrInvalidDebitAmount
	}

	var remaining int
	query := `
        UPDATE profiles
        SET credits = credits - $1, updated_at = NOW()
        WHERE email = $2 AND credits IS NOT NULL AND credits >= $1
        RETURNING credits
    `
	err := r.db.QueryRow(ctx, query, amount, email).Scan(&remaining)
	if err == nil {
		return remaining, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, err
	}

	profile, err := r.GetProfileByEmail(ctx, email)
	if err != nil {
		return 0, err
	}
	if profile == nil {
		return 0, ErrProfileNotFound
	}
	if profile.Credits == nil {
		return 0, ErrCreditsNotInitialized
	}
	return 0, ErrInsufficientCredits
}

// CreateProvider inserts a linked messaging account. Re-linking the same
// external account for a user revives the existing row instead of creating a
// duplicate.
func (r *PostgresRepository) CreateProvider(ctx context.Context, provider *domain.Provider) (*domain.Provider, error) {
	var created domain.Provider
	query := `
        INSERT INTO providers (user_id, company_id, account_id)
        VALUES ($1, $2, $3)
        ON CONFLICT (user_id, account_id) DO UPDATE SET
            deleted_at = NULL,
            updated_at = NOW()
        RETURNING id, user_id, company_id, account_id, created_at, updated_at, deleted_at
    `
	err := r.db.QueryRow(ctx, query,
		provider.UserID,
		provider.CompanyID,
		provider.AccountID,
	).Scan(
		&created.ID,
		&created.UserID,
		&created.CompanyID,
		&created.AccountID,
		&created.CreatedAt,
		&created.UpdatedAt,
		&created.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// GetProviderByUserAndAccountID fetches the caller's non-deleted provider for
// the given external account id. A missing row yields (nil, nil).
func (r *PostgresRepository) GetProviderByUserAndAccountID(ctx context.Context, userID uuid.UUID, accountID string) (*domain.Provider, error) {
	var p domain.Provider
	query := `
        SELECT id, user_id, company_id, account_id, created_at, updated_at, deleted_at
        FROM providers
        WHERE user_id = $1 AND account_id = $2 AND deleted_at IS NULL
    `
	err := r.db.QueryRow(ctx, query, userID, accountID).Scan(
		&p.ID,
		&p.UserID,
		&p.CompanyID,
		&p.AccountID,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// ListProvidersByUser returns the caller's non-deleted providers.
func (r *PostgresRepository) ListProvidersByUser(ctx context.Context, userID uuid.UUID) ([]domain.Provider, error) {
	query := `
        SELECT id, user_id, company_id, account_id, created_at, updated_at, deleted_at
        FROM providers
        WHERE user_id = $1 AND deleted_at IS NULL
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProviders(rows)
}

// ListActiveProviders returns every non-deleted provider. Used by the
// reconnect sweep.
func (r *PostgresRepository) ListActiveProviders(ctx context.Context) ([]domain.Provider, error) {
	query := `
        SELECT id, user_id, company_id, account_id, created_at, updated_at, deleted_at
        FROM providers
        WHERE deleted_at IS NULL
        ORDER BY created_at
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProviders(rows)
}

func scanProviders(rows pgx.Rows) ([]domain.Provider, error) {
	var providers []domain.Provider
	for rows.Next() {
		var p domain.Provider
		if err := rows.Scan(
			&p.ID,
			&p.UserID,
			&p.CompanyID,
			&p.AccountID,
			&p.CreatedAt,
			&p.UpdatedAt,
			&p.DeletedAt,
		); err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}
	return providers, rows.Err()
}

// SoftDeleteProvider marks a provider as deleted without removing the row.
func (r *PostgresRepository) SoftDeleteProvider(ctx context.Context, id uuid.UUID) error {
	query := `
        UPDATE providers
        SET deleted_at = NOW(), updated_at = NOW()
        WHERE id = $1 AND deleted_at IS NULL
    `
	_, err := r.db.Exec(ctx, query, id)
	return err
}

// CreateWorkflow inserts a workflow definition.
func (r *PostgresRepository) CreateWorkflow(ctx context.Context, workflow *domain.Workflow) (*domain.Workflow, error) {
	var created domain.Workflow
	query := `
        INSERT INTO workflows (company_id, provider_id, type, limit_count, name)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, company_id, provider_id, type, limit_count, name, created_at
    `
	err := r.db.QueryRow(ctx, query,
		workflow.CompanyID,
		workflow.ProviderID,
		workflow.Type,
		workflow.LimitCount,
		workflow.Name,
	).Scan(
		&created.ID,
		&created.CompanyID,
		&created.ProviderID,
		&created.Type,
		&created.LimitCount,
		&created.Name,
		&created.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// AttachLeadsToWorkflow records workflow membership in the lead_workflows
// join collection. Duplicate pairs are ignored.
func (r *PostgresRepository) AttachLeadsToWorkflow(ctx context.Context, workflowID uuid.UUID, leadIDs []uuid.UUID) error {
	if len(leadIDs) == 0 {
		return nil
	}
	query := `
        INSERT INTO lead_workflows (lead_id, workflow_id)
        SELECT unnest($1::uuid[]), $2
        ON CONFLICT DO NOTHING
    `
	_, err := r.db.Exec(ctx, query, leadIDs, workflowID)
	return err
}

// CreateLeads batch-inserts leads and returns the number of rows written.
func (r *PostgresRepository) CreateLeads(ctx context.Context, leads []domain.Lead) (int, error) {
	if len(leads) == 0 {
		return 0, nil
	}
	batch := &pgx.Batch{}
	query := `
        INSERT INTO leads (provider_id, company_id, full_name, headline, company, location, private_identifier)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `
	for _, lead := range leads {
		batch.Queue(query,
			lead.ProviderID,
			lead.CompanyID,
			lead.FullName,
			lead.Headline,
			lead.Company,
			lead.Location,
			lead.PrivateIdentifier,
		)
	}
	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	inserted := 0
	for i := 0; i < len(leads); i++ {
		if _, err := results.Exec(); err != nil {
			return inserted, fmt.Errorf("lead insert %d failed: %w", i, err)
		}
		inserted++
	}
	return inserted, nil
}

// ListLeadsByProvider returns the leads tied to a provider.
func (r *PostgresRepository) ListLeadsByProvider(ctx context.Context, providerID uuid.UUID) ([]domain.Lead, error) {
	query := `
        SELECT id, provider_id, company_id, full_name, headline, company, location, private_identifier, created_at
        FROM leads
        WHERE provider_id = $1
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, providerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []domain.Lead
	for rows.Next() {
		var l domain.Lead
		if err := rows.Scan(
			&l.ID,
			&l.ProviderID,
			&l.CompanyID,
			&l.FullName,
			&l.Headline,
			&l.Company,
			&l.Location,
			&l.PrivateIdentifier,
			&l.CreatedAt,
		); err != nil {
			return nil, err
		}
		leads = append(leads, l)
	}
	return leads, rows.Err()
}

// CreateScoutScreening inserts an empty screening record scoped to a company.
func (r *PostgresRepository) CreateScoutScreening(ctx context.Context, companyID, userID uuid.UUID) (*domain.ScoutScreening, error) {
	var created domain.ScoutScreening
	query := `
        INSERT INTO scout_screenings (company_id, user_id)
        VALUES ($1, $2)
        RETURNING id, company_id, user_id, created_at
    `
	err := r.db.QueryRow(ctx, query, companyID, userID).Scan(
		&created.ID,
		&created.CompanyID,
		&created.UserID,
		&created.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// GetRecordingByID fetches a recording. A missing row yields (nil, nil).
func (r *PostgresRepository) GetRecordingByID(ctx context.Context, id uuid.UUID) (*domain.Recording, error) {
	var rec domain.Recording
	query := `
        SELECT id, user_id, title, file_url, created_at
        FROM recordings
        WHERE id = $1
    `
	err := r.db.QueryRow(ctx, query, id).Scan(
		&rec.ID,
		&rec.UserID,
		&rec.Title,
		&rec.FileURL,
		&rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// DeleteRecording removes a recording row.
func (r *PostgresRepository) DeleteRecording(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM recordings WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}
