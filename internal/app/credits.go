/**
 * @description
 * Credit gating and debiting. The gate is a pure decision function with no
 * side effects; debiting is a single conditional update at the store layer
 * followed by cache-tag invalidation and an event.
 */

package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/scoutline/outreach-service/internal/domain"
	"github.com/scoutline/outreach-service/internal/store"
)

// premiumActionCost is the flat credit price of any non-free configuration.
const premiumActionCost = 1

// ActionConfig describes the configuration of a requested premium action.
type ActionConfig struct {
	Model            string
	AllowWebBrowsing bool
}

// Decision is the outcome of the credit gate.
type Decision struct {
	CanUse          bool   `json:"can_use"`
	RequiredCredits int    `json:"required_credits"`
	Reason          string `json:"reason,omitempty"`
}

// CanUseConfiguration decides whether a caller with the given balance may run
// the requested configuration. An allow-listed model with no premium
// capability is always free; everything else costs exactly one credit. The
// function never debits the balance.
func CanUseConfiguration(credits int, cfg ActionConfig) Decision {
	if domain.IsFreeModel(cfg.Model) && !cfg.AllowWebBrowsing {
		return Decision{CanUse: true, RequiredCredits: 0}
	}
	if credits >= premiumActionCost {
		return Decision{CanUse: true, RequiredCredits: premiumActionCost}
	}
	return Decision{
		CanUse:          false,
		RequiredCredits: premiumActionCost,
		Reason:          fmt.Sprintf("This configuration requires %d credit; you have %d. Upgrade to continue.", premiumActionCost, credits),
	}
}

// CreditCache invalidates cached views of a profile's balance.
type CreditCache interface {
	InvalidateProfile(ctx context.Context, email string) error
}

// SetCreditCache installs the cache invalidated after each debit.
func (s *Service) SetCreditCache(cache CreditCache) {
	s.creditCache = cache
}

// DebitCredits removes amount credits from the profile identified by email and
// returns the remaining balance. Validation and the balance floor are enforced
// by the repository's conditional update.
func (s *Service) DebitCredits(ctx context.Context, email string, amount int) (int, error) {
	if amount <= 0 {
		return 0, store.ErrInvalidDebitAmount
	}
	remaining, err := s.repo.DebitCredits(ctx, email, amount)
	if err != nil {
		return 0, err
	}

	if s.creditCache != nil {
		if err := s.creditCache.InvalidateProfile(ctx, email); err != nil {
			log.Printf("level=warn component=credits msg=\"cache invalidation failed\" email=%s err=%v", email, err)
		}
	}

	s.publish(ctx, domain.EventCreditsDebited, domain.CreditsEvent{
		EventID:    uuid.New(),
		Email:      email,
		Amount:     amount,
		Remaining:  remaining,
		OccurredAt: time.Now().UTC(),
	})
	return remaining, nil
}
