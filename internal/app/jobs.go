/**
 * @description
 * Scheduled job logic. The reconnect sweep walks active providers, issues a
 * reconnect hosted auth link for stale ones, and publishes events consumed by
 * the email collaborator. The sweep runs from the cron scheduler and from the
 * external scheduler's HTTP callback; both paths share this code.
 */

package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/scoutline/outreach-service/internal/domain"
)

// staleProviderAge is how long a provider may go without an update before the
// sweep flags it for reconnection.
const staleProviderAge = 14 * 24 * time.Hour

// Jobs bundles the scheduled work with its logger.
type Jobs struct {
	service *Service
	logger  *slog.Logger
}

// NewJobs creates the job runner.
func NewJobs(service *Service, logger *slog.Logger) *Jobs {
	return &Jobs{service: service, logger: logger}
}

// RunReconnectSweep flags stale providers for reconnection. For each stale
// provider it requests a reconnect hosted auth link and publishes a
// reconnect-required event carrying it. Returns the number of providers
// flagged; per-provider failures are logged and skipped.
func (s *Service) RunReconnectSweep(ctx context.Context, logger *slog.Logger) (int, error) {
	providers, err := s.repo.ListActiveProviders(ctx)
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-staleProviderAge)
	flagged := 0
	for _, provider := range providers {
		if provider.UpdatedAt.After(cutoff) {
			continue
		}

		linkURL, err := s.CreateHostedAuthLink(ctx, provider.UserID, "reconnect", provider.AccountID)
		if err != nil {
			logger.Warn("reconnect link request failed", "provider_id", provider.ID, "error", err)
			continue
		}

		s.publish(ctx, domain.EventProviderReconnectRequired, struct {
			domain.ProviderEvent
			ReconnectURL string `json:"reconnect_url"`
		}{
			ProviderEvent: domain.ProviderEvent{
				EventID:    uuid.New(),
				UserID:     provider.UserID,
				ProviderID: provider.ID,
				AccountID:  provider.AccountID,
				OccurredAt: time.Now().UTC(),
			},
			ReconnectURL: linkURL,
		})
		flagged++
	}
	return flagged, nil
}

// ProcessReconnectSweep is the cron entry point.
func (j *Jobs) ProcessReconnectSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	flagged, err := j.service.RunReconnectSweep(ctx, j.logger)
	if err != nil {
		j.logger.Error("reconnect sweep failed", "error", err)
		return
	}
	j.logger.Info("reconnect sweep finished", "flagged", flagged)
}
