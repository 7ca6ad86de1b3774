/**
 * @description
 * This file contains the core business logic for the outreach-service. The `Service`
 * struct orchestrates account linking, workflow creation, and bulk message dispatch,
 * coordinating between the database repository, the Unipile messaging client, and
 * the message broker.
 *
 * Key features:
 * - Hosted auth link issuance with the internal user id as correlation token.
 * - Provider ownership checks before any messaging operation.
 * - Structured fan-out for bulk dispatch: every target's outcome is gathered
 *   and reported, and the call returns only after all sends complete.
 * - Publishes events to RabbitMQ for asynchronous processing by other services.
 *
 * @dependencies
 * - context, errors, fmt, log, sync, time: Standard Go libraries.
 * - github.com/google/uuid: For UUID generation.
 * - internal/domain, internal/store: For domain models and data access.
 * - pkg/rabbitmq: For event publishing.
 */

package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/scoutline/outreach-service/internal/domain"
	"github.com/scoutline/outreach-service/internal/store"
	"github.com/scoutline/outreach-service/pkg/rabbitmq"
)

// dispatchWorkers caps how many targets are messaged concurrently in one
// bulk dispatch run.
const dispatchWorkers = 5

// Errors surfaced to the API layer.
var (
	ErrProviderNotOwned   = errors.New("no linked account matches the supplied account id")
	ErrRecordingNotOwned  = errors.New("recording is not owned by the caller")
	ErrInvalidWorkflow    = errors.New("invalid workflow request")
	ErrNoDispatchTargets  = errors.New("no dispatch targets supplied")
	ErrEmptyMessage       = errors.New("message body must not be empty")
	ErrMessagingDisabled  = errors.New("messaging client is not configured")
	ErrRateLimited        = errors.New("dispatch rate limit exceeded")
	ErrStorageUnavailable = errors.New("storage client is not configured")
)

// RateLimitedError reports a denied dispatch together with the window reset
// delay, so the route can emit a Retry-After header. Callers may still match
// it with errors.Is(err, ErrRateLimited).
type RateLimitedError struct {
	RetryAfterSeconds int
}

func (e *RateLimitedError) Error() string { return ErrRateLimited.Error() }

func (e *RateLimitedError) Is(target error) bool { return target == ErrRateLimited }

// MessagingClient is the subset of the Unipile client the service depends on.
type MessagingClient interface {
	CreateHostedAuthLink(ctx context.Context, req domain.HostedAuthLinkRequest) (*domain.HostedAuthLinkResponse, error)
	GetAllChats(ctx context.Context, accountID string) (*domain.ChatList, error)
	StartNewChat(ctx context.Context, accountID, text string, attendeesIDs []string) (*domain.ChatStarted, error)
	SendMessage(ctx context.Context, chatID, text string) (*domain.MessageSent, error)
}

// StorageClient deletes stored objects backing recording rows.
type StorageClient interface {
	DeleteObject(ctx context.Context, bucket, objectPath string) error
}

// RateLimiter bounds how often a subject may trigger an operation within a
// window. A nil limiter disables limiting.
type RateLimiter interface {
	ConsumeRateLimit(ctx context.Context, scope, subject string, limit int, window time.Duration) (count int, retryAfterSeconds int, err error)
}

// HostedAuthConfig carries the settings needed to build hosted auth link requests.
type HostedAuthConfig struct {
	APIURL     string
	BaseURL    string // production base URL for redirect/notify targets
	LinkTTL    time.Duration
	ProviderID string // platform identifier, e.g. "LINKEDIN"
}

// Service provides the core business logic for outreach orchestration.
type Service struct {
	repo          store.Repository
	messaging     MessagingClient
	storage       StorageClient
	eventProducer rabbitmq.Publisher
	exchange      string
	authCfg       HostedAuthConfig

	rateLimiter         RateLimiter
	dispatchLimitPerMin int
	storageBucket       string
	creditCache         CreditCache
	generator           TextGenerator
}

// NewService creates a new outreach service instance.
func NewService(repo store.Repository, messaging MessagingClient, storage StorageClient, producer rabbitmq.Publisher, exchange string, authCfg HostedAuthConfig) *Service {
	return &Service{
		repo:          repo,
		messaging:     messaging,
		storage:       storage,
		eventProducer: producer,
		exchange:      exchange,
		authCfg:       authCfg,
	}
}

// SetDispatchRateLimiter installs a distributed rate limiter for bulk dispatch.
func (s *Service) SetDispatchRateLimiter(limiter RateLimiter, limitPerMinute int) {
	s.rateLimiter = limiter
	s.dispatchLimitPerMin = limitPerMinute
}

// SetStorageBucket configures the bucket recordings are stored in.
func (s *Service) SetStorageBucket(bucket string) {
	s.storageBucket = bucket
}

// CreateHostedAuthLink requests a one-time hosted link for the user to link
// (or reconnect) a messaging account. The user id rides along as the link's
// name so the async notify callback can correlate it back.
func (s *Service) CreateHostedAuthLink(ctx context.Context, userID uuid.UUID, linkType, reconnectAccountID string) (string, error) {
	if s.messaging == nil {
		return "", ErrMessagingDisabled
	}
	if linkType != "create" && linkType != "reconnect" {
		return "", fmt.Errorf("unsupported link type %q", linkType)
	}

	req := domain.HostedAuthLinkRequest{
		Type:               linkType,
		APIURL:             s.authCfg.APIURL,
		ExpiresOn:          time.Now().Add(s.authCfg.LinkTTL).UTC().Format(time.RFC3339),
		SuccessRedirectURL: s.authCfg.BaseURL + "/dashboard?linked=1",
		FailureRedirectURL: s.authCfg.BaseURL + "/dashboard?linked=0",
		NotifyURL:          s.authCfg.BaseURL + "/api/provider/auth/notify",
		Name:               userID.String(),
	}
	if linkType == "reconnect" {
		req.ReconnectAccount = reconnectAccountID
	} else {
		req.Providers = []string{s.authCfg.ProviderID}
	}

	resp, err := s.messaging.CreateHostedAuthLink(ctx, req)
	if err != nil {
		return "", fmt.Errorf("hosted auth link request failed: %w", err)
	}
	return resp.URL, nil
}

// HandleAccountNotification processes the async callback Unipile posts after
// the user completes the hosted flow, creating the provider record.
func (s *Service) HandleAccountNotification(ctx context.Context, notif domain.AccountNotification) (*domain.Provider, error) {
	userID, err := uuid.Parse(notif.Name)
	if err != nil {
		return nil, fmt.Errorf("notification carries no valid user correlation token: %w", err)
	}
	if notif.AccountID == "" {
		return nil, errors.New("notification carries no account id")
	}

	profile, err := s.repo.GetProfileByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, store.ErrProfileNotFound
	}

	provider := &domain.Provider{
		UserID:    userID,
		AccountID: notif.AccountID,
	}
	if profile.CompanyID != nil {
		provider.CompanyID = *profile.CompanyID
	}

	created, err := s.repo.CreateProvider(ctx, provider)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, domain.EventProviderLinked, domain.ProviderEvent{
		EventID:    uuid.New(),
		UserID:     created.UserID,
		ProviderID: created.ID,
		AccountID:  created.AccountID,
		OccurredAt: time.Now().UTC(),
	})
	return created, nil
}

// ResolveOwnedProvider returns the caller's non-deleted provider for the given
// external account id, or ErrProviderNotOwned.
func (s *Service) ResolveOwnedProvider(ctx context.Context, userID uuid.UUID, accountID string) (*domain.Provider, error) {
	if accountID == "" {
		return nil, ErrProviderNotOwned
	}
	provider, err := s.repo.GetProviderByUserAndAccountID(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, ErrProviderNotOwned
	}
	return provider, nil
}

// CreateWorkflow validates the request, checks provider ownership, and inserts
// the workflow record. The workflow name derives from its type.
func (s *Service) CreateWorkflow(ctx context.Context, userID uuid.UUID, req domain.CreateWorkflowRequest) (*domain.Workflow, error) {
	if !req.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidWorkflow, req.Type)
	}
	if req.LimitCount < 0 {
		return nil, fmt.Errorf("%w: limit_count must not be negative", ErrInvalidWorkflow)
	}

	provider, err := s.ResolveOwnedProvider(ctx, userID, req.AccountID)
	if err != nil {
		return nil, err
	}

	workflow := &domain.Workflow{
		CompanyID:  provider.CompanyID,
		ProviderID: provider.ID,
		Type:       req.Type,
		LimitCount: req.LimitCount,
		Name:       req.Type.DisplayName(),
	}
	created, err := s.repo.CreateWorkflow(ctx, workflow)
	if err != nil {
		return nil, err
	}

	// The workflow targets the provider's imported leads, capped by limit_count.
	leads, err := s.repo.ListLeadsByProvider(ctx, provider.ID)
	if err != nil {
		return nil, err
	}
	if created.LimitCount > 0 && len(leads) > created.LimitCount {
		leads = leads[:created.LimitCount]
	}
	if len(leads) > 0 {
		leadIDs := make([]uuid.UUID, len(leads))
		for i, lead := range leads {
			leadIDs[i] = lead.ID
		}
		if err := s.repo.AttachLeadsToWorkflow(ctx, created.ID, leadIDs); err != nil {
			return nil, err
		}
	}

	s.publish(ctx, domain.EventWorkflowCreated, domain.WorkflowEvent{
		EventID:    uuid.New(),
		WorkflowID: created.ID,
		ProviderID: created.ProviderID,
		CompanyID:  created.CompanyID,
		Type:       created.Type,
		OccurredAt: time.Now().UTC(),
	})
	return created, nil
}

// ListProviders returns the caller's linked, non-deleted providers.
func (s *Service) ListProviders(ctx context.Context, userID uuid.UUID) ([]domain.Provider, error) {
	return s.repo.ListProvidersByUser(ctx, userID)
}

// UnlinkProvider soft-deletes the caller's provider for the given external
// account id. The row survives for audit; every lookup excludes it afterwards.
func (s *Service) UnlinkProvider(ctx context.Context, userID uuid.UUID, accountID string) error {
	provider, err := s.ResolveOwnedProvider(ctx, userID, accountID)
	if err != nil {
		return err
	}
	return s.repo.SoftDeleteProvider(ctx, provider.ID)
}

// DispatchMessage delivers a message to each target identifier, creating a
// conversation where none exists. Targets fan out across a bounded worker
// pool; per-target outcomes are gathered and the aggregate report is returned
// only after every send has completed.
func (s *Service) DispatchMessage(ctx context.Context, userID uuid.UUID, req domain.DispatchMessageRequest) (*domain.DispatchReport, error) {
	if s.messaging == nil {
		return nil, ErrMessagingDisabled
	}
	if len(req.TargetPrivateIdentifiers) == 0 {
		return nil, ErrNoDispatchTargets
	}
	if req.Message == "" {
		return nil, ErrEmptyMessage
	}

	provider, err := s.ResolveOwnedProvider(ctx, userID, req.AccountID)
	if err != nil {
		return nil, err
	}

	if s.rateLimiter != nil && s.dispatchLimitPerMin > 0 {
		count, retryAfter, limitErr := s.rateLimiter.ConsumeRateLimit(ctx, "dispatch", provider.AccountID, s.dispatchLimitPerMin, time.Minute)
		if limitErr != nil {
			log.Printf("level=warn component=dispatch msg=\"rate limiter unavailable; allowing request\" err=%v", limitErr)
		} else if count > s.dispatchLimitPerMin {
			return nil, &RateLimitedError{RetryAfterSeconds: retryAfter}
		}
	}

	results := make([]domain.DispatchResult, len(req.TargetPrivateIdentifiers))
	sem := make(chan struct{}, dispatchWorkers)
	var wg sync.WaitGroup

	for i, target := range req.TargetPrivateIdentifiers {
		wg.Add(1)
		go func(idx int, target string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[idx] = s.dispatchToTarget(ctx, target, req.Message)
		}(i, target)
	}
	wg.Wait()

	report := &domain.DispatchReport{Results: results}
	for _, res := range results {
		if res.Error == "" {
			report.Sent++
		} else {
			report.Failed++
		}
	}
	return report, nil
}

// dispatchToTarget delivers the message to one target. When the target has no
// existing conversation, StartNewChat both opens the chat and delivers the
// message; the freshly created chat id is reported and no second send is made.
func (s *Service) dispatchToTarget(ctx context.Context, target, message string) domain.DispatchResult {
	result := domain.DispatchResult{Target: target}

	chats, err := s.messaging.GetAllChats(ctx, target)
	if err != nil {
		result.Error = fmt.Sprintf("chat listing failed: %v", err)
		return result
	}

	if len(chats.Items) == 0 {
		started, err := s.messaging.StartNewChat(ctx, target, message, []string{})
		if err != nil {
			result.Error = fmt.Sprintf("chat creation failed: %v", err)
			return result
		}
		result.ChatID = started.ChatID
		return result
	}

	chatID := chats.Items[0].ID
	if _, err := s.messaging.SendMessage(ctx, chatID, message); err != nil {
		result.Error = fmt.Sprintf("message send failed: %v", err)
		return result
	}
	result.ChatID = chatID
	return result
}

// CreateScoutScreening creates an empty screening record scoped to the
// caller's company. Population happens in a separate collaborator.
func (s *Service) CreateScoutScreening(ctx context.Context, userID uuid.UUID) (*domain.ScoutScreening, error) {
	profile, err := s.repo.GetProfileByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, store.ErrProfileNotFound
	}
	if profile.CompanyID == nil {
		return nil, errors.New("profile has no company")
	}
	return s.repo.CreateScoutScreening(ctx, *profile.CompanyID, userID)
}

// DeleteRecording removes a recording's storage object and its database row.
// A storage failure does not stop the row deletion; the first error seen is
// returned so the route can report the failure while the row is still gone.
func (s *Service) DeleteRecording(ctx context.Context, userID, recordingID uuid.UUID) error {
	if s.storage == nil {
		return ErrStorageUnavailable
	}

	recording, err := s.repo.GetRecordingByID(ctx, recordingID)
	if err != nil {
		return err
	}
	if recording == nil {
		return store.ErrRecordingNotFound
	}
	if recording.UserID != userID {
		return ErrRecordingNotOwned
	}

	storageErr := s.storage.DeleteObject(ctx, s.storageBucket, recording.FileURL)
	if storageErr != nil {
		log.Printf("level=error component=recordings msg=\"storage delete failed; removing row anyway\" recording_id=%s err=%v", recordingID, storageErr)
	}

	if err := s.repo.DeleteRecording(ctx, recordingID); err != nil {
		return err
	}
	return storageErr
}

// publish is a best-effort event emission; failures are logged, never returned.
func (s *Service) publish(ctx context.Context, routingKey string, body interface{}) {
	if s.eventProducer == nil {
		return
	}
	if err := s.eventProducer.Publish(ctx, s.exchange, routingKey, body); err != nil {
		log.Printf("level=warn component=events msg=\"event publish failed\" routing_key=%s err=%v", routingKey, err)
	}
}
