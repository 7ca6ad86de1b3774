package app

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/scoutline/outreach-service/internal/domain"
)

// repoStub implements store.Repository with canned data and call recording.
type repoStub struct {
	profiles   map[uuid.UUID]*domain.Profile
	provider   *domain.Provider
	recording  *domain.Recording
	activeList []domain.Provider
	leads      []domain.Lead

	debitCalls      int
	debitErr        error
	debitRemaining  int
	createLeadsErr  error
	createdLeads    []domain.Lead
	deletedRecIDs   []uuid.UUID
	softDeletedIDs  []uuid.UUID
	attachedLeadIDs []uuid.UUID
	createdProvider *domain.Provider
	createdWorkflow *domain.Workflow
}

func (r *repoStub) GetProfileByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	if r.profiles == nil {
		return nil, nil
	}
	return r.profiles[id], nil
}

func (r *repoStub) GetProfileByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	for _, p := range r.profiles {
		if p != nil && p.Email == email {
			return p, nil
		}
	}
	return nil, nil
}

func (r *repoStub) DebitCredits(ctx context.Context, email string, amount int) (int, error) {
	r.debitCalls++
	if r.debitErr != nil {
		return 0, r.debitErr
	}
	return r.debitRemaining, nil
}

func (r *repoStub) CreateProvider(ctx context.Context, provider *domain.Provider) (*domain.Provider, error) {
	created := *provider
	created.ID = uuid.New()
	r.createdProvider = &created
	return &created, nil
}

func (r *repoStub) GetProviderByUserAndAccountID(ctx context.Context, userID uuid.UUID, accountID string) (*domain.Provider, error) {
	if r.provider == nil || r.provider.UserID != userID || r.provider.AccountID != accountID {
		return nil, nil
	}
	return r.provider, nil
}

func (r *repoStub) ListProvidersByUser(ctx context.Context, userID uuid.UUID) ([]domain.Provider, error) {
	return r.activeList, nil
}

func (r *repoStub) ListActiveProviders(ctx context.Context) ([]domain.Provider, error) {
	return r.activeList, nil
}

func (r *repoStub) SoftDeleteProvider(ctx context.Context, id uuid.UUID) error {
	r.softDeletedIDs = append(r.softDeletedIDs, id)
	return nil
}

func (r *repoStub) CreateWorkflow(ctx context.Context, workflow *domain.Workflow) (*domain.Workflow, error) {
	created := *workflow
	created.ID = uuid.New()
	r.createdWorkflow = &created
	return &created, nil
}

func (r *repoStub) AttachLeadsToWorkflow(ctx context.Context, workflowID uuid.UUID, leadIDs []uuid.UUID) error {
	r.attachedLeadIDs = append(r.attachedLeadIDs, leadIDs...)
	return nil
}

func (r *repoStub) CreateLeads(ctx context.Context, leads []domain.Lead) (int, error) {
	if r.createLeadsErr != nil {
		return 0, r.createLeadsErr
	}
	r.createdLeads = append(r.createdLeads, leads...)
	return len(leads), nil
}

func (r *repoStub) ListLeadsByProvider(ctx context.Context, providerID uuid.UUID) ([]domain.Lead, error) {
	return r.leads, nil
}

func (r *repoStub) CreateScoutScreening(ctx context.Context, companyID, userID uuid.UUID) (*domain.ScoutScreening, error) {
	return &domain.ScoutScreening{ID: uuid.New(), CompanyID: companyID, UserID: userID}, nil
}

func (r *repoStub) GetRecordingByID(ctx context.Context, id uuid.UUID) (*domain.Recording, error) {
	if r.recording == nil || r.recording.ID != id {
		return nil, nil
	}
	return r.recording, nil
}

func (r *repoStub) DeleteRecording(ctx context.Context, id uuid.UUID) error {
	r.deletedRecIDs = append(r.deletedRecIDs, id)
	return nil
}

// messagingStub records the order of Unipile calls across goroutines.
type messagingStub struct {
	mu sync.Mutex

	authLinkCalls int
	authLinkReq   domain.HostedAuthLinkRequest
	authLinkErr   error

	chatsByAccount map[string][]domain.Chat
	chatsErr       error

	calls []string // e.g. "list:a", "start:a", "send:chat-1"

	startErr error
	sendErr  error
}

func (m *messagingStub) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

func (m *messagingStub) recorded() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

func (m *messagingStub) CreateHostedAuthLink(ctx context.Context, req domain.HostedAuthLinkRequest) (*domain.HostedAuthLinkResponse, error) {
	m.mu.Lock()
	m.authLinkCalls++
	m.authLinkReq = req
	m.mu.Unlock()
	if m.authLinkErr != nil {
		return nil, m.authLinkErr
	}
	return &domain.HostedAuthLinkResponse{URL: "https://hosted.example/link"}, nil
}

func (m *messagingStub) GetAllChats(ctx context.Context, accountID string) (*domain.ChatList, error) {
	m.record("list:" + accountID)
	if m.chatsErr != nil {
		return nil, m.chatsErr
	}
	return &domain.ChatList{Items: m.chatsByAccount[accountID]}, nil
}

func (m *messagingStub) StartNewChat(ctx context.Context, accountID, text string, attendeesIDs []string) (*domain.ChatStarted, error) {
	m.record("start:" + accountID)
	if m.startErr != nil {
		return nil, m.startErr
	}
	return &domain.ChatStarted{ChatID: "new-chat-" + accountID}, nil
}

func (m *messagingStub) SendMessage(ctx context.Context, chatID, text string) (*domain.MessageSent, error) {
	m.record("send:" + chatID)
	if m.sendErr != nil {
		return nil, m.sendErr
	}
	return &domain.MessageSent{MessageID: "msg-1"}, nil
}

// storageStub records object deletions and can fail on demand.
type storageStub struct {
	deleteCalls int
	lastBucket  string
	lastPath    string
	err         error
}

func (s *storageStub) DeleteObject(ctx context.Context, bucket, objectPath string) error {
	s.deleteCalls++
	s.lastBucket = bucket
	s.lastPath = objectPath
	return s.err
}

// publisherStub records published events.
type publisherStub struct {
	mu     sync.Mutex
	events []string
}

func (p *publisherStub) Publish(ctx context.Context, exchange, routingKey string, body interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, routingKey)
	return nil
}

func (p *publisherStub) Close() {}

func (p *publisherStub) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	copy(out, p.events)
	return out
}

// cacheStub records credit-cache invalidations.
type cacheStub struct {
	invalidated []string
	err         error
}

func (c *cacheStub) InvalidateProfile(ctx context.Context, email string) error {
	c.invalidated = append(c.invalidated, email)
	return c.err
}

// limiterStub returns a fixed count.
type limiterStub struct {
	count int
	err   error
}

func (l *limiterStub) ConsumeRateLimit(ctx context.Context, scope, subject string, limit int, window time.Duration) (int, int, error) {
	if l.err != nil {
		return 0, 0, l.err
	}
	return l.count, 30, nil
}

// generatorStub returns a canned completion.
type generatorStub struct {
	calls  int
	reply  string
	err    error
	models []string
}

func (g *generatorStub) GenerateText(ctx context.Context, model, prompt string) (string, error) {
	g.calls++
	g.models = append(g.models, model)
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

func newTestService(repo *repoStub, messaging *messagingStub, storage *storageStub, publisher *publisherStub) *Service {
	svc := NewService(repo, messaging, storage, publisher, "scoutline.events", HostedAuthConfig{
		APIURL:     "https://api.unipile.example",
		BaseURL:    "https://scoutline.io",
		LinkTTL:    time.Hour,
		ProviderID: "LINKEDIN",
	})
	svc.SetStorageBucket("recordings")
	return svc
}
