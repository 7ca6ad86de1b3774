package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/scoutline/outreach-service/internal/app"
	"github.com/scoutline/outreach-service/internal/domain"
)

const testJWTSecret = "test-signing-secret"
const testScheduleSecret = "schedule-capability-token"

// fakeRepo is a hand-written store.Repository for handler tests.
type fakeRepo struct {
	profile   *domain.Profile
	provider  *domain.Provider
	recording *domain.Recording
	active    []domain.Provider
	leads     []domain.Lead
	leadsErr  error

	deletedRecordings int
	softDeleted       []uuid.UUID
}

func (f *fakeRepo) GetProfileByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	if f.profile == nil || f.profile.ID != id {
		return nil, nil
	}
	return f.profile, nil
}

func (f *fakeRepo) GetProfileByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	if f.profile == nil || f.profile.Email != email {
		return nil, nil
	}
	return f.profile, nil
}

func (f *fakeRepo) DebitCredits(ctx context.Context, email string, amount int) (int, error) {
	return 0, nil
}

func (f *fakeRepo) CreateProvider(ctx context.Context, provider *domain.Provider) (*domain.Provider, error) {
	created := *provider
	created.ID = uuid.New()
	return &created, nil
}

func (f *fakeRepo) GetProviderByUserAndAccountID(ctx context.Context, userID uuid.UUID, accountID string) (*domain.Provider, error) {
	if f.provider == nil || f.provider.UserID != userID || f.provider.AccountID != accountID {
		return nil, nil
	}
	return f.provider, nil
}

func (f *fakeRepo) ListProvidersByUser(ctx context.Context, userID uuid.UUID) ([]domain.Provider, error) {
	return f.active, nil
}

func (f *fakeRepo) ListActiveProviders(ctx context.Context) ([]domain.Provider, error) {
	return f.active, nil
}

func (f *fakeRepo) SoftDeleteProvider(ctx context.Context, id uuid.UUID) error {
	f.softDeleted = append(f.softDeleted, id)
	return nil
}

func (f *fakeRepo) CreateWorkflow(ctx context.Context, workflow *domain.Workflow) (*domain.Workflow, error) {
	created := *workflow
	created.ID = uuid.New()
	return &created, nil
}

func (f *fakeRepo) AttachLeadsToWorkflow(ctx context.Context, workflowID uuid.UUID, leadIDs []uuid.UUID) error {
	return nil
}

func (f *fakeRepo) CreateLeads(ctx context.Context, leads []domain.Lead) (int, error) {
	if f.leadsErr != nil {
		return 0, f.leadsErr
	}
	return len(leads), nil
}

func (f *fakeRepo) ListLeadsByProvider(ctx context.Context, providerID uuid.UUID) ([]domain.Lead, error) {
	return f.leads, nil
}

func (f *fakeRepo) CreateScoutScreening(ctx context.Context, companyID, userID uuid.UUID) (*domain.ScoutScreening, error) {
	return &domain.ScoutScreening{ID: uuid.New(), CompanyID: companyID, UserID: userID}, nil
}

func (f *fakeRepo) GetRecordingByID(ctx context.Context, id uuid.UUID) (*domain.Recording, error) {
	if f.recording == nil || f.recording.ID != id {
		return nil, nil
	}
	return f.recording, nil
}

func (f *fakeRepo) DeleteRecording(ctx context.Context, id uuid.UUID) error {
	f.deletedRecordings++
	return nil
}

// fakeMessaging counts every upstream call.
type fakeMessaging struct {
	calls int
}

func (f *fakeMessaging) CreateHostedAuthLink(ctx context.Context, req domain.HostedAuthLinkRequest) (*domain.HostedAuthLinkResponse, error) {
	f.calls++
	return &domain.HostedAuthLinkResponse{URL: "https://hosted.example/link"}, nil
}

func (f *fakeMessaging) GetAllChats(ctx context.Context, accountID string) (*domain.ChatList, error) {
	f.calls++
	return &domain.ChatList{}, nil
}

func (f *fakeMessaging) StartNewChat(ctx context.Context, accountID, text string, attendeesIDs []string) (*domain.ChatStarted, error) {
	f.calls++
	return &domain.ChatStarted{ChatID: "chat-new"}, nil
}

func (f *fakeMessaging) SendMessage(ctx context.Context, chatID, text string) (*domain.MessageSent, error) {
	f.calls++
	return &domain.MessageSent{MessageID: "msg-1"}, nil
}

type fakeStorage struct {
	calls int
	err   error
}

func (f *fakeStorage) DeleteObject(ctx context.Context, bucket, objectPath string) error {
	f.calls++
	return f.err
}

type fakeVoice struct {
	models json.RawMessage
	voices json.RawMessage
	err    error
}

func (f *fakeVoice) GetModels(ctx context.Context) (json.RawMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.models, nil
}

func (f *fakeVoice) GetVoices(ctx context.Context) (json.RawMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.voices, nil
}

// fakeLimiter always reports the same running count.
type fakeLimiter struct {
	count      int
	retryAfter int
}

func (f *fakeLimiter) ConsumeRateLimit(ctx context.Context, scope, subject string, limit int, window time.Duration) (int, int, error) {
	return f.count, f.retryAfter, nil
}

type testEnv struct {
	router    http.Handler
	service   *app.Service
	repo      *fakeRepo
	messaging *fakeMessaging
	storage   *fakeStorage
	userID    uuid.UUID
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	userID := uuid.New()
	companyID := uuid.New()
	repo := &fakeRepo{
		profile: &domain.Profile{ID: userID, Email: "user@example.com", CompanyID: &companyID},
	}
	messaging := &fakeMessaging{}
	storage := &fakeStorage{}

	service := app.NewService(repo, messaging, storage, nil, "scoutline.events", app.HostedAuthConfig{
		APIURL:     "https://api.unipile.example",
		BaseURL:    "https://scoutline.io",
		LinkTTL:    time.Hour,
		ProviderID: "LINKEDIN",
	})
	service.SetStorageBucket("recordings")

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handlers := NewHandlers(service, &fakeVoice{models: json.RawMessage(`{"models":[]}`), voices: json.RawMessage(`{"voices":[]}`)}, logger, testScheduleSecret)
	router := Routes(handlers, testJWTSecret, []string{"https://scoutline.io"})

	return &testEnv{router: router, service: service, repo: repo, messaging: messaging, storage: storage, userID: userID}
}

func signedToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   userID.String(),
		"email": "user@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return signed
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), target); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
}

func TestCreateAuthLink_RequiresSessionBeforeAnyUpstreamCall(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/provider/auth", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if env.messaging.calls != 0 {
		t.Errorf("upstream calls = %d, want 0 for unauthenticated request", env.messaging.calls)
	}

	rec = env.do(t, http.MethodPost, "/api/provider/auth", "garbage-token", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad token: status = %d, want 401", rec.Code)
	}
	if env.messaging.calls != 0 {
		t.Errorf("bad token: upstream calls = %d, want 0", env.messaging.calls)
	}
}

func TestCreateAuthLink_ReturnsHostedURL(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/provider/auth", signedToken(t, env.userID), map[string]string{"type": "create"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s, want 200", rec.Code, rec.Body.String())
	}
	var body map[string]string
	decodeBody(t, rec, &body)
	if body["url"] != "https://hosted.example/link" {
		t.Errorf("url = %q, want the hosted link", body["url"])
	}
}

func TestCreateWorkflow_ValidationDetails(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/workflow", signedToken(t, env.userID), map[string]interface{}{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body struct {
		Error   string            `json:"error"`
		Details map[string]string `json:"details"`
	}
	decodeBody(t, rec, &body)
	if body.Details["account_id"] == "" || body.Details["type"] == "" {
		t.Errorf("details = %v, want account_id and type entries", body.Details)
	}
}

func TestCreateWorkflow_Created(t *testing.T) {
	env := newTestEnv(t)
	env.repo.provider = &domain.Provider{ID: uuid.New(), UserID: env.userID, CompanyID: uuid.New(), AccountID: "acct-1"}

	rec := env.do(t, http.MethodPost, "/api/workflow", signedToken(t, env.userID), map[string]interface{}{
		"account_id":  "acct-1",
		"type":        "message",
		"limit_count": 10,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d body = %s, want 201", rec.Code, rec.Body.String())
	}
	var body map[string]string
	decodeBody(t, rec, &body)
	if _, err := uuid.Parse(body["workflow_id"]); err != nil {
		t.Errorf("workflow_id = %q, want a uuid", body["workflow_id"])
	}
}

func TestDispatchMessage_UnownedAccount(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/provider/message", signedToken(t, env.userID), map[string]interface{}{
		"account_id":                 "not-mine",
		"target_private_identifiers": []string{"lead-1"},
		"message":                    "hello",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestDispatchMessage_ReturnsReport(t *testing.T) {
	env := newTestEnv(t)
	env.repo.provider = &domain.Provider{ID: uuid.New(), UserID: env.userID, CompanyID: uuid.New(), AccountID: "acct-1"}

	rec := env.do(t, http.MethodPost, "/api/workflow/send/message", signedToken(t, env.userID), map[string]interface{}{
		"account_id":                 "acct-1",
		"target_private_identifiers": []string{"lead-1", "lead-2"},
		"message":                    "hello",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s, want 200", rec.Code, rec.Body.String())
	}
	var report domain.DispatchReport
	decodeBody(t, rec, &report)
	if report.Sent != 2 || report.Failed != 0 {
		t.Errorf("report = %+v, want 2 sent 0 failed", report)
	}
	if len(report.Results) != 2 {
		t.Errorf("results = %d entries, want 2", len(report.Results))
	}
}

func TestNotifyReconnect_SecretGuard(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/provider/auth/notify-reconnect", "", map[string]string{"schedule_id": "wrong"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("wrong secret: status = %d, want 400", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/api/provider/auth/notify-reconnect", "", map[string]string{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing secret: status = %d, want 400", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/api/provider/auth/notify-reconnect", "", map[string]string{"schedule_id": testScheduleSecret})
	if rec.Code != http.StatusOK {
		t.Fatalf("valid secret: status = %d body = %s, want 200", rec.Code, rec.Body.String())
	}
	var body map[string]int
	decodeBody(t, rec, &body)
	if _, ok := body["notified"]; !ok {
		t.Errorf("body = %s, want a notified count", rec.Body.String())
	}
}

func TestAccountNotify_CreatesProvider(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/provider/auth/notify", "", map[string]string{
		"status":     "CREATION_SUCCESS",
		"account_id": "acct-9",
		"name":       env.userID.String(),
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s, want 200", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodPost, "/api/provider/auth/notify", "", map[string]string{
		"status":     "CREATION_SUCCESS",
		"account_id": "acct-9",
		"name":       "bogus-token",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad correlation token: status = %d, want 400", rec.Code)
	}
}

func TestDeleteRecording_NotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/audio/delete", signedToken(t, env.userID), map[string]string{
		"recording_id": uuid.NewString(),
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestDeleteRecording_InvalidID(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/audio/delete", signedToken(t, env.userID), map[string]string{
		"recording_id": "not-a-uuid",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestDeleteRecording_StorageFailureStillRemovesRow(t *testing.T) {
	env := newTestEnv(t)
	recording := &domain.Recording{ID: uuid.New(), UserID: env.userID, FileURL: "audio/rec.mp3"}
	env.repo.recording = recording
	env.storage.err = errors.New("object missing")

	rec := env.do(t, http.MethodPost, "/api/audio/delete", signedToken(t, env.userID), map[string]string{
		"recording_id": recording.ID.String(),
	})
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500 when the storage delete fails", rec.Code)
	}
	if env.repo.deletedRecordings != 1 {
		t.Errorf("row deletions = %d, want 1 despite the storage failure", env.repo.deletedRecordings)
	}
}

func TestVoiceProxies_ForwardUpstreamJSON(t *testing.T) {
	env := newTestEnv(t)
	token := signedToken(t, env.userID)

	rec := env.do(t, http.MethodGet, "/api/voice/models", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("models: status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != `{"models":[]}` {
		t.Errorf("models body = %s, want verbatim upstream payload", rec.Body.String())
	}

	rec = env.do(t, http.MethodGet, "/api/voice/voices", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("voices: status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != `{"voices":[]}` {
		t.Errorf("voices body = %s, want verbatim upstream payload", rec.Body.String())
	}

	rec = env.do(t, http.MethodGet, "/api/voice/models", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated proxy: status = %d, want 401", rec.Code)
	}
}

func (e *testEnv) doImport(t *testing.T, token, accountID, filename, content string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	if accountID != "" {
		if err := form.WriteField("account_id", accountID); err != nil {
			t.Fatalf("failed to write account_id field: %v", err)
		}
	}
	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("failed to create file part: %v", err)
	}
	if _, err := io.Copy(part, strings.NewReader(content)); err != nil {
		t.Fatalf("failed to write file part: %v", err)
	}
	form.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/leads/import", &buf)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", form.FormDataContentType())
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func TestDispatchMessage_RateLimitedWithRetryAfter(t *testing.T) {
	env := newTestEnv(t)
	env.repo.provider = &domain.Provider{ID: uuid.New(), UserID: env.userID, CompanyID: uuid.New(), AccountID: "acct-1"}
	env.service.SetDispatchRateLimiter(&fakeLimiter{count: 31, retryAfter: 42}, 30)

	rec := env.do(t, http.MethodPost, "/api/provider/message", signedToken(t, env.userID), map[string]interface{}{
		"account_id":                 "acct-1",
		"target_private_identifiers": []string{"lead-1"},
		"message":                    "hello",
	})
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d body = %s, want 429", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Retry-After"); got != "42" {
		t.Errorf("Retry-After = %q, want 42", got)
	}
	if env.messaging.calls != 0 {
		t.Errorf("upstream calls = %d, want 0 once limited", env.messaging.calls)
	}
}

func TestCreateAuthLink_BodyHandling(t *testing.T) {
	env := newTestEnv(t)
	token := signedToken(t, env.userID)

	// An empty body defaults to a "create" link.
	req := httptest.NewRequest(http.MethodPost, "/api/provider/auth", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("empty body: status = %d, want 200", rec.Code)
	}

	// Malformed JSON is rejected, not silently defaulted.
	req = httptest.NewRequest(http.MethodPost, "/api/provider/auth", strings.NewReader(`{"type": `))
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("malformed body: status = %d, want 400", rec.Code)
	}
}

func TestImportLeads_Created(t *testing.T) {
	env := newTestEnv(t)
	env.repo.provider = &domain.Provider{ID: uuid.New(), UserID: env.userID, CompanyID: uuid.New(), AccountID: "acct-1"}

	rec := env.doImport(t, signedToken(t, env.userID), "acct-1", "prospects.csv", "private_identifier\nlead-1\nlead-2\n")
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d body = %s, want 201", rec.Code, rec.Body.String())
	}
	var body map[string]int
	decodeBody(t, rec, &body)
	if body["imported"] != 2 {
		t.Errorf("imported = %d, want 2", body["imported"])
	}
}

func TestImportLeads_InvalidUploadIsBadRequest(t *testing.T) {
	env := newTestEnv(t)
	env.repo.provider = &domain.Provider{ID: uuid.New(), UserID: env.userID, CompanyID: uuid.New(), AccountID: "acct-1"}

	rec := env.doImport(t, signedToken(t, env.userID), "acct-1", "bad.csv", "full_name\nAda\n")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for a client-side upload problem", rec.Code)
	}
}

func TestImportLeads_StoreFailureIsInternalAndGeneric(t *testing.T) {
	env := newTestEnv(t)
	env.repo.provider = &domain.Provider{ID: uuid.New(), UserID: env.userID, CompanyID: uuid.New(), AccountID: "acct-1"}
	env.repo.leadsErr = errors.New("pq: deadlock detected on relation leads")

	rec := env.doImport(t, signedToken(t, env.userID), "acct-1", "prospects.csv", "private_identifier\nlead-1\n")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d body = %s, want 500", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "deadlock") {
		t.Errorf("body = %s, must not leak backend detail", rec.Body.String())
	}
}

func TestImportLeads_OversizeUploadRejected(t *testing.T) {
	env := newTestEnv(t)
	env.repo.provider = &domain.Provider{ID: uuid.New(), UserID: env.userID, CompanyID: uuid.New(), AccountID: "acct-1"}

	content := "private_identifier\n" + strings.Repeat("lead-0000000000000000\n", (8<<20)/22+1)
	rec := env.doImport(t, signedToken(t, env.userID), "acct-1", "huge.csv", content)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for an oversize upload", rec.Code)
	}
	var body struct {
		Details map[string]string `json:"details"`
	}
	decodeBody(t, rec, &body)
	if body.Details["file"] == "" {
		t.Errorf("details = %v, want a file size entry", body.Details)
	}
}

func TestListProviders(t *testing.T) {
	env := newTestEnv(t)
	env.repo.active = []domain.Provider{
		{ID: uuid.New(), UserID: env.userID, AccountID: "acct-1"},
	}

	rec := env.do(t, http.MethodGet, "/api/provider", signedToken(t, env.userID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s, want 200", rec.Code, rec.Body.String())
	}
	var body struct {
		Providers []domain.Provider `json:"providers"`
	}
	decodeBody(t, rec, &body)
	if len(body.Providers) != 1 || body.Providers[0].AccountID != "acct-1" {
		t.Errorf("providers = %+v, want the linked account", body.Providers)
	}
}

func TestUnlinkProvider(t *testing.T) {
	env := newTestEnv(t)
	provider := &domain.Provider{ID: uuid.New(), UserID: env.userID, AccountID: "acct-1"}
	env.repo.provider = provider
	token := signedToken(t, env.userID)

	rec := env.do(t, http.MethodPost, "/api/provider/unlink", token, map[string]string{"account_id": "acct-1"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s, want 200", rec.Code, rec.Body.String())
	}
	if len(env.repo.softDeleted) != 1 || env.repo.softDeleted[0] != provider.ID {
		t.Errorf("soft deletions = %v, want [%s]", env.repo.softDeleted, provider.ID)
	}

	rec = env.do(t, http.MethodPost, "/api/provider/unlink", token, map[string]string{"account_id": "not-mine"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("foreign account: status = %d, want 400", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/api/provider/unlink", token, map[string]string{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing account_id: status = %d, want 400", rec.Code)
	}
}

func TestScoutScreening_Created(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/scout-screening", signedToken(t, env.userID), nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d body = %s, want 201", rec.Code, rec.Body.String())
	}
	var body map[string]string
	decodeBody(t, rec, &body)
	if _, err := uuid.Parse(body["scout_screening_id"]); err != nil {
		t.Errorf("scout_screening_id = %q, want a uuid", body["scout_screening_id"])
	}
}
