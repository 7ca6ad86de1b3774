/**
 * @description
 * This file contains the HTTP handlers for the outreach-service's API endpoints.
 * Handlers are responsible for parsing incoming requests, calling the appropriate
 * methods on the application service, and writing the HTTP response. They act as the
 * bridge between the web layer and the business logic layer.
 *
 * @dependencies
 * - encoding/json, log, net/http: Standard Go libraries.
 * - internal/app, internal/domain, internal/store: For service logic, models, and custom errors.
 */

package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/scoutline/outreach-service/internal/app"
	"github.com/scoutline/outreach-service/internal/domain"
	"github.com/scoutline/outreach-service/internal/store"
)

// Handlers holds the application service and collaborators the routes use.
type Handlers struct {
	service        *app.Service
	voice          VoiceProxy
	logger         *slog.Logger
	scheduleSecret string
}

// VoiceProxy is the subset of the voice provider client the proxy routes use.
type VoiceProxy interface {
	GetModels(ctx context.Context) (json.RawMessage, error)
	GetVoices(ctx context.Context) (json.RawMessage, error)
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service *app.Service, voice VoiceProxy, logger *slog.Logger, scheduleSecret string) *Handlers {
	return &Handlers{service: service, voice: voice, logger: logger, scheduleSecret: scheduleSecret}
}

// errorEnvelope is the JSON error body every route returns on failure.
type errorEnvelope struct {
	Error   string            `json:"error"`
	Status  int               `json:"status"`
	Details map[string]string `json:"details,omitempty"`
}

// respondWithJSON is a helper function to write JSON responses.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func (h *Handlers) writeError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, errorEnvelope{Error: message, Status: code})
}

func (h *Handlers) writeValidationError(w http.ResponseWriter, details map[string]string) {
	respondWithJSON(w, http.StatusBadRequest, errorEnvelope{
		Error:   "Validation failed",
		Status:  http.StatusBadRequest,
		Details: details,
	})
}

// sessionUserID extracts and parses the authenticated caller's user id,
// writing the 401 response itself when the session is missing or malformed.
func (h *Handlers) sessionUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, Session, bool) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "Authentication required")
		return uuid.Nil, Session{}, false
	}
	userID, err := uuid.Parse(session.UserID)
	if err != nil {
		h.writeError(w, http.StatusUnauthorized, "Invalid session subject")
		return uuid.Nil, Session{}, false
	}
	return userID, session, true
}

// HandleCreateAuthLink handles POST /api/provider/auth. It returns a one-time
// hosted URL for the caller to link or reconnect a messaging account.
func (h *Handlers) HandleCreateAuthLink(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := h.sessionUserID(w, r)
	if !ok {
		return
	}

	var req struct {
		Type      string `json:"type"`
		AccountID string `json:"account_id"`
	}
	// An empty body defaults to a fresh "create" link; malformed JSON does not.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Type == "" {
		req.Type = "create"
	}

	url, err := h.service.CreateHostedAuthLink(r.Context(), userID, req.Type, req.AccountID)
	if err != nil {
		log.Printf("level=error component=api msg=\"hosted auth link failed\" user_id=%s err=%v", userID, err)
		h.writeError(w, http.StatusInternalServerError, "Failed to create auth link")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"url": url})
}

// HandleListProviders handles GET /api/provider. It returns the caller's
// linked accounts; soft-deleted rows never appear.
func (h *Handlers) HandleListProviders(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := h.sessionUserID(w, r)
	if !ok {
		return
	}

	providers, err := h.service.ListProviders(r.Context(), userID)
	if err != nil {
		log.Printf("level=error component=api msg=\"provider listing failed\" user_id=%s err=%v", userID, err)
		h.writeError(w, http.StatusInternalServerError, "Failed to list providers")
		return
	}
	if providers == nil {
		providers = []domain.Provider{}
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"providers": providers})
}

// HandleUnlinkProvider handles POST /api/provider/unlink, soft-deleting the
// caller's provider for the supplied account id.
func (h *Handlers) HandleUnlinkProvider(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := h.sessionUserID(w, r)
	if !ok {
		return
	}

	var req struct {
		AccountID string `json:"account_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.AccountID) == "" {
		h.writeValidationError(w, map[string]string{"account_id": "account_id is required"})
		return
	}

	if err := h.service.UnlinkProvider(r.Context(), userID, req.AccountID); err != nil {
		if errors.Is(err, app.ErrProviderNotOwned) {
			h.writeError(w, http.StatusBadRequest, "No linked account matches the supplied account_id")
			return
		}
		log.Printf("level=error component=api msg=\"provider unlink failed\" user_id=%s err=%v", userID, err)
		h.writeError(w, http.StatusInternalServerError, "Failed to unlink provider")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]bool{"unlinked": true})
}

// HandleAccountNotify handles POST /api/provider/auth/notify, the async
// callback the messaging platform posts after the hosted flow completes.
func (h *Handlers) HandleAccountNotify(w http.ResponseWriter, r *http.Request) {
	var notif domain.AccountNotification
	if err := json.NewDecoder(r.Body).Decode(&notif); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	provider, err := h.service.HandleAccountNotification(r.Context(), notif)
	if err != nil {
		log.Printf("level=error component=api msg=\"account notification rejected\" account_id=%s err=%v", notif.AccountID, err)
		h.writeError(w, http.StatusBadRequest, "Could not process account notification")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"provider_id": provider.ID.String()})
}

// HandleNotifyReconnect handles POST /api/provider/auth/notify-reconnect, the
// scheduled-job callback. It is guarded by a static shared-secret schedule_id
// field; an invalid or missing token yields HTTP 400.
func (h *Handlers) HandleNotifyReconnect(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ScheduleID string `json:"schedule_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !scheduleSecretMatches(h.scheduleSecret, req.ScheduleID) {
		h.writeError(w, http.StatusBadRequest, "Invalid schedule id")
		return
	}

	flagged, err := h.service.RunReconnectSweep(r.Context(), h.logger)
	if err != nil {
		log.Printf("level=error component=api msg=\"reconnect sweep failed\" err=%v", err)
		h.writeError(w, http.StatusInternalServerError, "Reconnect sweep failed")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]int{"notified": flagged})
}

// HandleCreateWorkflow handles POST /api/workflow.
func (h *Handlers) HandleCreateWorkflow(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := h.sessionUserID(w, r)
	if !ok {
		return
	}

	var req domain.CreateWorkflowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	details := map[string]string{}
	if strings.TrimSpace(req.AccountID) == "" {
		details["account_id"] = "account_id is required"
	}
	if req.Type == "" {
		details["type"] = "type is required"
	} else if !req.Type.Valid() {
		details["type"] = "type must be one of connect, message, visit"
	}
	if len(details) > 0 {
		h.writeValidationError(w, details)
		return
	}

	workflow, err := h.service.CreateWorkflow(r.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrProviderNotOwned):
			h.writeError(w, http.StatusBadRequest, "No linked account matches the supplied account_id")
		case errors.Is(err, app.ErrInvalidWorkflow):
			h.writeError(w, http.StatusBadRequest, err.Error())
		default:
			log.Printf("level=error component=api msg=\"workflow creation failed\" user_id=%s err=%v", userID, err)
			h.writeError(w, http.StatusInternalServerError, "Failed to create workflow")
		}
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]string{"workflow_id": workflow.ID.String()})
}

// HandleDispatchMessage handles POST /api/provider/message and
// POST /api/workflow/send/message. The report is written only after every
// target's send has completed.
func (h *Handlers) HandleDispatchMessage(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := h.sessionUserID(w, r)
	if !ok {
		return
	}

	var req domain.DispatchMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	details := map[string]string{}
	if strings.TrimSpace(req.AccountID) == "" {
		details["account_id"] = "account_id is required"
	}
	if len(req.TargetPrivateIdentifiers) == 0 {
		details["target_private_identifiers"] = "at least one target is required"
	}
	if strings.TrimSpace(req.Message) == "" {
		details["message"] = "message is required"
	}
	if len(details) > 0 {
		h.writeValidationError(w, details)
		return
	}

	report, err := h.service.DispatchMessage(r.Context(), userID, req)
	if err != nil {
		var limited *app.RateLimitedError
		switch {
		case errors.Is(err, app.ErrProviderNotOwned):
			h.writeError(w, http.StatusBadRequest, "No linked account matches the supplied account_id")
		case errors.Is(err, app.ErrRateLimited):
			if errors.As(err, &limited) && limited.RetryAfterSeconds > 0 {
				w.Header().Set("Retry-After", strconv.Itoa(limited.RetryAfterSeconds))
			}
			h.writeError(w, http.StatusTooManyRequests, "Dispatch rate limit exceeded; slow down")
		default:
			log.Printf("level=error component=api msg=\"dispatch failed\" user_id=%s err=%v", userID, err)
			h.writeError(w, http.StatusInternalServerError, "Message dispatch failed")
		}
		return
	}

	status := http.StatusOK
	if report.Failed > 0 && report.Sent == 0 {
		status = http.StatusBadGateway
	}
	respondWithJSON(w, status, report)
}

// HandleCreateScoutScreening handles POST /api/scout-screening.
func (h *Handlers) HandleCreateScoutScreening(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := h.sessionUserID(w, r)
	if !ok {
		return
	}

	screening, err := h.service.CreateScoutScreening(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrProfileNotFound) {
			h.writeError(w, http.StatusNotFound, "Profile not found")
			return
		}
		log.Printf("level=error component=api msg=\"scout screening creation failed\" user_id=%s err=%v", userID, err)
		h.writeError(w, http.StatusInternalServerError, "Failed to create screening")
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]string{"scout_screening_id": screening.ID.String()})
}
