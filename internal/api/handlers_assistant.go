/**
 * @description
 * Credit-gated assistant chat endpoint backed by the Gemini API.
 */

package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/scoutline/outreach-service/internal/app"
	"github.com/scoutline/outreach-service/internal/store"
)

// HandleAssistantChat handles POST /api/assistant/chat.
func (h *Handlers) HandleAssistantChat(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := h.sessionUserID(w, r)
	if !ok {
		return
	}

	var req app.AssistantChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.App == "" {
		req.App = "chat"
	}

	resp, err := h.service.AssistantChat(r.Context(), userID, req)
	if err != nil {
		var paywalled *app.ErrPaywalled
		switch {
		case errors.As(err, &paywalled):
			respondWithJSON(w, http.StatusPaymentRequired, paywalled.Decision)
		case errors.Is(err, store.ErrProfileNotFound):
			h.writeError(w, http.StatusNotFound, "Profile not found")
		case errors.Is(err, app.ErrEmptyMessage):
			h.writeValidationError(w, map[string]string{"message": "message is required"})
		default:
			log.Printf("level=error component=api msg=\"assistant chat failed\" user_id=%s err=%v", userID, err)
			h.writeError(w, http.StatusInternalServerError, "Assistant request failed")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, resp)
}
