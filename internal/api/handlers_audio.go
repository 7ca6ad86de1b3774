/**
 * @description
 * Recording deletion endpoint. Removes the backing object-storage file and
 * the database row; a storage failure does not stop the row removal but is
 * surfaced to the caller as HTTP 500.
 */

package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/scoutline/outreach-service/internal/app"
	"github.com/scoutline/outreach-service/internal/store"
)

// HandleDeleteRecording handles POST /api/audio/delete.
func (h *Handlers) HandleDeleteRecording(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := h.sessionUserID(w, r)
	if !ok {
		return
	}

	var req struct {
		RecordingID string `json:"recording_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	recordingID, err := uuid.Parse(req.RecordingID)
	if err != nil {
		h.writeValidationError(w, map[string]string{"recording_id": "recording_id must be a valid uuid"})
		return
	}

	err = h.service.DeleteRecording(r.Context(), userID, recordingID)
	switch {
	case err == nil:
		respondWithJSON(w, http.StatusOK, map[string]bool{"deleted": true})
	case errors.Is(err, store.ErrRecordingNotFound):
		h.writeError(w, http.StatusNotFound, "Recording not found")
	case errors.Is(err, app.ErrRecordingNotOwned):
		h.writeError(w, http.StatusBadRequest, "Recording is not owned by the caller")
	default:
		log.Printf("level=error component=api msg=\"recording delete failed\" recording_id=%s err=%v", recordingID, err)
		h.writeError(w, http.StatusInternalServerError, "Failed to delete recording")
	}
}
