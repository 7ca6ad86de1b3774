/**
 * @description
 * Pass-through proxies for the third-party voice API. The upstream JSON is
 * forwarded to the caller verbatim.
 */

package api

import (
	"log"
	"net/http"
)

// HandleVoiceModels handles GET /api/voice/models.
func (h *Handlers) HandleVoiceModels(w http.ResponseWriter, r *http.Request) {
	if h.voice == nil {
		h.writeError(w, http.StatusInternalServerError, "Voice provider is not configured")
		return
	}
	raw, err := h.voice.GetModels(r.Context())
	if err != nil {
		log.Printf("level=error component=api msg=\"voice models proxy failed\" err=%v", err)
		h.writeError(w, http.StatusInternalServerError, "Voice provider request failed")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(raw)
}

// HandleVoiceVoices handles GET /api/voice/voices.
func (h *Handlers) HandleVoiceVoices(w http.ResponseWriter, r *http.Request) {
	if h.voice == nil {
		h.writeError(w, http.StatusInternalServerError, "Voice provider is not configured")
		return
	}
	raw, err := h.voice.GetVoices(r.Context())
	if err != nil {
		log.Printf("level=error component=api msg=\"voice voices proxy failed\" err=%v", err)
		h.writeError(w, http.StatusInternalServerError, "Voice provider request failed")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(raw)
}
