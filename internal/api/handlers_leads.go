/**
 * @description
 * Lead import endpoint. Accepts a multipart spreadsheet upload and inserts
 * its rows as leads for the caller's provider.
 */

package api

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/scoutline/outreach-service/internal/app"
)

// maxImportBytes caps uploaded spreadsheet size at 8 MiB.
const maxImportBytes = 8 << 20

// HandleImportLeads handles POST /api/leads/import. Expects multipart form
// fields `account_id` and `file`.
func (h *Handlers) HandleImportLeads(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := h.sessionUserID(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxImportBytes); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid multipart request")
		return
	}

	accountID := r.FormValue("account_id")
	if accountID == "" {
		h.writeValidationError(w, map[string]string{"account_id": "account_id is required"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.writeValidationError(w, map[string]string{"file": "a spreadsheet file is required"})
		return
	}
	defer file.Close()

	// Read one byte past the cap so an oversize upload is rejected rather
	// than silently truncated.
	content, err := io.ReadAll(io.LimitReader(file, maxImportBytes+1))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Failed to read upload")
		return
	}
	if len(content) > maxImportBytes {
		h.writeValidationError(w, map[string]string{"file": "upload exceeds the 8 MiB limit"})
		return
	}

	imported, err := h.service.ImportLeads(r.Context(), userID, accountID, header.Filename, content)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrProviderNotOwned):
			h.writeError(w, http.StatusBadRequest, "No linked account matches the supplied account_id")
		case errors.Is(err, app.ErrUnsupportedImportFormat), errors.Is(err, app.ErrInvalidUpload):
			h.writeError(w, http.StatusBadRequest, err.Error())
		default:
			log.Printf("level=error component=api msg=\"lead import failed\" user_id=%s err=%v", userID, err)
			h.writeError(w, http.StatusInternalServerError, "Failed to import leads")
		}
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]int{"imported": imported})
}
