package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/nstrayer/aisle-list/internal/model"
	"github.com/nstrayer/aisle-list/internal/service"
)

type handlers struct {
	verifier  service.Verifier
	extractor service.Extractor
	logger    *slog.Logger
}

type scanRequest struct {
	Image service.Image `json:"image"`
}

type verifyRequest struct {
	Items []model.Assignment `json:"items"`
}

// handleScan proxies a photographed list to the extraction service and
// returns the transcribed item names.
func (h *handlers) handleScan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Image.Base64 == "" || req.Image.MediaType == "" {
		h.writeError(w, http.StatusBadRequest, "missing image data")
		return
	}

	names, err := h.extractor.ExtractItems(r.Context(), req.Image)
	if err != nil {
		h.logger.Error("scan failed", "error", err)
		h.writeError(w, http.StatusBadGateway, "failed to read the list from the photo")
		return
	}

	h.writeJSON(w, map[string]any{"items": names})
}

// handleVerify proxies current assignments to the verification service.
func (h *handlers) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Items) == 0 {
		h.writeError(w, http.StatusBadRequest, "no items to verify")
		return
	}

	verified, err := h.verifier.VerifyCategories(r.Context(), req.Items)
	if err != nil {
		h.logger.Error("verification failed", "error", err)
		h.writeError(w, http.StatusBadGateway, "category refinement failed")
		return
	}

	h.writeJSON(w, map[string]any{"items": verified})
}

func (h *handlers) handleHealth(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, map[string]string{"status": "ok"})
}

func (h *handlers) writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *handlers) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": message}); err != nil {
		h.logger.Error("failed to encode error response", "error", err)
	}
}
