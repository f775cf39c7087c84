package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/adipras/fingerbridge/internal/device"
	"github.com/adipras/fingerbridge/internal/protocol"
)

// VerificationService defines the verification protocol operations required
// by the HTTP handlers.
type VerificationService interface {
	// BeginVerification issues the verification challenge tuple for the user.
	BeginVerification(ctx context.Context, userID string) (string, error)
	// CompleteVerification reports whether a VerPas submission matches the
	// stored template.
	CompleteVerification(ctx context.Context, raw string) (bool, error)
}

// VerificationHandler handles the verification challenge and callback endpoints.
type VerificationHandler struct {
	// VerificationService drives the verification state machine.
	VerificationService VerificationService
}

// Begin handles GET /verify requests, returning the verification challenge
// tuple as plain text. A user without a stored template still receives a
// challenge with an empty template field.
func (h *VerificationHandler) Begin(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")

	challenge, err := h.VerificationService.BeginVerification(r.Context(), userID)
	if err != nil {
		if errors.Is(err, protocol.ErrMissingParameter) {
			http.Error(w, "Missing user_id parameter", http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": err.Error()})
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(challenge))
}

// Process handles POST /process_verify requests carrying the VerPas tuple.
// A mismatch is a normal outcome: the body is "berhasil" on a match and
// "failed" otherwise, always 200. The wire words are part of the firmware
// contract and must not be translated.
func (h *VerificationHandler) Process(w http.ResponseWriter, r *http.Request) {
	raw := formOrJSONField(r, "VerPas")

	matched, err := h.VerificationService.CompleteVerification(r.Context(), raw)
	if err != nil {
		switch {
		case errors.Is(err, protocol.ErrMissingParameter):
			http.Error(w, "missing VerPas parameter", http.StatusBadRequest)
		case errors.Is(err, protocol.ErrMalformedMessage):
			http.Error(w, "malformed VerPas parameter", http.StatusBadRequest)
		case errors.Is(err, device.ErrDeviceNotFound):
			http.Error(w, "Device not found", http.StatusNotFound)
		default:
			writeJSON(w, http.StatusInternalServerError, map[string]string{"message": err.Error()})
		}
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if matched {
		_, _ = w.Write([]byte("berhasil"))
		return
	}
	_, _ = w.Write([]byte("failed"))
}
