package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/adipras/fingerbridge/internal/device"
	"github.com/adipras/fingerbridge/internal/protocol"
	"github.com/adipras/fingerbridge/internal/service"
)

// EnrollmentService defines the enrollment protocol operations required by
// the HTTP handlers.
type EnrollmentService interface {
	// BeginEnrollment issues the enrollment challenge tuple for the user.
	BeginEnrollment(userID string) (string, error)
	// CompleteEnrollment validates a RegTemp submission and persists the template.
	CompleteEnrollment(ctx context.Context, raw string) (service.Outcome, error)
}

// EnrollmentHandler handles the enrollment challenge and callback endpoints.
type EnrollmentHandler struct {
	// EnrollmentService drives the enrollment state machine.
	EnrollmentService EnrollmentService
}

// Begin handles GET /register requests. The device polls this endpoint with
// a user_id query parameter and receives the challenge tuple as plain text.
func (h *EnrollmentHandler) Begin(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")

	challenge, err := h.EnrollmentService.BeginEnrollment(userID)
	if err != nil {
		http.Error(w, "Missing user_id parameter", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(challenge))
}

// Process handles POST /process_register requests carrying the RegTemp
// tuple. The device-facing body stays "success"/"error"; an integrity
// mismatch is reported as "error" without persisting anything.
func (h *EnrollmentHandler) Process(w http.ResponseWriter, r *http.Request) {
	raw := formOrJSONField(r, "RegTemp")

	outcome, err := h.EnrollmentService.CompleteEnrollment(r.Context(), raw)
	if err != nil {
		switch {
		case errors.Is(err, protocol.ErrMissingParameter):
			http.Error(w, "missing RegTemp parameter", http.StatusBadRequest)
		case errors.Is(err, protocol.ErrMalformedMessage):
			http.Error(w, "malformed RegTemp parameter", http.StatusBadRequest)
		case errors.Is(err, device.ErrDeviceNotFound):
			http.Error(w, "Device not found", http.StatusNotFound)
		default:
			writeJSON(w, http.StatusInternalServerError, map[string]string{"message": err.Error()})
		}
		return
	}

	switch outcome {
	case service.OutcomeEnrolled:
		writeJSON(w, http.StatusOK, map[string]string{"message": "success"})
	case service.OutcomeAlreadyEnrolled:
		writeJSON(w, http.StatusTooManyRequests, map[string]string{"message": "Template already exist"})
	case service.OutcomeIntegrityMismatch:
		writeJSON(w, http.StatusOK, map[string]string{"message": "error"})
	}
}

// formOrJSONField extracts a named field from either an urlencoded form body
// or a JSON object body, the two encodings the device firmware sends.
func formOrJSONField(r *http.Request, name string) string {
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return ""
		}
		return body[name]
	}
	return r.PostFormValue(name)
}
