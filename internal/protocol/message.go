// Package protocol parses the semicolon-delimited tuples the capture device
// posts to the callback endpoints.
//
// The device firmware emits fixed-position tuples with no escaping; each
// payload lives for a single request. Parsing happens once at the boundary
// so the services only ever see validated records.
package protocol

import (
	"errors"
	"strings"

	"github.com/adipras/fingerbridge/internal/models"
)

// ErrMissingParameter is returned when a required payload or field is empty.
var ErrMissingParameter = errors.New("missing required parameter")

// ErrMalformedMessage is returned when a tuple has too few fields.
var ErrMalformedMessage = errors.New("malformed protocol message")

// ParseEnrollment parses a RegTemp payload: stamp;serial;user_id;templateData.
// Template data may itself contain semicolons; everything after the third
// separator belongs to it.
func ParseEnrollment(raw string) (models.EnrollmentSubmission, error) {
	if raw == "" {
		return models.EnrollmentSubmission{}, ErrMissingParameter
	}

	fields := strings.SplitN(raw, ";", 4)
	if len(fields) < 4 {
		return models.EnrollmentSubmission{}, ErrMalformedMessage
	}

	sub := models.EnrollmentSubmission{
		Stamp:        fields[0],
		Serial:       fields[1],
		UserID:       fields[2],
		TemplateData: fields[3],
	}
	if sub.Stamp == "" || sub.UserID == "" {
		return models.EnrollmentSubmission{}, ErrMalformedMessage
	}
	return sub, nil
}

// ParseVerification parses a VerPas payload: user_id;stamp;timestamp;serial.
func ParseVerification(raw string) (models.VerificationSubmission, error) {
	if raw == "" {
		return models.VerificationSubmission{}, ErrMissingParameter
	}

	fields := strings.SplitN(raw, ";", 4)
	if len(fields) < 4 {
		return models.VerificationSubmission{}, ErrMalformedMessage
	}

	sub := models.VerificationSubmission{
		UserID:    fields[0],
		Stamp:     fields[1],
		Timestamp: fields[2],
		Serial:    fields[3],
	}
	if sub.UserID == "" || sub.Stamp == "" {
		return models.VerificationSubmission{}, ErrMalformedMessage
	}
	return sub, nil
}
