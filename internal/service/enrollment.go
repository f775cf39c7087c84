// Package service implements the enrollment and verification protocol state
// machines, delegating persistence to repositories and device identity
// resolution to the registry.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/adipras/fingerbridge/internal/integrity"
	"github.com/adipras/fingerbridge/internal/models"
	"github.com/adipras/fingerbridge/internal/protocol"
	"github.com/adipras/fingerbridge/internal/repository"
)

// storageTimeout bounds every repository call made by the services.
const storageTimeout = 5 * time.Second

// Outcome is the result of processing an enrollment submission.
type Outcome int

const (
	// OutcomeEnrolled means the template was stored.
	OutcomeEnrolled Outcome = iota
	// OutcomeAlreadyEnrolled means a template already exists for the user.
	OutcomeAlreadyEnrolled
	// OutcomeIntegrityMismatch means the integrity stamp did not verify;
	// nothing was persisted.
	OutcomeIntegrityMismatch
)

// ErrAlreadyEnrolled mirrors the repository conflict for callers that only
// import the service layer.
var ErrAlreadyEnrolled = repository.ErrAlreadyEnrolled

// TemplateRepository defines the persistence operations required by the
// protocol services.
type TemplateRepository interface {
	// GetByUserID returns the stored template for the user, or
	// sql.ErrNoRows when none exists.
	GetByUserID(ctx context.Context, userID string) (models.Template, error)
	// InsertOnce stores the template, returning repository.ErrAlreadyEnrolled
	// if the user already has one. The uniqueness check must hold under
	// concurrent callers.
	InsertOnce(ctx context.Context, userID, data string) error
}

// DeviceRegistry resolves the single paired device identity.
type DeviceRegistry interface {
	ForEnrollment() (models.DeviceIdentity, error)
	ForVerification() (models.DeviceIdentity, error)
}

// ChallengeParams are the static protocol parameters embedded in every
// challenge the server issues.
type ChallengeParams struct {
	// Secret is the shared security key known to both sides. It is static
	// configuration, not a per-session nonce.
	Secret string
	// TimeLimit is the capture time limit in seconds.
	TimeLimit int
	// BaseURL is the public prefix for the callback URLs.
	BaseURL string
}

// EnrollmentService drives the enrollment state machine: issue a challenge,
// then validate and persist the device's submission exactly once.
type EnrollmentService struct {
	templates TemplateRepository
	devices   DeviceRegistry
	codec     *integrity.Codec
	params    ChallengeParams
}

// NewEnrollmentService constructs an EnrollmentService.
func NewEnrollmentService(templates TemplateRepository, devices DeviceRegistry, codec *integrity.Codec, params ChallengeParams) *EnrollmentService {
	return &EnrollmentService{templates: templates, devices: devices, codec: codec, params: params}
}

// BeginEnrollment issues the enrollment challenge for the given user:
// user_id;secret;timeLimit;templateCallbackURL;deviceInfoCallbackURL.
func (s *EnrollmentService) BeginEnrollment(userID string) (string, error) {
	if userID == "" {
		return "", protocol.ErrMissingParameter
	}
	return fmt.Sprintf("%s;%s;%d;%s/process_register;%s/getac",
		userID, s.params.Secret, s.params.TimeLimit, s.params.BaseURL, s.params.BaseURL), nil
}

// CompleteEnrollment validates a RegTemp submission and persists the
// template. The stamp must equal the digest over
// account+vendorKey+templateData+serial+userID, compared case-insensitively.
// A mismatch is reported as OutcomeIntegrityMismatch and persists nothing.
func (s *EnrollmentService) CompleteEnrollment(ctx context.Context, raw string) (Outcome, error) {
	sub, err := protocol.ParseEnrollment(raw)
	if err != nil {
		return 0, err
	}

	identity, err := s.devices.ForEnrollment()
	if err != nil {
		return 0, err
	}

	expected := s.codec.Digest(identity.Account, identity.VendorKey, sub.TemplateData, sub.Serial, sub.UserID)
	if !s.codec.Equal(sub.Stamp, expected) {
		return OutcomeIntegrityMismatch, nil
	}

	ctx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()

	if err := s.templates.InsertOnce(ctx, sub.UserID, sub.TemplateData); err != nil {
		if errors.Is(err, repository.ErrAlreadyEnrolled) {
			return OutcomeAlreadyEnrolled, nil
		}
		return 0, fmt.Errorf("store template: %w", err)
	}
	return OutcomeEnrolled, nil
}
