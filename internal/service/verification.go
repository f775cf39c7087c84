package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/adipras/fingerbridge/internal/integrity"
	"github.com/adipras/fingerbridge/internal/protocol"
)

// VerificationService drives the verification state machine: issue a
// challenge carrying the stored template, then compare the device's live
// capture digest against it. Verification is read-only.
type VerificationService struct {
	templates TemplateRepository
	devices   DeviceRegistry
	codec     *integrity.Codec
	params    ChallengeParams
}

// NewVerificationService constructs a VerificationService.
func NewVerificationService(templates TemplateRepository, devices DeviceRegistry, codec *integrity.Codec, params ChallengeParams) *VerificationService {
	return &VerificationService{templates: templates, devices: devices, codec: codec, params: params}
}

// BeginVerification issues the verification challenge for the given user:
// user_id;template;secret;timeLimit;verifyCallbackURL;deviceInfoCallbackURL.
// A user without a stored template still gets a challenge with an empty
// template field; only a storage fault is an error.
func (s *VerificationService) BeginVerification(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", protocol.ErrMissingParameter
	}

	ctx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()

	template, err := s.templates.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("load template: %w", err)
	}

	return fmt.Sprintf("%s;%s;%s;%d;%s/process_verify;%s/getac",
		userID, template.Data, s.params.Secret, s.params.TimeLimit, s.params.BaseURL, s.params.BaseURL), nil
}

// CompleteVerification checks a VerPas submission against the stored
// template. The stamp must equal the digest over
// serial+storedTemplate+vendorCode+timestamp+userID+vendorKey, compared
// case-insensitively. A mismatch is a normal outcome, not an error; an
// unknown user simply fails to match.
func (s *VerificationService) CompleteVerification(ctx context.Context, raw string) (bool, error) {
	sub, err := protocol.ParseVerification(raw)
	if err != nil {
		return false, err
	}

	identity, err := s.devices.ForVerification()
	if err != nil {
		return false, err
	}

	ctx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()

	template, err := s.templates.GetByUserID(ctx, sub.UserID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("load template: %w", err)
	}

	// An unknown user leaves the template empty; the digest then simply
	// never matches.
	expected := s.codec.Digest(sub.Serial, template.Data, identity.VendorCode, sub.Timestamp, sub.UserID, identity.VendorKey)
	return s.codec.Equal(sub.Stamp, expected), nil
}
