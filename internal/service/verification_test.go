package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adipras/fingerbridge/internal/device"
	"github.com/adipras/fingerbridge/internal/integrity"
	"github.com/adipras/fingerbridge/internal/models"
	"github.com/adipras/fingerbridge/internal/protocol"
)

func newVerification(repo TemplateRepository, identity models.DeviceIdentity) (*VerificationService, *integrity.Codec) {
	codec := integrity.Default()
	return NewVerificationService(repo, device.NewRegistry(identity), codec, testParams()), codec
}

func TestBeginVerification(t *testing.T) {
	repo := newFakeTemplateRepo()
	repo.templates["42"] = "tmpl-abc"
	svc, _ := newVerification(repo, testIdentity())

	challenge, err := svc.BeginVerification(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "42;tmpl-abc;helloWorld;10;http://localhost:8080/process_verify;http://localhost:8080/getac", challenge)
}

func TestBeginVerification_NoTemplateStored(t *testing.T) {
	svc, _ := newVerification(newFakeTemplateRepo(), testIdentity())

	// Best effort: the challenge still issues with an empty template field.
	challenge, err := svc.BeginVerification(context.Background(), "42")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(challenge, "42;;helloWorld;"))
}

func TestBeginVerification_MissingUserID(t *testing.T) {
	svc, _ := newVerification(newFakeTemplateRepo(), testIdentity())

	_, err := svc.BeginVerification(context.Background(), "")
	assert.ErrorIs(t, err, protocol.ErrMissingParameter)
}

func TestBeginVerification_StorageFailure(t *testing.T) {
	repo := newFakeTemplateRepo()
	repo.getErr = errors.New("connection reset")
	svc, _ := newVerification(repo, testIdentity())

	_, err := svc.BeginVerification(context.Background(), "42")
	assert.Error(t, err)
}

func TestCompleteVerification_Matched(t *testing.T) {
	repo := newFakeTemplateRepo()
	repo.templates["42"] = "tmpl-abc"
	svc, codec := newVerification(repo, testIdentity())

	stamp := codec.Digest("SN1", "tmpl-abc", "VC9", "1688000000", "42", "k1")
	matched, err := svc.CompleteVerification(context.Background(), "42;"+stamp+";1688000000;SN1")
	require.NoError(t, err)
	assert.True(t, matched)
}

func TestCompleteVerification_CaseInsensitive(t *testing.T) {
	repo := newFakeTemplateRepo()
	repo.templates["42"] = "tmpl-abc"
	svc, codec := newVerification(repo, testIdentity())

	stamp := strings.ToUpper(codec.Digest("SN1", "tmpl-abc", "VC9", "1688000000", "42", "k1"))
	matched, err := svc.CompleteVerification(context.Background(), "42;"+stamp+";1688000000;SN1")
	require.NoError(t, err)
	assert.True(t, matched)
}

func TestCompleteVerification_FlippedStamp(t *testing.T) {
	repo := newFakeTemplateRepo()
	repo.templates["42"] = "tmpl-abc"
	svc, codec := newVerification(repo, testIdentity())

	stamp := codec.Digest("SN1", "tmpl-abc", "VC9", "1688000000", "42", "k1")
	bad := stamp[:len(stamp)-1] + flipHex(stamp[len(stamp)-1])

	matched, err := svc.CompleteVerification(context.Background(), "42;"+bad+";1688000000;SN1")
	require.NoError(t, err)
	assert.False(t, matched)
}

func TestCompleteVerification_UnknownUserNotMatched(t *testing.T) {
	svc, codec := newVerification(newFakeTemplateRepo(), testIdentity())

	// No hard error for an unknown user; the digest simply never matches.
	stamp := codec.Digest("SN1", "tmpl-abc", "VC9", "1688000000", "42", "k1")
	matched, err := svc.CompleteVerification(context.Background(), "42;"+stamp+";1688000000;SN1")
	require.NoError(t, err)
	assert.False(t, matched)
}

func TestCompleteVerification_MissingPayload(t *testing.T) {
	svc, _ := newVerification(newFakeTemplateRepo(), testIdentity())

	_, err := svc.CompleteVerification(context.Background(), "")
	assert.ErrorIs(t, err, protocol.ErrMissingParameter)
}

func TestCompleteVerification_DeviceNotConfigured(t *testing.T) {
	identity := testIdentity()
	identity.VendorCode = ""
	svc, codec := newVerification(newFakeTemplateRepo(), identity)

	stamp := codec.Digest("SN1", "tmpl-abc", "VC9", "1688000000", "42", "k1")
	_, err := svc.CompleteVerification(context.Background(), "42;"+stamp+";1688000000;SN1")
	assert.ErrorIs(t, err, device.ErrDeviceNotFound)
}
