// Package device resolves the single paired capture device's identity and
// secret material.
package device

import (
	"errors"

	"github.com/adipras/fingerbridge/internal/models"
)

// ErrDeviceNotFound is returned when the configured device identity is
// missing the fields an operation requires. It signals server
// misconfiguration, not absent data.
var ErrDeviceNotFound = errors.New("device not found")

// Registry answers which device is paired and what secret salts its
// messages. Exactly one device identity is trusted for the process lifetime.
type Registry struct {
	identity models.DeviceIdentity
}

// NewRegistry creates a Registry for the given identity. The identity may be
// partially or fully unset; resolution errors are reported per call.
func NewRegistry(identity models.DeviceIdentity) *Registry {
	return &Registry{identity: identity}
}

// ForEnrollment resolves the identity fields the enrollment callback digests
// over: account, serial number, and vendor key.
func (r *Registry) ForEnrollment() (models.DeviceIdentity, error) {
	if r.identity.Account == "" || r.identity.SerialNumber == "" || r.identity.VendorKey == "" {
		return models.DeviceIdentity{}, ErrDeviceNotFound
	}
	return r.identity, nil
}

// ForVerification resolves the identity fields the verification callback
// digests over, which additionally include the vendor code.
func (r *Registry) ForVerification() (models.DeviceIdentity, error) {
	if r.identity.Account == "" || r.identity.SerialNumber == "" ||
		r.identity.VendorCode == "" || r.identity.VendorKey == "" {
		return models.DeviceIdentity{}, ErrDeviceNotFound
	}
	return r.identity, nil
}

// Describe returns the account and serial concatenated, the string the
// device polls to confirm it is talking to its paired server.
func (r *Registry) Describe() (string, error) {
	if r.identity.Account == "" || r.identity.SerialNumber == "" {
		return "", ErrDeviceNotFound
	}
	return r.identity.Account + r.identity.SerialNumber, nil
}
