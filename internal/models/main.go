// Package models defines the core data structures shared between the
// protocol services, the repositories, and the HTTP handlers.
package models

// User is an identity record created by out-of-band registration.
type User struct {
	// ID is the server-assigned unique identifier.
	ID int64 `json:"id"`
	// Username is the unique login name chosen at registration.
	Username string `json:"username"`
}

// Template is a biometric enrollment record. At most one Template exists
// per user; once written it is never updated.
type Template struct {
	// ID is the template identifier assigned on insert.
	ID int64
	// UserID references the enrolled user.
	UserID string
	// Data is the opaque blob produced by the capture device.
	Data string
}

// DeviceIdentity is the single trusted device configuration. It is loaded
// once at process start and read-only for the process lifetime.
type DeviceIdentity struct {
	// Account is the server account the device is paired with.
	Account string
	// SerialNumber identifies the physical terminal.
	SerialNumber string
	// VendorCode is the vendor-assigned device code, used during verification.
	VendorCode string
	// VendorKey is the shared secret salting every integrity stamp.
	VendorKey string
}

// EnrollmentSubmission is the parsed form of the RegTemp callback payload.
type EnrollmentSubmission struct {
	// Stamp is the integrity digest computed by the device.
	Stamp string
	// Serial is the submitting device's serial number.
	Serial string
	// UserID is the user being enrolled.
	UserID string
	// TemplateData is the captured biometric template.
	TemplateData string
}

// VerificationSubmission is the parsed form of the VerPas callback payload.
type VerificationSubmission struct {
	// UserID is the user being verified.
	UserID string
	// Stamp is the integrity digest computed by the device over the live capture.
	Stamp string
	// Timestamp is the device-reported capture time, echoed into the digest.
	Timestamp string
	// Serial is the submitting device's serial number.
	Serial string
}
