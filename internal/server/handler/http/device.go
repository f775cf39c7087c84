// Package http provides the HTTP handlers for the device callback surface:
// device info, user registration, and the enrollment and verification
// protocol endpoints.
package http

import (
	"errors"
	"net/http"

	"github.com/adipras/fingerbridge/internal/device"
)

// DeviceDescriber resolves the paired device's self-identification string.
type DeviceDescriber interface {
	// Describe returns the paired account and serial concatenated, or
	// device.ErrDeviceNotFound when the identity is not configured.
	Describe() (string, error)
}

// DeviceHandler handles the device-info callback the terminal polls to
// confirm it is paired with this server.
type DeviceHandler struct {
	// Registry resolves the configured device identity.
	Registry DeviceDescriber
}

// Info handles GET /getac requests. An unconfigured device identity is a
// 404; any other resolver fault maps to a generic 500, never leaked raw.
func (h *DeviceHandler) Info(w http.ResponseWriter, r *http.Request) {
	info, err := h.Registry.Describe()
	if err != nil {
		if errors.Is(err, device.ErrDeviceNotFound) {
			http.Error(w, "No Data Found", http.StatusNotFound)
			return
		}
		http.Error(w, "Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(info))
}
