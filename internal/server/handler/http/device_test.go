package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/adipras/fingerbridge/internal/device"
)

// fakeDescriber implements DeviceDescriber for testing.
type fakeDescriber struct {
	info string
	err  error
}

func (f *fakeDescriber) Describe() (string, error) {
	return f.info, f.err
}

func TestDeviceHandler_Info(t *testing.T) {
	tests := []struct {
		name         string
		registry     *fakeDescriber
		expectedCode int
		expectedBody string
	}{
		{
			name:         "configured device",
			registry:     &fakeDescriber{info: "ACMESN1"},
			expectedCode: http.StatusOK,
			expectedBody: "ACMESN1",
		},
		{
			name:         "unconfigured device",
			registry:     &fakeDescriber{err: device.ErrDeviceNotFound},
			expectedCode: http.StatusNotFound,
			expectedBody: "No Data Found",
		},
		{
			name:         "resolver fault",
			registry:     &fakeDescriber{err: errors.New("boom")},
			expectedCode: http.StatusInternalServerError,
			expectedBody: "Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/getac", nil)
			h := &DeviceHandler{Registry: tt.registry}
			h.Info(rec, req)
			res := rec.Result()
			defer res.Body.Close()

			if res.StatusCode != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, res.StatusCode)
			}
			if !strings.Contains(rec.Body.String(), tt.expectedBody) {
				t.Errorf("expected body to contain %q, got %q", tt.expectedBody, rec.Body.String())
			}
		})
	}
}
