package http

import (
	"net/http"

	"github.com/adipras/fingerbridge/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter constructs and returns the HTTP handler serving the device
// callback surface and user registration.
//
// Routes:
//
//	GET  /getac            → deviceHandler.Info (device self-identification)
//	POST /users            → userHandler.Register (out-of-band registration, JSON only)
//	GET  /register         → enrollmentHandler.Begin (enrollment challenge)
//	POST /process_register → enrollmentHandler.Process (RegTemp callback)
//	GET  /verify           → verificationHandler.Begin (verification challenge)
//	POST /process_verify   → verificationHandler.Process (VerPas callback)
//
// Middleware chain (applied in order):
//  1. cors.Handler                — the device firmware calls from arbitrary origins
//  2. WithRequestLogging(logger)  — logs incoming requests
func NewRouter(
	deviceHandler *DeviceHandler,
	userHandler *UserHandler,
	enrollmentHandler *EnrollmentHandler,
	verificationHandler *VerificationHandler,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// The firmware gives no origin guarantees; mirror a permissive cors() setup.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	r.Get("/getac", deviceHandler.Info)

	// Registration is the only JSON-only endpoint; the device endpoints
	// accept the firmware's form-encoded bodies.
	r.Group(func(r chi.Router) {
		r.Use(chiMiddleware.AllowContentType("application/json"))
		r.Post("/users", userHandler.Register)
	})

	r.Get("/register", enrollmentHandler.Begin)
	r.Post("/process_register", enrollmentHandler.Process)

	r.Get("/verify", verificationHandler.Begin)
	r.Post("/process_verify", verificationHandler.Process)

	return r
}
