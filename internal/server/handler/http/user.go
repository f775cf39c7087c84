package http

import (
	"context"
	"encoding/json"
	"net/http"
)

// UserService defines the user registration operations required by the HTTP
// handlers.
type UserService interface {
	// UserExists checks whether a user with the given username exists.
	UserExists(ctx context.Context, username string) (bool, error)
	// RegisterUser registers a new user and returns the assigned id.
	RegisterUser(ctx context.Context, username string) (int64, error)
}

// UserHandler handles HTTP requests for out-of-band user registration.
type UserHandler struct {
	// UserService performs the underlying registration operations.
	UserService UserService
}

// RegisterRequest represents the JSON payload for user registration.
type RegisterRequest struct {
	// Username is the unique login name to register.
	Username string `json:"username"`
}

// Register handles POST /users requests.
// It expects a JSON body with a non-empty "username" field and responds 201
// with the created record. A duplicate username is a 429 conflict, matching
// the device protocol's use of 429 for business-rule conflicts.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" {
		http.Error(w, "missing username parameter", http.StatusBadRequest)
		return
	}

	exists, err := h.UserService.UserExists(r.Context(), req.Username)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if exists {
		writeJSON(w, http.StatusTooManyRequests, map[string]string{"message": "User already exist"})
		return
	}

	id, err := h.UserService.RegisterUser(r.Context(), req.Username)
	if err != nil {
		http.Error(w, "failed to save user", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":       id,
		"username": req.Username,
	})
}

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
