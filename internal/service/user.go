package service

import (
	"context"
)

// UserRepository defines the persistence operations required by the user service.
type UserRepository interface {
	// UserExists returns true if a user with the given username exists.
	UserExists(ctx context.Context, username string) (bool, error)
	// CreateUser creates a new user record and returns the assigned id.
	CreateUser(ctx context.Context, username string) (int64, error)
}

// UserService implements out-of-band user registration by delegating to a
// UserRepository.
type UserService struct {
	repo UserRepository
}

// NewUserService constructs a new UserService using the provided repository.
func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

// UserExists checks whether a user with the specified username exists.
func (s *UserService) UserExists(ctx context.Context, username string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()
	return s.repo.UserExists(ctx, username)
}

// RegisterUser registers a new user and returns the server-assigned id.
func (s *UserService) RegisterUser(ctx context.Context, username string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()
	return s.repo.CreateUser(ctx, username)
}
