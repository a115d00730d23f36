package service

import (
	"context"
	"strings"

	"todo-list/internal/credential"
	apperrors "todo-list/internal/errors"
	"todo-list/internal/repository"
)

var errUsernameTaken = apperrors.New(apperrors.CodeConflict, "username already exists")

// AuthService handles sign-up and credential checks.
type AuthService struct {
	users  *repository.UserRepository
	hasher credential.Hasher
}

func NewAuthService(users *repository.UserRepository, hasher credential.Hasher) *AuthService {
	return &AuthService{users: users, hasher: hasher}
}

// Signup creates an account. A taken username yields a CONFLICT error and
// leaves the existing account untouched.
func (s *AuthService) Signup(ctx context.Context, username, password string) error {
	username, password, err := normalizeCredentials(username, password)
	if err != nil {
		return err
	}

	stored, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}

	created, err := s.users.Create(ctx, username, stored)
	if err != nil {
		return err
	}
	if !created {
		return errUsernameTaken
	}
	return nil
}

// Authenticate returns the user's id when the credentials match. An unknown
// username and a wrong password are indistinguishable to the caller.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (uint, bool, error) {
	username, password, err := normalizeCredentials(username, password)
	if err != nil {
		return 0, false, err
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return 0, false, err
	}
	if user == nil || !s.hasher.Verify(user.Password, password) {
		return 0, false, nil
	}
	return user.ID, true, nil
}

func normalizeCredentials(username, password string) (string, string, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		return "", "", apperrors.Validation("username and password are required")
	}
	return username, password, nil
}
