// Package auth owns credentials: registration, login with token rotation, and
// token resolution for authenticated requests.
package auth

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"yoga_studio/internal/domain"
	"yoga_studio/internal/store"
)

const (
	userNameMinLen = 4  // Minimum identity length
	userNameMaxLen = 20 // Maximum identity length
	passwordMinLen = 6  // Minimum password length
)

// TokenInvalidator drops any cached resolution of a token once it stops
// being valid.
type TokenInvalidator interface {
	InvalidateToken(ctx context.Context, token string) error
}

// Service implements the credential flows on top of a UserStore and a
// PasswordHasher.
type Service struct {
	users       store.UserStore
	hasher      PasswordHasher
	invalidator TokenInvalidator
}

// NewService builds a Service from its dependencies.
func NewService(users store.UserStore, hasher PasswordHasher) *Service {
	return &Service{users: users, hasher: hasher}
}

// WithTokenInvalidator registers a hook that is called with the old token
// after every rotation; required whenever token resolutions are cached.
func (s *Service) WithTokenInvalidator(inv TokenInvalidator) *Service {
	s.invalidator = inv
	return s
}

// RegisterInput is the typed registration request.
type RegisterInput struct {
	UserName string
	Email    string
	Password string
}

// Credentials is the public view of an authenticated user: everything a
// client needs, and never the password hash.
type Credentials struct {
	UserID      string  `json:"userId"`
	UserName    string  `json:"userName"`
	Email       *string `json:"email,omitempty"`
	AccessToken string  `json:"accessToken"`
}

// Register validates the input, hashes the password, issues the initial
// token and persists the new user in a single create.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*Credentials, error) {
	if n := utf8.RuneCountInString(input.UserName); n < userNameMinLen || n > userNameMaxLen {
		return nil, NewValidationError(fmt.Sprintf("userName must be %d-%d characters", userNameMinLen, userNameMaxLen))
	}
	if utf8.RuneCountInString(input.Password) < passwordMinLen {
		return nil, NewValidationError(fmt.Sprintf("password must be at least %d characters", passwordMinLen))
	}

	// Pre-check the identity for a friendly error; the unique index is what
	// actually guarantees uniqueness under concurrent registrations.
	if _, err := s.users.FindByUserName(ctx, input.UserName); err == nil {
		return nil, NewValidationError("userName already taken")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	token, err := NewToken()
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:          uuid.NewString(),
		UserName:    input.UserName,
		Password:    hash,
		AccessToken: token,
	}
	if input.Email != "" {
		email := input.Email
		user.Email = &email
	}
	if err := s.users.Create(ctx, user); err != nil {
		// A create that races past the pre-check still trips the unique
		// index; any other failure is a store failure, not bad input.
		if errors.Is(err, store.ErrDuplicate) {
			return nil, NewValidationError("userName or email already taken")
		}
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":   user.ID,
		"user_name": user.UserName,
	}).Info("User registered")

	return credentialsOf(user), nil
}

// Login verifies the password for an identity or email and rotates the stored
// token, invalidating whatever token was issued before. Lookup misses and
// verification failures are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, identityOrEmail, password string) (*Credentials, error) {
	user, err := s.users.FindByEmail(ctx, identityOrEmail)
	if errors.Is(err, store.ErrNotFound) {
		user, err = s.users.FindByUserName(ctx, identityOrEmail)
	}
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !s.hasher.Verify(password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := NewToken()
	if err != nil {
		return nil, err
	}
	oldToken := user.AccessToken
	if err := s.users.RotateToken(ctx, user.ID, token); err != nil {
		return nil, err
	}
	user.AccessToken = token

	// Once the rotation is committed the old token cannot be re-resolved, so
	// dropping its cached resolution here kills it everywhere.
	if s.invalidator != nil && oldToken != "" {
		if err := s.invalidator.InvalidateToken(ctx, oldToken); err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": user.ID,
				"error":   err.Error(),
			}).Warn("Failed to invalidate cached token")
		}
	}

	logrus.WithFields(logrus.Fields{
		"user_id":   user.ID,
		"user_name": user.UserName,
	}).Info("User logged in")

	return credentialsOf(user), nil
}

// Authenticate resolves a bearer token to its user, re-reading the store on
// every call so a rotated token stops working immediately.
func (s *Service) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}
	user, err := s.users.FindByToken(ctx, token)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func credentialsOf(user *domain.User) *Credentials {
	return &Credentials{
		UserID:      user.ID,
		UserName:    user.UserName,
		Email:       user.Email,
		AccessToken: user.AccessToken,
	}
}
