// Package service holds the authentication flows. Each flow takes plain
// request data and returns a token or an apperror; HTTP mapping happens in
// the api package.
package service

import (
	"context"
	"strings"

	"flight_favorites/internal/apperror"
	"flight_favorites/internal/domain"

	"github.com/sirupsen/logrus"
)

// UserStore is the credential store used by AuthService.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
}

// PasswordHasher hashes and checks passwords.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hashed string) bool
}

// TokenIssuer signs bearer tokens.
type TokenIssuer interface {
	Issue(userID uint, email, role string) (string, error)
}

// Identity is the verified caller taken from a token.
type Identity struct {
	UserID uint
	Email  string
	Role   string
}

// AuthService runs registration, login and token refresh.
type AuthService struct {
	users  UserStore      // Credential store
	hasher PasswordHasher // bcrypt hasher
	tokens TokenIssuer    // JWT issuer
}

// NewAuthService wires the flows to their store, hasher and token issuer.
func NewAuthService(users UserStore, hasher PasswordHasher, tokens TokenIssuer) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens}
}

// Register creates a user with the default role and returns a token for it.
// The email lookup is only an early exit; the unique index on email decides
// concurrent registrations and its violation is reported as Conflict.
func (s *AuthService) Register(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email) // Ignore surrounding whitespace
	if email == "" || password == "" {
		return "", apperror.New(apperror.BadRequest, "email and password are required")
	}
	if len(password) > domain.MaxPasswordBytes {
		return "", apperror.New(apperror.BadRequest, "password must not exceed 72 bytes")
	}
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return "", apperror.New(apperror.Conflict, "user with this email already exists")
	} else if !apperror.Is(err, apperror.NotFound) {
		return "", err
	}

	hash, err := s.hasher.Hash(password) // Salted bcrypt hash
	if err != nil {
		return "", apperror.Internalf(err, "hash password")
	}
	user := &domain.User{Email: email, Password: hash, Role: domain.RoleUser}
	if err := s.users.Create(ctx, user); err != nil {
		return "", err
	}
	logrus.WithFields(logrus.Fields{"user_id": user.ID, "email": user.Email}).Info("User registered") // Log the new account
	return s.issue(user.ID, user.Email, user.Role)
}

// Login checks the password of an existing user and returns a fresh token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email) // Ignore surrounding whitespace
	if email == "" || password == "" {
		return "", apperror.New(apperror.BadRequest, "email and password are required")
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if apperror.Is(err, apperror.NotFound) {
			return "", apperror.New(apperror.NotFound, "user not found")
		}
		return "", err
	}
	if !s.hasher.Verify(password, user.Password) { // Wrong password
		return "", apperror.New(apperror.Unauthorized, "invalid password")
	}
	return s.issue(user.ID, user.Email, user.Role)
}

// Refresh re-issues a token for an already verified identity.
func (s *AuthService) Refresh(id Identity) (string, error) {
	return s.issue(id.UserID, id.Email, id.Role)
}

func (s *AuthService) issue(userID uint, email, role string) (string, error) {
	token, err := s.tokens.Issue(userID, email, role)
	if err != nil {
		return "", apperror.Internalf(err, "issue token")
	}
	return token, nil
}
