// Package auth authenticates admins and verifies their bearer tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"clinic-content-api/internal/domain"
	adminrepo "clinic-content-api/internal/repository/admin"
)

// Error messages are returned to clients verbatim.
var (
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrNoToken            = errors.New("Access denied. No token provided.")
	ErrTokenExpired       = errors.New("Token expired")
	ErrInvalidToken       = errors.New("Invalid token")
	ErrAdminNotFound      = errors.New("Admin not found")
)

// ErrWrongPassword rejects a password change whose current password does not
// match. The caller's token is still valid, so it is a validation failure.
var ErrWrongPassword error = &domain.ValidationError{Message: "Current password is incorrect"}

// IsAuthError reports whether err should be answered with 401.
func IsAuthError(err error) bool {
	for _, target := range []error{ErrInvalidCredentials, ErrNoToken, ErrTokenExpired, ErrInvalidToken, ErrAdminNotFound} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token string              `json:"token"`
	Admin domain.AdminSummary `json:"admin"`
}

// Service issues and verifies admin tokens.
type Service struct {
	repo        adminrepo.Repository
	tokens      *tokenManager
	logger      *zap.Logger
	passwordMin int
}

// New creates a Service signing tokens with secret that live for ttl.
func New(repo adminrepo.Repository, secret string, ttl time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:        repo,
		tokens:      newTokenManager(secret, ttl),
		logger:      logger,
		passwordMin: 8,
	}
}

// Login checks credentials, stamps lastLogin and issues a token. Unknown
// email and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, domain.NewValidationError("Please provide email and password")
	}
	a, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := s.tokens.now()
	if err := s.repo.TouchLastLogin(ctx, a.ID, now); err != nil {
		return nil, err
	}
	token, err := s.tokens.Issue(a.ID, a.Email, a.Role)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	s.logger.Info("admin logged in", zap.String("admin_id", a.ID))
	return &LoginResult{Token: token, Admin: a.Summary()}, nil
}

// Verify resolves a raw bearer token to a live admin.
func (s *Service) Verify(ctx context.Context, raw string) (*domain.Admin, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrNoToken
	}
	claims, err := s.tokens.Parse(raw)
	if err != nil {
		return nil, err
	}
	a, err := s.repo.GetByID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return a, nil
}

// ChangePassword replaces the admin's password after checking the current one.
func (s *Service) ChangePassword(ctx context.Context, adminID, current, next string) error {
	if current == "" || next == "" {
		return domain.MissingFields(missing(current, "currentPassword", next, "newPassword")...)
	}
	if len(next) < s.passwordMin {
		return domain.NewValidationError(fmt.Sprintf("Password must be at least %d characters", s.passwordMin))
	}
	a, err := s.repo.GetByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrAdminNotFound
		}
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(current)); err != nil {
		return ErrWrongPassword
	}
	hash, err := HashPassword(next)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, a.ID, hash); err != nil {
		return err
	}
	s.logger.Info("admin password changed", zap.String("admin_id", a.ID))
	return nil
}

// HashPassword hashes a plaintext password with bcrypt's default cost.
func HashPassword(p string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(p), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func missing(pairs ...string) []string {
	var out []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i] == "" {
			out = append(out, pairs[i+1])
		}
	}
	return out
}
