package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/11JOB/11JOB-frontend/internal/domain/entities"
	"github.com/11JOB/11JOB-frontend/internal/infrastructure/logger"
	"github.com/11JOB/11JOB-frontend/internal/infrastructure/session"
	"github.com/11JOB/11JOB-frontend/internal/ports"
)

// SessionService manages the authentication lifecycle against the backend:
// login stores tokens, logout clears them, and expiry is read from the
// access token's claims. The signing key lives on the server, so tokens
// are only inspected here, never verified.
type SessionService struct {
	api    ports.UserAPI
	store  *session.Store
	logger *logger.Logger
}

// NewSessionService creates a new session service
func NewSessionService(api ports.UserAPI, store *session.Store, logger *logger.Logger) *SessionService {
	return &SessionService{
		api:    api,
		store:  store,
		logger: logger,
	}
}

// Login authenticates against the backend and stores the issued tokens.
func (s *SessionService) Login(ctx context.Context, req ports.LoginRequest) (*entities.Session, error) {
	sess, err := s.api.Login(ctx, req)
	if err != nil {
		s.logger.Warn("Login failed", "email", req.Email, "error", err)
		return nil, fmt.Errorf("login failed: %w", err)
	}
	sess.Email = req.Email

	if err := s.store.Save(sess); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	s.logger.Info("Logged in", "email", req.Email)
	return sess, nil
}

// Logout tells the backend to invalidate the session, then clears local
// token state regardless of the remote outcome.
func (s *SessionService) Logout(ctx context.Context) error {
	if err := s.api.Logout(ctx); err != nil {
		s.logger.Warn("Remote logout failed, clearing local session anyway", "error", err)
	}
	return s.store.Clear()
}

// Current returns the active session or ErrNotAuthenticated.
func (s *SessionService) Current() (*entities.Session, error) {
	return s.store.Current()
}

// Expired reports whether the stored access token has an exp claim in the
// past. A missing session counts as expired; a token without a readable
// exp claim does not (the backend is the authority either way).
func (s *SessionService) Expired(now time.Time) bool {
	sess, err := s.store.Current()
	if err != nil {
		return true
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(sess.AccessToken, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}

// Join registers a new account.
func (s *SessionService) Join(ctx context.Context, req ports.JoinRequest) error {
	if err := s.api.Join(ctx, req); err != nil {
		return fmt.Errorf("sign-up failed: %w", err)
	}
	s.logger.Info("Account created", "email", req.Email)
	return nil
}

// SendEmailCode asks the backend to mail a verification code.
func (s *SessionService) SendEmailCode(ctx context.Context, email string) error {
	if err := s.api.SendEmailCode(ctx, email); err != nil {
		return fmt.Errorf("failed to send verification code: %w", err)
	}
	return nil
}

// CheckEmailCode verifies a mailed code.
func (s *SessionService) CheckEmailCode(ctx context.Context, email, code string) error {
	if err := s.api.CheckEmailCode(ctx, email, code); err != nil {
		return fmt.Errorf("verification code rejected: %w", err)
	}
	return nil
}

// ChangePassword updates the account password.
func (s *SessionService) ChangePassword(ctx context.Context, req ports.ChangePasswordRequest) error {
	if err := s.api.ChangePassword(ctx, req); err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}
	s.logger.Info("Password changed", "email", req.Email)
	return nil
}

// DeleteAccount removes the account and clears the local session.
func (s *SessionService) DeleteAccount(ctx context.Context) error {
	if err := s.api.DeleteAccount(ctx); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return s.store.Clear()
}
