package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/11JOB/11JOB-frontend/internal/application/services"
	"github.com/11JOB/11JOB-frontend/internal/infrastructure/logger"
	"github.com/11JOB/11JOB-frontend/internal/ports"
)

// AuthHandler handles account and session requests. Tokens live in the
// session store and are attached to backend calls there; they are never
// echoed back out of this surface.
type AuthHandler struct {
	sessionService *services.SessionService
	logger         *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(sessionService *services.SessionService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		sessionService: sessionService,
		logger:         logger,
	}
}

// SessionResponse describes the current session without exposing tokens.
type SessionResponse struct {
	Email   string `json:"email"`
	Expired bool   `json:"expired"`
}

type EmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type EmailCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required"`
}

// Login godoc
// @Summary Log in
// @Description Authenticate against the backend and persist the issued tokens locally
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ports.LoginRequest true "Credentials"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req ports.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	session, err := h.sessionService.Login(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("Login failed", "error", err, "email", req.Email)
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}
	return c.JSON(http.StatusOK, SessionResponse{Email: session.Email})
}

// Logout godoc
// @Summary Log out
// @Description Invalidate the backend session and clear local tokens
// @Tags auth
// @Produce json
// @Success 200 {object} MessageResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.sessionService.Logout(c.Request().Context()); err != nil {
		h.logger.Error("Logout failed", "error", err)
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Logged out successfully"})
}

// GetSession godoc
// @Summary Get the current session
// @Tags auth
// @Produce json
// @Success 200 {object} SessionResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/session [get]
func (h *AuthHandler) GetSession(c echo.Context) error {
	session, err := h.sessionService.Current()
	if err != nil {
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, SessionResponse{
		Email:   session.Email,
		Expired: h.sessionService.Expired(time.Now()),
	})
}

// Join godoc
// @Summary Register an account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ports.JoinRequest true "Registration data"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /auth/join [post]
func (h *AuthHandler) Join(c echo.Context) error {
	var req ports.JoinRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.sessionService.Join(c.Request().Context(), req); err != nil {
		h.logger.Error("Registration failed", "error", err, "email", req.Email)
		return mapDomainError(err)
	}
	return c.JSON(http.StatusCreated, MessageResponse{Message: "Account registered"})
}

// SendEmailCode godoc
// @Summary Send an email verification code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body EmailRequest true "Email"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Router /auth/email/send [post]
func (h *AuthHandler) SendEmailCode(c echo.Context) error {
	var req EmailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.sessionService.SendEmailCode(c.Request().Context(), req.Email); err != nil {
		h.logger.Error("Send email code failed", "error", err, "email", req.Email)
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Verification code sent"})
}

// CheckEmailCode godoc
// @Summary Verify an email code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body EmailCodeRequest true "Email and code"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Router /auth/email/check [post]
func (h *AuthHandler) CheckEmailCode(c echo.Context) error {
	var req EmailCodeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.sessionService.CheckEmailCode(c.Request().Context(), req.Email, req.Code); err != nil {
		h.logger.Error("Email code check failed", "error", err, "email", req.Email)
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Email verified"})
}

// ChangePassword godoc
// @Summary Change the account password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ports.ChangePasswordRequest true "New password"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Router /auth/password [put]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var req ports.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.sessionService.ChangePassword(c.Request().Context(), req); err != nil {
		h.logger.Error("Password change failed", "error", err, "email", req.Email)
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Password changed"})
}

// DeleteAccount godoc
// @Summary Delete the account
// @Description Delete the backend account and clear the local session
// @Tags auth
// @Produce json
// @Success 200 {object} MessageResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/account [delete]
func (h *AuthHandler) DeleteAccount(c echo.Context) error {
	if err := h.sessionService.DeleteAccount(c.Request().Context()); err != nil {
		h.logger.Error("Account deletion failed", "error", err)
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Account deleted"})
}
