package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/11JOB/11JOB-frontend/internal/domain/entities"
	"github.com/11JOB/11JOB-frontend/internal/ports"
)

// UserClient implements ports.UserAPI against the account endpoints.
type UserClient struct {
	client *Client
}

func NewUserClient(client *Client) *UserClient {
	return &UserClient{client: client}
}

// Login posts credentials and extracts the token pair. The backend has
// shipped two variants over time: tokens inside the response body, and
// tokens in the Authorization / Refresh-Token response headers. Both are
// accepted, body first.
func (c *UserClient) Login(ctx context.Context, req ports.LoginRequest) (*entities.Session, error) {
	encoded, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode login request: %w", err)
	}

	httpReq, err := c.client.newRequest(ctx, http.MethodPost, "/login", nil, bytes.NewReader(encoded), "application/json")
	if err != nil {
		return nil, err
	}
	resp, raw, err := c.client.roundTrip(httpReq)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	var body struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	if err := unwrap(raw, &body); err != nil {
		return nil, err
	}

	session := &entities.Session{
		Email:        req.Email,
		AccessToken:  body.AccessToken,
		RefreshToken: body.RefreshToken,
	}
	if session.AccessToken == "" {
		session.AccessToken = strings.TrimPrefix(resp.Header.Get("Authorization"), "Bearer ")
	}
	if session.RefreshToken == "" {
		session.RefreshToken = resp.Header.Get("Refresh-Token")
	}
	if session.AccessToken == "" {
		return nil, fmt.Errorf("login response carried no access token")
	}
	return session, nil
}

func (c *UserClient) Join(ctx context.Context, req ports.JoinRequest) error {
	if err := c.client.sendJSON(ctx, http.MethodPost, "/user/join", req, nil); err != nil {
		return fmt.Errorf("failed to register account: %w", err)
	}
	return nil
}

func (c *UserClient) SendEmailCode(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	if err := c.client.sendJSON(ctx, http.MethodPost, "/user/emailSend", body, nil); err != nil {
		return fmt.Errorf("failed to send verification code: %w", err)
	}
	return nil
}

func (c *UserClient) CheckEmailCode(ctx context.Context, email, code string) error {
	body := map[string]string{"email": email, "code": code}
	if err := c.client.sendJSON(ctx, http.MethodPost, "/user/emailCheck", body, nil); err != nil {
		return fmt.Errorf("verification code rejected: %w", err)
	}
	return nil
}

func (c *UserClient) ChangePassword(ctx context.Context, req ports.ChangePasswordRequest) error {
	if err := c.client.sendJSON(ctx, http.MethodPatch, "/user/change-password", req, nil); err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}
	return nil
}

func (c *UserClient) Logout(ctx context.Context) error {
	if err := c.client.sendJSON(ctx, http.MethodPost, "/user/logout", nil, nil); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	return nil
}

func (c *UserClient) DeleteAccount(ctx context.Context) error {
	req, err := c.client.newRequest(ctx, http.MethodDelete, "/user/delete-user", nil, nil, "")
	if err != nil {
		return err
	}
	if _, _, err := c.client.roundTrip(req); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return nil
}
