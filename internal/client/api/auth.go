package api

import (
	"context"
	"fmt"
	"net/http"
	"runtime"

	"github.com/brocat-app/brocat/internal/client/models"
	"github.com/brocat-app/brocat/internal/common"
)

// clientVersion is reported to the backend on login so sessions can be
// tied to an app release.
const clientVersion = "1.0.0"

// LoginResult is the payload of a successful login.
type LoginResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type loginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	AppVersion string `json:"appVersion"`
	Platform   string `json:"platform"`
}

// Login authenticates against POST /auth/login. A 2xx envelope missing the
// token or user is treated as a malformed response, not a success.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var res LoginResult
	req := loginRequest{
		Email:      email,
		Password:   password,
		AppVersion: clientVersion,
		Platform:   runtime.GOOS,
	}
	if err := c.call(ctx, http.MethodPost, "/auth/login", req, &res); err != nil {
		return nil, err
	}
	if res.Token == "" || res.User == nil {
		return nil, fmt.Errorf("%w: login response missing token or user", common.ErrInvalidResponse)
	}
	return &res, nil
}

// Logout terminates the current session on the server.
func (c *Client) Logout(ctx context.Context) error {
	return c.call(ctx, http.MethodPost, "/auth/logout", struct{}{}, nil)
}

// ForceLogout terminates every *other* session of the current user.
func (c *Client) ForceLogout(ctx context.Context) error {
	return c.call(ctx, http.MethodPost, "/auth/forceLogout", struct{}{}, nil)
}

type validateResponse struct {
	User *models.User `json:"user"`
}

// Validate asks the backend whether the stored token still identifies a
// session, returning the current user on success. A response without a user
// converts to ErrInvalidResponse so callers fail closed.
func (c *Client) Validate(ctx context.Context) (*models.User, error) {
	var res validateResponse
	if err := c.call(ctx, http.MethodGet, "/auth/validate", nil, &res); err != nil {
		return nil, err
	}
	if res.User == nil {
		return nil, fmt.Errorf("%w: validate response missing user", common.ErrInvalidResponse)
	}
	return res.User, nil
}

// ChangePassword rotates the current user's password.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	req := struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}{oldPassword, newPassword}
	return c.call(ctx, http.MethodPost, "/auth/changePassword", req, nil)
}

// ForgotPassword requests a password-reset email. Anonymous endpoint.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	req := struct {
		Email string `json:"email"`
	}{email}
	return c.call(ctx, http.MethodPost, "/auth/forgotPassword", req, nil)
}

// ResetPassword completes a password reset using the emailed token.
// Anonymous endpoint.
func (c *Client) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	req := struct {
		Token       string `json:"token"`
		NewPassword string `json:"newPassword"`
	}{resetToken, newPassword}
	return c.call(ctx, http.MethodPost, "/auth/resetPassword", req, nil)
}
