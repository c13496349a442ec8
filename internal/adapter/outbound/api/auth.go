package api

import (
	"context"
	"net/http"

	"github.com/doistemposcafe/totem/internal/domain/auth"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse is the POST /auth/login payload. Older backends return
// only the token; newer ones add the user output DTO.
type loginResponse struct {
	Token string        `json:"token"`
	User  *auth.Profile `json:"user,omitempty"`
}

// Login exchanges credentials for a token. Satisfies the session
// manager's AuthAPI contract.
func (c *Client) Login(ctx context.Context, email, password string) (string, *auth.Profile, error) {
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return "", nil, err
	}
	return resp.Token, resp.User, nil
}

// Register creates a new account. The backend leaves this route open;
// accounts created here get the CLIENT authority.
func (c *Client) Register(ctx context.Context, user User) (*User, error) {
	return c.Users.Save(ctx, user)
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword asks the backend to mail a reset link. The backend
// answers the same way whether or not the address exists.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/users/forgot-password", forgotPasswordRequest{Email: email}, nil)
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// ResetPassword redeems a reset token for a new password.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	return c.do(ctx, http.MethodPost, "/users/reset-password", resetPasswordRequest{Token: token, NewPassword: newPassword}, nil)
}
