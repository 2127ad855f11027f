package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/bridgette-app/bridgette/internal/model"
)

// Login exchanges credentials for a bearer token. The backend follows the
// OAuth2 password flow, so the email is sent as the form "username" field.
// The token is stored on the client for subsequent requests.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var token struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := c.doForm(ctx, "/api/v1/auth/login", form.Encode(), &token); err != nil {
		return "", err
	}

	c.SetToken(token.AccessToken)
	return token.AccessToken, nil
}

// Signup creates a new account.
func (c *Client) Signup(ctx context.Context, req model.SignupRequest) (model.CurrentUser, error) {
	var user model.CurrentUser
	err := c.doJSON(ctx, http.MethodPost, "/api/v1/auth/signup", req, &user)
	return user, err
}

// Me fetches the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (model.CurrentUser, error) {
	var user model.CurrentUser
	err := c.doJSON(ctx, http.MethodGet, "/api/v1/auth/me", nil, &user)
	return user, err
}
