package api

import (
	"context"
	"net/http"
	"time"

	"github.com/Makepad-fr/orderup/internal/model"
)

// Credentials is what the login screen collects.
type Credentials struct {
	Domain   string `json:"domain"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type Session struct {
	Token     string     `json:"token"`
	User      model.User `json:"user"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// Login exchanges credentials for a token. It never sends a stored token.
func (c *Client) Login(ctx context.Context, cr Credentials) (Session, error) {
	return FetchWithToken[Session](ctx, c, http.MethodPost, c.endpoint(c.Endpoints.Login), cr, SkipAuth()).
		Value("Login failed")
}

func (c *Client) Logout(ctx context.Context) error {
	return FetchWithToken[struct{}](ctx, c, http.MethodPost, c.endpoint(c.Endpoints.Logout), nil).Err()
}

// Refresh trades the current token for a fresh one.
func (c *Client) Refresh(ctx context.Context) (Session, error) {
	return FetchWithToken[Session](ctx, c, http.MethodPost, c.endpoint(c.Endpoints.Refresh), nil).
		Value("Token refresh failed")
}
