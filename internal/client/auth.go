package client

import (
	"context"
	"net/http"
	"strings"

	"cloud-kitchen-client/internal/domain"
	"cloud-kitchen-client/internal/session"
)

type AuthClient struct {
	r       *Requester
	session *session.Manager
}

func NewAuthClient(r *Requester, sess *session.Manager) *AuthClient {
	return &AuthClient{r: r, session: sess}
}

// Register creates an account for role. When the backend answers with a
// token the new user is signed in right away.
func (c *AuthClient) Register(ctx context.Context, role domain.Role, req domain.RegisterRequest) (*domain.AuthData, error) {
	if role == "" {
		return nil, validationError("role is required")
	}
	data, err := sendData[domain.AuthData](ctx, c.r, Request{
		Method: http.MethodPost,
		Path:   "/auth/register/" + strings.ToLower(string(role)),
		Body:   req,
		Auth:   AuthNone,
	})
	if err != nil {
		return nil, err
	}
	if data.Token != "" {
		if err := c.session.SignIn(ctx, data.Token, &data.User); err != nil {
			return nil, err
		}
	}
	return &data, nil
}

func (c *AuthClient) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthData, error) {
	data, err := sendData[domain.AuthData](ctx, c.r, Request{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body:   req,
		Auth:   AuthNone,
	})
	if err != nil {
		return nil, err
	}
	if err := c.session.SignIn(ctx, data.Token, &data.User); err != nil {
		return nil, err
	}
	return &data, nil
}

func (c *AuthClient) Logout(ctx context.Context) error {
	return c.session.SignOut(ctx)
}

// CurrentUser returns the stored profile, nil when signed out.
func (c *AuthClient) CurrentUser(ctx context.Context) (*domain.User, error) {
	return c.session.User(ctx)
}
