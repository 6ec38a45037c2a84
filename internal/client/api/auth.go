package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/mboehm/tix/internal/store"
)

type AuthService struct {
	client *Client
}

type LoginResult struct {
	Token string
	User  *store.Profile
}

type loginResponse struct {
	Token       string `json:"token"`
	AccessToken string `json:"accessToken"`
	User        *struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"user"`
}

// Login exchanges credentials for a bearer token. The server may answer with
// either a "token" or an "accessToken" key.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	const resource = "login"

	body := map[string]string{"email": email, "password": password}

	var resp loginResponse
	err := s.client.do(ctx, http.MethodPost, resource, body, &resp, callOpts{timeout: loginTimeout})
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	token := resp.Token
	if token == "" {
		token = resp.AccessToken
	}
	if token == "" {
		return nil, &APIError{StatusCode: http.StatusOK, Message: "login response carried no token"}
	}

	result := &LoginResult{Token: token}
	if resp.User != nil {
		result.User = &store.Profile{Name: resp.User.Name, Email: resp.User.Email}
	}
	return result, nil
}

// Register creates an account. A fresh registration is followed by a normal
// login to obtain the session token.
func (s *AuthService) Register(ctx context.Context, name, email, password string) error {
	const resource = "register"

	body := map[string]string{"name": name, "email": email, "password": password}
	return s.client.do(ctx, http.MethodPost, resource, body, nil, callOpts{timeout: loginTimeout})
}

// ChangePassword rotates the signed-in user's password.
func (s *AuthService) ChangePassword(ctx context.Context, current, next string) error {
	const resource = "change-password"

	body := map[string]string{"currentPassword": current, "newPassword": next}
	return s.client.do(ctx, http.MethodPost, resource, body, nil, callOpts{
		authed:       true,
		signalExpiry: true,
		timeout:      loginTimeout,
	})
}

// Me is the "who am I" call the periodic validator rides on. A 401 publishes
// the expiry signal before returning ErrUnauthorized.
func (s *AuthService) Me(ctx context.Context) (store.Profile, error) {
	const resource = "me"

	var resp struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	err := s.client.do(ctx, http.MethodGet, resource, nil, &resp, callOpts{
		authed:       true,
		signalExpiry: true,
		timeout:      meTimeout,
	})
	if err != nil {
		return store.Profile{}, err
	}
	return store.Profile{Name: resp.Name, Email: resp.Email}, nil
}
