package apiclient

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/priyankaj04/Gymlogs/internal/models"
	"github.com/priyankaj04/Gymlogs/internal/wire"
)

const usersPath = "/api/users"

// SessionStore persists the token and cached user between runs.
type SessionStore interface {
	Token(ctx context.Context) (string, error)
	User(ctx context.Context) (*models.User, error)
	Save(ctx context.Context, token string, user models.User) error
	SaveUser(ctx context.Context, user models.User) error
	Clear(ctx context.Context) error
}

type RegisterRequest struct {
	Email    string
	Password string
	Name     string
}

type AuthResult struct {
	User  models.User
	Token string
}

type AuthClient struct {
	api      *Client
	sessions SessionStore
}

func NewAuthClient(api *Client, sessions SessionStore) *AuthClient {
	return &AuthClient{api: api, sessions: sessions}
}

func (a *AuthClient) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	body := wire.RegisterRequest{Email: req.Email, Password: req.Password, Name: req.Name}
	return a.authenticate(ctx, "register", usersPath+"/register", body)
}

func (a *AuthClient) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := wire.LoginRequest{Email: email, Password: password}
	return a.authenticate(ctx, "login", usersPath+"/login", body)
}

func (a *AuthClient) authenticate(ctx context.Context, op, path string, body any) (*AuthResult, error) {
	var env wire.Envelope[wire.User]
	if err := a.api.do(ctx, http.MethodPost, path, nil, "", body, &env); err != nil {
		return nil, &AuthError{Op: op, Err: err}
	}
	if env.Token == "" {
		return nil, &AuthError{Op: op, Err: errors.New("response did not include a token")}
	}

	user := env.Data.Model()
	if err := a.sessions.Save(ctx, env.Token, user); err != nil {
		return nil, &AuthError{Op: op, Err: err}
	}
	return &AuthResult{User: user, Token: env.Token}, nil
}

// CurrentUser re-validates the stored session against the server. It returns
// (nil, nil) when there is no session. Any failure to verify it clears the
// stored session and also yields (nil, nil).
func (a *AuthClient) CurrentUser(ctx context.Context) (*models.User, error) {
	token, err := a.sessions.Token(ctx)
	if err != nil {
		return a.dropSession(ctx, err)
	}
	cached, err := a.sessions.User(ctx)
	if err != nil {
		return a.dropSession(ctx, err)
	}
	if token == "" || cached == nil {
		return nil, nil
	}

	var env wire.Envelope[wire.User]
	err = a.api.do(ctx, http.MethodGet, resourcePath(usersPath, cached.ID), nil, token, nil, &env)
	if err != nil {
		return a.dropSession(ctx, err)
	}

	user := env.Data.Model()
	if err := a.sessions.SaveUser(ctx, user); err != nil {
		log.Printf("Error caching current user: %v", err)
	}
	return &user, nil
}

func (a *AuthClient) UpdateUser(ctx context.Context, id string, update models.UserUpdate) (*models.User, error) {
	token := a.Token(ctx)
	if token == "" {
		return nil, ErrUnauthenticated
	}

	var env wire.Envelope[wire.User]
	if err := a.api.do(ctx, http.MethodPut, resourcePath(usersPath, id), nil, token, wire.FromUserUpdate(update), &env); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	user := env.Data.Model()
	if a.isCachedUser(ctx, user.ID) {
		if err := a.sessions.SaveUser(ctx, user); err != nil {
			log.Printf("Error caching updated user: %v", err)
		}
	}
	return &user, nil
}

func (a *AuthClient) DeleteUser(ctx context.Context, id string) error {
	token := a.Token(ctx)
	if token == "" {
		return ErrUnauthenticated
	}

	if err := a.api.do(ctx, http.MethodDelete, resourcePath(usersPath, id), nil, token, nil, nil); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if a.isCachedUser(ctx, id) {
		a.Logout(ctx)
	}
	return nil
}

func (a *AuthClient) dropSession(ctx context.Context, cause error) (*models.User, error) {
	var apiErr *APIError
	if errors.As(cause, &apiErr) {
		log.Printf("Stored session rejected (%d), logging out", apiErr.StatusCode)
	} else {
		log.Printf("Error getting current user, logging out: %v", cause)
	}
	a.Logout(ctx)
	return nil, nil
}

func (a *AuthClient) isCachedUser(ctx context.Context, id string) bool {
	cached, err := a.sessions.User(ctx)
	return err == nil && cached != nil && cached.ID == id
}

// Logout never fails; storage errors are only logged.
func (a *AuthClient) Logout(ctx context.Context) {
	if err := a.sessions.Clear(ctx); err != nil {
		log.Printf("Error clearing session: %v", err)
	}
}

func (a *AuthClient) Token(ctx context.Context) string {
	token, err := a.sessions.Token(ctx)
	if err != nil {
		log.Printf("Error reading session token: %v", err)
		return ""
	}
	return token
}

func (a *AuthClient) IsAuthenticated(ctx context.Context) bool {
	return a.Token(ctx) != ""
}

func (a *AuthClient) HealthCheck(ctx context.Context) bool {
	return a.api.healthy(ctx, usersPath+"/health")
}
