package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/priyankaj04/Gymlogs/internal/middleware"
	"github.com/priyankaj04/Gymlogs/internal/models"
	"github.com/priyankaj04/Gymlogs/internal/services"
)

type stubUserService struct {
	registerUser  *models.User
	registerErr   error
	loginErr      error
	getErr        error
	deleteErr     error
	lastRegister  services.RegisterInput
	lastActorID   string
	lastTargetID  string
	lastUpdate    models.UserUpdate
	deleteInvoked bool
}

func (s *stubUserService) Register(_ context.Context, input services.RegisterInput) (*models.User, string, error) {
	s.lastRegister = input
	return s.registerUser, "token-123", s.registerErr
}

func (s *stubUserService) Login(context.Context, string, string) (*models.User, string, error) {
	if s.loginErr != nil {
		return nil, "", s.loginErr
	}
	return &models.User{ID: "u1", Email: "a@b.co"}, "token-456", nil
}

func (s *stubUserService) GetUser(_ context.Context, actorID, id string) (*models.User, error) {
	s.lastActorID = actorID
	s.lastTargetID = id
	if s.getErr != nil {
		return nil, s.getErr
	}
	return &models.User{ID: id, Name: "A"}, nil
}

func (s *stubUserService) UpdateUser(_ context.Context, actorID, id string, update models.UserUpdate) (*models.User, error) {
	s.lastActorID = actorID
	s.lastUpdate = update
	user := &models.User{ID: id}
	if update.Name != nil {
		user.Name = *update.Name
	}
	return user, nil
}

func (s *stubUserService) DeleteUser(_ context.Context, actorID, id string) error {
	s.deleteInvoked = true
	s.lastActorID = actorID
	s.lastTargetID = id
	return s.deleteErr
}

func newUserTestApp(service *stubUserService, userID string) *fiber.App {
	handler := NewUserHandler(service)
	app := fiber.New()
	app.Post("/api/users/register", handler.Register)
	app.Post("/api/users/login", handler.Login)
	protected := app.Group("/api/users", func(c *fiber.Ctx) error {
		if userID != "" {
			c.Locals(middleware.LocalUserID, userID)
		}
		return c.Next()
	})
	protected.Get("/:id", handler.GetUser)
	protected.Put("/:id", handler.UpdateUser)
	protected.Delete("/:id", handler.DeleteUser)
	return app
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return payload
}

func TestRegisterReturnsUserAndToken(t *testing.T) {
	service := &stubUserService{registerUser: &models.User{ID: "u1", Email: "a@b.co", Name: "A"}}
	app := newUserTestApp(service, "")

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/users/register",
		`{"email":"a@b.co","password":"secret1","name":"A"}`))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	payload := decodeBody(t, resp)
	if payload["token"] != "token-123" {
		t.Fatalf("expected token, got %v", payload["token"])
	}
	data, ok := payload["data"].(map[string]any)
	if !ok || data["id"] != "u1" {
		t.Fatalf("unexpected data: %v", payload["data"])
	}
	if _, ok := data["created_at"]; !ok {
		t.Fatalf("expected snake_case timestamps, got %v", data)
	}
	if service.lastRegister.Name != "A" {
		t.Fatalf("expected name forwarded, got %+v", service.lastRegister)
	}
}

func TestRegisterValidatesBody(t *testing.T) {
	service := &stubUserService{}
	app := newUserTestApp(service, "")

	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "bad email", body: `{"email":"nope","password":"secret1","name":"A"}`, want: "email"},
		{name: "short password", body: `{"email":"a@b.co","password":"123","name":"A"}`, want: "password"},
		{name: "missing name", body: `{"email":"a@b.co","password":"secret1"}`, want: "name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(jsonRequest(http.MethodPost, "/api/users/register", tt.body))
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", resp.StatusCode)
			}
			payload := decodeBody(t, resp)
			message, _ := payload["message"].(string)
			if !strings.Contains(message, tt.want) {
				t.Fatalf("expected message about %s, got %q", tt.want, message)
			}
		})
	}
}

func TestRegisterDuplicateEmailIsConflict(t *testing.T) {
	service := &stubUserService{registerErr: services.ErrEmailTaken}
	app := newUserTestApp(service, "")

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/users/register",
		`{"email":"a@b.co","password":"secret1","name":"A"}`))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
	payload := decodeBody(t, resp)
	if payload["message"] != "Email already exists" {
		t.Fatalf("unexpected message: %v", payload["message"])
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	service := &stubUserService{loginErr: services.ErrInvalidCredentials}
	app := newUserTestApp(service, "")

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/users/login", `{"email":"a@b.co","password":"x"}`))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	payload := decodeBody(t, resp)
	if payload["error"] != "Unauthorized" || payload["message"] != "Invalid email or password" {
		t.Fatalf("unexpected body: %v", payload)
	}
}

func TestGetUserForbiddenForOtherUser(t *testing.T) {
	service := &stubUserService{getErr: services.ErrForbidden}
	app := newUserTestApp(service, "u2")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/users/u1", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
	if service.lastActorID != "u2" || service.lastTargetID != "u1" {
		t.Fatalf("unexpected ids: actor=%s target=%s", service.lastActorID, service.lastTargetID)
	}
}

func TestUserRoutesRequireUserID(t *testing.T) {
	service := &stubUserService{}
	app := newUserTestApp(service, "")

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/users/u1", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	if service.deleteInvoked {
		t.Fatalf("delete must not reach the service")
	}
}

func TestUpdateAndDeleteUser(t *testing.T) {
	service := &stubUserService{}
	app := newUserTestApp(service, "u1")

	resp, err := app.Test(jsonRequest(http.MethodPut, "/api/users/u1", `{"name":"Renamed"}`))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastUpdate.Name == nil || *service.lastUpdate.Name != "Renamed" {
		t.Fatalf("expected name update, got %+v", service.lastUpdate)
	}
	if service.lastUpdate.Email != nil || service.lastUpdate.Password != nil {
		t.Fatalf("unset fields must stay nil: %+v", service.lastUpdate)
	}
	resp.Body.Close()

	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, "/api/users/u1", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	payload := decodeBody(t, resp)
	if payload["message"] != "User deleted successfully" {
		t.Fatalf("unexpected message: %v", payload["message"])
	}
}
