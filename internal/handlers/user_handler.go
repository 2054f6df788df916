package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/priyankaj04/Gymlogs/internal/middleware"
	"github.com/priyankaj04/Gymlogs/internal/models"
	"github.com/priyankaj04/Gymlogs/internal/services"
	"github.com/priyankaj04/Gymlogs/internal/wire"
)

type userAccountService interface {
	Register(ctx context.Context, input services.RegisterInput) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	GetUser(ctx context.Context, actorID, id string) (*models.User, error)
	UpdateUser(ctx context.Context, actorID, id string, update models.UserUpdate) (*models.User, error)
	DeleteUser(ctx context.Context, actorID, id string) error
}

type UserHandler struct {
	service userAccountService
}

func NewUserHandler(service userAccountService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) Register(c *fiber.Ctx) error {
	var req wire.RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, token, err := h.service.Register(c.Context(), services.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		return mapServiceError(c, err, "User")
	}

	return c.Status(fiber.StatusCreated).JSON(wire.Envelope[wire.User]{
		Data:  wire.FromUser(*user),
		Token: token,
	})
}

func (h *UserHandler) Login(c *fiber.Ctx) error {
	var req wire.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, token, err := h.service.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return mapServiceError(c, err, "User")
	}

	return c.JSON(wire.Envelope[wire.User]{
		Data:  wire.FromUser(*user),
		Token: token,
	})
}

func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	actorID, ok := middleware.CallerID(c)
	if !ok {
		return unauthorized(c)
	}

	user, err := h.service.GetUser(c.Context(), actorID, c.Params("id"))
	if err != nil {
		return mapServiceError(c, err, "User")
	}
	return dataResponse(c, fiber.StatusOK, wire.FromUser(*user))
}

func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	actorID, ok := middleware.CallerID(c)
	if !ok {
		return unauthorized(c)
	}

	var req wire.UserPatch
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, err := h.service.UpdateUser(c.Context(), actorID, c.Params("id"), req.Update())
	if err != nil {
		return mapServiceError(c, err, "User")
	}
	return dataResponse(c, fiber.StatusOK, wire.FromUser(*user))
}

func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	actorID, ok := middleware.CallerID(c)
	if !ok {
		return unauthorized(c)
	}

	if err := h.service.DeleteUser(c.Context(), actorID, c.Params("id")); err != nil {
		return mapServiceError(c, err, "User")
	}
	return messageResponse(c, "User deleted successfully")
}

// Health answers the per-resource health check.
func Health(service string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": service})
	}
}
