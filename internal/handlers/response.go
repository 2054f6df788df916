package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/priyankaj04/Gymlogs/internal/models"
	"github.com/priyankaj04/Gymlogs/internal/services"
	"github.com/priyankaj04/Gymlogs/internal/wire"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	err := v.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(interface{ Valid() bool })
		return ok && value.Valid()
	})
	if err != nil {
		panic(fmt.Sprintf("register enum validation: %v", err))
	}
	return v
}

// parseBody decodes and validates the request body into out.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "")
	}
	if err := validate.Struct(out); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Validation failed", describeValidation(err))
	}
	return nil
}

func describeValidation(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}
	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			messages = append(messages, field+" is required")
		case "email":
			messages = append(messages, field+" must be a valid email")
		case "min":
			messages = append(messages, fmt.Sprintf("%s must be at least %s characters", field, fe.Param()))
		case "enum":
			messages = append(messages, fmt.Sprintf("%s has an unsupported value %q", field, fmt.Sprint(fe.Value())))
		default:
			messages = append(messages, field+" is invalid")
		}
	}
	return strings.Join(messages, "; ")
}

func errorResponse(c *fiber.Ctx, status int, code, message string) error {
	body := fiber.Map{"error": code}
	if message != "" {
		body["message"] = message
	}
	return c.Status(status).JSON(body)
}

func dataResponse[T any](c *fiber.Ctx, status int, data T) error {
	return c.Status(status).JSON(wire.Envelope[T]{Data: data})
}

func listResponse[T any](c *fiber.Ctx, data []T, meta models.PaginationMeta) error {
	return c.JSON(wire.Envelope[[]T]{Data: data, Pagination: wire.FromPagination(meta)})
}

func messageResponse(c *fiber.Ctx, message string) error {
	return c.JSON(wire.MessageBody{Message: message})
}

// mapServiceError turns service and repository errors into the error body.
// resource names the thing the request was about, for 404 and 500 messages.
func mapServiceError(c *fiber.Ctx, err error, resource string) error {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return errorResponse(c, fiber.StatusNotFound, "Not found", resource+" not found")
	case errors.Is(err, services.ErrForbidden):
		return errorResponse(c, fiber.StatusForbidden, "Forbidden", "You do not have access to this "+strings.ToLower(resource))
	case errors.Is(err, services.ErrInvalidCredentials):
		return errorResponse(c, fiber.StatusUnauthorized, "Unauthorized", "Invalid email or password")
	case errors.Is(err, services.ErrEmailTaken):
		return errorResponse(c, fiber.StatusConflict, "Conflict", "Email already exists")
	case errors.Is(err, services.ErrConflict):
		return errorResponse(c, fiber.StatusConflict, "Conflict", err.Error())
	case errors.Is(err, services.ErrExerciseNotFound):
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request", "Exercise not found")
	case errors.Is(err, services.ErrInvalidInput):
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request", "")
	default:
		return errorResponse(c, fiber.StatusInternalServerError, "Internal server error", "Failed to process "+strings.ToLower(resource)+" request")
	}
}

func unauthorized(c *fiber.Ctx) error {
	return errorResponse(c, fiber.StatusUnauthorized, "Unauthorized", "Invalid token")
}
