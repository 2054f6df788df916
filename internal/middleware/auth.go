package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/priyankaj04/Gymlogs/internal/wire"
	"github.com/priyankaj04/Gymlogs/pkg/utils"
)

// Keys under which AuthRequired stores the caller.
const (
	LocalUserID = "user_id"
	LocalRole   = "role"
)

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(wire.ErrorBody{
		Error:   "Unauthorized",
		Message: message,
	})
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The scheme is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != "" && !strings.Contains(token, " ")
}

// AuthRequired rejects requests without a valid bearer token and stores the
// caller under LocalUserID and LocalRole.
func AuthRequired(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return unauthorized(c, "Missing authorization header")
		}

		token, ok := bearerToken(header)
		if !ok {
			return unauthorized(c, "Invalid authorization header format")
		}

		claims, err := utils.ValidateToken(token, secret)
		if err != nil {
			return unauthorized(c, "Invalid or expired token")
		}

		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalRole, claims.Role)
		return c.Next()
	}
}

// CallerID returns the user id stored by AuthRequired.
func CallerID(c *fiber.Ctx) (string, bool) {
	userID, ok := c.Locals(LocalUserID).(string)
	return userID, ok && userID != ""
}
