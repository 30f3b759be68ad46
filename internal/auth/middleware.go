package auth

import (
	"fmt"
	"strings"

	"warehouse-backend/internal/access"
	"warehouse-backend/internal/config"
	"warehouse-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const CtxIdentityKey = "identity"

func JWTMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization header missing")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization must be 'Bearer <token>'")
		}

		token, err := jwt.ParseWithClaims(parts[1], &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
		}

		claims, ok := token.Claims.(*JWTCustomClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Could not parse token claims")
		}

		c.Locals(CtxIdentityKey, access.Identity{
			UserID:     claims.UserID,
			Username:   claims.Username,
			Role:       claims.Role,
			CategoryID: claims.CategoryID,
		})

		return c.Next()
	}
}

// CurrentIdentity returns the identity stored by JWTMiddleware.
func CurrentIdentity(c *fiber.Ctx) (access.Identity, error) {
	id, ok := c.Locals(CtxIdentityKey).(access.Identity)
	if !ok {
		return access.Identity{}, fiber.NewError(fiber.StatusUnauthorized, "No identity in request context")
	}
	return id, nil
}

func RequireRole(allowedRoles ...models.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := CurrentIdentity(c)
		if err != nil {
			return err
		}

		for _, r := range allowedRoles {
			if r == id.Role {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "You do not have permission for this operation")
	}
}
