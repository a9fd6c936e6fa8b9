package middleware

import (
	"strconv"
	"strings"

	"stackbase/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var cfg *config.Config

// InitMiddleware initializes authentication middleware with the given config.
func InitMiddleware(c *config.Config) {
	cfg = c
}

// parseToken verifies the bearer token and returns its claims. Tokens are
// issued by the external identity provider; this service only verifies the
// shared-secret HMAC signature and reads identity claims.
func parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
	}
	return claims, nil
}

// applyIdentity extracts identity claims onto Fiber locals. The "sub" claim
// (RFC 7519 subject) carries the user ID as a decimal string.
func applyIdentity(c *fiber.Ctx, claims jwt.MapClaims) error {
	subClaim, ok := claims["sub"]
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid token structure - missing subject")
	}
	subStr, ok := subClaim.(string)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid token subject type")
	}
	userID, err := strconv.ParseUint(subStr, 10, 32)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid token subject value")
	}
	c.Locals("userID", uint(userID))

	if username, ok := claims["username"].(string); ok {
		c.Locals("username", username)
	}
	if admin, ok := claims["admin"].(bool); ok {
		c.Locals("isAdmin", admin)
	}
	return nil
}

// AuthRequired enforces authentication for protected routes.
func AuthRequired(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authorization header required",
		})
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid authorization header format",
		})
	}

	claims, err := parseToken(parts[1])
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if err := applyIdentity(c, claims); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Next()
}

// OptionalAuth extracts identity when a valid bearer token is present but
// never rejects the request. Listing endpoints use it so the "liked" flag can
// be computed for signed-in readers.
func OptionalAuth(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Next()
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return c.Next()
	}
	claims, err := parseToken(parts[1])
	if err != nil {
		return c.Next()
	}
	_ = applyIdentity(c, claims)
	return c.Next()
}
