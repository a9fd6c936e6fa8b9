package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"stackbase/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret-key-12345678901234567890123456789012"

func generateToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(testSecret))
	assert.NoError(t, err)
	return s
}

func userToken(t *testing.T, userID uint, exp time.Duration) string {
	return generateToken(t, jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(userID), 10),
		"username": "testuser",
		"admin":    false,
		"exp":      time.Now().Add(exp).Unix(),
	})
}

func TestAuthRequired(t *testing.T) {
	app := fiber.New()
	InitMiddleware(&config.Config{JWTSecret: testSecret})

	app.Get("/test", AuthRequired, func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"userID":   c.Locals("userID"),
			"username": c.Locals("username"),
		})
	})

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
		expectedUserID uint
	}{
		{
			name:           "Happy Path",
			authHeader:     "Bearer " + userToken(t, 123, time.Hour),
			expectedStatus: http.StatusOK,
			expectedUserID: 123,
		},
		{
			name:           "Missing Header",
			authHeader:     "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Invalid Format",
			authHeader:     "Basic dXNlcjpwYXNz",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Malformed Token",
			authHeader:     "Bearer malformed.token.here",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Expired Token",
			authHeader:     "Bearer " + userToken(t, 123, -time.Hour),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "Missing Subject",
			authHeader: "Bearer " + generateToken(t, jwt.MapClaims{
				"username": "testuser",
				"exp":      time.Now().Add(time.Hour).Unix(),
			}),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "Non Numeric Subject",
			authHeader: "Bearer " + generateToken(t, jwt.MapClaims{
				"sub": "not-a-number",
				"exp": time.Now().Add(time.Hour).Unix(),
			}),
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		tt := tt // capture range variable
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			resp, err := app.Test(req)
			assert.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusOK {
				var body map[string]interface{}
				if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
					assert.Equal(t, float64(tt.expectedUserID), body["userID"])
					assert.Equal(t, "testuser", body["username"])
				}
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	app := fiber.New()
	InitMiddleware(&config.Config{JWTSecret: testSecret})

	app.Get("/test", OptionalAuth, func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userID").(uint)
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"identified": ok,
			"userID":     userID,
		})
	})

	tests := []struct {
		name       string
		authHeader string
		identified bool
	}{
		{
			name:       "Valid Token Identifies",
			authHeader: "Bearer " + userToken(t, 55, time.Hour),
			identified: true,
		},
		{
			name:       "No Header Passes Through",
			authHeader: "",
			identified: false,
		},
		{
			name:       "Invalid Token Passes Through",
			authHeader: "Bearer garbage",
			identified: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			resp, err := app.Test(req)
			assert.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, http.StatusOK, resp.StatusCode)

			var body map[string]interface{}
			assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.identified, body["identified"])
		})
	}
}
