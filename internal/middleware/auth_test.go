package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fitnessfinder/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestAuthRequired(t *testing.T) {
	// Setup app and config
	app := fiber.New()
	secret := "test-secret-key-12345678901234567890123456789012"
	InitMiddleware(&config.Config{JWTSecret: secret})

	app.Get("/test", AuthRequired, func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"email": c.Locals("email")})
	})

	generateToken := func(email string, exp time.Duration) string {
		claims := jwt.MapClaims{
			"sub": email,
			"iss": TokenIssuer,
			"aud": TokenAudience,
			"exp": time.Now().Add(exp).Unix(),
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		s, _ := token.SignedString([]byte(secret))
		return s
	}

	generateForeignToken := func() string {
		claims := jwt.MapClaims{
			"sub": "john@foo.com",
			"iss": "someone-else",
			"aud": TokenAudience,
			"exp": time.Now().Add(time.Hour).Unix(),
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		s, _ := token.SignedString([]byte(secret))
		return s
	}

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
		expectedEmail  string
	}{
		{
			name:           "Happy Path",
			authHeader:     "Bearer " + generateToken("john@foo.com", time.Hour),
			expectedStatus: http.StatusOK,
			expectedEmail:  "john@foo.com",
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
			authHeader:     "Bearer " + generateToken("john@foo.com", -time.Hour),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Empty Subject",
			authHeader:     "Bearer " + generateToken("", time.Hour),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Wrong Issuer",
			authHeader:     "Bearer " + generateForeignToken(),
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
			defer func() { _ = resp.Body.Close() }()
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusOK {
				var body map[string]interface{}
				if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
					assert.Equal(t, tt.expectedEmail, body["email"])
				}
			}
		})
	}
}

func TestAdminRequired(t *testing.T) {
	app := fiber.New()
	secret := "test-secret-key-12345678901234567890123456789012"
	InitMiddleware(&config.Config{JWTSecret: secret})

	app.Get("/admin", AuthRequired, AdminRequired, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	generateToken := func(email, role string) string {
		claims := jwt.MapClaims{
			"sub":  email,
			"role": role,
			"iss":  TokenIssuer,
			"aud":  TokenAudience,
			"exp":  time.Now().Add(time.Hour).Unix(),
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		s, _ := token.SignedString([]byte(secret))
		return s
	}

	tests := []struct {
		name           string
		role           string
		expectedStatus int
	}{
		{name: "Admin Allowed", role: "admin", expectedStatus: http.StatusOK},
		{name: "User Forbidden", role: "user", expectedStatus: http.StatusForbidden},
		{name: "Missing Role Forbidden", role: "", expectedStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			req.Header.Set("Authorization", "Bearer "+generateToken("admin@foo.com", tt.role))

			resp, err := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}
