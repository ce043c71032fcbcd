package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fitnessfinder/internal/config"
	"fitnessfinder/internal/database"
	"fitnessfinder/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testSecret = "test-secret-key-12345678901234567890123456789012"

// newTestServer builds a Server over an in-memory SQLite database with all
// routes registered. Rate limiting is bypassed because APP_ENV=test.
func newTestServer(t *testing.T) (*fiber.App, *Server) {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(database.PersistentModels()...); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	cfg := &config.Config{JWTSecret: testSecret, Env: "test"}
	s, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)

	app := fiber.New()
	s.SetupRoutes(app)
	return app, s
}

// tokenFor signs an access token for the given email, mirroring generateToken.
func tokenFor(t *testing.T, email string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub": email,
		"iss": middleware.TokenIssuer,
		"aud": middleware.TokenAudience,
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

// doJSON performs a request with an optional JSON body and bearer token,
// returning the response and its decoded body.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	decoded := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp, decoded
}

// signupMember registers an account+profile pair and returns a bearer token.
func signupMember(t *testing.T, app *fiber.App, email, first, last string, interests []string) string {
	t.Helper()
	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", map[string]any{
		"email":     email,
		"password":  "Password123!",
		"firstName": first,
		"lastName":  last,
		"interests": interests,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "signup %s: %v", email, body)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

// addSession creates a session owned by the token's member and returns its id.
func addSession(t *testing.T, app *fiber.App, token, title string, interests []string) string {
	t.Helper()
	resp, body := doJSON(t, app, http.MethodPost, "/api/sessions/", token, map[string]any{
		"title":      title,
		"date":       time.Now().Add(48 * time.Hour).Format(time.RFC3339),
		"interests":  interests,
		"skillLevel": "Beginner",
		"location":   "Track",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "add session %s: %v", title, body)
	id, _ := body["id"].(string)
	require.NotEmpty(t, id)
	return id
}
