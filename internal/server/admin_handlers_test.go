package server

import (
	"net/http"
	"testing"
	"time"

	"fitnessfinder/internal/middleware"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// roleTokenFor signs an access token carrying an explicit role claim.
func roleTokenFor(t *testing.T, email, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  email,
		"role": role,
		"iss":  middleware.TokenIssuer,
		"aud":  middleware.TokenAudience,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func TestGetSchemaStatus(t *testing.T) {
	app, _ := newTestServer(t)

	t.Run("requires admin role", func(t *testing.T) {
		member := roleTokenFor(t, "member@example.com", "user")
		resp, body := doJSON(t, app, http.MethodGet, "/api/admin/schema", member, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "Admin access required", body["error"])
	})

	t.Run("reports mode and pending migrations", func(t *testing.T) {
		admin := roleTokenFor(t, "admin@example.com", "admin")
		resp, body := doJSON(t, app, http.MethodGet, "/api/admin/schema", admin, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		assert.Equal(t, "hybrid", body["mode"])
		assert.Equal(t, "test", body["environment"])
		// Nothing has been applied on the fresh test database.
		pending, ok := body["pendingMigrations"].([]any)
		require.True(t, ok)
		assert.NotEmpty(t, pending)
	})
}
