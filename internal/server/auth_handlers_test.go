package server

import (
	"errors"
	"net/http"
	"testing"

	"fitnessfinder/internal/models"
	"fitnessfinder/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestSignup(t *testing.T) {
	t.Run("creates account and profile", func(t *testing.T) {
		app, s := newTestServer(t)

		resp, body := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", map[string]any{
			"email":     "john@foo.com",
			"password":  "Password123!",
			"firstName": "John",
			"lastName":  "Doe",
			"interests": []string{"Running", "Swimming"},
		})

		require.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.NotEmpty(t, body["token"])

		account, err := s.accountRepo.GetByEmail(t.Context(), "john@foo.com")
		require.NoError(t, err)
		require.NotNil(t, account)
		assert.Equal(t, models.AccountRoleUser, account.Role)
		assert.NotEqual(t, "Password123!", account.Password, "password must be stored hashed")

		profile, err := s.profileRepo.GetByEmail(t.Context(), "john@foo.com")
		require.NoError(t, err)
		assert.Equal(t, "John", profile.FirstName)

		interests, err := s.profileRepo.GetInterests(t.Context(), "john@foo.com")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Running", "Swimming"}, interests)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		app, _ := newTestServer(t)
		signupMember(t, app, "john@foo.com", "John", "Doe", nil)

		resp, _ := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", map[string]any{
			"email":    "john@foo.com",
			"password": "Password123!",
		})
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("a failed account write rolls back the profile", func(t *testing.T) {
		_, s := newTestServer(t)

		err := s.db.Transaction(func(tx *gorm.DB) error {
			_, txErr := s.profileService.CreateProfileTx(t.Context(), tx, service.CreateProfileInput{
				Email:     "rollback@foo.com",
				FirstName: "Rolled",
				LastName:  "Back",
				Interests: []string{"Running"},
			})
			require.NoError(t, txErr)
			return errors.New("account insert failed")
		})
		require.Error(t, err)

		_, err = s.profileRepo.GetByEmail(t.Context(), "rollback@foo.com")
		assert.True(t, models.IsNotFound(err), "profile must not survive a failed signup transaction")
	})

	t.Run("rejected profile leaves no account", func(t *testing.T) {
		app, s := newTestServer(t)

		// A seeded profile with no login account yet.
		_, err := s.profileService.CreateProfile(t.Context(), service.CreateProfileInput{
			Email:     "seeded@foo.com",
			FirstName: "Seeded",
			LastName:  "Member",
		})
		require.NoError(t, err)

		resp, _ := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", map[string]any{
			"email":    "seeded@foo.com",
			"password": "Password123!",
		})
		assert.Equal(t, http.StatusConflict, resp.StatusCode)

		account, err := s.accountRepo.GetByEmail(t.Context(), "seeded@foo.com")
		require.NoError(t, err)
		assert.Nil(t, account, "a rejected signup must not create an account")
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		app, _ := newTestServer(t)

		tests := []struct {
			name string
			body map[string]any
		}{
			{"missing password", map[string]any{"email": "a@b.com"}},
			{"short password", map[string]any{"email": "a@b.com", "password": "short"}},
			{"bad email", map[string]any{"email": "not-an-email", "password": "Password123!"}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				resp, _ := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", tt.body)
				assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			})
		}
	})
}

func TestLogin(t *testing.T) {
	app, _ := newTestServer(t)
	signupMember(t, app, "john@foo.com", "John", "Doe", nil)

	t.Run("valid credentials", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
			"email":    "john@foo.com",
			"password": "Password123!",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.NotEmpty(t, body["token"])
		assert.Equal(t, "john@foo.com", body["email"])
	})

	t.Run("wrong password", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
			"email":    "john@foo.com",
			"password": "WrongPassword1!",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("unknown account", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
			"email":    "ghost@foo.com",
			"password": "Password123!",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestLoginTokenGrantsAccess(t *testing.T) {
	app, _ := newTestServer(t)
	signupMember(t, app, "john@foo.com", "John", "Doe", nil)

	_, body := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "john@foo.com",
		"password": "Password123!",
	})
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	resp, card := doJSON(t, app, http.MethodGet, "/api/profiles/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "john@foo.com", card["email"])
}
