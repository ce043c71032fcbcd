package server

import (
	"fmt"
	"time"

	"fitnessfinder/internal/middleware"
	"fitnessfinder/internal/models"
	"fitnessfinder/internal/service"
	"fitnessfinder/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Signup handles POST /api/auth/signup. It registers a login account and
// creates the member's profile in one request.
func (s *Server) Signup(c *fiber.Ctx) error {
	var req struct {
		Email     string   `json:"email"`
		Password  string   `json:"password"`
		FirstName string   `json:"firstName"`
		LastName  string   `json:"lastName"`
		Interests []string `json:"interests"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Email == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Email and password are required"))
	}

	// Validate email format
	if err := validation.ValidateEmail(req.Email); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	// Validate password strength
	if err := validation.ValidatePassword(req.Password); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	// Check if the account already exists
	existing, err := s.accountRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if existing != nil {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewConflictError("Account already exists"))
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	// The profile and its login account commit together; a failure on
	// either side rolls both back.
	account := &models.Account{
		Email:    req.Email,
		Password: string(hashedPassword),
		Role:     models.AccountRoleUser,
	}
	var profile *models.Profile
	err = s.db.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var txErr error
		profile, txErr = s.profileService.CreateProfileTx(c.Context(), tx, service.CreateProfileInput{
			Email:     req.Email,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Interests: req.Interests,
		})
		if txErr != nil {
			return txErr
		}
		return s.accountRepo.WithTx(tx).Create(c.Context(), account)
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	// Generate JWT token
	token, err := s.generateToken(account)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token":   token,
		"profile": profile,
	})
}

// Login handles POST /api/auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	// Find account by email
	account, err := s.accountRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if account == nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	// Compare password
	if cmpErr := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(req.Password)); cmpErr != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	// Generate JWT token
	token, err := s.generateToken(account)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"token": token,
		"email": account.Email,
		"role":  account.Role,
	})
}

// generateToken creates a JWT token for the given account. The subject claim
// carries the email, which downstream operations use as the profile key.
func (s *Server) generateToken(account *models.Account) (string, error) {
	// Validate secret exists
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  account.Email,                      // Subject (profile key)
		"role": string(account.Role),               // Account role (cached in token)
		"iss":  middleware.TokenIssuer,             // Issuer
		"aud":  middleware.TokenAudience,           // Audience
		"exp":  now.Add(time.Hour * 24 * 7).Unix(), // Expiration (7 days)
		"iat":  now.Unix(),                         // Issued at
		"nbf":  now.Unix(),                         // Not before
		"jti":  s.generateJTI(),                    // JWT ID (unique identifier)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// generateJTI creates a unique JWT ID to prevent replay attacks
func (s *Server) generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
