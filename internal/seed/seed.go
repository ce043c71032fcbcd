// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"fitnessfinder/internal/models"
	"fitnessfinder/internal/observability"
	"fitnessfinder/internal/repository"
	"fitnessfinder/internal/service"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Settings is the on-disk bootstrap data format: accounts, profiles, and
// sessions to load into an empty database.
type Settings struct {
	DefaultAccounts []AccountSetting `json:"defaultAccounts"`
	DefaultProfiles []ProfileSetting `json:"defaultProfiles"`
	DefaultSessions []SessionSetting `json:"defaultSessions"`
}

// AccountSetting describes a login account to create at bootstrap.
type AccountSetting struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// ProfileSetting describes a member profile to create at bootstrap.
type ProfileSetting struct {
	Email     string   `json:"email"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Bio       string   `json:"bio"`
	Picture   string   `json:"picture"`
	Year      string   `json:"year"`
	Interests []string `json:"interests"`
}

// SessionSetting describes a session to create at bootstrap. Owner must name
// one of the default profiles.
type SessionSetting struct {
	Title       string    `json:"title"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Interests   []string  `json:"interests"`
	SkillLevel  string    `json:"skillLevel"`
	Location    string    `json:"location"`
	Owner       string    `json:"owner"`
}

// Loader seeds the database from a Settings document. All writes go through
// the service layer so the denormalized collections stay consistent.
type Loader struct {
	db             *gorm.DB
	accountRepo    repository.AccountRepository
	profileRepo    repository.ProfileRepository
	profileService *service.ProfileService
	sessionService *service.SessionService
}

// NewLoader builds a Loader over the given database.
func NewLoader(db *gorm.DB) *Loader {
	profileRepo := repository.NewProfileRepository(db)
	interestRepo := repository.NewInterestRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	participationRepo := repository.NewParticipationRepository(db)

	return &Loader{
		db:             db,
		accountRepo:    repository.NewAccountRepository(db),
		profileRepo:    profileRepo,
		profileService: service.NewProfileService(db, profileRepo, interestRepo, participationRepo),
		sessionService: service.NewSessionService(db, sessionRepo, profileRepo, interestRepo, participationRepo),
	}
}

// ReadSettings parses a Settings document from a JSON file.
func ReadSettings(path string) (*Settings, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings file: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return nil, fmt.Errorf("parse settings file: %w", err)
	}
	return &settings, nil
}

// LoadIfEmpty applies the settings only when no profiles exist yet, so a
// restart never duplicates the bootstrap data.
func (l *Loader) LoadIfEmpty(ctx context.Context, settings *Settings) (err error) {
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		observability.SeedRuns.WithLabelValues(outcome).Inc()
	}()

	count, err := l.profileRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		observability.Logger.Info("Database already populated, skipping seed",
			slog.Int64("profiles", count))
		return nil
	}
	return l.Load(ctx, settings)
}

// Load applies the settings unconditionally.
func (l *Loader) Load(ctx context.Context, settings *Settings) error {
	for _, account := range settings.DefaultAccounts {
		if err := l.addAccount(ctx, account); err != nil {
			return fmt.Errorf("seed account %s: %w", account.Email, err)
		}
	}
	for _, profile := range settings.DefaultProfiles {
		if err := l.addProfile(ctx, profile); err != nil {
			return fmt.Errorf("seed profile %s: %w", profile.Email, err)
		}
	}
	for _, session := range settings.DefaultSessions {
		if err := l.addSession(ctx, session); err != nil {
			return fmt.Errorf("seed session %q: %w", session.Title, err)
		}
	}

	observability.Logger.Info("Seed data loaded",
		slog.Int("accounts", len(settings.DefaultAccounts)),
		slog.Int("profiles", len(settings.DefaultProfiles)),
		slog.Int("sessions", len(settings.DefaultSessions)))
	return nil
}

func (l *Loader) addAccount(ctx context.Context, setting AccountSetting) error {
	existing, err := l.accountRepo.GetByEmail(ctx, setting.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(setting.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	role := models.AccountRole(setting.Role)
	if role != models.AccountRoleAdmin {
		role = models.AccountRoleUser
	}

	return l.accountRepo.Create(ctx, &models.Account{
		Email:    setting.Email,
		Password: string(hashed),
		Role:     role,
	})
}

func (l *Loader) addProfile(ctx context.Context, setting ProfileSetting) error {
	_, err := l.profileService.CreateProfile(ctx, service.CreateProfileInput{
		Email:     setting.Email,
		FirstName: setting.FirstName,
		LastName:  setting.LastName,
		Bio:       setting.Bio,
		Picture:   setting.Picture,
		Year:      setting.Year,
		Interests: setting.Interests,
	})
	return err
}

func (l *Loader) addSession(ctx context.Context, setting SessionSetting) error {
	_, err := l.sessionService.AddSession(ctx, service.AddSessionInput{
		Title:       setting.Title,
		Date:        setting.Date,
		Description: setting.Description,
		Interests:   setting.Interests,
		SkillLevel:  setting.SkillLevel,
		Location:    setting.Location,
		Owner:       setting.Owner,
	})
	return err
}
