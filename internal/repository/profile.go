// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"fitnessfinder/internal/models"

	"gorm.io/gorm"
)

// ProfileRepository defines the interface for profile and profile-interest data operations
type ProfileRepository interface {
	WithTx(tx *gorm.DB) ProfileRepository
	Create(ctx context.Context, profile *models.Profile) error
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
	Update(ctx context.Context, profile *models.Profile) error
	List(ctx context.Context) ([]models.Profile, error)
	Count(ctx context.Context) (int64, error)
	GetInterests(ctx context.Context, email string) ([]string, error)
	ReplaceInterests(ctx context.Context, email string, interests []string) error
	FindEmailsByInterests(ctx context.Context, interests []string) ([]string, error)
}

// profileRepository implements ProfileRepository
type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) WithTx(tx *gorm.DB) ProfileRepository {
	return &profileRepository{db: tx}
}

func (r *profileRepository) Create(ctx context.Context, profile *models.Profile) error {
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		return wrapWriteError(err)
	}
	return nil
}

func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Profile", email)
		}
		return nil, models.NewInternalError(err)
	}
	return &profile, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *models.Profile) error {
	if err := r.db.WithContext(ctx).Save(profile).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *profileRepository) List(ctx context.Context) ([]models.Profile, error) {
	var profiles []models.Profile
	if err := r.db.WithContext(ctx).Find(&profiles).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return profiles, nil
}

func (r *profileRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Profile{}).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *profileRepository) GetInterests(ctx context.Context, email string) ([]string, error) {
	var names []string
	if err := r.db.WithContext(ctx).
		Model(&models.ProfileInterest{}).
		Where("profile = ?", email).
		Pluck("interest", &names).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return names, nil
}

// ReplaceInterests deletes all interest rows for the profile and inserts one
// per entry, realizing the replace-not-merge invariant.
func (r *profileRepository) ReplaceInterests(ctx context.Context, email string, interests []string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("profile = ?", email).Delete(&models.ProfileInterest{}).Error; err != nil {
			return err
		}
		for _, interest := range interests {
			row := models.ProfileInterest{Profile: email, Interest: interest}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *profileRepository) FindEmailsByInterests(ctx context.Context, interests []string) ([]string, error) {
	var emails []string
	if err := r.db.WithContext(ctx).
		Model(&models.ProfileInterest{}).
		Distinct("profile").
		Where("interest IN ?", interests).
		Pluck("profile", &emails).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return emails, nil
}
