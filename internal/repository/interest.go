package repository

import (
	"context"

	"fitnessfinder/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InterestRepository defines the interface for interest catalog operations
type InterestRepository interface {
	WithTx(tx *gorm.DB) InterestRepository
	Upsert(ctx context.Context, names ...string) error
	List(ctx context.Context) ([]string, error)
}

// interestRepository implements InterestRepository
type interestRepository struct {
	db *gorm.DB
}

// NewInterestRepository creates a new interest repository
func NewInterestRepository(db *gorm.DB) InterestRepository {
	return &interestRepository{db: db}
}

func (r *interestRepository) WithTx(tx *gorm.DB) InterestRepository {
	return &interestRepository{db: tx}
}

// Upsert ensures every referenced interest name exists in the catalog.
// Existing names are left untouched.
func (r *interestRepository) Upsert(ctx context.Context, names ...string) error {
	for _, name := range names {
		interest := models.Interest{Name: name}
		if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&interest).Error; err != nil {
			return models.NewInternalError(err)
		}
	}
	return nil
}

func (r *interestRepository) List(ctx context.Context) ([]string, error) {
	var names []string
	if err := r.db.WithContext(ctx).
		Model(&models.Interest{}).
		Order("name").
		Pluck("name", &names).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return names, nil
}
