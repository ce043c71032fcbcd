package repository

import (
	"context"
	"errors"

	"fitnessfinder/internal/models"

	"gorm.io/gorm"
)

// AccountRepository defines the interface for login account operations
type AccountRepository interface {
	WithTx(tx *gorm.DB) AccountRepository
	Create(ctx context.Context, account *models.Account) error
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
}

// accountRepository implements AccountRepository
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *accountRepository) WithTx(tx *gorm.DB) AccountRepository {
	return &accountRepository{db: tx}
}

func (r *accountRepository) Create(ctx context.Context, account *models.Account) error {
	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		return wrapWriteError(err)
	}
	return nil
}

// GetByEmail returns the account for the email, or nil when none exists.
func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &account, nil
}
