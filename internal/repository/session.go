package repository

import (
	"context"
	"errors"

	"fitnessfinder/internal/models"

	"gorm.io/gorm"
)

// SessionRepository defines the interface for session and session-interest data operations
type SessionRepository interface {
	WithTx(tx *gorm.DB) SessionRepository
	Create(ctx context.Context, session *models.Session) error
	GetByID(ctx context.Context, sessionID string) (*models.Session, error)
	Delete(ctx context.Context, sessionID string) error
	List(ctx context.Context) ([]models.Session, error)
	GetInterests(ctx context.Context, sessionID string) ([]string, error)
	ReplaceInterests(ctx context.Context, sessionID string, interests []string) error
	DeleteInterests(ctx context.Context, sessionID string) error
	FindIDsByInterests(ctx context.Context, interests []string) ([]string, error)
}

// sessionRepository implements SessionRepository
type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) WithTx(tx *gorm.DB) SessionRepository {
	return &sessionRepository{db: tx}
}

func (r *sessionRepository) Create(ctx context.Context, session *models.Session) error {
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *sessionRepository) GetByID(ctx context.Context, sessionID string) (*models.Session, error) {
	var session models.Session
	if err := r.db.WithContext(ctx).Where("id = ?", sessionID).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Session", sessionID)
		}
		return nil, models.NewInternalError(err)
	}
	return &session, nil
}

func (r *sessionRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", sessionID).Delete(&models.Session{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *sessionRepository) List(ctx context.Context) ([]models.Session, error) {
	var sessions []models.Session
	if err := r.db.WithContext(ctx).Order("date").Find(&sessions).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return sessions, nil
}

func (r *sessionRepository) GetInterests(ctx context.Context, sessionID string) ([]string, error) {
	var names []string
	if err := r.db.WithContext(ctx).
		Model(&models.SessionInterest{}).
		Where("session_id = ?", sessionID).
		Pluck("interest", &names).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return names, nil
}

func (r *sessionRepository) ReplaceInterests(ctx context.Context, sessionID string, interests []string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", sessionID).Delete(&models.SessionInterest{}).Error; err != nil {
			return err
		}
		for _, interest := range interests {
			row := models.SessionInterest{SessionID: sessionID, Interest: interest}
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

func (r *sessionRepository) DeleteInterests(ctx context.Context, sessionID string) error {
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&models.SessionInterest{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *sessionRepository) FindIDsByInterests(ctx context.Context, interests []string) ([]string, error) {
	var ids []string
	if err := r.db.WithContext(ctx).
		Model(&models.SessionInterest{}).
		Distinct("session_id").
		Where("interest IN ?", interests).
		Pluck("session_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}
