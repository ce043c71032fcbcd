package repository

import (
	"context"
	"errors"

	"fitnessfinder/internal/models"

	"gorm.io/gorm"
)

// ParticipationRepository defines the interface for the join records tying
// profiles to sessions: ownership rows, participation rows, and the
// participant display-name cache.
type ParticipationRepository interface {
	WithTx(tx *gorm.DB) ParticipationRepository

	// Ownership (ProfileSession)
	CreateOwner(ctx context.Context, owner *models.ProfileSession) error
	GetOwner(ctx context.Context, sessionID string) (*models.ProfileSession, error)
	GetOwnedBy(ctx context.Context, email string) ([]models.ProfileSession, error)
	DeleteOwnerBySession(ctx context.Context, sessionID string) error

	// Participation (ProfileParticipation)
	GetParticipation(ctx context.Context, email, sessionID string) (*models.ProfileParticipation, error)
	CreateParticipation(ctx context.Context, p *models.ProfileParticipation) error
	DeleteParticipation(ctx context.Context, email, sessionID string) error
	GetParticipationsByProfile(ctx context.Context, email string) ([]models.ProfileParticipation, error)
	GetParticipationsBySession(ctx context.Context, sessionID string) ([]models.ProfileParticipation, error)
	DeleteParticipationsBySession(ctx context.Context, sessionID string) error

	// Display-name cache (SessionParticipant)
	AddParticipantName(ctx context.Context, row *models.SessionParticipant) error
	RemoveParticipantName(ctx context.Context, email, sessionID string) error
	DeleteParticipantNamesBySession(ctx context.Context, sessionID string) error
	RefreshParticipantNames(ctx context.Context, email, displayName string) error
	// GetParticipantNames lists the cached display rows for a session.
	// Cards resolve names from profiles; this read exists to verify the
	// write side keeps the cache consistent.
	GetParticipantNames(ctx context.Context, sessionID string) ([]string, error)
}

// participationRepository implements ParticipationRepository
type participationRepository struct {
	db *gorm.DB
}

// NewParticipationRepository creates a new participation repository
func NewParticipationRepository(db *gorm.DB) ParticipationRepository {
	return &participationRepository{db: db}
}

func (r *participationRepository) WithTx(tx *gorm.DB) ParticipationRepository {
	return &participationRepository{db: tx}
}

func (r *participationRepository) CreateOwner(ctx context.Context, owner *models.ProfileSession) error {
	if err := r.db.WithContext(ctx).Create(owner).Error; err != nil {
		return wrapWriteError(err)
	}
	return nil
}

// GetOwner returns the single ownership row for a session, or nil when the
// session has no owner row (a dangling or never-created session).
func (r *participationRepository) GetOwner(ctx context.Context, sessionID string) (*models.ProfileSession, error) {
	var owner models.ProfileSession
	if err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&owner).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &owner, nil
}

func (r *participationRepository) GetOwnedBy(ctx context.Context, email string) ([]models.ProfileSession, error) {
	var owned []models.ProfileSession
	if err := r.db.WithContext(ctx).Where("profile = ?", email).Find(&owned).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return owned, nil
}

func (r *participationRepository) DeleteOwnerBySession(ctx context.Context, sessionID string) error {
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&models.ProfileSession{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// GetParticipation returns the participation row for the pair, or nil when
// the profile has not joined the session.
func (r *participationRepository) GetParticipation(ctx context.Context, email, sessionID string) (*models.ProfileParticipation, error) {
	var p models.ProfileParticipation
	if err := r.db.WithContext(ctx).
		Where("profile = ? AND session_id = ?", email, sessionID).
		First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &p, nil
}

func (r *participationRepository) CreateParticipation(ctx context.Context, p *models.ProfileParticipation) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return wrapWriteError(err)
	}
	return nil
}

func (r *participationRepository) DeleteParticipation(ctx context.Context, email, sessionID string) error {
	if err := r.db.WithContext(ctx).
		Where("profile = ? AND session_id = ?", email, sessionID).
		Delete(&models.ProfileParticipation{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *participationRepository) GetParticipationsByProfile(ctx context.Context, email string) ([]models.ProfileParticipation, error) {
	var rows []models.ProfileParticipation
	if err := r.db.WithContext(ctx).Where("profile = ?", email).Find(&rows).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return rows, nil
}

func (r *participationRepository) GetParticipationsBySession(ctx context.Context, sessionID string) ([]models.ProfileParticipation, error) {
	var rows []models.ProfileParticipation
	if err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).Find(&rows).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return rows, nil
}

func (r *participationRepository) DeleteParticipationsBySession(ctx context.Context, sessionID string) error {
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&models.ProfileParticipation{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *participationRepository) AddParticipantName(ctx context.Context, row *models.SessionParticipant) error {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *participationRepository) RemoveParticipantName(ctx context.Context, email, sessionID string) error {
	if err := r.db.WithContext(ctx).
		Where("profile = ? AND session_id = ?", email, sessionID).
		Delete(&models.SessionParticipant{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *participationRepository) DeleteParticipantNamesBySession(ctx context.Context, sessionID string) error {
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&models.SessionParticipant{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// RefreshParticipantNames rewrites the cached display name on every row for
// the profile. Called when a profile update changes the formatted name.
func (r *participationRepository) RefreshParticipantNames(ctx context.Context, email, displayName string) error {
	if err := r.db.WithContext(ctx).
		Model(&models.SessionParticipant{}).
		Where("profile = ?", email).
		Update("participant", displayName).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *participationRepository) GetParticipantNames(ctx context.Context, sessionID string) ([]string, error) {
	var names []string
	if err := r.db.WithContext(ctx).
		Model(&models.SessionParticipant{}).
		Where("session_id = ?", sessionID).
		Pluck("participant", &names).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return names, nil
}
