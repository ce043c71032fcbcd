package database

import "fitnessfinder/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.Account{},
		&models.Profile{},
		&models.Interest{},
		&models.Session{},
		&models.ProfileInterest{},
		&models.ProfileSession{},
		&models.ProfileParticipation{},
		&models.SessionInterest{},
		&models.SessionParticipant{},
	}
}
