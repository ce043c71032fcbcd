package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SkillLevel values accepted for a session.
const (
	SkillLevelBeginner     = "Beginner"
	SkillLevelIntermediate = "Intermediate"
	SkillLevelAdvanced     = "Advanced"
)

// Session is a scheduled group fitness activity.
type Session struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	SkillLevel  string    `json:"skillLevel"`
	Location    string    `json:"location"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Session) TableName() string {
	return "sessions"
}

// BeforeCreate assigns a generated id when none was provided.
func (s *Session) BeforeCreate(_ *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// SessionInterest tags a session with an interest by name. The set is written
// at session creation and replaced wholesale if the session is edited.
type SessionInterest struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SessionID string    `gorm:"not null;index;uniqueIndex:idx_session_interest" json:"session_id"`
	Interest  string    `gorm:"not null;uniqueIndex:idx_session_interest" json:"interest"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (SessionInterest) TableName() string {
	return "session_interests"
}

// SessionParticipant is a read-side display cache of formatted participant
// names (creator plus joiners). ProfileParticipation is the source of truth;
// these rows are rewritten whenever a participant's profile name changes.
type SessionParticipant struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SessionID   string    `gorm:"not null;index" json:"session_id"`
	Profile     string    `gorm:"not null;index" json:"profile"`
	Participant string    `gorm:"not null" json:"participant"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (SessionParticipant) TableName() string {
	return "session_participants"
}
