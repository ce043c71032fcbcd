// Package models contains data structures for the application's domain models.
package models

import (
	"strings"
	"time"
)

// Profile represents a registered member's public-facing identity record.
// Profiles are keyed by email; one profile exists per account.
type Profile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Bio       string    `json:"bio"`
	Picture   string    `json:"picture"`
	Year      string    `json:"year"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Profile) TableName() string {
	return "profiles"
}

// FullName formats the display name shown on session cards.
func (p *Profile) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// ProfileInterest links a profile to an interest by name. The full set for a
// profile is replaced, never merged, whenever the profile is updated.
type ProfileInterest struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Profile   string    `gorm:"not null;index;uniqueIndex:idx_profile_interest" json:"profile"`
	Interest  string    `gorm:"not null;uniqueIndex:idx_profile_interest" json:"interest"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (ProfileInterest) TableName() string {
	return "profile_interests"
}

// ProfileSession records session ownership: exactly one row exists per
// session for its whole lifetime, naming the creator profile. The session
// title is denormalized onto the row for cheap card rendering.
type ProfileSession struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Profile   string    `gorm:"not null;index" json:"profile"`
	SessionID string    `gorm:"not null;uniqueIndex" json:"session_id"`
	Session   string    `gorm:"not null" json:"session"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (ProfileSession) TableName() string {
	return "profile_sessions"
}

// ProfileParticipation records that a profile joined a session it does not
// own. The unique index backs the "cannot join twice" invariant at the store
// level; services check it first so users get a descriptive conflict error.
type ProfileParticipation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Profile   string    `gorm:"not null;index;uniqueIndex:idx_participation_pair" json:"profile"`
	SessionID string    `gorm:"not null;index;uniqueIndex:idx_participation_pair" json:"session_id"`
	Session   string    `gorm:"not null" json:"session"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (ProfileParticipation) TableName() string {
	return "profile_participations"
}
