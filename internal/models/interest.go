package models

import "time"

// Interest is a named tag attachable to profiles and sessions. Interests are
// upserted on first use; referencing an unknown name creates it.
type Interest struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Interest) TableName() string {
	return "interests"
}
