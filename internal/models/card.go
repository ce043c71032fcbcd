package models

import "time"

// ProfileCard is the denormalized, presentation-ready view of a profile:
// the scalar fields plus interest names, titles of sessions the profile
// created, and titles of sessions it joined. The name/title slices carry no
// ordering guarantee; consumers must treat them as sets.
type ProfileCard struct {
	Email           string   `json:"email"`
	FirstName       string   `json:"firstName"`
	LastName        string   `json:"lastName"`
	Bio             string   `json:"bio"`
	Picture         string   `json:"picture"`
	Year            string   `json:"year"`
	Interests       []string `json:"interests"`
	CreatedSessions []string `json:"sessions"`
	JoinedSessions  []string `json:"participation"`
}

// SessionCard is the denormalized view of a session: scalar fields plus
// interest names, the creator's formatted name, and formatted participant
// names resolved from canonical profiles at read time.
type SessionCard struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Date             time.Time `json:"date"`
	Description      string    `json:"description"`
	SkillLevel       string    `json:"skillLevel"`
	Location         string    `json:"location"`
	Interests        []string  `json:"interests"`
	CreatorName      string    `json:"creator"`
	ParticipantNames []string  `json:"participants"`
}
