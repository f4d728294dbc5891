package models

import "time"

type Interview struct {
	BaseModel

	ProjectID       uint       `gorm:"not null;index"`
	ParticipantName string     `gorm:"not null"`
	ParticipantAge  *int       `gorm:"check:participant_age > 0 AND participant_age < 120"`
	Gender          string
	InterviewDate   *time.Time
	Context         string // free-text interview circumstances

	// Relationships
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Stories []Story `gorm:"foreignKey:InterviewID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
