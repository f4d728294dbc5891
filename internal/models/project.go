package models

import "gorm.io/datatypes"

const (
	ProjectStatusActive    = "active"
	ProjectStatusCompleted = "completed"
	ProjectStatusArchived  = "archived"
)

type Project struct {
	BaseModel

	Name        string         `gorm:"not null"`
	Description string
	OwnerID     uint           `gorm:"not null;index"` // immutable after creation
	Status      string         `gorm:"not null;default:active;check:status IN ('active','completed','archived')"`
	Settings    datatypes.JSON `gorm:"type:jsonb"`

	// Relationships
	Owner       Profile      `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Interviews  []Interview  `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	ForceGroups []ForceGroup `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
