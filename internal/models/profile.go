package models

const DefaultProfileRole = "researcher"

// Profile mirrors an authenticated user. One exists per user; the session
// layer creates it on first touch, so handlers may assume it is present.
type Profile struct {
	BaseModel

	UserID   uint   `gorm:"not null;uniqueIndex"`
	Email    string `gorm:"not null"`
	FullName string `gorm:"not null"`
	Role     string `gorm:"not null;default:researcher"`

	// Relationships
	User          *User     `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	OwnedProjects []Project `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
