package models

type User struct {
	BaseModel

	Name         string `gorm:"not null"`
	FullName     string // optional display name supplied at registration
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`

	// Relationships
	Profile Profile `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
