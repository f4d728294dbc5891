package models

type Story struct {
	BaseModel

	InterviewID uint   `gorm:"not null;index"`
	Title       string `gorm:"not null"`
	Description string
	SituationA  string `gorm:"not null"` // current situation
	SituationB  string `gorm:"not null"` // desired situation
	ClusterID   *uint  // reserved, no algorithm assigns it

	// Relationships
	Interview     Interview     `gorm:"foreignKey:InterviewID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Forces        []Force       `gorm:"foreignKey:StoryID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	MatrixEntries []MatrixEntry `gorm:"foreignKey:StoryID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
