package models

const (
	ForceTypePush    = "push"
	ForceTypePull    = "pull"
	ForceTypeHabit   = "habit"
	ForceTypeAnxiety = "anxiety"
)

type Force struct {
	BaseModel

	StoryID     uint   `gorm:"not null;index"`
	Type        string `gorm:"not null;check:type IN ('push','pull','habit','anxiety')"`
	Description string `gorm:"not null"`
	GroupID     *uint  `gorm:"index"`

	// Relationships
	Story Story       `gorm:"foreignKey:StoryID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Group *ForceGroup `gorm:"foreignKey:GroupID;constraint:OnUpdate:Cascade,OnDelete:SET NULL" json:"-"`
}
