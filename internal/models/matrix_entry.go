package models

// MatrixEntry records whether a story's circumstances match a force group.
// Match is tri-state: true, false, or nil while still unanswered.
type MatrixEntry struct {
	BaseModel

	StoryID uint  `gorm:"not null;uniqueIndex:idx_story_group"`
	GroupID uint  `gorm:"not null;uniqueIndex:idx_story_group"`
	Match   *bool

	// Relationships
	Story Story      `gorm:"foreignKey:StoryID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Group ForceGroup `gorm:"foreignKey:GroupID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
