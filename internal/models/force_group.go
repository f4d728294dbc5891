package models

const (
	GroupTypePush = "push"
	GroupTypePull = "pull"
)

type ForceGroup struct {
	BaseModel

	ProjectID  uint   `gorm:"not null;index"`
	Name       string `gorm:"not null"`
	Type       string `gorm:"not null;check:type IN ('push','pull')"`
	Color      string
	IsLeftover bool   `gorm:"default:false"` // catch-all bucket, accepts any force type
	Position   int    `gorm:"not null;default:0"`

	// Relationships
	Project       Project       `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Forces        []Force       `gorm:"foreignKey:GroupID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	MatrixEntries []MatrixEntry `gorm:"foreignKey:GroupID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
