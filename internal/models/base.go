package models

import "time"

// BaseModel is gorm.Model without soft deletion. Rows are removed for real so
// the declared ON DELETE cascades fire in the database.
type BaseModel struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
