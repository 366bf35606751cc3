package models

import (
	"time"

	"github.com/google/uuid"
)

// Todo belongs to exactly one user. UserID is set from the caller's token at
// creation and never changes afterwards.
type Todo struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Task        string    `gorm:"size:50;not null" json:"task"`
	Detail      string    `gorm:"size:255" json:"detail,omitempty"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	IsCompleted bool      `gorm:"not null;default:false" json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
