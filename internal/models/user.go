package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account holder. Password always stores a bcrypt hash, never the
// plaintext; federated accounts get a random hashed password at provisioning.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:50;not null" json:"name"`
	Email     string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
