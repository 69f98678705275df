package user

import (
	"time"

	"github.com/google/uuid"
)

// User is the database model for a registered user.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	DNI       string    `gorm:"uniqueIndex"`
	Username  string    `gorm:"not null"`
	Email     string    `gorm:"uniqueIndex"`
	Password  string    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}
