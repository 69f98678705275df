package account

import (
	"time"

	"github.com/google/uuid"
)

// Account is the database model for a bank account. Balance is stored in
// cents.
type Account struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number    string    `gorm:"column:account_number;uniqueIndex"`
	UserID    uuid.UUID `gorm:"type:uuid;not null"`
	Balance   int64     `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the Account model.
func (Account) TableName() string {
	return "accounts"
}
