package transaction

import (
	"time"

	"github.com/google/uuid"
)

// Transaction is the database model for a ledger record. Seq is assigned
// by the database and fixes the persistence order; it is never written by
// the application.
type Transaction struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Seq             int64      `gorm:"->"`
	Amount          int64      `gorm:"not null"`
	Description     string     `gorm:"not null"`
	SourceAccountID *uuid.UUID `gorm:"type:uuid"`
	TargetAccountID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt       time.Time
}

// TableName specifies the table name for the Transaction model.
func (Transaction) TableName() string {
	return "transactions"
}
