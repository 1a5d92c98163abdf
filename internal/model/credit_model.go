package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// UserCredits is the ledger head: one row per user summarizing the
// transaction log. Invariant: current_credits = total_earned - total_spent.
type UserCredits struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId         string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	CurrentCredits int       `gorm:"not null;default:0"`
	TotalEarned    int       `gorm:"not null;default:0"`
	TotalSpent     int       `gorm:"not null;default:0"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (UserCredits) TableName() string {
	return "user_credits"
}

// CreditTransaction is the ledger body. Rows are append-only: never updated
// or deleted once written.
type CreditTransaction struct {
	Id            uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId        string            `gorm:"type:varchar(255);not null;index"`
	ServiceTypeId *uuid.UUID        `gorm:"type:uuid"`
	Amount        int               `gorm:"not null"` // positive = credit, negative = debit
	Type          string            `gorm:"type:varchar(20);not null"`
	Description   string            `gorm:"type:text"`
	BalanceAfter  int               `gorm:"not null"`
	Metadata      datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt     time.Time         `gorm:"default:now();not null;index"`
}

func (CreditTransaction) TableName() string {
	return "credit_transactions"
}
