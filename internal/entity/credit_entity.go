package entity

import (
	"time"

	"github.com/google/uuid"
)

type TransactionType string

const (
	TransactionEarn   TransactionType = "EARN"
	TransactionSpend  TransactionType = "SPEND"
	TransactionBonus  TransactionType = "BONUS"
	TransactionRefund TransactionType = "REFUND"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TransactionEarn, TransactionSpend, TransactionBonus, TransactionRefund:
		return true
	}
	return false
}

// UserCredits is the ledger head. CurrentCredits must always equal
// TotalEarned - TotalSpent; both totals are monotonic.
type UserCredits struct {
	Id             uuid.UUID
	UserId         string
	CurrentCredits int
	TotalEarned    int
	TotalSpent     int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CreditTransaction is one append-only ledger row. BalanceAfter snapshots the
// head's CurrentCredits immediately after this row committed.
type CreditTransaction struct {
	Id            uuid.UUID
	UserId        string
	ServiceTypeId *uuid.UUID
	Amount        int
	Type          TransactionType
	Description   string
	BalanceAfter  int
	Metadata      map[string]interface{}
	CreatedAt     time.Time
}
